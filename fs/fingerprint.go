package fs

import (
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the names and contents of paths in order.
// Equal fingerprints mean a render would read identical bytes.
func Fingerprint(paths []string) (uint64, error) {
	d := xxhash.New()
	for _, path := range paths {
		_, _ = d.WriteString(path)
		_, _ = d.Write([]byte{0})
		if err := hashFile(d, path); err != nil {
			return 0, statError(path, err)
		}
		_, _ = d.Write([]byte{0})
	}
	return d.Sum64(), nil
}

func hashFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
