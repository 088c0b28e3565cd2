package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/templify"
	"github.com/fwojciec/templify/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.tmpl"), filepath.Join(dir, "b.yaml")
	writeFiles(t, dir, map[string]string{"a.tmpl": "<p>{{ text_1 }}</p>", "b.yaml": "text_variables: {}"})

	first, err := fs.Fingerprint([]string{a, b})
	require.NoError(t, err)

	t.Run("stable for unchanged inputs", func(t *testing.T) {
		got, err := fs.Fingerprint([]string{a, b})

		require.NoError(t, err)
		assert.Equal(t, first, got)
	})

	t.Run("depends on order", func(t *testing.T) {
		got, err := fs.Fingerprint([]string{b, a})

		require.NoError(t, err)
		assert.NotEqual(t, first, got)
	})

	t.Run("changes with content", func(t *testing.T) {
		other := t.TempDir()
		c := filepath.Join(other, "a.tmpl")
		require.NoError(t, os.WriteFile(c, []byte("<p>{{ text_2 }}</p>"), 0644))
		d := filepath.Join(other, "b.yaml")
		require.NoError(t, os.WriteFile(d, []byte("text_variables: {}"), 0644))

		before, err := fs.Fingerprint([]string{c, d})
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(c, []byte("<p>{{ text_3 }}</p>"), 0644))
		after, err := fs.Fingerprint([]string{c, d})
		require.NoError(t, err)

		assert.NotEqual(t, before, after)
	})

	t.Run("missing file is not found", func(t *testing.T) {
		_, err := fs.Fingerprint([]string{filepath.Join(dir, "gone.yaml")})

		assert.Equal(t, templify.ENOTFOUND, templify.ErrorCode(err))
	})
}
