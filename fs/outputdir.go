// Package fs reads and writes templify artifacts on the local filesystem.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/templify"
)

// Artifact file names.
const (
	TemplateFile  = "template.tmpl"
	VariablesFile = "variables.yaml"
	OutputFile    = "rendered.html"
)

// OutputDir writes extraction artifacts with atomic replace semantics.
// Files are saved to a sibling temporary directory and moved into place on
// Commit, so the previous contents stay intact until the new set is complete.
type OutputDir struct {
	baseDir string
	name    string
	started bool
}

// NewOutputDir creates an OutputDir for path.
// Files are saved to path.tmp and moved to path on Commit.
func NewOutputDir(path string) *OutputDir {
	path = filepath.Clean(path)
	return &OutputDir{
		baseDir: filepath.Dir(path),
		name:    filepath.Base(path),
	}
}

// Path returns the final directory.
func (d *OutputDir) Path() string {
	return filepath.Join(d.baseDir, d.name)
}

func (d *OutputDir) tempDir() string {
	return filepath.Join(d.baseDir, d.name+".tmp")
}

// Save writes a file into the pending directory. name must be a plain file name.
func (d *OutputDir) Save(name string, data []byte) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name || strings.ContainsRune(name, '/') {
		return templify.Errorf(templify.EINVALID, "invalid output file name %q", name)
	}

	if !d.started {
		// Leftovers of an interrupted run must not leak into this one.
		if err := os.RemoveAll(d.tempDir()); err != nil {
			return fmt.Errorf("failed to clear %s: %w", d.tempDir(), err)
		}
		if err := os.MkdirAll(d.tempDir(), 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", d.tempDir(), err)
		}
		d.started = true
	}

	return os.WriteFile(filepath.Join(d.tempDir(), name), data, 0644)
}

// SaveResult saves the template and its variable stores, one store per group
// when split is set, and returns the final paths of the written files.
func (d *OutputDir) SaveResult(res *templify.Result, store templify.VariableStore, split bool) ([]string, error) {
	names := []string{TemplateFile}
	if err := d.Save(TemplateFile, []byte(res.Template)); err != nil {
		return nil, err
	}

	if !split {
		data, err := store.MarshalGroups(res.Groups)
		if err != nil {
			return nil, err
		}
		if err := d.Save(VariablesFile, data); err != nil {
			return nil, err
		}
		names = append(names, VariablesFile)
	} else {
		for _, g := range res.Groups {
			data, err := store.MarshalGroups([]*templify.Group{g})
			if err != nil {
				return nil, err
			}
			name := g.Name + ".yaml"
			if err := d.Save(name, data); err != nil {
				return nil, err
			}
			names = append(names, name)
		}
	}

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(d.Path(), name)
	}
	return paths, nil
}

// Commit replaces the final directory with the pending one.
func (d *OutputDir) Commit() error {
	if !d.started {
		if err := os.MkdirAll(d.tempDir(), 0755); err != nil {
			return err
		}
	}

	if err := os.RemoveAll(d.Path()); err != nil {
		return err
	}

	if err := os.Rename(d.tempDir(), d.Path()); err != nil {
		return err
	}

	d.started = false
	return nil
}

// Abort discards the pending directory.
func (d *OutputDir) Abort() error {
	d.started = false
	return os.RemoveAll(d.tempDir())
}
