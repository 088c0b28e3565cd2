package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fwojciec/templify"
	"github.com/fwojciec/templify/fs"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	out, err := filepath.Abs(c.OutputDir)
	if err != nil {
		return err
	}
	in, err := filepath.Abs(c.Input)
	if err != nil {
		return err
	}
	if out == filepath.Dir(out) || strings.HasPrefix(in, out+string(filepath.Separator)) {
		return templify.Errorf(templify.EINVALID, "output directory %s would remove the input document", c.OutputDir)
	}

	doc, err := fs.ReadDocument(c.Input)
	if err != nil {
		return err
	}

	res, err := deps.Extractor.Extract(doc)
	if err != nil {
		return err
	}

	dir := fs.NewOutputDir(out)
	paths, err := dir.SaveResult(res, deps.Store, c.Split)
	if err != nil {
		_ = dir.Abort()
		return err
	}
	if err := dir.Commit(); err != nil {
		_ = dir.Abort()
		return fmt.Errorf("failed to replace %s: %w", out, err)
	}

	for _, p := range paths {
		fmt.Fprintln(deps.Stdout, p)
	}
	return nil
}
