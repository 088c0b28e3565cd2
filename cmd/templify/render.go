package main

import (
	"fmt"

	"github.com/fwojciec/templify/fs"
)

// Run executes the render command.
func (c *RenderCmd) Run(deps *Dependencies) error {
	in, err := fs.ResolveRenderInput(c.Inputs)
	if err != nil {
		return err
	}

	out, err := render(deps, in, c.Out)
	if err != nil {
		return err
	}

	fmt.Fprintln(deps.Stdout, out)
	return nil
}

// render loads in, renders it and writes the result. The output file is
// only touched when rendering succeeded.
func render(deps *Dependencies, in *fs.RenderInput, out string) (string, error) {
	tmpl, groups, err := in.Load(deps.Store)
	if err != nil {
		return "", err
	}

	html, err := deps.Renderer.Render(tmpl, groups)
	if err != nil {
		return "", err
	}

	if out == "" {
		out = in.DefaultOutput()
	}
	if err := fs.WriteFile(out, []byte(html)); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", out, err)
	}
	return out, nil
}
