package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/templify"
	"github.com/fwojciec/templify/fsnotify"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Config    *templify.Config
	Extractor templify.Extractor
	Renderer  templify.Renderer
	Store     templify.VariableStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `type:"path" env:"TEMPLIFY_CONFIG" help:"YAML file overriding the category and rule tables"`
	Verbose bool   `short:"v" help:"Log every operation"`

	Extract ExtractCmd `cmd:"" help:"Extract a template and its variables from an HTML document"`
	Render  RenderCmd  `cmd:"" help:"Render a template with one or more variable stores"`
	Watch   WatchCmd   `cmd:"" help:"Render, then re-render whenever the inputs change"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Input     string `arg:"" help:"HTML document to templatize"`
	OutputDir string `arg:"" help:"Directory for template.tmpl and the variable stores (replaced)"`
	Split     bool   `short:"s" help:"Write one store per variable group instead of variables.yaml"`
}

// RenderCmd is the "render" subcommand.
type RenderCmd struct {
	Inputs []string `arg:"" help:"Extract output directory, or a .tmpl template followed by .yaml stores"`
	Prefix string   `short:"p" env:"TEMPLIFY_PREFIX" help:"Path prefix for image, resource and script values"`
	Out    string   `short:"o" help:"Output file (default: rendered.html next to the template)"`
}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct {
	Inputs   []string      `arg:"" help:"Extract output directory, or a .tmpl template followed by .yaml stores"`
	Prefix   string        `short:"p" env:"TEMPLIFY_PREFIX" help:"Path prefix for image, resource and script values"`
	Out      string        `short:"o" help:"Output file (default: rendered.html next to the template)"`
	Addr     string        `short:"a" help:"Serve the output with live reload on this address (e.g. localhost:8000)"`
	Debounce time.Duration `default:"100ms" help:"Quiet period before re-rendering"`
}

// debounce returns the configured debounce or the watcher default.
func (c *WatchCmd) debounce() time.Duration {
	if c.Debounce <= 0 {
		return fsnotify.DefaultDebounce
	}
	return c.Debounce
}
