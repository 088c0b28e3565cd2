package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fwojciec/templify/fs"
	"github.com/fwojciec/templify/fsnotify"
	thttp "github.com/fwojciec/templify/http"
	"golang.org/x/sync/errgroup"
)

// Run executes the watch command: one render up front, then one per change.
func (c *WatchCmd) Run(deps *Dependencies) error {
	in, err := fs.ResolveRenderInput(c.Inputs)
	if err != nil {
		return err
	}

	out := c.Out
	if out == "" {
		out = in.DefaultOutput()
	}

	var server *thttp.Server
	if c.Addr != "" {
		server = thttp.NewServer(filepath.Dir(out), filepath.Base(out), deps.Logger)
	}

	var last uint64
	rerender := func(context.Context) error {
		// A watched directory may have gained or lost stores.
		in, err := fs.ResolveRenderInput(c.Inputs)
		if err != nil {
			return err
		}
		sum, err := fs.Fingerprint(in.Paths())
		if err != nil {
			return err
		}
		if sum == last {
			deps.Logger.Debug("inputs unchanged", "sum", fmt.Sprintf("%x", sum))
			return nil
		}

		if _, err := render(deps, in, out); err != nil {
			return err
		}
		last = sum
		deps.Logger.Info("rendered", "out", out)

		if server != nil {
			server.Reload()
		}
		return nil
	}

	if err := rerender(deps.Ctx); err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, out)

	var files, dirs []string
	if in.Dir != "" {
		dirs = []string{in.Dir}
	} else {
		files = in.Paths()
	}
	watcher := fsnotify.NewWatcher(files, dirs,
		fsnotify.WithDebounce(c.debounce()),
		fsnotify.WithLogger(deps.Logger),
		fsnotify.WithFilter(isRenderInput),
	)

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.Go(func() error {
		return watcher.Run(ctx, rerender)
	})
	if server != nil {
		g.Go(func() error {
			return server.ListenAndServe(ctx, c.Addr)
		})
	}
	return g.Wait()
}

func isRenderInput(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tmpl", ".yaml", ".yml":
		return true
	}
	return false
}
