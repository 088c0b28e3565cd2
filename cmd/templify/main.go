package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/templify"
	"github.com/fwojciec/templify/goquery"
	tslog "github.com/fwojciec/templify/slog"
	"github.com/fwojciec/templify/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments. Errors are printed to
// stderr as "error: <message>" and returned.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	err := m.run(ctx, args, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", errorMessage(err))
	}
	return err
}

func (m *Main) run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("templify"),
		kong.Description("Turn static HTML into a template plus variables, and render it back"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return templify.Errorf(templify.EINVALID, "no command specified. Run 'templify --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	config, err := yaml.LoadConfig(cli.Config)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cmd == "watch" {
		level = slog.LevelInfo
	}
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Wire dependencies
	deps := &Dependencies{
		Ctx:       ctx,
		Stdout:    stdout,
		Stderr:    stderr,
		Logger:    logger,
		Config:    config,
		Store:     tslog.NewLoggingStore(yaml.NewStore(), logger),
		Extractor: tslog.NewLoggingExtractor(goquery.NewExtractor(config), logger),
	}

	var prefix string
	switch cmd {
	case "render":
		prefix = cli.Render.Prefix
	case "watch":
		prefix = cli.Watch.Prefix
	}
	deps.Renderer = tslog.NewLoggingRenderer(goquery.NewRenderer(config, prefix), logger)

	return kongCtx.Run(deps)
}

// errorMessage returns the message of application errors and the full
// text of anything else.
func errorMessage(err error) string {
	if templify.ErrorCode(err) == templify.EINTERNAL {
		return err.Error()
	}
	return templify.ErrorMessage(err)
}
