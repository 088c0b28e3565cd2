package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/templify"
)

// Ensure LoggingRenderer implements templify.Renderer.
var _ templify.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with logging.
type LoggingRenderer struct {
	next   templify.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next templify.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Render delegates to the wrapped renderer and logs the operation.
func (r *LoggingRenderer) Render(template string, groups []*templify.Group) (out string, err error) {
	defer func(begin time.Time) {
		r.logger.Info("render",
			"placeholders", len(templify.Placeholders(template)),
			"groups", len(groups),
			"bytes", len(out),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Render(template, groups)
}
