// Package slog provides logging decorators for templify services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/templify"
)

// Ensure LoggingExtractor implements templify.Extractor.
var _ templify.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   templify.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next templify.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(html string) (res *templify.Result, err error) {
	defer func(begin time.Time) {
		attrs := []any{"bytes", len(html)}
		if res != nil {
			attrs = append(attrs, "entries", res.EntryCount())
			for _, g := range res.Groups {
				attrs = append(attrs, g.Name, g.Len())
			}
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		e.logger.Info("extract", attrs...)
	}(time.Now())
	return e.next.Extract(html)
}
