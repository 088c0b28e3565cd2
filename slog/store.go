package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/templify"
)

// Ensure LoggingStore implements templify.VariableStore.
var _ templify.VariableStore = (*LoggingStore)(nil)

// LoggingStore wraps a VariableStore with debug logging.
type LoggingStore struct {
	next   templify.VariableStore
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next templify.VariableStore, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

func (s *LoggingStore) MarshalGroups(groups []*templify.Group) (data []byte, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("encode variables",
			"groups", len(groups),
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.MarshalGroups(groups)
}

func (s *LoggingStore) UnmarshalGroups(data []byte) (groups []*templify.Group, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("decode variables",
			"bytes", len(data),
			"groups", len(groups),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UnmarshalGroups(data)
}
