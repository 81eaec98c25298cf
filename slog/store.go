package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/canvasgrab"
)

// Ensure LoggingImageStore implements canvasgrab.ImageStore.
var _ canvasgrab.ImageStore = (*LoggingImageStore)(nil)

// LoggingImageStore wraps an ImageStore with debug logging.
type LoggingImageStore struct {
	next   canvasgrab.ImageStore
	logger *slog.Logger
}

// NewLoggingImageStore creates a new LoggingImageStore.
func NewLoggingImageStore(next canvasgrab.ImageStore, logger *slog.Logger) *LoggingImageStore {
	return &LoggingImageStore{next: next, logger: logger}
}

// Save delegates to the wrapped store and logs the written file.
func (s *LoggingImageStore) Save(ctx context.Context, c *canvasgrab.Capture) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save",
			"page", c.Page,
			"file", c.Filename,
			"bytes", len(c.Data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, c)
}
