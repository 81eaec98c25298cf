// Package slog provides logging decorators for canvasgrab services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/canvasgrab"
)

// Ensure LoggingDocument implements canvasgrab.Document.
var _ canvasgrab.Document = (*LoggingDocument)(nil)

// LoggingDocument wraps a Document with debug logging.
type LoggingDocument struct {
	next   canvasgrab.Document
	logger *slog.Logger
}

// NewLoggingDocument creates a new LoggingDocument.
func NewLoggingDocument(next canvasgrab.Document, logger *slog.Logger) *LoggingDocument {
	return &LoggingDocument{next: next, logger: logger}
}

// TotalPages delegates to the wrapped document and logs the count.
func (d *LoggingDocument) TotalPages(ctx context.Context) (total int, err error) {
	defer func(begin time.Time) {
		d.logger.Info("total pages",
			"total", total,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.TotalPages(ctx)
}

// ScrollTo delegates to the wrapped document and logs whether the
// container was found.
func (d *LoggingDocument) ScrollTo(ctx context.Context, page int) (found bool, err error) {
	defer func(begin time.Time) {
		d.logger.Info("scroll",
			"page", page,
			"found", found,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.ScrollTo(ctx, page)
}

// Export delegates to the wrapped document and logs the image size.
func (d *LoggingDocument) Export(ctx context.Context, page int) (data []byte, err error) {
	defer func(begin time.Time) {
		d.logger.Info("export",
			"page", page,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Export(ctx, page)
}

// HTML delegates to the wrapped document.
func (d *LoggingDocument) HTML(ctx context.Context) (html string, err error) {
	defer func(begin time.Time) {
		d.logger.Info("html",
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.HTML(ctx)
}

// Close delegates to the wrapped document.
func (d *LoggingDocument) Close() error {
	return d.next.Close()
}
