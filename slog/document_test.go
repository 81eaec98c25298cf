package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/canvasgrab"
	"github.com/fwojciec/canvasgrab/mock"
	cgslog "github.com/fwojciec/canvasgrab/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingDocument_Export(t *testing.T) {
	t.Parallel()

	t.Run("logs page and size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Document{
			ExportFn: func(_ context.Context, page int) ([]byte, error) {
				return []byte("12345"), nil
			},
		}

		doc := cgslog.NewLoggingDocument(inner, logger)
		data, err := doc.Export(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, []byte("12345"), data)
		output := buf.String()
		assert.Contains(t, output, "msg=export")
		assert.Contains(t, output, "page=7")
		assert.Contains(t, output, "bytes=5")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Document{
			ExportFn: func(_ context.Context, page int) ([]byte, error) {
				return nil, canvasgrab.Errorf(canvasgrab.ENOTFOUND, "surface missing")
			},
		}

		doc := cgslog.NewLoggingDocument(inner, logger)
		_, err := doc.Export(context.Background(), 2)

		require.Error(t, err)
		assert.Equal(t, canvasgrab.ENOTFOUND, canvasgrab.ErrorCode(err))
		assert.Contains(t, buf.String(), "surface missing")
	})
}

func TestLoggingDocument_ScrollTo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Document{
		ScrollToFn: func(_ context.Context, page int) (bool, error) {
			return false, nil
		},
	}

	doc := cgslog.NewLoggingDocument(inner, logger)
	found, err := doc.ScrollTo(context.Background(), 4)

	require.NoError(t, err)
	assert.False(t, found)
	assert.Contains(t, buf.String(), "msg=scroll")
	assert.Contains(t, buf.String(), "found=false")
}

func TestLoggingDocument_TotalPages(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Document{
		TotalPagesFn: func(_ context.Context) (int, error) {
			return 42, nil
		},
	}

	doc := cgslog.NewLoggingDocument(inner, logger)
	total, err := doc.TotalPages(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 42, total)
	assert.Contains(t, buf.String(), "total=42")
}

func TestLoggingDocument_DelegatesClose(t *testing.T) {
	t.Parallel()

	var closed bool
	inner := &mock.Document{
		CloseFn: func() error {
			closed = true
			return nil
		},
	}

	doc := cgslog.NewLoggingDocument(inner, slog.New(slog.DiscardHandler))

	require.NoError(t, doc.Close())
	assert.True(t, closed)
}
