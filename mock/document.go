package mock

import (
	"context"

	"github.com/fwojciec/canvasgrab"
)

// Compile-time interface verification.
var (
	_ canvasgrab.Document  = (*Document)(nil)
	_ canvasgrab.Inspector = (*Inspector)(nil)
)

// Document is a mock implementation of canvasgrab.Document.
type Document struct {
	TotalPagesFn func(ctx context.Context) (int, error)
	ScrollToFn   func(ctx context.Context, page int) (bool, error)
	ExportFn     func(ctx context.Context, page int) ([]byte, error)
	HTMLFn       func(ctx context.Context) (string, error)
	CloseFn      func() error
}

func (d *Document) TotalPages(ctx context.Context) (int, error) {
	return d.TotalPagesFn(ctx)
}

func (d *Document) ScrollTo(ctx context.Context, page int) (bool, error) {
	return d.ScrollToFn(ctx, page)
}

func (d *Document) Export(ctx context.Context, page int) ([]byte, error) {
	return d.ExportFn(ctx, page)
}

func (d *Document) HTML(ctx context.Context) (string, error) {
	return d.HTMLFn(ctx)
}

func (d *Document) Close() error {
	return d.CloseFn()
}

// Inspector is a mock implementation of canvasgrab.Inspector.
type Inspector struct {
	TotalPagesFn func(html string) (int, error)
	InventoryFn  func(html string, limit int) (*canvasgrab.Inventory, error)
}

func (i *Inspector) TotalPages(html string) (int, error) {
	return i.TotalPagesFn(html)
}

func (i *Inspector) Inventory(html string, limit int) (*canvasgrab.Inventory, error) {
	return i.InventoryFn(html, limit)
}
