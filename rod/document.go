package rod

import (
	"context"
	"fmt"

	"github.com/fwojciec/canvasgrab"
	"github.com/go-rod/rod"
)

// Ensure Document implements canvasgrab.Document at compile time.
var _ canvasgrab.Document = (*Document)(nil)

const (
	scrollIntoViewJS = `() => this.scrollIntoView({behavior: "smooth", block: "center"})`
	scrollToTopJS    = `() => window.scrollTo(0, 0)`
	toDataURLJS      = `() => this.toDataURL("image/png")`
)

// Document is a viewer page open in a rod tab.
type Document struct {
	page      *rod.Page
	layout    canvasgrab.Layout
	inspector canvasgrab.Inspector
}

// NewDocument wraps an open page. The inspector reads the total-page
// indicator from the page's HTML.
func NewDocument(page *rod.Page, layout canvasgrab.Layout, inspector canvasgrab.Inspector) *Document {
	return &Document{
		page:      page,
		layout:    layout,
		inspector: inspector,
	}
}

// Page returns the underlying tab.
func (d *Document) Page() *rod.Page {
	return d.page
}

// TotalPages reads the total-page indicator.
func (d *Document) TotalPages(ctx context.Context) (int, error) {
	html, err := d.HTML(ctx)
	if err != nil {
		return 0, err
	}
	return d.inspector.TotalPages(html)
}

// ScrollTo centres the page's container in the viewport, or scrolls to the
// top of the document when the container is missing.
func (d *Document) ScrollTo(ctx context.Context, page int) (bool, error) {
	p := d.page.Context(ctx)

	if sel := d.layout.Container(page); sel != "" {
		has, el, err := p.Has(sel)
		if err != nil {
			return false, fmt.Errorf("looking up %s: %w", sel, err)
		}
		if has {
			if _, err := el.Eval(scrollIntoViewJS); err != nil {
				return true, fmt.Errorf("scrolling to page %d: %w", page, err)
			}
			return true, nil
		}
	}

	if _, err := p.Eval(scrollToTopJS); err != nil {
		return false, fmt.Errorf("scrolling to top: %w", err)
	}
	return false, nil
}

// Export encodes the page's surface as PNG. A missing surface is ENOTFOUND.
func (d *Document) Export(ctx context.Context, page int) ([]byte, error) {
	sel := d.layout.Surface(page)
	has, el, err := d.page.Context(ctx).Has(sel)
	if err != nil {
		return nil, fmt.Errorf("looking up %s: %w", sel, err)
	}
	if !has {
		return nil, canvasgrab.Errorf(canvasgrab.ENOTFOUND, "surface %s not found", sel)
	}

	res, err := el.Eval(toDataURLJS)
	if err != nil {
		return nil, fmt.Errorf("exporting page %d: %w", page, err)
	}
	_, data, err := canvasgrab.DecodeDataURL(res.Value.Str())
	if err != nil {
		return nil, err
	}
	return data, nil
}

// HTML returns the current DOM serialised as HTML.
func (d *Document) HTML(ctx context.Context) (string, error) {
	html, err := d.page.Context(ctx).HTML()
	if err != nil {
		return "", fmt.Errorf("reading page HTML: %w", err)
	}
	return html, nil
}

// Close closes the tab.
func (d *Document) Close() error {
	return d.page.Close()
}
