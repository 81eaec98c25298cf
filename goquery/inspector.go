// Package goquery reads document viewer state from serialized HTML.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/canvasgrab"
)

// Ensure Inspector implements canvasgrab.Inspector at compile time.
var _ canvasgrab.Inspector = (*Inspector)(nil)

// Inspector finds the total-page indicator and per-page elements of a
// viewer using the selectors of a Layout.
type Inspector struct {
	layout canvasgrab.Layout
}

// NewInspector creates a new Inspector for the given layout.
func NewInspector(layout canvasgrab.Layout) *Inspector {
	return &Inspector{layout: layout}
}

// TotalPages parses the text of the first element matching the layout's
// total selector.
func (i *Inspector) TotalPages(html string) (int, error) {
	doc, err := parse(html)
	if err != nil {
		return 0, err
	}
	return i.totalPages(doc)
}

func (i *Inspector) totalPages(doc *goquery.Document) (int, error) {
	sel := doc.Find(i.layout.TotalSelector).First()
	if sel.Length() == 0 {
		return 0, canvasgrab.Errorf(canvasgrab.ENOTFOUND, "total page indicator %q not found", i.layout.TotalSelector)
	}
	return canvasgrab.ParsePageCount(sel.Text())
}

// Inventory reports which of pages 1..limit have a surface and a container
// in the DOM. A readable total-page indicator replaces limit.
func (i *Inspector) Inventory(html string, limit int) (*canvasgrab.Inventory, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	inv := &canvasgrab.Inventory{}
	if total, err := i.totalPages(doc); err == nil {
		inv.Total = total
		limit = total
	}
	if limit <= 0 {
		return nil, canvasgrab.Errorf(canvasgrab.EINVALID, "page limit required when the total page indicator is missing")
	}

	for page := 1; page <= limit; page++ {
		if doc.Find(i.layout.Surface(page)).Length() > 0 {
			inv.Surfaces = append(inv.Surfaces, page)
		}
		if sel := i.layout.Container(page); sel != "" && doc.Find(sel).Length() > 0 {
			inv.Containers = append(inv.Containers, page)
		}
	}
	return inv, nil
}

func parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, canvasgrab.Errorf(canvasgrab.EINVALID, "parsing HTML: %v", err)
	}
	return doc, nil
}
