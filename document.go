package canvasgrab

import "context"

// Document is a paginated document viewer open in a browser tab.
// Implementations translate page numbers into DOM lookups using a Layout.
type Document interface {
	// TotalPages reads the total-page indicator.
	// Returns ENOTFOUND if the indicator is absent or holds no page count.
	TotalPages(ctx context.Context) (int, error)

	// ScrollTo brings the page's container into view, smoothly and
	// centered. When the page has no container the document is scrolled
	// to the top instead and found is false.
	ScrollTo(ctx context.Context, page int) (found bool, err error)

	// Export returns the page's rendering surface encoded as PNG.
	// Returns ENOTFOUND if the surface is not in the DOM.
	Export(ctx context.Context, page int) ([]byte, error)

	// HTML returns the serialized DOM of the viewer page.
	HTML(ctx context.Context) (string, error)

	// Close releases the browser tab.
	Close() error
}

// Inventory lists which pages of a viewer currently have elements in the DOM.
type Inventory struct {
	Total      int   // 0 when the indicator is missing
	Surfaces   []int // pages with a rendering surface
	Containers []int // pages with a scroll container
}

// Inspector reads viewer state from serialized HTML.
type Inspector interface {
	// TotalPages parses the total-page indicator.
	// Returns ENOTFOUND if the indicator is absent or holds no page count.
	TotalPages(html string) (int, error)

	// Inventory reports the surfaces and containers present for pages
	// 1..limit. When the indicator is readable it takes precedence over limit.
	Inventory(html string, limit int) (*Inventory, error)
}
