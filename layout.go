package canvasgrab

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Default selectors for the viewer layout the tool was built against.
const (
	DefaultSurfaceSelector   = "canvas#pdf-canvas-%d"
	DefaultContainerSelector = "#page-div-%d"
	DefaultTotalSelector     = "#totalPage"
)

// Layout describes where a viewer page keeps its per-page elements.
// SurfaceSelector and ContainerSelector are CSS selector templates with a
// single %d verb replaced by the page number.
type Layout struct {
	SurfaceSelector   string
	ContainerSelector string // optional; empty always scrolls to the top
	TotalSelector     string
}

// DefaultLayout returns the layout with the default selectors.
func DefaultLayout() Layout {
	return Layout{
		SurfaceSelector:   DefaultSurfaceSelector,
		ContainerSelector: DefaultContainerSelector,
		TotalSelector:     DefaultTotalSelector,
	}
}

// Validate returns an error if a selector is missing or malformed.
func (l Layout) Validate() error {
	if l.SurfaceSelector == "" {
		return Errorf(EINVALID, "surface selector required")
	}
	if !isPageTemplate(l.SurfaceSelector) {
		return Errorf(EINVALID, "surface selector %q must contain exactly one %%d", l.SurfaceSelector)
	}
	if l.ContainerSelector != "" && !isPageTemplate(l.ContainerSelector) {
		return Errorf(EINVALID, "container selector %q must contain exactly one %%d", l.ContainerSelector)
	}
	if l.TotalSelector == "" {
		return Errorf(EINVALID, "total page selector required")
	}
	return nil
}

// Surface returns the selector of the page's rendering surface.
func (l Layout) Surface(page int) string {
	return fmt.Sprintf(l.SurfaceSelector, page)
}

// Container returns the selector of the page's scroll container, or "" when
// the layout has none.
func (l Layout) Container(page int) string {
	if l.ContainerSelector == "" {
		return ""
	}
	return fmt.Sprintf(l.ContainerSelector, page)
}

func isPageTemplate(s string) bool {
	return strings.Count(s, "%") == 1 && strings.Count(s, "%d") == 1
}

// ParsePageCount reads a total-page indicator by stripping every non-digit
// character, so "共 120 页" and "/120" both give 120. Text without digits,
// or whose digits are zero, returns ENOTFOUND. A count above MaxPage, such
// as a date caught up in the indicator text, returns EINVALID.
func ParsePageCount(text string) (int, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, text)
	if digits == "" {
		return 0, Errorf(ENOTFOUND, "total page count not found in %q", strings.TrimFunc(text, unicode.IsSpace))
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n > MaxPage {
		return 0, Errorf(EINVALID, "total page count %q out of range", digits)
	}
	if n == 0 {
		return 0, Errorf(ENOTFOUND, "total page count is zero")
	}
	return n, nil
}
