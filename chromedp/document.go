// Package chromedp implements canvasgrab.Document with chromedp, as an
// alternative to the rod engine.
package chromedp

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"github.com/fwojciec/canvasgrab"
)

// Ensure Document implements canvasgrab.Document at compile time.
var _ canvasgrab.Document = (*Document)(nil)

// Document is a viewer page open in a chromedp tab. It owns the browser
// it launched, or only its tab when attached to a running browser.
//
// Calls on a Document must not overlap.
type Document struct {
	layout    canvasgrab.Layout
	inspector canvasgrab.Inspector

	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// Open starts or attaches to a browser, navigates a tab to url and waits
// for the document body. Close must be called when the Document is no
// longer needed.
func Open(ctx context.Context, url string, layout canvasgrab.Layout, inspector canvasgrab.Inspector, opts ...Option) (*Document, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	var allocCtx context.Context
	var allocCancel context.CancelFunc
	if cfg.remote != "" {
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.remote)
	} else {
		allocOpts := append(
			chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("disable-background-timer-throttling", true),
			chromedp.Flag("disable-backgrounding-occluded-windows", true),
			chromedp.Flag("disable-renderer-backgrounding", true),
			chromedp.Flag("no-first-run", true),
			chromedp.Flag("headless", cfg.headless),
		)
		if cfg.chromePath != "" {
			allocOpts = append(allocOpts, chromedp.ExecPath(cfg.chromePath))
		}
		if cfg.noSandbox {
			allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
		}
		allocCtx, allocCancel = chromedp.NewExecAllocator(context.Background(), allocOpts...)
	}
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	d := &Document{
		layout:        layout,
		inspector:     inspector,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}

	// The first Run ties the browser's lifetime to its context, so it
	// must not be a per-call context.
	if err := chromedp.Run(browserCtx); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("starting browser: %w", err)
	}

	loadCtx := ctx
	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	var actions []chromedp.Action
	if cfg.width > 0 && cfg.height > 0 {
		actions = append(actions, emulation.SetDeviceMetricsOverride(int64(cfg.width), int64(cfg.height), 1, false))
	}
	actions = append(actions,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err := d.run(loadCtx, actions...); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("opening %s: %w", url, err)
	}
	return d, nil
}

// run executes actions in the document's tab, bounded by ctx. Cancelling
// ctx aborts the actions but keeps the tab open.
func (d *Document) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := d.checkClosed(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(d.browserCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
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
	var found bool
	if err := d.run(ctx, chromedp.Evaluate(scrollTo(d.layout.Container(page)), &found)); err != nil {
		return false, fmt.Errorf("scrolling to page %d: %w", page, err)
	}
	return found, nil
}

// Export encodes the page's surface as PNG. A missing surface is ENOTFOUND.
func (d *Document) Export(ctx context.Context, page int) ([]byte, error) {
	sel := d.layout.Surface(page)

	var dataURL string
	if err := d.run(ctx, chromedp.Evaluate(export(sel), &dataURL)); err != nil {
		return nil, fmt.Errorf("exporting page %d: %w", page, err)
	}
	if dataURL == "" {
		return nil, canvasgrab.Errorf(canvasgrab.ENOTFOUND, "surface %s not found", sel)
	}

	_, data, err := canvasgrab.DecodeDataURL(dataURL)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// HTML returns the current DOM serialised as HTML.
func (d *Document) HTML(ctx context.Context) (string, error) {
	var html string
	if err := d.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("reading page HTML: %w", err)
	}
	return html, nil
}

// Close closes the tab and, when it was launched here, the browser.
// Close is idempotent.
func (d *Document) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	d.browserCancel()
	d.allocCancel()
	return nil
}

func (d *Document) checkClosed() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return canvasgrab.Errorf(canvasgrab.EINVALID, "document is closed")
	}
	return nil
}
