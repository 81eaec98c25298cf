// Package rod drives a Chromium browser with go-rod. It opens the viewer
// page, exposes it as a canvasgrab.Document and injects the capture
// toolbar for headed sessions.
package rod

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/canvasgrab"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultPageTimeout bounds navigation and the initial page load.
const DefaultPageTimeout = 30 * time.Second

// BrowserManager owns the connection to a Chrome browser. It either
// launches its own browser or attaches to one that is already running,
// in which case Close leaves that browser alive.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	browser    *rod.Browser
	launcher   *launcher.Launcher
	controlURL string
	mu         sync.Mutex
	closed     atomic.Bool

	headless    bool
	noSandbox   bool
	bin         string
	remote      string
	width       int
	height      int
	pageTimeout time.Duration
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithHeadless sets whether a launched browser runs without a window.
// Defaults to true. Ignored when attaching.
func WithHeadless(headless bool) ManagerOption {
	return func(bm *BrowserManager) {
		bm.headless = headless
	}
}

// WithNoSandbox sets whether a launched browser runs without the Chrome
// sandbox, which is needed when running as root. Ignored when attaching.
func WithNoSandbox(noSandbox bool) ManagerOption {
	return func(bm *BrowserManager) {
		bm.noSandbox = noSandbox
	}
}

// WithBin sets the Chrome binary to launch. rod looks one up, or downloads
// one, when empty.
func WithBin(path string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.bin = path
	}
}

// WithRemote attaches to a running browser instead of launching one. url
// may be a DevTools websocket URL or the browser's http debugging address.
func WithRemote(url string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.remote = url
	}
}

// WithViewport sets the viewport of opened pages. Zero keeps the browser's.
func WithViewport(width, height int) ManagerOption {
	return func(bm *BrowserManager) {
		bm.width = width
		bm.height = height
	}
}

// WithPageTimeout bounds navigation and load of opened pages.
func WithPageTimeout(d time.Duration) ManagerOption {
	return func(bm *BrowserManager) {
		bm.pageTimeout = d
	}
}

// NewBrowserManager launches or attaches to a browser.
// Close must be called when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		headless:    true,
		pageTimeout: DefaultPageTimeout,
	}
	for _, opt := range opts {
		opt(bm)
	}

	var err error
	if bm.remote != "" {
		err = bm.attachBrowser()
	} else {
		err = bm.launchBrowser()
	}
	if err != nil {
		return nil, err
	}
	return bm, nil
}

// Browser returns the connected browser.
func (bm *BrowserManager) Browser() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.browser
}

// Open creates a tab, navigates it to url and waits for the load event.
// The returned page is not bound to ctx.
func (bm *BrowserManager) Open(ctx context.Context, url string) (*rod.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if bm.closed.Load() {
		return nil, canvasgrab.Errorf(canvasgrab.EINVALID, "browser manager is closed")
	}

	page, err := bm.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("creating page: %w", err)
	}

	if bm.width > 0 && bm.height > 0 {
		if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:             bm.width,
			Height:            bm.height,
			DeviceScaleFactor: 1,
		}); err != nil {
			_ = page.Close()
			return nil, fmt.Errorf("setting viewport: %w", err)
		}
	}

	loadCtx := ctx
	if bm.pageTimeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(ctx, bm.pageTimeout)
		defer cancel()
	}
	p := page.Context(loadCtx)

	if err := p.Navigate(url); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := p.WaitLoad(); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("waiting for %s to load: %w", url, err)
	}
	return page, nil
}

// Close releases browser resources. A launched browser is shut down, an
// attached one is only disconnected. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	var err error
	if bm.browser != nil && bm.launcher != nil {
		err = bm.browser.Close()
	}
	bm.browser = nil
	if bm.launcher != nil {
		bm.launcher.Kill()
		bm.launcher = nil
	}
	return err
}

// ControlURL returns the DevTools websocket URL of the browser.
func (bm *BrowserManager) ControlURL() string {
	return bm.controlURL
}

// Attached reports whether the manager attached to an existing browser.
func (bm *BrowserManager) Attached() bool {
	return bm.remote != ""
}

// launchBrowser starts a new browser instance with stability flags.
func (bm *BrowserManager) launchBrowser() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(bm.headless).
		NoSandbox(bm.noSandbox)
	if bm.bin != "" {
		lnchr = lnchr.Bin(bm.bin)
	}

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	bm.browser = browser
	bm.launcher = lnchr
	bm.controlURL = u
	return nil
}

// attachBrowser connects to the browser behind bm.remote.
func (bm *BrowserManager) attachBrowser() error {
	u, err := launcher.ResolveURL(bm.remote)
	if err != nil {
		return canvasgrab.Errorf(canvasgrab.EINVALID, "resolving remote browser %q: %v", bm.remote, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connecting to remote browser: %w", err)
	}
	bm.browser = browser
	bm.controlURL = u
	return nil
}

// LauncherPID returns the process ID of the browser launcher, or 0 when
// attached. This method exists for testing purposes to verify proper cleanup.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}
