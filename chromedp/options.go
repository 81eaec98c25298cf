package chromedp

import "time"

// DefaultTimeout bounds navigation and the initial page load.
const DefaultTimeout = 30 * time.Second

// config holds internal configuration for a Document.
type config struct {
	chromePath string
	remote     string
	headless   bool
	noSandbox  bool
	width      int
	height     int
	timeout    time.Duration
}

func defaultConfig() config {
	return config{
		headless: true,
		timeout:  DefaultTimeout,
	}
}

// Option configures a Document.
type Option func(*config)

// WithChromePath sets the path to the Chrome or Chromium executable.
// By default chromedp searches standard locations.
func WithChromePath(path string) Option {
	return func(c *config) {
		c.chromePath = path
	}
}

// WithRemote attaches to a running browser's DevTools websocket URL
// instead of launching one.
func WithRemote(url string) Option {
	return func(c *config) {
		c.remote = url
	}
}

// WithHeadless sets whether a launched browser runs without a window.
// Defaults to true.
func WithHeadless(headless bool) Option {
	return func(c *config) {
		c.headless = headless
	}
}

// WithNoSandbox disables the Chrome sandbox, needed when running as root.
func WithNoSandbox() Option {
	return func(c *config) {
		c.noSandbox = true
	}
}

// WithViewport sets the tab's viewport. Zero keeps the browser's.
func WithViewport(width, height int) Option {
	return func(c *config) {
		c.width = width
		c.height = height
	}
}

// WithTimeout bounds navigation and load. A non-positive value disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}
