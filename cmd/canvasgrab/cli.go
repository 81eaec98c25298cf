package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/canvasgrab"
	"github.com/fwojciec/canvasgrab/capture"
)

// Browser engines.
const (
	EngineRod      = "rod"
	EngineChromedp = "chromedp"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Document  canvasgrab.Document
	Inspector canvasgrab.Inspector
	Store     canvasgrab.ImageStore
	Prompter  canvasgrab.Prompter
	Notifier  canvasgrab.Notifier

	// Toolbar is set only for the toolbar command.
	Toolbar canvasgrab.Toolbar
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Globals `embed:""`

	All     AllCmd     `cmd:"" help:"Capture every page of the document"`
	Pages   PagesCmd   `cmd:"" help:"Capture selected pages"`
	Inspect InspectCmd `cmd:"" help:"Show the page count and rendered pages without capturing"`
	Toolbar ToolbarCmd `cmd:"" help:"Add capture buttons to the viewer in a browser window"`
}

// Globals are the flags shared by every command.
type Globals struct {
	Engine    string        `enum:"rod,chromedp" default:"rod" env:"CANVASGRAB_ENGINE" help:"Browser engine (rod or chromedp)"`
	Remote    string        `env:"CANVASGRAB_REMOTE" help:"DevTools address of a running browser to attach to instead of launching one"`
	Chrome    string        `env:"CANVASGRAB_CHROME" help:"Path to the Chrome or Chromium binary"`
	Headless  bool          `default:"true" negatable:"" env:"CANVASGRAB_HEADLESS" help:"Run a launched browser without a window"`
	NoSandbox bool          `env:"CANVASGRAB_NO_SANDBOX" help:"Launch the browser without its sandbox (needed when running as root)"`
	Timeout   time.Duration `short:"t" default:"30s" env:"CANVASGRAB_TIMEOUT" help:"Page load timeout"`
	Width     int           `default:"1280" env:"CANVASGRAB_WIDTH" help:"Viewport width"`
	Height    int           `default:"1800" env:"CANVASGRAB_HEIGHT" help:"Viewport height"`
	Surface   string        `default:"canvas#pdf-canvas-%d" env:"CANVASGRAB_SURFACE" help:"Selector template of a page's canvas"`
	Container string        `default:"#page-div-%d" env:"CANVASGRAB_CONTAINER" help:"Selector template of a page's scroll container (empty scrolls to the top)"`
	Total     string        `default:"#totalPage" env:"CANVASGRAB_TOTAL" help:"Selector of the total-page indicator"`
	Verbose   bool          `short:"v" env:"CANVASGRAB_VERBOSE" help:"Log browser and file operations to stderr"`
}

// Layout returns the page layout described by the selector flags.
func (g *Globals) Layout() canvasgrab.Layout {
	return canvasgrab.Layout{
		SurfaceSelector:   g.Surface,
		ContainerSelector: g.Container,
		TotalSelector:     g.Total,
	}
}

// CaptureFlags configure a capture run.
type CaptureFlags struct {
	Out         string        `short:"o" default:"." env:"CANVASGRAB_OUT" help:"Directory the images are written to"`
	NamePattern string        `default:"page_%d.png" env:"CANVASGRAB_NAME_PATTERN" help:"Image file name pattern with the page number as %d"`
	Attempts    int           `default:"5" env:"CANVASGRAB_ATTEMPTS" help:"Capture attempts per page"`
	RetryDelay  time.Duration `default:"1s" env:"CANVASGRAB_RETRY_DELAY" help:"Pause between capture attempts"`
	Settle      time.Duration `default:"1200ms" env:"CANVASGRAB_SETTLE" help:"Longest wait for a page to render after scrolling (0 skips the wait)"`
	Poll        time.Duration `default:"200ms" env:"CANVASGRAB_POLL" help:"Render check interval (0 always waits the full settle time)"`
}

// Validate returns an error if a flag value cannot be used.
func (f *CaptureFlags) Validate() error {
	if err := canvasgrab.ValidateNamePattern(f.NamePattern); err != nil {
		return err
	}
	if f.Attempts < 1 {
		return canvasgrab.Errorf(canvasgrab.EINVALID, "attempts must be at least 1")
	}
	if f.RetryDelay < 0 || f.Settle < 0 || f.Poll < 0 {
		return canvasgrab.Errorf(canvasgrab.EINVALID, "durations must not be negative")
	}
	return nil
}

// capturer builds a Capturer from the flags and dependencies.
func (f *CaptureFlags) capturer(deps *Dependencies) *capture.Capturer {
	settle := f.Settle
	if settle == 0 {
		settle = -1 // zero would mean the default
	}
	return &capture.Capturer{
		Document:      deps.Document,
		Store:         deps.Store,
		Prompter:      deps.Prompter,
		Notifier:      deps.Notifier,
		Logger:        deps.Logger,
		NamePattern:   f.NamePattern,
		RetryDelays:   capture.FixedDelays(f.Attempts, f.RetryDelay),
		SettleTimeout: settle,
		PollInterval:  f.Poll,
		Progress:      progressPrinter(deps),
	}
}

// AllCmd is the "all" subcommand.
type AllCmd struct {
	URL          string `arg:"" help:"Viewer page URL"`
	CaptureFlags `embed:""`
}

// PagesCmd is the "pages" subcommand.
type PagesCmd struct {
	URL          string `arg:"" help:"Viewer page URL"`
	Select       string `short:"s" help:"Pages to capture, e.g. 1,3,5-7 (prompted when omitted)"`
	NoClamp      bool   `help:"Keep selected pages beyond the total-page indicator"`
	CaptureFlags `embed:""`
}

// InspectCmd is the "inspect" subcommand.
type InspectCmd struct {
	URL   string `arg:"" help:"Viewer page URL"`
	Limit int    `default:"500" help:"Highest page to look for when the total-page indicator is missing"`
}

// ToolbarCmd is the "toolbar" subcommand.
type ToolbarCmd struct {
	URL          string `arg:"" help:"Viewer page URL"`
	CaptureFlags `embed:""`
}
