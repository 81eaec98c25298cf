package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/canvasgrab"
	"github.com/fwojciec/canvasgrab/chromedp"
	"github.com/fwojciec/canvasgrab/fs"
	"github.com/fwojciec/canvasgrab/goquery"
	"github.com/fwojciec/canvasgrab/rod"
	cgslog "github.com/fwojciec/canvasgrab/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin answers page selection prompts. Set before calling Run().
	Stdin io.Reader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin: os.Stdin,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("canvasgrab"),
		kong.Description("Capture canvas-rendered document pages to PNG files"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'canvasgrab --help' to see available commands")
	}

	if args[0] == "help" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}
	if slices.Contains(args, "--help") || slices.Contains(args, "-h") {
		_, _ = parser.Parse(args)
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	layout := cli.Layout()
	if err := layout.Validate(); err != nil {
		return err
	}
	if cmd == "toolbar" && cli.Engine != EngineRod {
		return canvasgrab.Errorf(canvasgrab.EINVALID, "the toolbar requires the %s engine", EngineRod)
	}

	deps.Logger = slog.New(slog.DiscardHandler)
	if cli.Verbose {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	deps.Inspector = goquery.NewInspector(layout)

	console := NewConsole(m.Stdin, stdout)
	deps.Prompter = console
	deps.Notifier = console

	if flags := cli.captureFlags(cmd); flags != nil {
		deps.Store = fs.NewImageStore(flags.Out)
		if cli.Verbose {
			deps.Store = cgslog.NewLoggingImageStore(deps.Store, deps.Logger)
		}
	}

	closeBrowser, err := m.openDocument(ctx, cli, cmd, layout, deps)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --remote to attach to a running browser")
		return fmt.Errorf("failed to open viewer: %w", err)
	}
	defer closeBrowser()

	if cli.Verbose {
		deps.Document = cgslog.NewLoggingDocument(deps.Document, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// captureFlags returns the capture flags of cmd, or nil if it captures
// nothing.
func (cli *CLI) captureFlags(cmd string) *CaptureFlags {
	switch cmd {
	case "all":
		return &cli.All.CaptureFlags
	case "pages":
		return &cli.Pages.CaptureFlags
	case "toolbar":
		return &cli.Toolbar.CaptureFlags
	}
	return nil
}

// url returns the viewer URL argument of cmd.
func (cli *CLI) url(cmd string) string {
	switch cmd {
	case "all":
		return cli.All.URL
	case "pages":
		return cli.Pages.URL
	case "inspect":
		return cli.Inspect.URL
	case "toolbar":
		return cli.Toolbar.URL
	}
	return ""
}

// openDocument opens the viewer with the selected engine and sets
// deps.Document, plus deps.Toolbar for the toolbar command. The returned
// function releases everything that was opened.
func (m *Main) openDocument(ctx context.Context, cli *CLI, cmd string, layout canvasgrab.Layout, deps *Dependencies) (func(), error) {
	url := cli.url(cmd)
	withToolbar := cmd == "toolbar"

	// The toolbar needs a window to click in.
	headless := cli.Headless && !withToolbar

	if cli.Engine == EngineChromedp {
		opts := []chromedp.Option{
			chromedp.WithHeadless(headless),
			chromedp.WithViewport(cli.Width, cli.Height),
			chromedp.WithTimeout(cli.Timeout),
		}
		if cli.Chrome != "" {
			opts = append(opts, chromedp.WithChromePath(cli.Chrome))
		}
		if cli.Remote != "" {
			opts = append(opts, chromedp.WithRemote(cli.Remote))
		}
		if cli.NoSandbox {
			opts = append(opts, chromedp.WithNoSandbox())
		}
		doc, err := chromedp.Open(ctx, url, layout, deps.Inspector, opts...)
		if err != nil {
			return nil, err
		}
		deps.Document = doc
		return func() { _ = doc.Close() }, nil
	}

	opts := []rod.ManagerOption{
		rod.WithHeadless(headless),
		rod.WithViewport(cli.Width, cli.Height),
		rod.WithPageTimeout(cli.Timeout),
		rod.WithNoSandbox(cli.NoSandbox),
	}
	if cli.Chrome != "" {
		opts = append(opts, rod.WithBin(cli.Chrome))
	}
	if cli.Remote != "" {
		opts = append(opts, rod.WithRemote(cli.Remote))
	}
	manager, err := rod.NewBrowserManager(opts...)
	if err != nil {
		return nil, err
	}

	page, err := manager.Open(ctx, url)
	if err != nil {
		_ = manager.Close()
		return nil, err
	}
	doc := rod.NewDocument(page, layout, deps.Inspector)
	deps.Document = doc

	closeAll := func() {
		_ = doc.Close()
		_ = manager.Close()
	}

	if withToolbar {
		toolbar, err := rod.NewToolbar(page)
		if err != nil {
			closeAll()
			return nil, err
		}
		deps.Toolbar = toolbar
		return func() {
			_ = toolbar.Close()
			closeAll()
		}, nil
	}
	return closeAll, nil
}
