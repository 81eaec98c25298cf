package rod

import (
	"context"
	"fmt"
	"sync"

	"github.com/fwojciec/canvasgrab"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

// Ensure Toolbar implements canvasgrab.Toolbar at compile time.
var _ canvasgrab.Toolbar = (*Toolbar)(nil)

// Binding is the window function the toolbar buttons call.
const Binding = "__canvasgrabTrigger"

// Element ids of the injected toolbar.
const (
	ToolbarID       = "canvasgrab-toolbar"
	AllButtonID     = "canvasgrab-all"
	SelectButtonID  = "canvasgrab-select"
	StatusElementID = "canvasgrab-status"
)

// Replies sent back to the page for a click.
const (
	replyAccepted = "accepted"
	replyBusy     = "busy"
)

const installJS = `(binding) => {
	const install = () => {
		if (document.getElementById("` + ToolbarID + `")) return;
		const bar = document.createElement("div");
		bar.id = "` + ToolbarID + `";
		bar.style.cssText = "position:fixed;top:10px;right:10px;z-index:9999;display:flex;flex-direction:column;align-items:flex-end;gap:10px";
		const status = document.createElement("div");
		status.id = "` + StatusElementID + `";
		status.style.cssText = "display:none;max-width:260px;padding:8px 12px;background:#333;color:#fff;border-radius:5px;font:13px sans-serif";
		let timer;
		window.__canvasgrabStatus = (text) => {
			status.textContent = text;
			status.style.display = "block";
			clearTimeout(timer);
			timer = setTimeout(() => { status.style.display = "none"; }, 5000);
		};
		const add = (id, label, trigger) => {
			const b = document.createElement("button");
			b.id = id;
			b.textContent = label;
			b.style.cssText = "padding:10px 15px;background-color:#28a745;color:white;border:none;border-radius:5px;cursor:pointer;font-size:14px";
			b.addEventListener("click", () => {
				Promise.resolve(window[binding](trigger)).then((reply) => {
					if (reply === "` + replyBusy + `") window.__canvasgrabStatus("A capture is already running.");
				});
			});
			bar.appendChild(b);
		};
		add("` + AllButtonID + `", "Export whole document", "` + string(canvasgrab.TriggerAll) + `");
		add("` + SelectButtonID + `", "Capture pages", "` + string(canvasgrab.TriggerSelection) + `");
		bar.appendChild(status);
		document.body.appendChild(bar);
	};
	if (document.body) install();
	else document.addEventListener("DOMContentLoaded", install);
}`

const (
	uninstallJS = `() => {
		const bar = document.getElementById("` + ToolbarID + `");
		if (bar) bar.remove();
		delete window.__canvasgrabStatus;
	}`
	notifyJS = `(text) => {
		if (!window.__canvasgrabStatus) return false;
		window.__canvasgrabStatus(text);
		return true;
	}`
	promptJS = `(message) => window.prompt(message)`
)

// Toolbar is the pair of capture buttons injected into a viewer tab. Clicks
// are delivered on Triggers; prompts and notices are shown in the tab.
type Toolbar struct {
	page     *rod.Page
	triggers chan canvasgrab.Trigger
	done     chan struct{}

	stopBinding  func() error
	removeScript func() error
	stopWatch    context.CancelFunc
	closeOnce    sync.Once
}

// NewToolbar injects the buttons into page and keeps them across reloads.
// Close must be called when the Toolbar is no longer needed.
func NewToolbar(page *rod.Page) (*Toolbar, error) {
	t := &Toolbar{
		page:     page,
		triggers: make(chan canvasgrab.Trigger),
		done:     make(chan struct{}),
	}

	stop, err := page.Expose(Binding, t.receive)
	if err != nil {
		return nil, fmt.Errorf("exposing toolbar binding: %w", err)
	}
	t.stopBinding = stop

	binding := gson.New(Binding).JSON("", "")
	remove, err := page.EvalOnNewDocument("(" + installJS + ")(" + binding + ")")
	if err != nil {
		_ = stop()
		return nil, fmt.Errorf("registering toolbar script: %w", err)
	}
	t.removeScript = remove

	if _, err := page.Eval(installJS, Binding); err != nil {
		_ = remove()
		_ = stop()
		return nil, fmt.Errorf("installing toolbar: %w", err)
	}

	t.watch()
	return t, nil
}

// receive handles a button click. A click is accepted only while a
// receiver is waiting on Triggers.
func (t *Toolbar) receive(arg gson.JSON) (interface{}, error) {
	trigger := canvasgrab.Trigger(arg.Str())
	switch trigger {
	case canvasgrab.TriggerAll, canvasgrab.TriggerSelection:
	default:
		return nil, canvasgrab.Errorf(canvasgrab.EINVALID, "unknown trigger %q", trigger)
	}

	select {
	case t.triggers <- trigger:
		return replyAccepted, nil
	default:
		return replyBusy, nil
	}
}

// watch closes done when the tab is destroyed.
func (t *Toolbar) watch() {
	ctx, cancel := context.WithCancel(context.Background())
	t.stopWatch = cancel

	browser := t.page.Browser().Context(ctx)
	_ = proto.TargetSetDiscoverTargets{Discover: true}.Call(browser)
	wait := browser.EachEvent(func(e *proto.TargetTargetDestroyed) bool {
		return e.TargetID == t.page.TargetID
	})
	go func() {
		wait()
		close(t.done)
	}()
}

// Triggers delivers button clicks.
func (t *Toolbar) Triggers() <-chan canvasgrab.Trigger {
	return t.triggers
}

// Done is closed when the tab is destroyed or the toolbar is closed.
func (t *Toolbar) Done() <-chan struct{} {
	return t.done
}

// Prompt shows a blocking window.prompt in the tab. A cancelled dialog
// reports ok as false.
func (t *Toolbar) Prompt(ctx context.Context, message string) (string, bool, error) {
	res, err := t.page.Context(ctx).Eval(promptJS, message)
	if err != nil {
		return "", false, fmt.Errorf("prompting in page: %w", err)
	}
	if res.Value.Nil() {
		return "", false, nil
	}
	return res.Value.Str(), true, nil
}

// Notify shows message in the toolbar's status box.
func (t *Toolbar) Notify(ctx context.Context, message string) error {
	res, err := t.page.Context(ctx).Eval(notifyJS, message)
	if err != nil {
		return fmt.Errorf("showing notice: %w", err)
	}
	if !res.Value.Bool() {
		return canvasgrab.Errorf(canvasgrab.ENOTFOUND, "toolbar is not installed in the page")
	}
	return nil
}

// Close removes the buttons from the tab. Close is safe to call multiple
// times.
func (t *Toolbar) Close() error {
	var err error
	t.closeOnce.Do(func() {
		t.stopWatch()
		if e := t.removeScript(); e != nil {
			err = fmt.Errorf("removing toolbar script: %w", e)
		}
		if e := t.stopBinding(); e != nil && err == nil {
			err = fmt.Errorf("removing toolbar binding: %w", e)
		}
		// The tab may already be gone.
		_, _ = t.page.Eval(uninstallJS)
	})
	return err
}
