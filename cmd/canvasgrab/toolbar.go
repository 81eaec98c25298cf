package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/canvasgrab"
	"github.com/fwojciec/canvasgrab/capture"
	"golang.org/x/sync/errgroup"
)

var errTabClosed = errors.New("viewer tab closed")

// Run executes the toolbar command. Button clicks start runs one at a time
// until the viewer tab is closed or the context is cancelled.
func (c *ToolbarCmd) Run(deps *Dependencies) error {
	if deps.Toolbar == nil {
		return canvasgrab.Errorf(canvasgrab.EINVALID, "no toolbar available")
	}
	toolbar := deps.Toolbar

	capturer := c.capturer(deps)
	capturer.Prompter = toolbar
	capturer.Notifier = toolbar
	capturer.ClampToTotal = true

	fmt.Fprintln(deps.Stdout, "Toolbar ready. Close the tab or press Ctrl-C to stop.")

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.Go(func() error {
		select {
		case <-toolbar.Done():
			return errTabClosed
		case <-ctx.Done():
			return nil
		}
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case trigger := <-toolbar.Triggers():
				c.runTrigger(ctx, deps, capturer, trigger)
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errTabClosed) {
		return err
	}
	fmt.Fprintln(deps.Stdout, "Toolbar stopped")
	return nil
}

// runTrigger runs the capture a button asked for. Failures are reported and
// leave the toolbar running.
func (c *ToolbarCmd) runTrigger(ctx context.Context, deps *Dependencies, capturer *capture.Capturer, trigger canvasgrab.Trigger) {
	var result *capture.Result
	var err error
	switch trigger {
	case canvasgrab.TriggerAll:
		result, err = capturer.RunAll(ctx)
	case canvasgrab.TriggerSelection:
		result, err = capturer.RunSelection(ctx)
	default:
		fmt.Fprintf(deps.Stderr, "error: unknown trigger %q\n", trigger)
		return
	}
	if ctx.Err() != nil {
		return
	}
	_ = report(deps, c.Out, result, err)
}
