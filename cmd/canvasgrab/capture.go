package main

import (
	"fmt"

	"github.com/fwojciec/canvasgrab"
	"github.com/fwojciec/canvasgrab/capture"
	"github.com/schollz/progressbar/v3"
)

// Run executes the all command.
func (c *AllCmd) Run(deps *Dependencies) error {
	result, err := c.capturer(deps).RunAll(deps.Ctx)
	return report(deps, c.Out, result, err)
}

// Run executes the pages command. Without --select the pages are asked
// for on the prompter.
func (c *PagesCmd) Run(deps *Dependencies) error {
	capturer := c.capturer(deps)
	capturer.ClampToTotal = !c.NoClamp

	var result *capture.Result
	var err error
	if c.Select != "" {
		result, err = capturer.RunExpression(deps.Ctx, c.Select)
	} else {
		result, err = capturer.RunSelection(deps.Ctx)
	}
	return report(deps, c.Out, result, err)
}

// progressPrinter renders a progress bar per run on stdout. Skipped pages
// are also listed on stderr.
func progressPrinter(deps *Dependencies) capture.ProgressFunc {
	var bar *progressbar.ProgressBar
	return func(e capture.ProgressEvent) {
		switch e.Type {
		case capture.ProgressStarted:
			bar = progressbar.NewOptions(e.Total,
				progressbar.OptionSetWriter(deps.Stdout),
				progressbar.OptionSetDescription("Capturing pages"),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(30),
				progressbar.OptionClearOnFinish(),
			)
		case capture.ProgressCaptured, capture.ProgressFailed:
			if e.Type == capture.ProgressFailed {
				fmt.Fprintf(deps.Stderr, "skip page %d\n", e.Page)
			}
			if bar != nil {
				_ = bar.Set(e.Completed)
			}
		case capture.ProgressFinished:
			if bar != nil {
				_ = bar.Finish()
			}
		}
	}
}

// report prints the outcome of a run and passes err through.
func report(deps *Dependencies, dir string, result *capture.Result, err error) error {
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		if result != nil && len(result.Exported) > 0 {
			fmt.Fprintf(deps.Stdout, "Pages saved before stopping: %s\n", canvasgrab.FormatSelection(result.Exported))
		}
		return err
	}

	if len(result.Requested) == 0 {
		fmt.Fprintln(deps.Stdout, "No pages selected")
		return nil
	}
	if len(result.Exported) > 0 {
		fmt.Fprintf(deps.Stdout, "Pages %s written to %s\n", canvasgrab.FormatSelection(result.Exported), dir)
	}
	if len(result.Failed) > 0 {
		fmt.Fprintf(deps.Stdout, "Pages not captured: %s\n", canvasgrab.FormatSelection(result.Failed))
	}
	return nil
}

// errorText returns the user-facing text of err.
func errorText(err error) string {
	if canvasgrab.ErrorCode(err) == canvasgrab.EINTERNAL {
		return err.Error()
	}
	return canvasgrab.ErrorMessage(err)
}
