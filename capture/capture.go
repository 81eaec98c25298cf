// Package capture orchestrates page captures. It walks a document viewer
// page by page, waits for each page to render, exports its surface and
// stores the image, retrying pages whose surface has not appeared yet.
package capture

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/canvasgrab"
	"github.com/google/uuid"
)

// DefaultSettleTimeout bounds the wait for a page to render after scrolling.
const DefaultSettleTimeout = 1200 * time.Millisecond

// SelectionPrompt is shown when asking the user which pages to capture.
const SelectionPrompt = "Pages to capture (e.g. 1,3,5-7):"

// Capturer captures pages from a Document into an ImageStore.
// A Capturer carries no per-run state and may be reused for several runs,
// but runs against the same Document must not overlap.
type Capturer struct {
	Document canvasgrab.Document
	Store    canvasgrab.ImageStore
	Prompter canvasgrab.Prompter
	Notifier canvasgrab.Notifier
	Logger   *slog.Logger

	// NamePattern formats file names; defaults to canvasgrab.DefaultNamePattern.
	NamePattern string

	// RetryDelays are the pauses between capture attempts of one page.
	// Nil means DefaultRetryDelays.
	RetryDelays []time.Duration

	// SettleTimeout bounds the wait after scrolling to a page. Zero means
	// DefaultSettleTimeout and a negative value skips the wait. With a
	// non-positive PollInterval the full timeout is always waited.
	SettleTimeout time.Duration
	PollInterval  time.Duration

	// ClampToTotal drops selected pages beyond the total-page indicator.
	ClampToTotal bool

	Progress ProgressFunc
}

// Result holds the outcome of a run.
type Result struct {
	RunID     string
	Requested []int
	Exported  []int
	Failed    []int
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	RunID     string
	Page      int
	Completed int
	Total     int
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCaptured
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// session is the state of a single run.
type session struct {
	id        string
	requested []int
	exported  map[int]struct{}
	failed    []int
}

func newSession(pages []int) *session {
	return &session{
		id:        uuid.NewString(),
		requested: pages,
		exported:  make(map[int]struct{}),
	}
}

func (s *session) result() *Result {
	exported := make([]int, 0, len(s.exported))
	for page := range s.exported {
		exported = append(exported, page)
	}
	slices.Sort(exported)
	return &Result{
		RunID:     s.id,
		Requested: s.requested,
		Exported:  exported,
		Failed:    s.failed,
	}
}

// RunAll captures every page from 1 to the total-page indicator.
// A missing indicator aborts the run before any capture with ENOTFOUND, an
// implausible one with EINVALID.
func (c *Capturer) RunAll(ctx context.Context) (*Result, error) {
	total, err := c.Document.TotalPages(ctx)
	if err == nil && total > canvasgrab.MaxPage {
		err = canvasgrab.Errorf(canvasgrab.EINVALID, "total page count %d exceeds %d", total, canvasgrab.MaxPage)
	}
	if err != nil {
		switch code := canvasgrab.ErrorCode(err); code {
		case canvasgrab.ENOTFOUND:
			c.notify(ctx, "Total page count not found, nothing was captured.")
			return nil, canvasgrab.Errorf(code, "total page count not found: %s", canvasgrab.ErrorMessage(err))
		case canvasgrab.EINVALID:
			c.notify(ctx, "Total page count is not usable, nothing was captured.")
			return nil, canvasgrab.Errorf(code, "total page count unusable: %s", canvasgrab.ErrorMessage(err))
		}
		return nil, fmt.Errorf("reading total pages: %w", err)
	}

	var pages []int
	for page := 1; page <= total; page++ {
		pages = append(pages, page)
	}
	return c.RunPages(ctx, pages, "All pages captured")
}

// RunSelection asks the Prompter for a selection expression and captures
// the pages it names. A dismissed prompt ends the run quietly with an
// empty result.
func (c *Capturer) RunSelection(ctx context.Context) (*Result, error) {
	if c.Prompter == nil {
		return nil, canvasgrab.Errorf(canvasgrab.EINVALID, "no prompter configured for page selection")
	}
	input, ok, err := c.Prompter.Prompt(ctx, SelectionPrompt)
	if err != nil {
		return nil, fmt.Errorf("prompting for pages: %w", err)
	}
	if !ok {
		return newSession([]int{}).result(), nil
	}
	return c.RunExpression(ctx, input)
}

// RunExpression captures the pages named by a selection expression.
// An expression without valid pages aborts the run with EINVALID.
func (c *Capturer) RunExpression(ctx context.Context, expr string) (*Result, error) {
	pages := canvasgrab.ParseSelection(expr)
	if c.ClampToTotal && len(pages) > 0 {
		pages = c.clamp(ctx, pages)
	}
	if len(pages) == 0 {
		c.notify(ctx, "No valid pages recognised.")
		return nil, canvasgrab.Errorf(canvasgrab.EINVALID, "no valid pages in %q", expr)
	}
	return c.RunPages(ctx, pages, "Selected pages captured")
}

// clamp drops pages beyond the total-page indicator. An unreadable
// indicator leaves the selection untouched.
func (c *Capturer) clamp(ctx context.Context, pages []int) []int {
	total, err := c.Document.TotalPages(ctx)
	if err != nil {
		c.logger().Debug("total page count unavailable, selection not clamped", "err", err)
		return pages
	}
	kept := slices.DeleteFunc(slices.Clone(pages), func(page int) bool { return page > total })
	if dropped := len(pages) - len(kept); dropped > 0 {
		c.logger().Warn("selected pages beyond document end dropped",
			"total", total,
			"dropped", canvasgrab.FormatSelection(pages[len(kept):]),
		)
	}
	return kept
}

// RunPages captures pages in the given order, one at a time. Pages that
// cannot be captured are recorded in Result.Failed and never stop the run;
// only cancellation of ctx does. done is the completion notice prefix.
func (c *Capturer) RunPages(ctx context.Context, pages []int, done string) (*Result, error) {
	s := newSession(pages)
	total := len(pages)

	c.progress(ProgressEvent{Type: ProgressStarted, RunID: s.id, Total: total})

	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return s.result(), err
		}

		ok, err := c.captureWithRetry(ctx, s, page)
		if err != nil {
			return s.result(), err
		}

		event := ProgressEvent{Type: ProgressCaptured, RunID: s.id, Page: page, Completed: i + 1, Total: total}
		if !ok {
			s.failed = append(s.failed, page)
			event.Type = ProgressFailed
		}
		c.progress(event)
	}

	c.progress(ProgressEvent{Type: ProgressFinished, RunID: s.id, Completed: total, Total: total})

	result := s.result()
	c.notify(ctx, fmt.Sprintf("%s: %d of %d saved.", done, len(result.Exported), total))
	return result, nil
}

// captureWithRetry navigates to page once, then attempts the capture until
// it succeeds or the retry schedule runs out. Only a missing surface is
// retried; any other failure gives up on the page at once. The returned
// error is non-nil only when ctx is done.
func (c *Capturer) captureWithRetry(ctx context.Context, s *session, page int) (bool, error) {
	if err := c.navigateTo(ctx, page); err != nil {
		return false, err
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	maxAttempts := len(delays) + 1

	for attempt := 0; attempt < maxAttempts; attempt++ {
		ok, err := c.captureOne(ctx, s, page)
		if ok {
			return true, nil
		}
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if canvasgrab.ErrorCode(err) != canvasgrab.ENOTFOUND {
			c.logger().Warn("page capture failed", "run", s.id, "page", page, "err", err)
			return false, nil
		}

		// Don't wait after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}
		if err := sleep(ctx, delays[attempt]); err != nil {
			return false, err
		}
	}

	c.logger().Warn("page skipped, surface never appeared", "run", s.id, "page", page, "attempts", maxAttempts)
	return false, nil
}

// navigateTo scrolls page into view and waits for it to settle. Scroll
// failures are logged and the wait still happens; only ctx ends it early.
func (c *Capturer) navigateTo(ctx context.Context, page int) error {
	found, err := c.Document.ScrollTo(ctx, page)
	switch {
	case ctx.Err() != nil:
		return ctx.Err()
	case err != nil:
		c.logger().Warn("scroll failed", "page", page, "err", err)
	case !found:
		c.logger().Debug("page container not found, scrolled to top", "page", page)
	}
	return c.settle(ctx, page)
}

// settle waits until the page's surface is present and its content stops
// changing between two polls, or until the settle timeout. Without a poll
// interval it waits the whole timeout.
func (c *Capturer) settle(ctx context.Context, page int) error {
	timeout := c.SettleTimeout
	switch {
	case timeout < 0:
		return nil
	case timeout == 0:
		timeout = DefaultSettleTimeout
	}
	if c.PollInterval <= 0 {
		return sleep(ctx, timeout)
	}

	var last uint64
	var seen bool
	ready, err := WaitUntil(ctx, timeout, c.PollInterval, func(ctx context.Context) (bool, error) {
		data, err := c.Document.Export(ctx, page)
		if err != nil {
			seen = false
			if canvasgrab.ErrorCode(err) == canvasgrab.ENOTFOUND {
				return false, nil
			}
			return false, err
		}
		h := xxhash.Sum64(data)
		stable := seen && h == last
		last, seen = h, true
		return stable, nil
	})
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		c.logger().Debug("settle check failed", "page", page, "err", err)
	} else if !ready {
		c.logger().Debug("settle timeout, capturing anyway", "page", page, "timeout", timeout)
	}
	return nil
}

// captureOne exports and stores one page. A missing surface fails at once
// with ENOTFOUND; the caller decides whether to retry.
func (c *Capturer) captureOne(ctx context.Context, s *session, page int) (bool, error) {
	data, err := c.Document.Export(ctx, page)
	if err != nil {
		if canvasgrab.ErrorCode(err) == canvasgrab.ENOTFOUND {
			c.logger().Warn("surface not found, waiting for render", "run", s.id, "page", page)
		}
		return false, err
	}

	pattern := c.NamePattern
	if pattern == "" {
		pattern = canvasgrab.DefaultNamePattern
	}
	capture := &canvasgrab.Capture{
		Page:     page,
		Filename: canvasgrab.Filename(pattern, page),
		Data:     data,
		Hash:     xxhash.Sum64(data),
	}
	if err := c.Store.Save(ctx, capture); err != nil {
		return false, fmt.Errorf("saving page %d: %w", page, err)
	}

	s.exported[page] = struct{}{}
	c.logger().Info("page captured",
		"run", s.id,
		"page", page,
		"file", capture.Filename,
		"bytes", len(data),
		"hash", fmt.Sprintf("%016x", capture.Hash),
	)
	return true, nil
}

func (c *Capturer) notify(ctx context.Context, message string) {
	if c.Notifier == nil {
		return
	}
	if err := c.Notifier.Notify(ctx, message); err != nil {
		c.logger().Warn("notify failed", "err", err)
	}
}

func (c *Capturer) progress(event ProgressEvent) {
	if c.Progress != nil {
		c.Progress(event)
	}
}

func (c *Capturer) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
