package mock

import (
	"context"

	"github.com/fwojciec/canvasgrab"
)

var _ canvasgrab.Toolbar = (*Toolbar)(nil)

// Toolbar is a mock implementation of canvasgrab.Toolbar.
type Toolbar struct {
	PromptFn   func(ctx context.Context, message string) (string, bool, error)
	NotifyFn   func(ctx context.Context, message string) error
	TriggersFn func() <-chan canvasgrab.Trigger
	DoneFn     func() <-chan struct{}
	CloseFn    func() error
}

func (t *Toolbar) Prompt(ctx context.Context, message string) (string, bool, error) {
	return t.PromptFn(ctx, message)
}

func (t *Toolbar) Notify(ctx context.Context, message string) error {
	return t.NotifyFn(ctx, message)
}

func (t *Toolbar) Triggers() <-chan canvasgrab.Trigger {
	return t.TriggersFn()
}

func (t *Toolbar) Done() <-chan struct{} {
	return t.DoneFn()
}

func (t *Toolbar) Close() error {
	return t.CloseFn()
}
