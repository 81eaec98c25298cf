package mock

import (
	"context"

	"github.com/fwojciec/canvasgrab"
)

// Compile-time interface verification.
var (
	_ canvasgrab.Prompter = (*Prompter)(nil)
	_ canvasgrab.Notifier = (*Notifier)(nil)
)

// Prompter is a mock implementation of canvasgrab.Prompter.
type Prompter struct {
	PromptFn func(ctx context.Context, message string) (string, bool, error)
}

func (p *Prompter) Prompt(ctx context.Context, message string) (string, bool, error) {
	return p.PromptFn(ctx, message)
}

// Notifier is a mock implementation of canvasgrab.Notifier.
type Notifier struct {
	NotifyFn func(ctx context.Context, message string) error
}

func (n *Notifier) Notify(ctx context.Context, message string) error {
	return n.NotifyFn(ctx, message)
}
