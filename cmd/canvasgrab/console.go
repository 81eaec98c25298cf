package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/canvasgrab"
)

// Compile-time interface verification.
var (
	_ canvasgrab.Prompter = (*Console)(nil)
	_ canvasgrab.Notifier = (*Console)(nil)
)

// Console prompts on a terminal: messages go to out, answers are read a
// line at a time from in.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole returns a Console reading from in and writing to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Prompt prints message and reads one line. End of input without an
// answer counts as a dismissed prompt.
func (c *Console) Prompt(ctx context.Context, message string) (string, bool, error) {
	fmt.Fprintf(c.out, "%s ", message)

	type answer struct {
		line string
		err  error
	}
	ch := make(chan answer, 1)
	go func() {
		line, err := c.in.ReadString('\n')
		ch <- answer{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case a := <-ch:
		if a.err != nil && !errors.Is(a.err, io.EOF) {
			return "", false, fmt.Errorf("reading answer: %w", a.err)
		}
		if a.err != nil && a.line == "" {
			return "", false, nil
		}
		return strings.TrimSpace(a.line), true, nil
	}
}

// Notify prints message on its own line.
func (c *Console) Notify(_ context.Context, message string) error {
	_, err := fmt.Fprintln(c.out, message)
	return err
}
