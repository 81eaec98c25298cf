package canvasgrab

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultNamePattern names captured images after their page number.
const DefaultNamePattern = "page_%d.png"

// Capture is one exported page image.
type Capture struct {
	Page     int
	Filename string
	Data     []byte // PNG
	Hash     uint64 // fingerprint of Data
}

// Validate returns an error if the capture cannot be stored.
func (c *Capture) Validate() error {
	if c.Page < 1 {
		return Errorf(EINVALID, "capture page must be positive, got %d", c.Page)
	}
	if c.Filename == "" {
		return Errorf(EINVALID, "capture filename required")
	}
	if len(c.Data) == 0 {
		return Errorf(EINVALID, "capture for page %d is empty", c.Page)
	}
	return nil
}

// Filename formats the image file name for page using pattern.
func Filename(pattern string, page int) string {
	return fmt.Sprintf(pattern, page)
}

// ValidateNamePattern returns an error unless pattern has exactly one %d
// verb and produces a plain file name.
func ValidateNamePattern(pattern string) error {
	if strings.Count(pattern, "%") != 1 || strings.Count(pattern, "%d") != 1 {
		return Errorf(EINVALID, "name pattern %q must contain exactly one %%d", pattern)
	}
	name := Filename(pattern, 1)
	if name != filepath.Base(name) || name == "." || name == ".." {
		return Errorf(EINVALID, "name pattern %q must not contain path separators", pattern)
	}
	return nil
}

// ImageStore persists captured page images.
type ImageStore interface {
	// Save writes the capture under its Filename.
	Save(ctx context.Context, c *Capture) error
}

// Prompter collects a line of input from the user.
type Prompter interface {
	// Prompt shows message and blocks until the user answers.
	// ok is false when the user dismissed the prompt.
	Prompt(ctx context.Context, message string) (input string, ok bool, err error)
}

// Notifier shows a short notice to the user.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}
