// Package fs provides file-based storage for captured page images.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/canvasgrab"
)

// Ensure ImageStore implements canvasgrab.ImageStore at compile time.
var _ canvasgrab.ImageStore = (*ImageStore)(nil)

// ImageStore writes captures as files into a directory.
// Each file is written to a temporary name and renamed into place, so a
// reader never observes a partially written image.
type ImageStore struct {
	dir string
}

// NewImageStore creates a new ImageStore writing into dir.
// The directory is created on first Save.
func NewImageStore(dir string) *ImageStore {
	return &ImageStore{dir: dir}
}

// Dir returns the output directory.
func (s *ImageStore) Dir() string {
	return s.dir
}

// Path returns the full path a file name is stored under.
func (s *ImageStore) Path(filename string) string {
	return filepath.Join(s.dir, filename)
}

// Save writes the capture to dir/c.Filename, replacing an existing file.
func (s *ImageStore) Save(ctx context.Context, c *canvasgrab.Capture) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Filename != filepath.Base(c.Filename) || c.Filename == "." || c.Filename == ".." {
		return canvasgrab.Errorf(canvasgrab.EINVALID, "path traversal in file name %q", c.Filename)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".canvasgrab-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(c.Data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", c.Filename, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", c.Filename, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting permissions on %s: %w", c.Filename, err)
	}
	if err := os.Rename(tmpName, s.Path(c.Filename)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming %s: %w", c.Filename, err)
	}
	return nil
}
