package mock

import (
	"context"

	"github.com/fwojciec/canvasgrab"
)

var _ canvasgrab.ImageStore = (*ImageStore)(nil)

// ImageStore is a mock implementation of canvasgrab.ImageStore.
type ImageStore struct {
	SaveFn func(ctx context.Context, c *canvasgrab.Capture) error
}

func (s *ImageStore) Save(ctx context.Context, c *canvasgrab.Capture) error {
	return s.SaveFn(ctx, c)
}
