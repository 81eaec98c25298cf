package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/canvasgrab"
	"github.com/fwojciec/canvasgrab/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageStore_ImplementsInterface(t *testing.T) {
	t.Parallel()

	// Verify mock can be used where ImageStore is expected
	var _ canvasgrab.ImageStore = &mock.ImageStore{}
}

func TestImageStore_Save(t *testing.T) {
	t.Parallel()

	t.Run("delegates to SaveFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *canvasgrab.Capture
		s := &mock.ImageStore{
			SaveFn: func(_ context.Context, c *canvasgrab.Capture) error {
				calledWith = c
				return nil
			},
		}

		c := &canvasgrab.Capture{
			Page:     2,
			Filename: "page_2.png",
			Data:     []byte("png"),
		}

		err := s.Save(context.Background(), c)

		require.NoError(t, err)
		assert.Equal(t, c, calledWith)
	})
}
