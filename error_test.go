package canvasgrab_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/canvasgrab"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := canvasgrab.Errorf(canvasgrab.ENOTFOUND, "surface for page %d not found", 3)

	assert.Equal(t, canvasgrab.ENOTFOUND, canvasgrab.ErrorCode(err))
	assert.Equal(t, "surface for page 3 not found", canvasgrab.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("exporting: %w", canvasgrab.Errorf(canvasgrab.EINVALID, "bad data URL"))

	assert.Equal(t, canvasgrab.EINVALID, canvasgrab.ErrorCode(err))
	assert.Equal(t, "bad data URL", canvasgrab.ErrorMessage(err))
}

func TestErrorCode_ForeignError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, canvasgrab.EINTERNAL, canvasgrab.ErrorCode(err))
	assert.Equal(t, "Internal error", canvasgrab.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, canvasgrab.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, canvasgrab.ErrorMessage(nil))
}
