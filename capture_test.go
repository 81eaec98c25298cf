package canvasgrab_test

import (
	"testing"

	"github.com/fwojciec/canvasgrab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "page_7.png", canvasgrab.Filename(canvasgrab.DefaultNamePattern, 7))
	assert.Equal(t, "book-0042.png", canvasgrab.Filename("book-%04d.png", 42))
}

func TestValidateNamePattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		ok      bool
	}{
		{name: "default", pattern: canvasgrab.DefaultNamePattern, ok: true},
		{name: "no verb", pattern: "page.png"},
		{name: "two verbs", pattern: "%d-%d.png"},
		{name: "string verb", pattern: "%s.png"},
		{name: "path separator", pattern: "../page_%d.png"},
		{name: "nested directory", pattern: "pages/%d.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := canvasgrab.ValidateNamePattern(tt.pattern)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, canvasgrab.EINVALID, canvasgrab.ErrorCode(err))
		})
	}
}

func TestCapture_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid capture", func(t *testing.T) {
		t.Parallel()

		c := &canvasgrab.Capture{Page: 1, Filename: "page_1.png", Data: []byte{0x89}}

		assert.NoError(t, c.Validate())
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		t.Parallel()

		for _, c := range []*canvasgrab.Capture{
			{Page: 0, Filename: "page_0.png", Data: []byte{1}},
			{Page: 1, Data: []byte{1}},
			{Page: 1, Filename: "page_1.png"},
		} {
			err := c.Validate()
			require.Error(t, err)
			assert.Equal(t, canvasgrab.EINVALID, canvasgrab.ErrorCode(err))
		}
	})
}
