package goquery_test

import (
	"testing"

	"github.com/fwojciec/canvasgrab"
	"github.com/fwojciec/canvasgrab/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const viewerHTML = `<!DOCTYPE html>
<html>
<body>
<div class="toolbar"><span id="totalPage">/ 4</span></div>
<div id="viewer">
  <div id="page-div-1"><canvas id="pdf-canvas-1"></canvas></div>
  <div id="page-div-2"><canvas id="pdf-canvas-2"></canvas></div>
  <div id="page-div-3"></div>
  <div id="page-div-4"></div>
</div>
</body>
</html>`

func TestInspector_TotalPages(t *testing.T) {
	t.Parallel()

	t.Run("reads digits from the indicator", func(t *testing.T) {
		t.Parallel()

		inspector := goquery.NewInspector(canvasgrab.DefaultLayout())

		total, err := inspector.TotalPages(viewerHTML)

		require.NoError(t, err)
		assert.Equal(t, 4, total)
	})

	t.Run("missing indicator is not found", func(t *testing.T) {
		t.Parallel()

		inspector := goquery.NewInspector(canvasgrab.DefaultLayout())

		_, err := inspector.TotalPages(`<html><body><canvas id="pdf-canvas-1"></canvas></body></html>`)

		require.Error(t, err)
		assert.Equal(t, canvasgrab.ENOTFOUND, canvasgrab.ErrorCode(err))
	})

	t.Run("indicator without digits is not found", func(t *testing.T) {
		t.Parallel()

		inspector := goquery.NewInspector(canvasgrab.DefaultLayout())

		_, err := inspector.TotalPages(`<html><body><span id="totalPage">--</span></body></html>`)

		require.Error(t, err)
		assert.Equal(t, canvasgrab.ENOTFOUND, canvasgrab.ErrorCode(err))
	})

	t.Run("uses custom selector", func(t *testing.T) {
		t.Parallel()

		layout := canvasgrab.DefaultLayout()
		layout.TotalSelector = ".page-count"
		inspector := goquery.NewInspector(layout)

		total, err := inspector.TotalPages(`<html><body><b class="page-count">Pages: 12</b></body></html>`)

		require.NoError(t, err)
		assert.Equal(t, 12, total)
	})
}

func TestInspector_Inventory(t *testing.T) {
	t.Parallel()

	t.Run("lists rendered surfaces and containers", func(t *testing.T) {
		t.Parallel()

		inspector := goquery.NewInspector(canvasgrab.DefaultLayout())

		inv, err := inspector.Inventory(viewerHTML, 0)

		require.NoError(t, err)
		assert.Equal(t, 4, inv.Total)
		assert.Equal(t, []int{1, 2}, inv.Surfaces)
		assert.Equal(t, []int{1, 2, 3, 4}, inv.Containers)
	})

	t.Run("falls back to limit without indicator", func(t *testing.T) {
		t.Parallel()

		inspector := goquery.NewInspector(canvasgrab.DefaultLayout())
		html := `<html><body><canvas id="pdf-canvas-1"></canvas><canvas id="pdf-canvas-5"></canvas></body></html>`

		inv, err := inspector.Inventory(html, 3)

		require.NoError(t, err)
		assert.Zero(t, inv.Total)
		assert.Equal(t, []int{1}, inv.Surfaces)
		assert.Empty(t, inv.Containers)
	})

	t.Run("requires a limit without indicator", func(t *testing.T) {
		t.Parallel()

		inspector := goquery.NewInspector(canvasgrab.DefaultLayout())

		_, err := inspector.Inventory(`<html><body></body></html>`, 0)

		require.Error(t, err)
		assert.Equal(t, canvasgrab.EINVALID, canvasgrab.ErrorCode(err))
	})

	t.Run("skips containers when layout has none", func(t *testing.T) {
		t.Parallel()

		layout := canvasgrab.DefaultLayout()
		layout.ContainerSelector = ""
		inspector := goquery.NewInspector(layout)

		inv, err := inspector.Inventory(viewerHTML, 0)

		require.NoError(t, err)
		assert.Empty(t, inv.Containers)
		assert.Equal(t, []int{1, 2}, inv.Surfaces)
	})
}
