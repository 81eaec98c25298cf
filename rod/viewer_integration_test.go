//go:build integration

package rod_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// viewerHTML mimics a canvas document viewer with three pages. The third
// page renders its canvas only after a short delay.
const viewerHTML = `<!DOCTYPE html>
<html>
<head><title>viewer</title></head>
<body>
<div id="toolbar">Page <span id="totalPage">/ 3</span></div>
<div id="page-div-1" style="height:1200px"><canvas id="pdf-canvas-1" width="120" height="160"></canvas></div>
<div id="page-div-2" style="height:1200px"><canvas id="pdf-canvas-2" width="120" height="160"></canvas></div>
<div id="page-div-3" style="height:1200px"></div>
<script>
const paint = (id, color) => {
	const ctx = document.getElementById(id).getContext("2d");
	ctx.fillStyle = color;
	ctx.fillRect(0, 0, 120, 160);
};
paint("pdf-canvas-1", "#c00");
paint("pdf-canvas-2", "#0c0");
setTimeout(() => {
	const c = document.createElement("canvas");
	c.id = "pdf-canvas-3";
	c.width = 120;
	c.height = 160;
	document.getElementById("page-div-3").appendChild(c);
	paint("pdf-canvas-3", "#00c");
}, 300);
</script>
</body>
</html>`

func newViewerServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(viewerHTML))
	}))
	t.Cleanup(srv.Close)
	return srv
}
