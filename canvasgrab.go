// Package canvasgrab captures canvas-rendered document pages from a browser
// tab. It drives a document viewer page by page, waits for each page's
// canvas to render, exports it as a PNG and stores one image per page.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, chromedp/, goquery/).
package canvasgrab
