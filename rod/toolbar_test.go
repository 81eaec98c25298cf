//go:build integration

package rod_test

import (
	"testing"
	"time"

	"github.com/fwojciec/canvasgrab"
	"github.com/fwojciec/canvasgrab/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolbar_InstallsButtons(t *testing.T) {
	t.Parallel()

	doc, ctx := openViewer(t)

	toolbar, err := rod.NewToolbar(doc.Page())
	require.NoError(t, err)
	defer toolbar.Close()

	page := doc.Page().Context(ctx)
	all, err := page.Element("#" + rod.AllButtonID)
	require.NoError(t, err)
	assert.Equal(t, "Export whole document", all.MustText())

	sel, err := page.Element("#" + rod.SelectButtonID)
	require.NoError(t, err)
	assert.Equal(t, "Capture pages", sel.MustText())
}

func TestToolbar_ClickDeliversTrigger(t *testing.T) {
	t.Parallel()

	doc, ctx := openViewer(t)

	toolbar, err := rod.NewToolbar(doc.Page())
	require.NoError(t, err)
	defer toolbar.Close()

	// Given a receiver waiting for a trigger
	got := make(chan canvasgrab.Trigger, 1)
	go func() {
		got <- <-toolbar.Triggers()
	}()

	// When the selection button is clicked
	_, err = doc.Page().Context(ctx).Eval(`(id) => document.getElementById(id).click()`, rod.SelectButtonID)
	require.NoError(t, err)

	// Then the selection trigger arrives
	select {
	case trigger := <-got:
		assert.Equal(t, canvasgrab.TriggerSelection, trigger)
	case <-time.After(5 * time.Second):
		t.Fatal("trigger not delivered")
	}
}

func TestToolbar_NotifyShowsStatus(t *testing.T) {
	t.Parallel()

	doc, ctx := openViewer(t)

	toolbar, err := rod.NewToolbar(doc.Page())
	require.NoError(t, err)
	defer toolbar.Close()

	require.NoError(t, toolbar.Notify(ctx, "All pages captured: 3 of 3 saved."))

	status, err := doc.Page().Context(ctx).Element("#" + rod.StatusElementID)
	require.NoError(t, err)
	assert.Equal(t, "All pages captured: 3 of 3 saved.", status.MustText())
}

func TestToolbar_CloseRemovesButtons(t *testing.T) {
	t.Parallel()

	doc, ctx := openViewer(t)

	toolbar, err := rod.NewToolbar(doc.Page())
	require.NoError(t, err)

	require.NoError(t, toolbar.Close())
	require.NoError(t, toolbar.Close())

	has, _, err := doc.Page().Context(ctx).Has("#" + rod.ToolbarID)
	require.NoError(t, err)
	assert.False(t, has)

	select {
	case <-toolbar.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("done not closed")
	}
}

func TestToolbar_DoneClosesWithTab(t *testing.T) {
	t.Parallel()

	doc, _ := openViewer(t)

	toolbar, err := rod.NewToolbar(doc.Page())
	require.NoError(t, err)
	defer toolbar.Close()

	require.NoError(t, doc.Close())

	select {
	case <-toolbar.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("done not closed after tab closed")
	}
}
