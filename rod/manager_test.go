//go:build integration

package rod_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/canvasgrab"
	"github.com/fwojciec/canvasgrab/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserManager_OpenLoadsPage(t *testing.T) {
	t.Parallel()

	srv := newViewerServer(t)
	manager, err := rod.NewBrowserManager(rod.WithViewport(800, 600))
	require.NoError(t, err)
	defer manager.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	page, err := manager.Open(ctx, srv.URL)
	require.NoError(t, err)
	defer page.Close()

	info, err := page.Info()
	require.NoError(t, err)
	assert.Equal(t, "viewer", info.Title)
	assert.False(t, manager.Attached())
}

func TestBrowserManager_LaunchesWithoutSandbox(t *testing.T) {
	t.Parallel()

	srv := newViewerServer(t)
	manager, err := rod.NewBrowserManager(rod.WithNoSandbox(true))
	require.NoError(t, err)
	defer manager.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	page, err := manager.Open(ctx, srv.URL)
	require.NoError(t, err)
	defer page.Close()

	info, err := page.Info()
	require.NoError(t, err)
	assert.Equal(t, "viewer", info.Title)
}

func TestBrowserManager_OpenFailsAfterClose(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager()
	require.NoError(t, err)
	require.NoError(t, manager.Close())

	_, err = manager.Open(context.Background(), "about:blank")

	require.Error(t, err)
	assert.Equal(t, canvasgrab.EINVALID, canvasgrab.ErrorCode(err))
}

func TestBrowserManager_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager()
	require.NoError(t, err)

	require.NoError(t, manager.Close())
	require.NoError(t, manager.Close())
}

func TestBrowserManager_OpenRespectsCancelledContext(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager()
	require.NoError(t, err)
	defer manager.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = manager.Open(ctx, "about:blank")

	require.ErrorIs(t, err, context.Canceled)
}

func TestBrowserManager_AttachedCloseLeavesBrowserRunning(t *testing.T) {
	t.Parallel()

	srv := newViewerServer(t)
	owner, err := rod.NewBrowserManager()
	require.NoError(t, err)
	defer owner.Close()

	// Given a second manager attached to the first one's browser
	attached, err := rod.NewBrowserManager(rod.WithRemote(owner.ControlURL()))
	require.NoError(t, err)
	assert.True(t, attached.Attached())
	assert.Zero(t, attached.LauncherPID())

	// When the attached manager is closed
	require.NoError(t, attached.Close())

	// Then the browser still serves the owner
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	page, err := owner.Open(ctx, srv.URL)
	require.NoError(t, err)
	require.NoError(t, page.Close())
}
