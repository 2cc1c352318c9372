//go:build integration

package rod_test

import (
	"testing"

	"github.com/fwojciec/lingua/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserManager_RecyclesBrowserAfterMaxPages(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(3))
	require.NoError(t, err)
	defer manager.Close()

	first, release, err := manager.Acquire()
	require.NoError(t, err)
	release()
	for range 2 {
		_, release, err := manager.Acquire()
		require.NoError(t, err)
		release()
	}

	// The fourth page finds the threshold reached and no page active.
	second, release, err := manager.Acquire()
	require.NoError(t, err)
	defer release()

	assert.NotSame(t, first, second)
}

func TestBrowserManager_DoesNotRecycleWhilePagesAreActive(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(1))
	require.NoError(t, err)
	defer manager.Close()

	first, releaseFirst, err := manager.Acquire()
	require.NoError(t, err)

	second, releaseSecond, err := manager.Acquire()
	require.NoError(t, err)
	assert.Same(t, first, second, "browser in use must not be recycled")
	assert.Equal(t, 2, manager.Active())

	releaseFirst()
	releaseFirst()
	releaseSecond()
	assert.Equal(t, 0, manager.Active())

	third, release, err := manager.Acquire()
	require.NoError(t, err)
	defer release()
	assert.NotSame(t, first, third)
}

func TestBrowserManager_AcquireAfterClose(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager()
	require.NoError(t, err)
	require.NoError(t, manager.Close())
	require.NoError(t, manager.Close())

	_, _, err = manager.Acquire()

	assert.ErrorIs(t, err, rod.ErrManagerClosed)
}
