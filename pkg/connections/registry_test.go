package connections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshworks/meshcoord/pkg/logger"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	return NewRegistry(logger.NewTestLogger())
}

func TestConnectLifecycle(t *testing.T) {
	registry := newTestRegistry(t)

	require.NoError(t, registry.BeginConnecting("COM5"))
	assert.Equal(t, StateConnecting, registry.StateOf("COM5"))

	registry.SetConnected("COM5")
	assert.Equal(t, StateConnected, registry.StateOf("COM5"))
}

func TestUnknownKeysReportDisconnected(t *testing.T) {
	registry := newTestRegistry(t)

	entry, tracked := registry.Get("/dev/ttyUSB0")
	assert.False(t, tracked)
	assert.Equal(t, StateDisconnected, entry.State)
	assert.Equal(t, "/dev/ttyUSB0", entry.DeviceKey)
}

func TestBeginConnectingRejectsActiveDevice(t *testing.T) {
	registry := newTestRegistry(t)

	require.NoError(t, registry.BeginConnecting("COM5"))
	require.ErrorIs(t, registry.BeginConnecting("COM5"), ErrAlreadyActive)

	registry.SetConnected("COM5")
	require.ErrorIs(t, registry.BeginConnecting("COM5"), ErrAlreadyActive)
}

func TestFailureAllowsRetry(t *testing.T) {
	registry := newTestRegistry(t)

	require.NoError(t, registry.BeginConnecting("COM5"))
	registry.SetFailed("COM5", "the system cannot find the file specified")

	entry, tracked := registry.Get("COM5")
	assert.True(t, tracked)
	assert.Equal(t, StateFailed, entry.State)
	assert.Equal(t, "the system cannot find the file specified", entry.Reason)

	// A new attempt is legal from Failed and clears the reason.
	require.NoError(t, registry.BeginConnecting("COM5"))

	entry, _ = registry.Get("COM5")
	assert.Equal(t, StateConnecting, entry.State)
	assert.Empty(t, entry.Reason)
}

func TestFailureFromAnyState(t *testing.T) {
	registry := newTestRegistry(t)

	require.NoError(t, registry.BeginConnecting("COM5"))
	registry.SetConnected("COM5")

	// A connected device can drop at any moment.
	registry.SetFailed("COM5", "serial link lost")
	assert.Equal(t, StateFailed, registry.StateOf("COM5"))
}

func TestDisconnectIsIdempotent(t *testing.T) {
	registry := newTestRegistry(t)

	require.NoError(t, registry.BeginConnecting("COM5"))
	registry.SetConnected("COM5")

	registry.SetDisconnected("COM5")
	registry.SetDisconnected("COM5")
	registry.SetDisconnected("COM5")

	assert.Equal(t, StateDisconnected, registry.StateOf("COM5"))
}

func TestAllAndClearAll(t *testing.T) {
	registry := newTestRegistry(t)

	require.NoError(t, registry.BeginConnecting("COM5"))
	require.NoError(t, registry.BeginConnecting("192.168.1.20:4403"))

	assert.Len(t, registry.All(), 2)

	registry.ClearAll()
	assert.Empty(t, registry.All())
}
