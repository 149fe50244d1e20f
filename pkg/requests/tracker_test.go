package requests

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshworks/meshcoord/pkg/logger"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()

	return NewTracker(logger.NewTestLogger())
}

func TestTrackerLifecycle(t *testing.T) {
	tracker := newTestTracker(t)

	assert.Equal(t, StateIdle, tracker.StatusOf("device.connect").State)

	tracker.Begin("device.connect")
	assert.Equal(t, StatePending, tracker.StatusOf("device.connect").State)

	tracker.Succeed("device.connect")
	assert.Equal(t, StateSucceeded, tracker.StatusOf("device.connect").State)

	tracker.Fail("device.connect", "port busy")
	status := tracker.StatusOf("device.connect")
	assert.Equal(t, StateFailed, status.State)
	assert.Equal(t, "port busy", status.Message)

	// Reissuing the operation discards the failure.
	tracker.Begin("device.connect")
	status = tracker.StatusOf("device.connect")
	assert.Equal(t, StatePending, status.State)
	assert.Empty(t, status.Message)
}

func TestTrackerLastSettledWins(t *testing.T) {
	tracker := newTestTracker(t)

	tracker.Begin("config.commit")
	tracker.Fail("config.commit", "radio rejected lora settings")
	tracker.Succeed("config.commit")

	status := tracker.StatusOf("config.commit")
	assert.Equal(t, StateSucceeded, status.State)
	assert.Empty(t, status.Message)
}

func TestTrackerScopedNamesAreIndependent(t *testing.T) {
	tracker := newTestTracker(t)

	com5 := Scoped("device.connect", "COM5")
	tty := Scoped("device.connect", "/dev/ttyUSB0")

	tracker.Begin(com5)
	tracker.Fail(com5, "access denied")
	tracker.Begin(tty)
	tracker.Succeed(tty)

	assert.Equal(t, StateFailed, tracker.StatusOf(com5).State)
	assert.Equal(t, StateSucceeded, tracker.StatusOf(tty).State)
}

func TestTrackerClearScope(t *testing.T) {
	tracker := newTestTracker(t)

	tracker.Succeed(Scoped("device.connect", "COM5"))
	tracker.Fail(Scoped("message.send_text", "COM5"), "timeout")
	tracker.Succeed(Scoped("device.connect", "COM6"))
	tracker.Succeed("graph.fetch")

	tracker.ClearScope("COM5")

	assert.Equal(t, StateIdle, tracker.StatusOf(Scoped("device.connect", "COM5")).State)
	assert.Equal(t, StateIdle, tracker.StatusOf(Scoped("message.send_text", "COM5")).State)
	assert.Equal(t, StateSucceeded, tracker.StatusOf(Scoped("device.connect", "COM6")).State)
	assert.Equal(t, StateSucceeded, tracker.StatusOf("graph.fetch").State)
}

func TestTrackSuccess(t *testing.T) {
	tracker := newTestTracker(t)

	var observed State

	err := tracker.Track(context.Background(), "graph.fetch", func(context.Context) error {
		observed = tracker.StatusOf("graph.fetch").State
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, StatePending, observed)
	assert.Equal(t, StateSucceeded, tracker.StatusOf("graph.fetch").State)
}

func TestTrackFailureRunsCallbacksAndReturnsError(t *testing.T) {
	tracker := newTestTracker(t)

	backendErr := errors.New("bridge unavailable")

	var callbackErr error

	err := tracker.Track(context.Background(), "graph.fetch", func(context.Context) error {
		return backendErr
	}, func(err error) {
		callbackErr = err
	})

	require.ErrorIs(t, err, backendErr)
	assert.Equal(t, backendErr, callbackErr)

	status := tracker.StatusOf("graph.fetch")
	assert.Equal(t, StateFailed, status.State)
	assert.Equal(t, "bridge unavailable", status.Message)
}

func TestTrackerClearAll(t *testing.T) {
	tracker := newTestTracker(t)

	tracker.Succeed("a")
	tracker.Fail("b", "x")
	tracker.ClearAll()

	assert.Equal(t, StateIdle, tracker.StatusOf("a").State)
	assert.Equal(t, StateIdle, tracker.StatusOf("b").State)
}
