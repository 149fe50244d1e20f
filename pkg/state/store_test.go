package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshworks/meshcoord/pkg/logger"
	"github.com/meshworks/meshcoord/pkg/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	return NewStore(logger.NewTestLogger())
}

func u32(v uint32) *uint32 { return &v }

func TestDeviceReadsAreDetached(t *testing.T) {
	store := newTestStore(t)

	store.CreateDevice("COM5", 42)
	store.UpsertWaypoint("COM5", models.NormalizedWaypoint{ID: 7, Name: "camp"})

	device, ok := store.Device("COM5")
	require.True(t, ok)

	// Mutating the copy must not leak back into the store.
	device.Waypoints[7].Name = "mutated"
	device.Nodes[99] = &models.MeshNode{Num: 99}

	fresh, ok := store.Device("COM5")
	require.True(t, ok)
	assert.Equal(t, "camp", fresh.Waypoints[7].Name)
	assert.NotContains(t, fresh.Nodes, uint32(99))
}

func TestRemoveDeviceClearsPrimaryAndSelection(t *testing.T) {
	store := newTestStore(t)

	store.CreateDevice("COM5", 42)
	store.SetPrimaryDeviceKey("COM5")
	store.UpsertWaypoint("COM5", models.NormalizedWaypoint{ID: 7})
	store.SetActiveWaypoint(u32(7))

	store.RemoveDevice("COM5")

	assert.Empty(t, store.PrimaryDeviceKey())
	assert.Nil(t, store.ActiveWaypoint())
	assert.Equal(t, InfoPaneNone, store.UI().InfoPane)

	_, ok := store.Device("COM5")
	assert.False(t, ok)
}

func TestRemoveDeviceKeepsOtherPrimary(t *testing.T) {
	store := newTestStore(t)

	store.CreateDevice("COM5", 42)
	store.CreateDevice("COM6", 43)
	store.SetPrimaryDeviceKey("COM6")

	store.RemoveDevice("COM5")

	assert.Equal(t, "COM6", store.PrimaryDeviceKey())
}

func TestActiveWaypointResolvesToNilAfterDeletion(t *testing.T) {
	store := newTestStore(t)

	store.CreateDevice("COM5", 42)
	store.SetPrimaryDeviceKey("COM5")
	store.UpsertWaypoint("COM5", models.NormalizedWaypoint{ID: 7, Name: "camp"})
	store.SetActiveWaypoint(u32(7))

	require.NotNil(t, store.ActiveWaypoint())
	assert.Equal(t, InfoPaneWaypoint, store.UI().InfoPane)

	store.RemoveWaypoint("COM5", 7)

	// The selection is gone with the waypoint, never a dangling id.
	assert.Nil(t, store.ActiveWaypoint())
	assert.Nil(t, store.UI().ActiveWaypointID)
	assert.Equal(t, InfoPaneNone, store.UI().InfoPane)
}

func TestSelectionIsExclusive(t *testing.T) {
	store := newTestStore(t)

	store.SetActiveWaypoint(u32(7))
	store.SetActiveNode(u32(42))

	ui := store.UI()
	assert.Nil(t, ui.ActiveWaypointID)
	require.NotNil(t, ui.ActiveNodeNum)
	assert.Equal(t, uint32(42), *ui.ActiveNodeNum)
	assert.Equal(t, InfoPaneNone, ui.InfoPane)
}

func TestClosingPaneDropsWaypointSelection(t *testing.T) {
	store := newTestStore(t)

	store.SetActiveWaypoint(u32(7))
	store.SetInfoPane(InfoPaneNone)

	assert.Nil(t, store.UI().ActiveWaypointID)
}

func TestApplyDeviceUpdateReplacesWholesale(t *testing.T) {
	store := newTestStore(t)

	store.CreateDevice("COM5", 42)
	store.UpsertWaypoint("COM5", models.NormalizedWaypoint{ID: 7})

	update := models.NewMeshDevice("COM5", 42)
	update.Ready = true
	update.Nodes[3] = &models.MeshNode{Num: 3}

	store.ApplyDeviceUpdate("COM5", update)

	device, ok := store.Device("COM5")
	require.True(t, ok)
	assert.True(t, device.Ready)
	assert.Contains(t, device.Nodes, uint32(3))
	assert.NotContains(t, device.Waypoints, uint32(7))
}

func TestMessageLog(t *testing.T) {
	store := newTestStore(t)

	store.CreateDevice("COM5", 42)
	store.AppendMessage("COM5", models.ChannelMessage{
		ID:      "m1",
		Channel: 0,
		Text:    "hello mesh",
		State:   models.MessageStatePending,
	})

	store.SetMessageState("COM5", 0, "m1", models.MessageStateAcknowledged)

	device, _ := store.Device("COM5")
	require.Len(t, device.Messages[0], 1)
	assert.Equal(t, models.MessageStateAcknowledged, device.Messages[0][0].State)

	// Unknown ids and devices are no-ops.
	store.SetMessageState("COM5", 0, "missing", models.MessageStateError)
	store.SetMessageState("COM9", 0, "m1", models.MessageStateError)
}

func TestTryBeginConfigCommit(t *testing.T) {
	store := newTestStore(t)

	_, tracked := store.TryBeginConfigCommit("COM5")
	assert.False(t, tracked)

	store.CreateDevice("COM5", 42)

	started, tracked := store.TryBeginConfigCommit("COM5")
	assert.True(t, tracked)
	assert.True(t, started)
	assert.True(t, store.ConfigInProgress("COM5"))

	// The slot is held until released; a second claim loses.
	started, tracked = store.TryBeginConfigCommit("COM5")
	assert.True(t, tracked)
	assert.False(t, started)

	store.SetConfigInProgress("COM5", false)

	started, _ = store.TryBeginConfigCommit("COM5")
	assert.True(t, started)
}

func TestStagedConfigBuffers(t *testing.T) {
	store := newTestStore(t)

	store.StageRadioConfig(models.RadioConfig{
		LoRa: &models.LoRaConfig{HopLimit: u32(5)},
	})
	store.StageRadioConfig(models.RadioConfig{
		LoRa: &models.LoRaConfig{TxEnabled: boolPtr(true)},
	})
	store.StageModuleConfig(models.ModuleConfig{
		MQTT: &models.MQTTConfig{Enabled: boolPtr(true)},
	})

	radio := store.EditedRadioConfig()
	require.NotNil(t, radio.LoRa)
	assert.Equal(t, uint32(5), *radio.LoRa.HopLimit)
	assert.True(t, *radio.LoRa.TxEnabled)

	// Clearing the radio section leaves module edits staged.
	store.ClearStagedSections([]models.ConfigSection{models.SectionRadio})

	assert.Nil(t, store.EditedRadioConfig().LoRa)
	require.NotNil(t, store.EditedModuleConfig().MQTT)
	assert.True(t, *store.EditedModuleConfig().MQTT.Enabled)
}

func TestStagedChannelEdits(t *testing.T) {
	store := newTestStore(t)

	name := "ops"
	role := "SECONDARY"

	store.StageChannelConfig(1, models.ChannelConfig{Name: &name})
	store.StageChannelConfig(1, models.ChannelConfig{Role: &role})

	channels := store.EditedChannels()
	require.Contains(t, channels, int32(1))
	assert.Equal(t, "ops", *channels[1].Name)
	assert.Equal(t, "SECONDARY", *channels[1].Role)

	store.ClearStagedSections([]models.ConfigSection{models.SectionChannel})
	assert.Empty(t, store.EditedChannels())
}

func boolPtr(v bool) *bool { return &v }
