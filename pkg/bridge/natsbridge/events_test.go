package natsbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshworks/meshcoord/pkg/bridge"
)

func TestDecodeDeviceUpdateEvent(t *testing.T) {
	frame := []byte(`{
		"type": "device_update",
		"payload": {
			"deviceKey": "COM5",
			"device": {"key": "COM5", "num": 42, "ready": true}
		}
	}`)

	event, err := decodeEvent(frame)
	require.NoError(t, err)

	update, ok := event.(*bridge.DeviceUpdateEvent)
	require.True(t, ok)
	assert.Equal(t, "COM5", update.DeviceKey)
	require.NotNil(t, update.Device)
	assert.Equal(t, uint32(42), update.Device.Num)
	assert.True(t, update.Device.Ready)
}

func TestDecodeDeviceDisconnectEvent(t *testing.T) {
	frame := []byte(`{
		"type": "device_disconnect",
		"payload": {"deviceKey": "COM5", "reason": "serial link lost"}
	}`)

	event, err := decodeEvent(frame)
	require.NoError(t, err)

	disconnect, ok := event.(*bridge.DeviceDisconnectEvent)
	require.True(t, ok)
	assert.Equal(t, "serial link lost", disconnect.Reason)
}

func TestDecodeConfigStatusEvent(t *testing.T) {
	frame := []byte(`{
		"type": "config_status",
		"payload": {"deviceKey": "COM5", "inProgress": true}
	}`)

	event, err := decodeEvent(frame)
	require.NoError(t, err)

	status, ok := event.(*bridge.ConfigStatusEvent)
	require.True(t, ok)
	assert.True(t, status.InProgress)
}

func TestDecodeUnknownEventTypeIsDropped(t *testing.T) {
	event, err := decodeEvent([]byte(`{"type": "firmware_progress", "payload": {}}`))
	require.NoError(t, err)
	assert.Nil(t, event)
}

func TestDecodeMalformedFrame(t *testing.T) {
	_, err := decodeEvent([]byte(`{"type": "reboot", "payload": "not an object"}`))
	require.Error(t, err)

	_, err = decodeEvent([]byte(`not json`))
	require.Error(t, err)
}
