package bridge

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectRequestDeviceKey(t *testing.T) {
	serial := &ConnectRequest{Type: ConnectionSerial, PortName: "COM5"}

	key, err := serial.DeviceKey()
	require.NoError(t, err)
	assert.Equal(t, "COM5", key)

	tcp := &ConnectRequest{Type: ConnectionTCP, SocketAddress: "192.168.1.20:4403"}

	key, err = tcp.DeviceKey()
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.20:4403", key)
}

func TestConnectRequestDeviceKeyMissingTarget(t *testing.T) {
	for _, req := range []*ConnectRequest{
		{Type: ConnectionSerial},
		{Type: ConnectionTCP},
		{Type: ConnectionSerial, SocketAddress: "192.168.1.20:4403"},
		{Type: ConnectionTCP, PortName: "COM5"},
	} {
		_, err := req.DeviceKey()
		require.Error(t, err)
	}
}

func TestCommandErrorReason(t *testing.T) {
	err := NewCommandError("connect", "the system cannot find the file specified")

	assert.Equal(t, "the system cannot find the file specified", err.Error())
	assert.Equal(t, "the system cannot find the file specified", Reason(err))

	wrapped := fmt.Errorf("failed to connect: %w", err)
	assert.Equal(t, "the system cannot find the file specified", Reason(wrapped))

	plain := errors.New("dial tcp: connection refused")
	assert.Equal(t, "dial tcp: connection refused", Reason(plain))
}
