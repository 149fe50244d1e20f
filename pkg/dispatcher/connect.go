package dispatcher

import (
	"context"
	"fmt"

	"github.com/meshworks/meshcoord/pkg/bridge"
	"github.com/meshworks/meshcoord/pkg/models"
	"github.com/meshworks/meshcoord/pkg/requests"
)

// Connect opens a device connection. A device that is already connecting
// or connected rejects the attempt before any bridge traffic; a device
// in the failed state may retry freely. On success the device becomes
// the primary device and, for TCP connections, the endpoint is persisted
// for the next session.
func (d *Dispatcher) Connect(ctx context.Context, req *bridge.ConnectRequest) error {
	deviceKey, err := req.DeviceKey()
	if err != nil {
		return err
	}

	if err := d.registry.BeginConnecting(deviceKey); err != nil {
		return err
	}

	name := requests.Scoped(OpConnect, deviceKey)

	return d.tracker.Track(ctx, name, func(ctx context.Context) error {
		descriptor, err := d.client.Connect(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to connect to %s: %w", deviceKey, err)
		}

		d.registry.SetConnected(deviceKey)

		var num uint32
		if descriptor != nil {
			num = descriptor.Num
		}

		d.store.CreateDevice(deviceKey, num)

		if descriptor != nil && descriptor.User != nil {
			d.store.SetDeviceUser(deviceKey, descriptor.User)
		}

		d.store.SetPrimaryDeviceKey(deviceKey)

		d.logger.Info().
			Str("device_key", deviceKey).
			Uint32("device_num", num).
			Msg("Device connected")

		if req.Type == bridge.ConnectionTCP {
			meta := &models.TCPConnectionMeta{Address: req.SocketAddress}
			if err := d.PersistLastTCPConnection(ctx, meta); err != nil {
				// Losing the reconnect hint is not worth failing the
				// connection itself.
				d.logger.Warn().Err(err).Msg("Failed to persist TCP endpoint")
			}
		}

		return nil
	}, func(err error) {
		d.registry.SetFailed(deviceKey, err.Error())
	})
}

// Disconnect closes a device connection and tears down its local state.
// Teardown runs whether or not the backend call succeeds, so repeated
// disconnects converge on the same end state: no device entry, no
// primary selection, no ledger entries scoped to the key.
func (d *Dispatcher) Disconnect(ctx context.Context, deviceKey string) error {
	name := requests.Scoped(OpDisconnect, deviceKey)
	d.tracker.Begin(name)

	err := d.client.Disconnect(ctx, deviceKey)

	d.registry.SetDisconnected(deviceKey)
	d.store.RemoveDevice(deviceKey)

	// The sweep runs before the disconnect settles: a failure must stay
	// readable in the ledger after the scoped entries are gone.
	d.tracker.ClearScope(deviceKey)

	if err != nil {
		d.tracker.Fail(name, err.Error())
		return fmt.Errorf("failed to disconnect %s: %w", deviceKey, err)
	}

	return nil
}

// DisconnectAll closes every connection and resets the coordination
// state wholesale.
func (d *Dispatcher) DisconnectAll(ctx context.Context) error {
	err := d.tracker.Track(ctx, OpDisconnectAll, func(ctx context.Context) error {
		if err := d.client.DisconnectAll(ctx); err != nil {
			return fmt.Errorf("failed to disconnect all devices: %w", err)
		}

		return nil
	})

	d.registry.ClearAll()
	d.store.RemoveAllDevices()
	d.tracker.ClearAll()

	return err
}

// FetchAvailablePorts refreshes the serial port candidate list.
func (d *Dispatcher) FetchAvailablePorts(ctx context.Context) error {
	return d.tracker.Track(ctx, OpListPorts, func(ctx context.Context) error {
		ports, err := d.client.AvailablePorts(ctx)
		if err != nil {
			return fmt.Errorf("failed to list serial ports: %w", err)
		}

		d.store.SetAvailablePorts(ports)

		return nil
	})
}

// AutoConnect asks the backend for the configured startup port and, when
// one is set, opens a serial connection to it.
func (d *Dispatcher) AutoConnect(ctx context.Context) error {
	var port string

	err := d.tracker.Track(ctx, OpAutoConnect, func(ctx context.Context) error {
		p, err := d.client.AutoConnectPort(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch autoconnect port: %w", err)
		}

		port = p
		d.store.SetAutoConnectPort(p)

		return nil
	})
	if err != nil {
		return err
	}

	if port == "" {
		return nil
	}

	return d.Connect(ctx, &bridge.ConnectRequest{
		Type:     bridge.ConnectionSerial,
		PortName: port,
	})
}
