package bridge

import (
	"context"

	"github.com/meshworks/meshcoord/pkg/models"
)

// Events the backend pushes outside the request/response cycle. The
// coordination layer folds them into its state defensively: an event for
// a device it no longer tracks is dropped, never an error.

// DeviceUpdateEvent carries a refreshed full device descriptor whenever
// the backend's view of a connected radio changes.
type DeviceUpdateEvent struct {
	DeviceKey string             `json:"deviceKey"`
	Device    *models.MeshDevice `json:"device"`
}

// DeviceDisconnectEvent reports that the backend lost a device
// connection it did not ask to close.
type DeviceDisconnectEvent struct {
	DeviceKey string `json:"deviceKey"`
	Reason    string `json:"reason"`
}

// ConfigStatusEvent reports a backend-driven change to a device's
// config-transaction state.
type ConfigStatusEvent struct {
	DeviceKey  string `json:"deviceKey"`
	InProgress bool   `json:"inProgress"`
}

// RebootEvent announces a scheduled device reboot.
type RebootEvent struct {
	DeviceKey string `json:"deviceKey"`
	At        int64  `json:"at"`
}

// Event is the closed set of push notifications a bridge can emit.
type Event interface {
	isBridgeEvent()
}

func (*DeviceUpdateEvent) isBridgeEvent()     {}
func (*DeviceDisconnectEvent) isBridgeEvent() {}
func (*ConfigStatusEvent) isBridgeEvent()     {}
func (*RebootEvent) isBridgeEvent()           {}

// EventSource delivers backend push events. The channel closes when the
// context is canceled or the underlying transport shuts down.
type EventSource interface {
	Events(ctx context.Context) (<-chan Event, error)
}
