package dispatcher

import (
	"github.com/meshworks/meshcoord/pkg/bridge"
)

// pumpEvents folds backend push events into the domain state until the
// channel closes. Events are applied defensively: a reference to a
// device the application no longer tracks is dropped, never an error.
func (d *Dispatcher) pumpEvents(events <-chan bridge.Event) {
	for event := range events {
		d.applyEvent(event)
	}

	d.logger.Info().Msg("Bridge event stream closed")
}

func (d *Dispatcher) applyEvent(event bridge.Event) {
	switch ev := event.(type) {
	case *bridge.DeviceUpdateEvent:
		if ev.Device == nil {
			return
		}

		d.store.ApplyDeviceUpdate(ev.DeviceKey, ev.Device)

	case *bridge.DeviceDisconnectEvent:
		// The backend lost the link on its own; record the failure so
		// the UI can offer a retry, and drop the local device state.
		d.registry.SetFailed(ev.DeviceKey, ev.Reason)
		d.store.RemoveDevice(ev.DeviceKey)
		d.tracker.ClearScope(ev.DeviceKey)

	case *bridge.ConfigStatusEvent:
		d.store.SetConfigInProgress(ev.DeviceKey, ev.InProgress)

	case *bridge.RebootEvent:
		d.logger.Info().
			Str("device_key", ev.DeviceKey).
			Int64("at", ev.At).
			Msg("Device reboot scheduled")
	}
}
