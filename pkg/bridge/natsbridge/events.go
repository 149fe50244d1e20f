package natsbridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/meshworks/meshcoord/pkg/bridge"
)

const (
	eventSubjectSuffix = "events.>"

	eventTypeDeviceUpdate     = "device_update"
	eventTypeDeviceDisconnect = "device_disconnect"
	eventTypeConfigStatus     = "config_status"
	eventTypeReboot           = "reboot"
)

// eventFrame is the wire shape of a pushed event.
type eventFrame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Events subscribes to the backend's push subjects and decodes frames
// into typed events. Unknown event types are logged and dropped so a
// newer backend cannot wedge the pump.
func (c *Client) Events(ctx context.Context) (<-chan bridge.Event, error) {
	msgs := make(chan *nats.Msg, 64)

	sub, err := c.nc.ChanSubscribe(c.prefix+"."+eventSubjectSuffix, msgs)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to bridge events: %w", err)
	}

	out := make(chan bridge.Event, 16)

	go func() {
		defer func() {
			_ = sub.Unsubscribe()
			close(out)
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				event, err := decodeEvent(msg.Data)
				if err != nil {
					c.logger.Warn().Err(err).Str("subject", msg.Subject).Msg("Dropping undecodable bridge event")
					continue
				}

				if event == nil {
					continue
				}

				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func decodeEvent(data []byte) (bridge.Event, error) {
	var frame eventFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, fmt.Errorf("failed to decode event frame: %w", err)
	}

	switch frame.Type {
	case eventTypeDeviceUpdate:
		var event bridge.DeviceUpdateEvent
		if err := json.Unmarshal(frame.Payload, &event); err != nil {
			return nil, fmt.Errorf("failed to decode device update: %w", err)
		}

		return &event, nil
	case eventTypeDeviceDisconnect:
		var event bridge.DeviceDisconnectEvent
		if err := json.Unmarshal(frame.Payload, &event); err != nil {
			return nil, fmt.Errorf("failed to decode device disconnect: %w", err)
		}

		return &event, nil
	case eventTypeConfigStatus:
		var event bridge.ConfigStatusEvent
		if err := json.Unmarshal(frame.Payload, &event); err != nil {
			return nil, fmt.Errorf("failed to decode config status: %w", err)
		}

		return &event, nil
	case eventTypeReboot:
		var event bridge.RebootEvent
		if err := json.Unmarshal(frame.Payload, &event); err != nil {
			return nil, fmt.Errorf("failed to decode reboot notice: %w", err)
		}

		return &event, nil
	default:
		return nil, nil
	}
}

var _ bridge.EventSource = (*Client)(nil)
