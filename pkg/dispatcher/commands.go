package dispatcher

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meshworks/meshcoord/pkg/bridge"
	"github.com/meshworks/meshcoord/pkg/models"
	"github.com/meshworks/meshcoord/pkg/requests"
)

// requireDevice rejects commands aimed at a device the application is
// not tracking, before any bridge traffic.
func (d *Dispatcher) requireDevice(deviceKey string) error {
	if _, ok := d.store.Device(deviceKey); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDevice, deviceKey)
	}

	return nil
}

// SendText dispatches a text message on one channel of a device. The
// channel log records the message only once the bridge acknowledges it;
// a failure reaches the ledger and nothing else.
func (d *Dispatcher) SendText(ctx context.Context, req *bridge.SendTextRequest) error {
	if err := d.requireDevice(req.DeviceKey); err != nil {
		return err
	}

	name := requests.Scoped(OpSendText, req.DeviceKey)

	return d.tracker.Track(ctx, name, func(ctx context.Context) error {
		if err := d.client.SendText(ctx, req); err != nil {
			return fmt.Errorf("failed to send text: %w", err)
		}

		d.store.AppendMessage(req.DeviceKey, models.ChannelMessage{
			ID:      uuid.NewString(),
			Channel: req.Channel,
			Text:    req.Text,
			RxTime:  time.Now().Unix(),
			State:   models.MessageStateAcknowledged,
		})

		return nil
	})
}

// SendWaypoint broadcasts a waypoint and records it on the device once
// the broadcast is acknowledged. A failed broadcast leaves the waypoint
// set untouched.
func (d *Dispatcher) SendWaypoint(ctx context.Context, req *bridge.SendWaypointRequest) error {
	if err := d.requireDevice(req.DeviceKey); err != nil {
		return err
	}

	name := requests.Scoped(OpSendWaypoint, req.DeviceKey)

	return d.tracker.Track(ctx, name, func(ctx context.Context) error {
		if err := d.client.SendWaypoint(ctx, req); err != nil {
			return fmt.Errorf("failed to send waypoint: %w", err)
		}

		d.store.UpsertWaypoint(req.DeviceKey, req.Waypoint)

		return nil
	})
}

// DeleteWaypoint removes a waypoint. On success the waypoint leaves the
// device state and any UI selection of it is dropped with it.
func (d *Dispatcher) DeleteWaypoint(ctx context.Context, req *bridge.DeleteWaypointRequest) error {
	if err := d.requireDevice(req.DeviceKey); err != nil {
		return err
	}

	name := requests.Scoped(OpDeleteWaypoint, req.DeviceKey)

	return d.tracker.Track(ctx, name, func(ctx context.Context) error {
		if err := d.client.DeleteWaypoint(ctx, req); err != nil {
			return fmt.Errorf("failed to delete waypoint: %w", err)
		}

		d.store.RemoveWaypoint(req.DeviceKey, req.WaypointID)

		return nil
	})
}

// UpdateUser rewrites the device's broadcast identity.
func (d *Dispatcher) UpdateUser(ctx context.Context, req *bridge.UpdateUserRequest) error {
	if err := d.requireDevice(req.DeviceKey); err != nil {
		return err
	}

	name := requests.Scoped(OpUpdateUser, req.DeviceKey)

	return d.tracker.Track(ctx, name, func(ctx context.Context) error {
		if err := d.client.UpdateUser(ctx, req); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		user := req.User
		d.store.SetDeviceUser(req.DeviceKey, &user)

		return nil
	})
}

// CommitConfig flushes the staged edits for the named sections to the
// radio as one transaction. While the commit runs the device is flagged
// config-in-progress and further commits are rejected. On success the
// device's acknowledged config absorbs the staged edits and the buffers
// for the committed sections are cleared; sections outside the commit
// keep their staged edits. On failure nothing changes and the buffers
// survive for retry.
func (d *Dispatcher) CommitConfig(ctx context.Context, deviceKey string, sections []models.ConfigSection) error {
	started, tracked := d.store.TryBeginConfigCommit(deviceKey)
	if !tracked {
		return fmt.Errorf("%w: %s", ErrUnknownDevice, deviceKey)
	}

	if !started {
		return fmt.Errorf("%w: %s", ErrCommitInProgress, deviceKey)
	}

	defer d.store.SetConfigInProgress(deviceKey, false)

	device, ok := d.store.Device(deviceKey)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDevice, deviceKey)
	}

	req := &bridge.CommitConfigRequest{
		DeviceKey: deviceKey,
		Sections:  sections,
	}

	mergedRadio := device.RadioConfig
	mergedModule := device.ModuleConfig

	for _, section := range sections {
		switch section {
		case models.SectionRadio:
			mergedRadio = device.RadioConfig.Merge(d.store.EditedRadioConfig())
			radio := mergedRadio
			req.Radio = &radio
		case models.SectionModule:
			mergedModule = device.ModuleConfig.Merge(d.store.EditedModuleConfig())
			module := mergedModule
			req.Module = &module
		case models.SectionChannel:
			req.Channels = d.store.EditedChannels()
		}
	}

	name := requests.Scoped(OpCommitConfig, deviceKey)

	return d.tracker.Track(ctx, name, func(ctx context.Context) error {
		if err := d.client.CommitConfig(ctx, req); err != nil {
			return fmt.Errorf("failed to commit config: %w", err)
		}

		d.store.SetDeviceConfig(deviceKey, mergedRadio, mergedModule)
		d.store.ClearStagedSections(sections)

		return nil
	})
}
