package state

import (
	"github.com/meshworks/meshcoord/pkg/models"
)

// CreateDevice registers a device entry for a new connection, replacing
// any stale entry under the same key.
func (s *Store) CreateDevice(deviceKey string, num uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.devices[deviceKey] = models.NewMeshDevice(deviceKey, num)

	s.logger.Debug().
		Str("device_key", deviceKey).
		Uint32("device_num", num).
		Msg("Created device entry")
}

// RemoveDevice drops a device and, when it was primary, the primary
// selection and any UI references into it. Unknown keys are a no-op.
func (s *Store) RemoveDevice(deviceKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.devices[deviceKey]; !ok {
		return
	}

	delete(s.devices, deviceKey)

	if s.primaryDeviceKey == deviceKey {
		s.primaryDeviceKey = ""
		s.ui.ActiveNodeNum = nil
		s.ui.ActiveWaypointID = nil
		s.ui.InfoPane = InfoPaneNone
	}
}

// RemoveAllDevices clears every device entry along with the primary
// selection and UI references.
func (s *Store) RemoveAllDevices() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.devices = make(map[string]*models.MeshDevice)
	s.primaryDeviceKey = ""
	s.ui.ActiveNodeNum = nil
	s.ui.ActiveWaypointID = nil
	s.ui.InfoPane = InfoPaneNone
}

// ApplyDeviceUpdate replaces a device's state wholesale with a fresh
// snapshot pushed from the radio bridge, creating the entry if needed.
func (s *Store) ApplyDeviceUpdate(deviceKey string, device *models.MeshDevice) {
	if device == nil {
		return
	}

	cloned := cloneDevice(device)
	cloned.Key = deviceKey

	s.mu.Lock()
	defer s.mu.Unlock()

	s.devices[deviceKey] = cloned
}

// SetDeviceReady marks whether the device has finished its initial
// configuration exchange. Unknown keys are a no-op.
func (s *Store) SetDeviceReady(deviceKey string, ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	device, ok := s.devices[deviceKey]
	if !ok {
		return
	}

	device.Ready = ready
}

// SetConfigInProgress flags a device as mid-commit so the UI can block
// conflicting edits.
func (s *Store) SetConfigInProgress(deviceKey string, inProgress bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	device, ok := s.devices[deviceKey]
	if !ok {
		return
	}

	device.ConfigInProgress = inProgress
}

// TryBeginConfigCommit atomically claims the device's commit slot.
// started is false when another commit already holds it; tracked is
// false when the device is unknown. Two concurrent claims can never
// both see started true.
func (s *Store) TryBeginConfigCommit(deviceKey string) (started, tracked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	device, ok := s.devices[deviceKey]
	if !ok {
		return false, false
	}

	if device.ConfigInProgress {
		return false, true
	}

	device.ConfigInProgress = true

	return true, true
}

// ConfigInProgress reports whether a commit is running for the device.
func (s *Store) ConfigInProgress(deviceKey string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	device, ok := s.devices[deviceKey]
	if !ok {
		return false
	}

	return device.ConfigInProgress
}

// SetDeviceUser updates the owner record on a device. Unknown keys are
// a no-op.
func (s *Store) SetDeviceUser(deviceKey string, user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	device, ok := s.devices[deviceKey]
	if !ok {
		return
	}

	if user == nil {
		device.User = nil
		return
	}

	cloned := *user
	device.User = &cloned
}

// SetDeviceConfig replaces a device's acknowledged radio and module
// config after a successful commit.
func (s *Store) SetDeviceConfig(deviceKey string, radio models.RadioConfig, module models.ModuleConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	device, ok := s.devices[deviceKey]
	if !ok {
		return
	}

	device.RadioConfig = radio
	device.ModuleConfig = module
}

// AppendMessage records an outgoing or incoming text message on a
// device's channel log.
func (s *Store) AppendMessage(deviceKey string, message models.ChannelMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	device, ok := s.devices[deviceKey]
	if !ok {
		return
	}

	device.Messages[message.Channel] = append(device.Messages[message.Channel], message)
}

// SetMessageState marks a logged message as acked or failed by matching
// its id within the channel.
func (s *Store) SetMessageState(deviceKey string, channel int32, messageID string, msgState models.MessageState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	device, ok := s.devices[deviceKey]
	if !ok {
		return
	}

	messages := device.Messages[channel]
	for i := range messages {
		if messages[i].ID == messageID {
			messages[i].State = msgState
			return
		}
	}
}

// UpsertWaypoint adds or replaces a waypoint on a device.
func (s *Store) UpsertWaypoint(deviceKey string, waypoint models.NormalizedWaypoint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	device, ok := s.devices[deviceKey]
	if !ok {
		return
	}

	device.Waypoints[waypoint.ID] = &waypoint
}

// RemoveWaypoint deletes a waypoint and drops any UI selection pointing
// at it.
func (s *Store) RemoveWaypoint(deviceKey string, waypointID uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	device, ok := s.devices[deviceKey]
	if !ok {
		return
	}

	delete(device.Waypoints, waypointID)

	if s.ui.ActiveWaypointID != nil && *s.ui.ActiveWaypointID == waypointID {
		s.ui.ActiveWaypointID = nil
		s.ui.InfoPane = InfoPaneNone
	}
}

// Device returns a deep copy of a device's state.
func (s *Store) Device(deviceKey string) (*models.MeshDevice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	device, ok := s.devices[deviceKey]
	if !ok {
		return nil, false
	}

	return cloneDevice(device), true
}

// PrimaryDevice returns a deep copy of the primary device, if one is
// selected and still present.
func (s *Store) PrimaryDevice() (*models.MeshDevice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.primaryDeviceKey == "" {
		return nil, false
	}

	device, ok := s.devices[s.primaryDeviceKey]
	if !ok {
		return nil, false
	}

	return cloneDevice(device), true
}

// Devices returns deep copies of every tracked device keyed by
// connection key.
func (s *Store) Devices() map[string]*models.MeshDevice {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]*models.MeshDevice, len(s.devices))
	for key, device := range s.devices {
		out[key] = cloneDevice(device)
	}

	return out
}
