package connections

import (
	"errors"
	"fmt"
	"sync"

	"github.com/meshworks/meshcoord/pkg/logger"
)

// State is the connection lifecycle position of one device.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateFailed       State = "failed"
)

var (
	// ErrAlreadyActive is returned when a connect is attempted against a
	// device that is already connecting or connected. Recovery from
	// Failed requires an explicit new connect, which is legal.
	ErrAlreadyActive = errors.New("device connection already active")
)

// Entry is the registry record for one device key.
type Entry struct {
	DeviceKey string `json:"deviceKey"`
	State     State  `json:"state"`
	Reason    string `json:"reason,omitempty"`
}

// Registry tracks the connection state machine per device key. A device
// has zero or one entry at a time; keys the application never attempted
// to reach report disconnected.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
	logger  logger.Logger
}

// NewRegistry creates an empty connection registry.
func NewRegistry(log logger.Logger) *Registry {
	return &Registry{
		entries: make(map[string]Entry),
		logger:  log,
	}
}

// BeginConnecting moves a device into Connecting. Only legal from
// Disconnected, Failed, or no entry at all.
func (r *Registry) BeginConnecting(deviceKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[deviceKey]
	if ok && (entry.State == StateConnecting || entry.State == StateConnected) {
		return fmt.Errorf("%w: %s is %s", ErrAlreadyActive, deviceKey, entry.State)
	}

	r.entries[deviceKey] = Entry{DeviceKey: deviceKey, State: StateConnecting}
	r.logger.Info().Str("device_key", deviceKey).Msg("Connecting to device")

	return nil
}

// SetConnected marks a device's connection open.
func (r *Registry) SetConnected(deviceKey string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[deviceKey] = Entry{DeviceKey: deviceKey, State: StateConnected}
}

// SetFailed marks a device failed with the backend-supplied reason,
// regardless of its prior state. Only a new BeginConnecting transitions
// out of Failed.
func (r *Registry) SetFailed(deviceKey, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[deviceKey] = Entry{DeviceKey: deviceKey, State: StateFailed, Reason: reason}

	r.logger.Warn().
		Str("device_key", deviceKey).
		Str("reason", reason).
		Msg("Device connection failed")
}

// SetDisconnected returns a device to Disconnected. Calling it for a
// device that is already disconnected or unknown is a no-op, so repeated
// disconnects converge on the same end state.
func (r *Registry) SetDisconnected(deviceKey string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[deviceKey] = Entry{DeviceKey: deviceKey, State: StateDisconnected}
}

// Get returns the registry entry for a device key. Unknown keys report
// a synthetic disconnected entry and false.
func (r *Registry) Get(deviceKey string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[deviceKey]
	if !ok {
		return Entry{DeviceKey: deviceKey, State: StateDisconnected}, false
	}

	return entry, true
}

// StateOf is a convenience accessor for the state alone.
func (r *Registry) StateOf(deviceKey string) State {
	entry, _ := r.Get(deviceKey)
	return entry.State
}

// All returns a copy of every tracked entry.
func (r *Registry) All() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.entries))
	for _, entry := range r.entries {
		out = append(out, entry)
	}

	return out
}

// ClearAll resets the registry to empty; used only on full application
// teardown, not on single-device disconnect.
func (r *Registry) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[string]Entry)
}
