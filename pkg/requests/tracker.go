package requests

import (
	"context"
	"strings"
	"sync"

	"github.com/meshworks/meshcoord/pkg/logger"
)

// State is the lifecycle position of a named asynchronous operation.
type State string

const (
	StateIdle      State = "idle"
	StatePending   State = "pending"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// Status is the full ledger value for one operation name. Message is
// only set for failed operations and carries the backend reason
// verbatim.
type Status struct {
	State   State  `json:"state"`
	Message string `json:"message,omitempty"`
}

// Tracker is a keyed ledger of in-flight and settled operations. Entries
// are keyed by stable operation name, not by invocation: reissuing an
// operation overwrites the previous terminal state, and when two
// invocations of the same name settle out of order the ledger keeps
// whichever settled last. Callers that need per-invocation accuracy
// scope their names with Scoped.
type Tracker struct {
	mu      sync.RWMutex
	entries map[string]Status
	logger  logger.Logger
}

// NewTracker creates an empty ledger.
func NewTracker(log logger.Logger) *Tracker {
	return &Tracker{
		entries: make(map[string]Status),
		logger:  log,
	}
}

// Begin marks the named operation pending, discarding any previous
// terminal state for the same name.
func (t *Tracker) Begin(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries[name] = Status{State: StatePending}
}

// Succeed marks the named operation settled successfully and clears any
// prior failure reason.
func (t *Tracker) Succeed(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries[name] = Status{State: StateSucceeded}
}

// Fail marks the named operation failed with the given reason.
func (t *Tracker) Fail(name, reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries[name] = Status{State: StateFailed, Message: reason}

	t.logger.Warn().Str("operation", name).Str("reason", reason).Msg("Operation failed")
}

// StatusOf returns the ledger entry for name. Names that were never
// dispatched report idle.
func (t *Tracker) StatusOf(name string) Status {
	t.mu.RLock()
	defer t.mu.RUnlock()

	status, ok := t.entries[name]
	if !ok {
		return Status{State: StateIdle}
	}

	return status
}

// Clear removes one entry, returning it to idle.
func (t *Tracker) Clear(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.entries, name)
}

// ClearScope removes every entry scoped to the given key. Used when a
// device is disconnected and its pending operations are abandoned.
func (t *Tracker) ClearScope(scope string) {
	suffix := scopeSeparator + scope

	t.mu.Lock()
	defer t.mu.Unlock()

	for name := range t.entries {
		if strings.HasSuffix(name, suffix) {
			delete(t.entries, name)
		}
	}
}

// ClearAll resets the ledger; used only on full application teardown.
func (t *Tracker) ClearAll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = make(map[string]Status)
}

const scopeSeparator = "#"

// Scoped derives a per-target operation name so that operations against
// different devices do not share a ledger entry.
func Scoped(name, scope string) string {
	return name + scopeSeparator + scope
}

// Track wraps one backend invocation in the standard ledger sequence:
// pending before the call, succeeded after it returns nil, failed with
// the error text otherwise. onError callbacks run after the failed
// transition, before Track returns the error unchanged.
func (t *Tracker) Track(ctx context.Context, name string, fn func(context.Context) error, onError ...func(error)) error {
	t.Begin(name)

	if err := fn(ctx); err != nil {
		t.Fail(name, err.Error())

		for _, cb := range onError {
			cb(err)
		}

		return err
	}

	t.Succeed(name)

	return nil
}
