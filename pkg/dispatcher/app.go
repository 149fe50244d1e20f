package dispatcher

import (
	"context"
	"fmt"
)

// InitializeApplication runs the startup sequence: arm the backend's
// stale-connection timeout handler, hydrate persisted config, refresh
// the serial port list, and start the event pump. The caller owns the
// context; canceling it stops the pump.
func (d *Dispatcher) InitializeApplication(ctx context.Context) error {
	err := d.tracker.Track(ctx, OpInitialize, func(ctx context.Context) error {
		if err := d.client.InitializeTimeoutHandler(ctx); err != nil {
			return fmt.Errorf("failed to initialize timeout handler: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	if err := d.LoadPersistedConfig(ctx); err != nil {
		return err
	}

	if err := d.FetchAvailablePorts(ctx); err != nil {
		// Port discovery is retried from the UI; startup proceeds.
		d.logger.Warn().Err(err).Msg("Initial port discovery failed")
	}

	if d.events != nil {
		events, err := d.events.Events(ctx)
		if err != nil {
			return fmt.Errorf("failed to subscribe to bridge events: %w", err)
		}

		go d.pumpEvents(events)
	}

	return nil
}

// Shutdown disarms the backend timeout handler and flushes persistence.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	if err := d.client.StopTimeoutHandler(ctx); err != nil {
		d.logger.Warn().Err(err).Msg("Failed to stop timeout handler")
	}

	if err := d.persist.Save(ctx); err != nil {
		return fmt.Errorf("failed to flush persistence: %w", err)
	}

	return nil
}
