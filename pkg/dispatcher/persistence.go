package dispatcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/meshworks/meshcoord/pkg/models"
	"github.com/meshworks/meshcoord/pkg/persist"
)

// ErrPersistVerification is returned when a persisted value does not
// read back as written.
var ErrPersistVerification = errors.New("persisted value failed read-back verification")

// persistVerified writes value under key, flushes, and reads the value
// back to confirm the write landed. Verification failures surface to the
// caller so the UI can tell the user their setting did not stick.
func (d *Dispatcher) persistVerified(ctx context.Context, key string, value interface{}) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for %s: %w", key, err)
	}

	if err := d.persist.Set(ctx, key, encoded); err != nil {
		return fmt.Errorf("failed to stage %s: %w", key, err)
	}

	if err := d.persist.Save(ctx); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}

	stored, found, err := d.persist.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to read back %s: %w", key, err)
	}

	if !found || !bytes.Equal(stored, encoded) {
		return fmt.Errorf("%w: %s", ErrPersistVerification, key)
	}

	return nil
}

// PersistGeneralConfig stores the general application config and updates
// the in-memory cache once the write is verified.
func (d *Dispatcher) PersistGeneralConfig(ctx context.Context, config models.GeneralConfig) error {
	if err := d.persistVerified(ctx, persist.KeyGeneralConfig, config); err != nil {
		return err
	}

	d.store.SetGeneralConfig(config)

	return nil
}

// PersistMapConfig stores the map config and updates the in-memory cache
// once the write is verified.
func (d *Dispatcher) PersistMapConfig(ctx context.Context, config models.MapConfig) error {
	if err := d.persistVerified(ctx, persist.KeyMapConfig, config); err != nil {
		return err
	}

	d.store.SetMapConfig(config)

	return nil
}

// PersistLastTCPConnection remembers the TCP endpoint for the next
// session.
func (d *Dispatcher) PersistLastTCPConnection(ctx context.Context, meta *models.TCPConnectionMeta) error {
	if err := d.persistVerified(ctx, persist.KeyLastTCPConnection, meta); err != nil {
		return err
	}

	d.store.SetLastTCPConnection(meta)

	return nil
}

// FetchLastTCPConnection reads the remembered TCP endpoint, caching it
// for the UI. A missing key returns nil without error.
func (d *Dispatcher) FetchLastTCPConnection(ctx context.Context) (*models.TCPConnectionMeta, error) {
	var meta models.TCPConnectionMeta

	found, err := persist.GetJSON(ctx, d.persist, persist.KeyLastTCPConnection, &meta)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, nil
	}

	d.store.SetLastTCPConnection(&meta)

	return &meta, nil
}

// LoadPersistedConfig hydrates the in-memory caches from storage.
// Missing keys keep their defaults; a corrupt value is logged and
// skipped rather than failing startup.
func (d *Dispatcher) LoadPersistedConfig(ctx context.Context) error {
	var general models.GeneralConfig

	found, err := persist.GetJSON(ctx, d.persist, persist.KeyGeneralConfig, &general)
	if err != nil {
		d.logger.Warn().Err(err).Msg("Skipping persisted general config")
	} else if found {
		d.store.SetGeneralConfig(general)
	}

	var mapConfig models.MapConfig

	found, err = persist.GetJSON(ctx, d.persist, persist.KeyMapConfig, &mapConfig)
	if err != nil {
		d.logger.Warn().Err(err).Msg("Skipping persisted map config")
	} else if found {
		d.store.SetMapConfig(mapConfig)
	}

	var lastTCP models.TCPConnectionMeta

	found, err = persist.GetJSON(ctx, d.persist, persist.KeyLastTCPConnection, &lastTCP)
	if err != nil {
		d.logger.Warn().Err(err).Msg("Skipping persisted TCP endpoint")
	} else if found {
		d.store.SetLastTCPConnection(&lastTCP)
	}

	return nil
}
