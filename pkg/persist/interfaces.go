/*
 * Copyright 2025 Meshworks.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package persist is the durable key/value surface for application
// configuration that must survive restarts. No schema versioning is
// assumed; missing keys resolve to caller-side defaults.
package persist

import (
	"context"
	"encoding/json"
	"fmt"
)

// Keys used by the coordination layer.
const (
	KeyLastTCPConnection = "last_tcp_connection"
	KeyGeneralConfig     = "general_config"
	KeyMapConfig         = "map_config"
)

// Store is a durable key/value capability with an explicit flush.
// Backends where writes are immediately durable implement Save as a
// no-op.
type Store interface {
	// Get retrieves the value for key. The boolean reports whether the
	// key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stages a value under key.
	Set(ctx context.Context, key string, value []byte) error

	// Save flushes staged values to durable storage.
	Save(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// GetJSON reads and decodes key into dst. Returns false without
// touching dst when the key is missing.
func GetJSON(ctx context.Context, store Store, key string, dst interface{}) (bool, error) {
	data, found, err := store.Get(ctx, key)
	if err != nil {
		return false, err
	}

	if !found {
		return false, nil
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to decode persisted value for %s: %w", key, err)
	}

	return true, nil
}

// SetJSON encodes value and stages it under key.
func SetJSON(ctx context.Context, store Store, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for %s: %w", key, err)
	}

	return store.Set(ctx, key, data)
}
