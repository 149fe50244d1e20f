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

// Package config loads the coordinator daemon's JSON configuration file.
package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/meshworks/meshcoord/pkg/bridge/natsbridge"
	"github.com/meshworks/meshcoord/pkg/logger"
	"github.com/meshworks/meshcoord/pkg/persist"
)

// Persistence mode selectors.
const (
	PersistFile = "file"
	PersistNats = "nats"
)

var (
	errBridgeURLRequired      = errors.New("bridge.nats_url is required")
	errInvalidPersistenceMode = errors.New("persistence.mode must be \"file\" or \"nats\"")
	errPersistPathRequired    = errors.New("persistence.path is required for file mode")
	errPersistNatsRequired    = errors.New("persistence nats settings are required for nats mode")
)

// PersistenceConfig selects and parameterizes the durable store.
type PersistenceConfig struct {
	Mode string              `json:"mode"`
	Path string              `json:"path,omitempty"`
	Nats *persist.NatsConfig `json:"nats,omitempty"`
}

// CoordConfig is the top-level daemon configuration.
type CoordConfig struct {
	Bridge      natsbridge.Config `json:"bridge"`
	Persistence PersistenceConfig `json:"persistence"`
	Logging     *logger.Config    `json:"logging,omitempty"`
	AutoConnect bool              `json:"auto_connect"`
}

// Validate checks required fields and fills defaults.
func (c *CoordConfig) Validate() error {
	if c.Bridge.URL == "" {
		return errBridgeURLRequired
	}

	if c.Persistence.Mode == "" {
		c.Persistence.Mode = PersistFile
	}

	switch c.Persistence.Mode {
	case PersistFile:
		if c.Persistence.Path == "" {
			return errPersistPathRequired
		}
	case PersistNats:
		if c.Persistence.Nats == nil || c.Persistence.Nats.URL == "" || c.Persistence.Nats.Bucket == "" {
			return errPersistNatsRequired
		}
	default:
		return fmt.Errorf("%w: got %q", errInvalidPersistenceMode, c.Persistence.Mode)
	}

	return nil
}

// LoadFromFile reads and validates a daemon configuration file.
func LoadFromFile(_ context.Context, path string) (*CoordConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg CoordConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON from '%s': %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
