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

// Package dispatcher executes user-facing commands against the backend
// bridge and applies their outcomes to the domain state. Every command
// follows the same discipline: record pending in the operation ledger,
// await the bridge, then either apply all of the command's state effects
// or none of them.
package dispatcher

import (
	"errors"

	"github.com/meshworks/meshcoord/pkg/bridge"
	"github.com/meshworks/meshcoord/pkg/connections"
	"github.com/meshworks/meshcoord/pkg/logger"
	"github.com/meshworks/meshcoord/pkg/persist"
	"github.com/meshworks/meshcoord/pkg/requests"
	"github.com/meshworks/meshcoord/pkg/state"
)

// Ledger operation names. Device-scoped commands are keyed per device
// with requests.Scoped.
const (
	OpConnect        = "device.connect"
	OpDisconnect     = "device.disconnect"
	OpDisconnectAll  = "device.disconnect_all"
	OpUpdateUser     = "device.update_user"
	OpSendText       = "message.send_text"
	OpSendWaypoint   = "waypoint.send"
	OpDeleteWaypoint = "waypoint.delete"
	OpCommitConfig   = "config.commit"
	OpListPorts      = "ports.list"
	OpAutoConnect    = "ports.autoconnect"
	OpInitialize     = "app.initialize"
)

var (
	// ErrUnknownDevice is returned when a command targets a device key
	// the application is not tracking. No bridge invocation happens.
	ErrUnknownDevice = errors.New("unknown device")

	// ErrCommitInProgress is returned when a config commit is issued
	// while another commit is still running for the same device.
	ErrCommitInProgress = errors.New("config commit already in progress")
)

// Dispatcher is the command execution layer. One instance per
// application.
type Dispatcher struct {
	client   bridge.Client
	events   bridge.EventSource
	store    *state.Store
	registry *connections.Registry
	tracker  *requests.Tracker
	persist  persist.Store
	logger   logger.Logger
}

// Config bundles the collaborators a Dispatcher needs.
type Config struct {
	Client   bridge.Client
	Events   bridge.EventSource
	Store    *state.Store
	Registry *connections.Registry
	Tracker  *requests.Tracker
	Persist  persist.Store
	Logger   logger.Logger
}

// New creates a dispatcher over the given collaborators.
func New(cfg Config) *Dispatcher {
	return &Dispatcher{
		client:   cfg.Client,
		events:   cfg.Events,
		store:    cfg.Store,
		registry: cfg.Registry,
		tracker:  cfg.Tracker,
		persist:  cfg.Persist,
		logger:   cfg.Logger,
	}
}
