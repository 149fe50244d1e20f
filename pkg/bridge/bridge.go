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

// Package bridge defines the request/response contract against the
// backend process that owns the physical radio connections and runs the
// graph algorithms. The coordination layer never speaks the radio
// protocol itself; this invocation surface is its entire boundary.
package bridge

import (
	"context"
	"errors"

	"github.com/meshworks/meshcoord/pkg/models"
)

// ConnectionType selects the transport the backend should open.
type ConnectionType string

const (
	ConnectionSerial ConnectionType = "serial"
	ConnectionTCP    ConnectionType = "tcp"
)

var errNoConnectionTarget = errors.New("neither port name nor socket address were set")

// ConnectRequest asks the backend to open a device connection.
type ConnectRequest struct {
	Type          ConnectionType `json:"type"`
	PortName      string         `json:"portName,omitempty"`
	BaudRate      uint32         `json:"baudRate,omitempty"`
	DTR           bool           `json:"dtr,omitempty"`
	RTS           bool           `json:"rts,omitempty"`
	SocketAddress string         `json:"socketAddress,omitempty"`
}

// DeviceKey derives the stable connection identifier for the request:
// the serial port path or the socket address.
func (r *ConnectRequest) DeviceKey() (string, error) {
	switch r.Type {
	case ConnectionSerial:
		if r.PortName != "" {
			return r.PortName, nil
		}
	case ConnectionTCP:
		if r.SocketAddress != "" {
			return r.SocketAddress, nil
		}
	}

	return "", errNoConnectionTarget
}

// DeviceDescriptor is the backend's answer to a successful connect: the
// identity the radio reported during its configuration handshake.
type DeviceDescriptor struct {
	Num  uint32       `json:"num"`
	User *models.User `json:"user,omitempty"`
}

// SendTextRequest dispatches a text message on one channel.
type SendTextRequest struct {
	DeviceKey string `json:"deviceKey"`
	Channel   int32  `json:"channel"`
	Text      string `json:"text"`
}

// SendWaypointRequest broadcasts a waypoint on one channel.
type SendWaypointRequest struct {
	DeviceKey string                    `json:"deviceKey"`
	Channel   int32                     `json:"channel"`
	Waypoint  models.NormalizedWaypoint `json:"waypoint"`
}

// DeleteWaypointRequest removes a waypoint the device manages.
type DeleteWaypointRequest struct {
	DeviceKey  string `json:"deviceKey"`
	WaypointID uint32 `json:"waypointId"`
}

// UpdateUserRequest rewrites the device's broadcast identity.
type UpdateUserRequest struct {
	DeviceKey string      `json:"deviceKey"`
	User      models.User `json:"user"`
}

// CommitConfigRequest flushes edited config sections to the radio in one
// transaction.
type CommitConfigRequest struct {
	DeviceKey string                         `json:"deviceKey"`
	Sections  []models.ConfigSection         `json:"sections"`
	Radio     *models.RadioConfig            `json:"radio,omitempty"`
	Module    *models.ModuleConfig           `json:"module,omitempty"`
	Channels  map[int32]models.ChannelConfig `json:"channels,omitempty"`
}

// Client is the full invocation surface of the backend bridge. Every
// call is synchronous from the caller's point of view: it settles with
// nil or with an error carrying a human-readable reason, and may take
// arbitrarily long. The coordination layer imposes no timeout of its
// own; staleness detection belongs to the backend timeout handler.
type Client interface {
	Connect(ctx context.Context, req *ConnectRequest) (*DeviceDescriptor, error)
	Disconnect(ctx context.Context, deviceKey string) error
	DisconnectAll(ctx context.Context) error

	SendText(ctx context.Context, req *SendTextRequest) error
	SendWaypoint(ctx context.Context, req *SendWaypointRequest) error
	DeleteWaypoint(ctx context.Context, req *DeleteWaypointRequest) error
	UpdateUser(ctx context.Context, req *UpdateUserRequest) error
	CommitConfig(ctx context.Context, req *CommitConfigRequest) error

	GetGraphState(ctx context.Context) (*models.GraphSnapshot, error)
	RunAlgorithms(ctx context.Context, flags models.AlgorithmFlags) (*models.AlgorithmResults, error)

	InitializeTimeoutHandler(ctx context.Context) error
	StopTimeoutHandler(ctx context.Context) error

	AvailablePorts(ctx context.Context) ([]string, error)
	AutoConnectPort(ctx context.Context) (string, error)
}
