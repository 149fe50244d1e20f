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

// Package natsbridge speaks the bridge contract over NATS request/reply
// with JSON payloads. Each invocation is one request on a per-command
// subject; the backend replies with a data-or-error envelope.
package natsbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/meshworks/meshcoord/pkg/bridge"
	"github.com/meshworks/meshcoord/pkg/logger"
	"github.com/meshworks/meshcoord/pkg/models"
)

const (
	defaultSubjectPrefix = "bridge"

	subjectConnect            = "connect"
	subjectDisconnect         = "disconnect"
	subjectDisconnectAll      = "disconnect_all"
	subjectSendText           = "send_text"
	subjectSendWaypoint       = "send_waypoint"
	subjectDeleteWaypoint     = "delete_waypoint"
	subjectUpdateUser         = "update_user"
	subjectCommitConfig       = "commit_config"
	subjectGetGraphState      = "get_graph_state"
	subjectRunAlgorithms      = "run_algorithms"
	subjectInitTimeoutHandler = "initialize_timeout_handler"
	subjectStopTimeoutHandler = "stop_timeout_handler"
	subjectAvailablePorts     = "get_all_serial_ports"
	subjectAutoConnectPort    = "request_autoconnect_port"
)

// Config holds the NATS connection settings for the bridge client.
type Config struct {
	URL            string          `json:"nats_url"`
	SubjectPrefix  string          `json:"subject_prefix,omitempty"`
	RequestTimeout models.Duration `json:"request_timeout,omitempty"`
}

// Client implements bridge.Client and bridge.EventSource over a NATS
// connection.
type Client struct {
	nc      *nats.Conn
	prefix  string
	timeout time.Duration
	logger  logger.Logger
}

// envelope is the wire frame for every request and reply.
type envelope struct {
	ID    string          `json:"id,omitempty"`
	Error string          `json:"error,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// New connects to NATS and returns a bridge client.
func New(config *Config, log logger.Logger) (*Client, error) {
	nc, err := nats.Connect(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return NewWithConn(nc, config, log), nil
}

// NewWithConn wraps an existing NATS connection; the caller keeps
// ownership of the connection lifecycle.
func NewWithConn(nc *nats.Conn, config *Config, log logger.Logger) *Client {
	prefix := config.SubjectPrefix
	if prefix == "" {
		prefix = defaultSubjectPrefix
	}

	timeout := time.Duration(config.RequestTimeout)
	if timeout == 0 {
		timeout = nats.DefaultTimeout
	}

	return &Client{
		nc:      nc,
		prefix:  prefix,
		timeout: timeout,
		logger:  log,
	}
}

// Close drops the underlying NATS connection.
func (c *Client) Close() {
	c.nc.Close()
}

func (c *Client) subject(command string) string {
	return c.prefix + "." + command
}

// invoke performs one request/reply round trip. A reply envelope with a
// non-empty error becomes a CommandError carrying the backend's reason.
func (c *Client) invoke(ctx context.Context, command string, payload, result interface{}) error {
	req := envelope{ID: uuid.New().String()}

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s request: %w", command, err)
		}

		req.Data = data
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal %s envelope: %w", command, err)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	c.logger.Debug().Str("command", command).Str("request_id", req.ID).Msg("Invoking bridge")

	msg, err := c.nc.RequestWithContext(ctx, c.subject(command), body)
	if err != nil {
		return fmt.Errorf("bridge %s request failed: %w", command, err)
	}

	var reply envelope
	if err := json.Unmarshal(msg.Data, &reply); err != nil {
		return fmt.Errorf("failed to decode %s reply: %w", command, err)
	}

	if reply.Error != "" {
		return bridge.NewCommandError(command, reply.Error)
	}

	if result != nil && len(reply.Data) > 0 {
		if err := json.Unmarshal(reply.Data, result); err != nil {
			return fmt.Errorf("failed to decode %s result: %w", command, err)
		}
	}

	return nil
}

func (c *Client) Connect(ctx context.Context, req *bridge.ConnectRequest) (*bridge.DeviceDescriptor, error) {
	var descriptor bridge.DeviceDescriptor

	if err := c.invoke(ctx, subjectConnect, req, &descriptor); err != nil {
		return nil, err
	}

	return &descriptor, nil
}

func (c *Client) Disconnect(ctx context.Context, deviceKey string) error {
	payload := struct {
		DeviceKey string `json:"deviceKey"`
	}{DeviceKey: deviceKey}

	return c.invoke(ctx, subjectDisconnect, payload, nil)
}

func (c *Client) DisconnectAll(ctx context.Context) error {
	return c.invoke(ctx, subjectDisconnectAll, nil, nil)
}

func (c *Client) SendText(ctx context.Context, req *bridge.SendTextRequest) error {
	return c.invoke(ctx, subjectSendText, req, nil)
}

func (c *Client) SendWaypoint(ctx context.Context, req *bridge.SendWaypointRequest) error {
	return c.invoke(ctx, subjectSendWaypoint, req, nil)
}

func (c *Client) DeleteWaypoint(ctx context.Context, req *bridge.DeleteWaypointRequest) error {
	return c.invoke(ctx, subjectDeleteWaypoint, req, nil)
}

func (c *Client) UpdateUser(ctx context.Context, req *bridge.UpdateUserRequest) error {
	return c.invoke(ctx, subjectUpdateUser, req, nil)
}

func (c *Client) CommitConfig(ctx context.Context, req *bridge.CommitConfigRequest) error {
	return c.invoke(ctx, subjectCommitConfig, req, nil)
}

func (c *Client) GetGraphState(ctx context.Context) (*models.GraphSnapshot, error) {
	var result struct {
		Graph models.GraphSnapshot `json:"graph"`
	}

	if err := c.invoke(ctx, subjectGetGraphState, nil, &result); err != nil {
		return nil, err
	}

	return &result.Graph, nil
}

func (c *Client) RunAlgorithms(ctx context.Context, flags models.AlgorithmFlags) (*models.AlgorithmResults, error) {
	payload := struct {
		Flags models.AlgorithmFlags `json:"flags"`
	}{Flags: flags}

	var results models.AlgorithmResults

	if err := c.invoke(ctx, subjectRunAlgorithms, payload, &results); err != nil {
		return nil, err
	}

	return &results, nil
}

func (c *Client) InitializeTimeoutHandler(ctx context.Context) error {
	return c.invoke(ctx, subjectInitTimeoutHandler, nil, nil)
}

func (c *Client) StopTimeoutHandler(ctx context.Context) error {
	return c.invoke(ctx, subjectStopTimeoutHandler, nil, nil)
}

func (c *Client) AvailablePorts(ctx context.Context) ([]string, error) {
	var result struct {
		Ports []string `json:"ports"`
	}

	if err := c.invoke(ctx, subjectAvailablePorts, nil, &result); err != nil {
		return nil, err
	}

	return result.Ports, nil
}

func (c *Client) AutoConnectPort(ctx context.Context) (string, error) {
	var result struct {
		Port string `json:"port"`
	}

	if err := c.invoke(ctx, subjectAutoConnectPort, nil, &result); err != nil {
		return "", err
	}

	return result.Port, nil
}

var _ bridge.Client = (*Client)(nil)
