package models

import (
	"time"
)

// User is the identity a mesh node broadcasts about itself.
type User struct {
	ID        string `json:"id"`
	LongName  string `json:"longName"`
	ShortName string `json:"shortName"`
	HwModel   string `json:"hwModel,omitempty"`
}

// Position is the last known GPS fix for a node.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  int32   `json:"altitude,omitempty"`
	Time      int64   `json:"time,omitempty"`
}

// NormalizedWaypoint is a shared GPS marker managed by a device.
// Expire is seconds since epoch; zero means the waypoint never expires.
type NormalizedWaypoint struct {
	ID          uint32  `json:"id"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Icon        uint32  `json:"icon,omitempty"`
	Expire      int64   `json:"expire"`
	LockedTo    uint32  `json:"lockedTo,omitempty"`
}

// IsExpired reports whether the waypoint has lapsed at the given time.
// Expired status is derived at read time, never stored.
func (w *NormalizedWaypoint) IsExpired(now time.Time) bool {
	return w.Expire != 0 && w.Expire < now.Unix()
}

// MessageState tracks acknowledgement of an outbound message.
type MessageState string

const (
	MessageStatePending      MessageState = "pending"
	MessageStateAcknowledged MessageState = "ack"
	MessageStateError        MessageState = "error"
)

// ChannelMessage is a text message scoped to one channel of one device.
type ChannelMessage struct {
	ID      string       `json:"id"`
	Channel int32        `json:"channel"`
	From    uint32       `json:"from"`
	Text    string       `json:"text"`
	RxTime  int64        `json:"rxTime"`
	State   MessageState `json:"state"`
}

// MeshChannel is one messaging channel a device participates in.
type MeshChannel struct {
	Index           int32            `json:"index"`
	Name            string           `json:"name,omitempty"`
	Role            string           `json:"role,omitempty"`
	LastInteraction int64            `json:"lastInteraction"`
	Messages        []ChannelMessage `json:"messages"`
}

// MeshNode is a remote node the device has heard on the mesh.
type MeshNode struct {
	Num       uint32    `json:"num"`
	User      *User     `json:"user,omitempty"`
	Position  *Position `json:"position,omitempty"`
	SNR       float64   `json:"snr,omitempty"`
	LastHeard int64     `json:"lastHeard,omitempty"`
}

// DeviceMetrics is the radio's own health readings.
type DeviceMetrics struct {
	BatteryLevel       uint32  `json:"batteryLevel,omitempty"`
	Voltage            float64 `json:"voltage,omitempty"`
	ChannelUtilization float64 `json:"channelUtilization,omitempty"`
	AirUtilTx          float64 `json:"airUtilTx,omitempty"`
}

// MeshDevice is the full state of one connected radio. Key is the
// caller-chosen connection identifier (serial port or socket address);
// Num is the mesh node id the backend assigns after discovery.
type MeshDevice struct {
	Key              string                         `json:"key"`
	Num              uint32                         `json:"num"`
	Ready            bool                           `json:"ready"`
	User             *User                          `json:"user,omitempty"`
	Position         *Position                      `json:"position,omitempty"`
	RegionUnset      bool                           `json:"regionUnset"`
	ConfigInProgress bool                           `json:"configInProgress"`
	RadioConfig      RadioConfig                    `json:"radioConfig"`
	ModuleConfig     ModuleConfig                   `json:"moduleConfig"`
	Metrics          DeviceMetrics                  `json:"metrics"`
	Nodes            map[uint32]*MeshNode           `json:"nodes"`
	Channels         map[int32]*MeshChannel         `json:"channels"`
	Waypoints        map[uint32]*NormalizedWaypoint `json:"waypoints"`
	Messages         map[int32][]ChannelMessage     `json:"messages"`
}

// NewMeshDevice creates a device entity with empty collections, as
// populated on first successful connection or first mesh discovery.
func NewMeshDevice(key string, num uint32) *MeshDevice {
	return &MeshDevice{
		Key:         key,
		Num:         num,
		RegionUnset: true,
		Nodes:       make(map[uint32]*MeshNode),
		Channels:    make(map[int32]*MeshChannel),
		Waypoints:   make(map[uint32]*NormalizedWaypoint),
		Messages:    make(map[int32][]ChannelMessage),
	}
}
