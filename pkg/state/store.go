// Package state owns the merged in-memory model the rendering layer
// reads: devices, topology, algorithm results, UI selection, and cached
// application config. All mutation flows through named transition
// methods under one lock; readers get defensive copies and never see a
// torn update. Bridge invocations are always awaited outside the lock.
package state

import (
	"sync"

	"github.com/meshworks/meshcoord/pkg/logger"
	"github.com/meshworks/meshcoord/pkg/models"
)

// InfoPane names the side panel the UI has open.
type InfoPane string

const (
	InfoPaneNone     InfoPane = ""
	InfoPaneWaypoint InfoPane = "waypoint"
	InfoPaneAlgos    InfoPane = "algos"
)

// UIState holds weak references to the user's current selection. The
// ids are resolved via lookup at read time and tolerate the referent
// having been deleted.
type UIState struct {
	ActiveNodeNum    *uint32  `json:"activeNodeNum,omitempty"`
	ActiveWaypointID *uint32  `json:"activeWaypointId,omitempty"`
	InfoPane         InfoPane `json:"infoPane,omitempty"`
}

// Store is the single shared domain model. One instance per
// application; tests construct their own isolated stores.
type Store struct {
	mu     sync.RWMutex
	logger logger.Logger

	devices          map[string]*models.MeshDevice
	primaryDeviceKey string
	availablePorts   []string
	autoConnectPort  string

	graph      *models.GraphSnapshot
	algorithms models.AlgorithmResults

	editedRadio    models.RadioConfig
	editedModule   models.ModuleConfig
	editedChannels map[int32]*models.ChannelConfig

	ui UIState

	generalConfig models.GeneralConfig
	mapConfig     models.MapConfig
	lastTCP       *models.TCPConnectionMeta
}

// NewStore creates an empty domain state store.
func NewStore(log logger.Logger) *Store {
	return &Store{
		logger:         log,
		devices:        make(map[string]*models.MeshDevice),
		editedChannels: make(map[int32]*models.ChannelConfig),
		generalConfig:  models.DefaultGeneralConfig(),
		mapConfig:      models.DefaultMapConfig(),
	}
}

// SetPrimaryDeviceKey records which connection the UI treats as primary.
// An empty key clears the selection.
func (s *Store) SetPrimaryDeviceKey(deviceKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.primaryDeviceKey = deviceKey
}

// PrimaryDeviceKey returns the current primary connection key, if any.
func (s *Store) PrimaryDeviceKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.primaryDeviceKey
}

// SetAvailablePorts replaces the serial port candidate list.
func (s *Store) SetAvailablePorts(ports []string) {
	cloned := make([]string, len(ports))
	copy(cloned, ports)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.availablePorts = cloned
}

// AvailablePorts returns a copy of the serial port candidate list.
func (s *Store) AvailablePorts() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.availablePorts))
	copy(out, s.availablePorts)

	return out
}

// SetAutoConnectPort records the port the application should open on
// startup.
func (s *Store) SetAutoConnectPort(port string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.autoConnectPort = port
}

// AutoConnectPort returns the configured startup port, empty when unset.
func (s *Store) AutoConnectPort() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.autoConnectPort
}

// SetActiveNode selects a node for the info view. Selecting a node
// clears any waypoint selection and open pane; passing nil clears the
// node selection only.
func (s *Store) SetActiveNode(nodeNum *uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ui.ActiveNodeNum = cloneUint32Ptr(nodeNum)

	if nodeNum != nil {
		s.ui.ActiveWaypointID = nil
		s.ui.InfoPane = InfoPaneNone
	}
}

// SetActiveWaypoint selects a waypoint for the info view; a non-nil
// selection opens the waypoint pane and clears any node selection.
func (s *Store) SetActiveWaypoint(waypointID *uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ui.ActiveWaypointID = cloneUint32Ptr(waypointID)

	if waypointID != nil {
		s.ui.InfoPane = InfoPaneWaypoint
		s.ui.ActiveNodeNum = nil
	}
}

// SetInfoPane opens or closes a side pane. Closing the pane drops the
// waypoint selection with it.
func (s *Store) SetInfoPane(pane InfoPane) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ui.InfoPane = pane

	if pane != InfoPaneNone {
		s.ui.ActiveNodeNum = nil
	} else {
		s.ui.ActiveWaypointID = nil
	}
}

// UI returns a copy of the current UI selection state.
func (s *Store) UI() UIState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return UIState{
		ActiveNodeNum:    cloneUint32Ptr(s.ui.ActiveNodeNum),
		ActiveWaypointID: cloneUint32Ptr(s.ui.ActiveWaypointID),
		InfoPane:         s.ui.InfoPane,
	}
}

// ActiveWaypoint resolves the selected waypoint id against the primary
// device. A selection whose waypoint no longer exists resolves to nil,
// never an error: deletion races must not dangle.
func (s *Store) ActiveWaypoint() *models.NormalizedWaypoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.ui.ActiveWaypointID == nil {
		return nil
	}

	device, ok := s.devices[s.primaryDeviceKey]
	if !ok {
		return nil
	}

	waypoint, ok := device.Waypoints[*s.ui.ActiveWaypointID]
	if !ok {
		return nil
	}

	return cloneWaypoint(waypoint)
}

// ActiveNode resolves the selected node id against the primary device's
// node table, or nil when the selection is stale.
func (s *Store) ActiveNode() *models.MeshNode {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.ui.ActiveNodeNum == nil {
		return nil
	}

	device, ok := s.devices[s.primaryDeviceKey]
	if !ok {
		return nil
	}

	node, ok := device.Nodes[*s.ui.ActiveNodeNum]
	if !ok {
		return nil
	}

	return cloneNode(node)
}

// SetGeneralConfig caches the persisted general application config.
func (s *Store) SetGeneralConfig(config models.GeneralConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generalConfig = config
}

// GeneralConfig returns the cached general application config.
func (s *Store) GeneralConfig() models.GeneralConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.generalConfig
}

// SetMapConfig caches the persisted map config.
func (s *Store) SetMapConfig(config models.MapConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mapConfig = config
}

// MapConfig returns the cached map config.
func (s *Store) MapConfig() models.MapConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.mapConfig
}

// SetLastTCPConnection caches the most recent TCP endpoint, nil to
// forget it.
func (s *Store) SetLastTCPConnection(meta *models.TCPConnectionMeta) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if meta == nil {
		s.lastTCP = nil
		return
	}

	cloned := *meta
	s.lastTCP = &cloned
}

// LastTCPConnection returns the cached TCP endpoint, nil when unknown.
func (s *Store) LastTCPConnection() *models.TCPConnectionMeta {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lastTCP == nil {
		return nil
	}

	cloned := *s.lastTCP

	return &cloned
}
