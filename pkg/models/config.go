package models

// ConfigSection names a commit unit when flushing edited configuration
// to the radio.
type ConfigSection string

const (
	SectionRadio   ConfigSection = "radio"
	SectionModule  ConfigSection = "module"
	SectionChannel ConfigSection = "channel"
)

// Config sections use pointer fields so that partial edits can be merged
// field-by-field: a nil field in an overlay leaves the current value
// untouched. This replaces the shape-based deep merge the UI layer used
// to rely on with a schema the compiler can check.

// BluetoothConfig controls the radio's bluetooth interface.
type BluetoothConfig struct {
	Enabled  *bool   `json:"enabled,omitempty"`
	Mode     *string `json:"mode,omitempty"`
	FixedPin *uint32 `json:"fixedPin,omitempty"`
}

// DeviceConfig is the radio's top-level role configuration.
type DeviceConfig struct {
	Role                  *string `json:"role,omitempty"`
	SerialEnabled         *bool   `json:"serialEnabled,omitempty"`
	NodeInfoBroadcastSecs *uint32 `json:"nodeInfoBroadcastSecs,omitempty"`
}

// DisplayConfig controls the onboard screen.
type DisplayConfig struct {
	ScreenOnSecs *uint32 `json:"screenOnSecs,omitempty"`
	Units        *string `json:"units,omitempty"`
	FlipScreen   *bool   `json:"flipScreen,omitempty"`
}

// LoRaConfig is the radio's RF configuration.
type LoRaConfig struct {
	Region          *string  `json:"region,omitempty"`
	ModemPreset     *string  `json:"modemPreset,omitempty"`
	HopLimit        *uint32  `json:"hopLimit,omitempty"`
	TxEnabled       *bool    `json:"txEnabled,omitempty"`
	TxPower         *int32   `json:"txPower,omitempty"`
	FrequencyOffset *float64 `json:"frequencyOffset,omitempty"`
}

// NetworkConfig is the radio's WiFi/ethernet configuration.
type NetworkConfig struct {
	WifiEnabled *bool   `json:"wifiEnabled,omitempty"`
	WifiSsid    *string `json:"wifiSsid,omitempty"`
	EthEnabled  *bool   `json:"ethEnabled,omitempty"`
	NtpServer   *string `json:"ntpServer,omitempty"`
}

// PositionConfig controls GPS behavior.
type PositionConfig struct {
	GpsEnabled            *bool   `json:"gpsEnabled,omitempty"`
	PositionBroadcastSecs *uint32 `json:"positionBroadcastSecs,omitempty"`
	FixedPosition         *bool   `json:"fixedPosition,omitempty"`
}

// PowerConfig controls power management.
type PowerConfig struct {
	IsPowerSaving     *bool   `json:"isPowerSaving,omitempty"`
	ShutdownOnBattery *uint32 `json:"onBatteryShutdownAfterSecs,omitempty"`
	LsSecs            *uint32 `json:"lsSecs,omitempty"`
}

// RadioConfig groups the per-section radio configuration. Sections are
// merged independently; a nil section in an overlay is skipped entirely.
type RadioConfig struct {
	Bluetooth *BluetoothConfig `json:"bluetooth,omitempty"`
	Device    *DeviceConfig    `json:"device,omitempty"`
	Display   *DisplayConfig   `json:"display,omitempty"`
	LoRa      *LoRaConfig      `json:"lora,omitempty"`
	Network   *NetworkConfig   `json:"network,omitempty"`
	Position  *PositionConfig  `json:"position,omitempty"`
	Power     *PowerConfig     `json:"power,omitempty"`
}

// CannedMessageConfig controls preset message support.
type CannedMessageConfig struct {
	Enabled          *bool   `json:"enabled,omitempty"`
	AllowInputSource *string `json:"allowInputSource,omitempty"`
}

// ExternalNotificationConfig controls buzzer/LED alerting.
type ExternalNotificationConfig struct {
	Enabled   *bool   `json:"enabled,omitempty"`
	OutputMs  *uint32 `json:"outputMs,omitempty"`
	AlertBell *bool   `json:"alertBell,omitempty"`
}

// MQTTConfig controls the MQTT uplink module.
type MQTTConfig struct {
	Enabled           *bool   `json:"enabled,omitempty"`
	Address           *string `json:"address,omitempty"`
	Username          *string `json:"username,omitempty"`
	EncryptionEnabled *bool   `json:"encryptionEnabled,omitempty"`
}

// RangeTestConfig controls the range test module.
type RangeTestConfig struct {
	Enabled *bool   `json:"enabled,omitempty"`
	Sender  *uint32 `json:"sender,omitempty"`
	Save    *bool   `json:"save,omitempty"`
}

// RemoteHardwareConfig controls GPIO access over the mesh.
type RemoteHardwareConfig struct {
	Enabled *bool `json:"enabled,omitempty"`
}

// SerialModuleConfig controls the serial passthrough module.
type SerialModuleConfig struct {
	Enabled *bool   `json:"enabled,omitempty"`
	Baud    *uint32 `json:"baud,omitempty"`
	Mode    *string `json:"mode,omitempty"`
}

// StoreForwardConfig controls store-and-forward relaying.
type StoreForwardConfig struct {
	Enabled       *bool   `json:"enabled,omitempty"`
	Records       *uint32 `json:"records,omitempty"`
	HeartbeatSecs *uint32 `json:"historyReturnWindow,omitempty"`
}

// TelemetryConfig controls metric broadcast intervals.
type TelemetryConfig struct {
	DeviceUpdateInterval          *uint32 `json:"deviceUpdateInterval,omitempty"`
	EnvironmentUpdateInterval     *uint32 `json:"environmentUpdateInterval,omitempty"`
	EnvironmentMeasurementEnabled *bool   `json:"environmentMeasurementEnabled,omitempty"`
}

// ModuleConfig groups the per-module configuration sections.
type ModuleConfig struct {
	CannedMessage        *CannedMessageConfig        `json:"cannedMessage,omitempty"`
	ExternalNotification *ExternalNotificationConfig `json:"externalNotification,omitempty"`
	MQTT                 *MQTTConfig                 `json:"mqtt,omitempty"`
	RangeTest            *RangeTestConfig            `json:"rangeTest,omitempty"`
	RemoteHardware       *RemoteHardwareConfig       `json:"remoteHardware,omitempty"`
	Serial               *SerialModuleConfig         `json:"serial,omitempty"`
	StoreForward         *StoreForwardConfig         `json:"storeForward,omitempty"`
	Telemetry            *TelemetryConfig            `json:"telemetry,omitempty"`
}

// ChannelConfig is the editable settings of one messaging channel.
type ChannelConfig struct {
	Name *string `json:"name,omitempty"`
	Role *string `json:"role,omitempty"`
	PSK  *string `json:"psk,omitempty"`
}
