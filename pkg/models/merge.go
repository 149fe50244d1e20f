package models

// Merge rules: an overlay section that is nil leaves the base section
// alone; a non-nil overlay section is merged field-by-field, with nil
// overlay fields keeping the base value. Config is never replaced
// wholesale so an in-progress edit cannot clobber fields it never
// touched.

func mergeBool(base, overlay *bool) *bool {
	if overlay != nil {
		return overlay
	}

	return base
}

func mergeString(base, overlay *string) *string {
	if overlay != nil {
		return overlay
	}

	return base
}

func mergeUint32(base, overlay *uint32) *uint32 {
	if overlay != nil {
		return overlay
	}

	return base
}

func mergeInt32(base, overlay *int32) *int32 {
	if overlay != nil {
		return overlay
	}

	return base
}

func mergeFloat64(base, overlay *float64) *float64 {
	if overlay != nil {
		return overlay
	}

	return base
}

// Merge folds overlay into the receiver and returns the result. The
// receiver is not modified.
func (c RadioConfig) Merge(overlay RadioConfig) RadioConfig {
	out := c

	if overlay.Bluetooth != nil {
		merged := mergeBluetooth(c.Bluetooth, overlay.Bluetooth)
		out.Bluetooth = &merged
	}

	if overlay.Device != nil {
		merged := mergeDevice(c.Device, overlay.Device)
		out.Device = &merged
	}

	if overlay.Display != nil {
		merged := mergeDisplay(c.Display, overlay.Display)
		out.Display = &merged
	}

	if overlay.LoRa != nil {
		merged := mergeLoRa(c.LoRa, overlay.LoRa)
		out.LoRa = &merged
	}

	if overlay.Network != nil {
		merged := mergeNetwork(c.Network, overlay.Network)
		out.Network = &merged
	}

	if overlay.Position != nil {
		merged := mergePosition(c.Position, overlay.Position)
		out.Position = &merged
	}

	if overlay.Power != nil {
		merged := mergePower(c.Power, overlay.Power)
		out.Power = &merged
	}

	return out
}

func mergeBluetooth(base, overlay *BluetoothConfig) BluetoothConfig {
	if base == nil {
		base = &BluetoothConfig{}
	}

	return BluetoothConfig{
		Enabled:  mergeBool(base.Enabled, overlay.Enabled),
		Mode:     mergeString(base.Mode, overlay.Mode),
		FixedPin: mergeUint32(base.FixedPin, overlay.FixedPin),
	}
}

func mergeDevice(base, overlay *DeviceConfig) DeviceConfig {
	if base == nil {
		base = &DeviceConfig{}
	}

	return DeviceConfig{
		Role:                  mergeString(base.Role, overlay.Role),
		SerialEnabled:         mergeBool(base.SerialEnabled, overlay.SerialEnabled),
		NodeInfoBroadcastSecs: mergeUint32(base.NodeInfoBroadcastSecs, overlay.NodeInfoBroadcastSecs),
	}
}

func mergeDisplay(base, overlay *DisplayConfig) DisplayConfig {
	if base == nil {
		base = &DisplayConfig{}
	}

	return DisplayConfig{
		ScreenOnSecs: mergeUint32(base.ScreenOnSecs, overlay.ScreenOnSecs),
		Units:        mergeString(base.Units, overlay.Units),
		FlipScreen:   mergeBool(base.FlipScreen, overlay.FlipScreen),
	}
}

func mergeLoRa(base, overlay *LoRaConfig) LoRaConfig {
	if base == nil {
		base = &LoRaConfig{}
	}

	return LoRaConfig{
		Region:          mergeString(base.Region, overlay.Region),
		ModemPreset:     mergeString(base.ModemPreset, overlay.ModemPreset),
		HopLimit:        mergeUint32(base.HopLimit, overlay.HopLimit),
		TxEnabled:       mergeBool(base.TxEnabled, overlay.TxEnabled),
		TxPower:         mergeInt32(base.TxPower, overlay.TxPower),
		FrequencyOffset: mergeFloat64(base.FrequencyOffset, overlay.FrequencyOffset),
	}
}

func mergeNetwork(base, overlay *NetworkConfig) NetworkConfig {
	if base == nil {
		base = &NetworkConfig{}
	}

	return NetworkConfig{
		WifiEnabled: mergeBool(base.WifiEnabled, overlay.WifiEnabled),
		WifiSsid:    mergeString(base.WifiSsid, overlay.WifiSsid),
		EthEnabled:  mergeBool(base.EthEnabled, overlay.EthEnabled),
		NtpServer:   mergeString(base.NtpServer, overlay.NtpServer),
	}
}

func mergePosition(base, overlay *PositionConfig) PositionConfig {
	if base == nil {
		base = &PositionConfig{}
	}

	return PositionConfig{
		GpsEnabled:            mergeBool(base.GpsEnabled, overlay.GpsEnabled),
		PositionBroadcastSecs: mergeUint32(base.PositionBroadcastSecs, overlay.PositionBroadcastSecs),
		FixedPosition:         mergeBool(base.FixedPosition, overlay.FixedPosition),
	}
}

func mergePower(base, overlay *PowerConfig) PowerConfig {
	if base == nil {
		base = &PowerConfig{}
	}

	return PowerConfig{
		IsPowerSaving:     mergeBool(base.IsPowerSaving, overlay.IsPowerSaving),
		ShutdownOnBattery: mergeUint32(base.ShutdownOnBattery, overlay.ShutdownOnBattery),
		LsSecs:            mergeUint32(base.LsSecs, overlay.LsSecs),
	}
}

// Merge folds overlay into the receiver and returns the result. The
// receiver is not modified.
func (c ModuleConfig) Merge(overlay ModuleConfig) ModuleConfig {
	out := c

	if overlay.CannedMessage != nil {
		merged := mergeCannedMessage(c.CannedMessage, overlay.CannedMessage)
		out.CannedMessage = &merged
	}

	if overlay.ExternalNotification != nil {
		merged := mergeExternalNotification(c.ExternalNotification, overlay.ExternalNotification)
		out.ExternalNotification = &merged
	}

	if overlay.MQTT != nil {
		merged := mergeMQTT(c.MQTT, overlay.MQTT)
		out.MQTT = &merged
	}

	if overlay.RangeTest != nil {
		merged := mergeRangeTest(c.RangeTest, overlay.RangeTest)
		out.RangeTest = &merged
	}

	if overlay.RemoteHardware != nil {
		merged := mergeRemoteHardware(c.RemoteHardware, overlay.RemoteHardware)
		out.RemoteHardware = &merged
	}

	if overlay.Serial != nil {
		merged := mergeSerialModule(c.Serial, overlay.Serial)
		out.Serial = &merged
	}

	if overlay.StoreForward != nil {
		merged := mergeStoreForward(c.StoreForward, overlay.StoreForward)
		out.StoreForward = &merged
	}

	if overlay.Telemetry != nil {
		merged := mergeTelemetry(c.Telemetry, overlay.Telemetry)
		out.Telemetry = &merged
	}

	return out
}

func mergeCannedMessage(base, overlay *CannedMessageConfig) CannedMessageConfig {
	if base == nil {
		base = &CannedMessageConfig{}
	}

	return CannedMessageConfig{
		Enabled:          mergeBool(base.Enabled, overlay.Enabled),
		AllowInputSource: mergeString(base.AllowInputSource, overlay.AllowInputSource),
	}
}

func mergeExternalNotification(base, overlay *ExternalNotificationConfig) ExternalNotificationConfig {
	if base == nil {
		base = &ExternalNotificationConfig{}
	}

	return ExternalNotificationConfig{
		Enabled:   mergeBool(base.Enabled, overlay.Enabled),
		OutputMs:  mergeUint32(base.OutputMs, overlay.OutputMs),
		AlertBell: mergeBool(base.AlertBell, overlay.AlertBell),
	}
}

func mergeMQTT(base, overlay *MQTTConfig) MQTTConfig {
	if base == nil {
		base = &MQTTConfig{}
	}

	return MQTTConfig{
		Enabled:           mergeBool(base.Enabled, overlay.Enabled),
		Address:           mergeString(base.Address, overlay.Address),
		Username:          mergeString(base.Username, overlay.Username),
		EncryptionEnabled: mergeBool(base.EncryptionEnabled, overlay.EncryptionEnabled),
	}
}

func mergeRangeTest(base, overlay *RangeTestConfig) RangeTestConfig {
	if base == nil {
		base = &RangeTestConfig{}
	}

	return RangeTestConfig{
		Enabled: mergeBool(base.Enabled, overlay.Enabled),
		Sender:  mergeUint32(base.Sender, overlay.Sender),
		Save:    mergeBool(base.Save, overlay.Save),
	}
}

func mergeRemoteHardware(base, overlay *RemoteHardwareConfig) RemoteHardwareConfig {
	if base == nil {
		base = &RemoteHardwareConfig{}
	}

	return RemoteHardwareConfig{
		Enabled: mergeBool(base.Enabled, overlay.Enabled),
	}
}

func mergeSerialModule(base, overlay *SerialModuleConfig) SerialModuleConfig {
	if base == nil {
		base = &SerialModuleConfig{}
	}

	return SerialModuleConfig{
		Enabled: mergeBool(base.Enabled, overlay.Enabled),
		Baud:    mergeUint32(base.Baud, overlay.Baud),
		Mode:    mergeString(base.Mode, overlay.Mode),
	}
}

func mergeStoreForward(base, overlay *StoreForwardConfig) StoreForwardConfig {
	if base == nil {
		base = &StoreForwardConfig{}
	}

	return StoreForwardConfig{
		Enabled:       mergeBool(base.Enabled, overlay.Enabled),
		Records:       mergeUint32(base.Records, overlay.Records),
		HeartbeatSecs: mergeUint32(base.HeartbeatSecs, overlay.HeartbeatSecs),
	}
}

func mergeTelemetry(base, overlay *TelemetryConfig) TelemetryConfig {
	if base == nil {
		base = &TelemetryConfig{}
	}

	return TelemetryConfig{
		DeviceUpdateInterval:          mergeUint32(base.DeviceUpdateInterval, overlay.DeviceUpdateInterval),
		EnvironmentUpdateInterval:     mergeUint32(base.EnvironmentUpdateInterval, overlay.EnvironmentUpdateInterval),
		EnvironmentMeasurementEnabled: mergeBool(base.EnvironmentMeasurementEnabled, overlay.EnvironmentMeasurementEnabled),
	}
}
