package models

// ColorMode is the UI color preference persisted across sessions.
type ColorMode string

const (
	ColorModeLight  ColorMode = "light"
	ColorModeDark   ColorMode = "dark"
	ColorModeSystem ColorMode = "system"
)

// GeneralConfig is the persisted general application configuration.
type GeneralConfig struct {
	ColorMode ColorMode `json:"colorMode"`
}

// DefaultGeneralConfig is what a fresh profile resolves to when the
// persisted key is missing.
func DefaultGeneralConfig() GeneralConfig {
	return GeneralConfig{ColorMode: ColorModeSystem}
}

// MapConfig is the persisted map-view configuration.
type MapConfig struct {
	Style string `json:"style"`
}

// DefaultMapConfig is what a fresh profile resolves to when the
// persisted key is missing.
func DefaultMapConfig() MapConfig {
	return MapConfig{Style: "default"}
}

// TCPConnectionMeta remembers the last TCP endpoint a device connection
// was opened against, so the next session can offer it again.
type TCPConnectionMeta struct {
	Address string `json:"address"`
}
