package models

// TrayConfig holds tray icon resolution settings.
type TrayConfig struct {
	// Extra directory to probe for named icons before giving up. Items
	// that publish their own IconThemePath are unaffected.
	IconThemePath string `yaml:"icon_theme_path"`

	// Target icon edge length in pixels. Pixmap candidates are ranked by
	// distance to this width.
	IconSize int `yaml:"icon_size"`
}

// AppearanceConfig holds bar appearance settings.
type AppearanceConfig struct {
	Theme     string `yaml:"theme"` // "system" | "light" | "dark"
	BarHeight int    `yaml:"bar_height"`
}

// Settings represents global application settings.
// This corresponds to ~/.config/clammy/settings.yaml.
type Settings struct {
	Version    int              `yaml:"version"`
	Tray       TrayConfig       `yaml:"tray"`
	Appearance AppearanceConfig `yaml:"appearance"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Tray: TrayConfig{
			IconThemePath: "",
			IconSize:      22,
		},
		Appearance: AppearanceConfig{
			Theme:     "system",
			BarHeight: 40,
		},
	}
}
