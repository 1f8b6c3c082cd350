// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// ConfigDirName is the name of the clammy directory under the user
	// config root.
	ConfigDirName = "clammy"

	// SettingsFileName is the global settings file name.
	SettingsFileName = "settings.yaml"

	// LogFileName is the bar's log file name.
	LogFileName = "clammy.log"
)

// Dir returns the path to the clammy config directory
// (~/.config/clammy/ on a default XDG setup).
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, ConfigDirName), nil
}

// SettingsFile returns the path to the settings.yaml file.
func SettingsFile() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// LogFile returns the path to the log file.
func LogFile() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LogFileName), nil
}

// EnsureDir creates the config directory if it doesn't exist.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
