package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings holds user-configurable options.
type Settings struct {
	ResolveHosts     bool `yaml:"resolveHosts"`     // Reverse-resolve remote endpoints
	ServiceNames     bool `yaml:"serviceNames"`     // Replace well-known ports with service names
	DockerContainers bool `yaml:"dockerContainers"` // Annotate rows with container info
	RefreshSeconds   int  `yaml:"refreshSeconds"`   // Sampling interval
}

// DefaultSettings returns the default settings.
func DefaultSettings() *Settings {
	return &Settings{
		ResolveHosts:     true,
		ServiceNames:     true,
		DockerContainers: true,
		RefreshSeconds:   3,
	}
}

// settingsPath returns the path to the settings file.
func settingsPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "network-monitor", "settings.yaml"), nil
}

// LoadSettings loads settings from disk, returning defaults if not found
// or unreadable.
func LoadSettings() (*Settings, error) {
	path, err := settingsPath()
	if err != nil {
		return DefaultSettings(), nil
	}

	// #nosec G304 - path is constructed from trusted sources
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return DefaultSettings(), err
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return DefaultSettings(), err
	}
	if settings.RefreshSeconds < 1 {
		settings.RefreshSeconds = DefaultSettings().RefreshSeconds
	}

	return settings, nil
}

// SaveSettings writes settings to disk.
func SaveSettings(s *Settings) error {
	path, err := settingsPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// CurrentSettings holds the loaded settings (singleton).
var CurrentSettings *Settings

// InitSettings initializes the global settings.
func InitSettings() error {
	settings, err := LoadSettings()
	if err != nil {
		return err
	}
	CurrentSettings = settings
	return nil
}

func init() {
	CurrentSettings = DefaultSettings()
}
