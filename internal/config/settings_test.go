package config

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s == nil {
		t.Fatal("DefaultSettings returned nil")
	}
	if !s.ResolveHosts {
		t.Error("ResolveHosts should be true by default")
	}
	if !s.ServiceNames {
		t.Error("ServiceNames should be true by default")
	}
	if s.RefreshSeconds != 3 {
		t.Errorf("RefreshSeconds = %d, want 3", s.RefreshSeconds)
	}
}

func TestLoadSettings_ReturnsDefaultsWhenNoFile(t *testing.T) {
	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if s == nil {
		t.Fatal("LoadSettings returned nil")
	}
}

func TestSettings_YAMLRoundtrip(t *testing.T) {
	original := &Settings{
		ResolveHosts:     false,
		ServiceNames:     true,
		DockerContainers: false,
		RefreshSeconds:   5,
	}

	data, err := yaml.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if loaded != *original {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", loaded, *original)
	}
}

func TestSaveLoadSettings_Roundtrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	saved := &Settings{
		ResolveHosts:     false,
		ServiceNames:     false,
		DockerContainers: true,
		RefreshSeconds:   7,
	}
	if err := SaveSettings(saved); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	loaded, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if *loaded != *saved {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", *loaded, *saved)
	}
}

func TestCurrentSettings_InitializedOnPackageLoad(t *testing.T) {
	if CurrentSettings == nil {
		t.Error("CurrentSettings should be initialized on package load")
	}
}
