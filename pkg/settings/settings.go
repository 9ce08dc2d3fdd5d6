// Package settings manages persistent user settings for the confgen CLI.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings holds persistent user preferences
type Settings struct {
	// DefaultDeviceType is used when a device model omits device_type
	DefaultDeviceType string `json:"default_device_type,omitempty"`

	// OutputDir is where generated configs are written when no output
	// path is given on the command line
	OutputDir string `json:"output_dir,omitempty"`

	// AuditLog overrides the default audit trail location
	AuditLog string `json:"audit_log,omitempty"`
}

// DefaultSettingsPath returns the default path for the settings file
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "confgen_settings.json"
	}
	return filepath.Join(home, ".confgen", "settings.json")
}

// DefaultAuditPath returns the audit trail location, honoring the
// AuditLog override when set.
func (s *Settings) DefaultAuditPath() string {
	if s.AuditLog != "" {
		return s.AuditLog
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "confgen_audit.log"
	}
	return filepath.Join(home, ".confgen", "audit.log")
}

// Load reads settings from the default location
func Load() (*Settings, error) {
	return LoadFrom(DefaultSettingsPath())
}

// LoadFrom reads settings from a specific path
func LoadFrom(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty settings if file doesn't exist
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}

	return s, nil
}

// Save writes settings to the default location
func (s *Settings) Save() error {
	return s.SaveTo(DefaultSettingsPath())
}

// SaveTo writes settings to a specific path
func (s *Settings) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetDeviceType returns the default device type (with fallback)
func (s *Settings) GetDeviceType() string {
	if s.DefaultDeviceType != "" {
		return s.DefaultDeviceType
	}
	return "cisco_ios"
}

// Clear resets all settings to defaults
func (s *Settings) Clear() {
	*s = Settings{}
}
