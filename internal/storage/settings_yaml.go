package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"focusboard/internal/notify"
	"focusboard/internal/platform"
	"focusboard/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	FocusMinutes     int     `yaml:"focus_minutes"`
	BreakMinutes     int     `yaml:"break_minutes"`
	WaterMinutes     int     `yaml:"water_minutes"`
	HydrationMinutes *int    `yaml:"hydration_minutes"`
	Notifications    string  `yaml:"notifications"`
	WebAddress       *string `yaml:"web_address"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// LoadSettingsFile reads preferences from configPath.
func LoadSettingsFile(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// SaveSettingsFile writes preferences to configPath.
func SaveSettingsFile(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	webAddress := settings.WebAddress
	hydrationMinutes := int(settings.HydrationInterval / time.Minute)
	fileData := yamlSettings{
		FocusMinutes:     int(settings.FocusDuration / time.Minute),
		BreakMinutes:     int(settings.BreakDuration / time.Minute),
		WaterMinutes:     int(settings.WaterDuration / time.Minute),
		HydrationMinutes: &hydrationMinutes,
		Notifications:    string(settings.Notifications),
		WebAddress:       &webAddress,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// SettingsPath returns the settings file location for appName.
func SettingsPath(appName string) (string, error) {
	appDir, err := platform.AppDir(appName)
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.FocusMinutes > 0 {
		settings.FocusDuration = time.Duration(fileData.FocusMinutes) * time.Minute
	}
	if fileData.BreakMinutes > 0 {
		settings.BreakDuration = time.Duration(fileData.BreakMinutes) * time.Minute
	}
	if fileData.WaterMinutes > 0 {
		settings.WaterDuration = time.Duration(fileData.WaterMinutes) * time.Minute
	}
	// zero turns hydration reminders off
	if fileData.HydrationMinutes != nil && *fileData.HydrationMinutes >= 0 {
		settings.HydrationInterval = time.Duration(*fileData.HydrationMinutes) * time.Minute
	}

	if permission := notify.Permission(fileData.Notifications); permission.Valid() {
		settings.Notifications = permission
	}
	if fileData.WebAddress != nil {
		settings.WebAddress = *fileData.WebAddress
	}
}
