package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"splitcaster/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const (
	settingsFileName = "settings.yaml"
	routeFileName    = "route.yaml"
)

type yamlSettings struct {
	RouteFile        string `yaml:"route_file"`
	SplitKey         string `yaml:"split_key"`
	TickRateHz       int    `yaml:"tick_rate_hz"`
	GlobalHotkey     *bool  `yaml:"global_hotkey"`
	WatchRouteFile   *bool  `yaml:"watch_route_file"`
	ShowMilliseconds *bool  `yaml:"show_milliseconds"`
}

// LoadSettings reads user preferences from YAML in configDir.
// If the file does not exist, default settings are returned.
func LoadSettings(configDir string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(filepath.Join(configDir, settingsFileName))
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

// SaveSettings writes user preferences to YAML in configDir.
func SaveSettings(configDir string, settings preferences.Settings) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		RouteFile:        settings.RouteFile,
		SplitKey:         settings.SplitKey,
		TickRateHz:       settings.TickRate,
		GlobalHotkey:     &settings.GlobalHotkey,
		WatchRouteFile:   &settings.WatchRouteFile,
		ShowMilliseconds: &settings.ShowMilliseconds,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(filepath.Join(configDir, settingsFileName), serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// RoutePath returns the route file to use for settings.
func RoutePath(configDir string, settings preferences.Settings) string {
	if settings.RouteFile == "" {
		return filepath.Join(configDir, routeFileName)
	}
	if filepath.IsAbs(settings.RouteFile) {
		return settings.RouteFile
	}
	return filepath.Join(configDir, settings.RouteFile)
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.RouteFile != "" {
		settings.RouteFile = fileData.RouteFile
	}
	if fileData.SplitKey != "" {
		settings.SplitKey = fileData.SplitKey
	}
	if fileData.TickRateHz >= 1 && fileData.TickRateHz <= 120 {
		settings.TickRate = fileData.TickRateHz
	}

	if fileData.GlobalHotkey != nil {
		settings.GlobalHotkey = *fileData.GlobalHotkey
	}
	if fileData.WatchRouteFile != nil {
		settings.WatchRouteFile = *fileData.WatchRouteFile
	}
	if fileData.ShowMilliseconds != nil {
		settings.ShowMilliseconds = *fileData.ShowMilliseconds
	}
}
