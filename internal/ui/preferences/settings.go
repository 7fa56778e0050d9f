package preferences

import (
	"time"

	"splitcaster/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	// RouteFile is the route to time. Empty means route.yaml next to the
	// settings file.
	RouteFile string
	SplitKey  string
	TickRate  int

	GlobalHotkey     bool
	WatchRouteFile   bool
	ShowMilliseconds bool
}

// DefaultSettings returns default settings for SplitCaster.
func DefaultSettings() Settings {
	return Settings{
		SplitKey:         "space",
		TickRate:         30,
		GlobalHotkey:     true,
		WatchRouteFile:   true,
		ShowMilliseconds: true,
	}
}

// TimeKeeperConfig converts settings to TimeKeeperConfig.
func (settings Settings) TimeKeeperConfig() model.TimeKeeperConfig {
	return model.TimeKeeperConfig{
		TickInterval:   model.TickIntervalForRate(settings.TickRate),
		MinSplitGap:    250 * time.Millisecond,
		SaveRetryDelay: 2 * time.Second,
	}
}
