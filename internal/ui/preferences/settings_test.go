package preferences

import (
	"testing"
	"time"
)

func TestTimeKeeperConfig(t *testing.T) {
	tests := []struct {
		rate int
		want time.Duration
	}{
		{rate: 30, want: time.Second / 30},
		{rate: 0, want: time.Second},
		{rate: 500, want: time.Second / 120},
	}
	for _, tt := range tests {
		settings := DefaultSettings()
		settings.TickRate = tt.rate
		if got := settings.TimeKeeperConfig().TickInterval; got != tt.want {
			t.Errorf("rate %d: TickInterval = %v, want %v", tt.rate, got, tt.want)
		}
	}
}

func TestFormApply(t *testing.T) {
	base := DefaultSettings()
	tests := []struct {
		name string
		form Form
		want Settings
	}{
		{
			name: "valid values",
			form: Form{RouteFile: " runs/any.toml ", SplitKey: "F1", TickRate: "60", ShowMilliseconds: true},
			want: Settings{RouteFile: "runs/any.toml", SplitKey: "f1", TickRate: 60, ShowMilliseconds: true},
		},
		{
			name: "invalid values keep previous",
			form: Form{SplitKey: "hyper", TickRate: "fast", GlobalHotkey: true, WatchRouteFile: true},
			want: Settings{SplitKey: base.SplitKey, TickRate: base.TickRate, GlobalHotkey: true, WatchRouteFile: true},
		},
		{
			name: "rate above limit",
			form: Form{SplitKey: "space", TickRate: "500"},
			want: Settings{SplitKey: "space", TickRate: base.TickRate},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.form.Apply(base); got != tt.want {
				t.Errorf("Apply = %+v, want %+v", got, tt.want)
			}
		})
	}
}
