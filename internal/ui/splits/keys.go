package splits

import (
	"strings"

	"splitcaster/internal/platform"

	"fyne.io/fyne/v2"
)

var namedKeys = map[string]fyne.KeyName{
	"space":  fyne.KeySpace,
	"enter":  fyne.KeyReturn,
	"tab":    fyne.KeyTab,
	"escape": fyne.KeyEscape,
	"delete": fyne.KeyDelete,
	"left":   fyne.KeyLeft,
	"right":  fyne.KeyRight,
	"up":     fyne.KeyUp,
	"down":   fyne.KeyDown,
}

// fyneKey maps a split key setting to the key fyne reports while the window
// has focus.
func fyneKey(keyName string) (fyne.KeyName, bool) {
	name := platform.NormalizeKeyName(keyName)
	if key, ok := namedKeys[name]; ok {
		return key, true
	}
	switch {
	case len(name) == 1 && ((name[0] >= 'a' && name[0] <= 'z') || (name[0] >= '0' && name[0] <= '9')):
		return fyne.KeyName(strings.ToUpper(name)), true
	case len(name) >= 2 && len(name) <= 3 && name[0] == 'f':
		for _, supported := range platform.SupportedKeys() {
			if supported == name {
				return fyne.KeyName(strings.ToUpper(name)), true
			}
		}
	}
	return "", false
}
