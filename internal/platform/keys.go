package platform

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedKey is returned for a split key name with no key code.
var ErrUnsupportedKey = errors.New("unsupported split key")

// KeySource delivers presses of the split key.
type KeySource interface {
	// Start begins delivering presses to onPress. An error means the key
	// cannot be captured.
	Start(onPress func()) error
	Stop()
}

// NormalizeKeyName lowercases and trims a key name and folds aliases.
func NormalizeKeyName(keyName string) string {
	name := strings.ToLower(strings.TrimSpace(keyName))
	switch name {
	case "return":
		return "enter"
	case "esc":
		return "escape"
	case "":
		return "space"
	}
	return name
}

// SupportedKeys lists the key names every key source accepts.
func SupportedKeys() []string {
	names := []string{"space", "enter", "tab", "escape", "delete", "left", "right", "up", "down"}
	for index := 1; index <= 12; index++ {
		names = append(names, fmt.Sprintf("f%d", index))
	}
	for letter := 'a'; letter <= 'z'; letter++ {
		names = append(names, string(letter))
	}
	for digit := '0'; digit <= '9'; digit++ {
		names = append(names, string(digit))
	}
	return names
}
