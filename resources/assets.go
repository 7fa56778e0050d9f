package resources

import (
	"embed"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
)

const (
	iconDir = "icons/"
	logoDir = "logo/"

	// FallbackIcon is shown for splits whose icon is missing.
	FallbackIcon = "split.svg"
)

//go:embed icons/*.svg
var iconFS embed.FS

//go:embed logo/*.svg
var logoFS embed.FS

//go:embed default_route.yaml
var defaultRoute []byte

var iconCache sync.Map
var logoCache sync.Map

// Icon returns a Fyne resource for the given split icon file.
func Icon(fileName string) (fyne.Resource, error) {
	return loadResource(iconFS, iconDir+fileName, &iconCache)
}

// IconOrFallback returns the named icon, or the generic split icon when the
// name is empty or not bundled.
func IconOrFallback(fileName string) fyne.Resource {
	if fileName != "" {
		if resource, err := Icon(fileName); err == nil {
			return resource
		}
	}
	return MustIcon(FallbackIcon)
}

// MustIcon returns a Fyne resource or panics on error.
func MustIcon(fileName string) fyne.Resource {
	resource, err := Icon(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

// Logo returns a Fyne resource for the given logo file.
func Logo(fileName string) (fyne.Resource, error) {
	return loadResource(logoFS, logoDir+fileName, &logoCache)
}

// MustLogo returns a Fyne resource or panics on error.
func MustLogo(fileName string) fyne.Resource {
	resource, err := Logo(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

// DefaultRoute returns the bundled route in YAML.
func DefaultRoute() []byte {
	return append([]byte(nil), defaultRoute...)
}

func loadResource(fs embed.FS, path string, cache *sync.Map) (fyne.Resource, error) {
	if cached, ok := cache.Load(path); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", path, err)
	}

	resource := fyne.NewStaticResource(path, data)
	cache.Store(path, resource)
	return resource, nil
}
