package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"splitcaster/internal/core/model"
	"splitcaster/resources"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnknownRouteFormat is returned for a route file whose extension is not
// .yaml, .yml, .json or .toml.
var ErrUnknownRouteFormat = errors.New("unknown route file format")

// Format is a route file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatForPath picks the encoding from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnknownRouteFormat)
	}
}

type routeFile struct {
	Name         string      `yaml:"name" json:"name" toml:"name"`
	GameName     string      `yaml:"gameName" json:"gameName" toml:"gameName"`
	Platform     string      `yaml:"platform,omitempty" json:"platform,omitempty" toml:"platform,omitempty"`
	AttemptCount int         `yaml:"attemptCount" json:"attemptCount" toml:"attemptCount"`
	Splits       []splitFile `yaml:"splits" json:"splits" toml:"splits"`
	BestRun      []splitFile `yaml:"bestRun,omitempty" json:"bestRun,omitempty" toml:"bestRun,omitempty"`
}

type splitFile struct {
	Name         string   `yaml:"name" json:"name" toml:"name"`
	Icon         string   `yaml:"icon,omitempty" json:"icon,omitempty" toml:"icon,omitempty"`
	BestElapsed  *float64 `yaml:"bestElapsed,omitempty" json:"bestElapsed,omitempty" toml:"bestElapsed,omitempty"`
	StartTime    *float64 `yaml:"startTime,omitempty" json:"startTime,omitempty" toml:"startTime,omitempty"`
	EndTime      *float64 `yaml:"endTime,omitempty" json:"endTime,omitempty" toml:"endTime,omitempty"`
	RunStartTime *float64 `yaml:"runStartTime,omitempty" json:"runStartTime,omitempty" toml:"runStartTime,omitempty"`

	// Older route files.
	IconFilename    string   `yaml:"iconFilename,omitempty" json:"iconFilename,omitempty" toml:"iconFilename,omitempty"`
	BestElapsedTime *float64 `yaml:"bestElapsedTime,omitempty" json:"bestElapsedTime,omitempty" toml:"bestElapsedTime,omitempty"`
}

// LoadRoute reads and validates the route at path. The returned route is
// seeded with a fresh current run.
func LoadRoute(path string) (model.Route, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return model.Route{}, err
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		return model.Route{}, fmt.Errorf("read route file: %w", err)
	}
	return DecodeRoute(rawData, format)
}

// DecodeRoute parses a route encoded in format.
func DecodeRoute(rawData []byte, format Format) (model.Route, error) {
	var fileData routeFile
	switch format {
	case FormatYAML, FormatJSON:
		// JSON documents are valid YAML, so one decoder serves both.
		if err := yaml.Unmarshal(rawData, &fileData); err != nil {
			return model.Route{}, fmt.Errorf("parse route %s: %w", format, err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(rawData), &fileData); err != nil {
			return model.Route{}, fmt.Errorf("parse route toml: %w", err)
		}
	default:
		return model.Route{}, fmt.Errorf("%s: %w", format, ErrUnknownRouteFormat)
	}

	route := fileData.toRoute()
	if err := route.Validate(); err != nil {
		return model.Route{}, fmt.Errorf("invalid route: %w", err)
	}
	if route.BestRun != nil && !route.HasBestRun() {
		// A best run without times cannot be beaten or compared against.
		route.BestRun = nil
	}
	return route.Seeded(), nil
}

// EncodeRoute serializes the persistent part of route in format.
func EncodeRoute(route model.Route, format Format) ([]byte, error) {
	fileData := fromRoute(route)
	switch format {
	case FormatYAML:
		serialized, err := yaml.Marshal(fileData)
		if err != nil {
			return nil, fmt.Errorf("marshal route yaml: %w", err)
		}
		return serialized, nil
	case FormatJSON:
		serialized, err := json.MarshalIndent(fileData, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal route json: %w", err)
		}
		return append(serialized, '\n'), nil
	case FormatTOML:
		var buffer bytes.Buffer
		if err := toml.NewEncoder(&buffer).Encode(fileData); err != nil {
			return nil, fmt.Errorf("marshal route toml: %w", err)
		}
		return buffer.Bytes(), nil
	default:
		return nil, fmt.Errorf("%s: %w", format, ErrUnknownRouteFormat)
	}
}

// SaveRoute atomically writes route to path in the format its extension names.
func SaveRoute(path string, route model.Route) error {
	_, err := writeRoute(path, route)
	return err
}

// LoadRouteOrDefault loads path and falls back to the bundled default route
// when the file is missing or malformed. The load error is still returned so
// the caller can log it; the route is always usable.
func LoadRouteOrDefault(path string) (model.Route, error) {
	route, err := LoadRoute(path)
	if err == nil {
		return route, nil
	}
	fallback, defaultErr := DecodeRoute(resources.DefaultRoute(), FormatYAML)
	if defaultErr != nil {
		return model.Route{}, errors.Join(err, fmt.Errorf("default route: %w", defaultErr))
	}
	return fallback, err
}

func writeRoute(path string, route model.Route) ([]byte, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	serialized, err := EncodeRoute(route, format)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create route directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("create temp route file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(serialized); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("write temp route file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("close temp route file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("rename route file: %w", err)
	}
	return serialized, nil
}

func (fileData routeFile) toRoute() model.Route {
	route := model.Route{
		Name:         fileData.Name,
		GameName:     fileData.GameName,
		Platform:     fileData.Platform,
		AttemptCount: fileData.AttemptCount,
		Splits:       make([]model.Split, len(fileData.Splits)),
	}
	for index, split := range fileData.Splits {
		route.Splits[index] = split.toSplit().Reset()
	}
	if len(fileData.BestRun) > 0 {
		route.BestRun = make([]model.Split, len(fileData.BestRun))
		for index, split := range fileData.BestRun {
			route.BestRun[index] = split.toSplit()
		}
	}
	return route
}

func fromRoute(route model.Route) routeFile {
	fileData := routeFile{
		Name:         route.Name,
		GameName:     route.GameName,
		Platform:     route.Platform,
		AttemptCount: route.AttemptCount,
		Splits:       make([]splitFile, len(route.Splits)),
	}
	for index, split := range route.Splits {
		fileData.Splits[index] = splitFile{
			Name:        split.Name,
			Icon:        split.Icon,
			BestElapsed: seconds(split.BestElapsed),
		}
	}
	for _, split := range route.BestRun {
		fileData.BestRun = append(fileData.BestRun, splitFile{
			Name:         split.Name,
			Icon:         split.Icon,
			BestElapsed:  seconds(split.BestElapsed),
			StartTime:    seconds(split.StartTime),
			EndTime:      seconds(split.EndTime),
			RunStartTime: seconds(split.RunStartTime),
		})
	}
	return fileData
}

func (split splitFile) toSplit() model.Split {
	icon := split.Icon
	if icon == "" {
		icon = split.IconFilename
	}
	best := split.BestElapsed
	if best == nil {
		best = split.BestElapsedTime
	}
	return model.Split{
		Name:         split.Name,
		Icon:         icon,
		BestElapsed:  duration(best),
		StartTime:    duration(split.StartTime),
		EndTime:      duration(split.EndTime),
		RunStartTime: duration(split.RunStartTime),
	}
}

func seconds(value model.NullDuration) *float64 {
	if !value.Valid {
		return nil
	}
	secs := value.Duration.Seconds()
	return &secs
}

func duration(secs *float64) model.NullDuration {
	if secs == nil || math.IsNaN(*secs) || math.IsInf(*secs, 0) {
		return model.NullDuration{}
	}
	return model.Some(time.Duration(math.Round(*secs * float64(time.Second))))
}
