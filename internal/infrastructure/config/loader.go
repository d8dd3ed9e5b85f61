package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	settingsFile = "webgames.yaml"
	tunablesFile = "tunables.yaml"
)

// Loader loads configuration from YAML files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadSettings loads webgames.yaml over the defaults and validates it
func (l *Loader) LoadSettings() (*Settings, error) {
	data, err := fs.ReadFile(l.fsys, settingsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", settingsFile, err)
	}

	cfg := DefaultSettings()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", settingsFile, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", settingsFile, err)
	}

	return cfg, nil
}

// LoadTunables loads tunables.yaml. A missing file yields an empty registry.
func (l *Loader) LoadTunables() (*Tunables, error) {
	data, err := fs.ReadFile(l.fsys, tunablesFile)
	if errors.Is(err, fs.ErrNotExist) {
		return NewTunables(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", tunablesFile, err)
	}

	t, err := ParseTunables(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tunablesFile, err)
	}
	return t, nil
}

// LoadAll loads all configurations (settings, tunables)
func (l *Loader) LoadAll() (*GameConfig, error) {
	settings, err := l.LoadSettings()
	if err != nil {
		return nil, err
	}

	tunables, err := l.LoadTunables()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Settings: settings,
		Tunables: tunables,
	}, nil
}

// FS returns the filesystem configs and assets are read from
func (l *Loader) FS() fs.FS {
	return l.fsys
}

// BasePath returns the path the loader was created with
func (l *Loader) BasePath() string {
	return l.basePath
}
