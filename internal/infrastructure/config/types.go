package config

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/younwookim/webgames/internal/domain/input"
)

// ErrUnknownVariant is returned when a variant name is not configured
var ErrUnknownVariant = errors.New("unknown variant")

// Settings is the root config for webgames.yaml
type Settings struct {
	Display  DisplayConfig            `yaml:"display"`
	Loop     LoopConfig               `yaml:"loop"`
	Log      LogConfig                `yaml:"log"`
	Storage  StorageConfig            `yaml:"storage"`
	Remote   RemoteConfig             `yaml:"remote"`
	Variants map[string]VariantConfig `yaml:"variants"`
}

// DisplayConfig sizes the initial window or viewport in CSS pixels
type DisplayConfig struct {
	Width     int  `yaml:"width"`
	Height    int  `yaml:"height"`
	Resizable bool `yaml:"resizable"`
}

// LoopConfig tunes frame scheduling
type LoopConfig struct {
	TPS      int     `yaml:"tps"`       // headless loop rate
	MaxDelta float64 `yaml:"max_delta"` // per-frame delta cap in seconds
}

// LogConfig configures the logger and optional rotating log file
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// StorageConfig locates the recordings database
type StorageConfig struct {
	Path string `yaml:"path"`
}

// RemoteConfig configures the DOM event bridge
type RemoteConfig struct {
	Addr      string `yaml:"addr"`
	Path      string `yaml:"path"`
	ReadLimit int64  `yaml:"read_limit"`
}

// VariantConfig describes one game variant
type VariantConfig struct {
	Title            string            `yaml:"title"`
	Engine           string            `yaml:"engine"`
	Background       string            `yaml:"background"`
	RectColor        string            `yaml:"rect_color"`
	RectQuarterTurns int               `yaml:"rect_quarter_turns"`
	Bindings         map[string]string `yaml:"bindings"`
	Sprites          map[string]string `yaml:"sprites"`
}

// GameConfig holds all loaded configurations
type GameConfig struct {
	Settings *Settings
	Tunables *Tunables
}

// MaxDeltaDuration returns the delta cap; zero means use the driver default
func (l LoopConfig) MaxDeltaDuration() time.Duration {
	return time.Duration(l.MaxDelta * float64(time.Second))
}

// Interval returns the headless tick interval
func (l LoopConfig) Interval() time.Duration {
	if l.TPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(l.TPS)
}

// Table builds the key classification table; no bindings means the defaults
func (v VariantConfig) Table() (*input.Table, error) {
	if len(v.Bindings) == 0 {
		return input.DefaultTable(), nil
	}
	return input.ParseBindings(v.Bindings)
}

// Variant returns the named variant
func (s *Settings) Variant(name string) (VariantConfig, error) {
	v, ok := s.Variants[name]
	if !ok {
		return VariantConfig{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return v, nil
}

// VariantNames returns the configured variant names in sorted order
func (s *Settings) VariantNames() []string {
	names := make([]string, 0, len(s.Variants))
	for name := range s.Variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate reports the first invalid setting
func (s *Settings) Validate() error {
	if s.Display.Width <= 0 || s.Display.Height <= 0 {
		return fmt.Errorf("display size must be positive, got %dx%d", s.Display.Width, s.Display.Height)
	}
	if s.Loop.TPS < 0 {
		return fmt.Errorf("loop tps must not be negative, got %d", s.Loop.TPS)
	}
	if s.Loop.MaxDelta < 0 {
		return fmt.Errorf("loop max_delta must not be negative, got %g", s.Loop.MaxDelta)
	}

	for _, name := range s.VariantNames() {
		v := s.Variants[name]
		if v.Engine == "" {
			return fmt.Errorf("variant %s: engine is required", name)
		}
		if _, err := v.Table(); err != nil {
			return fmt.Errorf("variant %s: %w", name, err)
		}
	}
	return nil
}
