package config

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Tunables is a registry of named engine constants. Reading a name that was
// never set registers the caller's default, so Snapshot lists every constant
// an engine has asked for.
type Tunables struct {
	values map[string]float64
}

// NewTunables creates a registry seeded with values
func NewTunables(values map[string]float64) *Tunables {
	t := &Tunables{values: make(map[string]float64, len(values))}
	for name, v := range values {
		t.values[name] = v
	}
	return t
}

// ParseTunables decodes a flat name: value YAML document
func ParseTunables(data []byte) (*Tunables, error) {
	values := make(map[string]float64)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse tunables: %w", err)
	}
	return NewTunables(values), nil
}

// Get returns the named value, registering def if the name is new
func (t *Tunables) Get(name string, def float64) float64 {
	if v, ok := t.values[name]; ok {
		return v
	}
	t.values[name] = def
	return def
}

// Set overrides a value
func (t *Tunables) Set(name string, v float64) {
	t.values[name] = v
}

// Names returns every registered name in sorted order
func (t *Tunables) Names() []string {
	names := make([]string, 0, len(t.values))
	for name := range t.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns a copy of every registered value
func (t *Tunables) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(t.values))
	for name, v := range t.values {
		out[name] = v
	}
	return out
}

// Marshal encodes the registry in the same format ParseTunables reads
func (t *Tunables) Marshal() ([]byte, error) {
	return yaml.Marshal(t.values)
}
