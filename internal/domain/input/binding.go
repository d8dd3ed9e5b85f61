package input

import (
	"fmt"
	"sort"
)

// Table maps physical key identifiers (KeyboardEvent.code spelling, e.g.
// "ArrowLeft", "KeyW", "Digit1") to logical signals.
//
// Several physical keys may map to the same signal; the aggregator tracks
// logical state, so aliases are safe. A Table is immutable once built.
type Table struct {
	bindings map[string]Signal
}

// NewTable creates a table from the given bindings. The map is copied.
func NewTable(bindings map[string]Signal) *Table {
	t := &Table{bindings: make(map[string]Signal, len(bindings))}
	for key, sig := range bindings {
		if sig.Kind == SignalNone {
			continue
		}
		t.bindings[key] = sig
	}
	return t
}

// Classify returns the signal bound to key, or a SignalNone signal.
func (t *Table) Classify(key string) Signal {
	if t == nil {
		return Signal{}
	}
	return t.bindings[key]
}

// Len returns the number of bound keys
func (t *Table) Len() int {
	return len(t.bindings)
}

// Keys returns the bound key identifiers in sorted order
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.bindings))
	for k := range t.bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseBindings builds a table from text bindings such as
// {"ArrowLeft": "axis:horizontal:-1", "Digit3": "action:PlayCard(2)"}.
func ParseBindings(raw map[string]string) (*Table, error) {
	bindings := make(map[string]Signal, len(raw))
	for key, text := range raw {
		sig, err := ParseSignal(text)
		if err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
		bindings[key] = sig
	}
	return NewTable(bindings), nil
}

// DefaultBindings returns the stock key layout: arrows and WASD for movement,
// Q/E for left/right interactions, digits for cards, Space to activate a
// mechanism and R/F to rotate.
func DefaultBindings() map[string]Signal {
	b := map[string]Signal{
		"ArrowLeft":  AxisSignal(AxisHorizontal, Negative),
		"ArrowRight": AxisSignal(AxisHorizontal, Positive),
		"ArrowUp":    AxisSignal(AxisVertical, Positive),
		"ArrowDown":  AxisSignal(AxisVertical, Negative),
		"KeyA":       AxisSignal(AxisHorizontal, Negative),
		"KeyD":       AxisSignal(AxisHorizontal, Positive),
		"KeyW":       AxisSignal(AxisVertical, Positive),
		"KeyS":       AxisSignal(AxisVertical, Negative),
		"KeyQ":       ActionSignal(InteractLeft),
		"KeyE":       ActionSignal(InteractRight),
		"Space":      ActionSignal(ActivateMechanism),
		"KeyR":       RotateSignal(Positive),
		"KeyF":       RotateSignal(Negative),
	}
	for i := uint8(0); i < 9; i++ {
		b[fmt.Sprintf("Digit%d", i+1)] = ActionSignal(PlayCard(i))
	}
	return b
}

// DefaultTable returns a table built from DefaultBindings
func DefaultTable() *Table {
	return NewTable(DefaultBindings())
}
