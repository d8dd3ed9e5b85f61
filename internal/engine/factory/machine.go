package factory

import "fmt"

// Kind identifies a machine type. The zero value is an empty cell.
type Kind int

const (
	KindEmpty Kind = iota
	KindConveyor
	KindSplitter
	KindSource
	KindSink
)

var kindSprites = []string{"", "conveyor", "splitter", "source", "sink"}

// Palette is the order machines are offered in; PlayCard(n) selects Palette[n].
var Palette = []Kind{KindConveyor, KindSplitter, KindSource, KindSink}

// Sprite returns the sprite id for the kind. It panics on an unknown kind.
func (k Kind) Sprite() string {
	return kindSprites[k]
}

// String returns the kind name
func (k Kind) String() string {
	if k == KindEmpty {
		return "empty"
	}
	if k < 0 || int(k) >= len(kindSprites) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindSprites[k]
}

// Machine occupies one grid cell
type Machine struct {
	Kind   Kind
	Facing int // quarter turns from +x towards +y
}

// step returns the grid offset a machine facing f pushes items towards
func step(facing int) (dx, dy int) {
	switch facing & 3 {
	case 0:
		return 1, 0
	case 1:
		return 0, 1
	case 2:
		return -1, 0
	default:
		return 0, -1
	}
}

func turn(facing, delta int) int {
	return ((facing+delta)%4 + 4) % 4
}
