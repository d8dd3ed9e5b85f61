// Package engine defines the boundary between the frame driver and an
// externally supplied game engine.
//
// The driver owns input, geometry and scheduling. Once per frame it hands the
// engine a FrameInput by value; the engine draws through the Host it was given
// at Init time.
package engine

import (
	"context"
	"image/color"
	"time"

	"github.com/younwookim/webgames/internal/application/system"
	"github.com/younwookim/webgames/internal/domain/input"
)

// FrameInput is everything an engine sees for one frame.
type FrameInput struct {
	// Frame counts ticks since the driver started, starting at 0.
	Frame uint64
	// Timestamp is the time since the first tick.
	Timestamp time.Duration
	// Delta is the time since the previous tick, capped by the driver.
	Delta time.Duration

	Intent   system.Intent
	Geometry system.Geometry
	// Resized is true on the first frame after the geometry was recomputed.
	Resized bool

	// One-shot fields. They are zero on every frame that follows the one
	// they were delivered in.
	RotationDelta int
	Initiated     input.ActionID

	// Pointer position is in CSS pixels with a bottom-left origin.
	Pointer system.PointerState
}

// Canvas is the set of drawing primitives an engine may call from Step.
// Coordinates are backing-store pixels.
type Canvas interface {
	// Clear fills the whole backing store with the background colour.
	Clear()
	// DrawRect draws an axis-aligned rectangle centred on (cx, cy).
	// A nil colour uses the canvas default.
	DrawRect(cx, cy, sx, sy float64, c color.Color)
	// DrawSprite draws a loaded sprite centred on (cx, cy), turned by
	// quarterTurns from +x towards +y.
	DrawSprite(id string, cx, cy, sx, sy float64, quarterTurns int)
	// DrawText draws s with its top-left corner at (x, y).
	DrawText(x, y, size float64, c color.Color, s string)
}

// Host is what the driver exposes to the engine.
type Host interface {
	Canvas
	// Panicked permanently stops future Step calls.
	Panicked()
}

// Engine is an externally supplied simulation.
type Engine interface {
	// Initialize loads the engine. It is the only call the bootstrap waits on.
	Initialize(ctx context.Context) error
	// Init performs synchronous post-load setup.
	Init(host Host)
	// Step advances the simulation by one frame and draws it.
	Step(in FrameInput) error
}

// Constants supplies named tunable values, registering def on first use.
type Constants interface {
	Get(name string, def float64) float64
}
