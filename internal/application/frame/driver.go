// Package frame drives the per-frame loop: it applies raw input events,
// refreshes canvas geometry and forwards one FrameInput per tick to the engine.
package frame

import (
	"image/color"
	"time"

	"github.com/charmbracelet/log"

	"github.com/younwookim/webgames/internal/application/engine"
	"github.com/younwookim/webgames/internal/application/state"
	"github.com/younwookim/webgames/internal/application/system"
	"github.com/younwookim/webgames/internal/domain/input"
)

// Recorder receives every applied event and a marker at the end of each frame
type Recorder interface {
	RecordEvent(ev Event)
	EndFrame()
}

// Options configures a Driver
type Options struct {
	Engine   engine.Engine
	Canvas   engine.Canvas
	Input    *system.InputSystem
	Geometry *system.GeometrySystem
	// DevicePixelRatio is queried on every tick. When nil the ratio last
	// reported by a resize event is used.
	DevicePixelRatio func() float64
	Clock            *Clock
	Recorder         Recorder
	Logger           *log.Logger
}

// Driver owns the page-lifetime input and geometry state and forwards a
// FrameInput to the engine once per tick.
type Driver struct {
	engine   engine.Engine
	canvas   engine.Canvas
	input    *system.InputSystem
	geometry *system.GeometrySystem
	dpr      func() float64
	clock    *Clock
	recorder Recorder
	logger   *log.Logger

	state       state.DriverState
	frame       uint64
	reportedDPR float64
	last        engine.FrameInput
	steps       uint64
}

// NewDriver creates a driver in the Booting state
func NewDriver(opts Options) *Driver {
	d := &Driver{
		engine:   opts.Engine,
		canvas:   opts.Canvas,
		input:    opts.Input,
		geometry: opts.Geometry,
		dpr:      opts.DevicePixelRatio,
		clock:    opts.Clock,
		recorder: opts.Recorder,
		logger:   opts.Logger,
		state:    state.StateBooting,
	}
	if d.canvas == nil {
		d.canvas = discardCanvas{}
	}
	if d.clock == nil {
		d.clock = NewClock(DefaultMaxDelta)
	}
	if d.logger == nil {
		d.logger = log.Default()
	}
	if d.input == nil {
		d.input = system.NewInputSystem(input.DefaultTable())
	}
	if d.geometry == nil {
		d.geometry = system.NewGeometrySystem(0, 0, 1.0)
	}
	d.reportedDPR = d.geometry.Current().DevicePixelRatio
	return d
}

// Apply mutates input or geometry state from a raw event. Events are applied
// in arrival order between ticks.
func (d *Driver) Apply(ev Event) {
	if d.recorder != nil {
		d.recorder.RecordEvent(ev)
	}

	switch ev.Kind {
	case EventKeyDown:
		d.input.KeyDown(ev.Code)
	case EventKeyUp:
		d.input.KeyUp(ev.Code)
	case EventPointerDown:
		d.input.PointerDown(ev.X, ev.Y)
	case EventPointerMove:
		d.input.PointerMove(ev.X, ev.Y)
	case EventPointerUp:
		d.input.PointerUp(ev.X, ev.Y)
	case EventResize:
		if ev.DPR > 0 {
			d.reportedDPR = ev.DPR
		}
		d.geometry.Resize(ev.Width, ev.Height)
	case EventBlur:
		d.input.Reset()
	}
}

// Tick runs one frame. One-shot input fields are cleared when it returns,
// whether the engine step succeeded, failed, panicked or was skipped.
func (d *Driver) Tick(now time.Time) {
	defer d.endFrame()

	resized := d.geometry.Refresh(d.devicePixelRatio())
	timestamp, delta := d.clock.Advance(now)
	geo := *d.geometry.Current()

	pointer := d.input.Pointer()
	pointer.Y = float64(geo.CSS.H) - pointer.Y

	in := engine.FrameInput{
		Frame:         d.frame,
		Timestamp:     timestamp,
		Delta:         delta,
		Intent:        d.input.Resolve(),
		Geometry:      geo,
		Resized:       resized,
		RotationDelta: d.input.RotationDelta(),
		Initiated:     d.input.Initiated(),
		Pointer:       pointer,
	}
	d.last = in

	if !d.state.Steps() {
		return
	}
	d.step(in)
}

func (d *Driver) step(in engine.FrameInput) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("engine step panicked", "frame", in.Frame, "panic", r)
		}
	}()

	d.steps++
	if err := d.engine.Step(in); err != nil {
		d.logger.Error("engine step failed", "frame", in.Frame, "err", err)
	}
}

func (d *Driver) endFrame() {
	d.input.ConsumeOneShots()
	if d.recorder != nil {
		d.recorder.EndFrame()
	}
	d.frame++
}

func (d *Driver) devicePixelRatio() float64 {
	if d.dpr != nil {
		return d.dpr()
	}
	return d.reportedDPR
}

// Start moves a booting driver to Running
func (d *Driver) Start() {
	if d.state == state.StateBooting {
		d.state = state.StateRunning
		d.logger.Info("frame driver running")
	}
}

// Cancel marks a driver that never started as Cancelled
func (d *Driver) Cancel() {
	if d.state == state.StateBooting {
		d.state = state.StateCancelled
	}
}

// Panicked is called by the engine on a fatal internal error. Every later
// tick skips the engine step; input and geometry keep being processed.
func (d *Driver) Panicked() {
	if d.state.Terminal() {
		return
	}
	d.state = state.StatePanicked
	d.logger.Error("engine reported a fatal error, simulation halted", "frame", d.frame)
}

// Host returns the engine-facing view of this driver
func (d *Driver) Host() engine.Host {
	return host{Canvas: d.canvas, driver: d}
}

// State returns the lifecycle state
func (d *Driver) State() state.DriverState {
	return d.state
}

// Input returns the intent aggregator
func (d *Driver) Input() *system.InputSystem {
	return d.input
}

// Geometry returns the canvas geometry manager
func (d *Driver) Geometry() *system.GeometrySystem {
	return d.geometry
}

// Logger returns the driver's logger
func (d *Driver) Logger() *log.Logger {
	return d.logger
}

// Frame returns the number of completed ticks
func (d *Driver) Frame() uint64 {
	return d.frame
}

// Steps returns how many times the engine step was invoked
func (d *Driver) Steps() uint64 {
	return d.steps
}

// LastInput returns the FrameInput built by the most recent tick
func (d *Driver) LastInput() engine.FrameInput {
	return d.last
}

type host struct {
	engine.Canvas
	driver *Driver
}

func (h host) Panicked() {
	h.driver.Panicked()
}

type discardCanvas struct{}

func (discardCanvas) Clear() {}
func (discardCanvas) DrawRect(cx, cy, sx, sy float64, c color.Color) {}
func (discardCanvas) DrawSprite(id string, cx, cy, sx, sy float64, turns int) {}
func (discardCanvas) DrawText(x, y, size float64, c color.Color, s string) {}
