// Package factory is a grid building engine: machines are placed with the
// pointer, turned with the rotation keys and chained from sources to sinks.
package factory

import (
	"context"
	"fmt"
	"image/color"
	"math"

	"github.com/charmbracelet/log"

	"github.com/younwookim/webgames/internal/application/engine"
	"github.com/younwookim/webgames/internal/application/system"
	"github.com/younwookim/webgames/internal/domain/input"
)

var (
	colorCell     = color.RGBA{40, 40, 48, 255}
	colorCursor   = color.NRGBA{255, 255, 255, 60}
	colorFallback = color.RGBA{120, 160, 200, 255}
	colorText     = color.RGBA{230, 230, 230, 255}
)

// Config configures an Engine
type Config struct {
	Constants engine.Constants
	Logger    *log.Logger
	// Load runs during Initialize, typically loading sprites
	Load func(ctx context.Context) error
	// HasSprite reports whether a sprite id is loaded. Machines without a
	// sprite are drawn as rects.
	HasSprite func(id string) bool
}

// Engine implements engine.Engine
type Engine struct {
	cfg    Config
	logger *log.Logger
	host   engine.Host

	width, height int
	cells         []Machine
	selected      Kind
	facing        int

	produced  int
	delivered int
	elapsed   float64
	cursor    [2]int
}

// New creates a factory engine
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{cfg: cfg, logger: logger.WithPrefix("factory"), selected: KindConveyor}
}

// Initialize sizes the grid and runs the configured loader
func (e *Engine) Initialize(ctx context.Context) error {
	e.width = int(e.constant("grid_width", 12))
	e.height = int(e.constant("grid_height", 8))
	if e.width <= 0 || e.height <= 0 {
		return fmt.Errorf("factory: invalid grid %dx%d", e.width, e.height)
	}
	e.cells = make([]Machine, e.width*e.height)

	if e.cfg.Load != nil {
		if err := e.cfg.Load(ctx); err != nil {
			return fmt.Errorf("factory: load: %w", err)
		}
	}
	return ctx.Err()
}

// Init stores the host
func (e *Engine) Init(host engine.Host) {
	e.host = host
}

// Step applies input, advances production and draws. An internal panic is
// reported to the host, which stops further steps.
func (e *Engine) Step(in engine.FrameInput) (err error) {
	if e.host == nil {
		return fmt.Errorf("factory: step before init")
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("internal error", "frame", in.Frame, "panic", r)
			e.host.Panicked()
			err = fmt.Errorf("factory: %v", r)
		}
	}()

	e.applyInput(in)

	period := e.constant("production_period", 0.5)
	e.elapsed += in.Delta.Seconds()
	for period > 0 && e.elapsed >= period {
		e.elapsed -= period
		e.produce()
	}

	e.draw(in.Geometry)
	return nil
}

func (e *Engine) applyInput(in engine.FrameInput) {
	if in.Initiated.Kind == input.ActionPlayCard && int(in.Initiated.Card) < len(Palette) {
		e.selected = Palette[in.Initiated.Card]
	}
	if in.RotationDelta != 0 {
		e.facing = turn(e.facing, in.RotationDelta)
	}

	col, row, ok := e.cellAt(in.Geometry, in.Pointer)
	if ok {
		e.cursor = [2]int{col, row}
	}
	if !ok {
		return
	}

	switch {
	case in.Initiated == input.InteractRight:
		e.cells[row*e.width+col] = Machine{}
	case in.Pointer.Clicked:
		if e.cells[row*e.width+col].Kind == KindEmpty {
			e.cells[row*e.width+col] = Machine{Kind: e.selected, Facing: e.facing}
		}
	}
}

// produce emits one item per source and follows it along the chain
func (e *Engine) produce() {
	for i, m := range e.cells {
		if m.Kind != KindSource {
			continue
		}
		e.produced++
		if e.follow(i%e.width, i/e.width, m.Facing) {
			e.delivered++
		}
	}
}

func (e *Engine) follow(col, row, facing int) bool {
	for n := 0; n < len(e.cells); n++ {
		dx, dy := step(facing)
		col, row = col+dx, row+dy
		m, ok := e.At(col, row)
		if !ok {
			return false
		}
		switch m.Kind {
		case KindSink:
			return true
		case KindConveyor:
			facing = m.Facing
		case KindSplitter:
			// alternate outputs on odd production counts
			facing = m.Facing
			if e.produced%2 == 1 {
				facing = turn(m.Facing, 1)
			}
		default:
			return false
		}
	}
	return false
}

// layout returns the cell size and grid origin in CSS pixels, top-left origin
func (e *Engine) layout(geo system.Geometry) (cell, ox, oy float64) {
	cell = math.Min(float64(geo.CSS.W)/float64(e.width), float64(geo.CSS.H)/float64(e.height))
	ox = (float64(geo.CSS.W) - cell*float64(e.width)) / 2
	oy = (float64(geo.CSS.H) - cell*float64(e.height)) / 2
	return cell, ox, oy
}

func (e *Engine) cellAt(geo system.Geometry, p system.PointerState) (col, row int, ok bool) {
	cell, ox, oy := e.layout(geo)
	if cell <= 0 {
		return 0, 0, false
	}
	y := float64(geo.CSS.H) - p.Y
	col = int(math.Floor((p.X - ox) / cell))
	row = int(math.Floor((y - oy) / cell))
	if col < 0 || row < 0 || col >= e.width || row >= e.height {
		return 0, 0, false
	}
	return col, row, true
}

func (e *Engine) draw(geo system.Geometry) {
	e.host.Clear()

	dpr := geo.DevicePixelRatio
	cell, ox, oy := e.layout(geo)
	centre := func(col, row int) (float64, float64) {
		return (ox + (float64(col)+0.5)*cell) * dpr, (oy + (float64(row)+0.5)*cell) * dpr
	}
	size := cell * dpr

	for i, m := range e.cells {
		cx, cy := centre(i%e.width, i/e.width)
		e.host.DrawRect(cx, cy, size*0.94, size*0.94, colorCell)
		if m.Kind == KindEmpty {
			continue
		}
		id := m.Kind.Sprite()
		if e.cfg.HasSprite != nil && e.cfg.HasSprite(id) {
			e.host.DrawSprite(id, cx, cy, size*0.8, size*0.8, m.Facing)
		} else {
			e.host.DrawRect(cx, cy, size*0.8, size*0.4, colorFallback)
		}
	}

	cx, cy := centre(e.cursor[0], e.cursor[1])
	e.host.DrawRect(cx, cy, size, size, colorCursor)

	hud := fmt.Sprintf("%s facing %d  produced %d  delivered %d", e.selected, e.facing, e.produced, e.delivered)
	e.host.DrawText(8*dpr, 8*dpr, 14*dpr, colorText, hud)
}

func (e *Engine) constant(name string, def float64) float64 {
	if e.cfg.Constants == nil {
		return def
	}
	return e.cfg.Constants.Get(name, def)
}

// At returns the machine at a cell
func (e *Engine) At(col, row int) (Machine, bool) {
	if col < 0 || row < 0 || col >= e.width || row >= e.height {
		return Machine{}, false
	}
	return e.cells[row*e.width+col], true
}

// Selected returns the machine kind and facing that a click places
func (e *Engine) Selected() (Kind, int) {
	return e.selected, e.facing
}

// Produced returns the number of items emitted by sources
func (e *Engine) Produced() int {
	return e.produced
}

// Delivered returns the number of items that reached a sink
func (e *Engine) Delivered() int {
	return e.delivered
}

// Size returns the grid dimensions
func (e *Engine) Size() (int, int) {
	return e.width, e.height
}
