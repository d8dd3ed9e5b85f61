package factory

import (
	"context"
	"errors"
	"image/color"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/webgames/internal/application/engine"
	"github.com/younwookim/webgames/internal/application/system"
	"github.com/younwookim/webgames/internal/domain/input"
	"github.com/younwookim/webgames/internal/infrastructure/config"
)

type recordingHost struct {
	sprites  []string
	rects    int
	panicked bool
}

func (h *recordingHost) Clear() {}
func (h *recordingHost) DrawRect(cx, cy, sx, sy float64, c color.Color) {
	h.rects++
}
func (h *recordingHost) DrawSprite(id string, cx, cy, sx, sy float64, turns int) {
	h.sprites = append(h.sprites, id)
}
func (h *recordingHost) DrawText(x, y, size float64, c color.Color, s string) {}
func (h *recordingHost) Panicked() { h.panicked = true }

// 120x80 CSS pixels over a 12x8 grid gives 10px cells at the origin
var testGeometry = system.Geometry{
	CSS:              system.Size{W: 120, H: 80},
	Physical:         system.Size{W: 120, H: 80},
	DevicePixelRatio: 1,
}

func createTestEngine(t *testing.T, cfg Config) (*Engine, *recordingHost) {
	t.Helper()
	if cfg.Constants == nil {
		cfg.Constants = config.NewTunables(nil)
	}
	cfg.Logger = log.New(io.Discard)
	e := New(cfg)
	require.NoError(t, e.Initialize(context.Background()))
	host := &recordingHost{}
	e.Init(host)
	return e, host
}

// pointerAt returns a pointer over the given cell in bottom-left CSS coordinates
func pointerAt(col, row int, clicked bool) system.PointerState {
	return system.PointerState{
		X:       float64(col)*10 + 5,
		Y:       80 - (float64(row)*10 + 5),
		Clicked: clicked,
		Down:    clicked,
	}
}

func stepEngine(t *testing.T, e *Engine, in engine.FrameInput) error {
	t.Helper()
	in.Geometry = testGeometry
	if in.Intent == nil {
		in.Intent = system.MoveIntent{}
	}
	return e.Step(in)
}

func TestEngine_Initialize(t *testing.T) {
	t.Run("grid size from constants", func(t *testing.T) {
		e, _ := createTestEngine(t, Config{Constants: config.NewTunables(map[string]float64{
			"grid_width":  4,
			"grid_height": 3,
		})})

		w, h := e.Size()
		assert.Equal(t, 4, w)
		assert.Equal(t, 3, h)
	})

	t.Run("loader error is wrapped", func(t *testing.T) {
		errLoad := errors.New("boom")
		e := New(Config{Logger: log.New(io.Discard), Load: func(context.Context) error { return errLoad }})

		assert.ErrorIs(t, e.Initialize(context.Background()), errLoad)
	})

	t.Run("invalid grid", func(t *testing.T) {
		e := New(Config{
			Constants: config.NewTunables(map[string]float64{"grid_width": 0}),
			Logger:    log.New(io.Discard),
		})

		assert.Error(t, e.Initialize(context.Background()))
	})
}

func TestEngine_Placement(t *testing.T) {
	t.Run("click places the selected machine", func(t *testing.T) {
		e, _ := createTestEngine(t, Config{})

		require.NoError(t, stepEngine(t, e, engine.FrameInput{Pointer: pointerAt(1, 0, true)}))

		m, ok := e.At(1, 0)
		require.True(t, ok)
		assert.Equal(t, Machine{Kind: KindConveyor}, m)
	})

	t.Run("click on an occupied cell keeps the machine", func(t *testing.T) {
		e, _ := createTestEngine(t, Config{})

		require.NoError(t, stepEngine(t, e, engine.FrameInput{Pointer: pointerAt(2, 3, true)}))
		require.NoError(t, stepEngine(t, e, engine.FrameInput{
			Initiated: input.PlayCard(3),
			Pointer:   pointerAt(2, 3, true),
		}))

		m, _ := e.At(2, 3)
		assert.Equal(t, KindConveyor, m.Kind)
	})

	t.Run("selection and rotation", func(t *testing.T) {
		e, _ := createTestEngine(t, Config{})

		require.NoError(t, stepEngine(t, e, engine.FrameInput{Initiated: input.PlayCard(2), RotationDelta: 1}))
		kind, facing := e.Selected()
		assert.Equal(t, KindSource, kind)
		assert.Equal(t, 1, facing)

		require.NoError(t, stepEngine(t, e, engine.FrameInput{RotationDelta: -2, Pointer: pointerAt(0, 0, true)}))
		m, _ := e.At(0, 0)
		assert.Equal(t, Machine{Kind: KindSource, Facing: 3}, m)
	})

	t.Run("card beyond palette is ignored", func(t *testing.T) {
		e, _ := createTestEngine(t, Config{})

		require.NoError(t, stepEngine(t, e, engine.FrameInput{Initiated: input.PlayCard(9)}))
		kind, _ := e.Selected()
		assert.Equal(t, KindConveyor, kind)
	})

	t.Run("interact right removes", func(t *testing.T) {
		e, _ := createTestEngine(t, Config{})

		require.NoError(t, stepEngine(t, e, engine.FrameInput{Pointer: pointerAt(5, 5, true)}))
		require.NoError(t, stepEngine(t, e, engine.FrameInput{Initiated: input.InteractRight, Pointer: pointerAt(5, 5, false)}))

		m, _ := e.At(5, 5)
		assert.Equal(t, KindEmpty, m.Kind)
	})

	t.Run("click outside the grid", func(t *testing.T) {
		e, _ := createTestEngine(t, Config{})

		require.NoError(t, stepEngine(t, e, engine.FrameInput{Pointer: system.PointerState{X: -5, Y: 10, Clicked: true}}))

		for _, m := range e.cells {
			assert.Equal(t, KindEmpty, m.Kind)
		}
	})
}

func TestEngine_Production(t *testing.T) {
	t.Run("source feeds sink through conveyor", func(t *testing.T) {
		e, _ := createTestEngine(t, Config{})
		e.cells[0] = Machine{Kind: KindSource}
		e.cells[1] = Machine{Kind: KindConveyor}
		e.cells[2] = Machine{Kind: KindSink}

		require.NoError(t, stepEngine(t, e, engine.FrameInput{Delta: 500 * time.Millisecond}))

		assert.Equal(t, 1, e.Produced())
		assert.Equal(t, 1, e.Delivered())
	})

	t.Run("item falls off an open chain", func(t *testing.T) {
		e, _ := createTestEngine(t, Config{})
		e.cells[0] = Machine{Kind: KindSource}
		e.cells[1] = Machine{Kind: KindConveyor, Facing: 3}

		require.NoError(t, stepEngine(t, e, engine.FrameInput{Delta: time.Second}))

		assert.Equal(t, 2, e.Produced())
		assert.Zero(t, e.Delivered())
	})

	t.Run("conveyor loop terminates", func(t *testing.T) {
		e, _ := createTestEngine(t, Config{})
		w, _ := e.Size()
		e.cells[0] = Machine{Kind: KindSource}
		e.cells[1] = Machine{Kind: KindConveyor, Facing: 1}
		e.cells[w+1] = Machine{Kind: KindConveyor, Facing: 2}
		e.cells[w] = Machine{Kind: KindConveyor, Facing: 0}

		require.NoError(t, stepEngine(t, e, engine.FrameInput{Delta: 500 * time.Millisecond}))

		assert.Equal(t, 1, e.Produced())
		assert.Zero(t, e.Delivered())
	})
}

func TestEngine_Draw(t *testing.T) {
	t.Run("sprites when loaded", func(t *testing.T) {
		e, host := createTestEngine(t, Config{HasSprite: func(id string) bool { return id == "sink" }})
		e.cells[0] = Machine{Kind: KindSink}
		e.cells[1] = Machine{Kind: KindConveyor}

		require.NoError(t, stepEngine(t, e, engine.FrameInput{}))

		assert.Equal(t, []string{"sink"}, host.sprites)
		// every cell, the conveyor fallback and the cursor
		assert.Equal(t, 12*8+2, host.rects)
	})
}

func TestEngine_PanicReported(t *testing.T) {
	e, host := createTestEngine(t, Config{})
	e.cells[0] = Machine{Kind: Kind(99)}

	err := stepEngine(t, e, engine.FrameInput{})

	assert.Error(t, err)
	assert.True(t, host.panicked)
}

func TestEngine_StepBeforeInit(t *testing.T) {
	e := New(Config{Logger: log.New(io.Discard)})
	require.NoError(t, e.Initialize(context.Background()))

	assert.Error(t, e.Step(engine.FrameInput{}))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "empty", KindEmpty.String())
	assert.Equal(t, "splitter", KindSplitter.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}
