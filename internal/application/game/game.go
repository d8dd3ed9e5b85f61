// Package game hosts a frame driver inside an ebiten window.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/webgames/internal/application/frame"
	"github.com/younwookim/webgames/internal/infrastructure/canvas"
)

// Game implements ebiten.Game. Update is the per-refresh tick: it turns
// ebiten's polled input into driver events and then runs the frame.
type Game struct {
	driver   *frame.Driver
	list     *canvas.DisplayList
	renderer *canvas.Renderer
	platform Platform

	keys    []ebiten.Key
	cssW    int
	cssH    int
	focused bool

	// last cursor position sent, in device pixels
	cursorX  int
	cursorY  int
	cursorOK bool
}

// New creates a Game. A nil platform polls ebiten directly.
func New(driver *frame.Driver, list *canvas.DisplayList, renderer *canvas.Renderer, platform Platform) *Game {
	if platform == nil {
		platform = ebitenPlatform{}
	}
	return &Game{
		driver:   driver,
		list:     list,
		renderer: renderer,
		platform: platform,
		focused:  true,
	}
}

// Update feeds input into the driver and runs one frame.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	g.pollFocus()
	g.pollKeys()
	g.pollPointer()

	// a halted engine keeps showing its last frame
	if g.driver.State().Steps() {
		g.list.Reset()
	}
	g.driver.Tick(g.platform.Now())
	return nil
}

func (g *Game) pollFocus() {
	focused := g.platform.Focused()
	if g.focused && !focused {
		g.driver.Apply(frame.Event{Kind: frame.EventBlur})
	}
	g.focused = focused
}

func (g *Game) pollKeys() {
	g.keys = g.platform.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		g.driver.Apply(frame.KeyUp(KeyCode(k)))
	}

	g.keys = g.platform.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		g.driver.Apply(frame.KeyDown(KeyCode(k)))
	}
}

func (g *Game) pollPointer() {
	px, py := g.platform.CursorPosition()
	dpr := g.driver.Geometry().Current().DevicePixelRatio
	x, y := float64(px)/dpr, float64(py)/dpr

	moved := !g.cursorOK || px != g.cursorX || py != g.cursorY
	g.cursorX, g.cursorY, g.cursorOK = px, py, true

	switch {
	case g.platform.MouseJustPressed():
		g.driver.Apply(frame.Event{Kind: frame.EventPointerDown, X: x, Y: y})
	case g.platform.MouseJustReleased():
		g.driver.Apply(frame.Event{Kind: frame.EventPointerUp, X: x, Y: y})
	case moved:
		g.driver.Apply(frame.Event{Kind: frame.EventPointerMove, X: x, Y: y})
	}
}

// Draw replays the frame's display list.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.renderer == nil {
		return
	}
	g.renderer.Render(screen, g.list.Ops())
}

// Layout reports viewport changes to the driver and returns the backing
// store size the engine last drew for. A resize is published by the next
// tick, so the screen follows one frame later.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.cssW || outsideHeight != g.cssH {
		g.cssW, g.cssH = outsideWidth, outsideHeight
		g.driver.Apply(frame.Resize(outsideWidth, outsideHeight, 0))
	}

	physical := g.driver.Geometry().Current().Physical
	if physical.W <= 0 || physical.H <= 0 {
		return outsideWidth, outsideHeight
	}
	return physical.W, physical.H
}

// Run starts the ebiten loop. It blocks until the window closes.
func (g *Game) Run(title string, width, height int, resizable bool) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	if resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(ebiten.SyncWithFPS)
	return ebiten.RunGame(g)
}
