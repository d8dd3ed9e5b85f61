package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Platform is the polled input surface of the window
type Platform interface {
	AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key
	AppendJustReleasedKeys(keys []ebiten.Key) []ebiten.Key
	CursorPosition() (int, int)
	MouseJustPressed() bool
	MouseJustReleased() bool
	DeviceScaleFactor() float64
	Focused() bool
	Now() time.Time
}

type ebitenPlatform struct{}

func (ebitenPlatform) AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustPressedKeys(keys)
}

func (ebitenPlatform) AppendJustReleasedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustReleasedKeys(keys)
}

func (ebitenPlatform) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

func (ebitenPlatform) MouseJustPressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

func (ebitenPlatform) MouseJustReleased() bool {
	return inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}

func (ebitenPlatform) DeviceScaleFactor() float64 {
	if m := ebiten.Monitor(); m != nil {
		return m.DeviceScaleFactor()
	}
	return 1
}

func (ebitenPlatform) Focused() bool {
	return ebiten.IsFocused()
}

func (ebitenPlatform) Now() time.Time {
	return time.Now()
}

// DevicePixelRatio polls the current monitor's scale factor
func DevicePixelRatio() float64 {
	return ebitenPlatform{}.DeviceScaleFactor()
}
