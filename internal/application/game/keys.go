package game

import "github.com/hajimehoshi/ebiten/v2"

// KeyCode returns the DOM KeyboardEvent.code spelling of an ebiten key.
// ebiten names letters "A".."Z"; every other key already uses the DOM name.
func KeyCode(k ebiten.Key) string {
	name := k.String()
	if len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z' {
		return "Key" + name
	}
	return name
}
