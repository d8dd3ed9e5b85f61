// Package canvas implements the drawing primitives exposed to engines.
//
// Engines draw into a DisplayList during Step; a Renderer replays the list
// onto an ebiten image when the host draws.
package canvas

import "image/color"

// OpKind identifies a recorded drawing operation
type OpKind int

const (
	OpClear OpKind = iota
	OpRect
	OpSprite
	OpText
)

// Op is one recorded drawing call. Rect and sprite positions are stored as
// given; W and H are the final extents after the rect rotation convention.
type Op struct {
	Kind   OpKind
	X, Y   float64
	W, H   float64
	Color  color.Color
	Sprite string
	Turns  int
	Size   float64
	Text   string
}

// DisplayList records drawing calls for one frame
type DisplayList struct {
	background color.Color
	rectColor  color.Color
	rectTurns  int
	ops        []Op
}

// NewDisplayList creates an empty display list. rectQuarterTurns is the
// variant's rotation convention for rectangles: an odd count swaps the
// width and height an engine passes to DrawRect.
func NewDisplayList(background, rectColor color.Color, rectQuarterTurns int) *DisplayList {
	if background == nil {
		background = color.Black
	}
	if rectColor == nil {
		rectColor = color.White
	}
	return &DisplayList{
		background: background,
		rectColor:  rectColor,
		rectTurns:  rectQuarterTurns,
	}
}

// Reset drops every recorded op
func (l *DisplayList) Reset() {
	l.ops = l.ops[:0]
}

// Clear discards earlier ops and fills the frame with the background colour
func (l *DisplayList) Clear() {
	l.ops = append(l.ops[:0], Op{Kind: OpClear, Color: l.background})
}

// DrawRect records a rectangle centred on (cx, cy)
func (l *DisplayList) DrawRect(cx, cy, sx, sy float64, c color.Color) {
	if c == nil {
		c = l.rectColor
	}
	if l.rectTurns%2 != 0 {
		sx, sy = sy, sx
	}
	l.ops = append(l.ops, Op{Kind: OpRect, X: cx, Y: cy, W: sx, H: sy, Color: c})
}

// DrawSprite records a sprite centred on (cx, cy)
func (l *DisplayList) DrawSprite(id string, cx, cy, sx, sy float64, quarterTurns int) {
	l.ops = append(l.ops, Op{Kind: OpSprite, X: cx, Y: cy, W: sx, H: sy, Sprite: id, Turns: normalizeTurns(quarterTurns)})
}

// DrawText records a text run with its top-left corner at (x, y)
func (l *DisplayList) DrawText(x, y, size float64, c color.Color, s string) {
	if c == nil {
		c = l.rectColor
	}
	l.ops = append(l.ops, Op{Kind: OpText, X: x, Y: y, Size: size, Color: c, Text: s})
}

// Ops returns the recorded ops. The slice is reused by the next frame.
func (l *DisplayList) Ops() []Op {
	return l.ops
}

// Len returns the number of recorded ops
func (l *DisplayList) Len() int {
	return len(l.ops)
}

// Background returns the clear colour
func (l *DisplayList) Background() color.Color {
	return l.background
}

func normalizeTurns(turns int) int {
	turns %= 4
	if turns < 0 {
		turns += 4
	}
	return turns
}
