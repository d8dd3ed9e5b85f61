package remote

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strings"

	"github.com/younwookim/webgames/internal/application/frame"
	"github.com/younwookim/webgames/internal/infrastructure/canvas"
)

// InboundMessage is a DOM event forwarded by the browser page.
// Example: {"type":"keydown","code":"ArrowLeft"}
type InboundMessage struct {
	Type   string  `json:"type"`
	Code   string  `json:"code,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	DPR    float64 `json:"dpr,omitempty"`
}

// DecodeMessage converts a text frame into a driver event
func DecodeMessage(payload []byte) (frame.Event, error) {
	var m InboundMessage
	if err := json.Unmarshal(payload, &m); err != nil {
		return frame.Event{}, fmt.Errorf("invalid message: %w", err)
	}

	kind, err := frame.ParseEventKind(strings.ToLower(m.Type))
	if err != nil {
		return frame.Event{}, err
	}

	ev := frame.Event{Kind: kind}
	switch kind {
	case frame.EventKeyDown, frame.EventKeyUp:
		if m.Code == "" {
			return frame.Event{}, fmt.Errorf("%s without code", m.Type)
		}
		ev.Code = m.Code
	case frame.EventPointerDown, frame.EventPointerMove, frame.EventPointerUp:
		ev.X, ev.Y = m.X, m.Y
	case frame.EventResize:
		if m.Width < 0 || m.Height < 0 {
			return frame.Event{}, fmt.Errorf("negative resize %dx%d", m.Width, m.Height)
		}
		ev.Width, ev.Height, ev.DPR = m.Width, m.Height, m.DPR
	}
	return ev, nil
}

// FrameMessage is sent to every connected page after a tick
type FrameMessage struct {
	Type  string      `json:"type"`
	Frame uint64      `json:"frame"`
	Ops   []OpMessage `json:"ops"`
}

// OpMessage is one display-list op in wire form
type OpMessage struct {
	K string  `json:"k"`           // clear, rect, sprite, text
	X float64 `json:"x,omitempty"` // Centre X, or left edge for text
	Y float64 `json:"y,omitempty"` // Centre Y, or top edge for text
	W float64 `json:"w,omitempty"` // Width
	H float64 `json:"h,omitempty"` // Height
	C string  `json:"c,omitempty"` // Colour as #rrggbbaa
	S string  `json:"s,omitempty"` // Sprite id
	R int     `json:"r,omitempty"` // Quarter turns
	Z float64 `json:"z,omitempty"` // Text size
	T string  `json:"t,omitempty"` // Text
}

var opNames = map[canvas.OpKind]string{
	canvas.OpClear:  "clear",
	canvas.OpRect:   "rect",
	canvas.OpSprite: "sprite",
	canvas.OpText:   "text",
}

// EncodeFrame serialises a display list for the page
func EncodeFrame(frameNo uint64, ops []canvas.Op) ([]byte, error) {
	msg := FrameMessage{Type: "frame", Frame: frameNo, Ops: make([]OpMessage, 0, len(ops))}
	for _, op := range ops {
		msg.Ops = append(msg.Ops, OpMessage{
			K: opNames[op.Kind],
			X: op.X,
			Y: op.Y,
			W: op.W,
			H: op.H,
			C: hexColor(op.Color),
			S: op.Sprite,
			R: op.Turns,
			Z: op.Size,
			T: op.Text,
		})
	}
	return json.Marshal(msg)
}

func hexColor(c color.Color) string {
	if c == nil {
		return ""
	}
	rgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", rgba.R, rgba.G, rgba.B, rgba.A)
}
