package frame

import "fmt"

// EventKind identifies an inbound platform event
type EventKind int

const (
	EventKeyDown EventKind = iota
	EventKeyUp
	EventPointerDown
	EventPointerMove
	EventPointerUp
	EventResize
	EventBlur
)

var eventNames = map[EventKind]string{
	EventKeyDown:     "keydown",
	EventKeyUp:       "keyup",
	EventPointerDown: "mousedown",
	EventPointerMove: "mousemove",
	EventPointerUp:   "mouseup",
	EventResize:      "resize",
	EventBlur:        "blur",
}

// String returns the DOM event name for the kind
func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseEventKind parses a DOM event name
func ParseEventKind(name string) (EventKind, error) {
	for kind, n := range eventNames {
		if n == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown event type %q", name)
}

// Event is a raw input event. Only the fields relevant to Kind are set.
type Event struct {
	Kind EventKind

	// Code is the physical key identifier for key events.
	Code string

	// X, Y is the pointer position in CSS pixels, top-left origin.
	X, Y float64

	// Width, Height is the viewport size in CSS pixels for resize events.
	Width, Height int
	// DPR is the device pixel ratio reported with a resize; 0 keeps the current one.
	DPR float64
}

// KeyDown builds a key-down event
func KeyDown(code string) Event {
	return Event{Kind: EventKeyDown, Code: code}
}

// KeyUp builds a key-up event
func KeyUp(code string) Event {
	return Event{Kind: EventKeyUp, Code: code}
}

// Resize builds a resize event
func Resize(width, height int, dpr float64) Event {
	return Event{Kind: EventResize, Width: width, Height: height, DPR: dpr}
}
