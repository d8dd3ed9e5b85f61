package replay

import (
	"errors"
	"fmt"

	"github.com/younwookim/webgames/internal/application/frame"
)

// Version is the recording format version
const Version = "2.0"

// ErrNoFrames is returned when saving a recording that never ticked
var ErrNoFrames = errors.New("replay: no frames recorded")

// EventRecord is one recorded input event
type EventRecord struct {
	T string  `json:"t"`           // DOM event type
	C string  `json:"c,omitempty"` // Key code
	X float64 `json:"x,omitempty"` // Pointer X
	Y float64 `json:"y,omitempty"` // Pointer Y
	W int     `json:"w,omitempty"` // Resize width
	H int     `json:"h,omitempty"` // Resize height
	D float64 `json:"d,omitempty"` // Device pixel ratio
}

// FrameEvents holds the events applied before tick F
type FrameEvents struct {
	F uint64        `json:"f"`
	E []EventRecord `json:"e"`
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version   string        `json:"version"`
	Variant   string        `json:"variant"`
	StartTime string        `json:"startTime"`
	Ticks     uint64        `json:"ticks"`
	Frames    []FrameEvents `json:"frames"`
}

// FromEvent converts a driver event into its recorded form
func FromEvent(ev frame.Event) EventRecord {
	return EventRecord{
		T: ev.Kind.String(),
		C: ev.Code,
		X: ev.X,
		Y: ev.Y,
		W: ev.Width,
		H: ev.Height,
		D: ev.DPR,
	}
}

// Event converts the record back into a driver event
func (r EventRecord) Event() (frame.Event, error) {
	kind, err := frame.ParseEventKind(r.T)
	if err != nil {
		return frame.Event{}, fmt.Errorf("replay: %w", err)
	}
	return frame.Event{
		Kind:   kind,
		Code:   r.C,
		X:      r.X,
		Y:      r.Y,
		Width:  r.W,
		Height: r.H,
		DPR:    r.D,
	}, nil
}
