package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/younwookim/webgames/internal/application/frame"
)

// Replayer feeds recorded events back into a driver tick by tick
type Replayer struct {
	data  ReplayData
	tick  uint64
	index int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return DecodeReplay(file)
}

// DecodeReplay reads replay data from r
func DecodeReplay(r io.Reader) (*ReplayData, error) {
	var data ReplayData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	return &data, nil
}

// Next returns the events for the current tick and advances. ok is false
// once every recorded tick has been returned.
func (r *Replayer) Next() (events []frame.Event, ok bool, err error) {
	if r.tick >= r.data.Ticks {
		return nil, false, nil
	}

	for r.index < len(r.data.Frames) && r.data.Frames[r.index].F <= r.tick {
		fe := r.data.Frames[r.index]
		r.index++
		if fe.F < r.tick {
			continue
		}
		for _, rec := range fe.E {
			ev, err := rec.Event()
			if err != nil {
				return nil, false, fmt.Errorf("tick %d: %w", r.tick, err)
			}
			events = append(events, ev)
		}
	}
	r.tick++
	return events, true, nil
}

// Play runs every recorded tick against d, spacing ticks by interval
// starting at start. It returns the number of ticks run.
func (r *Replayer) Play(d *frame.Driver, start time.Time, interval time.Duration) (uint64, error) {
	now := start
	var ticks uint64
	for {
		events, ok, err := r.Next()
		if err != nil {
			return ticks, err
		}
		if !ok {
			return ticks, nil
		}
		for _, ev := range events {
			d.Apply(ev)
		}
		d.Tick(now)
		now = now.Add(interval)
		ticks++
	}
}

// CurrentFrame returns the next tick to be replayed
func (r *Replayer) CurrentFrame() uint64 {
	return r.tick
}

// TotalFrames returns the total number of recorded ticks
func (r *Replayer) TotalFrames() uint64 {
	return r.data.Ticks
}

// Variant returns the variant the session was recorded with
func (r *Replayer) Variant() string {
	return r.data.Variant
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.tick = 0
	r.index = 0
}

// CreateTestReplayData creates replay data holding one key press and release
func CreateTestReplayData(ticks uint64, code string, downAt, upAt uint64) ReplayData {
	return ReplayData{
		Version:   Version,
		Variant:   "test",
		StartTime: time.Now().Format(time.RFC3339),
		Ticks:     ticks,
		Frames: []FrameEvents{
			{F: downAt, E: []EventRecord{FromEvent(frame.KeyDown(code))}},
			{F: upAt, E: []EventRecord{FromEvent(frame.KeyUp(code))}},
		},
	}
}
