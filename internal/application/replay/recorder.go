package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/younwookim/webgames/internal/application/frame"
)

// Recorder captures the events a driver applies, grouped by tick. It
// satisfies frame.Recorder.
type Recorder struct {
	data      ReplayData
	pending   []EventRecord
	recording bool
}

// NewRecorder creates a recorder for the named variant
func NewRecorder(variant string) *Recorder {
	return &Recorder{
		data: ReplayData{
			Version:   Version,
			Variant:   variant,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]FrameEvents, 0, 256),
		},
		recording: true,
	}
}

// RecordEvent buffers an event for the current tick
func (r *Recorder) RecordEvent(ev frame.Event) {
	if !r.recording {
		return
	}
	r.pending = append(r.pending, FromEvent(ev))
}

// EndFrame closes the current tick
func (r *Recorder) EndFrame() {
	if !r.recording {
		return
	}
	if len(r.pending) > 0 {
		r.data.Frames = append(r.data.Frames, FrameEvents{F: r.data.Ticks, E: r.pending})
		r.pending = nil
	}
	r.data.Ticks++
}

// Encode writes the recording as indented JSON
func (r *Recorder) Encode(w io.Writer) error {
	if r.data.Ticks == 0 {
		return ErrNoFrames
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}
	return nil
}

// Save writes the recording to a file
func (r *Recorder) Save(filename string) error {
	if r.data.Ticks == 0 {
		return ErrNoFrames
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return r.Encode(file)
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// TickCount returns the number of closed ticks
func (r *Recorder) TickCount() uint64 {
	return r.data.Ticks
}

// GetData returns the replay data
func (r *Recorder) GetData() ReplayData {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
