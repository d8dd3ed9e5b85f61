package system

import (
	"github.com/younwookim/webgames/internal/domain/input"
)

// PointerState holds the pointer position in CSS pixels (top-left origin)
type PointerState struct {
	X, Y    float64
	Down    bool
	Clicked bool // one-shot: a press happened since the last frame
}

type axisKey struct {
	axis input.Axis
	dir  input.Direction
}

// InputSystem aggregates key transitions into a per-frame intent.
//
// Directions use newest-press-wins per axis; actions use oldest-press-wins.
// State is tracked per logical signal: a direction or action stays held while
// at least one of its physical keys is down.
type InputSystem struct {
	table *input.Table

	// physical keys currently down and the signal each was classified as
	held map[string]input.Signal

	// per axis, held directions, most recent first
	axes [input.AxisCount][]input.Direction
	// physical keys holding each direction
	axisKeys map[axisKey]int

	// held actions in press order
	actions    []input.ActionID
	actionKeys map[input.ActionID]int

	// one-shot fields, cleared by ConsumeOneShots
	rotation  int
	initiated input.ActionID

	pointer PointerState
}

// NewInputSystem creates an input system that classifies keys with table
func NewInputSystem(table *input.Table) *InputSystem {
	return &InputSystem{
		table:      table,
		held:       make(map[string]input.Signal),
		axisKeys:   make(map[axisKey]int),
		actionKeys: make(map[input.ActionID]int),
	}
}

// KeyDown handles a key-down event. Unbound keys and auto-repeats are ignored.
func (s *InputSystem) KeyDown(key string) {
	if _, down := s.held[key]; down {
		return
	}
	sig := s.table.Classify(key)
	if sig.Kind == input.SignalNone {
		return
	}
	s.held[key] = sig

	switch sig.Kind {
	case input.SignalAxis:
		s.pressDirection(sig.Axis, sig.Direction)
	case input.SignalAction:
		s.pressAction(sig.Action)
	case input.SignalRotate:
		s.rotation += int(sig.Direction)
	}
}

// KeyUp handles a key-up event
func (s *InputSystem) KeyUp(key string) {
	sig, down := s.held[key]
	if !down {
		return
	}
	delete(s.held, key)

	switch sig.Kind {
	case input.SignalAxis:
		s.releaseDirection(sig.Axis, sig.Direction)
	case input.SignalAction:
		s.releaseAction(sig.Action)
	}
}

func (s *InputSystem) pressDirection(axis input.Axis, dir input.Direction) {
	s.axisKeys[axisKey{axis, dir}]++

	list := s.axes[axis]
	if len(list) > 0 && list[0] == dir {
		return
	}
	list = removeDirection(list, dir)
	s.axes[axis] = append([]input.Direction{dir}, list...)
}

func (s *InputSystem) releaseDirection(axis input.Axis, dir input.Direction) {
	k := axisKey{axis, dir}
	s.axisKeys[k]--
	if s.axisKeys[k] > 0 {
		return
	}
	delete(s.axisKeys, k)
	s.axes[axis] = removeDirection(s.axes[axis], dir)
}

func (s *InputSystem) pressAction(id input.ActionID) {
	s.actionKeys[id]++
	if s.actionKeys[id] > 1 {
		return
	}
	s.actions = append(s.actions, id)

	if s.initiated.IsZero() {
		s.initiated = id
	}
}

func (s *InputSystem) releaseAction(id input.ActionID) {
	s.actionKeys[id]--
	if s.actionKeys[id] > 0 {
		return
	}
	delete(s.actionKeys, id)
	for i, held := range s.actions {
		if held == id {
			s.actions = append(s.actions[:i], s.actions[i+1:]...)
			break
		}
	}
}

func removeDirection(list []input.Direction, dir input.Direction) []input.Direction {
	out := list[:0]
	for _, d := range list {
		if d != dir {
			out = append(out, d)
		}
	}
	return out
}

// Resolve returns the intent for the current held state. It does not mutate.
func (s *InputSystem) Resolve() Intent {
	if len(s.actions) > 0 {
		return InteractIntent{Action: s.actions[0]}
	}
	return MoveIntent{
		Horizontal: s.axisValue(input.AxisHorizontal),
		Vertical:   s.axisValue(input.AxisVertical),
	}
}

func (s *InputSystem) axisValue(axis input.Axis) int {
	if len(s.axes[axis]) == 0 {
		return 0
	}
	return int(s.axes[axis][0])
}

// RotationDelta returns the rotation accumulated since the last frame
func (s *InputSystem) RotationDelta() int {
	return s.rotation
}

// Initiated returns the action freshly pressed since the last frame, or the zero ActionID
func (s *InputSystem) Initiated() input.ActionID {
	return s.initiated
}

// PointerDown handles a primary button press at (x, y)
func (s *InputSystem) PointerDown(x, y float64) {
	s.pointer.X, s.pointer.Y = x, y
	if !s.pointer.Down {
		s.pointer.Clicked = true
	}
	s.pointer.Down = true
}

// PointerMove handles pointer motion
func (s *InputSystem) PointerMove(x, y float64) {
	s.pointer.X, s.pointer.Y = x, y
}

// PointerUp handles a primary button release at (x, y)
func (s *InputSystem) PointerUp(x, y float64) {
	s.pointer.X, s.pointer.Y = x, y
	s.pointer.Down = false
}

// Pointer returns the current pointer state
func (s *InputSystem) Pointer() PointerState {
	return s.pointer
}

// HeldKeys returns the number of bound physical keys currently down
func (s *InputSystem) HeldKeys() int {
	return len(s.held)
}

// ConsumeOneShots clears the edge-triggered fields after a frame was forwarded
func (s *InputSystem) ConsumeOneShots() {
	s.rotation = 0
	s.initiated = input.ActionID{}
	s.pointer.Clicked = false
}

// Reset releases every held key, e.g. when the window loses focus.
// One-shot fields are left for the next frame to consume.
func (s *InputSystem) Reset() {
	s.held = make(map[string]input.Signal)
	s.axisKeys = make(map[axisKey]int)
	s.actionKeys = make(map[input.ActionID]int)
	for i := range s.axes {
		s.axes[i] = nil
	}
	s.actions = nil
	s.pointer.Down = false
}
