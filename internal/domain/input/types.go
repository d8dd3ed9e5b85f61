// Package input defines the logical input signals a physical key can map to.
package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidBinding is returned when a binding or action cannot be parsed.
var ErrInvalidBinding = errors.New("invalid binding")

// Axis is a movement dimension
type Axis int

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

// AxisCount is the number of movement axes
const AxisCount = 2

// String returns the string representation of the axis
func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Direction is a sign along an axis: -1 or +1
type Direction int

const (
	Negative Direction = -1
	Positive Direction = 1
)

// ActionKind identifies the variant of an ActionID
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionInteractLeft
	ActionInteractRight
	ActionPlayCard
	ActionActivateMechanism
)

// ActionID is a discrete interaction. Card is only meaningful for ActionPlayCard.
// The zero value means "no action".
type ActionID struct {
	Kind ActionKind
	Card uint8
}

var (
	InteractLeft      = ActionID{Kind: ActionInteractLeft}
	InteractRight     = ActionID{Kind: ActionInteractRight}
	ActivateMechanism = ActionID{Kind: ActionActivateMechanism}
)

// PlayCard returns the action that plays the card at the given hand index.
func PlayCard(index uint8) ActionID {
	return ActionID{Kind: ActionPlayCard, Card: index}
}

// IsZero reports whether a is the "no action" value.
func (a ActionID) IsZero() bool {
	return a.Kind == ActionNone
}

// String returns the text form used by config files and recordings.
func (a ActionID) String() string {
	switch a.Kind {
	case ActionNone:
		return "None"
	case ActionInteractLeft:
		return "InteractLeft"
	case ActionInteractRight:
		return "InteractRight"
	case ActionPlayCard:
		return fmt.Sprintf("PlayCard(%d)", a.Card)
	case ActionActivateMechanism:
		return "ActivateMechanism"
	default:
		return "Unknown"
	}
}

// ParseActionID parses the text form produced by ActionID.String.
func ParseActionID(s string) (ActionID, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "InteractLeft":
		return InteractLeft, nil
	case "InteractRight":
		return InteractRight, nil
	case "ActivateMechanism":
		return ActivateMechanism, nil
	}

	if strings.HasPrefix(s, "PlayCard(") && strings.HasSuffix(s, ")") {
		raw := strings.TrimSuffix(strings.TrimPrefix(s, "PlayCard("), ")")
		n, err := strconv.ParseUint(raw, 10, 8)
		if err != nil {
			return ActionID{}, fmt.Errorf("%w: card index %q: %v", ErrInvalidBinding, raw, err)
		}
		return PlayCard(uint8(n)), nil
	}

	return ActionID{}, fmt.Errorf("%w: unknown action %q", ErrInvalidBinding, s)
}

// MarshalText implements encoding.TextMarshaler
func (a ActionID) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *ActionID) UnmarshalText(text []byte) error {
	if string(text) == "None" || len(text) == 0 {
		*a = ActionID{}
		return nil
	}
	parsed, err := ParseActionID(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// SignalKind tells which field of a Signal is meaningful
type SignalKind uint8

const (
	SignalNone SignalKind = iota
	SignalAxis
	SignalAction
	SignalRotate
)

// Signal is the logical meaning of a physical key.
type Signal struct {
	Kind      SignalKind
	Axis      Axis
	Direction Direction // axis sign, or rotation sign for SignalRotate
	Action    ActionID
}

// AxisSignal builds a movement signal.
func AxisSignal(axis Axis, dir Direction) Signal {
	return Signal{Kind: SignalAxis, Axis: axis, Direction: dir}
}

// ActionSignal builds an interaction signal.
func ActionSignal(id ActionID) Signal {
	return Signal{Kind: SignalAction, Action: id}
}

// RotateSignal builds a rotation signal; each press adds dir to the frame's rotation delta.
func RotateSignal(dir Direction) Signal {
	return Signal{Kind: SignalRotate, Direction: dir}
}

// String returns the binding text form of the signal
func (s Signal) String() string {
	switch s.Kind {
	case SignalAxis:
		return fmt.Sprintf("axis:%s:%+d", s.Axis, s.Direction)
	case SignalAction:
		return "action:" + s.Action.String()
	case SignalRotate:
		return fmt.Sprintf("rotate:%+d", s.Direction)
	default:
		return "none"
	}
}

// ParseSignal parses "axis:horizontal:-1", "action:PlayCard(2)" or "rotate:+1".
func ParseSignal(s string) (Signal, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	switch parts[0] {
	case "axis":
		if len(parts) != 3 {
			return Signal{}, fmt.Errorf("%w: %q wants axis:<horizontal|vertical>:<-1|+1>", ErrInvalidBinding, s)
		}
		var axis Axis
		switch parts[1] {
		case "horizontal":
			axis = AxisHorizontal
		case "vertical":
			axis = AxisVertical
		default:
			return Signal{}, fmt.Errorf("%w: unknown axis %q", ErrInvalidBinding, parts[1])
		}
		dir, err := parseDirection(parts[2])
		if err != nil {
			return Signal{}, err
		}
		return AxisSignal(axis, dir), nil
	case "action":
		if len(parts) != 2 {
			return Signal{}, fmt.Errorf("%w: %q wants action:<ActionID>", ErrInvalidBinding, s)
		}
		id, err := ParseActionID(parts[1])
		if err != nil {
			return Signal{}, err
		}
		return ActionSignal(id), nil
	case "rotate":
		if len(parts) != 2 {
			return Signal{}, fmt.Errorf("%w: %q wants rotate:<-1|+1>", ErrInvalidBinding, s)
		}
		dir, err := parseDirection(parts[1])
		if err != nil {
			return Signal{}, err
		}
		return RotateSignal(dir), nil
	default:
		return Signal{}, fmt.Errorf("%w: unknown signal %q", ErrInvalidBinding, s)
	}
}

func parseDirection(s string) (Direction, error) {
	switch s {
	case "-1":
		return Negative, nil
	case "+1", "1":
		return Positive, nil
	default:
		return 0, fmt.Errorf("%w: direction %q must be -1 or +1", ErrInvalidBinding, s)
	}
}
