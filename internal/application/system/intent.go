package system

import (
	"fmt"

	"github.com/younwookim/webgames/internal/domain/input"
)

// Intent is the semantic input command for one frame
type Intent interface {
	isIntent()
}

// MoveIntent is produced when no action is held. Each component is -1, 0 or +1.
type MoveIntent struct {
	Horizontal int
	Vertical   int
}

func (MoveIntent) isIntent() {}

// String returns a compact description
func (m MoveIntent) String() string {
	return fmt.Sprintf("Move(%d, %d)", m.Horizontal, m.Vertical)
}

// InteractIntent is produced while at least one action key is held
type InteractIntent struct {
	Action input.ActionID
}

func (InteractIntent) isIntent() {}

// String returns a compact description
func (i InteractIntent) String() string {
	return fmt.Sprintf("Interact(%s)", i.Action)
}
