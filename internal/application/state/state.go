package state

// DriverState represents the lifecycle of a frame driver
type DriverState int

const (
	StateBooting DriverState = iota
	StateRunning
	StatePanicked
	StateCancelled
)

// String returns the string representation of the driver state
func (s DriverState) String() string {
	switch s {
	case StateBooting:
		return "Booting"
	case StateRunning:
		return "Running"
	case StatePanicked:
		return "Panicked"
	case StateCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Steps reports whether the engine step runs in this state
func (s DriverState) Steps() bool {
	return s == StateRunning
}

// Terminal reports whether no further transition is allowed
func (s DriverState) Terminal() bool {
	return s == StatePanicked || s == StateCancelled
}
