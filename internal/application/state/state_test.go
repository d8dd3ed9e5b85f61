package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDriverState_String(t *testing.T) {
	tests := []struct {
		state    DriverState
		expected string
	}{
		{StateBooting, "Booting"},
		{StateRunning, "Running"},
		{StatePanicked, "Panicked"},
		{StateCancelled, "Cancelled"},
		{DriverState(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestDriverStateConstants(t *testing.T) {
	// Verify the iota ordering
	assert.Equal(t, DriverState(0), StateBooting)
	assert.Equal(t, DriverState(1), StateRunning)
	assert.Equal(t, DriverState(2), StatePanicked)
	assert.Equal(t, DriverState(3), StateCancelled)
}

func TestDriverState_Steps(t *testing.T) {
	assert.False(t, StateBooting.Steps())
	assert.True(t, StateRunning.Steps())
	assert.False(t, StatePanicked.Steps())
	assert.False(t, StateCancelled.Steps())
}

func TestDriverState_Terminal(t *testing.T) {
	assert.False(t, StateBooting.Terminal())
	assert.False(t, StateRunning.Terminal())
	assert.True(t, StatePanicked.Terminal())
	assert.True(t, StateCancelled.Terminal())
}
