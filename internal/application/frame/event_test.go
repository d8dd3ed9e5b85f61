package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventKind_String(t *testing.T) {
	tests := []struct {
		kind     EventKind
		expected string
	}{
		{EventKeyDown, "keydown"},
		{EventKeyUp, "keyup"},
		{EventPointerDown, "mousedown"},
		{EventPointerMove, "mousemove"},
		{EventPointerUp, "mouseup"},
		{EventResize, "resize"},
		{EventBlur, "blur"},
		{EventKind(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func TestParseEventKind(t *testing.T) {
	kind, err := ParseEventKind("mousemove")
	require.NoError(t, err)
	assert.Equal(t, EventPointerMove, kind)

	_, err = ParseEventKind("wheel")
	assert.Error(t, err)
}
