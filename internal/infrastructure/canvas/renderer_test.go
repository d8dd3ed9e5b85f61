package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer(t *testing.T) {
	r, err := NewRenderer(NewSprites())
	require.NoError(t, err)
	require.NotNil(t, r)

	assert.Same(t, r.face(16), r.face(16), "faces are cached per size")
}

func TestRenderer_SkipsUnavailable(t *testing.T) {
	r, err := NewRenderer(nil)
	require.NoError(t, err)

	ops := []Op{
		{Kind: OpSprite, Sprite: "missing", W: 10, H: 10},
		{Kind: OpText, Size: 12},
		{Kind: OpText, Text: "zero size"},
	}
	assert.NotPanics(t, func() { r.Render(nil, ops) })
}
