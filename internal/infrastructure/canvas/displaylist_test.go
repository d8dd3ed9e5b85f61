package canvas

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testBG   = color.RGBA{26, 26, 46, 255}
	testRect = color.RGBA{200, 200, 200, 255}
)

func TestDisplayList_Clear(t *testing.T) {
	l := NewDisplayList(testBG, testRect, 0)
	l.DrawRect(1, 1, 2, 2, nil)
	l.Clear()

	require.Equal(t, 1, l.Len())
	assert.Equal(t, Op{Kind: OpClear, Color: testBG}, l.Ops()[0])
}

func TestDisplayList_DrawRect(t *testing.T) {
	tests := []struct {
		name  string
		turns int
		w, h  float64
	}{
		{"no rotation", 0, 10, 4},
		{"quarter turn swaps extents", 1, 4, 10},
		{"half turn keeps extents", 2, 10, 4},
		{"negative quarter turn", -1, 4, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewDisplayList(testBG, testRect, tt.turns)
			l.DrawRect(50, 60, 10, 4, nil)

			require.Equal(t, 1, l.Len())
			op := l.Ops()[0]
			assert.Equal(t, OpRect, op.Kind)
			assert.Equal(t, 50.0, op.X)
			assert.Equal(t, 60.0, op.Y)
			assert.Equal(t, tt.w, op.W)
			assert.Equal(t, tt.h, op.H)
			assert.Equal(t, testRect, op.Color, "nil colour uses the default")
		})
	}
}

func TestDisplayList_DrawSprite(t *testing.T) {
	l := NewDisplayList(nil, nil, 0)
	l.DrawSprite("conveyor", 5, 6, 32, 32, -1)
	l.DrawSprite("conveyor", 5, 6, 32, 32, 6)

	require.Equal(t, 2, l.Len())
	assert.Equal(t, 3, l.Ops()[0].Turns)
	assert.Equal(t, 2, l.Ops()[1].Turns)
	assert.Equal(t, "conveyor", l.Ops()[0].Sprite)
}

func TestDisplayList_DrawText(t *testing.T) {
	l := NewDisplayList(nil, testRect, 0)
	l.DrawText(1, 2, 18, color.White, "score 3")

	op := l.Ops()[0]
	assert.Equal(t, OpText, op.Kind)
	assert.Equal(t, 18.0, op.Size)
	assert.Equal(t, "score 3", op.Text)
	assert.Equal(t, color.White, op.Color)
}

func TestDisplayList_Reset(t *testing.T) {
	l := NewDisplayList(nil, nil, 0)
	l.Clear()
	l.DrawRect(0, 0, 1, 1, nil)
	l.Reset()

	assert.Equal(t, 0, l.Len())
	assert.Equal(t, color.Black, l.Background())
}
