package canvas

import (
	"bytes"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// Renderer replays display lists onto ebiten images
type Renderer struct {
	sprites *Sprites
	font    *text.GoTextFaceSource
	faces   map[float64]*text.GoTextFace
}

// NewRenderer creates a renderer drawing sprites from the given set
func NewRenderer(sprites *Sprites) (*Renderer, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	return &Renderer{
		sprites: sprites,
		font:    src,
		faces:   make(map[float64]*text.GoTextFace),
	}, nil
}

// Render draws ops onto dst in order
func (r *Renderer) Render(dst *ebiten.Image, ops []Op) {
	for _, op := range ops {
		switch op.Kind {
		case OpClear:
			dst.Fill(op.Color)
		case OpRect:
			vector.DrawFilledRect(dst,
				float32(op.X-op.W/2), float32(op.Y-op.H/2),
				float32(op.W), float32(op.H),
				op.Color, false)
		case OpSprite:
			r.drawSprite(dst, op)
		case OpText:
			r.drawText(dst, op)
		}
	}
}

func (r *Renderer) drawSprite(dst *ebiten.Image, op Op) {
	img := r.sprites.Get(op.Sprite)
	if img == nil {
		return
	}

	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	if w == 0 || h == 0 {
		return
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(-w/2, -h/2)
	opts.GeoM.Scale(op.W/w, op.H/h)
	opts.GeoM.Rotate(float64(op.Turns) * math.Pi / 2)
	opts.GeoM.Translate(op.X, op.Y)
	opts.Filter = ebiten.FilterLinear
	dst.DrawImage(img, opts)
}

func (r *Renderer) drawText(dst *ebiten.Image, op Op) {
	if op.Size <= 0 || op.Text == "" {
		return
	}

	opts := &text.DrawOptions{}
	opts.GeoM.Translate(op.X, op.Y)
	opts.ColorScale.ScaleWithColor(op.Color)
	opts.LineSpacing = op.Size * 1.2
	text.Draw(dst, op.Text, r.face(op.Size), opts)
}

func (r *Renderer) face(size float64) *text.GoTextFace {
	if f, ok := r.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: r.font, Size: size}
	r.faces[size] = f
	return f
}
