package system

import "math"

// Size is a width/height pair in pixels
type Size struct {
	W, H int
}

// Geometry is a published canvas sizing snapshot. Treat it as immutable:
// every recompute publishes a new value.
type Geometry struct {
	CSS              Size    // on-page display size in layout units
	Physical         Size    // backing-store size in device pixels
	DevicePixelRatio float64 // ratio used to derive Physical from CSS
}

// GeometrySystem keeps the canvas backing store in step with the viewport
// size and device pixel ratio. It recomputes lazily: only after Resize or
// when Refresh sees a different ratio.
type GeometrySystem struct {
	current *Geometry
	pending Size
	stale   bool
}

// NewGeometrySystem creates a geometry system already fresh for the given
// viewport and ratio
func NewGeometrySystem(width, height int, dpr float64) *GeometrySystem {
	g := &GeometrySystem{pending: Size{W: width, H: height}, stale: true}
	g.Refresh(dpr)
	return g
}

// Resize records a new viewport size. The snapshot is recomputed on the next Refresh.
func (g *GeometrySystem) Resize(width, height int) {
	g.pending = Size{W: width, H: height}
	g.stale = true
}

// Stale reports whether a resize is waiting for Refresh
func (g *GeometrySystem) Stale() bool {
	return g.stale
}

// Refresh recomputes the snapshot if a resize is pending or dpr changed.
// It returns true when a new snapshot was published.
func (g *GeometrySystem) Refresh(dpr float64) bool {
	dpr = normalizeRatio(dpr)
	if !g.stale && g.current != nil && g.current.DevicePixelRatio == dpr {
		return false
	}

	css := g.pending
	next := &Geometry{
		CSS: css,
		Physical: Size{
			W: int(math.Round(float64(css.W) * dpr)),
			H: int(math.Round(float64(css.H) * dpr)),
		},
		DevicePixelRatio: dpr,
	}
	// both sizes are swapped in with one assignment
	g.current = next
	g.stale = false
	return true
}

// Current returns the cached snapshot
func (g *GeometrySystem) Current() *Geometry {
	return g.current
}

// ToPhysical converts a CSS-pixel coordinate to backing-store pixels
func (geo Geometry) ToPhysical(x, y float64) (float64, float64) {
	return x * geo.DevicePixelRatio, y * geo.DevicePixelRatio
}

func normalizeRatio(dpr float64) float64 {
	if dpr <= 0 || math.IsNaN(dpr) || math.IsInf(dpr, 0) {
		return 1.0
	}
	return dpr
}
