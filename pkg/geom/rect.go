package geom

import "math"

// Rect is an axis-aligned rectangle.
type Rect struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Top    float64 `json:"top"`
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Top - r.Bottom }

// Area returns Width*Height.
func (r Rect) Area() float64 { return r.Width() * r.Height() }

// Overlap returns the overlap along each axis and the overlapping area.
// Each axis overlap is clamped at zero.
func (r Rect) Overlap(o Rect) (xOverlap, yOverlap, area float64) {
	xOverlap = math.Max(0, math.Min(r.Right, o.Right)-math.Max(r.Left, o.Left))
	yOverlap = math.Max(0, math.Min(r.Top, o.Top)-math.Max(r.Bottom, o.Bottom))
	return xOverlap, yOverlap, xOverlap * yOverlap
}

// Intersects reports whether the rectangles share a positive area. Touching
// edges do not count.
func (r Rect) Intersects(o Rect) bool {
	x, y, _ := r.Overlap(o)
	return x > 0 && y > 0
}

// IntervalOverlap returns the length shared by [a0,a1) and [b0,b1).
func IntervalOverlap(a0, a1, b0, b1 float64) float64 {
	return math.Max(0, math.Min(a1, b1)-math.Max(a0, b0))
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
