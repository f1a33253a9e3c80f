// Package skylight validates roof skylights against the envelope of their
// roof panel and detects overlap between skylights sharing a panel.
//
// Coordinates are panel-local: x runs across the panel from its centre, y
// runs along the ridge from its midpoint. A panel spans half the building
// width.
package skylight

import (
	"fmt"
	"math"

	"github.com/chazu/bayframe/pkg/building"
	"github.com/chazu/bayframe/pkg/geom"
)

const (
	// EdgeWarningDistance is the distance to the margin envelope below which
	// an in-bounds skylight draws a warning.
	EdgeWarningDistance = 0.5

	// SuggestShrinkRatio is the share of the panel maximum an oversized
	// skylight is shrunk to.
	SuggestShrinkRatio = 0.9

	// SnapOffset is the distance inside the envelope an overflowing skylight
	// is moved to.
	SnapOffset = 0.5
)

// Result is the outcome of validating one skylight.
type Result struct {
	building.Report
	Bounds geom.SkylightBounds `json:"bounds"`
	Rect   geom.Rect           `json:"rect"`
}

// ValidateSkylight checks size and placement of s against its panel.
func ValidateSkylight(s building.Skylight, d building.Dimensions) Result {
	b := geom.SkylightBoundsFor(d, s.Panel)
	r := geom.SkylightRect(s)
	res := Result{Report: building.NewReport(), Bounds: b, Rect: r}

	if s.Width <= 0 {
		res.AddError(fmt.Sprintf("Skylight width must be positive, got %gft", s.Width))
	}
	if s.Length <= 0 {
		res.AddError(fmt.Sprintf("Skylight length must be positive, got %gft", s.Length))
	}
	if s.Width > b.MaxWidth {
		res.AddError(fmt.Sprintf("Skylight width (%gft) exceeds maximum allowed for %s panel (%gft)", s.Width, s.Panel, b.MaxWidth))
	}
	if s.Length > b.MaxLength {
		res.AddError(fmt.Sprintf("Skylight length (%gft) exceeds maximum allowed for %s panel (%gft)", s.Length, s.Panel, b.MaxLength))
	}

	edges := []struct {
		name string
		over float64
	}{
		{"eave-side", b.MinXOffset - r.Left},
		{"ridge-side", r.Right - b.MaxXOffset},
		{"front", b.MinYOffset - r.Bottom},
		{"back", r.Top - b.MaxYOffset},
	}
	for _, e := range edges {
		switch {
		case e.over > 0:
			res.AddError(fmt.Sprintf("Skylight extends %.2fft past the %s margin of the %s panel", e.over, e.name, s.Panel))
		case e.over < 0 && -e.over < EdgeWarningDistance:
			res.AddWarning(fmt.Sprintf("Skylight is only %.2fft inside the %s margin of the %s panel", -e.over, e.name, s.Panel))
		}
	}

	return res
}

// Overlap describes the intersection of two skylights.
type Overlap struct {
	Overlaps    bool    `json:"overlaps"`
	OverlapArea float64 `json:"overlap_area"`
}

// CheckOverlap reports whether a and b intersect. Skylights on different
// panels never overlap.
func CheckOverlap(a, b building.Skylight) Overlap {
	if a.Panel != b.Panel {
		return Overlap{}
	}
	x, y, area := geom.SkylightRect(a).Overlap(geom.SkylightRect(b))
	if x > 0 && y > 0 {
		return Overlap{Overlaps: true, OverlapArea: area}
	}
	return Overlap{}
}

// OverlapPair names two colliding skylights by their index in the input.
type OverlapPair struct {
	First  int     `json:"first"`
	Second int     `json:"second"`
	Area   float64 `json:"area"`
}

// AllResult is the outcome of validating a skylight set.
type AllResult struct {
	building.Report
	SkylightValidations []Result      `json:"skylight_validations"`
	Overlaps            []OverlapPair `json:"overlaps"`
}

// ValidateAll validates each skylight, then scans every pair for overlap.
// Messages number skylights from 1.
func ValidateAll(skylights []building.Skylight, d building.Dimensions) AllResult {
	res := AllResult{
		Report:              building.NewReport(),
		SkylightValidations: make([]Result, 0, len(skylights)),
		Overlaps:            []OverlapPair{},
	}

	for i, s := range skylights {
		r := ValidateSkylight(s, d)
		res.SkylightValidations = append(res.SkylightValidations, r)
		for _, e := range r.Errors {
			res.AddError(fmt.Sprintf("Skylight %d: %s", i+1, e))
		}
		for _, w := range r.Warnings {
			res.AddWarning(fmt.Sprintf("Skylight %d: %s", i+1, w))
		}
	}

	for i := 0; i < len(skylights); i++ {
		for j := i + 1; j < len(skylights); j++ {
			o := CheckOverlap(skylights[i], skylights[j])
			if !o.Overlaps {
				continue
			}
			res.Overlaps = append(res.Overlaps, OverlapPair{First: i, Second: j, Area: o.OverlapArea})
			res.AddError(fmt.Sprintf("Skylight %d overlaps skylight %d on the %s panel (%.2f sq ft)",
				i+1, j+1, skylights[i].Panel, o.OverlapArea))
		}
	}

	return res
}

// MaxDimensions is the largest skylight that fits centred at a point.
type MaxDimensions struct {
	MaxWidth  float64 `json:"max_width"`
	MaxLength float64 `json:"max_length"`
}

// MaxAllowedDimensions returns the largest skylight centred at
// (xOffset, yOffset) on the given panel.
func MaxAllowedDimensions(panel building.Panel, xOffset, yOffset float64, d building.Dimensions) MaxDimensions {
	b := geom.SkylightBoundsFor(d, panel)
	w := math.Min(b.MaxWidth, 2*math.Min(xOffset-b.MinXOffset, b.MaxXOffset-xOffset))
	l := math.Min(b.MaxLength, 2*math.Min(yOffset-b.MinYOffset, b.MaxYOffset-yOffset))
	return MaxDimensions{MaxWidth: math.Max(0, w), MaxLength: math.Max(0, l)}
}
