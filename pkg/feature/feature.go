// Package feature validates wall openings (doors and windows) against the
// bounds of their parent wall, and computes the space available to them.
package feature

import (
	"fmt"
	"math"

	"github.com/chazu/bayframe/pkg/building"
	"github.com/chazu/bayframe/pkg/geom"
)

const (
	// EdgeWarningDistance is the clearance below which an in-bounds feature
	// draws a warning.
	EdgeWarningDistance = 0.5

	// SuggestShrinkRatio is the share of the wall dimension an oversized
	// feature is shrunk to.
	SuggestShrinkRatio = 0.8

	// SnapOffset is the distance from an edge an out-of-bounds feature is
	// moved to.
	SnapOffset = 0.5
)

// Result is the outcome of validating one feature.
type Result struct {
	building.Report
	FeaturePosition geom.Rect       `json:"feature_position"`
	WallBounds      geom.WallBounds `json:"wall_bounds"`
}

// AllResult is the outcome of validating a feature set. FeatureValidations is
// keyed by feature id.
type AllResult struct {
	building.Report
	FeatureValidations map[string]Result `json:"feature_validations"`
}

// ValidateFeature checks that f lies entirely within its wall. Each edge the
// feature crosses produces an error stating the overhang; an in-bounds edge
// closer than EdgeWarningDistance produces a warning.
func ValidateFeature(f building.WallFeature, d building.Dimensions) Result {
	b := geom.WallBoundsFor(f.Position.Wall, d)
	pos := geom.FeaturePosition(f, b)
	res := Result{Report: building.NewReport(), FeaturePosition: pos, WallBounds: b}

	label := f.Label()
	wall := f.Position.Wall

	if over := b.LeftEdge - pos.Left; over > 0 {
		res.AddError(fmt.Sprintf("%s extends %.2fft beyond the left edge of the %s wall", label, over, wall))
	}
	if over := pos.Right - b.RightEdge; over > 0 {
		res.AddError(fmt.Sprintf("%s extends %.2fft beyond the right edge of the %s wall", label, over, wall))
	}
	if over := b.BottomEdge - pos.Bottom; over > 0 {
		res.AddError(fmt.Sprintf("%s extends %.2fft below the floor of the %s wall", label, over, wall))
	}
	if over := pos.Top - b.TopEdge; over > 0 {
		res.AddError(fmt.Sprintf("%s extends %.2fft above the top of the %s wall (wall height %gft)", label, over, wall, b.Height))
	}

	clearances := []struct {
		edge  string
		value float64
	}{
		{"left edge", pos.Left - b.LeftEdge},
		{"right edge", b.RightEdge - pos.Right},
		{"floor", pos.Bottom - b.BottomEdge},
		{"wall top", b.TopEdge - pos.Top},
	}
	for _, c := range clearances {
		if c.value > 0 && c.value < EdgeWarningDistance {
			res.AddWarning(fmt.Sprintf("%s is only %.2fft from the %s (recommended minimum %.1fft)",
				label, c.value, c.edge, EdgeWarningDistance))
		}
	}

	return res
}

// ValidateAll validates every feature independently. Features on different
// walls never interact here; overlap is handled by the height package.
// A repeated id is an error and only its first feature is validated.
func ValidateAll(features []building.WallFeature, d building.Dimensions) AllResult {
	res := AllResult{
		Report:             building.NewReport(),
		FeatureValidations: make(map[string]Result, len(features)),
	}
	for _, f := range features {
		if _, seen := res.FeatureValidations[f.ID]; seen {
			res.AddError(fmt.Sprintf("Duplicate feature id %q on the %s wall", f.ID, f.Position.Wall))
			continue
		}
		r := ValidateFeature(f, d)
		res.FeatureValidations[f.ID] = r
		res.Merge(r.Report)
	}
	return res
}

// MaxDimensions is the largest feature that fits at a given anchor point.
type MaxDimensions struct {
	MaxWidth  float64 `json:"max_width"`
	MaxHeight float64 `json:"max_height"`
}

// MaxAllowedDimensions returns the largest width and height a feature can
// have when anchored at (xOffset, yOffset) with the given alignment.
func MaxAllowedDimensions(wall building.WallPosition, align building.Alignment, xOffset, yOffset float64, d building.Dimensions) MaxDimensions {
	b := geom.WallBoundsFor(wall, d)

	var maxWidth float64
	switch align {
	case building.AlignLeft:
		maxWidth = b.RightEdge - (b.LeftEdge + xOffset)
	case building.AlignRight:
		maxWidth = (b.RightEdge - xOffset) - b.LeftEdge
	default:
		maxWidth = 2 * math.Min(xOffset-b.LeftEdge, b.RightEdge-xOffset)
	}

	return MaxDimensions{
		MaxWidth:  math.Max(0, maxWidth),
		MaxHeight: math.Max(0, b.TopEdge-yOffset),
	}
}

// Space holds the distances from an anchor point to each wall edge.
type Space struct {
	LeftSpace   float64 `json:"left_space"`
	RightSpace  float64 `json:"right_space"`
	BottomSpace float64 `json:"bottom_space"`
	TopSpace    float64 `json:"top_space"`
}

// AvailableSpace returns the non-negative distance from the anchor point to
// each of the wall's edges.
func AvailableSpace(wall building.WallPosition, align building.Alignment, xOffset, yOffset float64, d building.Dimensions) Space {
	b := geom.WallBoundsFor(wall, d)
	x := geom.AnchorX(align, xOffset, b)
	return Space{
		LeftSpace:   math.Max(0, x-b.LeftEdge),
		RightSpace:  math.Max(0, b.RightEdge-x),
		BottomSpace: math.Max(0, yOffset-b.BottomEdge),
		TopSpace:    math.Max(0, b.TopEdge-yOffset),
	}
}
