package lock

import (
	"fmt"
	"math"

	"github.com/chazu/bayframe/pkg/building"
	"github.com/chazu/bayframe/pkg/geom"
)

// ChangeResult is the verdict on a proposed dimension change.
type ChangeResult struct {
	CanModify        bool              `json:"can_modify"`
	Restrictions     []string          `json:"restrictions"`
	Warnings         []string          `json:"warnings"`
	LockedSegments   []WallSegmentLock `json:"locked_segments"`
	AffectedFeatures []string          `json:"affected_features"`
}

func allowed() ChangeResult {
	return ChangeResult{
		CanModify:        true,
		Restrictions:     []string{},
		Warnings:         []string{},
		LockedSegments:   []WallSegmentLock{},
		AffectedFeatures: []string{},
	}
}

// ValidateWallDimensionChange places every feature on wall under the
// proposed dimensions and restricts the change if any would leave the
// wall. Features ending up closer than EdgeClearance to an edge draw a
// warning. A wall without features can always be modified.
func ValidateWallDimensionChange(wall building.WallPosition, current, proposed building.Dimensions, features []building.WallFeature) ChangeResult {
	res := allowed()
	onWall := building.FeaturesOnWall(features, wall)
	if len(onWall) == 0 {
		return res
	}
	res.LockedSegments = CreateWallSegmentLocks(onWall, wall, current)

	b := geom.WallBoundsFor(wall, proposed)
	for _, f := range onWall {
		pos := geom.FeaturePosition(f, b)
		label := f.Label()
		affected := false

		restrict := func(format string, args ...any) {
			res.Restrictions = append(res.Restrictions, fmt.Sprintf(format, args...))
			affected = true
		}
		warn := func(edge string, clearance float64) {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"%s would be only %.2fft from the %s of the %s wall", label, clearance, edge, wall))
			affected = true
		}

		left := pos.Left - b.LeftEdge
		right := b.RightEdge - pos.Right
		top := b.TopEdge - pos.Top

		if left < 0 {
			restrict("%s would extend %.2fft past the left edge of the %s wall", label, -left, wall)
		} else if left < EdgeClearance {
			warn("left edge", left)
		}
		if right < 0 {
			restrict("%s would extend %.2fft past the right edge of the %s wall", label, -right, wall)
		} else if right < EdgeClearance {
			warn("right edge", right)
		}
		if top < 0 {
			restrict("%s would extend %.2fft above the top of the %s wall", label, -top, wall)
		} else if top < EdgeClearance {
			warn("top", top)
		}
		if pos.Bottom < b.BottomEdge {
			restrict("%s would sit below the floor of the %s wall", label, wall)
		}

		if affected {
			res.AffectedFeatures = append(res.AffectedFeatures, f.ID)
		}
	}

	res.CanModify = len(res.Restrictions) == 0
	return res
}

// CheckDimensionLock validates setting one dimension from currentValue to
// proposedValue. Dimensions that do not shape the wall are always allowed.
func CheckDimensionLock(wall building.WallPosition, kind building.DimensionKind, currentValue, proposedValue float64, features []building.WallFeature, current building.Dimensions) ChangeResult {
	if !wall.Affects(kind) {
		return allowed()
	}
	return ValidateWallDimensionChange(wall,
		current.With(kind, currentValue),
		current.With(kind, proposedValue),
		features)
}

// SafeDimensions is the outcome of SuggestSafeDimensionChanges.
type SafeDimensions struct {
	MinimumSpan   float64             `json:"minimum_span"`
	MinimumHeight float64             `json:"minimum_height"`
	Suggested     building.Dimensions `json:"suggested"`
	Warnings      []string            `json:"warnings"`
}

// RequiredSpan is the shortest wall that keeps f in bounds with edge
// clearance.
func RequiredSpan(f building.WallFeature) float64 {
	if f.Position.Alignment == building.AlignCenter {
		return 2*math.Abs(f.Position.XOffset) + f.Width + 2*EdgeClearance
	}
	return f.Position.XOffset + f.Width + EdgeClearance
}

// SuggestSafeDimensionChanges raises the desired dimensions to the smallest
// values that keep every feature on wall in bounds. A warning is recorded
// for each dimension that had to be raised.
func SuggestSafeDimensionChanges(wall building.WallPosition, features []building.WallFeature, desired building.Dimensions) SafeDimensions {
	out := SafeDimensions{Suggested: desired, Warnings: []string{}}
	for _, f := range building.FeaturesOnWall(features, wall) {
		out.MinimumSpan = math.Max(out.MinimumSpan, RequiredSpan(f))
		out.MinimumHeight = math.Max(out.MinimumHeight, f.Position.YOffset+f.Height+EdgeClearance)
	}

	spanKind := building.DimensionLength
	if wall.IsGableEnd() {
		spanKind = building.DimensionWidth
	}
	if span := building.WallSpan(desired, wall); span < out.MinimumSpan {
		out.Suggested = out.Suggested.With(spanKind, out.MinimumSpan)
		out.Warnings = append(out.Warnings, fmt.Sprintf(
			"Requested %s of %.2fft is too small for the features on the %s wall; using %.2fft",
			spanKind, span, wall, out.MinimumSpan))
	}
	if desired.Height < out.MinimumHeight {
		out.Suggested.Height = out.MinimumHeight
		out.Warnings = append(out.Warnings, fmt.Sprintf(
			"Requested height of %.2fft is too small for the features on the %s wall; using %.2fft",
			desired.Height, wall, out.MinimumHeight))
	}
	return out
}

// ApplyLocks returns a copy of features with IsLocked and BoundsLock set
// from the current locks.
func ApplyLocks(features []building.WallFeature, d building.Dimensions) []building.WallFeature {
	byID := make(map[string]WallSegmentLock)
	for _, w := range building.AllWalls {
		for _, l := range CreateWallSegmentLocks(features, w, d) {
			byID[l.LockedBy[0]] = l
		}
	}

	out := make([]building.WallFeature, len(features))
	for i, f := range features {
		if l, ok := byID[f.ID]; ok && f.Position.Wall == l.Wall {
			f.IsLocked = true
			f.BoundsLock = &building.BoundsLock{
				LockID:        l.ID,
				StartPosition: l.StartPosition,
				EndPosition:   l.EndPosition,
			}
		} else {
			f.IsLocked = false
			f.BoundsLock = nil
		}
		out[i] = f
	}
	return out
}

// ReleaseLock removes the feature with the given id and recomputes the
// locks of those that remain. It reports false if no such feature exists.
func ReleaseLock(features []building.WallFeature, id string, d building.Dimensions) ([]building.WallFeature, bool) {
	rest := make([]building.WallFeature, 0, len(features))
	found := false
	for _, f := range features {
		if f.ID == id {
			found = true
			continue
		}
		rest = append(rest, f)
	}
	return ApplyLocks(rest, d), found
}
