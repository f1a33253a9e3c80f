package height

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chazu/bayframe/pkg/building"
	"github.com/chazu/bayframe/pkg/geom"
)

const (
	// StackedWarningRatio is the share of wall height a stack of features
	// may occupy before drawing a structural warning.
	StackedWarningRatio = 0.8

	// OpeningAreaWarningRatio is the share of total wall area openings may
	// cover before drawing a structural-support warning.
	OpeningAreaWarningRatio = 0.4
)

// WallHeightResult is the outcome of ValidateWallHeights.
type WallHeightResult struct {
	building.Report
	Requirement  Requirement `json:"requirement"`
	OpeningRatio float64     `json:"opening_ratio"`
}

// ValidateWallHeights checks the building height against the derived
// minimum, each feature against the wall height, and every stack of
// features sharing a horizontal slot on the same wall.
func ValidateWallHeights(d building.Dimensions, features []building.WallFeature, code *building.CodeRequirements) WallHeightResult {
	req := CalculateMinimumRequiredHeight(features, code)
	res := WallHeightResult{Report: building.NewReport(), Requirement: req}

	if d.Height < req.FinalMinimum {
		res.AddError(fmt.Sprintf("Wall height %.2fft is %.2fft below the required minimum of %.2fft (%s)",
			d.Height, req.FinalMinimum-d.Height, req.FinalMinimum, strings.Join(req.ContributingFactors, "; ")))
	}

	for _, f := range features {
		if top := f.Position.YOffset + f.Height; top > d.Height {
			res.AddError(fmt.Sprintf("%s top (%.2fft) exceeds wall height (%.2fft)", f.Label(), top, d.Height))
		}
		if f.Position.YOffset < 0 {
			res.AddError(fmt.Sprintf("%s has a negative vertical offset (%.2fft)", f.Label(), f.Position.YOffset))
		}
	}

	for _, wall := range building.AllWalls {
		validateStacks(&res.Report, wall, building.FeaturesOnWall(features, wall), d.Height)
	}

	wallArea := 2*d.Width*d.Height + 2*d.Length*d.Height
	if wallArea > 0 {
		var openings float64
		for _, f := range features {
			openings += f.Width * f.Height
		}
		res.OpeningRatio = openings / wallArea
		if res.OpeningRatio > OpeningAreaWarningRatio {
			res.AddWarning(fmt.Sprintf("Openings cover %.0f%% of the total wall area; additional structural support may be required",
				res.OpeningRatio*100))
		}
	}

	return res
}

// slot identifies features that share an exact horizontal position on a wall.
type slot struct {
	align building.Alignment
	x     float64
}

func slotOf(f building.WallFeature) slot {
	return slot{align: f.Position.Alignment, x: f.Position.XOffset}
}

// validateStacks checks each group of same-slot features on one wall for
// vertical overlap and cumulative height.
func validateStacks(r *building.Report, wall building.WallPosition, features []building.WallFeature, wallHeight float64) {
	slots := make(map[slot][]building.WallFeature)
	var keys []slot
	for _, f := range features {
		k := slotOf(f)
		if _, ok := slots[k]; !ok {
			keys = append(keys, k)
		}
		slots[k] = append(slots[k], f)
	}

	for _, k := range keys {
		group := slots[k]
		if len(group) < 2 {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Position.YOffset < group[j].Position.YOffset
		})

		var stacked float64
		for i, f := range group {
			stacked += f.Height
			if i == 0 {
				continue
			}
			prev := group[i-1]
			if overlap := prev.Position.YOffset + prev.Height - f.Position.YOffset; overlap > 0 {
				r.AddError(fmt.Sprintf("%s and %s overlap vertically by %.2fft on the %s wall",
					prev.Label(), f.Label(), overlap, wall))
			}
		}

		switch {
		case stacked > wallHeight:
			r.AddError(fmt.Sprintf("Stacked features at %s on the %s wall total %.2fft, exceeding the wall height of %.2fft",
				k, wall, stacked, wallHeight))
		case stacked > wallHeight*StackedWarningRatio:
			r.AddWarning(fmt.Sprintf("Stacked features at %s on the %s wall use %.0f%% of the wall height; check structural support",
				k, wall, stacked/wallHeight*100))
		}
	}
}

// NewFeatureResult is the outcome of ValidateNewFeature.
type NewFeatureResult struct {
	building.Report
	Requirement Requirement `json:"requirement"`
	Conflicts   []string    `json:"conflicts"`
}

// ValidateNewFeature checks whether adding f to existing keeps the wall
// height sufficient and whether f collides with another feature on the same
// wall. wallSpan is the wall's horizontal extent, used to place features of
// every alignment in one frame.
func ValidateNewFeature(f building.WallFeature, existing []building.WallFeature, wallHeight, wallSpan float64, code *building.CodeRequirements) NewFeatureResult {
	all := make([]building.WallFeature, 0, len(existing)+1)
	all = append(all, existing...)
	all = append(all, f)

	req := CalculateMinimumRequiredHeight(all, code)
	res := NewFeatureResult{Report: building.NewReport(), Requirement: req, Conflicts: []string{}}

	if req.FinalMinimum > wallHeight {
		res.AddError(fmt.Sprintf("Adding %s raises the required wall height to %.2fft, above the current %.2fft",
			f.Label(), req.FinalMinimum, wallHeight))
	}
	if top := f.Position.YOffset + f.Height; top > wallHeight {
		res.AddError(fmt.Sprintf("%s top (%.2fft) exceeds wall height (%.2fft)", f.Label(), top, wallHeight))
	}
	if f.Position.YOffset < 0 {
		res.AddError(fmt.Sprintf("%s has a negative vertical offset (%.2fft)", f.Label(), f.Position.YOffset))
	}

	ix := geom.NewIndex()
	labels := make(map[string]string)
	for _, e := range building.FeaturesOnWall(existing, f.Position.Wall) {
		if e.ID == f.ID {
			continue
		}
		if err := ix.Insert(e.ID, spanRect(e, wallSpan)); err != nil {
			continue
		}
		labels[e.ID] = e.Label()
	}

	candidate := spanRect(f, wallSpan)
	for _, id := range ix.Search(candidate) {
		r, _ := ix.Rect(id)
		if !candidate.Intersects(r) {
			continue
		}
		res.Conflicts = append(res.Conflicts, id)
		res.AddError(fmt.Sprintf("%s overlaps %s on the %s wall", f.Label(), labels[id], f.Position.Wall))
	}

	return res
}

// spanRect is the rectangle a feature occupies in [0, span] wall coordinates.
func spanRect(f building.WallFeature, span float64) geom.Rect {
	start, end := geom.SpanInterval(f, span)
	return geom.Rect{Left: start, Right: end, Bottom: f.Position.YOffset, Top: f.Position.YOffset + f.Height}
}
