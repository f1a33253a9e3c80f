package feature

import (
	"fmt"
	"math"

	"github.com/chazu/bayframe/pkg/building"
	"github.com/chazu/bayframe/pkg/geom"
)

// Suggestion is a corrected placement for a feature. Adjustments describes
// each change made; it is empty when the feature was already in bounds.
type Suggestion struct {
	SuggestedXOffset float64  `json:"suggested_x_offset"`
	SuggestedYOffset float64  `json:"suggested_y_offset"`
	SuggestedWidth   float64  `json:"suggested_width"`
	SuggestedHeight  float64  `json:"suggested_height"`
	Adjustments      []string `json:"adjustments"`
}

// Apply returns a copy of f with the suggested placement and size.
func (s Suggestion) Apply(f building.WallFeature) building.WallFeature {
	f.Position.XOffset = s.SuggestedXOffset
	f.Position.YOffset = s.SuggestedYOffset
	f.Width = s.SuggestedWidth
	f.Height = s.SuggestedHeight
	return f
}

// SuggestPosition repairs an out-of-bounds feature deterministically:
// oversized dimensions shrink to SuggestShrinkRatio of the wall, then an
// overflowing feature snaps SnapOffset from the relevant edge (or to the
// centre for center alignment). If the snapped feature still cannot fit its
// size is cut to the space left. An in-bounds feature is returned unchanged.
func SuggestPosition(f building.WallFeature, d building.Dimensions) Suggestion {
	b := geom.WallBoundsFor(f.Position.Wall, d)
	s := Suggestion{
		SuggestedXOffset: f.Position.XOffset,
		SuggestedYOffset: f.Position.YOffset,
		SuggestedWidth:   f.Width,
		SuggestedHeight:  f.Height,
		Adjustments:      []string{},
	}

	if s.SuggestedWidth > b.Width {
		s.SuggestedWidth = b.Width * SuggestShrinkRatio
		s.Adjustments = append(s.Adjustments, fmt.Sprintf(
			"Reduced width from %.2fft to %.2fft (%.0f%% of wall width)", f.Width, s.SuggestedWidth, SuggestShrinkRatio*100))
	}
	if s.SuggestedHeight > b.Height {
		s.SuggestedHeight = b.Height * SuggestShrinkRatio
		s.Adjustments = append(s.Adjustments, fmt.Sprintf(
			"Reduced height from %.2fft to %.2fft (%.0f%% of wall height)", f.Height, s.SuggestedHeight, SuggestShrinkRatio*100))
	}

	pos := geom.FeaturePosition(s.Apply(f), b)
	if pos.Left < b.LeftEdge || pos.Right > b.RightEdge {
		switch f.Position.Alignment {
		case building.AlignLeft, building.AlignRight:
			s.SuggestedXOffset = SnapOffset
			s.Adjustments = append(s.Adjustments, fmt.Sprintf(
				"Moved feature to %.1fft from the %s edge", SnapOffset, f.Position.Alignment))
		default:
			s.SuggestedXOffset = 0
			s.Adjustments = append(s.Adjustments, "Centered feature on the wall")
		}
	}
	if pos.Bottom < b.BottomEdge {
		s.SuggestedYOffset = b.BottomEdge + SnapOffset
		s.Adjustments = append(s.Adjustments, fmt.Sprintf("Raised feature to %.1fft above the floor", SnapOffset))
	} else if pos.Top > b.TopEdge {
		s.SuggestedYOffset = math.Max(b.BottomEdge, b.TopEdge-s.SuggestedHeight-SnapOffset)
		s.Adjustments = append(s.Adjustments, fmt.Sprintf(
			"Lowered feature to %.2fft above the floor", s.SuggestedYOffset))
	}

	// Snapping can still leave a tight fit short; trim the size to what is left.
	pos = geom.FeaturePosition(s.Apply(f), b)
	if pos.Left < b.LeftEdge || pos.Right > b.RightEdge {
		room := b.Width
		if f.Position.Alignment == building.AlignLeft || f.Position.Alignment == building.AlignRight {
			room = b.Width - s.SuggestedXOffset
		}
		s.SuggestedWidth = math.Max(0, room)
		s.Adjustments = append(s.Adjustments, fmt.Sprintf("Reduced width to %.2fft to fit the wall", s.SuggestedWidth))
	}
	if pos.Top > b.TopEdge {
		s.SuggestedHeight = math.Max(0, b.TopEdge-s.SuggestedYOffset)
		s.Adjustments = append(s.Adjustments, fmt.Sprintf("Reduced height to %.2fft to fit the wall", s.SuggestedHeight))
	}

	return s
}
