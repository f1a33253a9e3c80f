package skylight

import (
	"fmt"
	"math"

	"github.com/chazu/bayframe/pkg/building"
	"github.com/chazu/bayframe/pkg/geom"
)

// Suggestion is a corrected placement for a skylight.
type Suggestion struct {
	SuggestedXOffset float64  `json:"suggested_x_offset"`
	SuggestedYOffset float64  `json:"suggested_y_offset"`
	SuggestedWidth   float64  `json:"suggested_width"`
	SuggestedLength  float64  `json:"suggested_length"`
	Adjustments      []string `json:"adjustments"`
}

// Apply returns a copy of s with the suggested placement and size.
func (sg Suggestion) Apply(s building.Skylight) building.Skylight {
	s.XOffset = sg.SuggestedXOffset
	s.YOffset = sg.SuggestedYOffset
	s.Width = sg.SuggestedWidth
	s.Length = sg.SuggestedLength
	return s
}

// SuggestPosition shrinks an oversized skylight to SuggestShrinkRatio of the
// panel maximum, then snaps an overflowing one SnapOffset inside the edge it
// crossed. If the snap cannot fit, the skylight is centred on that axis.
func SuggestPosition(s building.Skylight, d building.Dimensions) Suggestion {
	b := geom.SkylightBoundsFor(d, s.Panel)
	sg := Suggestion{
		SuggestedXOffset: s.XOffset,
		SuggestedYOffset: s.YOffset,
		SuggestedWidth:   s.Width,
		SuggestedLength:  s.Length,
		Adjustments:      []string{},
	}

	if sg.SuggestedWidth > b.MaxWidth {
		sg.SuggestedWidth = math.Max(0, b.MaxWidth*SuggestShrinkRatio)
		sg.Adjustments = append(sg.Adjustments, fmt.Sprintf(
			"Reduced width from %gft to %.2fft (%.0f%% of panel maximum)", s.Width, sg.SuggestedWidth, SuggestShrinkRatio*100))
	}
	if sg.SuggestedLength > b.MaxLength {
		sg.SuggestedLength = math.Max(0, b.MaxLength*SuggestShrinkRatio)
		sg.Adjustments = append(sg.Adjustments, fmt.Sprintf(
			"Reduced length from %gft to %.2fft (%.0f%% of panel maximum)", s.Length, sg.SuggestedLength, SuggestShrinkRatio*100))
	}

	var moved bool
	sg.SuggestedXOffset, moved = snapAxis(sg.SuggestedXOffset, sg.SuggestedWidth, b.MinXOffset, b.MaxXOffset)
	if moved {
		sg.Adjustments = append(sg.Adjustments, fmt.Sprintf("Moved skylight across the panel to x=%.2fft", sg.SuggestedXOffset))
	}
	sg.SuggestedYOffset, moved = snapAxis(sg.SuggestedYOffset, sg.SuggestedLength, b.MinYOffset, b.MaxYOffset)
	if moved {
		sg.Adjustments = append(sg.Adjustments, fmt.Sprintf("Moved skylight along the ridge to y=%.2fft", sg.SuggestedYOffset))
	}

	return sg
}

// snapAxis returns a centre for an extent of the given size inside
// [lo, hi], and whether it had to move.
func snapAxis(center, size, lo, hi float64) (float64, bool) {
	r := geom.Rect{Left: center - size/2, Right: center + size/2}
	switch {
	case r.Left < lo:
		center = lo + size/2 + SnapOffset
	case r.Right > hi:
		center = hi - size/2 - SnapOffset
	default:
		return center, false
	}
	if center-size/2 < lo || center+size/2 > hi {
		center = (lo + hi) / 2
	}
	return center, true
}
