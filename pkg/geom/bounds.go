// Package geom holds the axis-aligned geometry shared by the validators:
// wall and roof-panel bounds, feature placement rectangles and a small
// spatial index. Everything here is pure arithmetic in one or two
// dimensions; there is no 3D collision geometry.
package geom

import "github.com/chazu/bayframe/pkg/building"

// SkylightEdgeMargin is the structural clearance kept between a skylight and
// every edge of its roof panel, in feet.
const SkylightEdgeMargin = 1.0

// WallBounds is a wall's extent in its local frame: x is centred on the
// wall's midpoint, y runs up from the floor.
type WallBounds struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	LeftEdge   float64 `json:"left_edge"`
	RightEdge  float64 `json:"right_edge"`
	BottomEdge float64 `json:"bottom_edge"`
	TopEdge    float64 `json:"top_edge"`
}

// WallBoundsFor computes the bounds of the given wall.
func WallBoundsFor(wall building.WallPosition, d building.Dimensions) WallBounds {
	w := building.WallSpan(d, wall)
	return WallBounds{
		Width:      w,
		Height:     d.Height,
		LeftEdge:   -w / 2,
		RightEdge:  w / 2,
		BottomEdge: 0,
		TopEdge:    d.Height,
	}
}

// SkylightBounds is the allowed placement envelope on one roof panel, in
// panel-local coordinates, after the edge margin is removed.
type SkylightBounds struct {
	MinXOffset float64 `json:"min_x_offset"`
	MaxXOffset float64 `json:"max_x_offset"`
	MinYOffset float64 `json:"min_y_offset"`
	MaxYOffset float64 `json:"max_y_offset"`
	MaxWidth   float64 `json:"max_width"`
	MaxLength  float64 `json:"max_length"`
}

// PanelWidth is the horizontal span of one roof panel.
func PanelWidth(d building.Dimensions) float64 {
	return d.Width / 2
}

// SkylightBoundsFor computes the skylight envelope for a panel. Both panels
// share the same local envelope; the panel argument names which one.
func SkylightBoundsFor(d building.Dimensions, panel building.Panel) SkylightBounds {
	pw := PanelWidth(d)
	return SkylightBounds{
		MinXOffset: -pw/2 + SkylightEdgeMargin,
		MaxXOffset: pw/2 - SkylightEdgeMargin,
		MinYOffset: -d.Length/2 + SkylightEdgeMargin,
		MaxYOffset: d.Length/2 - SkylightEdgeMargin,
		MaxWidth:   pw - 2*SkylightEdgeMargin,
		MaxLength:  d.Length - 2*SkylightEdgeMargin,
	}
}

// FeaturePosition computes the rectangle a feature occupies in its wall's
// local frame.
//
// Left and right alignment measure XOffset inward from that edge. Center
// alignment measures XOffset from the wall's midpoint, so the same number
// means different things depending on alignment.
func FeaturePosition(f building.WallFeature, b WallBounds) Rect {
	var left, right float64
	switch f.Position.Alignment {
	case building.AlignLeft:
		left = b.LeftEdge + f.Position.XOffset
		right = left + f.Width
	case building.AlignRight:
		right = b.RightEdge - f.Position.XOffset
		left = right - f.Width
	default:
		left = f.Position.XOffset - f.Width/2
		right = f.Position.XOffset + f.Width/2
	}
	bottom := f.Position.YOffset
	return Rect{Left: left, Right: right, Bottom: bottom, Top: bottom + f.Height}
}

// AnchorX returns the horizontal reference point of an offset in the wall's
// local frame: the edge-relative point for left/right alignment, the offset
// itself for center alignment.
func AnchorX(align building.Alignment, xOffset float64, b WallBounds) float64 {
	switch align {
	case building.AlignLeft:
		return b.LeftEdge + xOffset
	case building.AlignRight:
		return b.RightEdge - xOffset
	default:
		return xOffset
	}
}

// SpanInterval expresses a feature's horizontal placement in [0, span] wall
// coordinates, where 0 is the wall's left end.
func SpanInterval(f building.WallFeature, span float64) (start, end float64) {
	switch f.Position.Alignment {
	case building.AlignLeft:
		start = f.Position.XOffset
	case building.AlignRight:
		start = span - f.Position.XOffset - f.Width
	default:
		start = span/2 + f.Position.XOffset - f.Width/2
	}
	return start, start + f.Width
}

// SkylightRect returns the rectangle a skylight occupies in panel-local
// coordinates.
func SkylightRect(s building.Skylight) Rect {
	return Rect{
		Left:   s.XOffset - s.Width/2,
		Right:  s.XOffset + s.Width/2,
		Bottom: s.YOffset - s.Length/2,
		Top:    s.YOffset + s.Length/2,
	}
}
