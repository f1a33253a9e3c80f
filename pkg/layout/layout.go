// Package layout validates and repairs one-dimensional arrangements of
// interior wall segments and gaps across a room.
package layout

import (
	"fmt"
	"sort"

	"github.com/chazu/bayframe/pkg/building"
	"github.com/chazu/bayframe/pkg/geom"
)

const (
	// ExteriorThickness and InteriorThickness size the default layout.
	ExteriorThickness = 0.67
	InteriorThickness = 0.33

	// MinSegmentWidth is the width below which a segment draws a warning.
	MinSegmentWidth = 0.25

	// MaxSegmentShare is the share of the room width above which a single
	// segment draws a warning.
	MaxSegmentShare = 0.5

	// MinDoorwayWidth is the narrowest doorway gap accepted without a
	// warning.
	MinDoorwayWidth = 2.0

	// UnderUsedRatio and OverPackedRatio bound the utilisation range that
	// passes without a warning.
	UnderUsedRatio  = 0.6
	OverPackedRatio = 0.9

	// OptimizeTarget is the share of the room width an over-capacity
	// layout is scaled to fill.
	OptimizeTarget = 0.95

	epsilon = 1e-9
)

// SegmentType classifies a wall segment.
type SegmentType string

const (
	SegmentExterior  SegmentType = "exterior"
	SegmentInterior  SegmentType = "interior"
	SegmentPartition SegmentType = "partition"
)

// GapPurpose says what a gap between segments is for.
type GapPurpose string

const (
	GapDoorway GapPurpose = "doorway"
	GapWindow  GapPurpose = "window"
	GapPassage GapPurpose = "passage"
	GapSpacing GapPurpose = "spacing"
)

// WallSegment is a wall crossing the room. Width is the room width the
// segment consumes; Position is its offset from the room's left edge.
type WallSegment struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Width     float64     `json:"width"`
	Thickness float64     `json:"thickness"`
	Position  float64     `json:"position"`
	Type      SegmentType `json:"type"`
}

// WallGap is open space between segments.
type WallGap struct {
	ID       string     `json:"id"`
	Width    float64    `json:"width"`
	Position float64    `json:"position"`
	Purpose  GapPurpose `json:"purpose"`
}

// WallLayout is every segment and gap along one room dimension.
type WallLayout struct {
	Segments   []WallSegment `json:"segments"`
	Gaps       []WallGap     `json:"gaps"`
	RoomWidth  float64       `json:"room_width"`
	RoomLength float64       `json:"room_length"`
}

// Measurements summarises how much of the room a layout uses.
type Measurements struct {
	TotalSegmentWidth float64 `json:"total_segment_width"`
	TotalGapWidth     float64 `json:"total_gap_width"`
	UsedSpace         float64 `json:"used_space"`
	RemainingSpace    float64 `json:"remaining_space"`
	Utilization       float64 `json:"utilization"`
}

// Result is the outcome of validating a layout.
type Result struct {
	building.Report
	Layout       WallLayout   `json:"layout"`
	Measurements Measurements `json:"measurements"`
}

// Measure sums the segment and gap widths of l.
func Measure(l WallLayout) Measurements {
	var m Measurements
	for _, s := range l.Segments {
		m.TotalSegmentWidth += s.Width
	}
	for _, g := range l.Gaps {
		m.TotalGapWidth += g.Width
	}
	m.UsedSpace = m.TotalSegmentWidth + m.TotalGapWidth
	m.RemainingSpace = l.RoomWidth - m.UsedSpace
	if l.RoomWidth > 0 {
		m.Utilization = m.UsedSpace / l.RoomWidth
	}
	return m
}

// ValidateWallLayout checks that the segments and gaps fit in the room and
// that each is sensibly sized. A non-positive room width is an error.
func ValidateWallLayout(segments []WallSegment, gaps []WallGap, roomWidth, roomLength float64) Result {
	l := WallLayout{Segments: segments, Gaps: gaps, RoomWidth: roomWidth, RoomLength: roomLength}
	res := Result{Report: building.NewReport(), Layout: l, Measurements: Measure(l)}

	if roomWidth <= 0 {
		res.AddError(fmt.Sprintf("Room width must be positive (got %.2fft)", roomWidth))
		return res
	}

	if over := res.Measurements.UsedSpace - roomWidth; over > epsilon {
		res.AddError(fmt.Sprintf("Wall layout exceeds room width by %s (%.2fft used of %.2fft)",
			building.FormatFeetInches(over), res.Measurements.UsedSpace, roomWidth))
	}

	for _, s := range segments {
		switch {
		case s.Width <= 0:
			res.AddError(fmt.Sprintf("Wall segment %q must have a positive width", s.label()))
		case s.Width < MinSegmentWidth:
			res.AddWarning(fmt.Sprintf("Wall segment %q is very thin (%.2fft)", s.label(), s.Width))
		case s.Width > roomWidth*MaxSegmentShare:
			res.AddWarning(fmt.Sprintf("Wall segment %q is very wide (%.2fft, more than half the room)", s.label(), s.Width))
		}
	}

	for _, g := range gaps {
		switch {
		case g.Width <= 0:
			res.AddError(fmt.Sprintf("Gap %q must have a positive width", g.ID))
		case g.Purpose == GapDoorway && g.Width < MinDoorwayWidth:
			res.AddWarning(fmt.Sprintf("Doorway gap %q is only %s wide (recommended minimum %s)",
				g.ID, building.FormatFeetInches(g.Width), building.FormatFeetInches(MinDoorwayWidth)))
		}
	}

	return res
}

// ValidateWallPositioning runs ValidateWallLayout and additionally checks
// that segments do not overlap each other, that every segment and gap lies
// inside the room, and that utilisation is within range.
func ValidateWallPositioning(l WallLayout) Result {
	res := ValidateWallLayout(l.Segments, l.Gaps, l.RoomWidth, l.RoomLength)
	if l.RoomWidth <= 0 {
		return res
	}

	sorted := make([]WallSegment, len(l.Segments))
	copy(sorted, l.Segments)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })

	for i := range sorted {
		a := sorted[i]
		for _, b := range sorted[i+1:] {
			if b.Position >= a.Position+a.Width {
				break
			}
			if over := geom.IntervalOverlap(a.Position, a.Position+a.Width, b.Position, b.Position+b.Width); over > epsilon {
				res.AddError(fmt.Sprintf("Wall segments %q and %q overlap by %s",
					a.label(), b.label(), building.FormatFeetInches(over)))
			}
		}
	}

	for _, s := range sorted {
		if s.Position < -epsilon || s.Position+s.Width > l.RoomWidth+epsilon {
			res.AddError(fmt.Sprintf("Wall segment %q at %.2fft lies outside the room (0 to %.2fft)",
				s.label(), s.Position, l.RoomWidth))
		}
	}
	for _, g := range l.Gaps {
		if g.Position < -epsilon || g.Position+g.Width > l.RoomWidth+epsilon {
			res.AddError(fmt.Sprintf("Gap %q at %.2fft lies outside the room (0 to %.2fft)",
				g.ID, g.Position, l.RoomWidth))
		}
	}

	switch u := res.Measurements.Utilization; {
	case u < UnderUsedRatio:
		res.AddWarning(fmt.Sprintf("Layout uses only %.0f%% of the room width", u*100))
	case u > OverPackedRatio:
		res.AddWarning(fmt.Sprintf("Layout uses %.0f%% of the room width and may feel cramped", u*100))
	}

	return res
}

func (s WallSegment) label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}

// ParseSegmentType converts a user-supplied name to a SegmentType.
func ParseSegmentType(s string) (SegmentType, error) {
	switch t := SegmentType(s); t {
	case SegmentExterior, SegmentInterior, SegmentPartition:
		return t, nil
	}
	return "", fmt.Errorf("invalid segment type %q, expected exterior, interior or partition", s)
}

// ParseGapPurpose converts a user-supplied name to a GapPurpose.
func ParseGapPurpose(s string) (GapPurpose, error) {
	switch p := GapPurpose(s); p {
	case GapDoorway, GapWindow, GapPassage, GapSpacing:
		return p, nil
	}
	return "", fmt.Errorf("invalid gap purpose %q, expected doorway, window, passage or spacing", s)
}
