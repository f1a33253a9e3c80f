package layout

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrSegmentNotFound is returned when an edit names an unknown segment.
var ErrSegmentNotFound = errors.New("wall segment not found")

// OptimizeResult is the outcome of OptimizeWallLayout.
type OptimizeResult struct {
	Layout      WallLayout `json:"layout"`
	Optimized   bool       `json:"optimized"`
	ScaleFactor float64    `json:"scale_factor"`
	Changes     []string   `json:"changes"`
	Validation  Result     `json:"validation"`
}

// OptimizeWallLayout leaves a layout that fits unchanged. An over-capacity
// layout has every segment and gap scaled by one global factor so that it
// fills OptimizeTarget of the room.
func OptimizeWallLayout(l WallLayout) OptimizeResult {
	m := Measure(l)
	out := OptimizeResult{Layout: cloneLayout(l), ScaleFactor: 1, Changes: []string{}}
	if l.RoomWidth <= 0 || m.UsedSpace <= l.RoomWidth+epsilon {
		out.Validation = ValidateWallPositioning(out.Layout)
		return out
	}

	factor := l.RoomWidth * OptimizeTarget / m.UsedSpace
	for i := range out.Layout.Segments {
		out.Layout.Segments[i].Width *= factor
		out.Layout.Segments[i].Position *= factor
	}
	for i := range out.Layout.Gaps {
		out.Layout.Gaps[i].Width *= factor
		out.Layout.Gaps[i].Position *= factor
	}
	out.Optimized = true
	out.ScaleFactor = factor
	out.Changes = append(out.Changes, fmt.Sprintf(
		"Scaled all segments and gaps by %.1f%% to fit %.2fft room (was %.2fft)",
		factor*100, l.RoomWidth, m.UsedSpace))
	out.Validation = ValidateWallPositioning(out.Layout)
	return out
}

// CreateDefaultWallLayout returns exterior walls at both ends, interior
// walls centred at 25%, 50% and 75% of the room width, and spacing gaps
// filling the bays between them.
func CreateDefaultWallLayout(roomWidth, roomLength float64) WallLayout {
	l := WallLayout{RoomWidth: roomWidth, RoomLength: roomLength}
	l.Segments = []WallSegment{{
		ID: "exterior-left", Name: "Left exterior wall", Type: SegmentExterior,
		Width: ExteriorThickness, Thickness: ExteriorThickness, Position: 0,
	}}
	for i, share := range []float64{0.25, 0.5, 0.75} {
		l.Segments = append(l.Segments, WallSegment{
			ID:        fmt.Sprintf("interior-%d", i+1),
			Name:      fmt.Sprintf("Interior wall %d", i+1),
			Type:      SegmentInterior,
			Width:     InteriorThickness,
			Thickness: InteriorThickness,
			Position:  roomWidth*share - InteriorThickness/2,
		})
	}
	l.Segments = append(l.Segments, WallSegment{
		ID: "exterior-right", Name: "Right exterior wall", Type: SegmentExterior,
		Width: ExteriorThickness, Thickness: ExteriorThickness, Position: roomWidth - ExteriorThickness,
	})

	for i := 0; i+1 < len(l.Segments); i++ {
		start := l.Segments[i].Position + l.Segments[i].Width
		l.Gaps = append(l.Gaps, WallGap{
			ID:       fmt.Sprintf("gap-%d", i+1),
			Width:    l.Segments[i+1].Position - start,
			Position: start,
			Purpose:  GapSpacing,
		})
	}
	return l
}

// AddWallSegment returns a copy of l with s appended and the validation of
// the new layout. A segment without an id is given one.
func AddWallSegment(l WallLayout, s WallSegment) (WallLayout, Result) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	next := cloneLayout(l)
	next.Segments = append(next.Segments, s)
	return next, ValidateWallPositioning(next)
}

// RemoveWallSegment returns a copy of l without the segment id.
func RemoveWallSegment(l WallLayout, id string) (WallLayout, Result, error) {
	i := indexOf(l.Segments, id)
	if i < 0 {
		return l, Result{}, fmt.Errorf("remove %q: %w", id, ErrSegmentNotFound)
	}
	next := cloneLayout(l)
	next.Segments = append(next.Segments[:i], next.Segments[i+1:]...)
	return next, ValidateWallPositioning(next), nil
}

// UpdateWallSegment returns a copy of l with segment id replaced by s. The
// id is preserved.
func UpdateWallSegment(l WallLayout, id string, s WallSegment) (WallLayout, Result, error) {
	i := indexOf(l.Segments, id)
	if i < 0 {
		return l, Result{}, fmt.Errorf("update %q: %w", id, ErrSegmentNotFound)
	}
	s.ID = id
	next := cloneLayout(l)
	next.Segments[i] = s
	return next, ValidateWallPositioning(next), nil
}

func indexOf(segments []WallSegment, id string) int {
	for i, s := range segments {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func cloneLayout(l WallLayout) WallLayout {
	out := l
	out.Segments = append([]WallSegment(nil), l.Segments...)
	out.Gaps = append([]WallGap(nil), l.Gaps...)
	return out
}
