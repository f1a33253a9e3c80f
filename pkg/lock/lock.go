// Package lock derives which stretches of each wall are held by placed
// features and decides whether a proposed dimension change would orphan
// any of them. Every value here is a projection of the current feature
// set; nothing is stored.
package lock

import (
	"fmt"
	"sort"

	"github.com/chazu/bayframe/pkg/building"
	"github.com/chazu/bayframe/pkg/geom"
)

const (
	// LockBuffer is added on each side of a feature's occupied interval.
	LockBuffer = 1.0

	// EdgeClearance is the distance to a wall edge below which a feature
	// draws a warning after a dimension change.
	EdgeClearance = 1.0

	// CriticalAvailableLength is the unlocked length below which a wall's
	// protection carries a critical restriction.
	CriticalAvailableLength = 2.0
)

// LockType describes how much of a segment a lock holds.
type LockType string

const (
	LockFull    LockType = "full"
	LockPartial LockType = "partial"
)

// WallSegmentLock is the interval of a wall held by one feature, measured
// in [0, span] wall coordinates from the wall's left end.
type WallSegmentLock struct {
	ID            string                `json:"id"`
	Wall          building.WallPosition `json:"wall"`
	StartPosition float64               `json:"start_position"`
	EndPosition   float64               `json:"end_position"`
	LockedBy      []string              `json:"locked_by"`
	LockType      LockType              `json:"lock_type"`
	Reason        string                `json:"reason"`
}

// Length returns the locked length.
func (l WallSegmentLock) Length() float64 { return l.EndPosition - l.StartPosition }

// WallBoundsProtection aggregates the locks on one wall.
type WallBoundsProtection struct {
	Wall              building.WallPosition `json:"wall"`
	WallLength        float64               `json:"wall_length"`
	Locks             []WallSegmentLock     `json:"locks"`
	TotalLockedLength float64               `json:"total_locked_length"`
	AvailableLength   float64               `json:"available_length"`
	IsLocked          bool                  `json:"is_locked"`
	Restrictions      []string              `json:"restrictions"`
}

func lockID(wall building.WallPosition, featureID string) string {
	return fmt.Sprintf("lock-%s-%s", wall, featureID)
}

// CreateWallSegmentLocks returns one lock per feature on wall. Each lock
// covers the feature's occupied interval widened by LockBuffer on both
// sides and clamped to the wall.
func CreateWallSegmentLocks(features []building.WallFeature, wall building.WallPosition, d building.Dimensions) []WallSegmentLock {
	span := building.WallSpan(d, wall)
	locks := []WallSegmentLock{}
	for _, f := range building.FeaturesOnWall(features, wall) {
		start, end := geom.SpanInterval(f, span)
		locks = append(locks, WallSegmentLock{
			ID:            lockID(wall, f.ID),
			Wall:          wall,
			StartPosition: geom.Clamp(start-LockBuffer, 0, span),
			EndPosition:   geom.Clamp(end+LockBuffer, 0, span),
			LockedBy:      []string{f.ID},
			LockType:      LockFull,
			Reason: fmt.Sprintf("%s occupies %.2fft to %.2fft of the %s wall (%.1fft buffer each side)",
				f.Label(), start, end, wall, LockBuffer),
		})
	}
	return locks
}

// CreateWallBoundsProtection aggregates the locks on wall. The locked
// length is the length of the union of the lock intervals, so overlapping
// buffers count once.
func CreateWallBoundsProtection(features []building.WallFeature, wall building.WallPosition, d building.Dimensions) WallBoundsProtection {
	span := building.WallSpan(d, wall)
	locks := CreateWallSegmentLocks(features, wall, d)

	p := WallBoundsProtection{
		Wall:         wall,
		WallLength:   span,
		Locks:        locks,
		IsLocked:     len(locks) > 0,
		Restrictions: []string{},
	}
	p.TotalLockedLength = unionLength(locks)
	p.AvailableLength = span - p.TotalLockedLength

	for _, l := range locks {
		p.Restrictions = append(p.Restrictions, fmt.Sprintf("%.2fft to %.2fft locked by %s",
			l.StartPosition, l.EndPosition, l.LockedBy[0]))
	}
	if p.AvailableLength < CriticalAvailableLength {
		p.Restrictions = append(p.Restrictions, fmt.Sprintf(
			"Critical: only %.2fft of the %s wall is unlocked", p.AvailableLength, wall))
	}
	return p
}

// ProtectAll computes the protection of every wall.
func ProtectAll(features []building.WallFeature, d building.Dimensions) map[building.WallPosition]WallBoundsProtection {
	out := make(map[building.WallPosition]WallBoundsProtection, len(building.AllWalls))
	for _, w := range building.AllWalls {
		out[w] = CreateWallBoundsProtection(features, w, d)
	}
	return out
}

func unionLength(locks []WallSegmentLock) float64 {
	if len(locks) == 0 {
		return 0
	}
	iv := make([][2]float64, 0, len(locks))
	for _, l := range locks {
		iv = append(iv, [2]float64{l.StartPosition, l.EndPosition})
	}
	sort.Slice(iv, func(i, j int) bool { return iv[i][0] < iv[j][0] })

	var total float64
	cur := iv[0]
	for _, next := range iv[1:] {
		if next[0] <= cur[1] {
			if next[1] > cur[1] {
				cur[1] = next[1]
			}
			continue
		}
		total += cur[1] - cur[0]
		cur = next
	}
	return total + cur[1] - cur[0]
}
