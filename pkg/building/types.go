package building

import "fmt"

// ---------------------------------------------------------------------------
// Dimensions
// ---------------------------------------------------------------------------

// Dimensions describes the outer envelope of a building in feet.
type Dimensions struct {
	Width     float64 `json:"width"`
	Length    float64 `json:"length"`
	Height    float64 `json:"height"`
	RoofPitch float64 `json:"roof_pitch"` // rise per 12 of run
}

// DimensionKind names one of the editable building dimensions.
type DimensionKind string

const (
	DimensionWidth  DimensionKind = "width"
	DimensionLength DimensionKind = "length"
	DimensionHeight DimensionKind = "height"
)

// With returns a copy of d with the named dimension replaced by value.
func (d Dimensions) With(kind DimensionKind, value float64) Dimensions {
	switch kind {
	case DimensionWidth:
		d.Width = value
	case DimensionLength:
		d.Length = value
	case DimensionHeight:
		d.Height = value
	}
	return d
}

// Value returns the named dimension.
func (d Dimensions) Value(kind DimensionKind) float64 {
	switch kind {
	case DimensionWidth:
		return d.Width
	case DimensionLength:
		return d.Length
	case DimensionHeight:
		return d.Height
	}
	return 0
}

// ParseDimensionKind converts a user-supplied name to a DimensionKind.
func ParseDimensionKind(s string) (DimensionKind, error) {
	switch k := DimensionKind(s); k {
	case DimensionWidth, DimensionLength, DimensionHeight:
		return k, nil
	}
	return "", fmt.Errorf("invalid dimension %q, expected width, length or height", s)
}

// ---------------------------------------------------------------------------
// Walls
// ---------------------------------------------------------------------------

// WallPosition identifies one of the four exterior walls.
type WallPosition string

const (
	WallFront WallPosition = "front"
	WallBack  WallPosition = "back"
	WallLeft  WallPosition = "left"
	WallRight WallPosition = "right"
)

// AllWalls lists the walls in a stable order.
var AllWalls = []WallPosition{WallFront, WallBack, WallLeft, WallRight}

// ParseWallPosition converts a user-supplied name to a WallPosition.
func ParseWallPosition(s string) (WallPosition, error) {
	switch w := WallPosition(s); w {
	case WallFront, WallBack, WallLeft, WallRight:
		return w, nil
	}
	return "", fmt.Errorf("invalid wall %q, expected front, back, left or right", s)
}

// IsGableEnd reports whether the wall runs across the building width.
func (w WallPosition) IsGableEnd() bool {
	return w == WallFront || w == WallBack
}

// WallSpan returns the horizontal extent of the given wall: the building
// width for front/back walls and the length for left/right walls.
func WallSpan(d Dimensions, w WallPosition) float64 {
	if w.IsGableEnd() {
		return d.Width
	}
	return d.Length
}

// Affects reports whether changing the named dimension changes the wall.
// Height affects every wall.
func (w WallPosition) Affects(kind DimensionKind) bool {
	switch kind {
	case DimensionHeight:
		return true
	case DimensionWidth:
		return w.IsGableEnd()
	case DimensionLength:
		return !w.IsGableEnd()
	}
	return false
}

// ---------------------------------------------------------------------------
// Features (wall openings)
// ---------------------------------------------------------------------------

// Alignment selects the reference point for a feature's horizontal offset.
type Alignment string

const (
	AlignLeft   Alignment = "left"   // offset measured from the left edge
	AlignCenter Alignment = "center" // offset measured from the wall centre
	AlignRight  Alignment = "right"  // offset measured from the right edge
)

// ParseAlignment converts a user-supplied name to an Alignment.
func ParseAlignment(s string) (Alignment, error) {
	switch a := Alignment(s); a {
	case AlignLeft, AlignCenter, AlignRight:
		return a, nil
	}
	return "", fmt.Errorf("invalid alignment %q, expected left, center or right", s)
}

// FeatureType enumerates wall opening kinds.
type FeatureType string

const (
	FeatureDoor       FeatureType = "door"
	FeatureWindow     FeatureType = "window"
	FeatureRollupDoor FeatureType = "rollupDoor"
	FeatureWalkDoor   FeatureType = "walkDoor"
)

// IsDoor reports whether the feature uses door clearance rules.
func (t FeatureType) IsDoor() bool {
	return t == FeatureDoor || t == FeatureRollupDoor || t == FeatureWalkDoor
}

// FeaturePosition places a feature in its wall's local frame: x runs along
// the wall (interpreted per Alignment), y is height above the floor.
type FeaturePosition struct {
	Wall      WallPosition `json:"wall"`
	XOffset   float64      `json:"x_offset"`
	YOffset   float64      `json:"y_offset"`
	Alignment Alignment    `json:"alignment"`
}

// BoundsLock records the locked interval a feature holds on its wall.
type BoundsLock struct {
	LockID        string  `json:"lock_id"`
	StartPosition float64 `json:"start_position"`
	EndPosition   float64 `json:"end_position"`
}

// WallFeature is a door or window cut into an exterior wall.
type WallFeature struct {
	ID         string          `json:"id"`
	Type       FeatureType     `json:"type"`
	Width      float64         `json:"width"`
	Height     float64         `json:"height"`
	Position   FeaturePosition `json:"position"`
	IsLocked   bool            `json:"is_locked,omitempty"`
	BoundsLock *BoundsLock     `json:"bounds_lock,omitempty"`
}

// Label returns a short human-readable name such as "door 'main'".
func (f WallFeature) Label() string {
	return fmt.Sprintf("%s '%s'", f.Type, f.ID)
}

// FeaturesOnWall returns the features placed on the given wall, preserving
// input order.
func FeaturesOnWall(features []WallFeature, w WallPosition) []WallFeature {
	var out []WallFeature
	for _, f := range features {
		if f.Position.Wall == w {
			out = append(out, f)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Skylights
// ---------------------------------------------------------------------------

// Panel identifies one sloped half of a gable roof.
type Panel string

const (
	PanelLeft  Panel = "left"
	PanelRight Panel = "right"
)

// ParsePanel converts a user-supplied name to a Panel.
func ParsePanel(s string) (Panel, error) {
	switch p := Panel(s); p {
	case PanelLeft, PanelRight:
		return p, nil
	}
	return "", fmt.Errorf("invalid panel %q, expected left or right", s)
}

// Skylight is a roof opening. XOffset is measured across the panel from the
// panel centre; YOffset is measured along the ridge from its midpoint.
type Skylight struct {
	Width   float64 `json:"width"`
	Length  float64 `json:"length"`
	XOffset float64 `json:"x_offset"`
	YOffset float64 `json:"y_offset"`
	Panel   Panel   `json:"panel"`
}
