package feature

import (
	"strings"
	"testing"

	"github.com/chazu/bayframe/pkg/building"
)

func wall24x10() building.Dimensions {
	return building.Dimensions{Width: 24, Length: 40, Height: 10, RoofPitch: 4}
}

func makeFeature(id string, typ building.FeatureType, w, h float64, wall building.WallPosition, align building.Alignment, x, y float64) building.WallFeature {
	return building.WallFeature{
		ID: id, Type: typ, Width: w, Height: h,
		Position: building.FeaturePosition{Wall: wall, XOffset: x, YOffset: y, Alignment: align},
	}
}

// hasMessage returns true if any entry in msgs contains substr.
func hasMessage(msgs []string, substr string) bool {
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func TestValidateFeature_CenteredDoor(t *testing.T) {
	f := makeFeature("main", building.FeatureDoor, 3, 7, building.WallFront, building.AlignCenter, 0, 0)
	res := ValidateFeature(f, wall24x10())

	if !res.Valid {
		t.Fatalf("expected valid, got errors %v", res.Errors)
	}
	p := res.FeaturePosition
	if p.Left != -1.5 || p.Right != 1.5 || p.Bottom != 0 || p.Top != 7 {
		t.Errorf("position = %+v, want left=-1.5 right=1.5 bottom=0 top=7", p)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

func TestValidateFeature_AboveWallTop(t *testing.T) {
	f := makeFeature("main", building.FeatureDoor, 3, 7, building.WallFront, building.AlignCenter, 0, 4)
	res := ValidateFeature(f, wall24x10())

	if res.Valid {
		t.Fatal("expected invalid result")
	}
	if len(res.Errors) != 1 {
		t.Fatalf("expected exactly one error, got %v", res.Errors)
	}
	if !strings.Contains(res.Errors[0], "1.00ft") || !strings.Contains(res.Errors[0], "above the top") {
		t.Errorf("error should cite a 1.00ft overhang above the top: %q", res.Errors[0])
	}
}

func TestValidateFeature_Overflows(t *testing.T) {
	tests := []struct {
		name    string
		feature building.WallFeature
		want    []string
	}{
		{
			name:    "left edge",
			feature: makeFeature("w", building.FeatureWindow, 4, 3, building.WallFront, building.AlignCenter, -11, 3),
			want:    []string{"1.00ft beyond the left edge"},
		},
		{
			name:    "right edge from right alignment",
			feature: makeFeature("w", building.FeatureWindow, 4, 3, building.WallFront, building.AlignRight, -2, 3),
			want:    []string{"2.00ft beyond the right edge"},
		},
		{
			name:    "below floor",
			feature: makeFeature("w", building.FeatureWindow, 4, 3, building.WallLeft, building.AlignLeft, 5, -0.5),
			want:    []string{"0.50ft below the floor"},
		},
		{
			name:    "wider than wall",
			feature: makeFeature("r", building.FeatureRollupDoor, 30, 8, building.WallFront, building.AlignCenter, 0, 0),
			want:    []string{"3.00ft beyond the left edge", "3.00ft beyond the right edge"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateFeature(tt.feature, wall24x10())
			if res.Valid {
				t.Fatal("expected invalid")
			}
			for _, w := range tt.want {
				if !hasMessage(res.Errors, w) {
					t.Errorf("missing error containing %q in %v", w, res.Errors)
				}
			}
		})
	}
}

func TestValidateFeature_NearEdgeWarning(t *testing.T) {
	// Left-aligned 0.25ft from the left edge: in bounds, but tight.
	f := makeFeature("w", building.FeatureWindow, 4, 3, building.WallFront, building.AlignLeft, 0.25, 3)
	res := ValidateFeature(f, wall24x10())
	if !res.Valid {
		t.Fatalf("warnings must not block: %v", res.Errors)
	}
	if !hasMessage(res.Warnings, "0.25ft from the left edge") {
		t.Errorf("expected left edge warning, got %v", res.Warnings)
	}
}

func TestValidateAll(t *testing.T) {
	features := []building.WallFeature{
		makeFeature("ok", building.FeatureDoor, 3, 7, building.WallFront, building.AlignCenter, 0, 0),
		makeFeature("tall", building.FeatureDoor, 3, 12, building.WallBack, building.AlignCenter, 0, 0),
	}
	res := ValidateAll(features, wall24x10())
	if res.Valid {
		t.Fatal("expected overall invalid")
	}
	if len(res.FeatureValidations) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(res.FeatureValidations))
	}
	if !res.FeatureValidations["ok"].Valid {
		t.Error("feature 'ok' should be valid on its own")
	}
	if res.FeatureValidations["tall"].Valid {
		t.Error("feature 'tall' should be invalid")
	}
	if !hasMessage(res.Errors, "door 'tall'") {
		t.Errorf("union should name the failing feature: %v", res.Errors)
	}
}

func TestValidateAll_DuplicateID(t *testing.T) {
	features := []building.WallFeature{
		makeFeature("d1", building.FeatureDoor, 3, 7, building.WallFront, building.AlignCenter, 0, 0),
		makeFeature("d1", building.FeatureDoor, 3, 12, building.WallBack, building.AlignCenter, 0, 0),
	}
	res := ValidateAll(features, wall24x10())
	if res.Valid {
		t.Fatal("a repeated id should invalidate the set")
	}
	if !hasMessage(res.Errors, `Duplicate feature id "d1" on the back wall`) {
		t.Errorf("expected duplicate id error, got %v", res.Errors)
	}
	if len(res.FeatureValidations) != 1 || !res.FeatureValidations["d1"].Valid {
		t.Errorf("first feature should keep its own result: %+v", res.FeatureValidations)
	}
}

func TestValidateAll_Empty(t *testing.T) {
	res := ValidateAll(nil, wall24x10())
	if !res.Valid || res.Errors == nil || res.Warnings == nil {
		t.Errorf("empty feature set should be valid with empty lists: %+v", res)
	}
}

func TestMaxAllowedDimensions(t *testing.T) {
	tests := []struct {
		name  string
		align building.Alignment
		x, y  float64
		wantW float64
		wantH float64
	}{
		{"center midpoint", building.AlignCenter, 0, 0, 24, 10},
		{"center offset", building.AlignCenter, 8, 2, 8, 8},
		{"left", building.AlignLeft, 4, 3, 20, 7},
		{"right", building.AlignRight, 6, 0, 18, 10},
		{"beyond edge clamps", building.AlignCenter, 15, 12, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaxAllowedDimensions(building.WallFront, tt.align, tt.x, tt.y, wall24x10())
			if got.MaxWidth != tt.wantW || got.MaxHeight != tt.wantH {
				t.Errorf("got %+v, want width=%v height=%v", got, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestAvailableSpace(t *testing.T) {
	s := AvailableSpace(building.WallFront, building.AlignLeft, 4, 3, wall24x10())
	if s.LeftSpace != 4 || s.RightSpace != 20 || s.BottomSpace != 3 || s.TopSpace != 7 {
		t.Errorf("left-aligned space = %+v", s)
	}
	s = AvailableSpace(building.WallFront, building.AlignRight, 4, 3, wall24x10())
	if s.LeftSpace != 20 || s.RightSpace != 4 {
		t.Errorf("right-aligned space = %+v", s)
	}
	s = AvailableSpace(building.WallFront, building.AlignCenter, -14, 11, wall24x10())
	if s.LeftSpace != 0 || s.RightSpace != 26 || s.TopSpace != 0 {
		t.Errorf("out-of-wall point should clamp to zero: %+v", s)
	}
}
