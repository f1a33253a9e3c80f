package skylight

import (
	"math"
	"strings"
	"testing"

	"github.com/chazu/bayframe/pkg/building"
)

func roof40x60() building.Dimensions {
	return building.Dimensions{Width: 40, Length: 60, Height: 12, RoofPitch: 4}
}

func hasMessage(msgs []string, substr string) bool {
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func TestValidateSkylight_TooWide(t *testing.T) {
	s := building.Skylight{Width: 22, Length: 4, Panel: building.PanelLeft}
	res := ValidateSkylight(s, roof40x60())
	if res.Valid {
		t.Fatal("expected invalid")
	}
	want := "Skylight width (22ft) exceeds maximum allowed for left panel (18ft)"
	if !hasMessage(res.Errors, want) {
		t.Errorf("missing %q in %v", want, res.Errors)
	}
}

func TestValidateSkylight_InBounds(t *testing.T) {
	s := building.Skylight{Width: 2, Length: 4, XOffset: 0, YOffset: 0, Panel: building.PanelRight}
	res := ValidateSkylight(s, roof40x60())
	if !res.Valid {
		t.Fatalf("expected valid, got %v", res.Errors)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

func TestValidateSkylight_PlacementOverflow(t *testing.T) {
	tests := []struct {
		name string
		s    building.Skylight
		want string
	}{
		{"eave side", building.Skylight{Width: 4, Length: 4, XOffset: -8, Panel: building.PanelLeft}, "1.00ft past the eave-side margin"},
		{"ridge side", building.Skylight{Width: 4, Length: 4, XOffset: 8.5, Panel: building.PanelLeft}, "1.50ft past the ridge-side margin"},
		{"front", building.Skylight{Width: 4, Length: 4, YOffset: -28, Panel: building.PanelRight}, "1.00ft past the front margin"},
		{"back", building.Skylight{Width: 4, Length: 4, YOffset: 30, Panel: building.PanelRight}, "3.00ft past the back margin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateSkylight(tt.s, roof40x60())
			if res.Valid {
				t.Fatal("expected invalid")
			}
			if !hasMessage(res.Errors, tt.want) {
				t.Errorf("missing %q in %v", tt.want, res.Errors)
			}
		})
	}
}

func TestValidateSkylight_NearMarginWarning(t *testing.T) {
	s := building.Skylight{Width: 4, Length: 4, XOffset: 6.75, Panel: building.PanelLeft}
	res := ValidateSkylight(s, roof40x60())
	if !res.Valid {
		t.Fatalf("expected valid, got %v", res.Errors)
	}
	if !hasMessage(res.Warnings, "0.25ft inside the ridge-side margin") {
		t.Errorf("expected near-margin warning, got %v", res.Warnings)
	}
}

func TestValidateSkylight_FlushWithMargin(t *testing.T) {
	// Right edge sits exactly on the ridge-side margin.
	s := building.Skylight{Width: 4, Length: 4, XOffset: 7, Panel: building.PanelLeft}
	res := ValidateSkylight(s, roof40x60())
	if !res.Valid {
		t.Fatalf("expected valid, got %v", res.Errors)
	}
	if hasMessage(res.Warnings, "ridge-side") {
		t.Errorf("flush skylight should not warn, got %v", res.Warnings)
	}
}

func TestCheckOverlap(t *testing.T) {
	a := building.Skylight{Width: 4, Length: 4, XOffset: 0, YOffset: 0, Panel: building.PanelLeft}
	b := building.Skylight{Width: 4, Length: 4, XOffset: 2, YOffset: 2, Panel: building.PanelLeft}

	o := CheckOverlap(a, b)
	if !o.Overlaps || o.OverlapArea != 4 {
		t.Errorf("got %+v, want overlap area 4", o)
	}

	c := building.Skylight{Width: 4, Length: 4, XOffset: 4, YOffset: 0, Panel: building.PanelLeft}
	if CheckOverlap(a, c).Overlaps {
		t.Error("edge-touching skylights must not overlap")
	}
}

func TestCheckOverlap_PanelIndependence(t *testing.T) {
	a := building.Skylight{Width: 4, Length: 4, XOffset: 1, YOffset: 3, Panel: building.PanelLeft}
	b := a
	b.Panel = building.PanelRight
	if o := CheckOverlap(a, b); o.Overlaps || o.OverlapArea != 0 {
		t.Errorf("identical skylights on opposite panels overlapped: %+v", o)
	}
}

func TestValidateAll(t *testing.T) {
	skylights := []building.Skylight{
		{Width: 4, Length: 4, XOffset: 0, YOffset: 0, Panel: building.PanelLeft},
		{Width: 4, Length: 4, XOffset: 0, YOffset: 0, Panel: building.PanelRight},
		{Width: 4, Length: 4, XOffset: 1, YOffset: 1, Panel: building.PanelLeft},
		{Width: 30, Length: 4, XOffset: 0, YOffset: 20, Panel: building.PanelRight},
	}
	res := ValidateAll(skylights, roof40x60())
	if res.Valid {
		t.Fatal("expected invalid")
	}
	if len(res.SkylightValidations) != 4 {
		t.Fatalf("expected 4 per-skylight results, got %d", len(res.SkylightValidations))
	}
	if len(res.Overlaps) != 1 || res.Overlaps[0].First != 0 || res.Overlaps[0].Second != 2 {
		t.Errorf("expected a single overlap between 0 and 2, got %+v", res.Overlaps)
	}
	if !hasMessage(res.Errors, "Skylight 1 overlaps skylight 3 on the left panel (9.00 sq ft)") {
		t.Errorf("missing overlap message in %v", res.Errors)
	}
	if !hasMessage(res.Errors, "Skylight 4: Skylight width (30ft)") {
		t.Errorf("missing size error for skylight 4 in %v", res.Errors)
	}
}

func TestMaxAllowedDimensions(t *testing.T) {
	got := MaxAllowedDimensions(building.PanelLeft, 0, 0, roof40x60())
	if got.MaxWidth != 18 || got.MaxLength != 58 {
		t.Errorf("centred max = %+v, want 18x58", got)
	}
	got = MaxAllowedDimensions(building.PanelLeft, 7, 28, roof40x60())
	if got.MaxWidth != 4 || got.MaxLength != 2 {
		t.Errorf("offset max = %+v, want 4x2", got)
	}
}

func TestSuggestPosition(t *testing.T) {
	d := roof40x60()

	valid := building.Skylight{Width: 2, Length: 4, XOffset: 1, YOffset: -3, Panel: building.PanelLeft}
	if sg := SuggestPosition(valid, d); len(sg.Adjustments) != 0 || sg.Apply(valid) != valid {
		t.Errorf("valid skylight should be unchanged, got %+v", sg)
	}

	wide := building.Skylight{Width: 22, Length: 4, Panel: building.PanelLeft}
	sg := SuggestPosition(wide, d)
	if want := 18 * SuggestShrinkRatio; math.Abs(sg.SuggestedWidth-want) > 1e-9 {
		t.Errorf("width = %v, want %v", sg.SuggestedWidth, want)
	}

	cases := []building.Skylight{
		wide,
		{Width: 4, Length: 4, XOffset: -8, Panel: building.PanelLeft},
		{Width: 4, Length: 4, XOffset: 8.5, YOffset: 29, Panel: building.PanelRight},
		{Width: 17.5, Length: 70, XOffset: 3, YOffset: -10, Panel: building.PanelRight},
	}
	for i, s := range cases {
		sg := SuggestPosition(s, d)
		if res := ValidateSkylight(sg.Apply(s), d); !res.Valid {
			t.Errorf("case %d: suggestion %+v still invalid: %v", i, sg, res.Errors)
		}
	}

	snapped := SuggestPosition(cases[1], d)
	if snapped.SuggestedXOffset != -9+2+SnapOffset {
		t.Errorf("x offset = %v, want %v", snapped.SuggestedXOffset, -9+2+SnapOffset)
	}
}
