package engine

import (
	"strings"
	"testing"

	"github.com/chazu/bayframe/pkg/building"
	"github.com/chazu/bayframe/pkg/layout"
	"github.com/chazu/bayframe/pkg/project"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(building :width 24)`,
			expect: `(building "__kw_width" 24)`,
		},
		{
			name:   "keyword value",
			input:  `(door :wall :front)`,
			expect: `(door "__kw_wall" "__kw_front")`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(rollup-door :width 10)`,
			expect: `(rollup_door "__kw_width" 10)`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "negative number preserved",
			input:  `:y -3.5`,
			expect: `"__kw_y" -3.5`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Builtin tests
// ---------------------------------------------------------------------------

func mustEvaluate(t *testing.T, src string) *project.Project {
	t.Helper()
	p, evalErrs, err := NewEngine().Evaluate(src)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	return p
}

func evalErrorText(t *testing.T, src string) string {
	t.Helper()
	p, evalErrs, err := NewEngine().Evaluate(src)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if p != nil || len(evalErrs) == 0 {
		t.Fatalf("expected eval errors for %q", src)
	}
	var msgs []string
	for _, e := range evalErrs {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "\n")
}

const shopScript = `
; a small workshop
(building "shop" :width 30 :length 50 :height 14 :pitch 6)

(door "main" :wall :front :width 3 :height 7)
(window "w1" :wall :left :width 4 :height 3 :align :left :x 2 :y 3)
(rollup-door "bay" :wall :back :width 10 :height 10)
(walk-door :wall :right :width 3 :height 7 :align :right :x 1)

(skylight :panel :left :width 2 :length 4 :x 1 :y -3.5)

(room :width 30 :length 20)
(partition "office" :width 0.33 :position 7 :kind :interior)
(gap "entry" :width 3 :position 10 :purpose :doorway)
`

func TestBuildingScript(t *testing.T) {
	p := mustEvaluate(t, shopScript)

	if p.Name != "shop" {
		t.Errorf("Name = %q", p.Name)
	}
	want := building.Dimensions{Width: 30, Length: 50, Height: 14, RoofPitch: 6}
	if p.Dimensions != want {
		t.Errorf("Dimensions = %+v, want %+v", p.Dimensions, want)
	}

	if len(p.Features) != 4 {
		t.Fatalf("got %d features, want 4", len(p.Features))
	}
	main, ok := p.Feature("main")
	if !ok {
		t.Fatal("missing feature main")
	}
	if main.Type != building.FeatureDoor || main.Position.Wall != building.WallFront ||
		main.Position.Alignment != building.AlignCenter {
		t.Errorf("main = %+v", main)
	}
	w1, _ := p.Feature("w1")
	if w1.Position.Alignment != building.AlignLeft || w1.Position.XOffset != 2 || w1.Position.YOffset != 3 {
		t.Errorf("w1 position = %+v", w1.Position)
	}
	bay, _ := p.Feature("bay")
	if bay.Type != building.FeatureRollupDoor {
		t.Errorf("bay type = %q", bay.Type)
	}
	walk := p.Features[3]
	if walk.Type != building.FeatureWalkDoor || len(walk.ID) != 36 {
		t.Errorf("anonymous walk door = %+v", walk)
	}

	if len(p.Skylights) != 1 {
		t.Fatalf("got %d skylights, want 1", len(p.Skylights))
	}
	if s := p.Skylights[0]; s.Panel != building.PanelLeft || s.YOffset != -3.5 || s.Length != 4 {
		t.Errorf("skylight = %+v", s)
	}

	if p.Layout == nil {
		t.Fatal("expected a layout")
	}
	if p.Layout.RoomWidth != 30 || p.Layout.RoomLength != 20 {
		t.Errorf("room = %vx%v", p.Layout.RoomWidth, p.Layout.RoomLength)
	}
	if len(p.Layout.Segments) != 1 || p.Layout.Segments[0].Type != layout.SegmentInterior {
		t.Errorf("segments = %+v", p.Layout.Segments)
	}
	if len(p.Layout.Gaps) != 1 || p.Layout.Gaps[0].Purpose != layout.GapDoorway {
		t.Errorf("gaps = %+v", p.Layout.Gaps)
	}
}

func TestBuildingDefaults(t *testing.T) {
	p := mustEvaluate(t, `(door "d" :wall :left :width 3 :height 7)`)
	if p.Dimensions != project.DefaultDimensions {
		t.Errorf("Dimensions = %+v", p.Dimensions)
	}

	p = mustEvaluate(t, `(building :height 12)`)
	if p.Dimensions.Width != 24 || p.Dimensions.Height != 12 {
		t.Errorf("partial building = %+v", p.Dimensions)
	}
}

func TestPartitionDefaults(t *testing.T) {
	p := mustEvaluate(t, `(building :width 20 :length 30)
(partition :position 5)`)
	seg := p.Layout.Segments[0]
	if seg.Type != layout.SegmentPartition || seg.Width != layout.InteriorThickness || seg.Thickness != seg.Width {
		t.Errorf("segment = %+v", seg)
	}
	if seg.ID == "" {
		t.Error("anonymous partition needs an id")
	}
	if p.Layout.RoomWidth != 20 {
		t.Errorf("layout should take the building width, got %v", p.Layout.RoomWidth)
	}
}

func TestRoomSizeSurvivesBuilding(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		wantWidth  float64
		wantLength float64
	}{
		{"room first", `(room :width 30 :length 16)
(building :width 24 :length 40 :height 12)`, 30, 16},
		{"partition first", `(partition :position 5)
(building :width 20 :length 30 :height 12)`, 20, 30},
		{"building first", `(building :width 24 :length 40 :height 12)
(room :width 18)`, 18, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustEvaluate(t, tt.src)
			if p.Layout == nil {
				t.Fatal("expected a layout")
			}
			if p.Layout.RoomWidth != tt.wantWidth || p.Layout.RoomLength != tt.wantLength {
				t.Errorf("room = %vx%v, want %vx%v", p.Layout.RoomWidth, p.Layout.RoomLength, tt.wantWidth, tt.wantLength)
			}
		})
	}
}

func TestBuiltinErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"missing wall", `(door "d" :width 3 :height 7)`, "requires :wall"},
		{"bad wall", `(window "w" :wall :top :width 3 :height 3)`, "invalid wall"},
		{"bad alignment", `(door "d" :wall :front :align :middle :width 3 :height 7)`, "invalid alignment"},
		{"zero size", `(door "d" :wall :front :width 0 :height 7)`, "positive :width"},
		{"non-numeric", `(door "d" :wall :front :width "wide" :height 7)`, "expected number"},
		{"duplicate id", `(door "d" :wall :front :width 3 :height 7)
(window "d" :wall :back :width 3 :height 3)`, "duplicate feature id"},
		{"missing panel", `(skylight :width 2 :length 4)`, "requires :panel"},
		{"bad purpose", `(gap :width 3 :purpose :hallway)`, "invalid gap purpose"},
		{"bad kind", `(partition :kind :load-bearing)`, "invalid segment type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evalErrorText(t, tt.src); !strings.Contains(got, tt.want) {
				t.Errorf("errors %q do not mention %q", got, tt.want)
			}
		})
	}
}
