package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/bayframe/pkg/building"
	"github.com/chazu/bayframe/pkg/kernel/sdfx"
)

const shedScript = `(building "shed" :width 12 :length 16 :height 10)
(door "main" :wall :front :width 3 :height 7)
(window "w1" :wall :left :width 3 :height 3 :align :left :x 2 :y 3)
`

// newTestApp meshes coarsely so the full pipeline stays fast.
func newTestApp() *App {
	return NewAppWithKernel(sdfx.NewWithCells(64), building.DefaultCodeRequirements())
}

// TestE2EShed exercises the full pipeline: script -> engine -> project ->
// check -> tessellate -> meshes. This is the path the Wails Evaluate binding
// takes, without the Wails runtime.
func TestE2EShed(t *testing.T) {
	app := newTestApp()
	result := app.Evaluate(shedScript)

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}

	if result.Project == nil || result.Project.Name != "shed" {
		t.Fatalf("project = %+v", result.Project)
	}
	if result.Check == nil || !result.Check.Valid {
		t.Errorf("check = %+v", result.Check)
	}

	expectedParts := map[string]bool{
		"front-wall": false,
		"back-wall":  false,
		"left-wall":  false,
		"right-wall": false,
		"floor":      false,
	}
	if len(result.Meshes) != len(expectedParts) {
		t.Fatalf("expected %d meshes, got %d", len(expectedParts), len(result.Meshes))
	}
	for _, m := range result.Meshes {
		if _, ok := expectedParts[m.PartName]; !ok {
			t.Errorf("unexpected part name: %q", m.PartName)
			continue
		}
		expectedParts[m.PartName] = true

		if len(m.Vertices) == 0 || len(m.Normals) == 0 || len(m.Indices) == 0 {
			t.Errorf("part %q: empty geometry", m.PartName)
		}
		if m.Color == "" {
			t.Errorf("part %q: no color assigned", m.PartName)
		}
	}
	for name, found := range expectedParts {
		if !found {
			t.Errorf("missing mesh for part %q", name)
		}
	}
}

// TestE2EEmptySource ensures blank input clears the view without errors.
func TestE2EEmptySource(t *testing.T) {
	app := newTestApp()
	for _, src := range []string{"", "   \n\t"} {
		result := app.Evaluate(src)
		if len(result.Errors) != 0 || len(result.Meshes) != 0 {
			t.Errorf("Evaluate(%q) = %d errors, %d meshes", src, len(result.Errors), len(result.Meshes))
		}
		// Slices must be non-nil so JSON serializes [] rather than null.
		if result.Meshes == nil || result.Errors == nil {
			t.Errorf("Evaluate(%q): nil slices", src)
		}
		if result.Project != nil {
			t.Errorf("Evaluate(%q): unexpected project", src)
		}
	}
}

// TestE2ESyntaxError ensures eval errors are reported, not fatal errors.
func TestE2ESyntaxError(t *testing.T) {
	app := newTestApp()
	result := app.Evaluate("(building :width 12)\n(door \"d\"")

	if len(result.Errors) == 0 {
		t.Fatal("expected eval errors for syntax error")
	}
	if result.Errors[0].Message == "" {
		t.Error("syntax error should have a non-empty message")
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes on error, got %d", len(result.Meshes))
	}
}

func TestE2EInvalidFeatureStillMeshes(t *testing.T) {
	app := newTestApp()
	result := app.Evaluate(`(building :width 12 :length 16 :height 10)
(door "high" :wall :back :width 3 :height 7 :y 5)`)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected eval errors: %v", result.Errors)
	}
	if result.Check == nil || result.Check.Valid {
		t.Fatalf("expected failed check, got %+v", result.Check)
	}
	if len(result.Meshes) != 5 {
		t.Errorf("expected 5 meshes, got %d", len(result.Meshes))
	}
}

func TestValidateDimensionChange(t *testing.T) {
	app := newTestApp()

	if _, err := app.ValidateDimensionChange("front", "width", 10); !errors.Is(err, errNoProject) {
		t.Fatalf("err = %v, want errNoProject", err)
	}

	if r := app.Evaluate(shedScript); len(r.Errors) != 0 {
		t.Fatalf("evaluate: %v", r.Errors)
	}

	res, err := app.ValidateDimensionChange("front", "width", 2)
	if err != nil {
		t.Fatalf("ValidateDimensionChange: %v", err)
	}
	if res.CanModify {
		t.Errorf("shrinking the front wall to 2ft should be blocked: %+v", res)
	}

	res, err = app.ValidateDimensionChange("front", "width", 20)
	if err != nil || !res.CanModify {
		t.Errorf("widening: %+v, %v", res, err)
	}

	if _, err := app.ValidateDimensionChange("roof", "width", 20); err == nil {
		t.Error("expected error for unknown wall")
	}
	if _, err := app.ValidateDimensionChange("front", "depth", 20); err == nil {
		t.Error("expected error for unknown dimension")
	}
}

func TestSuggestFeature(t *testing.T) {
	app := newTestApp()
	if r := app.Evaluate(shedScript); len(r.Errors) != 0 {
		t.Fatalf("evaluate: %v", r.Errors)
	}

	sg, err := app.SuggestFeature("main")
	if err != nil {
		t.Fatalf("SuggestFeature: %v", err)
	}
	if len(sg.Adjustments) != 0 {
		t.Errorf("in-bounds door should need no adjustments: %v", sg.Adjustments)
	}
	if _, err := app.SuggestFeature("missing"); err == nil {
		t.Error("expected error for unknown feature")
	}
}

func TestDefaultLayout(t *testing.T) {
	l := newTestApp().DefaultLayout(30, 20)
	if len(l.Segments) != 5 || l.RoomWidth != 30 {
		t.Errorf("DefaultLayout = %+v", l)
	}
}

func TestE2ERapidEvaluation(t *testing.T) {
	// Sequential calls on one App, alternating valid, invalid and blank
	// sources; none may panic.
	app := newTestApp()
	sources := []string{
		shedScript,
		`(door "d"`,
		``,
		`(building :width 12 :length 16 :height 10)`,
		`(window :wall :top :width 3 :height 3)`,
		shedScript,
	}
	for i, source := range sources {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("iteration %d panicked: %v", i, r)
				}
			}()
			_ = app.Evaluate(source)
		}()
	}
}

func TestE2EWorkshopExample(t *testing.T) {
	source, err := os.ReadFile(filepath.Join("..", "..", "examples", "workshop.bay"))
	if err != nil {
		t.Fatalf("failed to read workshop.bay: %v", err)
	}

	app := NewAppWithKernel(sdfx.NewWithCells(128), building.DefaultCodeRequirements())
	result := app.Evaluate(string(source))
	if len(result.Errors) > 0 {
		t.Fatalf("errors: %v", result.Errors)
	}
	if !result.Check.Valid {
		t.Errorf("workshop should pass every check: %v", result.Check.Errors)
	}
	if result.Project.Layout == nil || len(result.Project.Layout.Segments) != 1 {
		t.Errorf("layout = %+v", result.Project.Layout)
	}
	if len(result.Meshes) != 5 {
		t.Errorf("expected 5 meshes, got %d", len(result.Meshes))
	}
}
