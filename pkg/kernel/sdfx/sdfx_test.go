package sdfx

import (
	"math"
	"testing"

	"github.com/chazu/bayframe/pkg/kernel"
)

// testCells keeps marching cubes quick in tests while resolving a wall's
// thickness.
const testCells = 96

func mustBox(t *testing.T, k *SdfxKernel, x, y, z float64) kernel.Solid {
	t.Helper()
	b, err := k.Box(x, y, z)
	if err != nil {
		t.Fatalf("Box(%v, %v, %v): %v", x, y, z, err)
	}
	return b
}

func TestBox(t *testing.T) {
	k := NewWithCells(testCells)
	box, err := k.Box(24, 0.67, 10)
	if err != nil {
		t.Fatalf("Box: %v", err)
	}
	mesh, err := k.ToMesh(box)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != mesh.TriangleCount()*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), mesh.TriangleCount()*3)
	}
}

func TestBoxRejectsNonPositive(t *testing.T) {
	k := New()
	for _, dims := range [][3]float64{{0, 1, 1}, {1, -1, 1}, {1, 1, 0}} {
		if _, err := k.Box(dims[0], dims[1], dims[2]); err == nil {
			t.Errorf("Box%v: expected error", dims)
		}
	}
}

func TestBoxMinCorner(t *testing.T) {
	k := New()
	box := mustBox(t, k, 100, 50, 25)
	min, max := box.BoundingBox()

	const tol = 0.01
	expectMax := [3]float64{100, 50, 25}
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]) > tol {
			t.Errorf("min[%d] = %f, expected 0", i, min[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	k := New()
	box := mustBox(t, k, 10, 10, 10)
	min, max := k.Translate(box, 100, 200, 300).BoundingBox()

	const tol = 0.01
	expectMin := [3]float64{100, 200, 300}
	expectMax := [3]float64{110, 210, 310}
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestDifference(t *testing.T) {
	k := NewWithCells(testCells)

	wall := mustBox(t, k, 24, 0.67, 10)
	door := mustBox(t, k, 3, 2, 7.5)
	cut := k.Difference(wall, k.Translate(door, 10.5, -0.5, -0.5))
	mesh, err := k.ToMesh(cut)
	if err != nil {
		t.Fatalf("ToMesh(cut) failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("difference mesh is empty")
	}

	// The opening spans x 10.5..13.5 and z 0..7: its middle has no surface.
	for v := 0; v+2 < len(mesh.Vertices); v += 3 {
		x, z := mesh.Vertices[v], mesh.Vertices[v+2]
		if x > 11 && x < 13 && z < 6.5 {
			t.Fatalf("vertex (%v, %v, %v) lies inside the opening", x, mesh.Vertices[v+1], z)
		}
	}
}

func TestUnion(t *testing.T) {
	k := NewWithCells(testCells)
	a := mustBox(t, k, 10, 10, 10)
	b := mustBox(t, k, 10, 10, 10)
	u := k.Union(a, k.Translate(b, 20, 0, 0))

	min, max := u.BoundingBox()
	if math.Abs(min[0]) > 0.01 || math.Abs(max[0]-30) > 0.01 {
		t.Errorf("union x extent = [%f, %f], want [0, 30]", min[0], max[0])
	}

	mesh, err := k.ToMesh(u)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("union mesh is empty")
	}
}

func TestNewWithCellsFloor(t *testing.T) {
	if k := NewWithCells(1); k.cells != 8 {
		t.Errorf("cells = %d, want 8", k.cells)
	}
}
