// Package tessellate builds the building shell from a project and meshes
// it with a geometry kernel: one solid per wall with its openings cut
// out, plus the floor slab.
//
// World frame: x runs across the building width, y along its length and z
// up from the floor. Each wall's span coordinate runs left to right as
// seen from outside the building.
package tessellate

import (
	"fmt"

	"github.com/chazu/bayframe/pkg/building"
	"github.com/chazu/bayframe/pkg/geom"
	"github.com/chazu/bayframe/pkg/kernel"
	"github.com/chazu/bayframe/pkg/project"
)

const (
	// WallThickness is the exterior wall thickness in feet.
	WallThickness = 0.67

	// SlabThickness is the floor slab thickness in feet.
	SlabThickness = 0.33

	// cutMargin extends opening cutters past the wall faces so the
	// difference leaves no skin.
	cutMargin = 0.5
)

// PartName returns the mesh name used for a wall.
func PartName(w building.WallPosition) string {
	return string(w) + "-wall"
}

// FloorPart is the mesh name of the floor slab.
const FloorPart = "floor"

// Tessellate returns one mesh per wall, in building.AllWalls order,
// followed by the floor. The project is not modified. Features with a
// non-positive size are skipped.
func Tessellate(p *project.Project, k kernel.Kernel) ([]*kernel.Mesh, error) {
	if p == nil {
		return nil, nil
	}

	var meshes []*kernel.Mesh
	for _, w := range building.AllWalls {
		solid, err := wallSolid(p, k, w)
		if err != nil {
			return nil, fmt.Errorf("tessellate: %s wall: %w", w, err)
		}
		mesh, err := k.ToMesh(solid)
		if err != nil {
			return nil, fmt.Errorf("tessellate: ToMesh failed for %s wall: %w", w, err)
		}
		mesh.Part = PartName(w)
		meshes = append(meshes, mesh)
	}

	d := p.Dimensions
	slab, err := k.Box(d.Width, d.Length, SlabThickness)
	if err != nil {
		return nil, fmt.Errorf("tessellate: floor: %w", err)
	}
	mesh, err := k.ToMesh(k.Translate(slab, 0, 0, -SlabThickness))
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed for floor: %w", err)
	}
	mesh.Part = FloorPart
	return append(meshes, mesh), nil
}

// wallSolid builds wall w as a box with each of its openings subtracted.
func wallSolid(p *project.Project, k kernel.Kernel, w building.WallPosition) (kernel.Solid, error) {
	d := p.Dimensions
	span := building.WallSpan(d, w)

	var solid kernel.Solid
	var err error
	if w.IsGableEnd() {
		solid, err = k.Box(span, WallThickness, d.Height)
	} else {
		solid, err = k.Box(WallThickness, span, d.Height)
	}
	if err != nil {
		return nil, err
	}
	solid = placeWall(k, solid, w, d)

	for _, f := range building.FeaturesOnWall(p.Features, w) {
		if f.Width <= 0 || f.Height <= 0 {
			continue
		}
		cut, err := cutter(k, f, w, d)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", f.ID, err)
		}
		solid = k.Difference(solid, cut)
	}
	return solid, nil
}

// placeWall moves a wall box from the origin to its place in the shell.
func placeWall(k kernel.Kernel, s kernel.Solid, w building.WallPosition, d building.Dimensions) kernel.Solid {
	switch w {
	case building.WallBack:
		return k.Translate(s, 0, d.Length-WallThickness, 0)
	case building.WallRight:
		return k.Translate(s, d.Width-WallThickness, 0, 0)
	}
	return s
}

// cutter returns the solid removed from wall w for feature f. It passes
// through the wall's thickness with cutMargin to spare on each face, and
// reaches below the floor when the opening starts at floor level.
func cutter(k kernel.Kernel, f building.WallFeature, w building.WallPosition, d building.Dimensions) (kernel.Solid, error) {
	start, end := geom.SpanInterval(f, building.WallSpan(d, w))
	bottom := f.Position.YOffset
	height := f.Height
	if bottom <= 0 {
		height += cutMargin - bottom
		bottom = -cutMargin
	}
	depth := WallThickness + 2*cutMargin

	var box kernel.Solid
	var err error
	if w.IsGableEnd() {
		box, err = k.Box(f.Width, depth, height)
	} else {
		box, err = k.Box(depth, f.Width, height)
	}
	if err != nil {
		return nil, err
	}

	switch w {
	case building.WallFront:
		return k.Translate(box, start, -cutMargin, bottom), nil
	case building.WallBack:
		return k.Translate(box, d.Width-end, d.Length-WallThickness-cutMargin, bottom), nil
	case building.WallLeft:
		return k.Translate(box, -cutMargin, d.Length-end, bottom), nil
	default:
		return k.Translate(box, d.Width-WallThickness-cutMargin, start, bottom), nil
	}
}
