// Package kernel defines the solid-modelling interface the shell builder
// draws walls with. Implementations live in subpackages.
package kernel

// Solid is an opaque handle to a kernel solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel builds solids from boxes and booleans and meshes the result.
type Kernel interface {
	// Box returns a box with its minimum corner at the origin. Every
	// extent must be positive.
	Box(x, y, z float64) (Solid, error)

	// Union returns a ∪ b.
	Union(a, b Solid) Solid
	// Difference returns a - b.
	Difference(a, b Solid) Solid

	// Translate moves a solid by (x, y, z).
	Translate(s Solid, x, y, z float64) Solid

	// ToMesh tessellates a solid.
	ToMesh(s Solid) (*Mesh, error)
}
