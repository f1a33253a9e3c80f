// Package project defines the building aggregate produced by script
// evaluation and consumed by the check pipeline and front ends.
package project

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/chazu/bayframe/pkg/building"
	"github.com/chazu/bayframe/pkg/layout"
)

// DefaultDimensions are used until a script declares the building.
var DefaultDimensions = building.Dimensions{Width: 24, Length: 40, Height: 10, RoofPitch: 4}

// Project is one building: its envelope, the openings in its walls, its
// skylights and an optional interior partition layout. Each evaluation
// produces a new Project; callers treat it as a value.
type Project struct {
	Name       string                 `json:"name"`
	Dimensions building.Dimensions    `json:"dimensions"`
	Features   []building.WallFeature `json:"features"`
	Skylights  []building.Skylight    `json:"skylights"`
	Layout     *layout.WallLayout     `json:"layout,omitempty"`
}

// New creates an empty project with the default dimensions.
func New() *Project {
	return &Project{
		Dimensions: DefaultDimensions,
		Features:   []building.WallFeature{},
		Skylights:  []building.Skylight{},
	}
}

// AddFeature appends f. Feature ids must be unique within a project.
func (p *Project) AddFeature(f building.WallFeature) error {
	if _, ok := p.Feature(f.ID); ok {
		return fmt.Errorf("duplicate feature id %q", f.ID)
	}
	p.Features = append(p.Features, f)
	return nil
}

// Feature returns the feature with the given id.
func (p *Project) Feature(id string) (building.WallFeature, bool) {
	for _, f := range p.Features {
		if f.ID == id {
			return f, true
		}
	}
	return building.WallFeature{}, false
}

// AddSkylight appends s.
func (p *Project) AddSkylight(s building.Skylight) {
	p.Skylights = append(p.Skylights, s)
}

// EnsureLayout returns the project's partition layout, creating an empty
// one sized to the building if there is none.
func (p *Project) EnsureLayout() *layout.WallLayout {
	if p.Layout == nil {
		p.Layout = &layout.WallLayout{
			Segments:   []layout.WallSegment{},
			Gaps:       []layout.WallGap{},
			RoomWidth:  p.Dimensions.Width,
			RoomLength: p.Dimensions.Length,
		}
	}
	return p.Layout
}

// Decode reads a project from JSON. Missing collections decode as empty
// and missing dimensions keep the defaults.
func Decode(r io.Reader) (*Project, error) {
	p := New()
	if err := json.NewDecoder(r).Decode(p); err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}
	if p.Features == nil {
		p.Features = []building.WallFeature{}
	}
	if p.Skylights == nil {
		p.Skylights = []building.Skylight{}
	}
	return p, nil
}
