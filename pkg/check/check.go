// Package check runs every validator over a whole project. It is the
// single entry point the CLI, HTTP API and desktop shell share.
package check

import (
	"fmt"

	"github.com/chazu/bayframe/pkg/building"
	"github.com/chazu/bayframe/pkg/feature"
	"github.com/chazu/bayframe/pkg/height"
	"github.com/chazu/bayframe/pkg/layout"
	"github.com/chazu/bayframe/pkg/lock"
	"github.com/chazu/bayframe/pkg/project"
	"github.com/chazu/bayframe/pkg/skylight"
)

// Result carries the outcome of every stage plus a flattened report of
// all their findings.
type Result struct {
	building.Report
	Features    feature.AllResult                                   `json:"features"`
	Skylights   skylight.AllResult                                  `json:"skylights"`
	WallHeights height.WallHeightResult                             `json:"wall_heights"`
	Protection  map[building.WallPosition]lock.WallBoundsProtection `json:"protection"`
	Layout      *layout.Result                                      `json:"layout,omitempty"`
}

// Run validates p in a fixed order: feature bounds, skylights, wall
// heights, wall protection and, when p has one, the partition layout.
// Protection restrictions are informational and never fail the run; a
// critical one is surfaced as a warning.
func Run(p *project.Project, code *building.CodeRequirements) Result {
	res := Result{Report: building.NewReport()}
	if p == nil {
		res.AddError("no project to check")
		return res
	}

	res.Features = feature.ValidateAll(p.Features, p.Dimensions)
	res.Merge(res.Features.Report)

	res.Skylights = skylight.ValidateAll(p.Skylights, p.Dimensions)
	res.Merge(res.Skylights.Report)

	res.WallHeights = height.ValidateWallHeights(p.Dimensions, p.Features, code)
	res.Merge(res.WallHeights.Report)

	res.Protection = lock.ProtectAll(p.Features, p.Dimensions)
	for _, w := range building.AllWalls {
		prot := res.Protection[w]
		if prot.IsLocked && prot.AvailableLength < lock.CriticalAvailableLength {
			res.AddWarning(fmt.Sprintf("The %s wall has only %.2fft unlocked; its width cannot change",
				w, prot.AvailableLength))
		}
	}

	if p.Layout != nil {
		lr := layout.ValidateWallPositioning(*p.Layout)
		res.Layout = &lr
		res.Merge(lr.Report)
	}

	return res
}
