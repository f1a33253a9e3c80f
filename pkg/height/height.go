// Package height derives the minimum wall height a building needs from its
// openings and the code-requirement constants, and validates wall heights
// and vertically stacked openings against it.
package height

import (
	"fmt"
	"math"

	"github.com/chazu/bayframe/pkg/building"
)

// Requirement is the breakdown of a minimum-height derivation. Every
// intermediate value is kept for diagnostics.
type Requirement struct {
	BaseMinimum           float64  `json:"base_minimum"`
	FeatureRequirement    float64  `json:"feature_requirement"`
	CriticalFeature       string   `json:"critical_feature,omitempty"`
	ElectricalRequirement float64  `json:"electrical_requirement"`
	PlumbingRequirement   float64  `json:"plumbing_requirement"`
	StructuralOverhead    float64  `json:"structural_overhead"`
	FinalMinimum          float64  `json:"final_minimum"`
	ContributingFactors   []string `json:"contributing_factors"`
}

// CalculateMinimumRequiredHeight derives the minimum wall height. The order
// of the steps is fixed: the ceiling minimum, then the tallest feature plus
// its clearance, the electrical floor and the plumbing floor can each only
// raise the running minimum; the overhead allowance is then added on top.
func CalculateMinimumRequiredHeight(features []building.WallFeature, code *building.CodeRequirements) Requirement {
	c := building.Resolve(code)
	req := Requirement{
		BaseMinimum:         c.MinimumCeilingHeight,
		ContributingFactors: []string{},
	}

	minimum := c.MinimumCeilingHeight
	req.ContributingFactors = append(req.ContributingFactors,
		fmt.Sprintf("Minimum ceiling height: %.2fft", c.MinimumCeilingHeight))

	var critical building.WallFeature
	for _, f := range features {
		top := f.Position.YOffset + f.Height + c.ClearanceFor(f.Type)
		if top > req.FeatureRequirement {
			req.FeatureRequirement = top
			critical = f
		}
	}
	if req.FeatureRequirement > minimum {
		minimum = req.FeatureRequirement
		req.CriticalFeature = critical.ID
		req.ContributingFactors = append(req.ContributingFactors, fmt.Sprintf(
			"%s requires %.2fft (top at %.2fft + %.2fft clearance)",
			critical.Label(), req.FeatureRequirement,
			critical.Position.YOffset+critical.Height, c.ClearanceFor(critical.Type)))
	}

	req.ElectricalRequirement = math.Max(
		c.Electrical.SwitchHeight+c.Electrical.CeilingClearance,
		c.Electrical.OutletHeight+c.Electrical.CeilingClearance,
	)
	if req.ElectricalRequirement > minimum {
		minimum = req.ElectricalRequirement
		req.ContributingFactors = append(req.ContributingFactors,
			fmt.Sprintf("Electrical clearance requires %.2fft", req.ElectricalRequirement))
	}

	req.PlumbingRequirement = c.Plumbing.FixtureHeight + c.Plumbing.CeilingClearance
	if req.PlumbingRequirement > minimum {
		minimum = req.PlumbingRequirement
		req.ContributingFactors = append(req.ContributingFactors,
			fmt.Sprintf("Plumbing clearance requires %.2fft", req.PlumbingRequirement))
	}

	req.StructuralOverhead = c.Overhead()
	minimum += req.StructuralOverhead
	req.ContributingFactors = append(req.ContributingFactors, fmt.Sprintf(
		"Structural, fire, ventilation and insulation overhead: +%.2fft", req.StructuralOverhead))

	req.FinalMinimum = minimum
	return req
}
