package building

// ElectricalRequirements holds mounting heights for electrical devices and
// the clearance kept between them and the ceiling.
type ElectricalRequirements struct {
	SwitchHeight     float64 `json:"switch_height" yaml:"switch_height"`
	OutletHeight     float64 `json:"outlet_height" yaml:"outlet_height"`
	CeilingClearance float64 `json:"ceiling_clearance" yaml:"ceiling_clearance"`
}

// PlumbingRequirements holds the tallest fixture height and its ceiling
// clearance.
type PlumbingRequirements struct {
	FixtureHeight    float64 `json:"fixture_height" yaml:"fixture_height"`
	CeilingClearance float64 `json:"ceiling_clearance" yaml:"ceiling_clearance"`
}

// CodeRequirements is the set of clearance constants standing in for
// building-code minimums. Treat values as immutable; obtain defaults from
// DefaultCodeRequirements and copy before overriding.
type CodeRequirements struct {
	MinimumCeilingHeight  float64                `json:"minimum_ceiling_height" yaml:"minimum_ceiling_height"`
	DoorClearance         float64                `json:"door_clearance" yaml:"door_clearance"`
	WindowClearance       float64                `json:"window_clearance" yaml:"window_clearance"`
	Electrical            ElectricalRequirements `json:"electrical" yaml:"electrical"`
	Plumbing              PlumbingRequirements   `json:"plumbing" yaml:"plumbing"`
	StructuralLoadBearing float64                `json:"structural_load_bearing" yaml:"structural_load_bearing"`
	FireCodeClearance     float64                `json:"fire_code_clearance" yaml:"fire_code_clearance"`
	VentilationClearance  float64                `json:"ventilation_clearance" yaml:"ventilation_clearance"`
	InsulationSpace       float64                `json:"insulation_space" yaml:"insulation_space"`
}

// DefaultCodeRequirements returns a fresh copy of the default constants.
func DefaultCodeRequirements() CodeRequirements {
	return CodeRequirements{
		MinimumCeilingHeight: 8.0,
		DoorClearance:        0.5,
		WindowClearance:      1.0,
		Electrical: ElectricalRequirements{
			SwitchHeight:     4.0,
			OutletHeight:     1.5,
			CeilingClearance: 0.5,
		},
		Plumbing: PlumbingRequirements{
			FixtureHeight:    7.0,
			CeilingClearance: 0.5,
		},
		StructuralLoadBearing: 0.5,
		FireCodeClearance:     0.25,
		VentilationClearance:  0.5,
		InsulationSpace:       0.5,
	}
}

// Resolve returns the requirements to use for a calculation: the override
// when non-nil, the defaults otherwise.
func Resolve(code *CodeRequirements) CodeRequirements {
	if code == nil {
		return DefaultCodeRequirements()
	}
	return *code
}

// ClearanceFor returns the clearance required above a feature of type t.
func (c CodeRequirements) ClearanceFor(t FeatureType) float64 {
	if t.IsDoor() {
		return c.DoorClearance
	}
	return c.WindowClearance
}

// Overhead is the cumulative allowance added on top of the derived minimum.
func (c CodeRequirements) Overhead() float64 {
	return c.StructuralLoadBearing + c.FireCodeClearance + c.VentilationClearance + c.InsulationSpace
}
