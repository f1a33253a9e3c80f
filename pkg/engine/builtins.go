package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/bayframe/pkg/building"
	"github.com/chazu/bayframe/pkg/layout"
	"github.com/chazu/bayframe/pkg/project"
	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// Sexp wrapper returned by the building builtins
// ---------------------------------------------------------------------------

// sexpRef names an entity a builtin added to the project, so scripts can
// print or bind it.
type sexpRef struct {
	kind string
	id   string
}

func (r *sexpRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s %q)", r.kind, r.id)
}
func (r *sexpRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW reports whether s is a preprocessed keyword and returns its name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds a mixed positional and keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// number returns keyword key as a float64, or def when it is absent.
func (a kwArgs) number(key string, def float64) (float64, error) {
	v, ok := a.kw[key]
	if !ok {
		return def, nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

// keyword returns keyword key as a name, or def when it is absent.
func (a kwArgs) keyword(key, def string) (string, error) {
	v, ok := a.kw[key]
	if !ok {
		return def, nil
	}
	s, err := toKeywordString(v)
	if err != nil {
		return "", fmt.Errorf("%s: %w", key, err)
	}
	return s, nil
}

// name returns the first positional string argument, falling back to the
// :name keyword.
func (a kwArgs) name() (string, error) {
	if len(a.positional) > 0 {
		s, err := toString(a.positional[0])
		if err != nil {
			return "", fmt.Errorf("name: %w", err)
		}
		return s, nil
	}
	if v, ok := a.kw["name"]; ok {
		s, err := toString(v)
		if err != nil {
			return "", fmt.Errorf("name: %w", err)
		}
		return s, nil
	}
	return "", nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

// newID returns a fresh identifier for an unnamed entity.
func newID() string {
	return uuid.NewString()
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the building DSL into env. Builtins populate p
// as the script runs. Source must go through preprocessSource first.
func registerBuiltins(env *zygo.Zlisp, p *project.Project) {
	// explicitRoom is set once a (room ...) form sizes the layout; a later
	// (building ...) then leaves the room alone.
	explicitRoom := false

	// -----------------------------------------------------------------------
	// (building "shop" :width 24 :length 40 :height 10 :pitch 4)
	// -----------------------------------------------------------------------
	env.AddFunction("building", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		n, err := pa.name()
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("building: %w", err)
		}
		d := p.Dimensions
		for _, f := range []struct {
			key string
			dst *float64
		}{
			{"width", &d.Width},
			{"length", &d.Length},
			{"height", &d.Height},
			{"pitch", &d.RoofPitch},
		} {
			v, err := pa.number(f.key, *f.dst)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("building: %w", err)
			}
			*f.dst = v
		}
		if n != "" {
			p.Name = n
		}
		p.Dimensions = d
		if p.Layout != nil && !explicitRoom {
			p.Layout.RoomWidth, p.Layout.RoomLength = d.Width, d.Length
		}
		return &sexpRef{kind: "building", id: p.Name}, nil
	})

	// -----------------------------------------------------------------------
	// (door "main" :wall :front :width 3 :height 7 :align :center :x 0 :y 0)
	// window, rollup-door and walk-door take the same arguments.
	// -----------------------------------------------------------------------
	for fn, typ := range map[string]building.FeatureType{
		"door":        building.FeatureDoor,
		"window":      building.FeatureWindow,
		"rollup_door": building.FeatureRollupDoor,
		"walk_door":   building.FeatureWalkDoor,
	} {
		typ := typ
		label := strings.ReplaceAll(fn, "_", "-")
		env.AddFunction(fn, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			f, err := parseFeature(typ, parseArgs(args))
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", label, err)
			}
			if err := p.AddFeature(f); err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", label, err)
			}
			return &sexpRef{kind: string(typ), id: f.ID}, nil
		})
	}

	// -----------------------------------------------------------------------
	// (skylight :panel :left :width 2 :length 4 :x 0 :y 0)
	// -----------------------------------------------------------------------
	env.AddFunction("skylight", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		s, err := parseSkylight(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("skylight: %w", err)
		}
		p.AddSkylight(s)
		return &sexpRef{kind: "skylight", id: fmt.Sprintf("%d", len(p.Skylights))}, nil
	})

	// -----------------------------------------------------------------------
	// (room :width 30 :length 20)
	// -----------------------------------------------------------------------
	env.AddFunction("room", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		l := p.EnsureLayout()
		w, err := pa.number("width", l.RoomWidth)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("room: %w", err)
		}
		ln, err := pa.number("length", l.RoomLength)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("room: %w", err)
		}
		l.RoomWidth, l.RoomLength = w, ln
		explicitRoom = true
		return &sexpRef{kind: "room", id: fmt.Sprintf("%gx%g", w, ln)}, nil
	})

	// -----------------------------------------------------------------------
	// (partition "w1" :width 0.33 :position 7 :kind :interior)
	// -----------------------------------------------------------------------
	env.AddFunction("partition", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		seg, err := parseSegment(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("partition: %w", err)
		}
		l := p.EnsureLayout()
		l.Segments = append(l.Segments, seg)
		return &sexpRef{kind: "partition", id: seg.ID}, nil
	})

	// -----------------------------------------------------------------------
	// (gap :width 3 :position 10 :purpose :doorway)
	// -----------------------------------------------------------------------
	env.AddFunction("gap", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		g, err := parseGap(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("gap: %w", err)
		}
		l := p.EnsureLayout()
		l.Gaps = append(l.Gaps, g)
		return &sexpRef{kind: "gap", id: g.ID}, nil
	})
}

func parseFeature(typ building.FeatureType, pa kwArgs) (building.WallFeature, error) {
	id, err := pa.name()
	if err != nil {
		return building.WallFeature{}, err
	}
	if id == "" {
		id = newID()
	}
	f := building.WallFeature{ID: id, Type: typ}

	wallName, err := pa.keyword("wall", "")
	if err != nil {
		return f, err
	}
	if wallName == "" {
		return f, fmt.Errorf("%s requires :wall", id)
	}
	if f.Position.Wall, err = building.ParseWallPosition(wallName); err != nil {
		return f, err
	}

	alignName, err := pa.keyword("align", string(building.AlignCenter))
	if err != nil {
		return f, err
	}
	if f.Position.Alignment, err = building.ParseAlignment(alignName); err != nil {
		return f, err
	}

	for _, n := range []struct {
		key string
		dst *float64
	}{
		{"width", &f.Width},
		{"height", &f.Height},
		{"x", &f.Position.XOffset},
		{"y", &f.Position.YOffset},
	} {
		if *n.dst, err = pa.number(n.key, 0); err != nil {
			return f, err
		}
	}
	if f.Width <= 0 || f.Height <= 0 {
		return f, fmt.Errorf("%s needs a positive :width and :height", id)
	}
	return f, nil
}

func parseSkylight(pa kwArgs) (building.Skylight, error) {
	var s building.Skylight
	panelName, err := pa.keyword("panel", "")
	if err != nil {
		return s, err
	}
	if panelName == "" {
		return s, fmt.Errorf("requires :panel")
	}
	if s.Panel, err = building.ParsePanel(panelName); err != nil {
		return s, err
	}
	for _, n := range []struct {
		key string
		dst *float64
	}{
		{"width", &s.Width},
		{"length", &s.Length},
		{"x", &s.XOffset},
		{"y", &s.YOffset},
	} {
		if *n.dst, err = pa.number(n.key, 0); err != nil {
			return s, err
		}
	}
	return s, nil
}

func parseSegment(pa kwArgs) (layout.WallSegment, error) {
	var seg layout.WallSegment
	id, err := pa.name()
	if err != nil {
		return seg, err
	}
	seg.ID, seg.Name = id, id
	if seg.ID == "" {
		seg.ID = newID()
	}

	kind, err := pa.keyword("kind", string(layout.SegmentPartition))
	if err != nil {
		return seg, err
	}
	if seg.Type, err = layout.ParseSegmentType(kind); err != nil {
		return seg, err
	}
	if seg.Width, err = pa.number("width", layout.InteriorThickness); err != nil {
		return seg, err
	}
	if seg.Thickness, err = pa.number("thickness", seg.Width); err != nil {
		return seg, err
	}
	if seg.Position, err = pa.number("position", 0); err != nil {
		return seg, err
	}
	return seg, nil
}

func parseGap(pa kwArgs) (layout.WallGap, error) {
	var g layout.WallGap
	id, err := pa.name()
	if err != nil {
		return g, err
	}
	g.ID = id
	if g.ID == "" {
		g.ID = newID()
	}
	purpose, err := pa.keyword("purpose", string(layout.GapSpacing))
	if err != nil {
		return g, err
	}
	if g.Purpose, err = layout.ParseGapPurpose(purpose); err != nil {
		return g, err
	}
	if g.Width, err = pa.number("width", 0); err != nil {
		return g, err
	}
	if g.Position, err = pa.number("position", 0); err != nil {
		return g, err
	}
	return g, nil
}
