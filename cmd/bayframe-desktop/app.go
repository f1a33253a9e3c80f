package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/chazu/bayframe/pkg/building"
	"github.com/chazu/bayframe/pkg/check"
	"github.com/chazu/bayframe/pkg/engine"
	"github.com/chazu/bayframe/pkg/feature"
	"github.com/chazu/bayframe/pkg/kernel"
	"github.com/chazu/bayframe/pkg/kernel/sdfx"
	"github.com/chazu/bayframe/pkg/layout"
	"github.com/chazu/bayframe/pkg/lock"
	"github.com/chazu/bayframe/pkg/project"
	"github.com/chazu/bayframe/pkg/tessellate"
)

// colorPalette assigns distinct colors to the building parts.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// errNoProject is returned by bindings that need an evaluated project.
var errNoProject = errors.New("no project has been evaluated yet")

// App is the Wails backend. It exposes methods to the frontend via bindings
// and remembers the last project that evaluated cleanly.
type App struct {
	ctx    context.Context
	engine *engine.Engine
	kernel kernel.Kernel
	code   building.CodeRequirements

	mu      sync.Mutex
	current *project.Project
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result returned to the frontend.
type EvalResult struct {
	Meshes  []MeshData       `json:"meshes"`
	Errors  []EvalErrorData  `json:"errors"`
	Project *project.Project `json:"project,omitempty"`
	Check   *check.Result    `json:"check,omitempty"`
}

// NewApp creates a new App with an engine, the sdfx kernel and the given
// building code.
func NewApp(code building.CodeRequirements) *App {
	return NewAppWithKernel(sdfx.New(), code)
}

// NewAppWithKernel creates an App that meshes with k.
func NewAppWithKernel(k kernel.Kernel, code building.CodeRequirements) *App {
	return &App{
		engine: engine.NewEngine(),
		kernel: k,
		code:   code,
	}
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// Evaluate takes a building script and returns its meshes, the project it
// describes and the check report. Blank source clears the view.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes: []MeshData{},
		Errors: []EvalErrorData{},
	}
	if strings.TrimSpace(source) == "" {
		return result
	}

	p, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		log.Printf("[DESKTOP] Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	res := check.Run(p, &a.code)
	result.Project = p
	result.Check = &res

	a.mu.Lock()
	a.current = p
	a.mu.Unlock()

	meshes, err := tessellate.Tessellate(p, a.kernel)
	if err != nil {
		log.Printf("[DESKTOP] Tessellate error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "tessellation failed: " + err.Error(),
		})
		return result
	}

	for i, m := range meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			PartName: m.Part,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}

	return result
}

func (a *App) project() (*project.Project, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current == nil {
		return nil, errNoProject
	}
	return a.current, nil
}

// ValidateDimensionChange checks whether one dimension of the current
// project can move to proposed without pushing a feature on wall out of
// bounds.
func (a *App) ValidateDimensionChange(wall, dimension string, proposed float64) (lock.ChangeResult, error) {
	p, err := a.project()
	if err != nil {
		return lock.ChangeResult{}, err
	}
	w, err := building.ParseWallPosition(wall)
	if err != nil {
		return lock.ChangeResult{}, err
	}
	kind, err := building.ParseDimensionKind(dimension)
	if err != nil {
		return lock.ChangeResult{}, err
	}

	return lock.CheckDimensionLock(w, kind, p.Dimensions.Value(kind), proposed, p.Features, p.Dimensions), nil
}

// SuggestFeature proposes an in-bounds placement for the named feature of
// the current project.
func (a *App) SuggestFeature(id string) (feature.Suggestion, error) {
	p, err := a.project()
	if err != nil {
		return feature.Suggestion{}, err
	}
	f, ok := p.Feature(id)
	if !ok {
		return feature.Suggestion{}, fmt.Errorf("no feature %q", id)
	}
	return feature.SuggestPosition(f, p.Dimensions), nil
}

// DefaultLayout returns the starter partition layout for a room.
func (a *App) DefaultLayout(width, length float64) layout.WallLayout {
	return layout.CreateDefaultWallLayout(width, length)
}
