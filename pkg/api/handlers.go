package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/chazu/bayframe/pkg/building"
	"github.com/chazu/bayframe/pkg/check"
	"github.com/chazu/bayframe/pkg/engine"
	"github.com/chazu/bayframe/pkg/feature"
	"github.com/chazu/bayframe/pkg/height"
	"github.com/chazu/bayframe/pkg/layout"
	"github.com/chazu/bayframe/pkg/lock"
	"github.com/chazu/bayframe/pkg/project"
	"github.com/chazu/bayframe/pkg/skylight"
)

// Handler serves the validation routes. It holds no mutable state.
type Handler struct {
	code building.CodeRequirements
}

type featureRequest struct {
	Feature    building.WallFeature `json:"feature"`
	Dimensions building.Dimensions  `json:"dimensions"`
}

type newFeatureRequest struct {
	Feature    building.WallFeature   `json:"feature"`
	Existing   []building.WallFeature `json:"existing"`
	Dimensions building.Dimensions    `json:"dimensions"`
}

type skylightsRequest struct {
	Skylights  []building.Skylight `json:"skylights"`
	Dimensions building.Dimensions `json:"dimensions"`
}

type skylightRequest struct {
	Skylight   building.Skylight   `json:"skylight"`
	Dimensions building.Dimensions `json:"dimensions"`
}

type heightRequest struct {
	Features []building.WallFeature `json:"features"`
}

type protectionRequest struct {
	Wall       building.WallPosition  `json:"wall"`
	Features   []building.WallFeature `json:"features"`
	Dimensions building.Dimensions    `json:"dimensions"`
}

type lockCheckRequest struct {
	Wall       building.WallPosition  `json:"wall"`
	Dimension  building.DimensionKind `json:"dimension"`
	Current    float64                `json:"current"`
	Proposed   float64                `json:"proposed"`
	Features   []building.WallFeature `json:"features"`
	Dimensions building.Dimensions    `json:"dimensions"`
}

type safeDimensionsRequest struct {
	Wall     building.WallPosition  `json:"wall"`
	Features []building.WallFeature `json:"features"`
	Desired  building.Dimensions    `json:"desired"`
}

type evaluateResponse struct {
	Project *project.Project   `json:"project,omitempty"`
	Errors  []engine.EvalError `json:"errors"`
	Check   *check.Result      `json:"check,omitempty"`
}

func decode(c fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return errors.New("empty body")
	}
	if err := json.Unmarshal(c.Body(), v); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

func badRequest(c fiber.Ctx, err error) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

func checkWall(w building.WallPosition) error {
	_, err := building.ParseWallPosition(string(w))
	return err
}

// Evaluate runs the request body as a building script and checks the
// resulting project. Script mistakes come back as errors with a 200; only
// a timeout or crash is a 500.
func (h *Handler) Evaluate(c fiber.Ctx) error {
	log.Printf("[API] Evaluate: %d bytes", len(c.Body()))

	p, evalErrs, err := engine.NewEngine().Evaluate(string(c.Body()))
	if err != nil {
		log.Printf("[API] Evaluate failed: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	resp := evaluateResponse{Project: p, Errors: evalErrs}
	if resp.Errors == nil {
		resp.Errors = []engine.EvalError{}
	}
	if p != nil {
		res := check.Run(p, &h.code)
		resp.Check = &res
	}
	return c.JSON(resp)
}

// ValidateProject runs the full check pipeline over a project document.
func (h *Handler) ValidateProject(c fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return badRequest(c, errors.New("empty body"))
	}
	p, err := project.Decode(bytes.NewReader(c.Body()))
	if err != nil {
		return badRequest(c, err)
	}
	res := check.Run(p, &h.code)
	log.Printf("[API] Project %q: %d errors, %d warnings", p.Name, len(res.Errors), len(res.Warnings))
	return c.JSON(res)
}

// ValidateFeature checks one feature against its wall.
func (h *Handler) ValidateFeature(c fiber.Ctx) error {
	var req featureRequest
	if err := decode(c, &req); err != nil {
		return badRequest(c, err)
	}
	if err := checkWall(req.Feature.Position.Wall); err != nil {
		return badRequest(c, err)
	}
	return c.JSON(feature.ValidateFeature(req.Feature, req.Dimensions))
}

// ValidateNewFeature checks whether a feature can join the existing ones.
func (h *Handler) ValidateNewFeature(c fiber.Ctx) error {
	var req newFeatureRequest
	if err := decode(c, &req); err != nil {
		return badRequest(c, err)
	}
	if err := checkWall(req.Feature.Position.Wall); err != nil {
		return badRequest(c, err)
	}
	span := building.WallSpan(req.Dimensions, req.Feature.Position.Wall)
	return c.JSON(height.ValidateNewFeature(req.Feature, req.Existing, req.Dimensions.Height, span, &h.code))
}

// ValidateSkylights checks a skylight set, including pairwise overlap.
func (h *Handler) ValidateSkylights(c fiber.Ctx) error {
	var req skylightsRequest
	if err := decode(c, &req); err != nil {
		return badRequest(c, err)
	}
	return c.JSON(skylight.ValidateAll(req.Skylights, req.Dimensions))
}

// SuggestFeature proposes an in-bounds placement for a feature.
func (h *Handler) SuggestFeature(c fiber.Ctx) error {
	var req featureRequest
	if err := decode(c, &req); err != nil {
		return badRequest(c, err)
	}
	if err := checkWall(req.Feature.Position.Wall); err != nil {
		return badRequest(c, err)
	}
	return c.JSON(feature.SuggestPosition(req.Feature, req.Dimensions))
}

// SuggestSkylight proposes an in-bounds placement for a skylight.
func (h *Handler) SuggestSkylight(c fiber.Ctx) error {
	var req skylightRequest
	if err := decode(c, &req); err != nil {
		return badRequest(c, err)
	}
	if _, err := building.ParsePanel(string(req.Skylight.Panel)); err != nil {
		return badRequest(c, err)
	}
	return c.JSON(skylight.SuggestPosition(req.Skylight, req.Dimensions))
}

// MinimumHeight derives the minimum wall height for a feature set.
func (h *Handler) MinimumHeight(c fiber.Ctx) error {
	var req heightRequest
	if err := decode(c, &req); err != nil {
		return badRequest(c, err)
	}
	return c.JSON(height.CalculateMinimumRequiredHeight(req.Features, &h.code))
}

// Protection summarises the locks on one wall, or on all four when no
// wall is named.
func (h *Handler) Protection(c fiber.Ctx) error {
	var req protectionRequest
	if err := decode(c, &req); err != nil {
		return badRequest(c, err)
	}
	if req.Wall == "" {
		return c.JSON(lock.ProtectAll(req.Features, req.Dimensions))
	}
	if err := checkWall(req.Wall); err != nil {
		return badRequest(c, err)
	}
	return c.JSON(lock.CreateWallBoundsProtection(req.Features, req.Wall, req.Dimensions))
}

// CheckLock reports whether a proposed dimension change keeps the wall's
// features in bounds.
func (h *Handler) CheckLock(c fiber.Ctx) error {
	var req lockCheckRequest
	if err := decode(c, &req); err != nil {
		return badRequest(c, err)
	}
	if err := checkWall(req.Wall); err != nil {
		return badRequest(c, err)
	}
	if _, err := building.ParseDimensionKind(string(req.Dimension)); err != nil {
		return badRequest(c, err)
	}
	return c.JSON(lock.CheckDimensionLock(req.Wall, req.Dimension, req.Current, req.Proposed, req.Features, req.Dimensions))
}

// SafeDimensions returns the smallest wall dimensions that keep every
// feature on the wall in bounds.
func (h *Handler) SafeDimensions(c fiber.Ctx) error {
	var req safeDimensionsRequest
	if err := decode(c, &req); err != nil {
		return badRequest(c, err)
	}
	if err := checkWall(req.Wall); err != nil {
		return badRequest(c, err)
	}
	return c.JSON(lock.SuggestSafeDimensionChanges(req.Wall, req.Features, req.Desired))
}

// ValidateLayout checks a partition layout.
func (h *Handler) ValidateLayout(c fiber.Ctx) error {
	var l layout.WallLayout
	if err := decode(c, &l); err != nil {
		return badRequest(c, err)
	}
	return c.JSON(layout.ValidateWallPositioning(l))
}

// OptimizeLayout scales an over-capacity layout to fit its room.
func (h *Handler) OptimizeLayout(c fiber.Ctx) error {
	var l layout.WallLayout
	if err := decode(c, &l); err != nil {
		return badRequest(c, err)
	}
	return c.JSON(layout.OptimizeWallLayout(l))
}

// DefaultLayout returns the starter layout for a room given by the width
// and length query parameters.
func (h *Handler) DefaultLayout(c fiber.Ctx) error {
	width, err := positiveQuery(c, "width")
	if err != nil {
		return badRequest(c, err)
	}
	length, err := positiveQuery(c, "length")
	if err != nil {
		return badRequest(c, err)
	}
	return c.JSON(layout.CreateDefaultWallLayout(width, length))
}

func positiveQuery(c fiber.Ctx, key string) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, fmt.Errorf("query parameter %s is required", key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("query parameter %s must be a positive number, got %q", key, raw)
	}
	return v, nil
}
