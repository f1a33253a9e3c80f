// Package config loads building-code overrides from YAML and server
// settings from the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/chazu/bayframe/pkg/building"
)

// Server holds the HTTP service settings.
type Server struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int
	CodeFile     string
}

// LoadServer reads the server settings from environment variables.
func LoadServer() *Server {
	return &Server{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
		CodeFile:     getEnv("BAYFRAME_CODE_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

// LoadCodeRequirements reads a YAML document of code overrides from path.
// Keys present in the document replace the defaults; absent keys keep them.
// An empty path returns the defaults.
func LoadCodeRequirements(path string) (building.CodeRequirements, error) {
	if path == "" {
		return building.DefaultCodeRequirements(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return building.CodeRequirements{}, fmt.Errorf("read code file: %w", err)
	}
	code, err := ParseCodeRequirements(data)
	if err != nil {
		return building.CodeRequirements{}, fmt.Errorf("%s: %w", path, err)
	}
	return code, nil
}

// ParseCodeRequirements decodes YAML overrides on top of the defaults and
// rejects negative values. Unknown keys are an error.
func ParseCodeRequirements(data []byte) (building.CodeRequirements, error) {
	code := building.DefaultCodeRequirements()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&code); err != nil && !errors.Is(err, io.EOF) {
		return building.CodeRequirements{}, fmt.Errorf("parse code requirements: %w", err)
	}

	if err := validate(code); err != nil {
		return building.CodeRequirements{}, err
	}
	return code, nil
}

func validate(c building.CodeRequirements) error {
	values := []struct {
		key   string
		value float64
	}{
		{"minimum_ceiling_height", c.MinimumCeilingHeight},
		{"door_clearance", c.DoorClearance},
		{"window_clearance", c.WindowClearance},
		{"electrical.switch_height", c.Electrical.SwitchHeight},
		{"electrical.outlet_height", c.Electrical.OutletHeight},
		{"electrical.ceiling_clearance", c.Electrical.CeilingClearance},
		{"plumbing.fixture_height", c.Plumbing.FixtureHeight},
		{"plumbing.ceiling_clearance", c.Plumbing.CeilingClearance},
		{"structural_load_bearing", c.StructuralLoadBearing},
		{"fire_code_clearance", c.FireCodeClearance},
		{"ventilation_clearance", c.VentilationClearance},
		{"insulation_space", c.InsulationSpace},
	}
	for _, v := range values {
		if v.value < 0 {
			return fmt.Errorf("%s must not be negative (got %g)", v.key, v.value)
		}
	}
	return nil
}
