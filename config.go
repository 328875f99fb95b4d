package grove

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"gopkg.in/yaml.v3"
)

// forestConfigFile is the YAML shape of a ForestConfig. Pointer fields
// distinguish "absent" from zero so absent keys keep their defaults.
type forestConfigFile struct {
	Count         *int       `yaml:"count"`
	AreaX         *rangeFile `yaml:"areaX"`
	AreaZ         *rangeFile `yaml:"areaZ"`
	BaseHeight    *float64   `yaml:"baseHeight"`
	Scale         *rangeFile `yaml:"scale"`
	MinDistance   *float64   `yaml:"minDistance"`
	MaxAttempts   *int       `yaml:"maxAttempts"`
	Spacing       *string    `yaml:"spacing"`
	Style         *string    `yaml:"style"`
	Complex       *bool      `yaml:"complex"`
	SwayAmplitude *float64   `yaml:"swayAmplitude"`
}

// rangeFile accepts either {min: a, max: b} or a two-element sequence [a, b].
type rangeFile Range

func (r *rangeFile) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var pair []float64
		if err := node.Decode(&pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("grove: range at line %d needs 2 values, got %d: %w", node.Line, len(pair), ErrInvalidParameter)
		}
		r.Min, r.Max = pair[0], pair[1]
		return nil
	}
	var m struct {
		Min float64 `yaml:"min"`
		Max float64 `yaml:"max"`
	}
	if err := node.Decode(&m); err != nil {
		return err
	}
	r.Min, r.Max = m.Min, m.Max
	return nil
}

// LoadForestConfig parses a YAML document and overlays it on
// DefaultForestConfig. Unknown keys are rejected. Unknown style or spacing
// names log a warning and keep the default. The result is validated.
//
//	count: 12
//	areaX: [-150, 150]
//	style: block
//	spacing: planar
func LoadForestConfig(data []byte) (ForestConfig, error) {
	cfg := DefaultForestConfig()
	var file forestConfigFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return ForestConfig{}, fmt.Errorf("grove: parse forest config: %w", err)
	}

	if file.Count != nil {
		cfg.Count = *file.Count
	}
	if file.AreaX != nil {
		cfg.AreaX = Range(*file.AreaX)
	}
	if file.AreaZ != nil {
		cfg.AreaZ = Range(*file.AreaZ)
	}
	if file.BaseHeight != nil {
		cfg.BaseHeight = *file.BaseHeight
	}
	if file.Scale != nil {
		cfg.ScaleRange = Range(*file.Scale)
	}
	if file.MinDistance != nil {
		cfg.MinDistance = *file.MinDistance
	}
	if file.MaxAttempts != nil {
		cfg.MaxAttempts = *file.MaxAttempts
	}
	if file.Spacing != nil {
		cfg.Spacing = parseSpacingMode(*file.Spacing)
	}
	if file.Style != nil {
		cfg.Style = parseTreeStyle(*file.Style)
	}
	if file.Complex != nil {
		cfg.Complex = *file.Complex
	}
	if file.SwayAmplitude != nil {
		cfg.SwayAmplitude = *file.SwayAmplitude
	}

	if err := cfg.validate(); err != nil {
		return ForestConfig{}, err
	}
	return cfg, nil
}

func parseSpacingMode(name string) SpacingMode {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "axisx", "x":
		return SpacingAxisX
	case "planar", "xz":
		return SpacingPlanar
	default:
		log.Printf("grove: unknown spacing mode %q, using axisX", name)
		return SpacingAxisX
	}
}
