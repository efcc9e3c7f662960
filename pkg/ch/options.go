package ch

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ContractionOptions are the tuning knobs of the construction.
// Can be loaded from a yaml file to simplify benchmarking runs.
type ContractionOptions struct {
	QuickHops       int   `yaml:"quickHops"`       // hop cap of the quick contraction rounds
	QuickRounds     int   `yaml:"quickRounds"`     // number of quick contraction rounds
	FullHops        int   `yaml:"fullHops"`        // hop cap of the full contraction rounds
	MaxSettledNodes int   `yaml:"maxSettledNodes"` // limit the settled nodes per witness search
	Workers         int   `yaml:"workers"`         // number of parallel contraction workers
	Seed            int64 `yaml:"seed"`            // seed for the independent set priorities
}

func MakeDefaultContractionOptions() ContractionOptions {
	return ContractionOptions{
		QuickHops:       4,
		QuickRounds:     5,
		FullHops:        16,
		MaxSettledNodes: math.MaxInt,
		Workers:         1,
		Seed:            42,
	}
}

// LoadContractionOptions reads options from a yaml file. Missing keys keep
// their default value.
func LoadContractionOptions(filename string) (ContractionOptions, error) {
	options := MakeDefaultContractionOptions()
	data, err := os.ReadFile(filename)
	if err != nil {
		return options, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &options); err != nil {
		return options, fmt.Errorf("parse config %v: %w", filename, err)
	}
	if options.Workers < 1 || options.QuickHops < 1 || options.FullHops < 1 {
		return options, fmt.Errorf("config %v: workers and hop caps must be positive", filename)
	}
	return options, nil
}
