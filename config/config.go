// Package config provides the default configuration of the workload and
// metrics pipelines and builds their components.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/schedbench/linker"
	"github.com/sarchlab/schedbench/metrics"
	"github.com/sarchlab/schedbench/surface"
	"github.com/sarchlab/schedbench/workload"
)

// EnvPath names the environment variable that overrides DefaultPath.
const EnvPath = "SCHEDBENCH_CONFIG"

// DefaultPath is the optional override file read from the working
// directory.
const DefaultPath = "schedbench.yaml"

// Config holds everything the two commands need.
type Config struct {
	Tiers      []workload.Tier `yaml:"tiers"`
	ProgramDir string          `yaml:"program_dir"`
	// Seed makes generation reproducible. Nil seeds from the clock.
	Seed     *int64          `yaml:"seed"`
	Tool     string          `yaml:"tool"`
	Encoding linker.Encoding `yaml:"encoding"`

	MetricsFile string `yaml:"metrics_file"`
	Recovery    string `yaml:"recovery"`
	OutputDir   string `yaml:"output_dir"`
	Method      string `yaml:"method"`
	GridSize    int    `yaml:"grid_size"`
	Format      string `yaml:"format"`

	RecordDir string `yaml:"record_dir"`
	LogLevel  string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Tiers: []workload.Tier{
			{Label: "S", BodyLines: 20, Replicas: 3},
			{Label: "M", BodyLines: 500, Replicas: 3},
			{Label: "L", BodyLines: 2000, Replicas: 3},
		},
		ProgramDir: "programs/milestone_3",
		Tool:       "osx",
		Encoding:   linker.DefaultEncoding,

		MetricsFile: "metrics_output.txt",
		Recovery:    metrics.FixedStride.Name(),
		OutputDir:   "surfaces",
		Method:      surface.Linear.Name(),
		GridSize:    30,
		Format:      "png",

		RecordDir: "results",
		LogLevel:  "info",
	}
}

// Path returns the override file location.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}

	return DefaultPath
}

// Load returns the defaults overlaid with the YAML file at path. A missing
// file leaves the defaults untouched.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the values the components cannot recover from.
func (c Config) Validate() error {
	if len(c.Tiers) == 0 {
		return errors.New("no tiers configured")
	}

	labels := make(map[string]bool)
	for _, t := range c.Tiers {
		if t.Label == "" {
			return errors.New("tier without a label")
		}
		if labels[t.Label] {
			return fmt.Errorf("duplicate tier %q", t.Label)
		}
		labels[t.Label] = true

		if t.BodyLines < 0 {
			return fmt.Errorf("tier %q has negative body lines", t.Label)
		}
		if t.Replicas < 1 {
			return fmt.Errorf("tier %q needs at least one replica", t.Label)
		}
	}

	if c.Encoding.BytesPerLine == 0 {
		return errors.New("encoding bytes_per_line must be positive")
	}

	if c.GridSize < 2 {
		return fmt.Errorf("grid_size must be at least 2, got %d", c.GridSize)
	}

	if _, err := metrics.ParseRecovery(c.Recovery); err != nil {
		return err
	}

	if _, err := surface.ParseMethod(c.Method); err != nil {
		return err
	}

	return nil
}
