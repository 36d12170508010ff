package config

import (
	"github.com/sarchlab/schedbench/linker"
	"github.com/sarchlab/schedbench/metrics"
	"github.com/sarchlab/schedbench/surface"
	"github.com/sarchlab/schedbench/workload"
)

// Generator builds the program generator.
func (c Config) Generator() *workload.Generator {
	b := workload.NewGeneratorBuilder().
		WithOutputDir(c.ProgramDir)

	if c.Seed != nil {
		b = b.WithSeed(*c.Seed)
	}

	return b.Build()
}

// Linker builds the linker that runs the configured tool.
func (c Config) Linker() *linker.Linker {
	return linker.NewBuilder().
		WithTool(c.Tool).
		WithEncoding(c.Encoding).
		Build()
}

// Parser builds the metrics parser. The configuration must be valid.
func (c Config) Parser() *metrics.Parser {
	recovery, err := metrics.ParseRecovery(c.Recovery)
	if err != nil {
		panic(err)
	}

	return metrics.NewParserBuilder().
		WithRecovery(recovery).
		Build()
}

// Visualizer builds the surface renderer. The configuration must be valid.
func (c Config) Visualizer() *surface.Visualizer {
	method, err := surface.ParseMethod(c.Method)
	if err != nil {
		panic(err)
	}

	return surface.NewVisualizerBuilder().
		WithOutputDir(c.OutputDir).
		WithMethod(method).
		WithGridSize(c.GridSize).
		WithFormat(c.Format).
		Build()
}
