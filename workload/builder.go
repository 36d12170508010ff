package workload

import (
	"math/rand"
	"time"
)

// GeneratorBuilder can create new generators.
type GeneratorBuilder struct {
	rng       *rand.Rand
	seed      int64
	hasSeed   bool
	outputDir string
}

// NewGeneratorBuilder returns a builder that writes to "programs" and seeds
// from the clock.
func NewGeneratorBuilder() GeneratorBuilder {
	return GeneratorBuilder{
		outputDir: "programs",
	}
}

// WithSeed makes the generated programs reproducible.
func (b GeneratorBuilder) WithSeed(seed int64) GeneratorBuilder {
	b.seed = seed
	b.hasSeed = true
	return b
}

// WithRand sets the random source directly. It takes precedence over
// WithSeed.
func (b GeneratorBuilder) WithRand(rng *rand.Rand) GeneratorBuilder {
	b.rng = rng
	return b
}

// WithOutputDir sets the directory programs are written to.
func (b GeneratorBuilder) WithOutputDir(dir string) GeneratorBuilder {
	b.outputDir = dir
	return b
}

// Build creates a generator.
func (b GeneratorBuilder) Build() *Generator {
	rng := b.rng
	if rng == nil {
		seed := b.seed
		if !b.hasSeed {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	return &Generator{
		rng:       rng,
		outputDir: b.outputDir,
	}
}
