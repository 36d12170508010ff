package workload

import (
	"bufio"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/sarchlab/schedbench/util"
)

// Generator produces random instruction traces. It is not safe for
// concurrent use because it owns its random source.
type Generator struct {
	rng       *rand.Rand
	outputDir string
}

// OutputDir returns the directory programs are written to.
func (g *Generator) OutputDir() string {
	return g.outputDir
}

// Generate creates one program of the given tier and kind. The program
// always starts with "MVI R0 0", "MVI R1 1" and ends with "SWI 1".
func (g *Generator) Generate(tier Tier, kind Kind, replica int) Program {
	if tier.BodyLines < 0 {
		panic("tier body lines must not be negative")
	}

	insts := make([]Instruction, 0, tier.BodyLines+fixedLines)
	insts = append(insts, header...)

	weight := kind.computeWeight()
	for i := 0; i < tier.BodyLines; i++ {
		insts = append(insts, g.drawLine(weight))
	}

	insts = append(insts, trailer)

	return Program{
		Name:         ProgramName(tier, kind, replica),
		Tier:         tier,
		Kind:         kind,
		Replica:      replica,
		Instructions: insts,
	}
}

func (g *Generator) drawLine(weight int) Instruction {
	if g.rng.Intn(10) < weight {
		return computeLine
	}

	return interruptLine
}

// Write stores the program under the output directory and records the path
// in the program.
func (g *Generator) Write(p *Program) error {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create program dir: %w", err)
	}

	path := filepath.Join(g.outputDir, p.FileName())

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create program file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, inst := range p.Instructions {
		if _, err := fmt.Fprintln(w, inst.String()); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	p.Path = path

	return nil
}

// GenerateAll generates and writes every program of the tiers. Programs are
// returned in link order: tier order, then replica, then CPU before IO.
func (g *Generator) GenerateAll(tiers []Tier) ([]Program, error) {
	var programs []Program

	for _, tier := range tiers {
		for replica := 1; replica <= tier.Replicas; replica++ {
			for _, kind := range Kinds {
				p := g.Generate(tier, kind, replica)
				if err := g.Write(&p); err != nil {
					return programs, err
				}

				util.Trace("ProgramWritten",
					"name", p.Name,
					"path", p.Path,
					"instructions", len(p.Instructions))

				programs = append(programs, p)
			}
		}
	}

	slog.Info("workload generated",
		"programs", len(programs),
		"dir", g.outputDir)

	return programs, nil
}
