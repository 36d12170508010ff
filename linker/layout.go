// Package linker assigns link offsets to generated programs and runs the
// external assembler on each of them.
package linker

import "github.com/sarchlab/schedbench/workload"

// Encoding describes how the simulator sizes a program in memory. The values
// belong to the simulator's loader and are not derived here.
type Encoding struct {
	BytesPerLine uint64 `yaml:"bytes_per_line"`
	Overhead     uint64 `yaml:"overhead"`
}

// DefaultEncoding is the encoding of the osx loader.
var DefaultEncoding = Encoding{
	BytesPerLine: 6,
	Overhead:     10,
}

// Size returns the number of bytes reserved for the program.
func (e Encoding) Size(p workload.Program) uint64 {
	return uint64(p.Tier.BodyLines)*e.BytesPerLine + e.Overhead
}

// LinkOffset is the address a program is linked at.
type LinkOffset struct {
	Program workload.Program
	Offset  uint64
	Outcome ToolOutcome
}

// Layout folds over the programs in order and gives each one the running
// offset, starting at 0. The i+1-th offset is the i-th offset plus the size
// of the i-th program.
func Layout(programs []workload.Program, enc Encoding) []LinkOffset {
	offsets := make([]LinkOffset, 0, len(programs))

	var cursor uint64
	for _, p := range programs {
		offsets = append(offsets, LinkOffset{Program: p, Offset: cursor})
		cursor += enc.Size(p)
	}

	return offsets
}
