// Package workload synthesizes the CPU- and IO-bound instruction traces fed
// to the scheduler simulator.
package workload

import "fmt"

// Kind tells whether a program is mostly computation or mostly interrupts.
type Kind int

const (
	CPU Kind = iota
	IO
)

// Kinds lists the program kinds in generation order.
var Kinds = []Kind{CPU, IO}

// Name returns the name of the kind.
func (k Kind) Name() string {
	switch k {
	case CPU:
		return "CPU"
	case IO:
		return "IO"
	default:
		panic("invalid kind")
	}
}

func (k Kind) String() string {
	return k.Name()
}

// computeWeight is the chance, out of 10, that a body line is a compute
// instruction.
func (k Kind) computeWeight() int {
	switch k {
	case CPU:
		return 9
	case IO:
		return 5
	default:
		panic("invalid kind")
	}
}

// Tier is a workload size class.
type Tier struct {
	// Label is the short display name used in file names, e.g. "S".
	Label string `yaml:"label"`
	// BodyLines is the number of random instructions between the fixed
	// header and trailer.
	BodyLines int `yaml:"body_lines"`
	// Replicas is how many programs of each kind the tier produces.
	Replicas int `yaml:"replicas"`
}

// Program is a generated instruction trace.
type Program struct {
	Name         string
	Tier         Tier
	Kind         Kind
	Replica      int
	Instructions []Instruction

	// Path is where the program was written. Empty until written.
	Path string
}

// ProgramName returns the file stem of a program, e.g. "S-CPU-1".
func ProgramName(tier Tier, kind Kind, replica int) string {
	return fmt.Sprintf("%s-%s-%d", tier.Label, kind.Name(), replica)
}

// FileName returns the file name the program is written to.
func (p Program) FileName() string {
	return p.Name + ".asm"
}

// Body returns the instructions between the fixed header and trailer.
func (p Program) Body() []Instruction {
	if len(p.Instructions) < fixedLines {
		return nil
	}

	return p.Instructions[len(header) : len(p.Instructions)-1]
}

var header = []Instruction{
	Initialize(0, 0),
	Initialize(1, 1),
}

var trailer = Interrupt(InterruptExit)

var (
	computeLine   = Compute(0, 0, 1)
	interruptLine = Interrupt(InterruptIO)
)

const fixedLines = 3
