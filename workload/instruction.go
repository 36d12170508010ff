package workload

import (
	"fmt"
	"strings"
)

// Opcode is the mnemonic of an instruction understood by the osx assembler.
type Opcode string

const (
	OpInitialize Opcode = "MVI"
	OpCompute    Opcode = "ADD"
	OpInterrupt  Opcode = "SWI"
)

// Interrupt codes used by generated programs.
const (
	InterruptExit = 1
	InterruptIO   = 21
)

// Instruction is one line of a generated program.
type Instruction struct {
	Op       Opcode
	Operands []string
}

// Initialize loads an immediate value into a register.
func Initialize(reg int, value int) Instruction {
	return Instruction{
		Op:       OpInitialize,
		Operands: []string{register(reg), fmt.Sprint(value)},
	}
}

// Compute adds two registers into dst.
func Compute(dst, src1, src2 int) Instruction {
	return Instruction{
		Op:       OpCompute,
		Operands: []string{register(dst), register(src1), register(src2)},
	}
}

// Interrupt raises a software interrupt with the given code.
func Interrupt(code int) Instruction {
	return Instruction{
		Op:       OpInterrupt,
		Operands: []string{fmt.Sprint(code)},
	}
}

// String renders the instruction as "<OPCODE> <operands>".
func (i Instruction) String() string {
	if len(i.Operands) == 0 {
		return string(i.Op)
	}

	return string(i.Op) + " " + strings.Join(i.Operands, " ")
}

// IsCompute reports whether the instruction is the placeholder compute op.
func (i Instruction) IsCompute() bool {
	return i.Op == OpCompute
}

// IsInterrupt reports whether the instruction is a software interrupt.
func (i Instruction) IsInterrupt() bool {
	return i.Op == OpInterrupt
}

func register(n int) string {
	return fmt.Sprintf("R%d", n)
}
