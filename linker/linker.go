package linker

import (
	"log/slog"
	"strconv"

	"github.com/sarchlab/schedbench/util"
	"github.com/sarchlab/schedbench/workload"
)

// Builder can create new linkers.
type Builder struct {
	tool     string
	runner   ToolRunner
	encoding Encoding
}

// NewBuilder returns a builder that runs "osx" with the default encoding.
func NewBuilder() Builder {
	return Builder{
		tool:     "osx",
		runner:   ExecRunner{},
		encoding: DefaultEncoding,
	}
}

// WithTool sets the path of the assembler.
func (b Builder) WithTool(tool string) Builder {
	b.tool = tool
	return b
}

// WithRunner sets how the assembler is invoked.
func (b Builder) WithRunner(runner ToolRunner) Builder {
	b.runner = runner
	return b
}

// WithEncoding sets the program size encoding.
func (b Builder) WithEncoding(enc Encoding) Builder {
	if enc.BytesPerLine == 0 {
		panic("bytes per line must be positive")
	}
	b.encoding = enc
	return b
}

// Build creates a linker.
func (b Builder) Build() *Linker {
	return &Linker{
		tool:     b.tool,
		runner:   b.runner,
		encoding: b.encoding,
	}
}

// Linker lays out programs and assembles them one after the other. Calls
// must not overlap if the tool shares state between runs.
type Linker struct {
	tool     string
	runner   ToolRunner
	encoding Encoding
}

// Encoding returns the size encoding the linker lays programs out with.
func (l *Linker) Encoding() Encoding {
	return l.encoding
}

// LayoutAndCompile assigns offsets to the programs and runs
// "<tool> <path> <offset>" for each of them in order. A failing tool is
// logged and recorded in the returned outcome; it never stops the pass or
// changes later offsets.
func (l *Linker) LayoutAndCompile(programs []workload.Program) []LinkOffset {
	offsets := Layout(programs, l.encoding)

	failed := 0
	for i := range offsets {
		lo := &offsets[i]
		args := []string{lo.Program.Path, strconv.FormatUint(lo.Offset, 10)}

		lo.Outcome = l.runner.Run(l.tool, args)

		util.Trace("ToolOutput",
			"program", lo.Program.Name,
			"output", lo.Outcome.Output)

		if lo.Outcome.Failed() {
			failed++
			slog.Warn("assembler failed",
				"program", lo.Program.Name,
				"offset", lo.Offset,
				"exit", lo.Outcome.ExitCode,
				"err", lo.Outcome.Err)
			continue
		}

		slog.Info("assembled",
			"program", lo.Program.Name,
			"offset", lo.Offset,
			"exit", lo.Outcome.ExitCode)
	}

	if failed > 0 {
		slog.Warn("some programs failed to assemble",
			"failed", failed,
			"total", len(offsets))
	}

	return offsets
}
