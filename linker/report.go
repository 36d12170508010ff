package linker

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/schedbench/record"
)

// OffsetTable is the name of the recorded layout table.
const OffsetTable = "link_offsets"

// offsetEntry is one recorded row of the layout.
type offsetEntry struct {
	Program  string
	Tier     string
	Kind     string
	Replica  int
	Lines    int
	Offset   int
	ExitCode int
}

// WriteLayout renders the layout as a text table.
func WriteLayout(w io.Writer, offsets []LinkOffset) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Link Layout")
	t.AppendHeader(table.Row{"Program", "Tier", "Kind", "Body Lines", "Offset", "Exit"})

	for _, lo := range offsets {
		exit := fmt.Sprint(lo.Outcome.ExitCode)
		if lo.Outcome.Err != nil && lo.Outcome.ExitCode < 0 {
			exit = "not run"
		}

		t.AppendRow(table.Row{
			lo.Program.Name,
			lo.Program.Tier.Label,
			lo.Program.Kind.Name(),
			lo.Program.Tier.BodyLines,
			lo.Offset,
			exit,
		})
	}

	t.Render()
}

// RecordLayout stores the layout in the run record.
func RecordLayout(rec record.Recorder, offsets []LinkOffset) {
	rec.CreateTable(OffsetTable, offsetEntry{})

	for _, lo := range offsets {
		rec.InsertData(OffsetTable, offsetEntry{
			Program:  lo.Program.Name,
			Tier:     lo.Program.Tier.Label,
			Kind:     lo.Program.Kind.Name(),
			Replica:  lo.Program.Replica,
			Lines:    lo.Program.Tier.BodyLines,
			Offset:   int(lo.Offset),
			ExitCode: lo.Outcome.ExitCode,
		})
	}
}
