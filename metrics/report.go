package metrics

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/schedbench/record"
)

// RecordTableName is the name of the recorded metrics table.
const RecordTableName = "metrics"

// WriteTable renders the records as a text table followed by the parse
// summary.
func WriteTable(w io.Writer, t Table, report ParseReport) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetTitle("Scheduler Metrics")

	header := table.Row{"#"}
	for _, f := range BlockFields {
		header = append(header, f.Name())
	}
	tw.AppendHeader(header)

	for i, r := range t.Records {
		row := table.Row{i + 1}
		for _, f := range BlockFields {
			row = append(row, r.Value(f))
		}
		tw.AppendRow(row)
	}

	tw.AppendFooter(table.Row{
		"",
		"records", report.Records,
		"discarded", report.Discarded,
		"abandoned", report.Abandoned,
	})

	tw.Render()
}

// RecordTable stores the records in the run record.
func RecordTable(rec record.Recorder, t Table) {
	rec.CreateTable(RecordTableName, Record{})

	for _, r := range t.Records {
		rec.InsertData(RecordTableName, r)
	}
}
