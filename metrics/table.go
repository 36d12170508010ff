// Package metrics turns the simulator's textual metrics output into a table
// of records.
package metrics

import (
	"errors"
	"fmt"
	"strings"
)

// Field is one of the six measurements of a metric block.
type Field int

// Fields in the order they appear in a metric block.
const (
	Throughput Field = iota
	WaitingTime
	TurnaroundTime
	ResponseTime
	Quantum1
	Quantum2
)

// BlockFields lists the fields in block order.
var BlockFields = []Field{
	Throughput,
	WaitingTime,
	TurnaroundTime,
	ResponseTime,
	Quantum1,
	Quantum2,
}

// PlottedFields lists the fields drawn as surfaces over the two quanta.
var PlottedFields = []Field{
	Throughput,
	WaitingTime,
	TurnaroundTime,
	ResponseTime,
}

// ErrUnknownField is returned when a name does not match any field.
var ErrUnknownField = errors.New("unknown metric field")

// Name returns the name of the field.
func (f Field) Name() string {
	switch f {
	case Throughput:
		return "Throughput"
	case WaitingTime:
		return "WaitingTime"
	case TurnaroundTime:
		return "TurnaroundTime"
	case ResponseTime:
		return "ResponseTime"
	case Quantum1:
		return "Quantum1"
	case Quantum2:
		return "Quantum2"
	default:
		panic("invalid field")
	}
}

func (f Field) String() string {
	return f.Name()
}

// matchesLabel reports whether a block label such as "Waiting Time" names the
// field.
func (f Field) matchesLabel(label string) bool {
	return normalizeLabel(label) == strings.ToLower(f.Name())
}

// ParseField finds a field by name. Spaces, dashes and underscores are
// ignored and case does not matter, so "waiting_time" is WaitingTime.
func ParseField(name string) (Field, error) {
	for _, f := range BlockFields {
		if f.matchesLabel(name) {
			return f, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

func normalizeLabel(label string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '_', '-':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(label)))
}

// Record is the measurements of one simulation run.
type Record struct {
	Quantum1       float64
	Quantum2       float64
	Throughput     float64
	WaitingTime    float64
	TurnaroundTime float64
	ResponseTime   float64
}

// Value returns the value of a field.
func (r Record) Value(f Field) float64 {
	switch f {
	case Throughput:
		return r.Throughput
	case WaitingTime:
		return r.WaitingTime
	case TurnaroundTime:
		return r.TurnaroundTime
	case ResponseTime:
		return r.ResponseTime
	case Quantum1:
		return r.Quantum1
	case Quantum2:
		return r.Quantum2
	default:
		panic("invalid field")
	}
}

func (r *Record) set(f Field, v float64) {
	switch f {
	case Throughput:
		r.Throughput = v
	case WaitingTime:
		r.WaitingTime = v
	case TurnaroundTime:
		r.TurnaroundTime = v
	case ResponseTime:
		r.ResponseTime = v
	case Quantum1:
		r.Quantum1 = v
	case Quantum2:
		r.Quantum2 = v
	default:
		panic("invalid field")
	}
}

// Table holds records in parse order.
type Table struct {
	Records []Record
}

// Len returns the number of records.
func (t Table) Len() int {
	return len(t.Records)
}

// IsEmpty reports whether the table has no records.
func (t Table) IsEmpty() bool {
	return len(t.Records) == 0
}

// Append adds a record at the end of the table.
func (t *Table) Append(r Record) {
	t.Records = append(t.Records, r)
}

// Column returns the values of one field in record order.
func (t Table) Column(f Field) []float64 {
	col := make([]float64, len(t.Records))
	for i, r := range t.Records {
		col[i] = r.Value(f)
	}

	return col
}
