package metrics

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
)

// Recovery decides where parsing resumes after a malformed block.
type Recovery int

const (
	// FixedStride skips the whole six-line window, whatever it contained.
	FixedStride Recovery = iota
	// ScanToLabel resumes at the next line labelled with the first block
	// field. Windows must also carry the expected labels in this mode.
	ScanToLabel
)

// Name returns the configuration name of the recovery mode.
func (r Recovery) Name() string {
	switch r {
	case FixedStride:
		return "fixed"
	case ScanToLabel:
		return "scan"
	default:
		panic("invalid recovery")
	}
}

// ParseRecovery finds a recovery mode by its configuration name.
func ParseRecovery(name string) (Recovery, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "fixed":
		return FixedStride, nil
	case "scan":
		return ScanToLabel, nil
	default:
		return 0, fmt.Errorf("unknown recovery mode %q", name)
	}
}

// Reasons a line of a block is rejected.
var (
	ErrMissingColon  = errors.New("missing colon")
	ErrBadValue      = errors.New("value is not a finite number")
	ErrLabelMismatch = errors.New("unexpected label")
)

// Issue describes a discarded block.
type Issue struct {
	// Line is the 1-based line number where the block started.
	Line int
	// Field is the field whose line was rejected.
	Field Field
	Text  string
	Err   error
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d (%s): %v: %q", i.Line, i.Field.Name(), i.Err, i.Text)
}

// ParseReport summarizes a parse.
type ParseReport struct {
	Records   int
	Discarded int
	Skipped   int
	// Abandoned is the number of trailing lines too short to form a block.
	Abandoned int
	Issues    []Issue
}

// ParserBuilder can create new parsers.
type ParserBuilder struct {
	recovery Recovery
}

// NewParserBuilder returns a builder for a fixed-stride parser.
func NewParserBuilder() ParserBuilder {
	return ParserBuilder{recovery: FixedStride}
}

// WithRecovery sets where parsing resumes after a malformed block.
func (b ParserBuilder) WithRecovery(r Recovery) ParserBuilder {
	b.recovery = r
	return b
}

// Build creates a parser.
func (b ParserBuilder) Build() *Parser {
	return &Parser{recovery: b.recovery}
}

// Parser reads metric blocks. A block is six "label: value" lines in
// BlockFields order. Header lines ("---...") and "file:" lines between
// blocks are skipped.
type Parser struct {
	recovery Recovery
}

// Parse turns lines into a table. Malformed blocks are dropped and listed in
// the report; content never makes Parse fail.
//
// Marker lines are recognised only where a block may start, and each one is
// counted in Skipped. Markers ahead of a short tail are therefore skipped
// rather than abandoned: Abandoned counts the lines from the first
// non-marker line that has fewer than six lines after it, markers inside
// that tail included.
func (p *Parser) Parse(lines []string) (Table, ParseReport) {
	var (
		table  Table
		report ParseReport
	)

	blockLen := len(BlockFields)

	i := 0
	for i < len(lines) {
		if isMarker(lines[i]) {
			report.Skipped++
			i++
			continue
		}

		if len(lines)-i < blockLen {
			report.Abandoned = len(lines) - i
			slog.Warn("incomplete metric block at end of input",
				"line", i+1,
				"abandoned", report.Abandoned)
			break
		}

		rec, issue, ok := p.parseBlock(lines[i:i+blockLen], i+1)
		if ok {
			table.Append(rec)
			i += blockLen
			continue
		}

		report.Discarded++
		report.Issues = append(report.Issues, issue)
		slog.Warn("discarded metric block", "issue", issue.String())

		i = p.resume(lines, i)
	}

	report.Records = table.Len()

	return table, report
}

func (p *Parser) parseBlock(block []string, firstLine int) (Record, Issue, bool) {
	var rec Record

	for k, f := range BlockFields {
		label, v, err := parseLine(block[k])
		if err == nil && p.recovery == ScanToLabel && !f.matchesLabel(label) {
			err = ErrLabelMismatch
		}

		if err != nil {
			return Record{}, Issue{
				Line:  firstLine,
				Field: f,
				Text:  block[k],
				Err:   err,
			}, false
		}

		rec.set(f, v)
	}

	return rec, Issue{}, true
}

func (p *Parser) resume(lines []string, start int) int {
	if p.recovery == FixedStride {
		return start + len(BlockFields)
	}

	for j := start + 1; j < len(lines); j++ {
		if isMarker(lines[j]) || startsBlock(lines[j]) {
			return j
		}
	}

	return len(lines)
}

func startsBlock(line string) bool {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return false
	}

	return BlockFields[0].matchesLabel(line[:idx])
}

func isMarker(line string) bool {
	s := strings.TrimSpace(line)

	return strings.HasPrefix(s, "---") ||
		strings.HasPrefix(strings.ToLower(s), "file:")
}

// parseLine splits "label: value". As in the simulator's own tooling, only
// the text between the first and second colon is the value.
func parseLine(line string) (string, float64, error) {
	parts := strings.Split(line, ":")
	if len(parts) < 2 {
		return "", 0, ErrMissingColon
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return parts[0], 0, ErrBadValue
	}

	return parts[0], v, nil
}

// ParseFile reads and parses a metrics file. Only I/O problems are errors.
func (p *Parser) ParseFile(path string) (Table, ParseReport, error) {
	file, err := os.Open(path)
	if err != nil {
		return Table{}, ParseReport{}, fmt.Errorf("failed to open metrics file: %w", err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return Table{}, ParseReport{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	table, report := p.Parse(lines)

	return table, report, nil
}
