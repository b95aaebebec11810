// Package raceline holds the racing-line waypoint table: an ordered header and
// a fixed number of records whose x and y columns are the only mutable cells.
package raceline

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"

	"raceline-editor/internal/common"
)

// Reserved column names.
const (
	ColumnX = "x"
	ColumnY = "y"
)

var (
	ErrIndexOutOfRange = errors.New("waypoint index out of range")
	ErrNonFinite       = errors.New("coordinate is not finite")
)

// Record is a read-only view of one row. Values are stored in header order.
type Record struct {
	header []string
	values []Value
}

// Get returns the value of the named column.
func (r Record) Get(column string) (Value, bool) {
	i := slices.Index(r.header, column)
	if i < 0 {
		return Value{}, false
	}
	return r.values[i], true
}

// Values returns a copy of the row in header order.
func (r Record) Values() []Value {
	return slices.Clone(r.values)
}

// Table is an ordered sequence of waypoint records plus the header captured at
// load time. The header and the record count never change; only the x and y
// cells of existing records can be overwritten.
type Table struct {
	header   []string
	rows     [][]Value
	xCol     int
	yCol     int
	crlf     bool
	baseline uint64
}

// NewTable builds a table from a header and rows of raw cells. x and y are
// parsed as numbers; every other cell is kept as text.
func NewTable(header []string, rows [][]string) (*Table, error) {
	t, err := newTable(header)
	if err != nil {
		return nil, err
	}
	for i, raw := range rows {
		row, err := t.parseRow(raw)
		if err != nil {
			return nil, &common.LoadError{Line: i + 2, Err: err}
		}
		t.rows = append(t.rows, row)
	}
	t.baseline = t.Fingerprint()
	return t, nil
}

func newTable(header []string) (*Table, error) {
	t := &Table{header: slices.Clone(header), xCol: -1, yCol: -1}
	seen := make(map[string]bool, len(header))
	for i, name := range header {
		if seen[name] {
			return nil, &common.LoadError{Line: 1, Err: fmt.Errorf("duplicate column %q", name)}
		}
		seen[name] = true
		switch name {
		case ColumnX:
			t.xCol = i
		case ColumnY:
			t.yCol = i
		}
	}
	if t.xCol < 0 || t.yCol < 0 {
		return nil, &common.LoadError{Line: 1, Err: fmt.Errorf("header must contain %q and %q columns", ColumnX, ColumnY)}
	}
	return t, nil
}

func (t *Table) parseRow(raw []string) ([]Value, error) {
	if len(raw) != len(t.header) {
		return nil, fmt.Errorf("row has %d fields, header has %d", len(raw), len(t.header))
	}
	row := make([]Value, len(raw))
	for i, cell := range raw {
		if i != t.xCol && i != t.yCol {
			row[i] = StringValue(cell)
			continue
		}
		f, err := parseCoordinate(cell)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", t.header[i], err)
		}
		row[i] = parsedNumber(cell, f)
	}
	return row, nil
}

// Header returns a copy of the column names in file order.
func (t *Table) Header() []string {
	return slices.Clone(t.header)
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.rows)
}

// Record returns a read-only view of record i.
func (t *Table) Record(i int) (Record, error) {
	if i < 0 || i >= len(t.rows) {
		return Record{}, ErrIndexOutOfRange
	}
	return Record{header: t.header, values: t.rows[i]}, nil
}

// Position returns the x/y cells of record i.
func (t *Table) Position(i int) (common.Vec2, error) {
	if i < 0 || i >= len(t.rows) {
		return common.Vec2{}, ErrIndexOutOfRange
	}
	x, _ := t.rows[i][t.xCol].Number()
	y, _ := t.rows[i][t.yCol].Number()
	return common.Vec2{X: x, Y: y}, nil
}

// Positions returns every record's position in table order.
func (t *Table) Positions() []common.Vec2 {
	pts := make([]common.Vec2, len(t.rows))
	for i := range t.rows {
		pts[i], _ = t.Position(i)
	}
	return pts
}

// SetPosition overwrites the x/y cells of record i. No other cell changes.
func (t *Table) SetPosition(i int, p common.Vec2) error {
	if i < 0 || i >= len(t.rows) {
		return ErrIndexOutOfRange
	}
	if !p.IsFinite() {
		return ErrNonFinite
	}
	t.rows[i][t.xCol] = NumberValue(p.X)
	t.rows[i][t.yCol] = NumberValue(p.Y)
	return nil
}

// Fingerprint hashes the serialized content of every record.
func (t *Table) Fingerprint() uint64 {
	d := xxhash.New()
	for _, row := range t.rows {
		for _, v := range row {
			_, _ = d.WriteString(v.String())
			_, _ = d.Write([]byte{0})
		}
		_, _ = d.Write([]byte{'\n'})
	}
	return d.Sum64()
}

// Modified reports whether the table would serialize differently from the
// content it was loaded with.
func (t *Table) Modified() bool {
	return t.Fingerprint() != t.baseline
}

// MarkSaved makes the current content the new baseline for Modified.
func (t *Table) MarkSaved() {
	t.baseline = t.Fingerprint()
}
