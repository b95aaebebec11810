package raceline

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"raceline-editor/internal/common"
)

// Load reads the waypoint CSV at path.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &common.LoadError{Path: path, Err: err}
	}
	t, err := Parse(data)
	if err != nil {
		return nil, common.WithPath(err, path)
	}
	return t, nil
}

// Read is Parse on everything readable from r.
func Read(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &common.LoadError{Err: err}
	}
	return Parse(data)
}

// Parse decodes a header row followed by data rows. Blank lines are skipped;
// rows whose field count differs from the header are rejected. The line
// terminator style of the input is remembered for Encode.
func Parse(data []byte) (*Table, error) {
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &common.LoadError{Err: errors.New("empty waypoint file")}
	}
	if err != nil {
		return nil, &common.LoadError{Line: 1, Err: err}
	}

	t, err := newTable(header)
	if err != nil {
		return nil, err
	}
	t.crlf = bytes.Contains(data, []byte("\r\n"))

	for {
		raw, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &common.LoadError{Line: pe.StartLine, Err: pe.Err}
			}
			return nil, &common.LoadError{Err: err}
		}
		line, _ := cr.FieldPos(0)
		row, err := t.parseRow(raw)
		if err != nil {
			return nil, &common.LoadError{Line: line, Err: err}
		}
		t.rows = append(t.rows, row)
	}
	t.baseline = t.Fingerprint()
	return t, nil
}

// Encode serializes the table with its original header. Unedited cells are
// written exactly as read; edited coordinates use FormatNumber.
func (t *Table) Encode(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = t.crlf
	if err := cw.Write(t.header); err != nil {
		return err
	}
	record := make([]string, len(t.header))
	for _, row := range t.rows {
		for i, v := range row {
			record[i] = v.String()
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func parseCoordinate(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNonFinite, s)
	}
	return f, nil
}
