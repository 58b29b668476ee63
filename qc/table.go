package qc

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/guregu/null.v3"
)

// Kind is the type of a QC metric column, fixed once when the table is
// parsed.
type Kind byte

const (
	Numeric Kind = iota
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	}

	return fmt.Sprintf("Kind(%d)", k)
}

type Column struct {
	Name string
	Kind Kind
}

// Metric is one QC cell. Value is valid only for non-missing cells of numeric
// columns; Text always holds the trimmed cell.
type Metric struct {
	Value null.Float
	Text  string
}

// Record is one row of the QC table. ChipID is exactly as it appears in the
// table, suffix included.
type Record struct {
	ChipID  string
	Metrics map[string]Metric
}

type Table struct {
	IDColumn string
	Columns  []Column
	Records  []Record
}

// Column returns the named metric column.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}

	return Column{}, false
}

// ColumnNames lists the metric columns in file order.
func (t Table) ColumnNames() []string {
	out := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		out = append(out, c.Name)
	}

	return out
}

// IsMissing reports whether a cell holds no value.
func IsMissing(cell string) bool {
	switch strings.ToLower(cell) {
	case "", "na", "nan", "null":
		return true
	}

	return false
}

// ParseTable types a QC table. The first row is the header, column 0 holds
// the chip identifier and each further column is a named metric. A column is
// numeric when all of its non-missing cells parse as floats.
func ParseTable(rows [][]string) (Table, error) {
	if len(rows) < 1 || len(rows[0]) < 1 {
		return Table{}, fmt.Errorf("%w: no header row", ErrMalformed)
	}

	header := rows[0]
	out := Table{
		IDColumn: strings.TrimSpace(header[0]),
		Columns:  make([]Column, 0, len(header)-1),
		Records:  make([]Record, 0, len(rows)-1),
	}

	seen := make(map[string]struct{})
	for _, name := range header[1:] {
		name = strings.TrimSpace(name)
		if _, exists := seen[name]; exists {
			return Table{}, fmt.Errorf("%w: column %q appears more than once", ErrMalformed, name)
		}
		seen[name] = struct{}{}
		out.Columns = append(out.Columns, Column{Name: name, Kind: Numeric})
	}

	// Pass 1: shape check and column kinds
	for i, row := range rows[1:] {
		if len(row) != len(header) {
			return Table{}, fmt.Errorf("%w: line %d has %d fields, header has %d", ErrMalformed, i+2, len(row), len(header))
		}
		for j := range out.Columns {
			cell := strings.TrimSpace(row[j+1])
			if IsMissing(cell) {
				continue
			}
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				out.Columns[j].Kind = Categorical
			}
		}
	}

	// Pass 2: typed records
	for _, row := range rows[1:] {
		rec := Record{
			ChipID:  strings.TrimSpace(row[0]),
			Metrics: make(map[string]Metric, len(out.Columns)),
		}
		for j, col := range out.Columns {
			cell := strings.TrimSpace(row[j+1])
			m := Metric{Text: cell}
			if col.Kind == Numeric && !IsMissing(cell) {
				v, _ := strconv.ParseFloat(cell, 64)
				m.Value = null.FloatFrom(v)
			}
			rec.Metrics[col.Name] = m
		}
		out.Records = append(out.Records, rec)
	}

	return out, nil
}
