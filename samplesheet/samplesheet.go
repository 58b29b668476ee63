// Package samplesheet joins admissible chips against the sample sheet, which
// carries each chip's group label ("patient42.C") and thereby its class
// suffix.
package samplesheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/carbocation/chipqc/chipid"
)

// Layout names the sheet columns to read. A column is referenced by its
// header text, or by zero-based position written as "#2".
type Layout struct {
	ChipIDColumn     string `json:"chip_id_column"`
	GroupLabelColumn string `json:"group_label_column"`
}

// DefaultLayout matches the core facility's sheet export: chip id in the third
// column, group label in the fourth.
var DefaultLayout = Layout{
	ChipIDColumn:     "#2",
	GroupLabelColumn: "#3",
}

type Record struct {
	ChipID     string
	GroupLabel string
}

// AnnotatedChip is an admissible chip joined to its class suffix.
type AnnotatedChip struct {
	ChipID string
	Suffix string
}

// Label returns the chip id with its suffix attached, e.g. "GSM123.C".
func (a AnnotatedChip) Label() string {
	return chipid.WithSuffix(a.ChipID, a.Suffix)
}

// MalformedLabelError reports a group label without a class suffix on a chip
// that would otherwise be used.
type MalformedLabelError struct {
	ChipID     string
	GroupLabel string
}

func (e *MalformedLabelError) Error() string {
	return fmt.Sprintf("Chip ID %s does not have a proper label (%q has no .SUFFIX component)", e.ChipID, e.GroupLabel)
}

// Membership is satisfied by qc.ChipSet.
type Membership interface {
	ContainsExact(id string) bool
}

// Parse types the sample sheet. The first row is the header.
func Parse(rows [][]string, layout Layout) ([]Record, error) {
	if len(rows) < 1 {
		return nil, fmt.Errorf("Sample sheet has no header row")
	}

	colChipID, err := resolveColumn(rows[0], layout.ChipIDColumn)
	if err != nil {
		return nil, err
	}
	colGroupLabel, err := resolveColumn(rows[0], layout.GroupLabelColumn)
	if err != nil {
		return nil, err
	}

	need := colChipID
	if colGroupLabel > need {
		need = colGroupLabel
	}

	out := make([]Record, 0, len(rows)-1)
	for i, cols := range rows[1:] {
		if len(cols) <= need {
			return nil, fmt.Errorf("Sample sheet line %d has %d columns, expected at least %d", i+2, len(cols), need+1)
		}
		out = append(out, Record{
			ChipID:     strings.TrimSpace(cols[colChipID]),
			GroupLabel: strings.TrimSpace(cols[colGroupLabel]),
		})
	}

	return out, nil
}

func resolveColumn(header []string, ref string) (int, error) {
	if strings.HasPrefix(ref, "#") {
		col, err := strconv.Atoi(ref[1:])
		if err != nil || col < 0 {
			return 0, fmt.Errorf("Column reference %q is not a valid position", ref)
		}
		if col >= len(header) {
			return 0, fmt.Errorf("Column reference %q is beyond the %d header columns", ref, len(header))
		}
		return col, nil
	}

	for col, v := range header {
		if strings.TrimSpace(v) == ref {
			return col, nil
		}
	}

	return 0, fmt.Errorf("Expected to find header column %q, but found only %v", ref, header)
}

// Annotate emits, in sheet order, each record whose chip id (as written in
// the sheet, without normalization) is admissible. Admissible chips missing
// from the sheet are dropped. A malformed label on an admissible chip is an
// error; a chip listed twice keeps its first record.
func Annotate(admissible Membership, records []Record) ([]AnnotatedChip, error) {
	out := make([]AnnotatedChip, 0)
	seen := make(map[string]struct{})

	for _, rec := range records {
		if !admissible.ContainsExact(rec.ChipID) {
			continue
		}

		suffix, ok := chipid.Suffix(rec.GroupLabel)
		if !ok {
			return nil, &MalformedLabelError{ChipID: rec.ChipID, GroupLabel: rec.GroupLabel}
		}

		if _, exists := seen[rec.ChipID]; exists {
			continue
		}
		seen[rec.ChipID] = struct{}{}

		out = append(out, AnnotatedChip{ChipID: rec.ChipID, Suffix: suffix})
	}

	return out, nil
}
