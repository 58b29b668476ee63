package labels

import (
	"encoding/csv"
	"io"

	"github.com/carbocation/chipqc/samplesheet"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// Assignment is one row of the chip/label/partition table.
type Assignment struct {
	Chip       string    `csv:"chip_id"`
	ClassLabel int       `csv:"class_label"`
	Partition  Partition `csv:"partition_flag"`
}

// Assign codes each annotated chip under scheme and draws its partition, in
// the order given. An unknown suffix fails the whole assignment.
func Assign(chips []samplesheet.AnnotatedChip, scheme Scheme, splitter Splitter) ([]Assignment, error) {
	if err := splitter.Validate(); err != nil {
		return nil, err
	}

	out := make([]Assignment, 0, len(chips))
	for _, c := range chips {
		code, err := scheme.Code(c.Suffix)
		if err != nil {
			return nil, err
		}
		out = append(out, Assignment{
			Chip:       c.Label(),
			ClassLabel: code,
			Partition:  splitter.Draw(),
		})
	}

	return out, nil
}

// CountTest returns how many assignments landed in the test partition.
func CountTest(rows []Assignment) int {
	n := 0
	for _, r := range rows {
		if r.Partition == Test {
			n++
		}
	}

	return n
}

// WriteAssignments writes the chip/label/partition table, tab-delimited, with
// a header row.
func WriteAssignments(w io.Writer, rows []Assignment) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(cw)); err != nil {
		return pfx.Err(err)
	}

	cw.Flush()
	return pfx.Err(cw.Error())
}
