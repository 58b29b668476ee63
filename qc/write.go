package qc

import (
	"encoding/csv"
	"io"
	"sort"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// Rejection is one row of the rejection report.
type Rejection struct {
	ChipID         string `csv:"chip_id"`
	FailedCriteria string `csv:"failed_criteria"`
}

// Rejections lists flagged chips in chip id order.
func (f Flags) Rejections() []*Rejection {
	chips := make([]string, 0, len(f))
	for k := range f {
		chips = append(chips, k)
	}
	sort.Strings(chips)

	out := make([]*Rejection, 0, len(chips))
	for _, chip := range chips {
		out = append(out, &Rejection{ChipID: chip, FailedCriteria: f[chip].String()})
	}

	return out
}

// WriteRejections writes a tab-delimited report of flagged chips.
func WriteRejections(w io.Writer, f Flags) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := gocsv.MarshalCSV(f.Rejections(), gocsv.NewSafeCSVWriter(cw)); err != nil {
		return pfx.Err(err)
	}

	cw.Flush()
	return pfx.Err(cw.Error())
}
