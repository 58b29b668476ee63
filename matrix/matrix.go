// Package matrix holds the feature-by-chip expression matrix and assembles the
// narrowed matrix handed to classification.
package matrix

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// DefaultFeaturePrefix selects transcript-cluster rows.
const DefaultFeaturePrefix = "TC"

// Matrix is a feature-by-chip table. Features are rows, Chips are columns,
// and IDLabel is the header cell above the feature ids. Values is nil when
// there are no rows or no chips.
type Matrix struct {
	IDLabel  string
	Chips    []string
	Features []string
	Values   *mat.Dense
}

// Dims returns the number of features and chips.
func (m Matrix) Dims() (features, chips int) {
	return len(m.Features), len(m.Chips)
}

// At returns the value of feature i on chip j.
func (m Matrix) At(i, j int) float64 {
	return m.Values.At(i, j)
}

// Parse types a raw matrix. The first row is the header, whose first cell is
// the id-column label and whose remaining cells are chip ids. Every following
// row is a feature id and one float per chip. maxChips > 0 keeps only the
// first maxChips chip columns and ignores anything beyond them.
func Parse(rows [][]string, maxChips int) (Matrix, error) {
	if len(rows) < 1 || len(rows[0]) < 1 {
		return Matrix{}, fmt.Errorf("Feature matrix has no header row")
	}

	nChips := len(rows[0]) - 1
	if maxChips > 0 && maxChips < nChips {
		nChips = maxChips
	}

	out := Matrix{
		IDLabel:  rows[0][0],
		Chips:    append([]string(nil), rows[0][1:nChips+1]...),
		Features: make([]string, 0, len(rows)-1),
	}

	data := make([]float64, 0, (len(rows)-1)*nChips)
	for i, row := range rows[1:] {
		if len(row) < nChips+1 {
			return Matrix{}, fmt.Errorf("Feature matrix line %d has %d columns, expected %d", i+2, len(row), nChips+1)
		}
		out.Features = append(out.Features, row[0])
		for j, cell := range row[1 : nChips+1] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return Matrix{}, fmt.Errorf("Feature matrix line %d, chip %s: %v", i+2, out.Chips[j], err)
			}
			data = append(data, v)
		}
	}

	if len(out.Features) > 0 && nChips > 0 {
		out.Values = mat.NewDense(len(out.Features), nChips, data)
	}

	return out, nil
}
