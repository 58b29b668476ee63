package matrix

import (
	"strings"

	"github.com/carbocation/chipqc/chipid"
	"github.com/carbocation/chipqc/samplesheet"
	"gonum.org/v1/gonum/mat"
)

// Assemble narrows m to the annotated chips and to features whose id starts
// with prefix. Columns keep their source order and are relabeled with the
// chip's class suffix; rows keep their source order. Annotated chips with no
// column in m are skipped. When no chip remains the result is header-only.
func Assemble(m Matrix, chips []samplesheet.AnnotatedChip, prefix string) Matrix {
	labels := make(map[string]string, len(chips))
	for _, c := range chips {
		key := chipid.Normalize(c.ChipID)
		if _, exists := labels[key]; !exists {
			labels[key] = c.Label()
		}
	}

	out := Matrix{
		IDLabel:  m.IDLabel,
		Chips:    make([]string, 0, len(chips)),
		Features: make([]string, 0),
	}

	cols := make([]int, 0, len(chips))
	for j, chip := range m.Chips {
		if label, exists := labels[chipid.Normalize(chip)]; exists {
			cols = append(cols, j)
			out.Chips = append(out.Chips, label)
		}
	}

	if len(cols) == 0 {
		return out
	}

	rows := make([]int, 0)
	for i, feature := range m.Features {
		if strings.HasPrefix(feature, prefix) {
			rows = append(rows, i)
			out.Features = append(out.Features, feature)
		}
	}

	if len(rows) == 0 {
		return out
	}

	out.Values = mat.NewDense(len(rows), len(cols), nil)
	for i, src := range rows {
		for j, col := range cols {
			out.Values.Set(i, j, m.Values.At(src, col))
		}
	}

	return out
}

// Missing returns the annotated chips that have no column in m, in the order
// given. Assemble drops these silently.
func Missing(m Matrix, chips []samplesheet.AnnotatedChip) []string {
	present := make(map[string]struct{}, len(m.Chips))
	for _, chip := range m.Chips {
		present[chipid.Normalize(chip)] = struct{}{}
	}

	out := make([]string, 0)
	for _, c := range chips {
		if _, exists := present[chipid.Normalize(c.ChipID)]; !exists {
			out = append(out, c.ChipID)
		}
	}

	return out
}
