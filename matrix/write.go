package matrix

import (
	"bufio"
	"io"
	"strconv"

	"github.com/carbocation/pfx"
)

// Write serializes m as a tab-delimited table: the header row, then one row
// per feature. Values use the shortest decimal that reads back exactly.
func Write(w io.Writer, m Matrix) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(m.IDLabel)
	for _, chip := range m.Chips {
		bw.WriteByte('\t')
		bw.WriteString(chip)
	}
	bw.WriteByte('\n')

	for i, feature := range m.Features {
		bw.WriteString(feature)
		for j := range m.Chips {
			bw.WriteByte('\t')
			bw.WriteString(strconv.FormatFloat(m.At(i, j), 'f', -1, 64))
		}
		bw.WriteByte('\n')
	}

	return pfx.Err(bw.Flush())
}
