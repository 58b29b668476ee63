package chipqc

import (
	"bytes"

	"github.com/csimplestring/go-csv/detector"
)

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in data, assuming a CSV-like table. Microarray exports are
// tab-delimited, so that is the fallback when detection is inconclusive.
func DetermineDelimiter(data []byte) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(bytes.NewReader(data), '"')

	// Prefer tab when the detector offers several candidates.
	for _, v := range delimiters {
		if v == "\t" {
			return '\t'
		}
	}

	if len(delimiters) > 0 && len(delimiters[0]) > 0 {
		return rune(delimiters[0][0])
	}

	return '\t'
}
