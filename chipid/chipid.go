// Package chipid canonicalizes microarray chip identifiers. The same physical
// chip appears as "GSM123.CEL" in a QC export, "GSM123" in a sample sheet and
// "GSM123.C" once annotated with its class; everything before the first dot
// is the chip.
package chipid

import "strings"

const Separator = "."

// Normalize returns the part of id preceding the first separator, or id
// itself when there is none.
func Normalize(id string) string {
	if i := strings.Index(id, Separator); i >= 0 {
		return id[:i]
	}

	return id
}

// WithSuffix joins a chip id and a class suffix, e.g. ("GSM123", "C") =>
// "GSM123.C".
func WithSuffix(id, suffix string) string {
	return id + Separator + suffix
}

// Suffix returns the second separator-delimited component of label, and
// false if label has fewer than two components.
func Suffix(label string) (string, bool) {
	parts := strings.Split(label, Separator)
	if len(parts) < 2 {
		return "", false
	}

	return parts[1], true
}
