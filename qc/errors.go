package qc

import "errors"

var (
	// ErrNoCriteria is returned when asked to combine zero criteria. Admitting
	// every chip by default would silently disable quality control.
	ErrNoCriteria = errors.New("qc: at least one criterion is required")

	ErrUnknownMetric = errors.New("qc: metric is not a column of the QC table")
	ErrUnknownOp     = errors.New("qc: unsupported comparison")
	ErrKindMismatch  = errors.New("qc: numeric comparison on a categorical metric")
	ErrEmptyValues   = errors.New("qc: membership criterion lists no values")
	ErrMalformed     = errors.New("qc: malformed QC table")
)
