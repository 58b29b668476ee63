package qc

import (
	"fmt"
	"strconv"
	"strings"
)

type Op string

const (
	AtLeast Op = ">="
	AtMost  Op = "<="
	In      Op = "in"
)

// Criterion admits a chip when its metric satisfies the comparison. Threshold
// is used by AtLeast and AtMost, Values by In.
type Criterion struct {
	Name      string   `json:"name"`
	Metric    string   `json:"metric"`
	Op        Op       `json:"op"`
	Threshold float64  `json:"threshold"`
	Values    []string `json:"values"`
}

// Label is the criterion's Name, or its expression when unnamed.
func (c Criterion) Label() string {
	if c.Name != "" {
		return c.Name
	}

	return c.String()
}

func (c Criterion) String() string {
	if c.Op == In {
		return c.Metric + "=" + strings.Join(c.Values, ",")
	}

	return c.Metric + string(c.Op) + strconv.FormatFloat(c.Threshold, 'g', -1, 64)
}

// Validate checks the criterion against the QC table's schema.
func (c Criterion) Validate(t Table) error {
	col, exists := t.Column(c.Metric)
	if !exists {
		return fmt.Errorf("%w: %q (known metrics: %s)", ErrUnknownMetric, c.Metric, strings.Join(t.ColumnNames(), ", "))
	}

	switch c.Op {
	case AtLeast, AtMost:
		if col.Kind != Numeric {
			return fmt.Errorf("%w: %s is %s", ErrKindMismatch, c, col.Kind)
		}
	case In:
		if len(c.Values) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyValues, c.Metric)
		}
	default:
		return fmt.Errorf("%w: %q in criterion on %s", ErrUnknownOp, c.Op, c.Metric)
	}

	return nil
}

// Satisfied reports whether m passes the criterion. Missing numeric values
// never pass.
func (c Criterion) Satisfied(m Metric) bool {
	switch c.Op {
	case AtLeast:
		return m.Value.Valid && m.Value.Float64 >= c.Threshold
	case AtMost:
		return m.Value.Valid && m.Value.Float64 <= c.Threshold
	case In:
		for _, v := range c.Values {
			if m.Text == v {
				return true
			}
		}
	}

	return false
}

// ParseCriterion parses a command-line expression: "metric>=0.7",
// "metric<=0.25" or "metric=Good,Fair".
func ParseCriterion(expr string) (Criterion, error) {
	for _, op := range []Op{AtLeast, AtMost} {
		if i := strings.Index(expr, string(op)); i >= 0 {
			metric := strings.TrimSpace(expr[:i])
			threshold, err := strconv.ParseFloat(strings.TrimSpace(expr[i+len(op):]), 64)
			if err != nil || metric == "" {
				return Criterion{}, fmt.Errorf("Could not parse criterion %q: expected metric%sNUMBER", expr, op)
			}
			return Criterion{Metric: metric, Op: op, Threshold: threshold}, nil
		}
	}

	if i := strings.Index(expr, "="); i >= 0 {
		metric := strings.TrimSpace(expr[:i])
		values := make([]string, 0)
		for _, v := range strings.Split(expr[i+1:], ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
		if metric == "" || len(values) == 0 {
			return Criterion{}, fmt.Errorf("Could not parse criterion %q: expected metric=VALUE[,VALUE...]", expr)
		}
		return Criterion{Metric: metric, Op: In, Values: values}, nil
	}

	return Criterion{}, fmt.Errorf("Could not parse criterion %q: expected one of >=, <= or =", expr)
}
