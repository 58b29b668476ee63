package qc

import (
	"fmt"
	"math"

	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the distribution of one numeric metric across chips.
type Summary struct {
	Metric  string
	N       int
	Missing int
	Mean    float64
	SD      float64
	Median  float64
}

func (s Summary) String() string {
	return fmt.Sprintf("%s: N=%d missing=%d mean=%.4f sd=%.4f median=%.4f", s.Metric, s.N, s.Missing, s.Mean, s.SD, s.Median)
}

// Summarize computes the distribution of a numeric metric.
func Summarize(t Table, metric string) (Summary, error) {
	col, exists := t.Column(metric)
	if !exists {
		return Summary{}, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
	if col.Kind != Numeric {
		return Summary{}, fmt.Errorf("%w: %s is %s", ErrKindMismatch, metric, col.Kind)
	}

	out := Summary{Metric: metric, Mean: math.NaN(), SD: math.NaN(), Median: math.NaN()}

	value := make([]float64, 0, len(t.Records))
	for _, rec := range t.Records {
		m := rec.Metrics[metric]
		if !m.Value.Valid {
			out.Missing++
			continue
		}
		value = append(value, m.Value.Float64)
	}
	out.N = len(value)

	if out.N == 0 {
		return out, nil
	}

	out.Mean, out.SD = stat.MeanStdDev(value, nil)

	median, err := stats.Median(value)
	if err != nil {
		return out, pfx.Err(err)
	}
	out.Median = median

	return out, nil
}
