package qc

// All returns every chip in the table, normalized.
func All(t Table) ChipSet {
	out := make(ChipSet, len(t.Records))
	for _, rec := range t.Records {
		out.Add(rec.ChipID)
	}

	return out
}

// Admit returns the normalized ids of chips whose metric satisfies c. A chip
// listed under several suffixed ids is admitted if any of its rows passes. An
// empty result is not an error.
func Admit(t Table, c Criterion) (ChipSet, error) {
	if err := c.Validate(t); err != nil {
		return nil, err
	}

	out := make(ChipSet)
	for _, rec := range t.Records {
		if c.Satisfied(rec.Metrics[c.Metric]) {
			out.Add(rec.ChipID)
		}
	}

	return out, nil
}

// AdmitAll applies each criterion independently and intersects the results.
func AdmitAll(t Table, criteria []Criterion) (ChipSet, error) {
	if len(criteria) == 0 {
		return nil, ErrNoCriteria
	}

	sets := make([]ChipSet, 0, len(criteria))
	for _, c := range criteria {
		admitted, err := Admit(t, c)
		if err != nil {
			return nil, err
		}
		sets = append(sets, admitted)
	}

	return Intersect(sets...)
}
