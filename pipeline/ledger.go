package pipeline

import (
	"strings"

	"github.com/carbocation/chipqc/store"
)

// Record saves the run to the ledger and returns its run id.
func Record(s *store.Store, res Result, cfg Config, seed int64, revision string) (string, error) {
	criteria := make([]string, 0, len(cfg.Criteria))
	for _, c := range cfg.Criteria {
		criteria = append(criteria, c.String())
	}

	features, _ := res.Matrix.Dims()

	run := store.Run{
		Commit:        revision,
		Criteria:      strings.Join(criteria, ";"),
		Scheme:        res.Scheme.Name,
		TrainFraction: cfg.TrainFraction,
		Seed:          seed,
		FeaturePrefix: cfg.FeaturePrefix,
		NChips:        res.Chips.Len(),
		NAdmitted:     res.Admitted.Len(),
		NAnnotated:    len(res.Annotated),
		NFeatures:     features,
	}

	chips := make([]store.Chip, 0, len(res.Assignments))
	for _, a := range res.Assignments {
		chips = append(chips, store.Chip{
			ChipID:        a.Chip,
			ClassLabel:    a.ClassLabel,
			PartitionFlag: int(a.Partition),
		})
	}

	rejections := make([]store.Rejection, 0, len(res.Flags))
	for _, r := range res.Flags.Rejections() {
		rejections = append(rejections, store.Rejection{
			ChipID:         r.ChipID,
			FailedCriteria: r.FailedCriteria,
		})
	}

	saved, err := s.SaveRun(run, chips, rejections)
	if err != nil {
		return "", err
	}

	return saved.RunID, nil
}
