package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveRunRoundTrip(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	saved, err := s.SaveRun(Run{
		Commit:        "abc123",
		Criteria:      "auc",
		Scheme:        "N_vs_P_vs_C",
		TrainFraction: 0.8,
		Seed:          42,
		FeaturePrefix: "TC",
		NChips:        3,
		NAdmitted:     2,
		NAnnotated:    2,
		NFeatures:     3,
	}, []Chip{
		{ChipID: "GSM3.C", ClassLabel: 2, PartitionFlag: 1},
		{ChipID: "GSM1.N", ClassLabel: 0, PartitionFlag: 0},
	}, []Rejection{
		{ChipID: "GSM2", FailedCriteria: "auc"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, saved.RunID)
	require.NotEmpty(t, saved.CreatedAt)

	run, err := s.GetRun(saved.RunID)
	require.NoError(t, err)
	require.Equal(t, saved, run)

	chips, err := s.Chips(saved.RunID)
	require.NoError(t, err)
	require.Equal(t, []Chip{
		{RunID: saved.RunID, ChipID: "GSM1.N", ClassLabel: 0, PartitionFlag: 0},
		{RunID: saved.RunID, ChipID: "GSM3.C", ClassLabel: 2, PartitionFlag: 1},
	}, chips)

	rejections, err := s.Rejections(saved.RunID)
	require.NoError(t, err)
	require.Equal(t, []Rejection{{RunID: saved.RunID, ChipID: "GSM2", FailedCriteria: "auc"}}, rejections)
}

func TestSaveRunIsAtomic(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "ledger.sqlite"))
	require.NoError(t, err)
	defer s.Close()

	// Duplicate chip rows violate UNIQUE(run_id, chip_id)
	_, err = s.SaveRun(Run{RunID: "dup"}, []Chip{{ChipID: "GSM1.N"}, {ChipID: "GSM1.N"}}, nil)
	require.Error(t, err)

	_, err = s.GetRun("dup")
	require.Error(t, err, "the run row must be rolled back with its chips")

	other, err := s.SaveRun(Run{}, nil, nil)
	require.NoError(t, err)
	require.NotEqual(t, "dup", other.RunID)
}
