package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/carbocation/chipqc/labels"
	"github.com/carbocation/chipqc/matrix"
	"github.com/carbocation/chipqc/qc"
	"github.com/carbocation/chipqc/samplesheet"
	"github.com/stretchr/testify/require"
)

const (
	qcFile = "chip\trle_mean\tpos_vs_neg_auc\tbanding\n" +
		"GSM1.CEL\t0.21\t0.91\tGood\n" +
		"GSM2.CEL\t0.19\t0.55\tGood\n" +
		"GSM3.CEL\t0.24\t0.83\tFair\n"

	sheetFile = "Index\tArray\tChip ID\tSample ID\n" +
		"1\tHTA2.0\tGSM1\tpatient1.N\n" +
		"2\tHTA2.0\tGSM2\tpatient2.P\n" +
		"3\tHTA2.0\tGSM3\tpatient3.C\n"

	dataFile = "probeset_id\tGSM1.CEL\tGSM2.CEL\tGSM3.CEL\n" +
		"TC01000001.hg.1\t5.5\t6\t7\n" +
		"TC01000002.hg.1\t4.25\t5\t6\n" +
		"JUC01000003.hg.1\t1\t2\t3\n" +
		"TC01000004.hg.1\t9\t8\t7.5\n"
)

func writeInputs(t *testing.T) Paths {
	t.Helper()
	dir := t.TempDir()

	paths := Paths{
		QC:    filepath.Join(dir, "qc.txt"),
		Sheet: filepath.Join(dir, "sheet.txt"),
		Data:  filepath.Join(dir, "data.txt"),
	}
	require.NoError(t, ioutil.WriteFile(paths.QC, []byte(qcFile), 0644))
	require.NoError(t, ioutil.WriteFile(paths.Sheet, []byte(sheetFile), 0644))
	require.NoError(t, ioutil.WriteFile(paths.Data, []byte(dataFile), 0644))

	return paths
}

func aucConfig() Config {
	cfg := DefaultConfig()
	cfg.Criteria = []qc.Criterion{{Name: "auc", Metric: "pos_vs_neg_auc", Op: qc.AtLeast, Threshold: 0.7}}
	return cfg
}

func seeded(t *testing.T, seed int64) labels.Splitter {
	t.Helper()
	s, err := labels.NewSplitter(labels.DefaultTrainFraction, seed)
	require.NoError(t, err)
	return s
}

func TestEndToEnd(t *testing.T) {
	cfg := aucConfig()
	in, err := LoadInputs(context.Background(), writeInputs(t), cfg, nil)
	require.NoError(t, err)

	res, err := Run(in, cfg, seeded(t, 42))
	require.NoError(t, err)

	require.Equal(t, []string{"GSM1", "GSM3"}, res.Admitted.Sorted())
	require.Equal(t, []string{"auc"}, res.Flags.Failed("GSM2"))

	features, chips := res.Matrix.Dims()
	require.Equal(t, 3, features)
	require.Equal(t, 2, chips)
	require.Equal(t, []string{"GSM1.N", "GSM3.C"}, res.Matrix.Chips)
	require.Empty(t, res.Missing)

	require.Len(t, res.Assignments, 2)
	require.Equal(t, 0, res.Assignments[0].ClassLabel)
	require.Equal(t, 2, res.Assignments[1].ClassLabel)

	var buf bytes.Buffer
	require.NoError(t, matrix.Write(&buf, res.Matrix))
	require.Equal(t,
		"probeset_id\tGSM1.N\tGSM3.C\nTC01000001.hg.1\t5.5\t7\nTC01000002.hg.1\t4.25\t6\nTC01000004.hg.1\t9\t7.5\n",
		buf.String())
}

func TestRunIsReproducibleWithSeed(t *testing.T) {
	cfg := aucConfig()
	in, err := LoadInputs(context.Background(), writeInputs(t), cfg, nil)
	require.NoError(t, err)

	first, err := Run(in, cfg, seeded(t, 7))
	require.NoError(t, err)
	second, err := Run(in, cfg, seeded(t, 7))
	require.NoError(t, err)

	require.Equal(t, first.Assignments, second.Assignments)
}

func TestRunFatalConditions(t *testing.T) {
	cfg := aucConfig()
	in, err := LoadInputs(context.Background(), writeInputs(t), cfg, nil)
	require.NoError(t, err)

	// No criteria
	empty := cfg
	empty.Criteria = nil
	_, err = Run(in, empty, seeded(t, 1))
	require.True(t, errors.Is(err, qc.ErrNoCriteria), "got %v", err)

	// Unknown scheme
	unknown := cfg
	unknown.Scheme = "N_vs_X"
	_, err = Run(in, unknown, seeded(t, 1))
	require.True(t, errors.Is(err, labels.ErrUnknownScheme), "got %v", err)

	// Only N and C chips pass, so the two-class scheme can code them
	twoClass := cfg
	twoClass.Scheme = "N_vs_C"
	res, err := Run(in, twoClass, seeded(t, 1))
	require.NoError(t, err)
	require.Equal(t, 1, res.Assignments[1].ClassLabel)

	// Admitting GSM2 brings in the P suffix, unknown to N_vs_C
	lenient := twoClass
	lenient.Criteria = []qc.Criterion{{Metric: "pos_vs_neg_auc", Op: qc.AtLeast, Threshold: 0.5}}
	_, err = Run(in, lenient, seeded(t, 1))
	var unknownSuffix *labels.UnknownSuffixError
	require.True(t, errors.As(err, &unknownSuffix), "got %v", err)
	require.Equal(t, "P", unknownSuffix.Suffix)

	// Malformed group label on an admitted chip
	broken := in
	broken.Sheet = append([]samplesheet.Record(nil), in.Sheet...)
	broken.Sheet[2].GroupLabel = "patient3"
	_, err = Run(broken, cfg, seeded(t, 1))
	var malformed *samplesheet.MalformedLabelError
	require.True(t, errors.As(err, &malformed), "got %v", err)
	require.Equal(t, "GSM3", malformed.ChipID)

	// Unknown metric
	badMetric := cfg
	badMetric.Criteria = []qc.Criterion{{Metric: "auc", Op: qc.AtLeast, Threshold: 0.7}}
	_, err = Run(in, badMetric, seeded(t, 1))
	require.True(t, errors.Is(err, qc.ErrUnknownMetric), "got %v", err)
}

func TestRunEmptyAdmission(t *testing.T) {
	cfg := aucConfig()
	cfg.Criteria = append(cfg.Criteria, qc.Criterion{Metric: "banding", Op: qc.In, Values: []string{"Excellent"}})

	in, err := LoadInputs(context.Background(), writeInputs(t), cfg, nil)
	require.NoError(t, err)

	res, err := Run(in, cfg, seeded(t, 1))
	require.NoError(t, err)
	require.Equal(t, 0, res.Admitted.Len())
	require.Empty(t, res.Assignments)

	var buf bytes.Buffer
	require.NoError(t, matrix.Write(&buf, res.Matrix))
	require.Equal(t, "probeset_id\n", buf.String())
}

func TestParseConfigFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chipqc.json")
	require.NoError(t, ioutil.WriteFile(path, []byte(`{
	"criteria": [
		{"name": "auc", "metric": "pos_vs_neg_auc", "op": ">=", "threshold": 0.7},
		{"metric": "banding", "op": "in", "values": ["Good", "Fair"]}
	],
	"scheme": "healthy_vs_lesion",
	"schemes": {"healthy_vs_lesion": {"N": 0, "P": 1, "C": 1}},
	"seed": 1930
}`), 0644))

	cfg, err := ParseConfigFromPath(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Len(t, cfg.Criteria, 2)
	require.Equal(t, qc.In, cfg.Criteria[1].Op)
	require.Equal(t, labels.DefaultTrainFraction, cfg.TrainFraction)
	require.Equal(t, matrix.DefaultFeaturePrefix, cfg.FeaturePrefix)
	require.Equal(t, samplesheet.DefaultLayout, cfg.SampleSheet)
	require.NotNil(t, cfg.Seed)
	require.Equal(t, int64(1930), *cfg.Seed)

	scheme, err := cfg.Registry().Lookup("healthy_vs_lesion")
	require.NoError(t, err)
	code, err := scheme.Code("P")
	require.NoError(t, err)
	require.Equal(t, 1, code)

	_, err = cfg.Registry().Lookup("N_vs_P_vs_C")
	require.NoError(t, err, "built-in schemes stay available")

	require.NoError(t, ioutil.WriteFile(path, []byte(`{"criteria": [`), 0644))
	_, err = ParseConfigFromPath(path)
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	cfg := aucConfig()
	require.NoError(t, cfg.Validate())

	cfg.TrainFraction = 1.2
	require.Error(t, cfg.Validate())
}
