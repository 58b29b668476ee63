// chipqc admits microarray chips that pass QC criteria, labels them from the
// sample sheet and writes a chip-by-feature matrix plus class and partition
// assignments for downstream training.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/carbocation/chipqc"
	"github.com/carbocation/chipqc/compileinfo"
	_ "github.com/carbocation/chipqc/compileinfoprint"
	"github.com/carbocation/chipqc/labels"
	"github.com/carbocation/chipqc/matrix"
	"github.com/carbocation/chipqc/pipeline"
	"github.com/carbocation/chipqc/qc"
	"github.com/carbocation/chipqc/store"
)

type flagSlice []string

func (f *flagSlice) String() string {
	return strings.Join(*f, " ")
}

func (f *flagSlice) Set(value string) error {
	*f = append(*f, value)
	return nil
}

type outputs struct {
	Matrix     string
	Chips      string
	Rejections string
	DB         string
}

func main() {
	var paths pipeline.Paths
	var out outputs
	var configPath string
	var criteria flagSlice
	var threshold float64
	var scheme, prefix string
	var trainFraction float64
	var maxChips int
	var seed int64
	var sheetChipCol, sheetLabelCol string

	flag.StringVar(&paths.Data, "data", "", "Path to the raw expression matrix (features in rows, chips in columns). Local, gs:// or - for stdin. May be compressed.")
	flag.StringVar(&paths.QC, "qc", "", "Path to the QC metrics table, one row per chip. Local or gs://.")
	flag.StringVar(&paths.Sheet, "sheet", "", "Path to the sample sheet mapping chip IDs to group labels. Local or gs://.")
	flag.StringVar(&out.Matrix, "output", "", "Path for the assembled matrix. Use - for stdout.")
	flag.StringVar(&out.Chips, "chips", "", "(Optional) Path for the per-chip class label and partition table.")
	flag.StringVar(&out.Rejections, "rejections", "", "(Optional) Path for the table of chips and the criteria they failed.")
	flag.StringVar(&out.DB, "db", "", "(Optional) Path to a SQLite ledger where this run will be recorded.")
	flag.StringVar(&configPath, "config", "", "(Optional) Path to a JSON configuration file. Flags override its values.")
	flag.Var(&criteria, "criterion", "Admission criterion, e.g. rle_mean<=0.25 or banding=Good,Fair. May be repeated.")
	flag.Float64Var(&threshold, "threshold", 0, "Shorthand for -criterion pos_vs_neg_auc>=THRESHOLD.")
	flag.StringVar(&scheme, "group", "", fmt.Sprintf("Label scheme. Built in: %s. (Default %s)", strings.Join(labels.DefaultRegistry().Names(), ", "), pipeline.DefaultScheme))
	flag.Float64Var(&trainFraction, "train-fraction", -1, fmt.Sprintf("Expected fraction of chips in the training partition. (Default %v)", labels.DefaultTrainFraction))
	flag.StringVar(&prefix, "prefix", "", "Only features whose ID starts with this prefix are kept. (Default TC)")
	flag.IntVar(&maxChips, "num-samples", -1, "(Optional) Only read the first N chip columns of the raw matrix.")
	flag.Int64Var(&seed, "seed", 0, "(Optional) Seed for the train/test partition. Default is time-based.")
	flag.StringVar(&sheetChipCol, "sheet-chip-col", "", "Sample sheet column holding the chip ID, by header name or as #N. (Default #2)")
	flag.StringVar(&sheetLabelCol, "sheet-label-col", "", "Sample sheet column holding the group label, by header name or as #N. (Default #3)")
	flag.Parse()

	if paths.Data == "" || paths.QC == "" || paths.Sheet == "" || out.Matrix == "" {
		flag.Usage()
		log.Fatalln("Please provide -data, -qc, -sheet and -output")
	}

	cfg := pipeline.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = pipeline.ParseConfigFromPath(configPath)
		if err != nil {
			log.Fatalln(err)
		}
		log.Println("Loaded config from", cfg.ConfigPath)
	}

	// Flags override the config file only when they were given.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "group":
			cfg.Scheme = scheme
		case "train-fraction":
			cfg.TrainFraction = trainFraction
		case "prefix":
			cfg.FeaturePrefix = prefix
		case "num-samples":
			cfg.MaxChips = maxChips
		case "seed":
			cfg.Seed = &seed
		case "sheet-chip-col":
			cfg.SampleSheet.ChipIDColumn = sheetChipCol
		case "sheet-label-col":
			cfg.SampleSheet.GroupLabelColumn = sheetLabelCol
		case "threshold":
			cfg.Criteria = append(cfg.Criteria, qc.Criterion{Metric: "pos_vs_neg_auc", Op: qc.AtLeast, Threshold: threshold})
		}
	})

	for _, expr := range criteria {
		c, err := qc.ParseCriterion(expr)
		if err != nil {
			log.Fatalln(err)
		}
		cfg.Criteria = append(cfg.Criteria, c)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalln(err)
	}

	if cfg.Seed == nil {
		s := time.Now().UnixNano()
		cfg.Seed = &s
	}
	log.Println("Partition seed:", *cfg.Seed)

	log.Println("Launched chipqc")

	if err := runAll(context.Background(), paths, out, cfg); err != nil {
		log.Fatalln(err)
	}

	log.Println("Done")
}

func runAll(ctx context.Context, paths pipeline.Paths, out outputs, cfg pipeline.Config) error {
	// Initialize the Google Storage client only if we're pointing to Google
	// Storage paths.
	var client *storage.Client
	if chipqc.NeedsGoogleStorage(paths.Data, paths.QC, paths.Sheet, out.Matrix, out.Chips, out.Rejections) {
		var err error
		client, err = storage.NewClient(ctx)
		if err != nil {
			return err
		}
		defer client.Close()
	}

	in, err := pipeline.LoadInputs(ctx, paths, cfg, client)
	if err != nil {
		return err
	}

	for _, c := range cfg.Criteria {
		if c.Op == qc.In {
			continue
		}
		summary, err := qc.Summarize(in.QC, c.Metric)
		if err != nil {
			return err
		}
		log.Println(summary)
	}

	splitter, err := labels.NewSplitter(cfg.TrainFraction, *cfg.Seed)
	if err != nil {
		return err
	}

	res, err := pipeline.Run(in, cfg, splitter)
	if err != nil {
		return err
	}

	for name, n := range res.Flags.Counts() {
		log.Println(n, "chips failed", name)
	}

	// Nothing is written until the whole run has succeeded.
	if err := writeOutput(ctx, out.Matrix, client, func(w io.Writer) error { return matrix.Write(w, res.Matrix) }); err != nil {
		return err
	}
	log.Println("Wrote matrix to", out.Matrix)

	if out.Chips != "" {
		if err := writeOutput(ctx, out.Chips, client, func(w io.Writer) error { return labels.WriteAssignments(w, res.Assignments) }); err != nil {
			return err
		}
		log.Println("Wrote chip assignments to", out.Chips)
	}

	if out.Rejections != "" {
		if err := writeOutput(ctx, out.Rejections, client, func(w io.Writer) error { return qc.WriteRejections(w, res.Flags) }); err != nil {
			return err
		}
		log.Println("Wrote rejections to", out.Rejections)
	}

	if out.DB != "" {
		db, err := store.Open(chipqc.ExpandHome(out.DB))
		if err != nil {
			return err
		}
		defer db.Close()

		runID, err := pipeline.Record(db, res, cfg, *cfg.Seed, compileinfo.Get().Revision())
		if err != nil {
			return err
		}
		log.Println("Recorded run", runID, "in", out.DB)
	}

	return nil
}
