// Package pipeline runs chip quality control end to end: admission by QC
// criteria, annotation from the sample sheet, matrix assembly and class/
// partition assignment. Run performs no IO; LoadInputs and the cmd/chipqc
// tool handle files.
package pipeline

import (
	"fmt"
	"log"

	"github.com/carbocation/chipqc/labels"
	"github.com/carbocation/chipqc/matrix"
	"github.com/carbocation/chipqc/qc"
	"github.com/carbocation/chipqc/samplesheet"
)

// Inputs are the typed tables for one run.
type Inputs struct {
	QC     qc.Table
	Sheet  []samplesheet.Record
	Matrix matrix.Matrix
}

type Result struct {
	// Chips lists every chip in the QC table, normalized.
	Chips     qc.ChipSet
	Admitted  qc.ChipSet
	Flags     qc.Flags
	Annotated []samplesheet.AnnotatedChip

	// Missing lists annotated chips that have no column in the raw matrix
	// and were therefore left out of Matrix.
	Missing     []string
	Matrix      matrix.Matrix
	Scheme      labels.Scheme
	Assignments []labels.Assignment
}

// Run executes the pipeline. Any error aborts the run before a Result is
// produced, so callers never see partial output.
func Run(in Inputs, cfg Config, splitter labels.Splitter) (Result, error) {
	var out Result

	if err := cfg.Validate(); err != nil {
		return out, err
	}
	scheme, err := cfg.Registry().Lookup(cfg.Scheme)
	if err != nil {
		return out, err
	}
	out.Scheme = scheme

	out.Chips = qc.All(in.QC)
	log.Println(out.Chips.Len(), "chips in the QC table")

	sets := make([]qc.ChipSet, 0, len(cfg.Criteria))
	for _, c := range cfg.Criteria {
		admitted, err := qc.Admit(in.QC, c)
		if err != nil {
			return Result{}, fmt.Errorf("criterion %s: %w", c.Label(), err)
		}
		log.Println(admitted.Len(), "chips pass", c.Label())
		sets = append(sets, admitted)
	}

	out.Admitted, err = qc.Intersect(sets...)
	if err != nil {
		return Result{}, err
	}
	log.Println(out.Admitted.Len(), "chips pass all", len(cfg.Criteria), "criteria")

	out.Flags, err = qc.Flag(in.QC, cfg.Criteria)
	if err != nil {
		return Result{}, err
	}

	out.Annotated, err = samplesheet.Annotate(out.Admitted, in.Sheet)
	if err != nil {
		return Result{}, fmt.Errorf("sample sheet: %w", err)
	}
	log.Println(len(out.Annotated), "admitted chips were found in the sample sheet")

	out.Matrix = matrix.Assemble(in.Matrix, out.Annotated, cfg.FeaturePrefix)
	out.Missing = matrix.Missing(in.Matrix, out.Annotated)
	if len(out.Missing) > 0 {
		log.Println(len(out.Missing), "annotated chips have no column in the feature matrix:", out.Missing)
	}
	features, chips := out.Matrix.Dims()
	log.Printf("Assembled %d %s-prefixed features x %d chips\n", features, cfg.FeaturePrefix, chips)

	out.Assignments, err = labels.Assign(out.Annotated, scheme, splitter)
	if err != nil {
		return Result{}, fmt.Errorf("label scheme %s: %w", scheme.Name, err)
	}
	log.Println(labels.CountTest(out.Assignments), "of", len(out.Assignments), "chips assigned to the test partition")

	return out, nil
}
