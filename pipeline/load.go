package pipeline

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/carbocation/chipqc"
	"github.com/carbocation/chipqc/matrix"
	"github.com/carbocation/chipqc/qc"
	"github.com/carbocation/chipqc/samplesheet"
	"github.com/carbocation/pfx"
)

// Paths locates the three input tables. Each may be a local path, "-" or a
// gs:// URL; compressed files are detected.
type Paths struct {
	Data  string
	QC    string
	Sheet string
}

// LoadInputs reads and types the input tables. client may be nil when no
// path is on Google Storage.
func LoadInputs(ctx context.Context, paths Paths, cfg Config, client *storage.Client) (Inputs, error) {
	var in Inputs

	rows, err := chipqc.ReadTableFromPath(ctx, paths.QC, client)
	if err != nil {
		return in, err
	}
	if in.QC, err = qc.ParseTable(rows); err != nil {
		return in, pfx.Err(fmt.Errorf("%s: %w", paths.QC, err))
	}

	rows, err = chipqc.ReadTableFromPath(ctx, paths.Sheet, client)
	if err != nil {
		return in, err
	}
	if in.Sheet, err = samplesheet.Parse(rows, cfg.SampleSheet); err != nil {
		return in, pfx.Err(fmt.Errorf("%s: %w", paths.Sheet, err))
	}

	rows, err = chipqc.ReadTableFromPath(ctx, paths.Data, client)
	if err != nil {
		return in, err
	}
	if in.Matrix, err = matrix.Parse(rows, cfg.MaxChips); err != nil {
		return in, pfx.Err(fmt.Errorf("%s: %w", paths.Data, err))
	}

	return in, nil
}
