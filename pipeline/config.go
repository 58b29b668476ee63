package pipeline

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/carbocation/chipqc"
	"github.com/carbocation/chipqc/labels"
	"github.com/carbocation/chipqc/matrix"
	"github.com/carbocation/chipqc/qc"
	"github.com/carbocation/chipqc/samplesheet"
	"github.com/carbocation/pfx"
)

const DefaultScheme = "N_vs_P_vs_C"

// Config holds everything a run needs besides its input tables. It can be
// read from JSON; fields absent from the file keep their defaults.
type Config struct {
	ConfigPath string `json:"-"`

	Criteria      []qc.Criterion            `json:"criteria"`
	Scheme        string                    `json:"scheme"`
	Schemes       map[string]map[string]int `json:"schemes"`
	TrainFraction float64                   `json:"train_fraction"`
	FeaturePrefix string                    `json:"feature_prefix"`
	MaxChips      int                       `json:"num_samples"`
	SampleSheet   samplesheet.Layout        `json:"sample_sheet"`

	// Seed, when set, makes the train/test partition reproducible.
	Seed *int64 `json:"seed"`
}

func DefaultConfig() Config {
	return Config{
		Scheme:        DefaultScheme,
		TrainFraction: labels.DefaultTrainFraction,
		FeaturePrefix: matrix.DefaultFeaturePrefix,
		SampleSheet:   samplesheet.DefaultLayout,
	}
}

// Registry returns the built-in label schemes plus any defined in the
// configuration, which take precedence.
func (c Config) Registry() labels.Registry {
	out := labels.DefaultRegistry()
	for name, scheme := range labels.NewRegistry(c.Schemes) {
		out[name] = scheme
	}

	return out
}

// Validate checks the parts of the configuration that do not depend on the
// input tables.
func (c Config) Validate() error {
	if len(c.Criteria) == 0 {
		return qc.ErrNoCriteria
	}
	if _, err := c.Registry().Lookup(c.Scheme); err != nil {
		return err
	}
	if math.IsNaN(c.TrainFraction) || c.TrainFraction < 0 || c.TrainFraction > 1 {
		return fmt.Errorf("Train fraction must be between 0 and 1, got %v", c.TrainFraction)
	}

	return nil
}

// ParseConfigFromPath reads a JSON configuration on top of DefaultConfig.
func ParseConfigFromPath(path string) (Config, error) {
	out := DefaultConfig()
	out.ConfigPath = chipqc.ExpandHome(path)

	f, err := os.Open(out.ConfigPath)
	if err != nil {
		return out, pfx.Err(err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&out); err != nil {
		if e, ok := err.(*json.SyntaxError); ok {
			log.Printf("syntax error at byte offset %d", e.Offset)
		}
		return out, pfx.Err(err)
	}

	return out, nil
}
