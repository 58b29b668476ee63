package labels

import (
	"fmt"
	"math"
	"math/rand"
)

type Partition int

const (
	Train Partition = 0
	Test  Partition = 1
)

// DefaultTrainFraction sends roughly 80% of chips to training.
const DefaultTrainFraction = 0.8

// Splitter draws a partition per chip. A chip goes to the test partition when
// a uniform draw exceeds TrainFraction, so the expected test share is
// 1-TrainFraction. Rand must be seeded by the caller for reproducible runs.
type Splitter struct {
	TrainFraction float64
	Rand          *rand.Rand
}

// NewSplitter returns a Splitter drawing from a source seeded with seed.
func NewSplitter(trainFraction float64, seed int64) (Splitter, error) {
	s := Splitter{
		TrainFraction: trainFraction,
		Rand:          rand.New(rand.NewSource(seed)),
	}

	return s, s.Validate()
}

func (s Splitter) Validate() error {
	if math.IsNaN(s.TrainFraction) || s.TrainFraction < 0 || s.TrainFraction > 1 {
		return fmt.Errorf("Train fraction must be between 0 and 1, got %v", s.TrainFraction)
	}
	if s.Rand == nil {
		return fmt.Errorf("Splitter has no random source")
	}

	return nil
}

// Draw assigns the next chip.
func (s Splitter) Draw() Partition {
	if s.Rand.Float64() > s.TrainFraction {
		return Test
	}

	return Train
}
