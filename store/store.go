// Package store keeps a SQLite ledger of pipeline runs: the configuration
// that was applied, the build that applied it, and the per-chip outcome.
package store

import (
	"time"

	"github.com/carbocation/pfx"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    run_id         TEXT PRIMARY KEY,
    created_at     TEXT NOT NULL,
    commit_id      TEXT NOT NULL,
    criteria       TEXT NOT NULL,
    scheme         TEXT NOT NULL,
    train_fraction REAL NOT NULL,
    seed           INTEGER NOT NULL,
    feature_prefix TEXT NOT NULL,
    n_chips        INTEGER NOT NULL,
    n_admitted     INTEGER NOT NULL,
    n_annotated    INTEGER NOT NULL,
    n_features     INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS chips (
    run_id         TEXT NOT NULL REFERENCES runs(run_id),
    chip_id        TEXT NOT NULL,
    class_label    INTEGER NOT NULL,
    partition_flag INTEGER NOT NULL,
    UNIQUE(run_id, chip_id)
);
CREATE TABLE IF NOT EXISTS rejections (
    run_id          TEXT NOT NULL REFERENCES runs(run_id),
    chip_id         TEXT NOT NULL,
    failed_criteria TEXT NOT NULL,
    UNIQUE(run_id, chip_id)
);
`

type Run struct {
	RunID         string  `db:"run_id"`
	CreatedAt     string  `db:"created_at"`
	Commit        string  `db:"commit_id"`
	Criteria      string  `db:"criteria"`
	Scheme        string  `db:"scheme"`
	TrainFraction float64 `db:"train_fraction"`
	Seed          int64   `db:"seed"`
	FeaturePrefix string  `db:"feature_prefix"`
	NChips        int     `db:"n_chips"`
	NAdmitted     int     `db:"n_admitted"`
	NAnnotated    int     `db:"n_annotated"`
	NFeatures     int     `db:"n_features"`
}

type Chip struct {
	RunID         string `db:"run_id"`
	ChipID        string `db:"chip_id"`
	ClassLabel    int    `db:"class_label"`
	PartitionFlag int    `db:"partition_flag"`
}

type Rejection struct {
	RunID          string `db:"run_id"`
	ChipID         string `db:"chip_id"`
	FailedCriteria string `db:"failed_criteria"`
}

type Store struct {
	db *sqlx.DB
}

// Open connects to the SQLite database at path, creating the tables if
// needed. ":memory:" gives a private in-memory ledger.
func Open(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	// An in-memory database exists per connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, pfx.Err(err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// NewRunID returns a fresh identifier for a run.
func NewRunID() string {
	return uuid.New().String()
}

// SaveRun writes a run and its chip rows in one transaction. Empty RunID and
// CreatedAt fields are filled in; the stored run is returned.
func (s *Store) SaveRun(run Run, chips []Chip, rejections []Rejection) (Run, error) {
	if run.RunID == "" {
		run.RunID = NewRunID()
	}
	if run.CreatedAt == "" {
		run.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return run, pfx.Err(err)
	}
	defer tx.Rollback()

	if _, err := tx.NamedExec(`INSERT INTO runs
		(run_id, created_at, commit_id, criteria, scheme, train_fraction, seed, feature_prefix, n_chips, n_admitted, n_annotated, n_features)
		VALUES
		(:run_id, :created_at, :commit_id, :criteria, :scheme, :train_fraction, :seed, :feature_prefix, :n_chips, :n_admitted, :n_annotated, :n_features)`, run); err != nil {
		return run, pfx.Err(err)
	}

	for _, c := range chips {
		c.RunID = run.RunID
		if _, err := tx.NamedExec(`INSERT INTO chips (run_id, chip_id, class_label, partition_flag)
			VALUES (:run_id, :chip_id, :class_label, :partition_flag)`, c); err != nil {
			return run, pfx.Err(err)
		}
	}

	for _, r := range rejections {
		r.RunID = run.RunID
		if _, err := tx.NamedExec(`INSERT INTO rejections (run_id, chip_id, failed_criteria)
			VALUES (:run_id, :chip_id, :failed_criteria)`, r); err != nil {
			return run, pfx.Err(err)
		}
	}

	return run, pfx.Err(tx.Commit())
}

// GetRun loads a run by id.
func (s *Store) GetRun(runID string) (Run, error) {
	var out Run
	err := s.db.Get(&out, "SELECT * FROM runs WHERE run_id = ?", runID)
	return out, pfx.Err(err)
}

// Chips loads a run's chip rows in chip id order.
func (s *Store) Chips(runID string) ([]Chip, error) {
	out := []Chip{}
	err := s.db.Select(&out, "SELECT * FROM chips WHERE run_id = ? ORDER BY chip_id", runID)
	return out, pfx.Err(err)
}

// Rejections loads a run's rejected chips in chip id order.
func (s *Store) Rejections(runID string) ([]Rejection, error) {
	out := []Rejection{}
	err := s.db.Select(&out, "SELECT * FROM rejections WHERE run_id = ? ORDER BY chip_id", runID)
	return out, pfx.Err(err)
}
