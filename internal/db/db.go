// Package db persists grading run history to a sqlite database so repeated
// runs of the same submission can be compared over time.
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
	_ "modernc.org/sqlite"
)

// DB wraps the run-history database.
type DB struct {
	*sql.DB
}

// Open opens (creating if necessary) the run-history database at path.
func Open(path string) (*DB, error) {
	sdb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = sdb.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			run_id            TEXT PRIMARY KEY,
			item              TEXT,
			input             TEXT,
			reference_blocks  BIGINT,
			candidate_blocks  BIGINT,
			compression       DOUBLE,
			speed             DOUBLE,
			item_seconds      DOUBLE,
			baseline_seconds  DOUBLE,
			timestamp         TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		sdb.Close()
		return nil, err
	}
	return &DB{sdb}, nil
}

// Run is one recorded grading run. Speed is only valid when HasSpeed is
// set; compression-only runs leave it NULL in the table.
type Run struct {
	ID              string
	Item            string
	Input           string
	ReferenceBlocks int
	CandidateBlocks int
	Compression     float64
	Speed           float64
	HasSpeed        bool
	ItemSeconds     float64
	BaselineSeconds float64
	Timestamp       time.Time
}

// RecordRun inserts a run, assigning a fresh id if none is set.
func (db *DB) RecordRun(r Run) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	speed := sql.NullFloat64{Float64: r.Speed, Valid: r.HasSpeed}
	_, err := db.Exec(`
		INSERT INTO runs (
			run_id, item, input, reference_blocks, candidate_blocks,
			compression, speed, item_seconds, baseline_seconds
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Item, r.Input, r.ReferenceBlocks, r.CandidateBlocks,
		r.Compression, speed, r.ItemSeconds, r.BaselineSeconds)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// Stats summarises the recorded runs.
type Stats struct {
	Runs            int
	MeanCompression float64
	StdCompression  float64
	MinCompression  float64
	MaxCompression  float64
	SpeedRuns       int
	MeanSpeed       float64
}

// Stats aggregates compression and speed over all recorded runs.
func (db *DB) Stats() (Stats, error) {
	rows, err := db.Query(`SELECT compression, speed FROM runs ORDER BY timestamp`)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var compressions, speeds []float64
	for rows.Next() {
		var compression float64
		var speed sql.NullFloat64
		if err := rows.Scan(&compression, &speed); err != nil {
			return Stats{}, fmt.Errorf("failed to scan run: %w", err)
		}
		compressions = append(compressions, compression)
		if speed.Valid {
			speeds = append(speeds, speed.Float64)
		}
	}
	if err := rows.Err(); err != nil {
		return Stats{}, err
	}

	s := Stats{Runs: len(compressions), SpeedRuns: len(speeds)}
	if len(compressions) > 0 {
		s.MeanCompression = stat.Mean(compressions, nil)
		if len(compressions) > 1 {
			s.StdCompression = stat.StdDev(compressions, nil)
		}
		s.MinCompression = compressions[0]
		s.MaxCompression = compressions[0]
		for _, c := range compressions[1:] {
			if c < s.MinCompression {
				s.MinCompression = c
			}
			if c > s.MaxCompression {
				s.MaxCompression = c
			}
		}
	}
	if len(speeds) > 0 {
		s.MeanSpeed = stat.Mean(speeds, nil)
	}
	return s, nil
}
