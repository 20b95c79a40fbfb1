package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Run is one completed advisor invocation.
type Run struct {
	ID        int64
	RunID     string
	LocalDate string
	Location  string
	TempMin   float64
	TempMax   float64
	TempMean  float64
	RainToday bool
	Drying    string
	Umbrella  string
	EmailSent bool
	CreatedAt time.Time
}

// DB wraps the run-history database connection
type DB struct {
	*sql.DB
}

// Connect establishes a connection to the database
func Connect(connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)

	return &DB{db}, nil
}

// EnsureSchema creates the run log table when it does not exist yet. The
// advisor is a one-shot binary, so schema setup happens on every start.
func (db *DB) EnsureSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS advisory_runs (
			id BIGSERIAL PRIMARY KEY,
			run_id UUID NOT NULL,
			local_date DATE NOT NULL,
			location TEXT NOT NULL,
			temp_min DOUBLE PRECISION NOT NULL,
			temp_max DOUBLE PRECISION NOT NULL,
			temp_mean DOUBLE PRECISION NOT NULL,
			rain_today BOOLEAN NOT NULL,
			drying TEXT NOT NULL,
			umbrella TEXT NOT NULL,
			email_sent BOOLEAN NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// InsertRun records one completed run.
func (db *DB) InsertRun(run *Run) error {
	query := `
		INSERT INTO advisory_runs (
			run_id, local_date, location, temp_min, temp_max, temp_mean,
			rain_today, drying, umbrella, email_sent
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`
	err := db.QueryRow(query,
		run.RunID, run.LocalDate, run.Location, run.TempMin, run.TempMax, run.TempMean,
		run.RainToday, run.Drying, run.Umbrella, run.EmailSent,
	).Scan(&run.ID, &run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (db *DB) RecentRuns(limit int) ([]*Run, error) {
	query := `
		SELECT id, run_id, local_date, location, temp_min, temp_max, temp_mean,
		       rain_today, drying, umbrella, email_sent, created_at
		FROM advisory_runs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var run Run
		err := rows.Scan(
			&run.ID, &run.RunID, &run.LocalDate, &run.Location,
			&run.TempMin, &run.TempMax, &run.TempMean,
			&run.RainToday, &run.Drying, &run.Umbrella, &run.EmailSent, &run.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, &run)
	}

	return runs, rows.Err()
}
