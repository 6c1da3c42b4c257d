// Package history keeps a SQLite record of results documents so totals can be
// reported across runs.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/AndreyAkinshin/tinytest/pkg/resultsfile"
	"github.com/AndreyAkinshin/tinytest/pkg/tinytest"
)

//go:embed schema.sql
var schemaSQL string

// ErrDuplicateRun is returned when a run ID is recorded twice.
var ErrDuplicateRun = errors.New("run already recorded")

// Run is one recorded results document.
type Run struct {
	ID        int64
	RunID     uuid.UUID
	Suite     string
	Results   tinytest.TestResults
	CreatedAt time.Time
}

// Store manages the history database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens or creates the database at dbPath. ":memory:" opens a
// private in-memory database.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Each connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA busy_timeout=5000", // Must be first
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database path.
func (s *Store) Path() string {
	return s.dbPath
}

// Record stores doc. Recording the same run ID twice returns ErrDuplicateRun.
func (s *Store) Record(ctx context.Context, doc resultsfile.Document) error {
	r := doc.Results
	errorsJSON, err := marshalMessages(r.ErrorMessages())
	if err != nil {
		return err
	}
	failuresJSON, err := marshalMessages(r.FailureMessages())
	if err != nil {
		return err
	}
	skipsJSON, err := marshalMessages(r.SkipMessages())
	if err != nil {
		return err
	}

	query := `INSERT INTO runs
		(run_id, suite, errors, failed, passed, skipped, total, error_messages, failure_messages, skip_messages, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = s.db.ExecContext(ctx, query,
		doc.RunID.String(), doc.Suite,
		r.Errors(), r.Failed(), r.Passed(), r.Skipped(), r.Total(),
		errorsJSON, failuresJSON, skipsJSON,
		doc.CreatedAt.UTC(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %s", ErrDuplicateRun, doc.RunID)
		}
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first. A limit of zero or less
// returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, run_id, suite, errors, failed, passed, skipped, total,
		error_messages, failure_messages, skip_messages, created_at
		FROM runs ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Totals combines the results of every recorded run, oldest first.
func (s *Store) Totals(ctx context.Context) (tinytest.TestResults, error) {
	runs, err := s.List(ctx, 0)
	if err != nil {
		return tinytest.TestResults{}, err
	}
	var total tinytest.TestResults
	for i := len(runs) - 1; i >= 0; i-- {
		total.Add(runs[i].Results)
	}
	return total, nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var (
		run                          Run
		runID                        string
		errCount, failed, passed     uint32
		skipped, total               uint32
		errorsJSON, failsJSON, skips string
	)
	if err := rows.Scan(&run.ID, &runID, &run.Suite, &errCount, &failed, &passed, &skipped, &total,
		&errorsJSON, &failsJSON, &skips, &run.CreatedAt); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}

	id, err := uuid.Parse(runID)
	if err != nil {
		return Run{}, fmt.Errorf("run %d: %w", run.ID, err)
	}
	run.RunID = id

	errorMsgs, err := unmarshalMessages(errorsJSON)
	if err != nil {
		return Run{}, fmt.Errorf("run %d: %w", run.ID, err)
	}
	failureMsgs, err := unmarshalMessages(failsJSON)
	if err != nil {
		return Run{}, fmt.Errorf("run %d: %w", run.ID, err)
	}
	skipMsgs, err := unmarshalMessages(skips)
	if err != nil {
		return Run{}, fmt.Errorf("run %d: %w", run.ID, err)
	}

	run.Results = tinytest.NewTestResults(errCount, failed, passed, skipped, total, errorMsgs, failureMsgs, skipMsgs)
	return run, nil
}

// unmarshalMessages decodes a JSON array of messages. An empty array yields nil.
func unmarshalMessages(raw string) ([]string, error) {
	var msgs []string
	if err := json.Unmarshal([]byte(raw), &msgs); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	if len(msgs) == 0 {
		return nil, nil
	}
	return msgs, nil
}

func marshalMessages(msgs []string) (string, error) {
	if len(msgs) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(msgs)
	if err != nil {
		return "", fmt.Errorf("marshal messages: %w", err)
	}
	return string(data), nil
}
