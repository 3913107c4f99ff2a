package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const entryColumns = `id, run_id, source, outcome, surface_kind, magnitude, tectonic_region,
	rake, point_count, error_kind, error_message, read_at`

const runColumns = `id, root, grid_spacing, started_at, finished_at`

// ErrRunNotFound is returned when a run id has no row.
var ErrRunNotFound = errors.New("run not found")

// Filter narrows List results. Zero values match everything.
type Filter struct {
	RunID      string
	FailedOnly bool
	Limit      int
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// retrying routes single statements through execWithRetry.
type retrying struct{ s *Store }

func (r retrying) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return r.s.execWithRetry(ctx, query, args...)
}

// BeginRun records the start of a scan.
func (s *Store) BeginRun(ctx context.Context, run Run) error {
	if err := insertRun(ensureContext(ctx), retrying{s}, run); err != nil {
		return fmt.Errorf("begin run: %w", err)
	}
	return nil
}

// FinishRun stamps the completion time of a run.
func (s *Store) FinishRun(ctx context.Context, id string, at time.Time) error {
	if err := finishRun(ensureContext(ctx), retrying{s}, id, at); err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// Record appends an entry and returns its id.
func (s *Store) Record(ctx context.Context, entry Entry) (int64, error) {
	id, err := insertEntry(ensureContext(ctx), retrying{s}, entry)
	if err != nil {
		return 0, fmt.Errorf("record entry: %w", err)
	}
	return id, nil
}

// RecordRun writes a finished run and all of its entries in one
// transaction. Entries without a run id are assigned run.ID. On error
// nothing of the run is stored.
func (s *Store) RecordRun(ctx context.Context, run Run, entries []Entry, finishedAt time.Time) error {
	ctx = ensureContext(ctx)
	err := retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if err := insertRun(ctx, tx, run); err != nil {
			return err
		}
		for i, entry := range entries {
			if entry.RunID == "" {
				entry.RunID = run.ID
			}
			if _, err := insertEntry(ctx, tx, entry); err != nil {
				return fmt.Errorf("entry %d (%s): %w", i, entry.Source, err)
			}
		}
		if err := finishRun(ctx, tx, run.ID, finishedAt); err != nil {
			return err
		}
		return tx.Commit()
	})
	if err != nil {
		return fmt.Errorf("record run %s: %w", run.ID, err)
	}
	return nil
}

func insertRun(ctx context.Context, ex execer, run Run) error {
	if strings.TrimSpace(run.ID) == "" {
		return errors.New("empty run id")
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	_, err := ex.ExecContext(ctx,
		`INSERT INTO runs (id, root, grid_spacing, started_at) VALUES (?, ?, ?, ?)`,
		run.ID, run.Root, run.GridSpacing, formatTime(run.StartedAt),
	)
	return err
}

func finishRun(ctx context.Context, ex execer, id string, at time.Time) error {
	res, err := ex.ExecContext(ctx, `UPDATE runs SET finished_at = ? WHERE id = ?`, formatTime(at), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", id, ErrRunNotFound)
	}
	return nil
}

func insertEntry(ctx context.Context, ex execer, entry Entry) (int64, error) {
	if entry.Outcome != OutcomeOK && entry.Outcome != OutcomeFailed {
		return 0, fmt.Errorf("invalid outcome %q", entry.Outcome)
	}
	if entry.ReadAt.IsZero() {
		entry.ReadAt = time.Now()
	}
	res, err := ex.ExecContext(ctx,
		`INSERT INTO entries (run_id, source, outcome, surface_kind, magnitude, tectonic_region,
			rake, point_count, error_kind, error_message, read_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID, entry.Source, string(entry.Outcome),
		nullString(entry.SurfaceKind), nullFloat(entry.Magnitude), nullString(entry.TectonicRegion),
		nullFloat(entry.Rake), entry.PointCount,
		nullString(entry.ErrorKind), nullString(entry.ErrorMessage), formatTime(entry.ReadAt),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// List returns entries in insertion order.
func (s *Store) List(ctx context.Context, filter Filter) ([]*Entry, error) {
	ctx = ensureContext(ctx)

	var (
		clauses []string
		args    []any
	)
	if filter.RunID != "" {
		clauses = append(clauses, "run_id = ?")
		args = append(args, filter.RunID)
	}
	if filter.FailedOnly {
		clauses = append(clauses, "outcome = ?")
		args = append(args, string(OutcomeFailed))
	}

	query := `SELECT ` + entryColumns + ` FROM entries`
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY id`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Runs returns every run, most recent first.
func (s *Store) Runs(ctx context.Context) ([]*Run, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns a run by id.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*Entry, error) {
	var (
		entry        Entry
		outcome      string
		surfaceKind  sql.NullString
		magnitude    sql.NullFloat64
		region       sql.NullString
		rake         sql.NullFloat64
		errorKind    sql.NullString
		errorMessage sql.NullString
		readAt       string
	)
	if err := row.Scan(
		&entry.ID, &entry.RunID, &entry.Source, &outcome, &surfaceKind, &magnitude, &region,
		&rake, &entry.PointCount, &errorKind, &errorMessage, &readAt,
	); err != nil {
		return nil, fmt.Errorf("scan entry: %w", err)
	}
	entry.Outcome = Outcome(outcome)
	entry.SurfaceKind = surfaceKind.String
	entry.TectonicRegion = region.String
	entry.ErrorKind = errorKind.String
	entry.ErrorMessage = errorMessage.String
	if magnitude.Valid {
		entry.Magnitude = &magnitude.Float64
	}
	if rake.Valid {
		entry.Rake = &rake.Float64
	}
	entry.ReadAt = parseTime(readAt)
	return &entry, nil
}

func scanRun(row scanner) (*Run, error) {
	var (
		run        Run
		startedAt  string
		finishedAt sql.NullString
	)
	if err := row.Scan(&run.ID, &run.Root, &run.GridSpacing, &startedAt, &finishedAt); err != nil {
		return nil, err
	}
	run.StartedAt = parseTime(startedAt)
	if finishedAt.Valid {
		t := parseTime(finishedAt.String)
		run.FinishedAt = &t
	}
	return &run, nil
}

// timeLayout keeps a fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

func nullFloat(value *float64) sql.NullFloat64 {
	if value == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *value, Valid: true}
}
