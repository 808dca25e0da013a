package store

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"overlap/internal/dataset"
	"overlap/internal/overlap"
	"overlap/internal/regress"
)

// nullFloat converts a sql.NullFloat64 to a float64 (NaN if null).
func nullFloat(nf sql.NullFloat64) float64 {
	if nf.Valid {
		return nf.Float64
	}
	return math.NaN()
}

// timeLayout is fixed-width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SqlStore implements Store with SQLite.
type SqlStore struct {
	db *sql.DB
}

// Open opens or creates a SQLite DB at path and runs migrations.
// Creates the parent directory if it does not exist.
func Open(path string) (*SqlStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &SqlStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SqlStore) migrate() error {
	var tableCount int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableCount == 0 {
		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("begin schema tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()
		if _, err := tx.Exec(schemaV1); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version(version) VALUES(?)", schemaVersion); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
		return tx.Commit()
	}

	var v int
	if err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if v != schemaVersion {
		return fmt.Errorf("unknown schema version %d", v)
	}
	return nil
}

// Close closes the database connection.
func (s *SqlStore) Close() error {
	return s.db.Close()
}

// SaveRun inserts the run and its pairs in one transaction.
func (s *SqlStore) SaveRun(run *Run, pairs []overlap.PairOverlap) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	args := []any{
		run.ID, run.CreatedAt.UTC().Format(timeLayout),
		run.InfluencerA, run.InfluencerB, run.Semantics,
		run.Followers.Shared, run.Followers.CountA, run.Followers.CountB, run.Followers.Value,
		run.Engagers.Shared, run.Engagers.CountA, run.Engagers.CountB, run.Engagers.Value,
		run.RegressionInput, run.NetworkIDs, run.EngagementIDs,
	}
	args = append(args, modelColumns(run.Model)...)
	_, err = tx.Exec(`INSERT INTO runs (
		id, created_at, influencer_a, influencer_b, semantics,
		follower_shared, follower_count_a, follower_count_b, follower_value,
		engager_shared, engager_count_a, engager_count_b, engager_value,
		regression_input, network_ids, engagement_ids,
		model_n, model_intercept, model_slope, model_r2, model_adj_r2, model_p_slope, model_f, model_p_f
	) VALUES (?,?,?,?,?, ?,?,?,?, ?,?,?,?, ?,?,?, ?,?,?,?,?,?,?,?)`, args...)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO pair_overlaps (run_id, seq, influencer_a, influencer_b, network, engagement)
		VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare pair insert: %w", err)
	}
	defer stmt.Close()
	for i, p := range pairs {
		if _, err := stmt.Exec(run.ID, i, string(p.A), string(p.B), p.Network, p.Engagement); err != nil {
			return fmt.Errorf("insert pair %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

const runColumns = `id, created_at, influencer_a, influencer_b, semantics,
	follower_shared, follower_count_a, follower_count_b, follower_value,
	engager_shared, engager_count_a, engager_count_b, engager_value,
	regression_input, network_ids, engagement_ids,
	model_n, model_intercept, model_slope, model_r2, model_adj_r2, model_p_slope, model_f, model_p_f`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		r         Run
		createdAt string
		modelN    sql.NullInt64
		mf        [7]sql.NullFloat64
	)
	err := row.Scan(
		&r.ID, &createdAt, &r.InfluencerA, &r.InfluencerB, &r.Semantics,
		&r.Followers.Shared, &r.Followers.CountA, &r.Followers.CountB, &r.Followers.Value,
		&r.Engagers.Shared, &r.Engagers.CountA, &r.Engagers.CountB, &r.Engagers.Value,
		&r.RegressionInput, &r.NetworkIDs, &r.EngagementIDs,
		&modelN, &mf[0], &mf[1], &mf[2], &mf[3], &mf[4], &mf[5], &mf[6],
	)
	if err != nil {
		return nil, err
	}
	r.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("run %s: parse created_at: %w", r.ID, err)
	}
	if modelN.Valid {
		nan := math.NaN()
		r.Model = &regress.Model{
			N:         int(modelN.Int64),
			DFResid:   int(modelN.Int64) - 2,
			Intercept: nullFloat(mf[0]),
			Slope:     nullFloat(mf[1]),
			R2:        nullFloat(mf[2]),
			AdjR2:     nullFloat(mf[3]),
			PSlope:    nullFloat(mf[4]),
			F:         nullFloat(mf[5]),
			PF:        nullFloat(mf[6]),

			ResidualSE:      nan,
			StdErrIntercept: nan,
			StdErrSlope:     nan,
			TIntercept:      nan,
			TSlope:          nan,
			PIntercept:      nan,
		}
	}
	return &r, nil
}

// GetRun returns the run with the given id, or ErrNotFound.
func (s *SqlStore) GetRun(id string) (*Run, error) {
	r, err := scanRun(s.db.QueryRow("SELECT "+runColumns+" FROM runs WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return r, nil
}

// ListRuns returns runs newest first.
func (s *SqlStore) ListRuns(limit int) ([]*Run, error) {
	q := "SELECT " + runColumns + " FROM runs ORDER BY created_at DESC, id"
	var args []any
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListPairs returns the pair rows of a run in their saved order.
func (s *SqlStore) ListPairs(runID string) ([]overlap.PairOverlap, error) {
	rows, err := s.db.Query(`SELECT influencer_a, influencer_b, network, engagement
		FROM pair_overlaps WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("list pairs: %w", err)
	}
	defer rows.Close()

	var out []overlap.PairOverlap
	for rows.Next() {
		var p overlap.PairOverlap
		var a, b string
		if err := rows.Scan(&a, &b, &p.Network, &p.Engagement); err != nil {
			return nil, fmt.Errorf("scan pair: %w", err)
		}
		p.A, p.B = dataset.UID(a), dataset.UID(b)
		out = append(out, p)
	}
	return out, rows.Err()
}
