package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/zjrosen/soundpairs/internal/history"
)

const resultColumns = `id, guid, grid_rows, grid_cols, score, matches, mismatches, started_at, finished_at`

// resultRepository implements history.Repository using SQLite.
type resultRepository struct {
	db *sql.DB
}

func newResultRepository(db *sql.DB) *resultRepository {
	return &resultRepository{db: db}
}

var _ history.Repository = (*resultRepository)(nil)

func (r *resultRepository) Save(res *history.Result) error {
	if res.GUID == "" {
		return errors.New("result has no guid")
	}
	m := toResultModel(res)
	out, err := r.db.Exec(
		`INSERT INTO results (guid, grid_rows, grid_cols, score, matches, mismatches, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.GUID, m.Rows, m.Cols, m.Score, m.Matches, m.Mismatches, m.StartedAt, m.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert result: %w", err)
	}
	id, err := out.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	res.ID = id
	return nil
}

func (r *resultRepository) FindByGUID(guid string) (*history.Result, error) {
	res, err := scanResult(r.db.QueryRow(`SELECT `+resultColumns+` FROM results WHERE guid = ?`, guid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &history.ResultNotFoundError{GUID: guid}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find result by guid: %w", err)
	}
	return res, nil
}

func (r *resultRepository) Recent(limit int) ([]*history.Result, error) {
	return r.list(`SELECT `+resultColumns+` FROM results ORDER BY finished_at DESC, id DESC LIMIT ?`, limit)
}

func (r *resultRepository) Best(rows, cols, limit int) ([]*history.Result, error) {
	return r.list(
		`SELECT `+resultColumns+` FROM results
		 WHERE grid_rows = ? AND grid_cols = ?
		 ORDER BY score DESC, (finished_at - started_at) ASC, id ASC LIMIT ?`,
		rows, cols, limit,
	)
}

func (r *resultRepository) list(query string, args ...any) (results []*history.Result, retErr error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil && retErr == nil {
			retErr = err
		}
	}()

	results = make([]*history.Result, 0)
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate results: %w", err)
	}
	return results, nil
}
