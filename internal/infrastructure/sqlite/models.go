package sqlite

import (
	"time"

	"github.com/zjrosen/soundpairs/internal/history"
)

// resultModel is a row of the results table. Times are Unix milliseconds.
type resultModel struct {
	ID         int64
	GUID       string
	Rows       int
	Cols       int
	Score      int
	Matches    int
	Mismatches int
	StartedAt  int64
	FinishedAt int64
}

func toResultModel(r *history.Result) resultModel {
	return resultModel{
		ID:         r.ID,
		GUID:       r.GUID,
		Rows:       r.Rows,
		Cols:       r.Cols,
		Score:      r.Score,
		Matches:    r.Matches,
		Mismatches: r.Mismatches,
		StartedAt:  r.StartedAt.UnixMilli(),
		FinishedAt: r.FinishedAt.UnixMilli(),
	}
}

func (m resultModel) toDomain() *history.Result {
	return &history.Result{
		ID:         m.ID,
		GUID:       m.GUID,
		Rows:       m.Rows,
		Cols:       m.Cols,
		Score:      m.Score,
		Matches:    m.Matches,
		Mismatches: m.Mismatches,
		StartedAt:  time.UnixMilli(m.StartedAt),
		FinishedAt: time.UnixMilli(m.FinishedAt),
	}
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanResult(s scanner) (*history.Result, error) {
	var m resultModel
	if err := s.Scan(&m.ID, &m.GUID, &m.Rows, &m.Cols, &m.Score, &m.Matches, &m.Mismatches, &m.StartedAt, &m.FinishedAt); err != nil {
		return nil, err
	}
	return m.toDomain(), nil
}
