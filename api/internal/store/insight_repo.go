package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"medguide/api/internal/analysis"
)

var ErrNotFound = sql.ErrNoRows

type InsightRepo struct{ DB *sql.DB }

func NewInsightRepo(db *sql.DB) *InsightRepo { return &InsightRepo{DB: db} }

// InsightRow is a persisted medicine-analysis report.
type InsightRow struct {
	ID          int64
	RecordID    string
	RecordTitle string
	Summary     string
	Confidence  float64
	Report      analysis.InsightReport
	CreatedAt   time.Time
}

// Upsert saves a report keyed by record_id; a re-analysis of the same record
// replaces the previous row.
func (r *InsightRepo) Upsert(ctx context.Context, recordID, recordTitle string, rep analysis.InsightReport) error {
	js, err := json.Marshal(rep)
	if err != nil {
		return err
	}
	const q = `
insert into ai_insights (record_id, record_title, summary, confidence, report_json, created_at)
values ($1,$2,$3,$4,$5,$6)
on conflict (record_id) do update
set record_title = excluded.record_title,
    summary = excluded.summary,
    confidence = excluded.confidence,
    report_json = excluded.report_json,
    created_at = excluded.created_at`
	_, err = r.DB.ExecContext(ctx, q, recordID, recordTitle, rep.Summary, rep.Confidence, js, rep.CreatedAt)
	return err
}

func (r *InsightRepo) FindByRecord(ctx context.Context, recordID string) (*InsightRow, error) {
	const q = `
select id, record_id, coalesce(record_title,''), summary, confidence, report_json, created_at
from ai_insights
where record_id = $1`
	row := r.DB.QueryRowContext(ctx, q, recordID)

	var (
		out InsightRow
		js  []byte
	)
	if err := row.Scan(&out.ID, &out.RecordID, &out.RecordTitle, &out.Summary, &out.Confidence, &js, &out.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(js, &out.Report); err != nil {
		return nil, ErrNotFound
	}
	return &out, nil
}

// List returns the most recent reports, newest first.
func (r *InsightRepo) List(ctx context.Context, limit int) ([]InsightRow, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `
select id, record_id, coalesce(record_title,''), summary, confidence, report_json, created_at
from ai_insights
order by created_at desc
limit $1`
	rows, err := r.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []InsightRow
	for rows.Next() {
		var (
			ir InsightRow
			js []byte
		)
		if err := rows.Scan(&ir.ID, &ir.RecordID, &ir.RecordTitle, &ir.Summary, &ir.Confidence, &js, &ir.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(js, &ir.Report); err != nil {
			continue
		}
		out = append(out, ir)
	}
	return out, rows.Err()
}
