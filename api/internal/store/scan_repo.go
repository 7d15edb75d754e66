package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"medguide/api/internal/analysis"
)

type ScanRepo struct{ DB *sql.DB }

func NewScanRepo(db *sql.DB) *ScanRepo { return &ScanRepo{DB: db} }

// ScanRow is a persisted scan-analysis report. doctor_access is the only
// field mutated after creation, via SetDoctorAccess.
type ScanRow struct {
	ID             int64
	RecordID       string
	PatientID      string
	ScanType       analysis.ScanType
	RiskLevel      analysis.RiskLevel
	DoctorAccess   bool
	APIUsageTokens int
	Report         analysis.ScanReport
	CreatedAt      time.Time
}

func (r *ScanRepo) Upsert(ctx context.Context, recordID, patientID string, rep analysis.ScanReport) error {
	js, err := json.Marshal(rep)
	if err != nil {
		return err
	}
	const q = `
insert into scan_analyses (
  record_id, patient_id, scan_type, risk_level,
  doctor_access, api_usage_tokens, report_json, created_at
) values ($1,$2,$3,$4,$5,$6,$7,$8)
on conflict (record_id) do update
set patient_id = excluded.patient_id,
    scan_type = excluded.scan_type,
    risk_level = excluded.risk_level,
    doctor_access = excluded.doctor_access,
    api_usage_tokens = excluded.api_usage_tokens,
    report_json = excluded.report_json,
    created_at = excluded.created_at`
	_, err = r.DB.ExecContext(ctx, q,
		recordID, patientID, rep.ScanType, rep.RiskLevel,
		rep.DoctorAccess, rep.APIUsageTokens, js, rep.CreatedAt)
	return err
}

func (r *ScanRepo) FindByRecord(ctx context.Context, recordID string) (*ScanRow, error) {
	const q = `
select id, record_id, coalesce(patient_id,''), scan_type, risk_level,
       doctor_access, api_usage_tokens, report_json, created_at
from scan_analyses
where record_id = $1`
	row := r.DB.QueryRowContext(ctx, q, recordID)
	return scanScanRow(row)
}

// List returns a patient's scan analyses, optionally filtered by scan type,
// newest first.
func (r *ScanRepo) List(ctx context.Context, patientID string, scanType analysis.ScanType) ([]ScanRow, error) {
	const q = `
select id, record_id, coalesce(patient_id,''), scan_type, risk_level,
       doctor_access, api_usage_tokens, report_json, created_at
from scan_analyses
where patient_id = $1 and ($2 = '' or scan_type = $2)
order by created_at desc`
	rows, err := r.DB.QueryContext(ctx, q, patientID, string(scanType))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ScanRow
	for rows.Next() {
		sr, err := scanScanRow(rows)
		if err != nil {
			return nil, err
		}
		if sr != nil {
			out = append(out, *sr)
		}
	}
	return out, rows.Err()
}

// SetDoctorAccess toggles the access flag and mirrors it into the stored
// report JSON so both stay consistent.
func (r *ScanRepo) SetDoctorAccess(ctx context.Context, recordID string, allowed bool) error {
	const q = `
update scan_analyses
set doctor_access = $2,
    report_json = jsonb_set(report_json::jsonb, '{doctor_access}', to_jsonb($2))
where record_id = $1`
	res, err := r.DB.ExecContext(ctx, q, recordID, allowed)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScanRow(row rowScanner) (*ScanRow, error) {
	var (
		out ScanRow
		js  []byte
	)
	if err := row.Scan(&out.ID, &out.RecordID, &out.PatientID, &out.ScanType, &out.RiskLevel,
		&out.DoctorAccess, &out.APIUsageTokens, &js, &out.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(js, &out.Report); err != nil {
		return nil, ErrNotFound
	}
	return &out, nil
}

var _ rowScanner = (*sql.Row)(nil)
var _ rowScanner = (*sql.Rows)(nil)
