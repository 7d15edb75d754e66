package store

import (
	"context"
	"database/sql"
)

// EnsureSchema creates the analysis tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const q = `
create table if not exists ai_insights (
  id bigserial primary key,
  record_id text not null unique,
  record_title text,
  summary text not null,
  confidence double precision not null default 0,
  report_json jsonb not null,
  created_at timestamptz not null default now()
);

create table if not exists scan_analyses (
  id bigserial primary key,
  record_id text not null unique,
  patient_id text,
  scan_type text not null,
  risk_level text not null,
  doctor_access boolean not null default false,
  api_usage_tokens integer not null default 0,
  report_json jsonb not null,
  created_at timestamptz not null default now()
);

create index if not exists scan_analyses_patient_idx on scan_analyses (patient_id, created_at desc);`
	_, err := db.ExecContext(ctx, q)
	return err
}
