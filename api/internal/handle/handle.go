package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"medguide/api/internal/analysis"
	"medguide/api/internal/llm"
	"medguide/api/internal/notify"
	"medguide/api/internal/store"
)

// InsightStore persists medicine-analysis reports.
type InsightStore interface {
	Upsert(ctx context.Context, recordID, recordTitle string, rep analysis.InsightReport) error
	FindByRecord(ctx context.Context, recordID string) (*store.InsightRow, error)
}

// ScanStore persists scan-analysis reports.
type ScanStore interface {
	Upsert(ctx context.Context, recordID, patientID string, rep analysis.ScanReport) error
	FindByRecord(ctx context.Context, recordID string) (*store.ScanRow, error)
	List(ctx context.Context, patientID string, scanType analysis.ScanType) ([]store.ScanRow, error)
	SetDoctorAccess(ctx context.Context, recordID string, allowed bool) error
}

type Handle struct {
	insights analysis.InsightGenerator
	scans    analysis.ScanGenerator
	vision   llm.VisionEngine
	text     llm.TextEngine

	insightRepo InsightStore
	scanRepo    ScanStore
	alerts      *notify.Notifier

	timeout time.Duration
}

func New(text llm.TextEngine, vision llm.VisionEngine,
	insightRepo InsightStore, scanRepo ScanStore,
	alerts *notify.Notifier, timeout time.Duration) *Handle {
	return &Handle{
		insights:    analysis.InsightGenerator{Engine: text},
		scans:       analysis.ScanGenerator{Engine: vision},
		vision:      vision,
		text:        text,
		insightRepo: insightRepo,
		scanRepo:    scanRepo,
		alerts:      alerts,
		timeout:     timeout,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusFor(err))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, analysis.ErrNoInput), errors.Is(err, analysis.ErrBadScanType):
		return http.StatusBadRequest
	case errors.Is(err, analysis.ErrNothingExtracted):
		return http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	}
	var gen *analysis.GenerationError
	if errors.As(err, &gen) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
