package handle

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"medguide/api/internal/analysis"
)

type RecordRequest struct {
	RecordID    string `json:"record_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AnalyzeRecord extracts medicine names from free prescription text and
// generates a predictive insight report for them.
func (h *Handle) AnalyzeRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		http.Error(w, "description is empty", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	names, err := analysis.ExtractFromText(ctx, h.text, req.Description)
	if err != nil {
		writeErr(w, err)
		return
	}
	insight, err := h.insights.Generate(ctx, names)
	if err != nil {
		writeErr(w, err)
		return
	}
	report := analysis.AssembleInsight(insight)

	recordID := strings.TrimSpace(req.RecordID)
	if recordID == "" {
		recordID = uuid.NewString()
	}
	if err := h.insightRepo.Upsert(r.Context(), recordID, req.Title, report); err != nil {
		log.Printf("insight upsert failed for record %s: %v", recordID, err)
	}

	writeJSON(w, http.StatusOK, insightResponse{RecordID: recordID, InsightReport: report})
}

// GetInsight returns the stored insight report for a record.
func (h *Handle) GetInsight(w http.ResponseWriter, r *http.Request) {
	recordID := strings.TrimSpace(r.URL.Query().Get("record_id"))
	if recordID == "" {
		http.Error(w, "record_id is required", http.StatusBadRequest)
		return
	}
	row, err := h.insightRepo.FindByRecord(r.Context(), recordID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, insightResponse{RecordID: row.RecordID, InsightReport: row.Report})
}
