package handle

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"medguide/api/internal/analysis"
)

type PrescriptionRequest struct {
	RecordID string `json:"record_id"`
	Title    string `json:"title"`
	ImageB64 string `json:"image_b64"`
}

type insightResponse struct {
	RecordID string `json:"record_id"`
	analysis.InsightReport
}

// AnalyzePrescription extracts medicine names from a prescription image and
// generates a predictive insight report for them.
func (h *Handle) AnalyzePrescription(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req PrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}
	img, err := base64.StdEncoding.DecodeString(strings.TrimSpace(req.ImageB64))
	if err != nil || len(img) == 0 {
		http.Error(w, "bad image_b64", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	names, err := analysis.ExtractFromImage(ctx, h.vision, img)
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
