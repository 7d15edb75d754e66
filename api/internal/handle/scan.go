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

type ScanRequest struct {
	RecordID     string `json:"record_id"`
	PatientID    string `json:"patient_id"`
	ScanType     string `json:"scan_type"`
	Title        string `json:"title"`
	FileName     string `json:"file_name"`
	ImageB64     string `json:"image_b64"`
	DoctorAccess bool   `json:"doctor_access"`
}

type scanResponse struct {
	RecordID  string `json:"record_id"`
	PatientID string `json:"patient_id,omitempty"`
	analysis.ScanReport
}

// AnalyzeScan produces a structured radiology-style report for an MRI, CT or
// X-ray image. When scan_type is omitted, the modality is inferred from the
// record title and file name.
func (h *Handle) AnalyzeScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}
	img, err := base64.StdEncoding.DecodeString(strings.TrimSpace(req.ImageB64))
	if err != nil || len(img) == 0 {
		http.Error(w, "bad image_b64", http.StatusBadRequest)
		return
	}

	var scanType analysis.ScanType
	if strings.TrimSpace(req.ScanType) == "" {
		scanType = analysis.DetectScanType(req.Title, req.FileName)
	} else {
		scanType, err = analysis.ParseScanType(req.ScanType)
		if err != nil {
			writeErr(w, err)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	finding, err := h.scans.Generate(ctx, img, scanType, analysis.ScanOptions{DoctorAccess: req.DoctorAccess})
	if err != nil {
		writeErr(w, err)
		return
	}
	report := analysis.AssembleScan(finding)

	recordID := strings.TrimSpace(req.RecordID)
	if recordID == "" {
		recordID = uuid.NewString()
	}
	if err := h.scanRepo.Upsert(r.Context(), recordID, req.PatientID, report); err != nil {
		log.Printf("scan upsert failed for record %s: %v", recordID, err)
	}
	h.alerts.ScanAlert(recordID, finding)

	writeJSON(w, http.StatusOK, scanResponse{RecordID: recordID, PatientID: req.PatientID, ScanReport: report})
}

// GetScan returns the stored scan report for a record.
func (h *Handle) GetScan(w http.ResponseWriter, r *http.Request) {
	recordID := strings.TrimSpace(r.URL.Query().Get("record_id"))
	if recordID == "" {
		http.Error(w, "record_id is required", http.StatusBadRequest)
		return
	}
	row, err := h.scanRepo.FindByRecord(r.Context(), recordID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scanResponse{RecordID: row.RecordID, PatientID: row.PatientID, ScanReport: row.Report})
}

// ListScans returns a patient's scan reports, optionally filtered by type.
func (h *Handle) ListScans(w http.ResponseWriter, r *http.Request) {
	patientID := strings.TrimSpace(r.URL.Query().Get("patient_id"))
	if patientID == "" {
		http.Error(w, "patient_id is required", http.StatusBadRequest)
		return
	}
	var scanType analysis.ScanType
	if st := strings.TrimSpace(r.URL.Query().Get("scan_type")); st != "" {
		parsed, err := analysis.ParseScanType(st)
		if err != nil {
			writeErr(w, err)
			return
		}
		scanType = parsed
	}
	rows, err := h.scanRepo.List(r.Context(), patientID, scanType)
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]scanResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, scanResponse{RecordID: row.RecordID, PatientID: row.PatientID, ScanReport: row.Report})
	}
	writeJSON(w, http.StatusOK, out)
}

type AccessRequest struct {
	RecordID     string `json:"record_id"`
	DoctorAccess bool   `json:"doctor_access"`
}

// UpdateDoctorAccess toggles whether a doctor may view a scan report.
func (h *Handle) UpdateDoctorAccess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req AccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.RecordID) == "" {
		http.Error(w, "record_id is required", http.StatusBadRequest)
		return
	}
	if err := h.scanRepo.SetDoctorAccess(r.Context(), req.RecordID, req.DoctorAccess); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"record_id":     req.RecordID,
		"doctor_access": req.DoctorAccess,
	})
}
