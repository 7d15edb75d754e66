package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"medguide/api/internal/llm"
	"medguide/api/internal/util"
)

// ScanType identifies the imaging modality.
type ScanType string

const (
	ScanMRI  ScanType = "MRI"
	ScanCT   ScanType = "CT"
	ScanXRay ScanType = "XRAY"
)

// ParseScanType validates a caller-supplied scan type string.
func ParseScanType(s string) (ScanType, error) {
	switch ScanType(strings.ToUpper(strings.TrimSpace(s))) {
	case ScanMRI:
		return ScanMRI, nil
	case ScanCT:
		return ScanCT, nil
	case ScanXRay:
		return ScanXRay, nil
	default:
		return "", ErrBadScanType
	}
}

// DetectScanType infers the modality from a record title and file name.
// Defaults to MRI, matching the upstream record classifier.
func DetectScanType(title, fileName string) ScanType {
	t := strings.ToLower(title + " " + fileName)
	switch {
	case strings.Contains(t, "ct"):
		return ScanCT
	case strings.Contains(t, "xray") || strings.Contains(t, "x-ray"):
		return ScanXRay
	default:
		return ScanMRI
	}
}

// scanSourceModel is the fixed identifier recorded on every scan finding.
const scanSourceModel = "gemini-2.5-flash"

// ScanFinding is the structured result of one scan analysis. The risk level
// is always derived locally from the finding text, never taken from the
// model, so risk tiers stay deterministic and auditable. JSON keys match the
// persisted scan-analysis row shape.
type ScanFinding struct {
	Summary              string    `json:"summary"`
	Findings             []string  `json:"findings"`
	Region               string    `json:"region"`
	ClinicalSignificance string    `json:"clinical_significance"`
	Recommendations      []string  `json:"recommendations"`
	RiskLevel            RiskLevel `json:"risk_level"`
	ScanType             ScanType  `json:"scan_type"`
	SourceModel          string    `json:"source_model"`
	DoctorAccess         bool      `json:"doctor_access"`
	APIUsageTokens       int       `json:"api_usage_tokens"`
}

// ScanOptions carries caller-supplied settings for a scan analysis.
type ScanOptions struct {
	DoctorAccess bool
}

// ScanGenerator produces a ScanFinding from scan image bytes by prompting
// the vision engine and classifying risk over the parsed text.
type ScanGenerator struct {
	Engine llm.VisionEngine
}

// Generate analyzes one scan image. Transient model failures are retried
// once, then surface as *GenerationError. Unparseable completions and
// timed-out calls degrade to a manual-review finding with moderate risk.
func (g *ScanGenerator) Generate(ctx context.Context, image []byte, st ScanType, opts ScanOptions) (ScanFinding, error) {
	if len(image) == 0 {
		return ScanFinding{}, ErrNoInput
	}
	if _, err := ParseScanType(string(st)); err != nil {
		return ScanFinding{}, err
	}

	out, err := llm.CompleteImage(ctx, g.Engine, image, scanPrompt(st))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return manualReviewFinding(st, opts, 0), nil
		}
		return ScanFinding{}, &GenerationError{Op: "scan", Err: err}
	}

	block, ok := parseScanBlock(out.Text)
	if !ok {
		return manualReviewFinding(st, opts, out.Tokens), nil
	}

	return ScanFinding{
		Summary:              strings.TrimSpace(block.Summary),
		Findings:             orEmpty(block.Findings),
		Region:               strings.TrimSpace(block.Region),
		ClinicalSignificance: strings.TrimSpace(block.ClinicalSignificance),
		Recommendations:      orEmpty(block.Recommendations),
		RiskLevel:            ClassifyRisk(block.ClinicalSignificance + "\n" + block.Summary),
		ScanType:             st,
		SourceModel:          scanSourceModel,
		DoctorAccess:         opts.DoctorAccess,
		APIUsageTokens:       out.Tokens,
	}, nil
}

type scanBlock struct {
	Summary              string   `json:"summary"`
	Findings             []string `json:"findings"`
	Region               string   `json:"region"`
	ClinicalSignificance string   `json:"clinical_significance"`
	Recommendations      []string `json:"recommendations"`
}

func parseScanBlock(completion string) (scanBlock, bool) {
	txt := util.StripCodeFences(completion)
	start := strings.Index(txt, "{")
	end := strings.LastIndex(txt, "}")
	if start < 0 || end <= start {
		return scanBlock{}, false
	}
	var block scanBlock
	if err := json.Unmarshal([]byte(txt[start:end+1]), &block); err != nil {
		return scanBlock{}, false
	}
	if strings.TrimSpace(block.Summary) == "" {
		return scanBlock{}, false
	}
	return block, true
}

// manualReviewFinding is the conservative default when no structured reading
// is available. Moderate risk, pending human review.
func manualReviewFinding(st ScanType, opts ScanOptions, tokens int) ScanFinding {
	return ScanFinding{
		Summary: fmt.Sprintf("Automated analysis could not produce a structured reading for this %s scan. "+
			"The image was received and processed, but the model response did not contain usable findings. "+
			"Manual review by a qualified radiologist is recommended before any clinical decision.", st),
		Findings: []string{
			"Structured findings unavailable",
			"Manual review recommended",
		},
		Region:               "unspecified",
		ClinicalSignificance: "Pending manual review by a qualified radiologist.",
		Recommendations: []string{
			"Have the scan reviewed by a radiologist",
			"Repeat the automated analysis if a corrected image is available",
		},
		RiskLevel:      RiskModerate,
		ScanType:       st,
		SourceModel:    scanSourceModel,
		DoctorAccess:   opts.DoctorAccess,
		APIUsageTokens: tokens,
	}
}
