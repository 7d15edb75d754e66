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

// PredictiveInsight is the structured result of one medicine analysis.
// Immutable once returned. JSON keys match the documented response shape.
type PredictiveInsight struct {
	Summary            string   `json:"summary"`
	KeyFindings        []string `json:"keyFindings"`
	RiskWarnings       []string `json:"riskWarnings"`
	SuggestedTests     []string `json:"recommendations"`
	PredictiveInsights []string `json:"predictiveInsights"`
	DetailedReport     string   `json:"detailedReport"`
	Confidence         float64  `json:"confidence"`
	AnalysisType       string   `json:"analysisType"`
	MedicineNames      []string `json:"medicineNames"`
}

const (
	insightAnalysisType = "Predictive Medicine Analysis"

	// defaultConfidence is used when the structured block omits confidence.
	defaultConfidence = 0.5
	// fallbackConfidence marks a degraded (unparseable completion) result.
	fallbackConfidence = 0.3
)

// InsightGenerator turns a medicine list into a PredictiveInsight by
// prompting the text engine and parsing its completion.
type InsightGenerator struct {
	Engine llm.TextEngine
}

// Generate prompts the model for the given medicine names. A transient model
// failure is retried once; a second failure surfaces as *GenerationError.
// A completion that cannot be parsed, or a timed-out call, degrades to a
// synthesized low-confidence insight instead of failing.
func (g *InsightGenerator) Generate(ctx context.Context, medicineNames []string) (PredictiveInsight, error) {
	if len(medicineNames) == 0 {
		return PredictiveInsight{}, ErrNoInput
	}

	out, err := llm.Complete(ctx, g.Engine, insightPrompt(medicineNames))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fallbackInsight(medicineNames, ""), nil
		}
		return PredictiveInsight{}, &GenerationError{Op: "insight", Err: err}
	}

	block, ok := parseInsightBlock(out.Text)
	if !ok {
		return fallbackInsight(medicineNames, out.Text), nil
	}

	summary := strings.TrimSpace(block.Summary)
	if summary == "" {
		summary = fallbackSummary(medicineNames)
	}
	confidence := defaultConfidence
	if block.Confidence != nil {
		confidence = clamp01(*block.Confidence)
	}
	return PredictiveInsight{
		Summary:            summary,
		KeyFindings:        orEmpty(block.KeyFindings),
		RiskWarnings:       orEmpty(block.RiskWarnings),
		SuggestedTests:     orEmpty(block.SuggestedTests),
		PredictiveInsights: orEmpty(block.PredictiveInsights),
		DetailedReport:     out.Text,
		Confidence:         confidence,
		AnalysisType:       insightAnalysisType,
		MedicineNames:      medicineNames,
	}, nil
}

// insightBlock is the aggregate structured block the prompt asks the model
// to append after the markdown report.
type insightBlock struct {
	Summary            string   `json:"summary"`
	KeyFindings        []string `json:"key_findings"`
	RiskWarnings       []string `json:"risk_warnings"`
	SuggestedTests     []string `json:"suggested_tests"`
	PredictiveInsights []string `json:"predictive_insights"`
	Confidence         *float64 `json:"confidence"`
}

// parseInsightBlock locates the JSON object in a completion that may be
// wrapped in markdown and code fences. The bool is false when no valid
// object can be found; callers then take the degrade path.
func parseInsightBlock(completion string) (insightBlock, bool) {
	txt := util.StripCodeFences(completion)
	start := strings.Index(txt, "{")
	end := strings.LastIndex(txt, "}")
	if start < 0 || end <= start {
		return insightBlock{}, false
	}
	var block insightBlock
	if err := json.Unmarshal([]byte(txt[start:end+1]), &block); err != nil {
		return insightBlock{}, false
	}
	return block, true
}

func fallbackSummary(names []string) string {
	return fmt.Sprintf("Predictive analysis completed for %d medicines: %s. "+
		"This combination requires careful monitoring and adherence to prescribed dosage. "+
		"Regular health checkups and close communication with your healthcare provider are recommended.",
		len(names), strings.Join(names, ", "))
}

// fallbackInsight synthesizes a valid, clearly lower-confidence insight from
// the medicine names alone. It never fails; this is the defined degrade path
// for unparseable completions and timed-out calls.
func fallbackInsight(names []string, rawCompletion string) PredictiveInsight {
	joined := strings.Join(names, ", ")
	detailed := rawCompletion
	if strings.TrimSpace(detailed) == "" {
		detailed = fallbackSummary(names)
	}
	return PredictiveInsight{
		Summary: fallbackSummary(names),
		KeyFindings: []string{
			fmt.Sprintf("Medicine Analysis: %s - automated evaluation completed", joined),
			"Structured model output was unavailable; generic guidance applies",
		},
		RiskWarnings: []string{
			fmt.Sprintf("%s - requires careful monitoring and adherence to prescribed dosage", joined),
			"Drug Interactions - potential interactions may occur, consult your healthcare provider before taking other medications",
			"Side Effects - monitor for adverse reactions and report them immediately to your healthcare provider",
		},
		SuggestedTests: []string{
			"Blood Tests - schedule a comprehensive blood panel including liver function, kidney function, and complete blood count",
			"Vital Signs - monitor blood pressure, heart rate, and temperature regularly",
			"Follow-up Appointments - schedule regular checkups with your healthcare provider for medication review",
		},
		PredictiveInsights: []string{
			fmt.Sprintf("%d medicines require coordinated management", len(names)),
			"Close healthcare provider supervision is essential for safe management",
		},
		DetailedReport: detailed,
		Confidence:     fallbackConfidence,
		AnalysisType:   insightAnalysisType,
		MedicineNames:  names,
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
