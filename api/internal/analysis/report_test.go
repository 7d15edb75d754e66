package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleInsight_AlwaysCarriesDisclaimer(t *testing.T) {
	structured := PredictiveInsight{Summary: "ok", Confidence: 0.9}
	degraded := fallbackInsight([]string{"Aspirin"}, "")

	for _, in := range []PredictiveInsight{structured, degraded} {
		rep := AssembleInsight(in)
		assert.NotEmpty(t, rep.Disclaimer)
		assert.NotEmpty(t, rep.AIDisclaimer)
		assert.False(t, rep.CreatedAt.IsZero())
	}
}

func TestAssembleScan_AlwaysCarriesDisclaimer(t *testing.T) {
	structured := ScanFinding{Summary: "ok", RiskLevel: RiskLow}
	degraded := manualReviewFinding(ScanMRI, ScanOptions{}, 0)

	for _, f := range []ScanFinding{structured, degraded} {
		rep := AssembleScan(f)
		assert.NotEmpty(t, rep.Disclaimer)
		assert.NotEmpty(t, rep.AIDisclaimer)
		assert.False(t, rep.CreatedAt.IsZero())
	}
}

func TestInsightReport_JSONShape(t *testing.T) {
	rep := AssembleInsight(PredictiveInsight{
		Summary:            "s",
		KeyFindings:        []string{"k"},
		RiskWarnings:       []string{"r"},
		SuggestedTests:     []string{"t"},
		PredictiveInsights: []string{"p"},
		DetailedReport:     "# report",
		Confidence:         0.85,
		AnalysisType:       "Predictive Medicine Analysis",
		MedicineNames:      []string{"Aspirin"},
	})
	b, err := json.Marshal(rep)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, key := range []string{
		"summary", "keyFindings", "riskWarnings", "recommendations",
		"predictiveInsights", "detailedReport", "confidence",
		"analysisType", "medicineNames", "disclaimer", "aiDisclaimer", "createdAt",
	} {
		assert.Contains(t, m, key)
	}
}

func TestScanReport_JSONShape(t *testing.T) {
	rep := AssembleScan(ScanFinding{
		Summary:              "s",
		Findings:             []string{"f"},
		Region:               "chest",
		ClinicalSignificance: "cs",
		Recommendations:      []string{"r"},
		RiskLevel:            RiskHigh,
		ScanType:             ScanCT,
		SourceModel:          "gemini-2.5-flash",
		DoctorAccess:         true,
		APIUsageTokens:       10,
	})
	b, err := json.Marshal(rep)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, key := range []string{
		"summary", "findings", "region", "clinical_significance",
		"recommendations", "risk_level", "scan_type", "source_model",
		"doctor_access", "api_usage_tokens", "disclaimer", "ai_disclaimer", "created_at",
	} {
		assert.Contains(t, m, key)
	}
}

func TestReports_RoundTrip(t *testing.T) {
	insight := AssembleInsight(fallbackInsight([]string{"Aspirin", "Metformin"}, "raw text"))
	b, err := json.Marshal(insight)
	require.NoError(t, err)
	var insightBack InsightReport
	require.NoError(t, json.Unmarshal(b, &insightBack))
	assert.Equal(t, insight, insightBack)

	scan := AssembleScan(ScanFinding{
		Summary:              "detailed narrative",
		Findings:             []string{"a", "b"},
		Region:               "brain",
		ClinicalSignificance: "significant",
		Recommendations:      []string{"follow up"},
		RiskLevel:            RiskHigh,
		ScanType:             ScanMRI,
		SourceModel:          "gemini-2.5-flash",
		DoctorAccess:         true,
		APIUsageTokens:       512,
	})
	b, err = json.Marshal(scan)
	require.NoError(t, err)
	var scanBack ScanReport
	require.NoError(t, json.Unmarshal(b, &scanBack))
	assert.Equal(t, scan, scanBack)
}
