package analysis

import "time"

// Disclaimer is the fixed compliance text attached to every report.
// Every report carries it, on both the success and degrade paths.
const Disclaimer = "This AI-generated analysis is for informational purposes only and should not replace " +
	"professional medical advice, diagnosis, or treatment. Always consult with qualified healthcare professionals."

// AIDisclaimer is the short banner variant shown alongside insight payloads.
const AIDisclaimer = "AI Analysis Disclaimer: This analysis is for informational purposes only and should not " +
	"replace professional medical advice. Always consult your healthcare provider for personalized medical guidance."

// ScanDisclaimer is the banner variant for imaging reports.
const ScanDisclaimer = "This scan analysis is automatically generated by an AI model and is provided for " +
	"informational purposes only. It does not substitute for clinical judgment or diagnostic evaluation. " +
	"Always consult a qualified radiologist or medical professional for interpretation and treatment decisions."

// InsightReport is the persisted shape for a medicine analysis.
type InsightReport struct {
	PredictiveInsight
	Disclaimer   string    `json:"disclaimer"`
	AIDisclaimer string    `json:"aiDisclaimer"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ScanReport is the persisted shape for a scan analysis.
type ScanReport struct {
	ScanFinding
	Disclaimer   string    `json:"disclaimer"`
	AIDisclaimer string    `json:"ai_disclaimer"`
	CreatedAt    time.Time `json:"created_at"`
}

// AssembleInsight wraps an insight with the mandatory disclaimer and a
// creation timestamp. Pure apart from reading the clock.
func AssembleInsight(in PredictiveInsight) InsightReport {
	return InsightReport{
		PredictiveInsight: in,
		Disclaimer:        Disclaimer,
		AIDisclaimer:      AIDisclaimer,
		CreatedAt:         time.Now().UTC(),
	}
}

// AssembleScan wraps a scan finding the same way.
func AssembleScan(f ScanFinding) ScanReport {
	return ScanReport{
		ScanFinding:  f,
		Disclaimer:   Disclaimer,
		AIDisclaimer: ScanDisclaimer,
		CreatedAt:    time.Now().UTC(),
	}
}
