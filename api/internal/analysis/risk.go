package analysis

import "strings"

// RiskLevel is a discrete risk tier, ordered low < moderate < high < critical.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Severity maps the tier to its position in the order, low = 0.
func (r RiskLevel) Severity() int {
	switch r {
	case RiskCritical:
		return 3
	case RiskHigh:
		return 2
	case RiskModerate:
		return 1
	default:
		return 0
	}
}

type riskTier struct {
	level    RiskLevel
	keywords []string
}

// Tiers are evaluated top-down; the first tier with any keyword hit wins,
// so a higher tier always beats a lower one regardless of position in text.
var riskTiers = []riskTier{
	{RiskCritical, []string{"emergency", "urgent", "critical", "severe", "life-threatening", "acute"}},
	{RiskHigh, []string{"abnormal", "concerning", "significant", "pathological", "lesion", "mass"}},
	{RiskModerate, []string{"mild", "slight", "minor", "incidental", "follow-up"}},
}

// ClassifyRisk maps free text to a risk tier by case-insensitive keyword
// matching. Pure function; returns RiskLow when nothing matches.
func ClassifyRisk(text string) RiskLevel {
	t := strings.ToLower(text)
	for _, tier := range riskTiers {
		for _, kw := range tier.keywords {
			if strings.Contains(t, kw) {
				return tier.level
			}
		}
	}
	return RiskLow
}
