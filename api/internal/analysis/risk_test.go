package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRisk_HighestTierWins(t *testing.T) {
	// Keywords from two tiers: the more severe one must win regardless of
	// position in the text.
	assert.Equal(t, RiskCritical, ClassifyRisk("mild but urgent finding"))
	assert.Equal(t, RiskCritical, ClassifyRisk("urgent but mild finding"))
	assert.Equal(t, RiskHigh, ClassifyRisk("incidental note, however a lesion is present"))
}

func TestClassifyRisk_Tiers(t *testing.T) {
	cases := []struct {
		text string
		want RiskLevel
	}{
		{"patient requires emergency intervention", RiskCritical},
		{"life-threatening hemorrhage suspected", RiskCritical},
		{"acute presentation", RiskCritical},
		{"abnormal signal intensity", RiskHigh},
		{"concerning pattern in the left lobe", RiskHigh},
		{"a small mass was identified", RiskHigh},
		{"mild degenerative changes", RiskModerate},
		{"incidental cyst, follow-up advised", RiskModerate},
		{"normal study", RiskLow},
		{"", RiskLow},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ClassifyRisk(c.text), "text: %q", c.text)
	}
}

func TestClassifyRisk_CaseInsensitive(t *testing.T) {
	assert.Equal(t, RiskCritical, ClassifyRisk("SEVERE STENOSIS"))
	assert.Equal(t, RiskModerate, ClassifyRisk("Mild changes"))
}

func TestClassifyRisk_Idempotent(t *testing.T) {
	text := "significant but mild presentation"
	first := ClassifyRisk(text)
	assert.Equal(t, first, ClassifyRisk(text))
	assert.Equal(t, RiskHigh, first)
}

func TestRiskLevel_SeverityOrder(t *testing.T) {
	assert.Less(t, RiskLow.Severity(), RiskModerate.Severity())
	assert.Less(t, RiskModerate.Severity(), RiskHigh.Severity())
	assert.Less(t, RiskHigh.Severity(), RiskCritical.Severity())
}
