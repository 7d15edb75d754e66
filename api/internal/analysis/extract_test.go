package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMedicineNames_FencedJSONArray(t *testing.T) {
	raw := "```json\n[\"Paracetamol\", \"paracetamol\", \"Ibuprofen\"]\n```"
	names, err := ExtractMedicineNames(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Paracetamol", "Ibuprofen"}, names)
}

func TestExtractMedicineNames_BareJSONArray(t *testing.T) {
	names, err := ExtractMedicineNames(`["Amoxicillin", "Metformin"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Amoxicillin", "Metformin"}, names)
}

func TestExtractMedicineNames_CommaAndNewlineFallback(t *testing.T) {
	names, err := ExtractMedicineNames("Aspirin, Metformin\nIbuprofen")
	require.NoError(t, err)
	assert.Equal(t, []string{"Aspirin", "Metformin", "Ibuprofen"}, names)
}

func TestExtractMedicineNames_UnquotedBracketList(t *testing.T) {
	// Not valid JSON, so the splitter handles it; bracket remnants are
	// stripped during normalization.
	names, err := ExtractMedicineNames("[Aspirin, Metformin]")
	require.NoError(t, err)
	assert.Equal(t, []string{"Aspirin", "Metformin"}, names)
}

func TestExtractMedicineNames_QuoteAndWhitespaceCleanup(t *testing.T) {
	names, err := ExtractMedicineNames("\"Aspirin   100mg\" , 'Metformin'")
	require.NoError(t, err)
	assert.Equal(t, []string{"Aspirin 100mg", "Metformin"}, names)
}

func TestExtractMedicineNames_DedupPreservesFirstSeenOrder(t *testing.T) {
	names, err := ExtractMedicineNames("Ibuprofen, aspirin, IBUPROFEN, Aspirin, ibuprofen")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ibuprofen", "aspirin"}, names)
}

func TestExtractMedicineNames_EmptyInputIsNotAnError(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t  \n", "``` ```"} {
		names, err := ExtractMedicineNames(raw)
		assert.NoError(t, err, "input: %q", raw)
		assert.Empty(t, names, "input: %q", raw)
	}
}

func TestExtractMedicineNames_PunctuationOnlyFails(t *testing.T) {
	for _, raw := range []string{"...", "-, -", "[\"\", \"\"]"} {
		names, err := ExtractMedicineNames(raw)
		assert.ErrorIs(t, err, ErrNothingExtracted, "input: %q", raw)
		assert.Empty(t, names)
	}
}

func TestExtractMedicineNames_FreeTextParagraph(t *testing.T) {
	names, err := ExtractMedicineNames("The patient takes Lisinopril daily, and Atorvastatin at night")
	require.NoError(t, err)
	assert.Equal(t, []string{"The patient takes Lisinopril daily", "and Atorvastatin at night"}, names)
}
