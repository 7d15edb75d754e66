package analysis

import (
	"fmt"
	"strings"
)

// Prompt templates are process-wide constants; nothing mutates them after
// startup.

const extractImagePrompt = `You are MedGuide AI. Extract ALL medicine names from the prescription image. ` +
	`Return ONLY a JSON array of medicine names found in the prescription. ` +
	`Example: ["Medicine1", "Medicine2", "Medicine3"]`

func extractTextPrompt(text string) string {
	return `You are MedGuide AI. Extract ALL medicine names from the prescription text. ` +
		`Return ONLY a JSON array of medicine names found in the prescription. ` +
		`Example: ["Medicine1", "Medicine2", "Medicine3"]` + "\n\nPrescription Text: " + text
}

func insightPrompt(medicineNames []string) string {
	return fmt.Sprintf(`You are a medical AI assistant with expertise in predictive health analytics, drug interactions, and clinical monitoring. Provide detailed, evidence-based analysis focusing on patient safety and health outcomes.

Create a comprehensive medical report for the following medicines found in a prescription:

Medicine Names: %s

For each medicine, create an H2 heading with the medicine name and include:
1. **Description**: Basic information about the medicine and its purpose
2. **Risk Warnings**: Important safety warnings, contraindications, and side effects to watch for, including the estimated chances in percentage
3. **Suggested Tests**: Recommended medical tests or monitoring that should be done while taking this medicine
4. **Summary**: Key points about usage, timing, and important considerations

Format the report in clean markdown with proper headings and bullet points.
Focus on medical safety and health insights rather than commercial information.

After the markdown report, append exactly one fenced JSON object of this shape:
{"summary": string, "key_findings": [string], "risk_warnings": [string], "suggested_tests": [string], "predictive_insights": [string], "confidence": number between 0 and 1}`,
		strings.Join(medicineNames, ", "))
}

func scanPrompt(st ScanType) string {
	return fmt.Sprintf(`You are a radiology assistant AI. Analyze the attached %s scan image.

Return ONLY a JSON object of this exact shape, with no text outside the JSON:
{"summary": string, "findings": [string], "region": string, "clinical_significance": string, "recommendations": [string]}

Requirements:
- "summary" must be a detailed narrative of at least 100 words describing what the scan shows.
- "findings" lists each observation as a separate short statement.
- "region" names the anatomical region imaged.
- "clinical_significance" states how the findings matter clinically.
- "recommendations" lists concrete follow-up actions.
Do not state a risk level; risk is assessed downstream.`, st)
}
