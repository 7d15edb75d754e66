package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"unicode"

	"medguide/api/internal/llm"
	"medguide/api/internal/util"
)

// ExtractMedicineNames parses a raw model completion into a deduplicated,
// ordered list of medicine names. The input may be a JSON array (fenced or
// bare), a comma/newline enumeration, or free text.
//
// Empty or whitespace-only input returns an empty list and no error; a
// non-empty input from which nothing usable can be parsed returns
// ErrNothingExtracted.
func ExtractMedicineNames(raw string) ([]string, error) {
	stripped := util.StripCodeFences(raw)
	if stripped == "" {
		return nil, nil
	}

	var candidates []string
	if strings.HasPrefix(stripped, "[") && strings.HasSuffix(stripped, "]") {
		var arr []string
		if err := json.Unmarshal([]byte(stripped), &arr); err == nil {
			candidates = arr
		}
	}
	if candidates == nil {
		candidates = strings.FieldsFunc(stripped, func(r rune) bool {
			return r == ',' || r == '\n'
		})
	}

	seen := make(map[string]bool, len(candidates))
	var names []string
	for _, c := range candidates {
		name := normalizeName(c)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, ErrNothingExtracted
	}
	return names, nil
}

func normalizeName(s string) string {
	s = util.TrimQuotes(strings.TrimSpace(s))
	s = strings.Trim(s, "[]")
	s = util.CollapseSpaces(util.TrimQuotes(strings.TrimSpace(s)))
	if !hasAlnum(s) {
		return ""
	}
	return s
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// Common prescription drugs used as a last-resort scan of the source text
// when the model completion yields nothing.
var commonMedicines = []string{
	"amoxicillin", "metformin", "lisinopril", "aspirin", "ibuprofen", "acetaminophen",
}

// ExtractFromImage asks the vision engine for the medicine names on a
// prescription image, then runs ExtractMedicineNames over the completion.
func ExtractFromImage(ctx context.Context, eng llm.VisionEngine, image []byte) ([]string, error) {
	if len(image) == 0 {
		return nil, ErrNoInput
	}
	out, err := llm.CompleteImage(ctx, eng, image, extractImagePrompt)
	if err != nil {
		return nil, &GenerationError{Op: "extract", Err: err}
	}
	return ExtractMedicineNames(out.Text)
}

// ExtractFromText does the same for free prescription text. When the model
// finds nothing, it falls back to scanning the source text for common
// medicine names before giving up.
func ExtractFromText(ctx context.Context, eng llm.TextEngine, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoInput
	}
	out, err := llm.Complete(ctx, eng, extractTextPrompt(text))
	if err != nil {
		return nil, &GenerationError{Op: "extract", Err: err}
	}
	names, err := ExtractMedicineNames(out.Text)
	if err == nil || !errors.Is(err, ErrNothingExtracted) {
		return names, err
	}
	lower := strings.ToLower(text)
	for _, med := range commonMedicines {
		if strings.Contains(lower, med) {
			names = append(names, strings.ToUpper(med[:1])+med[1:])
		}
	}
	if len(names) == 0 {
		return nil, ErrNothingExtracted
	}
	return names, nil
}
