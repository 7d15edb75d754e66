package util

import "strings"

// StripCodeFences removes a surrounding markdown code fence, with or
// without a language tag, from a model completion.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// CollapseSpaces squeezes runs of internal whitespace to single spaces.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TrimQuotes strips surrounding quote characters and backticks.
func TrimQuotes(s string) string {
	return strings.Trim(s, "\"'`")
}
