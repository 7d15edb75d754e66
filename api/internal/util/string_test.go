package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `["a"]`, StripCodeFences("```json\n[\"a\"]\n```"))
	assert.Equal(t, `["a"]`, StripCodeFences("```\n[\"a\"]\n```"))
	assert.Equal(t, `["a"]`, StripCodeFences(`["a"]`))
	assert.Equal(t, "", StripCodeFences("   \n"))
}

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "a b c", CollapseSpaces("  a \t b\n\nc "))
	assert.Equal(t, "", CollapseSpaces("   "))
}

func TestTrimQuotes(t *testing.T) {
	assert.Equal(t, "Aspirin", TrimQuotes(`"Aspirin"`))
	assert.Equal(t, "Aspirin", TrimQuotes("'Aspirin'"))
	assert.Equal(t, "Aspirin", TrimQuotes("`Aspirin`"))
	assert.Equal(t, "Aspirin", TrimQuotes("Aspirin"))
}

func TestSniffImageMIME(t *testing.T) {
	assert.Equal(t, "image/jpeg", SniffImageMIME([]byte{0xFF, 0xD8, 0xFF, 0xE0}))
	assert.Equal(t, "image/png", SniffImageMIME([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}))
	assert.Equal(t, "image/webp", SniffImageMIME([]byte("RIFF0000WEBPVP8 ")))
	assert.Equal(t, "application/octet-stream", SniffImageMIME([]byte("not an image")))
}
