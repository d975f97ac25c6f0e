package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize_CVContacts(t *testing.T) {
	s := New()

	in := "Vikas, vikas.dev@gmail.com, +91 98765 43210, linkedin.com/in/vikas-ml"
	out := s.Sanitize(in)

	assert.NotContains(t, out, "vikas.dev@gmail.com")
	assert.NotContains(t, out, "98765")
	assert.NotContains(t, out, "vikas-ml")
	assert.Contains(t, out, "[FILTERED_EMAIL]")
	assert.Contains(t, out, "[FILTERED_PHONE]")
	assert.Contains(t, out, "linkedin.com/in/[FILTERED]")
}

func TestSanitize_KeepsShortNumbers(t *testing.T) {
	s := New()
	assert.Equal(t, "GPA 3.8, class of 2024", s.Sanitize("GPA 3.8, class of 2024"))
}

func TestSanitize_Secrets(t *testing.T) {
	s := New()

	out := s.Sanitize("OPENAI_API_KEY=sk-abcdefghijklmnopqrstuvwxyz123456 password: hunter22")
	assert.NotContains(t, out, "abcdefghijklmnopqrstuvwxyz")
	assert.NotContains(t, out, "hunter22")
}

func TestSanitize_Empty(t *testing.T) {
	assert.Equal(t, "", New().Sanitize(""))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abc…", Truncate("abcdef", 3))
	// Не режем многобайтовую руну пополам
	assert.Equal(t, "при…", Truncate("привет", 7))
}
