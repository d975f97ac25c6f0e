// Package sanitizer маскирует персональные данные перед записью в журнал.
// В промптах агента есть текст резюме: email, телефон, ссылки на профили.
package sanitizer

import "strings"

type DataSanitizer struct {
	rules []Rule
}

type Rule interface {
	Sanitize(text string) string
}

func New() *DataSanitizer {
	return &DataSanitizer{
		rules: []Rule{
			SecretRule{},
			EmailRule{},
			PhoneRule{},
			ProfileRule{},
		},
	}
}

func (s *DataSanitizer) Sanitize(text string) string {
	if text == "" {
		return text
	}

	result := text
	for _, rule := range s.rules {
		result = rule.Sanitize(result)
	}
	return result
}

// Truncate обрезает текст до max байт по границе руны, чтобы журнал не раздувался
// полным текстом резюме на каждом шаге.
func Truncate(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !isRuneStart(text[cut]) {
		cut--
	}
	return strings.TrimSpace(text[:cut]) + "…"
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
