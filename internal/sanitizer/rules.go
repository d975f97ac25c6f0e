package sanitizer

import "regexp"

var (
	emailPattern = regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`)

	phonePattern = regexp.MustCompile(`\+?\(?\d{1,4}\)?[\s.-]?\(?\d{2,4}\)?[\s.-]?\d{3}[\s.-]?\d{2,5}(?:[\s.-]?\d{2})?`)

	profilePattern = regexp.MustCompile(`(?i)\b(?:https?://)?(?:www\.)?(linkedin\.com/in|github\.com)/[A-Za-z0-9_.-]+`)

	secretPatterns = []*regexp.Regexp{
		regexp.MustCompile(`sk-[A-Za-z0-9_-]{20,}`),
		regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9._-]{20,}`),
		regexp.MustCompile(`(?i)((?:api[_-]?key|token|password)\s*[:=]\s*)["']?[^"'\s]{3,}["']?`),
	}
)

type EmailRule struct{}

func (EmailRule) Sanitize(text string) string {
	return emailPattern.ReplaceAllString(text, "[FILTERED_EMAIL]")
}

// PhoneRule ищет номера из 9+ цифр с разделителями.
type PhoneRule struct{}

func (PhoneRule) Sanitize(text string) string {
	return phonePattern.ReplaceAllStringFunc(text, func(m string) string {
		digits := 0
		for _, r := range m {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits < 9 {
			return m
		}
		return "[FILTERED_PHONE]"
	})
}

type ProfileRule struct{}

func (ProfileRule) Sanitize(text string) string {
	return profilePattern.ReplaceAllString(text, "$1/[FILTERED]")
}

type SecretRule struct{}

func (SecretRule) Sanitize(text string) string {
	text = secretPatterns[0].ReplaceAllString(text, "[FILTERED]")
	for _, p := range secretPatterns[1:] {
		text = p.ReplaceAllString(text, "${1}[FILTERED]")
	}
	return text
}
