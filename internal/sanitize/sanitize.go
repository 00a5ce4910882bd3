// Package sanitize strips unsafe markup from free-text submissions and
// validates question shape. Patterns are compiled once at package init;
// each is applied to a fixpoint so Clean is idempotent.
package sanitize

import (
	"errors"
	"regexp"
	"strings"
)

// MaxLength is the rune cap applied to sanitized text.
const MaxLength = 500

// MinLength is the minimum sanitized question length.
const MinLength = 10

var (
	// scriptBlockPattern must run before tagPattern so script bodies are
	// removed along with their tags.
	scriptBlockPattern   = regexp.MustCompile(`(?is)<script\b.*?</script\s*>`)
	tagPattern           = regexp.MustCompile(`<[^>]*>`)
	quotedHandlerPattern = regexp.MustCompile(`(?i)on\w+\s*=\s*("[^"]*"|'[^']*')`)
	bareHandlerPattern   = regexp.MustCompile(`(?i)on\w+\s*=\s*[^\s>]*`)
	jsSchemePattern      = regexp.MustCompile(`(?i)javascript:`)

	stripPatterns = []*regexp.Regexp{
		scriptBlockPattern,
		tagPattern,
		quotedHandlerPattern,
		bareHandlerPattern,
		jsSchemePattern,
	}

	// suspiciousPatterns is the denylist applied to raw input during
	// validation, independent of what Clean would remove.
	suspiciousPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<script`),
		regexp.MustCompile(`(?i)javascript:`),
		regexp.MustCompile(`(?i)onerror=`),
		regexp.MustCompile(`(?i)onclick=`),
		regexp.MustCompile(`(?i)onload=`),
	}
)

var (
	ErrEmpty      = errors.New("question must not be empty")
	ErrTooShort   = errors.New("question must be at least 10 characters long")
	ErrTooLong    = errors.New("question must be at most 500 characters long")
	ErrSuspicious = errors.New("question contains invalid characters")
)

// Clean removes script blocks, HTML tags, inline event handlers and
// javascript: schemes, then trims and caps the result at MaxLength runes.
// Clean(Clean(x)) == Clean(x) for all x.
func Clean(input string) string {
	if input == "" {
		return ""
	}
	s := stripToFixpoint(input)
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > MaxLength {
		s = string(r[:MaxLength])
	}
	return strings.TrimSpace(s)
}

// stripToFixpoint runs the full pattern sequence until a pass removes
// nothing, so one pattern's removal cannot splice together text that another
// pattern should have caught.
func stripToFixpoint(s string) string {
	for {
		before := s
		for _, p := range stripPatterns {
			s = p.ReplaceAllString(s, "")
		}
		if s == before {
			return s
		}
	}
}

// ValidateQuestion cleans text, enforces length bounds on the cleaned form
// and rejects raw input matching the denylist even though Clean would strip
// it. A nil return means the text is acceptable; otherwise the error message
// is the reason shown to the submitter.
func ValidateQuestion(text string) error {
	cleaned := Clean(text)
	switch n := len([]rune(cleaned)); {
	case n == 0:
		return ErrEmpty
	case n < MinLength:
		return ErrTooShort
	case n > MaxLength:
		return ErrTooLong
	}
	for _, p := range suspiciousPatterns {
		if p.MatchString(text) {
			return ErrSuspicious
		}
	}
	return nil
}
