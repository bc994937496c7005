package shared

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var invariantLower = cases.Lower(language.Und)

// ToLowerInvariant lowercases s without locale-specific rules.
func ToLowerInvariant(s string) string {
	return invariantLower.String(s)
}

// NormalizeOptional trims s and returns nil when nothing remains.
func NormalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// NormalizeOptionalLower is NormalizeOptional followed by invariant lowercasing.
func NormalizeOptionalLower(s *string) *string {
	n := NormalizeOptional(s)
	if n == nil {
		return nil
	}
	lower := ToLowerInvariant(*n)
	return &lower
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// StringValue dereferences s, returning "" for nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// CharLen counts runes, which is how length limits are expressed.
func CharLen(s string) int {
	return utf8.RuneCountInString(s)
}

// Truncate cuts s to at most max runes.
func Truncate(s string, max int) string {
	if CharLen(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max])
}
