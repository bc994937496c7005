package catalog

import (
	"regexp"
	"strings"

	"github.com/secondhandshop/backend/internal/domain/shared"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// NormalizeSlug trims and lowercases a slug.
func NormalizeSlug(slug string) string {
	return shared.ToLowerInvariant(strings.TrimSpace(slug))
}

// IsValidSlug reports whether slug is lowercase words joined by single hyphens.
func IsValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

func validateSlug(slug string, maxLen int) error {
	if slug == "" {
		return shared.NewValidationError("INVALID_SLUG", "Slug is required.")
	}
	if shared.CharLen(slug) > maxLen {
		return shared.NewValidationError("INVALID_SLUG", "Slug is too long.")
	}
	if !IsValidSlug(slug) {
		return shared.NewValidationError("INVALID_SLUG", "Slug may only contain lowercase letters, digits and single hyphens.")
	}
	return nil
}
