package openlibrary

import (
	"fmt"
	"strings"
)

// DefaultCoversURL is the Open Library covers host.
const DefaultCoversURL = "https://covers.openlibrary.org/b/id"

// CoverSize selects one of the pre-rendered cover sizes.
type CoverSize string

const (
	CoverSmall  CoverSize = "S"
	CoverMedium CoverSize = "M"
	CoverLarge  CoverSize = "L"
)

// ParseCoverSize accepts S, M or L in either case; anything else is medium.
func ParseCoverSize(s string) CoverSize {
	switch CoverSize(strings.ToUpper(strings.TrimSpace(s))) {
	case CoverSmall:
		return CoverSmall
	case CoverLarge:
		return CoverLarge
	default:
		return CoverMedium
	}
}

// CoverURL returns the image URL for coverID on base, or "" when the book
// has no cover.
func CoverURL(base string, coverID *int, size CoverSize) string {
	if coverID == nil || *coverID <= 0 {
		return ""
	}
	if base == "" {
		base = DefaultCoversURL
	}
	if size == "" {
		size = CoverMedium
	}
	return fmt.Sprintf("%s/%d-%s.jpg", strings.TrimRight(base, "/"), *coverID, size)
}
