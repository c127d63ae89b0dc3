package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Mode is the browsing mode a session runs in.
type Mode int

const (
	// ModePopular browses the popular list; selected by an empty query.
	ModePopular Mode = iota
	// ModeSearch runs a text search.
	ModeSearch
)

// String returns a human-readable representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModePopular:
		return "popular"
	case ModeSearch:
		return "search"
	default:
		return "unknown"
	}
}

// NormalizeQuery trims the raw input and puts it in NFC form so that
// visually identical queries produce identical sessions.
func NormalizeQuery(raw string) string {
	return norm.NFC.String(strings.TrimSpace(raw))
}

// ModeFor returns the mode a normalized query selects.
func ModeFor(query string) Mode {
	if query == "" {
		return ModePopular
	}
	return ModeSearch
}
