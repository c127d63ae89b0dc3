package domain

// User-visible messages.
const (
	MsgLoading        = "Loading..."
	MsgLoadingMore    = "Loading more..."
	MsgNoResults      = "Nothing found. Try a different query."
	MsgNoFilterMatch  = "No books match the author filter."
	MsgNetworkError   = "Network error. Please check your connection."
	MsgGenericFailure = "An error occurred."
)

// EmptyReason tells an empty view apart from an error.
type EmptyReason int

const (
	// NoResultsForQuery means the catalog had nothing for the query.
	NoResultsForQuery EmptyReason = iota
	// NoMatchesForFilter means results exist but the author filter hides all.
	NoMatchesForFilter
)

// Message returns the user-visible text for the reason.
func (r EmptyReason) Message() string {
	if r == NoMatchesForFilter {
		return MsgNoFilterMatch
	}
	return MsgNoResults
}

// Classify maps a fetch error to the message shown to the user and whether
// repeating the same action may succeed.
func Classify(err error) (message string, retryable bool) {
	if IsNetwork(err) {
		return MsgNetworkError, true
	}
	return MsgGenericFailure, false
}
