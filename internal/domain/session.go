package domain

// Session is the live browsing context: one query, the pages fetched for it
// so far and the cursor for the next page. A new query always gets a new
// Session; the previous one is discarded wholesale.
//
// Session is not safe for concurrent use. The controller owns it and
// guards it with its own lock.
type Session struct {
	Query string
	// Page is the next page to request, starting at 1.
	Page int
	// Cache holds every book fetched for Query, in arrival order.
	Cache     []Book
	Exhausted bool
	InFlight  bool
	// Generation identifies the session; responses tagged with an older
	// generation are stale.
	Generation uint64
}

// NewSession creates an empty session for an already normalized query.
func NewSession(query string, generation uint64) *Session {
	return &Session{
		Query:      query,
		Page:       1,
		Generation: generation,
	}
}

// Mode returns the browsing mode selected by the session query.
func (s *Session) Mode() Mode {
	return ModeFor(s.Query)
}

// CanLoadMore reports whether a continuation fetch may start now.
func (s *Session) CanLoadMore() bool {
	return !s.Exhausted && !s.InFlight && len(s.Cache) > 0
}

// Accept merges a successfully fetched page into the session.
func (s *Session) Accept(items []Book) {
	if len(items) < PageSize {
		s.Exhausted = true
	}
	s.Cache = append(s.Cache, items...)
	s.Page++
}

// Books returns a copy of the cache.
func (s *Session) Books() []Book {
	out := make([]Book, len(s.Cache))
	copy(out, s.Cache)
	return out
}
