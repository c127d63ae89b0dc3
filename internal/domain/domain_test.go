package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func books(authors ...[]string) []Book {
	out := make([]Book, len(authors))
	for i, a := range authors {
		out[i] = Book{Key: fmt.Sprintf("/works/OL%dW", i+1), Title: fmt.Sprintf("Book %d", i+1), Authors: a}
	}
	return out
}

func TestNormalizeQuery(t *testing.T) {
	assert.Equal(t, "tolkien", NormalizeQuery("  tolkien \t"))
	assert.Equal(t, "", NormalizeQuery("   "))
	// "e" + combining acute composes to a single rune.
	assert.Equal(t, "caf\u00e9", NormalizeQuery("cafe\u0301"))
}

func TestModeFor(t *testing.T) {
	assert.Equal(t, ModePopular, ModeFor(""))
	assert.Equal(t, ModeSearch, ModeFor("dune"))
	assert.Equal(t, "popular", ModePopular.String())
	assert.Equal(t, "search", ModeSearch.String())
}

func TestSession_Accept(t *testing.T) {
	s := NewSession("tolkien", 1)
	require.Equal(t, 1, s.Page)
	assert.False(t, s.CanLoadMore(), "empty cache cannot be extended")

	full := make([]Book, PageSize)
	for i := range full {
		full[i] = Book{Key: fmt.Sprintf("/works/A%d", i)}
	}
	s.Accept(full)
	assert.Equal(t, 2, s.Page)
	assert.False(t, s.Exhausted)
	assert.True(t, s.CanLoadMore())

	s.Accept(full[:5])
	assert.Equal(t, 3, s.Page)
	assert.True(t, s.Exhausted)
	assert.Len(t, s.Cache, 25)
	assert.False(t, s.CanLoadMore())
}

func TestSession_CanLoadMore_InFlight(t *testing.T) {
	s := NewSession("", 1)
	s.Accept(make([]Book, PageSize))
	s.InFlight = true
	assert.False(t, s.CanLoadMore())
}

func TestSession_BooksIsCopy(t *testing.T) {
	s := NewSession("x", 1)
	s.Accept(books([]string{"A"}))
	got := s.Books()
	got[0].Title = "changed"
	assert.Equal(t, "Book 1", s.Cache[0].Title)
}

func TestAuthorFacet(t *testing.T) {
	bs := books([]string{"Tolkien", "Christopher Tolkien"}, []string{"Asimov"}, nil, []string{"Tolkien"})
	assert.Equal(t, []string{"Asimov", "Christopher Tolkien", "Tolkien"}, AuthorFacet(bs))
	assert.Nil(t, AuthorFacet(nil))
}

func TestVisibility(t *testing.T) {
	bs := books([]string{"Tolkien"}, []string{"Asimov"}, nil)

	all := Visibility(bs, "")
	assert.Equal(t, []bool{true, true, true}, all)

	only := Visibility(bs, "Asimov")
	assert.Equal(t, []bool{false, true, false}, only)
	assert.Equal(t, 1, CountVisible(only))

	none := Visibility(bs, "Herbert")
	assert.Equal(t, 0, CountVisible(none))
}

func TestClassify(t *testing.T) {
	msg, retry := Classify(fmt.Errorf("search: %w", &NetworkError{Status: 503}))
	assert.Equal(t, MsgNetworkError, msg)
	assert.True(t, retry)

	msg, retry = Classify(fmt.Errorf("decode: %w", ErrMalformedResponse))
	assert.Equal(t, MsgGenericFailure, msg)
	assert.False(t, retry)
}

func TestNetworkError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &NetworkError{Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Contains(t, (&NetworkError{Status: 500}).Error(), "status 500")
}

func TestEmptyReason_Message(t *testing.T) {
	assert.Equal(t, MsgNoResults, NoResultsForQuery.Message())
	assert.Equal(t, MsgNoFilterMatch, NoMatchesForFilter.Message())
}
