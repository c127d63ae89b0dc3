package app

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/qwerty0zero/book-catalog/internal/domain"
)

// catalogCall is one request seen by fakeCatalog. Tests answer it through reply
// unless the catalog is in auto mode.
type catalogCall struct {
	query   string
	page    int
	popular bool
	reply   chan catalogReply
}

type catalogReply struct {
	books []domain.Book
	err   error
}

func (c *catalogCall) answer(books []domain.Book, err error) {
	c.reply <- catalogReply{books: books, err: err}
}

// fakeCatalog records every call. With auto set it answers immediately,
// otherwise the call blocks until the test answers it.
type fakeCatalog struct {
	mu    sync.Mutex
	calls []*catalogCall
	auto  func(query string, page int) ([]domain.Book, error)
	seen  chan *catalogCall
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{seen: make(chan *catalogCall, 16)}
}

func (f *fakeCatalog) setAuto(fn func(query string, page int) ([]domain.Book, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.auto = fn
}

func (f *fakeCatalog) Search(ctx context.Context, query string, page int) ([]domain.Book, error) {
	return f.do(query, page, false)
}

func (f *fakeCatalog) Popular(ctx context.Context, page int) ([]domain.Book, error) {
	return f.do("", page, true)
}

func (f *fakeCatalog) do(query string, page int, popular bool) ([]domain.Book, error) {
	call := &catalogCall{query: query, page: page, popular: popular, reply: make(chan catalogReply, 1)}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	auto := f.auto
	f.mu.Unlock()

	if auto != nil {
		return auto(query, page)
	}
	f.seen <- call
	r := <-call.reply
	return r.books, r.err
}

func (f *fakeCatalog) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeCatalog) next(t *testing.T) *catalogCall {
	t.Helper()
	select {
	case c := <-f.seen:
		return c
	case <-time.After(time.Second):
		t.Fatal("no catalog call arrived")
		return nil
	}
}

// viewEvent is one call made on recordingView.
type viewEvent struct {
	kind         string
	books        []domain.Book
	reason       domain.EmptyReason
	message      string
	retryable    bool
	authors      []string
	visible      []bool
	continuation bool
}

type recordingView struct {
	mu     sync.Mutex
	events []viewEvent
}

func (v *recordingView) record(e viewEvent) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, e)
}

func (v *recordingView) ShowLoading(continuation bool) {
	v.record(viewEvent{kind: "loading", continuation: continuation})
}

func (v *recordingView) ReplaceResults(books []domain.Book) {
	v.record(viewEvent{kind: "replace", books: books})
}

func (v *recordingView) AppendResults(books []domain.Book) {
	v.record(viewEvent{kind: "append", books: books})
}

func (v *recordingView) ShowEmpty(reason domain.EmptyReason) {
	v.record(viewEvent{kind: "empty", reason: reason})
}

func (v *recordingView) ShowError(message string, retryable bool) {
	v.record(viewEvent{kind: "error", message: message, retryable: retryable})
}

func (v *recordingView) SetAuthorFacet(authors []string) {
	v.record(viewEvent{kind: "facet", authors: authors})
}

func (v *recordingView) SetVisibility(visible []bool) {
	v.record(viewEvent{kind: "visibility", visible: visible})
}

func (v *recordingView) all() []viewEvent {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]viewEvent{}, v.events...)
}

func (v *recordingView) kinds() []string {
	var out []string
	for _, e := range v.all() {
		out = append(out, e.kind)
	}
	return out
}

func (v *recordingView) last(kind string) (viewEvent, bool) {
	events := v.all()
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].kind == kind {
			return events[i], true
		}
	}
	return viewEvent{}, false
}

func (v *recordingView) reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = nil
}

// makeBooks builds n books whose keys carry prefix; authors cycle through
// the given names.
func makeBooks(prefix string, n int, authors ...string) []domain.Book {
	out := make([]domain.Book, n)
	for i := range out {
		b := domain.Book{
			Key:   fmt.Sprintf("/works/%s%dW", prefix, i),
			Title: fmt.Sprintf("%s %d", prefix, i),
		}
		if len(authors) > 0 {
			b.Authors = []string{authors[i%len(authors)]}
		}
		out[i] = b
	}
	return out
}

// memRepo is an in-memory FavoritesRepository.
type memRepo struct {
	mu      sync.Mutex
	books   []domain.Book
	loadErr error
	saveErr error
	loads   int
	saves   int
}

func (r *memRepo) Load(ctx context.Context) ([]domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads++
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return append([]domain.Book{}, r.books...), nil
}

func (r *memRepo) Save(ctx context.Context, books []domain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.books = append([]domain.Book{}, books...)
	return nil
}

func (r *memRepo) stored() []domain.Book {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Book{}, r.books...)
}

func (r *memRepo) setSaveErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveErr = err
}
