package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/qwerty0zero/book-catalog/internal/adapters/terminal"
	"github.com/qwerty0zero/book-catalog/internal/domain"
	"github.com/qwerty0zero/book-catalog/pkg/bookcat"
)

const browseHelp = `Type to search (an empty line shows popular books). Commands:
  :more            load the next page
  :filter [author] show only books by author; no author clears the filter
  :authors         list authors in the loaded results
  :fav <n>         add book n to favorites
  :unfav <n>       remove book n from favorites
  :favs            list favorites
  :retry           repeat the last failed request
  :help            show this help
  :quit            exit`

var errQuit = errors.New("quit")

func newBrowseCommand(c *cli) *cobra.Command {
	var covers string
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.browse(cmd.Context(), covers)
		},
	}
	cmd.Flags().StringVar(&covers, "covers", "", "print cover URLs in size S, M or L")
	return cmd
}

// session is one interactive browse run.
type session struct {
	c       *cli
	browser *bookcat.Browser
	results *terminal.ResultsPanel
	favs    *terminal.FavoritesPanel
	badge   *terminal.Badge
}

func (c *cli) browse(ctx context.Context, covers string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var results *terminal.ResultsPanel
	var b *bookcat.Browser
	b, err := c.newBrowser(func(favs *bookcat.Favorites) bookcat.ResultsView {
		results = terminal.NewResultsPanel(c.out, favs, c.coverFunc(&b, covers))
		return results
	})
	if err != nil {
		return err
	}
	defer b.Close()

	if err := b.Start(ctx); err != nil {
		return err
	}

	s := &session{
		c:       c,
		browser: b,
		results: results,
		favs:    terminal.NewFavoritesPanel(c.out, b.Favorites()),
		badge:   terminal.NewBadge(ctx, b.Favorites()),
	}
	defer s.results.Bind(ctx, b.Bus())()
	defer s.favs.Bind(ctx, b.Bus())()
	defer s.badge.Bind(ctx, b.Bus())()

	fmt.Fprintln(c.out, browseHelp)
	b.Controller().SubmitQuery(ctx, "")

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		s.prompt()
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if err := s.handle(ctx, line); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				fmt.Fprintln(c.out, err)
			}
		}
	}
}

func (s *session) prompt() {
	fmt.Fprintf(s.c.out, "bookcat %s> ", s.badge)
}

// handle runs one input line. Free text is a query; lines starting with
// ':' are commands.
func (s *session) handle(ctx context.Context, line string) error {
	ctrl := s.browser.Controller()
	if !strings.HasPrefix(line, ":") {
		ctrl.QueueQuery(ctx, line)
		return nil
	}

	name, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "quit", "q":
		return errQuit
	case "help":
		fmt.Fprintln(s.c.out, browseHelp)
	case "more":
		if !ctrl.LoadMore(ctx) {
			fmt.Fprintln(s.c.out, s.noMoreReason())
		}
	case "filter":
		ctrl.ApplyFilter(arg)
	case "authors":
		if authors := s.results.Authors(); len(authors) > 0 {
			fmt.Fprintln(s.c.out, strings.Join(authors, "\n"))
		}
	case "fav", "unfav":
		book, err := s.book(arg)
		if err != nil {
			return err
		}
		if name == "fav" {
			return s.browser.Favorites().Add(ctx, book)
		}
		return s.browser.Favorites().Remove(ctx, book.Key)
	case "favs":
		s.favs.Render(ctx)
	case "retry":
		if !ctrl.Retry(ctx) {
			fmt.Fprintln(s.c.out, "Nothing to retry.")
		}
	default:
		return fmt.Errorf("unknown command :%s (try :help)", name)
	}
	return nil
}

func (s *session) noMoreReason() string {
	snap := s.browser.Controller().Snapshot()
	switch {
	case snap.InFlight:
		return domain.MsgLoading
	case snap.Exhausted:
		return "No more results."
	default:
		return "Nothing loaded yet."
	}
}

func (s *session) book(arg string) (domain.Book, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return domain.Book{}, fmt.Errorf("expected a book number, got %q", arg)
	}
	book, ok := s.results.Book(n)
	if !ok {
		return domain.Book{}, fmt.Errorf("no book %d", n)
	}
	return book, nil
}
