package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/qwerty0zero/book-catalog/internal/adapters/terminal"
	"github.com/qwerty0zero/book-catalog/internal/domain"
	"github.com/qwerty0zero/book-catalog/pkg/bookcat"
)

type listFlags struct {
	pages   int
	author  string
	authors bool
	covers  string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.pages, "pages", 1, "number of pages to load")
	cmd.Flags().StringVar(&f.author, "author", "", "only show books by this author")
	cmd.Flags().BoolVar(&f.authors, "authors", false, "print the authors found in the results")
	cmd.Flags().StringVar(&f.covers, "covers", "", "print cover URLs in size S, M or L")
}

func newSearchCommand(c *cli) *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search the catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			if domain.NormalizeQuery(query) == "" {
				return domain.ErrEmptyQuery
			}
			return c.list(cmd.Context(), query, flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func newPopularCommand(c *cli) *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "popular",
		Short: "List popular books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.list(cmd.Context(), "", flags)
		},
	}
	flags.register(cmd)
	return cmd
}

// list loads flags.pages pages for query and prints what the author filter
// lets through.
func (c *cli) list(ctx context.Context, query string, flags listFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var panel *terminal.ResultsPanel
	var b *bookcat.Browser
	b, err := c.newBrowser(func(favs *bookcat.Favorites) bookcat.ResultsView {
		panel = terminal.NewResultsPanel(c.out, favs, c.coverFunc(&b, flags.covers))
		return &deferredView{panel: panel}
	})
	if err != nil {
		return err
	}
	defer b.Close()

	if err := b.Start(ctx); err != nil {
		return err
	}

	ctrl := b.Controller()
	ctrl.SubmitQuery(ctx, query)
	if err := ctrl.Wait(c.cfg.HTTPTimeout + time.Second); err != nil {
		return err
	}
	for page := 1; page < flags.pages; page++ {
		if !ctrl.LoadMore(ctx) {
			break
		}
		if err := ctrl.Wait(c.cfg.HTTPTimeout + time.Second); err != nil {
			return err
		}
	}

	snap := ctrl.Snapshot()
	if len(snap.Books) == 0 {
		return nil
	}
	visible := ctrl.ApplyFilter(flags.author)
	if domain.CountVisible(visible) > 0 {
		panel.Render(snap.Books, visible)
	}
	if flags.authors && len(snap.Authors) > 0 {
		fmt.Fprintf(c.out, "Authors: %s\n", strings.Join(snap.Authors, "; "))
	}
	if snap.Exhausted {
		fmt.Fprintf(c.out, "%d books, no more pages.\n", len(snap.Books))
	}
	return nil
}

// coverFunc returns a cover formatter for size, or nil when covers are off.
// b is read lazily because the view is built before New returns.
func (c *cli) coverFunc(b **bookcat.Browser, size string) terminal.CoverFunc {
	if size == "" {
		return nil
	}
	return func(book domain.Book) string {
		return (*b).CoverURL(book, size)
	}
}
