package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qwerty0zero/book-catalog/internal/adapters/terminal"
	"github.com/qwerty0zero/book-catalog/internal/domain"
)

func newFavoritesCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"favs"},
		Short:   "Manage favorite books",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List favorites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := c.newBrowser(nil)
			if err != nil {
				return err
			}
			defer b.Close()
			terminal.NewFavoritesPanel(c.out, b.Favorites()).Render(cmd.Context())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <key> <title> [author...]",
		Short: "Add a book by its catalog key",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := c.newBrowser(nil)
			if err != nil {
				return err
			}
			defer b.Close()

			book := domain.Book{
				Key:     args[0],
				Title:   strings.TrimSpace(args[1]),
				Authors: append([]string{}, args[2:]...),
			}
			if book.Title == "" {
				book.Title = domain.DefaultTitle
			}
			if err := b.Favorites().Add(cmd.Context(), book); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Favorites: %d\n", b.Favorites().Count(cmd.Context()))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <key>",
		Short: "Remove a book by its catalog key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := c.newBrowser(nil)
			if err != nil {
				return err
			}
			defer b.Close()

			if !b.Favorites().Contains(cmd.Context(), args[0]) {
				return fmt.Errorf("%s is not a favorite", args[0])
			}
			if err := b.Favorites().Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Favorites: %d\n", b.Favorites().Count(cmd.Context()))
			return nil
		},
	})

	return cmd
}
