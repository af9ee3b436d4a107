package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/bookarr/filter"
)

var (
	searchField string
	titleAuthor string
)

// bookCmd groups the book lookups
var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Search and look up books",
}

var bookSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search books by title, author or genre",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := client.Search(cmd.Context(), strings.Join(args, " "), searchField, page)
		if err != nil {
			return err
		}
		return printJSON(results)
	},
}

var bookISBNCmd = &cobra.Command{
	Use:   "isbn <isbn>...",
	Short: "Resolve ISBNs to Goodreads book ids",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBookISBN,
}

var bookShowCmd = &cobra.Command{
	Use:   "show <book-id>",
	Short: "Show a book and its metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		book, err := client.BookShow(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(book)
		}
		return printBooks([]filter.BookInfo{filter.NewBookInfo(book)})
	},
}

var bookTitleCmd = &cobra.Command{
	Use:   "title <title>",
	Short: "Find a book by its title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.Join(args, " ")
		book, found, err := client.BookTitle(cmd.Context(), title, titleAuthor)
		if err != nil {
			return err
		}
		if !found {
			fmt.Printf("No book found titled %q.\n", title)
			return nil
		}
		if jsonOutput {
			return printJSON(book)
		}
		return printBooks([]filter.BookInfo{filter.NewBookInfo(book)})
	},
}

var bookCountsCmd = &cobra.Command{
	Use:   "counts <isbn>...",
	Short: "Show review statistics for books",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		counts, err := client.ReviewCounts(cmd.Context(), args)
		if err != nil {
			return err
		}
		return printJSON(counts)
	},
}

func init() {
	rootCmd.AddCommand(bookCmd)
	bookCmd.AddCommand(bookSearchCmd, bookISBNCmd, bookShowCmd, bookTitleCmd, bookCountsCmd)

	bookSearchCmd.Flags().StringVar(&searchField, "field", "all", "field to search (title, author, genre or all)")
	bookSearchCmd.Flags().IntVar(&page, "page", 0, "result page")
	bookTitleCmd.Flags().StringVar(&titleAuthor, "author", "", "narrow the lookup by author name")
}

func runBookISBN(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if len(args) == 1 {
		id, err := client.ISBNToID(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	}

	logger.Info().Int("isbns", len(args)).Msg("Resolving ISBNs")

	ids, err := client.ISBNsToIDs(ctx, args)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(ids)
	}

	isbns := slices.Clone(args)
	slices.Sort(isbns)
	for _, isbn := range slices.Compact(isbns) {
		fmt.Printf("%-15s %s\n", isbn, ids[isbn])
	}
	return nil
}
