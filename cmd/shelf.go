package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/s0up4200/bookarr/goodreads"
)

var (
	shelfQuery      goodreads.ShelfQuery
	removeFromShelf bool
	exclusiveShelf  bool
)

// shelfCmd groups the shelf commands
var shelfCmd = &cobra.Command{
	Use:   "shelf",
	Short: "List and manage shelves",
}

var shelfListCmd = &cobra.Command{
	Use:   "list <user-id>",
	Short: "List a member's shelves",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		shelves, err := client.ListShelves(cmd.Context(), args[0], page)
		if err != nil {
			return err
		}
		return printJSON(shelves)
	},
}

var shelfBooksCmd = &cobra.Command{
	Use:   "books <user-id>",
	Short: "List the books on a member's shelf",
	Long: `Walk every page of a member's shelf and print the books. Use --limit to
stop early and --filter or --preset to narrow the result, e.g.

  bookarr shelf books 1 --shelf read --filter 'NumPages > 500'`,
	Args: cobra.ExactArgs(1),
	RunE: runShelfBooks,
}

var shelfAddCmd = &cobra.Command{
	Use:   "add <shelf> <book-id>",
	Short: "Add a book to one of your shelves",
	Args:  cobra.ExactArgs(2),
	RunE:  runShelfAdd,
}

var shelfCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a shelf",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := userSession()
		if err != nil {
			return err
		}
		shelf, err := client.CreateShelf(cmd.Context(), session, args[0], exclusiveShelf)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(shelf)
		}
		fmt.Printf("✓ Created shelf %s (id %s)\n", args[0], shelf.Field("id"))
		return nil
	},
}

var shelfRenameCmd = &cobra.Command{
	Use:   "rename <shelf-id> <name>",
	Short: "Rename a shelf",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := userSession()
		if err != nil {
			return err
		}
		result, err := client.UpdateShelf(cmd.Context(), session, args[0], args[1])
		if err != nil {
			return err
		}
		return printValue(result)
	},
}

var shelfDeleteCmd = &cobra.Command{
	Use:   "delete <shelf-id>",
	Short: "Delete a shelf",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := userSession()
		if err != nil {
			return err
		}
		result, err := client.DestroyShelf(cmd.Context(), session, args[0])
		if err != nil {
			return err
		}
		return printValue(result)
	},
}

var rateCmd = &cobra.Command{
	Use:   "rate <book-id> <rating>",
	Short: "Rate a book from 0 to 5",
	Args:  cobra.ExactArgs(2),
	RunE:  runRate,
}

func init() {
	rootCmd.AddCommand(shelfCmd)
	shelfCmd.AddCommand(shelfListCmd, shelfBooksCmd, shelfAddCmd, shelfCreateCmd, shelfRenameCmd, shelfDeleteCmd, rateCmd)

	shelfListCmd.Flags().IntVar(&page, "page", 0, "result page")

	shelfBooksCmd.Flags().StringVar(&shelfQuery.Shelf, "shelf", "", "shelf name (default all books)")
	shelfBooksCmd.Flags().StringVar(&shelfQuery.Sort, "sort", "", "sort field, e.g. title, author, rating, date_read")
	shelfBooksCmd.Flags().StringVar(&shelfQuery.Order, "order", "", "sort order (a or d)")
	shelfBooksCmd.Flags().StringVar(&shelfQuery.Search, "search", "", "search within the shelf")
	shelfBooksCmd.Flags().IntVar(&shelfQuery.PerPage, "per-page", 0, "books per request (1-200)")
	shelfBooksCmd.Flags().IntVarP(&limit, "limit", "n", 0, "stop after this many books (0 for all)")
	addFilterFlags(shelfBooksCmd)

	shelfAddCmd.Flags().BoolVar(&removeFromShelf, "remove", false, "remove the book from the shelf instead")
	shelfCreateCmd.Flags().BoolVar(&exclusiveShelf, "exclusive", false, "make the shelf exclusive like read and to-read")
}

func runShelfBooks(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	query := shelfQuery
	query.UserID = args[0]

	logger.Info().
		Str("user", query.UserID).
		Str("shelf", query.Shelf).
		Int("limit", limit).
		Msg("Fetching shelf books")

	books, err := collectBooks(ctx, client.ShelfBooksIterator(query, limit))
	if err != nil {
		return err
	}

	books, err = applyFilter(ctx, books)
	if err != nil {
		return err
	}

	return printBooks(books)
}

func runShelfAdd(cmd *cobra.Command, args []string) error {
	session, err := userSession()
	if err != nil {
		return err
	}

	shelf, bookID := args[0], args[1]
	result, err := client.AddToShelf(cmd.Context(), session, shelf, bookID, removeFromShelf)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(result)
	}
	if removeFromShelf {
		fmt.Printf("✓ Removed book %s from %s\n", bookID, shelf)
	} else {
		fmt.Printf("✓ Added book %s to %s\n", bookID, shelf)
	}
	return nil
}

func runRate(cmd *cobra.Command, args []string) error {
	rating, err := strconv.Atoi(args[1])
	if err != nil || rating < 0 || rating > 5 {
		return fmt.Errorf("invalid rating '%s': must be a number between 0 and 5", args[1])
	}

	session, err := userSession()
	if err != nil {
		return err
	}

	result, err := client.RateBook(cmd.Context(), session, args[0], rating)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(result)
	}
	fmt.Printf("✓ Rated book %s with %d stars\n", args[0], rating)
	return nil
}
