package cmd

import (
	"github.com/spf13/cobra"
)

// authorCmd groups the author lookups
var authorCmd = &cobra.Command{
	Use:   "author",
	Short: "Look up authors and their books",
}

var authorShowCmd = &cobra.Command{
	Use:   "show <author-id>",
	Short: "Show info about an author",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		author, err := client.AuthorShow(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(author)
	},
}

var authorBooksCmd = &cobra.Command{
	Use:   "books <author-id>",
	Short: "List the books of an author",
	Long: `Walk every page of an author's books and print them. Use --limit to stop
early and --filter or --preset to narrow the result, e.g.

  bookarr author books 18541 --filter 'AverageRating >= 4 and Year > 2000'`,
	Args: cobra.ExactArgs(1),
	RunE: runAuthorBooks,
}

func init() {
	rootCmd.AddCommand(authorCmd)
	authorCmd.AddCommand(authorShowCmd, authorBooksCmd)

	authorBooksCmd.Flags().IntVarP(&limit, "limit", "n", 0, "stop after this many books (0 for all)")
	addFilterFlags(authorBooksCmd)
}

func runAuthorBooks(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	logger.Info().Str("author", args[0]).Int("limit", limit).Msg("Fetching author books")

	books, err := collectBooks(ctx, client.AuthorBooksIterator(args[0], limit))
	if err != nil {
		return err
	}

	books, err = applyFilter(ctx, books)
	if err != nil {
		return err
	}

	return printBooks(books)
}
