package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/s0up4200/bookarr/filter"
	"github.com/s0up4200/bookarr/goodreads"
)

// printJSON writes v as indented JSON to stdout. Normalized trees keep their
// document order.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(os.Stdout, string(data))
	return err
}

// addFilterFlags registers --filter and --preset on a listing command
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}

// getFilterExpression determines the filter expression to use. An empty
// result means no filtering.
func getFilterExpression() (string, error) {
	// Priority: command line filter > preset
	if filterExpr != "" {
		return filterExpr, nil
	}

	if preset != "" {
		if _, ok := filters.Get(preset); !ok {
			return "", fmt.Errorf("preset '%s' not found in config (available: %s)", preset, strings.Join(filters.Names(), ", "))
		}
		return preset, nil
	}

	return "", nil
}

// collectBooks drains a pager into BookInfos
func collectBooks(ctx context.Context, pager *goodreads.Pager) ([]filter.BookInfo, error) {
	var books []filter.BookInfo
	for pager.Next(ctx) {
		books = append(books, filter.NewBookInfo(pager.Item()))
	}
	if err := pager.Err(); err != nil {
		return books, err
	}

	info := pager.PageInfo()
	logger.Debug().
		Int("pages", pager.Page()).
		Int("books", len(books)).
		Int("total", info.Total).
		Msg("Listing fetched")

	return books, nil
}

// applyFilter narrows books with the --filter/--preset selection, if any
func applyFilter(ctx context.Context, books []filter.BookInfo) ([]filter.BookInfo, error) {
	expr, err := getFilterExpression()
	if err != nil {
		return nil, err
	}
	if expr == "" {
		return books, nil
	}

	logger.Info().Str("filter", expr).Int("books", len(books)).Msg("Filtering books")

	matches, err := filters.Apply(ctx, expr, books)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return matches, nil
}

// printBooks renders books as a table, or as their raw trees with --json
func printBooks(books []filter.BookInfo) error {
	if jsonOutput {
		raw := make([]*goodreads.Value, len(books))
		for i, b := range books {
			raw[i] = b.Raw()
		}
		return printJSON(raw)
	}

	if len(books) == 0 {
		fmt.Println("No books found.")
		return nil
	}

	bookText := "book"
	if len(books) != 1 {
		bookText = "books"
	}
	fmt.Printf("Found %d %s:\n\n", len(books), bookText)

	fmt.Println(strings.Repeat("━", 85))
	fmt.Printf("%-10s %-45s %-6s %-6s %s\n", "ID", "TITLE", "YEAR", "RATING", "AUTHORS")
	fmt.Println(strings.Repeat("━", 85))

	for _, b := range books {
		title := truncate(b.Title, 43)

		year := "-"
		if b.PublicationYear > 0 {
			year = fmt.Sprintf("%d", b.PublicationYear)
		}

		fmt.Printf("%-10s %-45s %-6s %-6.2f %s\n", b.ID, title, year, b.AverageRating, strings.Join(b.Authors, ", "))
	}
	fmt.Println(strings.Repeat("━", 85))

	return nil
}

// printValue prints a normalized response, falling back to JSON for trees
func printValue(v *goodreads.Value) error {
	if s, ok := v.Str(); ok && !jsonOutput {
		fmt.Println(s)
		return nil
	}
	return printJSON(v)
}

// truncate shortens s to at most width runes, ending in "..." when cut
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
