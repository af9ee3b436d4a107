package goodreads

import (
	"context"
	"fmt"
	"strconv"
)

// PageInfo holds the position attributes of a paginated collection
type PageInfo struct {
	Start int
	End   int
	Total int
}

// HasMore reports whether items remain after this page
func (pi PageInfo) HasMore() bool {
	return pi.End < pi.Total
}

// ParsePageInfo reads the @start, @end and @total attributes of a collection
func ParsePageInfo(collection *Value) (PageInfo, error) {
	var pi PageInfo
	for _, f := range []struct {
		name string
		dst  *int
	}{
		{"start", &pi.Start},
		{"end", &pi.End},
		{"total", &pi.Total},
	} {
		raw, ok := collection.Attr(f.name)
		if !ok {
			return PageInfo{}, fmt.Errorf("collection has no %q attribute", f.name)
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return PageInfo{}, fmt.Errorf("invalid %q attribute %q: %w", f.name, raw, err)
		}
		*f.dst = n
	}
	return pi, nil
}

// PageFunc fetches one page and returns its collection element
type PageFunc func(ctx context.Context, page int) (*Value, error)

// Pager lazily walks a paginated listing, one request per page. It starts at
// page 1, yields items in document order and fetches the next page only while
// the last page's end is below its total. A positive limit stops it after that
// many items without fetching further pages. A Pager is single-use; start a new
// one to traverse again.
//
//	p := client.AuthorBooksIterator("18541", 0)
//	for p.Next(ctx) {
//		book := p.Item()
//	}
//	if err := p.Err(); err != nil {
//		...
//	}
type Pager struct {
	fetch   PageFunc
	itemKey string
	limit   int

	page      int
	yielded   int
	buf       []*Value
	cur       *Value
	info      PageInfo
	exhausted bool
	err       error
}

// NewPager creates a pager over the itemKey entries of each fetched collection
func NewPager(fetch PageFunc, itemKey string, limit int) *Pager {
	return &Pager{
		fetch:   fetch,
		itemKey: itemKey,
		limit:   limit,
	}
}

// Next advances to the next item, fetching a page when the current one is used
// up. It returns false at the end of the listing or on error.
func (p *Pager) Next(ctx context.Context) bool {
	if p.err != nil {
		return false
	}
	if p.limit > 0 && p.yielded >= p.limit {
		p.cur = nil
		return false
	}

	for len(p.buf) == 0 {
		if p.exhausted {
			p.cur = nil
			return false
		}
		if err := p.fetchNext(ctx); err != nil {
			p.err = err
			p.cur = nil
			return false
		}
	}

	p.cur = p.buf[0]
	p.buf = p.buf[1:]
	p.yielded++
	return true
}

func (p *Pager) fetchNext(ctx context.Context) error {
	next := p.page + 1
	collection, err := p.fetch(ctx, next)
	if err != nil {
		return fmt.Errorf("page %d: %w", next, err)
	}
	info, err := ParsePageInfo(collection)
	if err != nil {
		return fmt.Errorf("page %d: %w", next, err)
	}

	items, _ := collection.Get(p.itemKey)
	p.page = next
	p.info = info
	p.buf = items.AsList()
	p.exhausted = !info.HasMore() || len(p.buf) == 0
	return nil
}

// Item returns the current item
func (p *Pager) Item() *Value {
	return p.cur
}

// Err returns the error that stopped the pager, if any
func (p *Pager) Err() error {
	return p.err
}

// Page returns the number of the last fetched page
func (p *Pager) Page() int {
	return p.page
}

// PageInfo returns the position attributes of the last fetched page
func (p *Pager) PageInfo() PageInfo {
	return p.info
}

// Yielded returns how many items have been produced so far
func (p *Pager) Yielded() int {
	return p.yielded
}

// AuthorBooksIterator walks all books of an author. limit <= 0 means no limit.
func (c *Client) AuthorBooksIterator(authorID string, limit int) *Pager {
	return NewPager(func(ctx context.Context, page int) (*Value, error) {
		author, err := c.AuthorBooks(ctx, authorID, page)
		if err != nil {
			return nil, err
		}
		books, ok := author.Get("books")
		if !ok {
			return nil, &InvalidResponseError{Container: "books", Response: author}
		}
		return books, nil
	}, "book", limit)
}

// ShelfBooksIterator walks the books of a member's shelf. limit <= 0 means no
// limit.
func (c *Client) ShelfBooksIterator(query ShelfQuery, limit int) *Pager {
	return NewPager(func(ctx context.Context, page int) (*Value, error) {
		return c.ListBooks(ctx, query, page)
	}, "book", limit)
}
