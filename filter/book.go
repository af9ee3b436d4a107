package filter

import (
	"strings"

	"github.com/s0up4200/bookarr/goodreads"
	"github.com/spf13/cast"
)

// BookInfo is the flat view of a book that filter expressions run against
type BookInfo struct {
	ID              string
	Title           string
	ISBN            string
	ISBN13          string
	Link            string
	Publisher       string
	Format          string
	Description     string
	Authors         []string
	Shelves         []string
	AverageRating   float64
	RatingsCount    int
	PublicationYear int
	NumPages        int

	raw *goodreads.Value
}

// NewBookInfo maps a normalized book tree (book/show, author/list or
// review/list entries) to a BookInfo. Type-annotated leaves are read through
// their text, nil-marked and missing ones become zero values.
func NewBookInfo(book *goodreads.Value) BookInfo {
	info := BookInfo{
		ID:              book.Field("id"),
		Title:           book.Field("title"),
		ISBN:            book.Field("isbn"),
		ISBN13:          book.Field("isbn13"),
		Link:            book.Field("link"),
		Publisher:       book.Field("publisher"),
		Format:          book.Field("format"),
		Description:     book.Field("description"),
		AverageRating:   cast.ToFloat64(book.Field("average_rating")),
		RatingsCount:    cast.ToInt(book.Field("ratings_count")),
		PublicationYear: cast.ToInt(book.Field("publication_year")),
		NumPages:        cast.ToInt(book.Field("num_pages")),
		raw:             book,
	}
	if info.Link == "" {
		info.Link = book.Field("url")
	}

	if authors, ok := book.Lookup("authors", "author"); ok {
		for _, a := range authors.AsList() {
			if name := a.Field("name"); name != "" {
				info.Authors = append(info.Authors, name)
			}
		}
	}

	if shelves, ok := book.Lookup("popular_shelves", "shelf"); ok {
		for _, s := range shelves.AsList() {
			if name, ok := s.Attr("name"); ok {
				info.Shelves = append(info.Shelves, name)
			}
		}
	}

	return info
}

// NewBookInfos maps every entry of a repeated "book" collection
func NewBookInfos(books []*goodreads.Value) []BookInfo {
	infos := make([]BookInfo, 0, len(books))
	for _, b := range books {
		infos = append(infos, NewBookInfo(b))
	}
	return infos
}

// Raw returns the tree the info was built from
func (b BookInfo) Raw() *goodreads.Value {
	return b.raw
}

// Field reads any dotted path of the underlying tree as text
func (b BookInfo) Field(path string) string {
	return b.raw.Field(strings.Split(path, ".")...)
}

// IsNil reports whether the leaf at a dotted path is missing, empty or
// nil-marked
func (b BookInfo) IsNil(path string) bool {
	v, ok := b.raw.Lookup(strings.Split(path, ".")...)
	if !ok {
		return true
	}
	return v.IsNil()
}
