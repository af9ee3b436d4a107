package goodreads

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrMissingArgument indicates a required operation argument was empty
var ErrMissingArgument = errors.New("missing required argument")

// notFoundMarker is the body BookTitle receives when no book matches
const notFoundMarker = "<error>book not found</error>"

// maxISBNLookups bounds concurrent ISBNsToIDs lookups; the limiter still spaces
// the requests themselves
const maxISBNLookups = 4

// AuthUser returns the user who authorized the session
func (c *Client) AuthUser(ctx context.Context, session *Session) (*Value, error) {
	return c.call(ctx, opAuthUser, session, nil)
}

// UserShow returns a member's profile by id or username
func (c *Client) UserShow(ctx context.Context, userID, username string) (*Value, error) {
	if userID == "" && username == "" {
		return nil, fmt.Errorf("user id or username: %w", ErrMissingArgument)
	}
	params := Params{}
	if userID != "" {
		params["id"] = userID
	}
	if username != "" {
		params["username"] = username
	}
	return c.call(ctx, opUserShow, nil, params)
}

// AuthorShow returns info about an author
func (c *Client) AuthorShow(ctx context.Context, authorID string) (*Value, error) {
	return c.call(ctx, opAuthorShow, nil, Params{"id": authorID})
}

// AuthorBooks returns one page of an author's books. The "books" entry of the
// result carries the @start/@end/@total attributes.
func (c *Client) AuthorBooks(ctx context.Context, authorID string, page int) (*Value, error) {
	params := Params{"id": authorID}
	if page > 0 {
		params["page"] = page
	}
	return c.call(ctx, opAuthorBooks, nil, params)
}

// ISBNToID returns the Goodreads book id for an ISBN
func (c *Client) ISBNToID(ctx context.Context, isbn string) (string, error) {
	v, err := c.call(ctx, opISBNToID, nil, Params{"isbn": isbn})
	if err != nil {
		return "", err
	}
	return v.Text(), nil
}

// ISBNsToIDs resolves several ISBNs concurrently. The result maps each ISBN to
// its book id. The first failure cancels the remaining lookups.
func (c *Client) ISBNsToIDs(ctx context.Context, isbns []string) (map[string]string, error) {
	results := make(map[string]string, len(isbns))
	if len(isbns) == 0 {
		return results, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxISBNLookups)

	var mu sync.Mutex
	for _, isbn := range isbns {
		g.Go(func() error {
			id, err := c.ISBNToID(ctx, isbn)
			if err != nil {
				return fmt.Errorf("isbn %s: %w", isbn, err)
			}

			mu.Lock()
			results[isbn] = id
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// BookShow returns a book and its metadata
func (c *Client) BookShow(ctx context.Context, bookID string) (*Value, error) {
	return c.call(ctx, opBookShow, nil, Params{"id": bookID})
}

// BookTitle looks a book up by title, optionally narrowed by author. When the
// service answers 404 with its "book not found" marker, it returns found=false
// and no error; any other failure, including other 404 bodies, is returned.
func (c *Client) BookTitle(ctx context.Context, title, author string) (*Value, bool, error) {
	params := Params{"title": title}
	if author != "" {
		params["author"] = author
	}

	book, err := c.call(ctx, opBookTitle, nil, params)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.IsNotFound() && strings.TrimSpace(httpErr.Body) == notFoundMarker {
			c.logger.Debug().Str("title", title).Msg("No book found for title")
			return nil, false, nil
		}
		return nil, false, err
	}
	return book, true, nil
}

// ReviewCounts returns review statistics for a list of ISBNs
func (c *Client) ReviewCounts(ctx context.Context, isbns []string) (*Value, error) {
	if len(isbns) == 0 {
		return nil, fmt.Errorf("isbns: %w", ErrMissingArgument)
	}
	return c.call(ctx, opReviewCounts, nil, Params{"isbns": strings.Join(isbns, ",")})
}

// Search returns the most popular books matching query. field is one of
// "title", "author", "genre" or "all" (the default when empty).
func (c *Client) Search(ctx context.Context, query, field string, page int) (*Value, error) {
	if field == "" {
		field = "all"
	}
	params := Params{
		"q":      query,
		"search": Params{"field": field},
	}
	if page > 0 {
		params["page"] = page
	}
	return c.call(ctx, opSearch, nil, params)
}

// UserStatus is a reading progress update. Body is required unless Page or
// Percent is set.
type UserStatus struct {
	BookID  string
	Page    int
	Percent int
	Body    string
}

func (s UserStatus) params() Params {
	status := Params{}
	if s.BookID != "" {
		status["book_id"] = s.BookID
	}
	if s.Page > 0 {
		status["page"] = s.Page
	}
	if s.Percent > 0 {
		status["percent"] = s.Percent
	}
	if s.Body != "" {
		status["body"] = s.Body
	}
	return status
}

// CreateUserStatus posts a status update for the session's user
func (c *Client) CreateUserStatus(ctx context.Context, session *Session, status UserStatus) (*Value, error) {
	if status.Body == "" && status.Page == 0 && status.Percent == 0 {
		return nil, fmt.Errorf("status body, page or percent: %w", ErrMissingArgument)
	}
	return c.call(ctx, opCreateUserStatus, session, Params{"user_status": status.params()})
}

// FriendRequests returns the session user's pending friend requests
func (c *Client) FriendRequests(ctx context.Context, session *Session, page int) (*Value, error) {
	params := Params{}
	if page > 0 {
		params["page"] = page
	}
	return c.call(ctx, opFriendRequests, session, params)
}

// AddToShelf adds a book to one of the session user's shelves, or removes it
// when remove is set
func (c *Client) AddToShelf(ctx context.Context, session *Session, shelf, bookID string, remove bool) (*Value, error) {
	params := Params{
		"name":    shelf,
		"book_id": bookID,
	}
	if remove {
		params["a"] = "remove"
	}
	return c.call(ctx, opAddToShelf, session, params)
}

// ListShelves returns a user's shelves
func (c *Client) ListShelves(ctx context.Context, userID string, page int) (*Value, error) {
	params := Params{"user_id": userID}
	if page > 0 {
		params["page"] = page
	}
	return c.call(ctx, opListShelves, nil, params)
}

// ShelfQuery selects the books of a member's shelf
type ShelfQuery struct {
	UserID  string
	Shelf   string
	Sort    string
	Order   string
	Search  string
	PerPage int
}

func (q ShelfQuery) params(page int) Params {
	params := Params{
		"v":  2,
		"id": q.UserID,
	}
	if q.Shelf != "" {
		params["shelf"] = q.Shelf
	}
	if q.Sort != "" {
		params["sort"] = q.Sort
	}
	if q.Order != "" {
		params["order"] = q.Order
	}
	if q.Search != "" {
		params["search"] = Params{"query": q.Search}
	}
	if q.PerPage > 0 {
		params["per_page"] = q.PerPage
	}
	if page > 0 {
		params["page"] = page
	}
	return params
}

// ListBooks returns one page of the books on a member's shelf
func (c *Client) ListBooks(ctx context.Context, query ShelfQuery, page int) (*Value, error) {
	return c.call(ctx, opListBooks, nil, query.params(page))
}

// CreateShelf adds a shelf for the session user
func (c *Client) CreateShelf(ctx context.Context, session *Session, name string, exclusive bool) (*Value, error) {
	shelf := Params{"name": name}
	if exclusive {
		shelf["exclusive_flag"] = "true"
	}
	return c.call(ctx, opCreateShelf, session, Params{"user_shelf": shelf})
}

// UpdateShelf renames a shelf. The transport does not implement PUT, so this
// fails with *UnsupportedOperationError once the session check passes.
func (c *Client) UpdateShelf(ctx context.Context, session *Session, shelfID, name string) (*Value, error) {
	return c.call(ctx, opUpdateShelf, session, Params{
		"id":         shelfID,
		"user_shelf": Params{"name": name},
	})
}

// DestroyShelf deletes a shelf. The transport does not implement DELETE, so
// this fails with *UnsupportedOperationError once the session check passes.
func (c *Client) DestroyShelf(ctx context.Context, session *Session, shelfID string) (*Value, error) {
	return c.call(ctx, opDestroyShelf, session, Params{"id": shelfID})
}

// RateBook rates a book for the session user
func (c *Client) RateBook(ctx context.Context, session *Session, bookID string, rating int) (*Value, error) {
	return c.call(ctx, opRateBook, session, Params{
		"rating": Params{
			"resource_id":   bookID,
			"resource_type": "Book",
			"rating":        rating,
		},
	})
}
