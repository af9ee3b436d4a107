package goodreads

import "net/http"

// Tier is the credential level an operation requires
type Tier int

const (
	// TierNone operations proceed unconditionally
	TierNone Tier = iota
	// TierDeveloper operations need the developer key/secret pair; the key is
	// added to the parameters automatically
	TierDeveloper
	// TierUser operations need an OAuth session from the caller
	TierUser
)

// String returns the string representation of a Tier
func (t Tier) String() string {
	switch t {
	case TierNone:
		return "none"
	case TierDeveloper:
		return "developer"
	case TierUser:
		return "user"
	default:
		return "unknown"
	}
}

// Operation describes one remote endpoint. Tier, container and format are fixed
// per operation and consulted by a single dispatch routine.
type Operation struct {
	Name      string
	Method    string
	Path      string
	Tier      Tier
	Container string
	Format    Format
}

var (
	opAuthUser         = Operation{Name: "auth_user", Method: http.MethodGet, Path: "api/auth_user", Tier: TierUser, Container: "user"}
	opUserShow         = Operation{Name: "user_show", Method: http.MethodGet, Path: "user/show.xml", Tier: TierDeveloper, Container: "user"}
	opAuthorShow       = Operation{Name: "author_show", Method: http.MethodGet, Path: "author/show.xml", Tier: TierDeveloper, Container: "author"}
	opAuthorBooks      = Operation{Name: "author_books", Method: http.MethodGet, Path: "author/list.xml", Tier: TierDeveloper, Container: "author"}
	opISBNToID         = Operation{Name: "isbn_to_id", Method: http.MethodGet, Path: "book/isbn_to_id", Tier: TierDeveloper, Format: FormatRaw}
	opBookShow         = Operation{Name: "book_show", Method: http.MethodGet, Path: "book/show.xml", Tier: TierDeveloper, Container: "book"}
	opBookTitle        = Operation{Name: "book_title", Method: http.MethodGet, Path: "book/title.xml", Tier: TierDeveloper, Container: "book"}
	opReviewCounts     = Operation{Name: "review_counts", Method: http.MethodGet, Path: "book/review_counts.json", Tier: TierDeveloper, Container: "books", Format: FormatJSON}
	opSearch           = Operation{Name: "search", Method: http.MethodGet, Path: "search/index.xml", Tier: TierDeveloper, Container: "search"}
	opCreateUserStatus = Operation{Name: "create_user_status", Method: http.MethodPost, Path: "user_status.xml", Tier: TierUser, Container: "user-status"}
	opFriendRequests   = Operation{Name: "friend_requests", Method: http.MethodGet, Path: "friend/requests.xml", Tier: TierUser, Container: "requests"}
	opAddToShelf       = Operation{Name: "add_to_shelf", Method: http.MethodPost, Path: "shelf/add_to_shelf.xml", Tier: TierUser}
	opListShelves      = Operation{Name: "list_shelves", Method: http.MethodGet, Path: "shelf/list.xml", Tier: TierDeveloper, Container: "shelves"}
	opListBooks        = Operation{Name: "list_books", Method: http.MethodGet, Path: "review/list.xml", Tier: TierDeveloper, Container: "books"}
	opCreateShelf      = Operation{Name: "create_shelf", Method: http.MethodPost, Path: "user_shelves.xml", Tier: TierUser, Container: "user_shelf"}
	opUpdateShelf      = Operation{Name: "update_shelf", Method: http.MethodPut, Path: "user_shelves/update.xml", Tier: TierUser}
	opDestroyShelf     = Operation{Name: "destroy_shelf", Method: http.MethodDelete, Path: "user_shelves/destroy.xml", Tier: TierUser}
	opRateBook         = Operation{Name: "rate_book", Method: http.MethodPost, Path: "rating.xml", Tier: TierUser}
)

// Operations returns the catalog of supported endpoints
func Operations() []Operation {
	return []Operation{
		opAuthUser,
		opUserShow,
		opAuthorShow,
		opAuthorBooks,
		opISBNToID,
		opBookShow,
		opBookTitle,
		opReviewCounts,
		opSearch,
		opCreateUserStatus,
		opFriendRequests,
		opAddToShelf,
		opListShelves,
		opListBooks,
		opCreateShelf,
		opUpdateShelf,
		opDestroyShelf,
		opRateBook,
	}
}
