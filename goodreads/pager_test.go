package goodreads

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const perPage = 30

// pagedAuthor serves author/list.xml pages of perPage books out of total
func pagedAuthor(total int) *recordingTransport {
	return &recordingTransport{
		respond: func(req *Request, _ int) ([]byte, error) {
			page := 1
			if p := req.Params.Get("page"); p != "" {
				fmt.Sscanf(p, "%d", &page)
			}
			start := (page-1)*perPage + 1
			end := min(page*perPage, total)
			return authorListPage(start, end, total), nil
		},
	}
}

func TestAuthorBooksIterator_AllPages(t *testing.T) {
	transport := pagedAuthor(47)
	client := newTestClient(t, "key", "secret", transport, newFakeClock())

	it := client.AuthorBooksIterator("18541", 0)
	var ids []string
	for it.Next(context.Background()) {
		ids = append(ids, it.Item().Field("id"))
	}
	require.NoError(t, it.Err())

	require.Len(t, ids, 47)
	for i, id := range ids {
		assert.Equal(t, fmt.Sprintf("%d", i+1), id)
	}
	assert.Equal(t, 2, transport.calls())
	assert.Equal(t, "1", transport.request(0).Params.Get("page"))
	assert.Equal(t, "2", transport.request(1).Params.Get("page"))
	assert.Equal(t, 2, it.Page())
	assert.Equal(t, PageInfo{Start: 31, End: 47, Total: 47}, it.PageInfo())
	assert.Equal(t, 47, it.Yielded())

	assert.False(t, it.Next(context.Background()))
	assert.Equal(t, 2, transport.calls())
}

func TestAuthorBooksIterator_ExactPage(t *testing.T) {
	transport := pagedAuthor(perPage)
	client := newTestClient(t, "key", "secret", transport, newFakeClock())

	it := client.AuthorBooksIterator("18541", 0)
	count := 0
	for it.Next(context.Background()) {
		count++
	}
	require.NoError(t, it.Err())
	assert.Equal(t, perPage, count)
	assert.Equal(t, 1, transport.calls())
}

func TestAuthorBooksIterator_LimitStopsFetching(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantCalls int
	}{
		{name: "mid first page", limit: 10, wantCalls: 1},
		{name: "end of first page", limit: 30, wantCalls: 1},
		{name: "into second page", limit: 31, wantCalls: 2},
		{name: "beyond total", limit: 100, wantCalls: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := pagedAuthor(47)
			client := newTestClient(t, "key", "secret", transport, newFakeClock())

			it := client.AuthorBooksIterator("18541", tt.limit)
			count := 0
			for it.Next(context.Background()) {
				count++
			}
			require.NoError(t, it.Err())
			assert.Equal(t, min(tt.limit, 47), count)
			assert.Equal(t, tt.wantCalls, transport.calls())
		})
	}
}

func TestAuthorBooksIterator_EmptyListing(t *testing.T) {
	transport := staticResponse(`<GoodreadsResponse><author><id>1</id><books start="0" end="0" total="0"></books></author></GoodreadsResponse>`)
	client := newTestClient(t, "key", "secret", transport, newFakeClock())

	it := client.AuthorBooksIterator("1", 0)
	assert.False(t, it.Next(context.Background()))
	require.NoError(t, it.Err())
	assert.Nil(t, it.Item())
	assert.Equal(t, 1, transport.calls())
}

func TestAuthorBooksIterator_SingleBook(t *testing.T) {
	transport := staticResponse(string(authorListPage(1, 1, 1)))
	client := newTestClient(t, "key", "secret", transport, newFakeClock())

	it := client.AuthorBooksIterator("1", 0)
	require.True(t, it.Next(context.Background()))
	assert.Equal(t, "Book 1", it.Item().Field("title"))
	assert.False(t, it.Next(context.Background()))
	require.NoError(t, it.Err())
}

func TestAuthorBooksIterator_ErrorStops(t *testing.T) {
	transport := &recordingTransport{
		respond: func(req *Request, call int) ([]byte, error) {
			if call == 1 {
				return nil, &HTTPError{Method: req.Method, URL: req.Path, StatusCode: http.StatusBadGateway}
			}
			return authorListPage(1, perPage, 47), nil
		},
	}
	client := newTestClient(t, "key", "secret", transport, newFakeClock())

	it := client.AuthorBooksIterator("18541", 0)
	count := 0
	for it.Next(context.Background()) {
		count++
	}
	assert.Equal(t, perPage, count)

	var httpErr *HTTPError
	require.True(t, errors.As(it.Err(), &httpErr))
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
	assert.Contains(t, it.Err().Error(), "page 2")
	assert.False(t, it.Next(context.Background()))
}

func TestAuthorBooksIterator_MissingBooks(t *testing.T) {
	transport := staticResponse(`<GoodreadsResponse><author><id>1</id></author></GoodreadsResponse>`)
	client := newTestClient(t, "key", "secret", transport, newFakeClock())

	it := client.AuthorBooksIterator("1", 0)
	assert.False(t, it.Next(context.Background()))
	var invalid *InvalidResponseError
	assert.True(t, errors.As(it.Err(), &invalid))
}

func TestShelfBooksIterator(t *testing.T) {
	transport := &recordingTransport{
		respond: func(req *Request, call int) ([]byte, error) {
			if call == 0 {
				return []byte(`<GoodreadsResponse><books start="1" end="2" total="3">
					<book><id>1</id></book><book><id>2</id></book>
				</books></GoodreadsResponse>`), nil
			}
			return []byte(`<GoodreadsResponse><books start="3" end="3" total="3">
				<book><id>3</id></book>
			</books></GoodreadsResponse>`), nil
		},
	}
	client := newTestClient(t, "key", "secret", transport, newFakeClock())

	it := client.ShelfBooksIterator(ShelfQuery{UserID: "7", Shelf: "read", PerPage: 2}, 0)
	var ids []string
	for it.Next(context.Background()) {
		ids = append(ids, it.Item().Field("id"))
	}
	require.NoError(t, it.Err())
	assert.Equal(t, []string{"1", "2", "3"}, ids)
	assert.Equal(t, "read", transport.request(1).Params.Get("shelf"))
	assert.Equal(t, "2", transport.request(1).Params.Get("page"))
}

func TestParsePageInfo(t *testing.T) {
	tests := []struct {
		name    string
		value   *Value
		want    PageInfo
		wantErr bool
	}{
		{
			name: "valid",
			value: Map(
				Pair{Key: "@start", Value: String("1")},
				Pair{Key: "@end", Value: String("30")},
				Pair{Key: "@total", Value: String("47")},
			),
			want: PageInfo{Start: 1, End: 30, Total: 47},
		},
		{
			name:    "missing total",
			value:   Map(Pair{Key: "@start", Value: String("1")}, Pair{Key: "@end", Value: String("30")}),
			wantErr: true,
		},
		{
			name: "not a number",
			value: Map(
				Pair{Key: "@start", Value: String("1")},
				Pair{Key: "@end", Value: String("x")},
				Pair{Key: "@total", Value: String("47")},
			),
			wantErr: true,
		},
		{
			name:    "nil collection",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePageInfo(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.HasMore())
		})
	}
}
