package goodreads

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// fakeClock advances its time by the slept duration instead of blocking.
// With frozen set, Sleep records the duration but time stands still.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	frozen bool
	slept  []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slept = append(c.slept, d)
	if !c.frozen {
		c.now = c.now.Add(d)
	}
	return nil
}

func (c *fakeClock) sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.slept))
	copy(out, c.slept)
	return out
}

// recordingTransport records every request and the clock time it was sent at
type recordingTransport struct {
	mu       sync.Mutex
	clock    Clock
	requests []*Request
	sentAt   []time.Time
	respond  func(req *Request, call int) ([]byte, error)
}

func (t *recordingTransport) Send(ctx context.Context, req *Request) ([]byte, error) {
	t.mu.Lock()
	call := len(t.requests)
	t.requests = append(t.requests, req)
	if t.clock != nil {
		t.sentAt = append(t.sentAt, t.clock.Now())
	}
	respond := t.respond
	t.mu.Unlock()

	if respond == nil {
		return []byte("<GoodreadsResponse/>"), nil
	}
	return respond(req, call)
}

func (t *recordingTransport) calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.requests)
}

func (t *recordingTransport) request(i int) *Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.requests[i]
}

func newTestClient(t *testing.T, key, secret string, transport *recordingTransport, clock *fakeClock) *Client {
	t.Helper()
	transport.clock = clock
	client, err := NewClient(key, secret, zerolog.Nop(),
		WithTransport(transport),
		WithClock(clock),
	)
	require.NoError(t, err)
	return client
}

// authorListPage renders one author/list.xml page with ids start..end
func authorListPage(start, end, total int) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString(`<GoodreadsResponse><Request><authentication>true</authentication></Request>`)
	b.WriteString(`<author><id>18541</id><name>Tim O'Reilly</name>`)
	fmt.Fprintf(&b, `<books start="%d" end="%d" total="%d">`, start, end, total)
	for i := start; i <= end; i++ {
		fmt.Fprintf(&b, `<book><id type="integer">%d</id><title>Book %d</title></book>`, i, i)
	}
	b.WriteString(`</books></author></GoodreadsResponse>`)
	return []byte(b.String())
}
