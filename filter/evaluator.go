package filter

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of concurrent chunks
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if workers > 0 {
			e.workers = workers
		}
	}
}

// WithBatchSize sets the list size below which evaluation stays sequential
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// ConcurrentEvaluator runs filters over book lists, splitting large lists into
// chunks evaluated in parallel. Matches keep the input order.
type ConcurrentEvaluator struct {
	workers   int
	batchSize int
}

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workers:   runtime.GOMAXPROCS(0),
		batchSize: 100,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate returns the books matching f
func (e *ConcurrentEvaluator) Evaluate(ctx context.Context, f *Filter, books []BookInfo) ([]BookInfo, error) {
	if len(books) == 0 {
		return []BookInfo{}, nil
	}
	if len(books) < e.batchSize {
		return matchAll(f, books), nil
	}

	chunkSize := max(len(books)/e.workers, e.batchSize)
	chunks := make([][]BookInfo, (len(books)+chunkSize-1)/chunkSize)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range chunks {
		start := i * chunkSize
		end := min(start+chunkSize, len(books))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			chunks[i] = matchAll(f, books[start:end])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var matches []BookInfo
	for _, c := range chunks {
		matches = append(matches, c...)
	}
	if matches == nil {
		matches = []BookInfo{}
	}
	return matches, nil
}

// EvaluateBatch runs several named filters over the same books
func (e *ConcurrentEvaluator) EvaluateBatch(ctx context.Context, filters map[string]*Filter, books []BookInfo) (map[string][]BookInfo, error) {
	results := make(map[string][]BookInfo, len(filters))
	if len(filters) == 0 {
		return results, nil
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	for name, f := range filters {
		g.Go(func() error {
			matches, err := e.Evaluate(ctx, f, books)
			if err != nil {
				return err
			}
			mu.Lock()
			results[name] = matches
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func matchAll(f *Filter, books []BookInfo) []BookInfo {
	matches := make([]BookInfo, 0, len(books)/4)
	for _, b := range books {
		if f.Evaluate(b) {
			matches = append(matches, b)
		}
	}
	return matches
}
