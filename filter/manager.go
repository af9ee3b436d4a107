package filter

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Manager holds named filters, typically the presets from the configuration
type Manager struct {
	compiler  *Compiler
	evaluator *ConcurrentEvaluator
	filters   map[string]*Filter
	mu        sync.RWMutex
}

// ManagerOption configures a filter manager
type ManagerOption func(*Manager)

// WithCompiler sets a custom compiler
func WithCompiler(compiler *Compiler) ManagerOption {
	return func(m *Manager) {
		m.compiler = compiler
	}
}

// WithEvaluator sets a custom evaluator
func WithEvaluator(evaluator *ConcurrentEvaluator) ManagerOption {
	return func(m *Manager) {
		m.evaluator = evaluator
	}
}

// NewManager creates a new filter manager
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		compiler:  NewCompiler(WithCache(100)),
		evaluator: NewConcurrentEvaluator(),
		filters:   make(map[string]*Filter),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register compiles and stores a filter under name, replacing any previous one
func (m *Manager) Register(name, expression string) error {
	f, err := m.compiler.Compile(expression)
	if err != nil {
		return fmt.Errorf("failed to compile filter '%s': %w", name, err)
	}

	m.mu.Lock()
	m.filters[name] = f
	m.mu.Unlock()
	return nil
}

// RegisterAll registers several filters; nothing is stored if any fails
func (m *Manager) RegisterAll(filters map[string]string) error {
	compiled := make(map[string]*Filter, len(filters))
	for _, name := range slices.Sorted(maps.Keys(filters)) {
		f, err := m.compiler.Compile(filters[name])
		if err != nil {
			return fmt.Errorf("failed to compile filter '%s': %w", name, err)
		}
		compiled[name] = f
	}

	m.mu.Lock()
	maps.Copy(m.filters, compiled)
	m.mu.Unlock()
	return nil
}

// Unregister removes a filter
func (m *Manager) Unregister(name string) {
	m.mu.Lock()
	delete(m.filters, name)
	m.mu.Unlock()
}

// Get returns a filter by name
func (m *Manager) Get(name string) (*Filter, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.filters[name]
	return f, ok
}

// Names returns the registered filter names in sorted order
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.filters))
}

// Resolve returns the named filter, or compiles expression as an ad-hoc one
// when no filter has that name
func (m *Manager) Resolve(nameOrExpression string) (*Filter, error) {
	if f, ok := m.Get(nameOrExpression); ok {
		return f, nil
	}
	return m.compiler.Compile(nameOrExpression)
}

// Apply evaluates the named filter (or ad-hoc expression) over books
func (m *Manager) Apply(ctx context.Context, nameOrExpression string, books []BookInfo) ([]BookInfo, error) {
	f, err := m.Resolve(nameOrExpression)
	if err != nil {
		return nil, err
	}
	return m.evaluator.Evaluate(ctx, f, books)
}

// ApplyAll evaluates every registered filter over books
func (m *Manager) ApplyAll(ctx context.Context, books []BookInfo) (map[string][]BookInfo, error) {
	m.mu.RLock()
	filters := maps.Clone(m.filters)
	m.mu.RUnlock()

	return m.evaluator.EvaluateBatch(ctx, filters, books)
}
