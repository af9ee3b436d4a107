package filter

import (
	"maps"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled boolean expression over a BookInfo. It is safe for
// concurrent use.
type Filter struct {
	expression string
	program    *vm.Program
	extra      map[string]any
}

// CompilerOption configures a Compiler
type CompilerOption func(*Compiler)

// WithCache keeps up to size compiled filters
func WithCache(size int) CompilerOption {
	return func(c *Compiler) {
		if size > 0 {
			c.cache = newProgramCache(size)
		}
	}
}

// WithFunctions adds helper functions visible to every expression
func WithFunctions(funcs map[string]any) CompilerOption {
	return func(c *Compiler) {
		maps.Copy(c.extra, funcs)
	}
}

// Compiler turns expressions into filters
type Compiler struct {
	extra map[string]any
	cache *programCache
}

// NewCompiler creates a compiler
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{extra: make(map[string]any)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile parses and type-checks an expression. Book fields are resolved at
// evaluation time, so unknown identifiers are accepted here.
func (c *Compiler) Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	if c.cache != nil {
		if cached, ok := c.cache.get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(c.environment(BookInfo{})),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	f := &Filter{expression: expression, program: program, extra: c.extra}
	if c.cache != nil {
		c.cache.put(expression, f)
	}
	return f, nil
}

// Clear drops all cached filters
func (c *Compiler) Clear() {
	if c.cache != nil {
		c.cache.clear()
	}
}

// Size returns the number of cached filters
func (c *Compiler) Size() int {
	if c.cache != nil {
		return c.cache.len()
	}
	return 0
}

// Compile compiles an expression without caching
func Compile(expression string) (*Filter, error) {
	return NewCompiler().Compile(expression)
}

// Expression returns the source of the filter
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the filter against a book
func (f *Filter) Match(book BookInfo) (bool, error) {
	env := environment(book)
	maps.Copy(env, f.extra)

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{Expression: f.expression, BookTitle: book.Title, Err: err}
	}
	return result.(bool), nil
}

// Evaluate reports whether the book matches; evaluation errors count as no match
func (f *Filter) Evaluate(book BookInfo) bool {
	ok, err := f.Match(book)
	return err == nil && ok
}

func (c *Compiler) environment(book BookInfo) map[string]any {
	env := environment(book)
	maps.Copy(env, c.extra)
	return env
}

// environment exposes the book's fields and the per-book helpers
func environment(book BookInfo) map[string]any {
	return map[string]any{
		"Book":            book,
		"ID":              book.ID,
		"Title":           book.Title,
		"ISBN":            book.ISBN,
		"ISBN13":          book.ISBN13,
		"Link":            book.Link,
		"Publisher":       book.Publisher,
		"Format":          book.Format,
		"Description":     book.Description,
		"Authors":         book.Authors,
		"Shelves":         book.Shelves,
		"AverageRating":   book.AverageRating,
		"RatingsCount":    book.RatingsCount,
		"Year":            book.PublicationYear,
		"PublicationYear": book.PublicationYear,
		"NumPages":        book.NumPages,

		"includes":  includes,
		"hasAuthor": listHas(book.Authors),
		"hasShelf":  listHas(book.Shelves),
		"isNil":     book.IsNil,
		"field":     book.Field,
	}
}

// includes is a case-insensitive substring test
func includes(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func listHas(values []string) func(string) bool {
	lowered := make([]string, len(values))
	for i, v := range values {
		lowered[i] = strings.ToLower(v)
	}
	return func(name string) bool {
		return slices.Contains(lowered, strings.ToLower(name))
	}
}
