// Package query answers searches against the file index.
package query

import (
	"context"

	"github.com/fwojciec/locate"
)

// Engine compiles a query once and evaluates it with a full scan of the
// index. It never modifies the index and caches no results.
type Engine struct {
	Index locate.IndexService
	// Compiler defaults to locate.DefaultCompiler.
	Compiler locate.PatternCompiler
}

// NewEngine creates a new Engine.
func NewEngine(index locate.IndexService, compiler locate.PatternCompiler) *Engine {
	return &Engine{Index: index, Compiler: compiler}
}

// RunQuery searches the index for text. In count mode only the number of
// matches is returned; otherwise the matching paths in insertion order.
func (e *Engine) RunQuery(ctx context.Context, text string, isRegex, countOnly bool) (*locate.QueryOutcome, error) {
	mode := locate.ModeList
	if countOnly {
		mode = locate.ModeCount
	}

	compiler := e.Compiler
	if compiler == nil {
		compiler = locate.DefaultCompiler
	}
	pattern, err := compiler.Compile(text, isRegex, mode)
	if err != nil {
		return nil, err
	}

	matches, err := e.Index.Scan(ctx, pattern)
	if err != nil {
		return nil, err
	}

	outcome := &locate.QueryOutcome{
		Expression: pattern.Source(),
		Mode:       mode,
		Count:      len(matches),
	}
	if mode == locate.ModeList {
		outcome.Paths = matches
	}
	return outcome, nil
}
