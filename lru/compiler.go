// Package lru provides a pattern compiler that reuses compiled expressions
// across queries.
package lru

import (
	"regexp"

	"github.com/fwojciec/locate"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of compiled expressions kept.
const DefaultCacheSize = 64

// Ensure PatternCompiler implements locate.PatternCompiler.
var _ locate.PatternCompiler = (*PatternCompiler)(nil)

// cacheKey identifies an expression by everything that shapes it.
type cacheKey struct {
	text    string
	isRegex bool
}

// PatternCompiler compiles queries, caching the compiled expression by
// query text and kind. Each call returns a fresh Pattern so a cached
// expression is never tied to another query's mode.
type PatternCompiler struct {
	cache *lru.Cache[cacheKey, *regexp.Regexp]
}

// NewPatternCompiler creates a PatternCompiler holding up to size
// expressions. A non-positive size uses DefaultCacheSize.
func NewPatternCompiler(size int) *PatternCompiler {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, _ := lru.New[cacheKey, *regexp.Regexp](size)
	return &PatternCompiler{cache: cache}
}

// Compile returns the Pattern for a query.
func (c *PatternCompiler) Compile(text string, isRegex bool, mode locate.Mode) (*locate.Pattern, error) {
	key := cacheKey{text: text, isRegex: isRegex}
	re, ok := c.cache.Get(key)
	if !ok {
		var err error
		re, err = locate.CompileExpr(text, isRegex)
		if err != nil {
			return nil, err
		}
		c.cache.Add(key, re)
	}
	return &locate.Pattern{Text: text, Regex: isRegex, Mode: mode, Expr: re}, nil
}

// Len returns the number of cached expressions.
func (c *PatternCompiler) Len() int {
	return c.cache.Len()
}
