package mock

import "github.com/fwojciec/locate"

var _ locate.PatternCompiler = (*PatternCompiler)(nil)

// PatternCompiler is a mock implementation of locate.PatternCompiler.
type PatternCompiler struct {
	CompileFn func(text string, isRegex bool, mode locate.Mode) (*locate.Pattern, error)
}

func (c *PatternCompiler) Compile(text string, isRegex bool, mode locate.Mode) (*locate.Pattern, error) {
	return c.CompileFn(text, isRegex, mode)
}
