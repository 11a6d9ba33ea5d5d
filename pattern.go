package locate

import (
	"regexp"
)

// Mode selects what a query returns.
type Mode int

// Mode constants for Pattern.
const (
	ModeList Mode = iota
	ModeCount
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeCount:
		return "count"
	default:
		return "list"
	}
}

// Pattern is a compiled query. It is built per query and never persisted.
type Pattern struct {
	// Text is the query as entered by the user.
	Text string
	// Regex reports whether Text was used verbatim as the expression.
	Regex bool
	Mode  Mode
	Expr  *regexp.Regexp
}

// Source returns the effective regular expression.
func (p *Pattern) Source() string {
	return p.Expr.String()
}

// Match reports whether path satisfies the pattern.
func (p *Pattern) Match(path string) bool {
	return p.Expr.MatchString(path)
}

// PatternCompiler turns user query text into a Pattern.
type PatternCompiler interface {
	Compile(text string, isRegex bool, mode Mode) (*Pattern, error)
}

// DefaultCompiler compiles every query from scratch.
var DefaultCompiler PatternCompiler = compilerFunc(CompilePattern)

type compilerFunc func(text string, isRegex bool, mode Mode) (*Pattern, error)

func (f compilerFunc) Compile(text string, isRegex bool, mode Mode) (*Pattern, error) {
	return f(text, isRegex, mode)
}

// ExpressionFor returns the regular expression source for a query.
// Literal text has every metacharacter escaped and is anchored as
// (?s)^.*<text>.*$ to match anywhere in a path, including across
// newlines in file names.
func ExpressionFor(text string, isRegex bool) string {
	if isRegex {
		return text
	}
	return "(?s)^.*" + regexp.QuoteMeta(text) + ".*$"
}

// CompileExpr compiles the expression for a query.
// Returns EINVALID for empty text and EPATTERN for invalid syntax.
func CompileExpr(text string, isRegex bool) (*regexp.Regexp, error) {
	if text == "" {
		return nil, Errorf(EINVALID, "search text required")
	}
	re, err := regexp.Compile(ExpressionFor(text, isRegex))
	if err != nil {
		return nil, Errorf(EPATTERN, "invalid pattern %q: %v", text, err)
	}
	return re, nil
}

// CompilePattern compiles a query into a Pattern.
func CompilePattern(text string, isRegex bool, mode Mode) (*Pattern, error) {
	re, err := CompileExpr(text, isRegex)
	if err != nil {
		return nil, err
	}
	return &Pattern{Text: text, Regex: isRegex, Mode: mode, Expr: re}, nil
}
