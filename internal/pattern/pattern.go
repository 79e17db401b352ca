// Package pattern compiles textual patterns into matchers.
//
// The engine only depends on the Matcher interface; regular expressions
// are the one implementation shipped here.
package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// Matcher reports whether a piece of text matches a precompiled pattern.
// *regexp.Regexp satisfies it.
type Matcher interface {
	MatchString(s string) bool
}

// Compile builds a Matcher from a regular expression.
func Compile(expr string) (Matcher, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("pattern: invalid regular expression %q: %w", expr, err)
	}
	return re, nil
}

// CompileFold is Compile with case-insensitive matching.
func CompileFold(expr string) (Matcher, error) {
	return Compile("(?i)" + expr)
}

// ExtensionExpr turns an extension shortcut such as "go" or ".go" into the
// filename expression `\.go$`. The extension itself is used verbatim, so
// "tsx?" yields `\.tsx?$`.
func ExtensionExpr(ext string) string {
	return `\.` + strings.TrimPrefix(ext, ".") + `$`
}

// Func adapts a plain function to the Matcher interface.
type Func func(s string) bool

// MatchString calls f(s).
func (f Func) MatchString(s string) bool { return f(s) }
