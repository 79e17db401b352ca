// Package setup turns configuration into engine objects. Every problem
// found here is a configuration error and must stop the run before any
// traversal starts.
package setup

import (
	"errors"
	"fmt"

	"github.com/bethropolis/dir-grep/internal/filter"
	"github.com/bethropolis/dir-grep/internal/pattern"
	"github.com/bethropolis/dir-grep/internal/scanner"
)

// ConfigError reports an unusable flag value
type ConfigError struct {
	Flag string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid --%s: %v", e.Flag, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// SearchConfig holds the pattern settings needed to build a Search
type SearchConfig struct {
	Pattern        string
	ExcludePattern string
	Context        int
	IgnoreCase     bool
	FileInclude    string
	FileExt        string
	FileExclude    string

	// PatternSet and ExcludeSet mark patterns given explicitly, possibly empty
	PatternSet bool
	ExcludeSet bool
}

// Search is the immutable result of BuildSearch, shared by every scan
type Search struct {
	Criteria scanner.Criteria
	Filter   filter.PathFilter

	// FilterExpr is the effective filename-include expression, if any
	FilterExpr string
}

// BuildSearch compiles the content and filename patterns.
//
// --fx takes precedence over --frgx. Content patterns honour IgnoreCase;
// filename patterns never do.
func BuildSearch(cfg SearchConfig) (Search, error) {
	var s Search

	if cfg.Pattern == "" && !cfg.PatternSet {
		return s, &ConfigError{Flag: "regexp", Err: errors.New("a search pattern is required")}
	}
	if cfg.Context < 0 {
		return s, &ConfigError{Flag: "context", Err: fmt.Errorf("must not be negative, got %d", cfg.Context)}
	}

	compileContent := pattern.Compile
	if cfg.IgnoreCase {
		compileContent = pattern.CompileFold
	}

	include, err := compileContent(cfg.Pattern)
	if err != nil {
		return s, &ConfigError{Flag: "regexp", Err: err}
	}
	var exclude pattern.Matcher
	if cfg.ExcludePattern != "" || cfg.ExcludeSet {
		if exclude, err = compileContent(cfg.ExcludePattern); err != nil {
			return s, &ConfigError{Flag: "ne", Err: err}
		}
	}
	if s.Criteria, err = scanner.NewCriteria(include, exclude, cfg.Context); err != nil {
		return s, &ConfigError{Flag: "regexp", Err: err}
	}

	flag, expr := "frgx", cfg.FileInclude
	if cfg.FileExt != "" {
		flag, expr = "fx", pattern.ExtensionExpr(cfg.FileExt)
	}
	var nameInclude, nameExclude pattern.Matcher
	if expr != "" {
		if nameInclude, err = pattern.Compile(expr); err != nil {
			return s, &ConfigError{Flag: flag, Err: err}
		}
		s.FilterExpr = expr
	}
	if cfg.FileExclude != "" {
		if nameExclude, err = pattern.Compile(cfg.FileExclude); err != nil {
			return s, &ConfigError{Flag: "fnrgx", Err: err}
		}
	}
	s.Filter = filter.New(nameInclude, nameExclude)

	return s, nil
}
