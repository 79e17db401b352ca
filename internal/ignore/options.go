package ignore

import "github.com/bethropolis/dir-grep/internal/utils"

// Option functions for configuration
type Option func(*IgnoreMatcher)

// WithHiddenIgnore prunes entries whose name, or any parent's, starts with '.'
func WithHiddenIgnore(ignore bool) Option {
	return func(m *IgnoreMatcher) {
		m.ignoreHidden = ignore
	}
}

// WithGitIgnore loads .gitignore files below the root and prunes .git
func WithGitIgnore(ignore bool) Option {
	return func(m *IgnoreMatcher) {
		m.ignoreGit = ignore
	}
}

// WithCustomRules adds gitignore-syntax patterns relative to the root
func WithCustomRules(patterns []string) Option {
	return func(m *IgnoreMatcher) {
		m.customPatterns = patterns
	}
}

func WithLogger(logger utils.Logger) Option {
	return func(m *IgnoreMatcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}
