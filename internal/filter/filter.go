// Package filter decides which discovered files are scanned.
package filter

import "github.com/bethropolis/dir-grep/internal/pattern"

// PathFilter combines an optional filename-include and an optional
// filename-exclude matcher. The zero value accepts everything.
//
// Exclude only narrows an active include: with no include set, every path
// is accepted and Exclude is never consulted.
type PathFilter struct {
	Include pattern.Matcher
	Exclude pattern.Matcher
}

// New returns a PathFilter; either matcher may be nil.
func New(include, exclude pattern.Matcher) PathFilter {
	return PathFilter{Include: include, Exclude: exclude}
}

// Active reports whether the filter can reject anything.
func (f PathFilter) Active() bool {
	return f.Include != nil
}

// Accepts reports whether the file at path should be scanned. It is only
// applied to non-directory entries.
func (f PathFilter) Accepts(path string) bool {
	if f.Include == nil {
		return true
	}
	if !f.Include.MatchString(path) {
		return false
	}
	if f.Exclude != nil && f.Exclude.MatchString(path) {
		return false
	}
	return true
}
