// Package walker handles directory traversal and file scanning
package walker

import (
	"io/fs"

	"github.com/bethropolis/dir-grep/internal/filter"
	"github.com/bethropolis/dir-grep/internal/ignore"
	"github.com/bethropolis/dir-grep/internal/utils"
)

// WalkOptions configures the behavior of the Walk function
type WalkOptions struct {
	Logger      utils.Logger
	Filter      filter.PathFilter
	Ignore      *ignore.IgnoreMatcher
	MaxFileSize int64
	Exclude     []fs.FileInfo
}

// defaultOptions returns the default walk options
func defaultOptions() WalkOptions {
	return WalkOptions{
		Logger:      utils.NoopLogger{},
		MaxFileSize: 0, // No limit
	}
}

// Option is a functional option for configuring WalkOptions
type Option func(*WalkOptions)

// WithLogger sets a custom logger for the walker
func WithLogger(logger utils.Logger) Option {
	return func(opts *WalkOptions) {
		opts.Logger = utils.OrNoop(logger)
	}
}

// WithFilter sets the filename filter applied to files found inside
// directories. It is never applied to directories or to a root file.
func WithFilter(f filter.PathFilter) Option {
	return func(opts *WalkOptions) {
		opts.Filter = f
	}
}

// WithIgnore sets the matcher used to prune entries. Its root must be the
// walk root.
func WithIgnore(m *ignore.IgnoreMatcher) Option {
	return func(opts *WalkOptions) {
		opts.Ignore = m
	}
}

// WithMaxFileSize sets the maximum file size to scan in bytes
func WithMaxFileSize(maxBytes int64) Option {
	return func(opts *WalkOptions) {
		opts.MaxFileSize = maxBytes
	}
}

// WithExcludedFile makes the walk skip info wherever it is found, under any
// name. Nil is ignored.
func WithExcludedFile(info fs.FileInfo) Option {
	return func(opts *WalkOptions) {
		if info != nil {
			opts.Exclude = append(opts.Exclude, info)
		}
	}
}
