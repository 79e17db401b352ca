// Package walker handles directory traversal and file scanning
package walker

import "io"

// ScanFunc is called for every file selected by Walk. r is open for the
// duration of the call and closed afterwards.
//
// A returned *scanner.ReadError is recorded and the walk continues; any
// other error stops the walk and is returned by Walk.
type ScanFunc func(path string, r io.Reader) error

// SkippedReason clarifies why a file/directory was not scanned.
type SkippedReason string

const (
	ReasonFilteredName      SkippedReason = "Filtered (Name Pattern)"
	ReasonIgnoredRule       SkippedReason = "Ignored (Gitignore/Hidden/Custom Rule)"
	ReasonSkippedSizeLimit  SkippedReason = "Skipped (Size Limit Exceeded)"
	ReasonSkippedOutputFile SkippedReason = "Skipped (Output File)"
	ReasonSkippedLoop       SkippedReason = "Skipped (Directory Loop)"
	ReasonSkippedPermError  SkippedReason = "Skipped (Permission Error)"
	ReasonSkippedListError  SkippedReason = "Skipped (List Error)"
	ReasonSkippedInfoError  SkippedReason = "Skipped (File Info Error)"
	ReasonSkippedOpenError  SkippedReason = "Skipped (Open Error)"
	ReasonSkippedReadError  SkippedReason = "Skipped (Read Error)"
)

// Failed reports whether the reason is a traversal error rather than a
// deliberate skip.
func (r SkippedReason) Failed() bool {
	switch r {
	case ReasonFilteredName, ReasonIgnoredRule, ReasonSkippedSizeLimit,
		ReasonSkippedOutputFile, ReasonSkippedLoop:
		return false
	}
	return true
}

// SkippedItem holds information about a skipped path.
type SkippedItem struct {
	Path   string        `json:"path"`
	Reason SkippedReason `json:"reason"`
	IsDir  bool          `json:"is_dir"`
}

// SkippedTracker records skipped items in the order they were met
type SkippedTracker struct {
	items []SkippedItem
}

// NewSkippedTracker creates a new SkippedTracker
func NewSkippedTracker(capacity int) *SkippedTracker {
	return &SkippedTracker{
		items: make([]SkippedItem, 0, capacity),
	}
}

// Track adds a skipped item to the tracker
func (st *SkippedTracker) Track(path string, reason SkippedReason, isDir bool) {
	st.items = append(st.items, SkippedItem{Path: path, Reason: reason, IsDir: isDir})
}

// Items returns the tracked skipped items
func (st *SkippedTracker) Items() []SkippedItem {
	return st.items
}

// Result summarises one walk.
type Result struct {
	FilesScanned int64
	DirsVisited  int64
	Skipped      []SkippedItem
}

// Errors counts skipped items caused by traversal errors.
func (r Result) Errors() int {
	n := 0
	for _, item := range r.Skipped {
		if item.Reason.Failed() {
			n++
		}
	}
	return n
}
