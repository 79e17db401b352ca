// Package walker handles directory traversal and file scanning
package walker

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bethropolis/dir-grep/internal/scanner"
)

// readDir lists a directory; replaced in tests to simulate listing failures
var readDir = os.ReadDir

// Walk visits root depth-first and calls scanFn for every file it selects.
//
// A root that is not a directory is scanned directly, ignoring the filter.
// Inside directories, subdirectories are always descended and the filter
// applies to files only. Listing, stat, open and read failures are logged,
// recorded in the result and skipped. A directory that is already being
// walked higher up (a symlink back to an ancestor) is not entered again.
// Walk only returns an error when scanFn reports one that is not a
// *scanner.ReadError.
func Walk(root string, scanFn ScanFunc, opts ...Option) (Result, error) {
	startTime := time.Now()

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	w := &walk{
		root:    root,
		options: options,
		scanFn:  scanFn,
		tracker: NewSkippedTracker(16),
	}

	options.Logger.Debug("walker.Walk started. Root: %s", root)

	var err error
	info, statErr := os.Stat(root)
	switch {
	case statErr == nil && info.IsDir():
		err = w.dir(root, info)
	case statErr == nil && w.excluded(info):
		w.skipExcluded(root)
	default:
		err = w.file(root, info)
	}

	options.Logger.Debug("Walker: Finished %s in %s (%d files, %d dirs)",
		root, time.Since(startTime), w.files, w.dirs)

	return Result{
		FilesScanned: w.files,
		DirsVisited:  w.dirs,
		Skipped:      w.tracker.Items(),
	}, err
}

type walk struct {
	root    string
	options WalkOptions
	scanFn  ScanFunc
	tracker *SkippedTracker
	files   int64
	dirs    int64

	// directories currently being walked, outermost first
	ancestors []fs.FileInfo
}

// dir lists path and handles each entry in name order
func (w *walk) dir(path string, info fs.FileInfo) error {
	entries, err := readDir(path)
	if err != nil {
		w.options.Logger.Error("Cannot list path: %s, %v", path, err)
		reason := ReasonSkippedListError
		if errors.Is(err, fs.ErrPermission) {
			reason = ReasonSkippedPermError
		}
		w.tracker.Track(path, reason, true)
		return nil
	}
	w.dirs++
	w.ancestors = append(w.ancestors, info)
	defer func() { w.ancestors = w.ancestors[:len(w.ancestors)-1] }()

	for _, entry := range entries {
		entryPath := joinEntry(path, entry.Name())

		// Stat follows symlinks, so a link to a directory is descended
		info, err := os.Stat(entryPath)
		if err != nil {
			w.options.Logger.Error("Cannot stat path: %s, %v", entryPath, err)
			w.tracker.Track(entryPath, ReasonSkippedInfoError, false)
			continue
		}

		if w.ignored(entryPath, info.IsDir()) {
			continue
		}

		if info.IsDir() {
			if w.isAncestor(info) {
				w.options.Logger.Warn("Walker: Not following %q: directory loop", entryPath)
				w.tracker.Track(entryPath, ReasonSkippedLoop, true)
				continue
			}
			w.options.Logger.Debug("Walker: Descending into directory %q", entryPath)
			if err := w.dir(entryPath, info); err != nil {
				return err
			}
			continue
		}

		if w.excluded(info) {
			w.skipExcluded(entryPath)
			continue
		}

		if !w.options.Filter.Accepts(entryPath) {
			w.options.Logger.Debug("Walker: Filtered %q by name pattern", entryPath)
			w.tracker.Track(entryPath, ReasonFilteredName, false)
			continue
		}

		if err := w.file(entryPath, info); err != nil {
			return err
		}
	}
	return nil
}

// joinEntry appends name to dir the way the path was given, so a root of
// "." yields "./name" rather than a cleaned "name"
func joinEntry(dir, name string) string {
	if strings.HasSuffix(dir, string(os.PathSeparator)) || strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + string(os.PathSeparator) + name
}

func (w *walk) isAncestor(info fs.FileInfo) bool {
	for _, a := range w.ancestors {
		if os.SameFile(a, info) {
			return true
		}
	}
	return false
}

// excluded reports whether info is one of the files the walk must never
// scan, such as the file matches are being written to
func (w *walk) excluded(info fs.FileInfo) bool {
	for _, x := range w.options.Exclude {
		if os.SameFile(x, info) {
			return true
		}
	}
	return false
}

func (w *walk) skipExcluded(path string) {
	w.options.Logger.Debug("Walker: Skipping %q: it is the output file", path)
	w.tracker.Track(path, ReasonSkippedOutputFile, false)
}

// ignored consults the optional ignore matcher
func (w *walk) ignored(path string, isDir bool) bool {
	if !w.options.Ignore.Active() {
		return false
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	if w.options.Ignore.ShouldIgnore(rel, isDir) {
		w.options.Logger.Debug("Walker: Ignored %q by matcher rules", path)
		w.tracker.Track(path, ReasonIgnoredRule, isDir)
		return true
	}
	return false
}

// file opens path and hands it to scanFn. info may be nil when the root
// could not be stat'ed; the open then reports the problem.
func (w *walk) file(path string, info fs.FileInfo) error {
	if w.options.MaxFileSize > 0 && info != nil && info.Size() > w.options.MaxFileSize {
		w.options.Logger.Debug("Walker: Skipping %q: exceeds size limit (%d > %d bytes)",
			path, info.Size(), w.options.MaxFileSize)
		w.tracker.Track(path, ReasonSkippedSizeLimit, false)
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		w.options.Logger.Error("Error opening %s, %v", path, err)
		w.tracker.Track(path, ReasonSkippedOpenError, false)
		return nil
	}
	defer f.Close()

	w.files++
	err = w.scanFn(path, f)

	var readErr *scanner.ReadError
	if errors.As(err, &readErr) {
		w.options.Logger.Error("%v", readErr)
		w.tracker.Track(path, ReasonSkippedReadError, false)
		return nil
	}
	return err
}
