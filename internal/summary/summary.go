// Package summary handles display of scan results and statistics
package summary

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/bethropolis/dir-grep/internal/walker"
)

// Logger defines the minimal logging interface required
type Logger interface {
	Info(format string, args ...interface{})
}

// Totals aggregates the counters of a run across all inputs
type Totals struct {
	Files   int64
	Dirs    int64
	Lines   uint64
	Matches uint64
	Invalid uint64
	Errors  int
}

// DisplayResults shows the end results of a search
func DisplayResults(logger Logger, totals Totals, duration time.Duration, quiet bool) {
	if quiet {
		return
	}
	logger.Info("Scanned %d files in %d directories, %d lines.", totals.Files, totals.Dirs, totals.Lines)
	logger.Info("Found %d matching lines.", totals.Matches)
	if totals.Invalid > 0 {
		logger.Info("Skipped %d lines that are not valid UTF-8.", totals.Invalid)
	}
	if totals.Errors > 0 {
		logger.Info("%d paths could not be read.", totals.Errors)
	}
	logger.Info("Search complete in %v.", duration.Round(time.Millisecond))
}

// DisplaySkippedItems formats and prints information about skipped items
func DisplaySkippedItems(
	logger Logger,
	skippedItems []walker.SkippedItem,
	output io.Writer,
	quiet bool,
) {
	infoLog := func(format string, args ...interface{}) {
		if !quiet {
			logger.Info(format, args...)
		}
	}

	infoLog("--- Skipped Items (%d) ---", len(skippedItems))
	if len(skippedItems) > 0 {
		// Sort for consistent output
		sort.SliceStable(skippedItems, func(i, j int) bool {
			return skippedItems[i].Path < skippedItems[j].Path
		})
		for _, item := range skippedItems {
			typeStr := "FILE"
			if item.IsDir {
				typeStr = "DIR " // Add space for alignment
			}
			fmt.Fprintf(output, "Skipped %s: %-.*s [%s]\n",
				typeStr,
				50, // Max width for path column
				item.Path,
				item.Reason,
			)
		}
	} else {
		infoLog("No items were skipped.")
	}
	infoLog("--- End Skipped Items ---")
}
