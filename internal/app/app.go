package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bethropolis/dir-grep/internal/config"
	"github.com/bethropolis/dir-grep/internal/logger"
	"github.com/bethropolis/dir-grep/internal/printer"
	"github.com/bethropolis/dir-grep/internal/scanner"
	"github.com/bethropolis/dir-grep/internal/setup"
	"github.com/bethropolis/dir-grep/internal/summary"
	"github.com/bethropolis/dir-grep/internal/walker"
)

// App encapsulates one search run
type App struct {
	cfg    *config.Config
	log    *logger.Logger
	Output io.Writer
	Stdin  io.Reader
	Stderr io.Writer

	outFile *os.File
}

// New creates a new App writing matches to stdout. cfg.OutputFile, if set,
// is only created by Run once the configuration has been validated.
func New(cfg *config.Config) (*App, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, &setup.ConfigError{Flag: "log-level", Err: err}
	}

	return &App{
		cfg:    cfg,
		log:    logger.New(os.Stderr, level, cfg.LogColors),
		Output: os.Stdout,
		Stdin:  os.Stdin,
		Stderr: os.Stderr,
	}, nil
}

// openOutput creates cfg.OutputFile and makes it the match output. The
// returned info lets the walk skip the file if it lies under a root.
func (a *App) openOutput() (os.FileInfo, error) {
	file, err := os.Create(a.cfg.OutputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	a.outFile = file
	a.Output = file
	return file.Stat()
}

// WithStreams replaces the process streams, mostly for tests
func (a *App) WithStreams(stdin io.Reader, stdout, stderr io.Writer) *App {
	a.Stdin = stdin
	a.Output = stdout
	a.Stderr = stderr
	a.log = logger.New(stderr, a.log.Level(), a.cfg.LogColors)
	return a
}

// Close releases the output file, if one was opened
func (a *App) Close() error {
	if a.outFile == nil {
		return nil
	}
	return a.outFile.Close()
}

// Run executes the search. Traversal errors are logged and do not make Run
// fail; a configuration error or a failure to write matches does.
func (a *App) Run() error {
	startTime := time.Now()

	infoLog := func(format string, args ...interface{}) {
		if !a.cfg.Quiet {
			a.log.Info(format, args...)
		}
	}

	search, err := setup.BuildSearch(setup.SearchConfig{
		Pattern:        a.cfg.Pattern,
		PatternSet:     a.cfg.PatternSet,
		ExcludePattern: a.cfg.ExcludePattern,
		ExcludeSet:     a.cfg.ExcludeSet,
		Context:        a.cfg.Context,
		IgnoreCase:     a.cfg.IgnoreCase,
		FileInclude:    a.cfg.FileInclude,
		FileExt:        a.cfg.FileExt,
		FileExclude:    a.cfg.FileExclude,
	})
	if err != nil {
		return err
	}
	if search.Filter.Active() {
		infoLog("FRGX = %s", search.FilterExpr)
	}

	// Per-root walker options are built up front so a bad setting aborts
	// before anything is scanned or the output file is touched
	rootOptions := make([][]walker.Option, len(a.cfg.Paths))
	for i, root := range a.cfg.Paths {
		rootOptions[i], err = setup.ConfigureWalker(setup.WalkerConfig{
			RootDir:        root,
			Filter:         search.Filter,
			GitIgnore:      a.cfg.GitIgnore,
			SkipHidden:     a.cfg.SkipHidden,
			CustomPatterns: a.cfg.CustomPatterns(),
			MaxFileSizeMB:  a.cfg.MaxFileSizeMB,
			Logger:         a.log,
		}, infoLog)
		if err != nil {
			return err
		}
	}

	if a.cfg.OutputFile != "" {
		info, err := a.openOutput()
		if err != nil {
			return err
		}
		for i := range rootOptions {
			rootOptions[i] = append(rootOptions[i], walker.WithExcludedFile(info))
		}
	}

	p := printer.New().
		WithOutput(a.Output).
		WithColors(a.cfg.UseColors).
		WithContext(search.Criteria.Context() > 0).
		WithJSON(a.cfg.JSONOutput)

	var totals summary.Totals
	var lines scanner.Stats
	var skipped []walker.SkippedItem

	scanFn := func(path string, r io.Reader) error {
		st, err := scanner.Scan(r, path, search.Criteria, p)
		lines.Add(st)
		return err
	}

	for i, root := range a.cfg.Paths {
		a.log.Debug("Searching %s", root)
		res, err := walker.Walk(root, scanFn, rootOptions[i]...)
		totals.Files += res.FilesScanned
		totals.Dirs += res.DirsVisited
		totals.Errors += res.Errors()
		skipped = append(skipped, res.Skipped...)
		if err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	if a.cfg.ReadStdin {
		a.log.Debug("Searching standard input")
		st, err := scanner.Scan(a.Stdin, scanner.StdinLabel, search.Criteria, p)
		lines.Add(st)
		var readErr *scanner.ReadError
		switch {
		case errors.As(err, &readErr):
			a.log.Error("%v", readErr)
			totals.Errors++
		case err != nil:
			return fmt.Errorf("writing output: %w", err)
		}
	}

	if err := p.Finalize(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	totals.Lines = lines.Lines
	totals.Matches = lines.Matches
	totals.Invalid = lines.Invalid

	if a.cfg.ShowStats {
		summary.DisplayResults(a.log, totals, time.Since(startTime), false)
	}
	if a.cfg.ShowSkipped {
		summary.DisplaySkippedItems(a.log, skipped, a.Stderr, a.cfg.Quiet)
	}
	return nil
}
