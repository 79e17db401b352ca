package config

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// StdinArg is the positional argument that selects standard input
const StdinArg = "-"

// Config holds all application configuration settings. It is filled from
// command-line flags only; there is no configuration file.
type Config struct {
	// Inputs
	Paths     []string
	ReadStdin bool

	// Content patterns
	Pattern        string
	ExcludePattern string
	PatternSet     bool
	ExcludeSet     bool
	Context        int
	IgnoreCase     bool

	// Filename patterns
	FileInclude string
	FileExt     string
	FileExclude string

	// Pruning
	GitIgnore     bool
	SkipHidden    bool
	CustomIgnore  string
	MaxFileSizeMB int64

	// Output
	JSONOutput  bool
	NoColor     bool
	UseColors   bool
	LogColors   bool
	OutputFile  string
	ShowSkipped bool
	ShowStats   bool

	// Logging
	Verbose  bool
	Quiet    bool
	LogLevel string
}

// AddFlags registers the configuration flags on cmd and returns the Config
// they populate.
func AddFlags(cmd *cobra.Command) *Config {
	c := &Config{}
	f := cmd.Flags()

	f.StringVarP(&c.Pattern, "regexp", "e", "", "Regular expression to search for (required)")
	f.StringVar(&c.ExcludePattern, "ne", "", "Drop matching lines that also match this regular expression")
	f.IntVarP(&c.Context, "context", "C", 0, "Lines of context to print before each match")
	f.BoolVarP(&c.IgnoreCase, "ignore-case", "i", false, "Case-insensitive content matching")

	f.StringVar(&c.FileInclude, "frgx", "", "Only scan files whose path matches this regular expression")
	f.StringVar(&c.FileExt, "fx", "", "Shortcut for --frgx '\\.EXT$'")
	f.StringVar(&c.FileExclude, "fnrgx", "", "Skip files matching this regular expression (only with --frgx/--fx)")

	f.BoolVar(&c.GitIgnore, "gitignore", false, "Skip paths listed in .gitignore files and .git directories")
	f.BoolVar(&c.SkipHidden, "skip-hidden", false, "Skip hidden files/directories (starting with '.')")
	f.StringVar(&c.CustomIgnore, "ignore", "", "Extra skip patterns (comma-separated, gitignore syntax)")
	f.Int64Var(&c.MaxFileSizeMB, "max-size", 0, "Max file size to scan in MB (0 = no limit)")

	f.BoolVar(&c.JSONOutput, "json", false, "Output matches as a JSON array")
	f.BoolVar(&c.NoColor, "no-color", false, "Disable color output")
	f.StringVarP(&c.OutputFile, "output", "o", "", "Write matches to a file instead of stdout")
	f.BoolVar(&c.ShowSkipped, "show-skipped", false, "List skipped files/directories and reasons at the end")
	f.BoolVar(&c.ShowStats, "stats", false, "Print scan statistics at the end")

	f.BoolVar(&c.Verbose, "verbose", false, "Enable verbose logging (DEBUG, WARN, ERROR)")
	f.BoolVar(&c.Quiet, "quiet", false, "Suppress INFO messages (only show WARN, ERROR)")
	f.StringVar(&c.LogLevel, "log-level", "info", "Set the logging level (debug, info, warn, error, none)")

	return c
}

// Resolve finishes the configuration once flags are parsed. dashAt is the
// index of a "--" terminator in args, or -1. Paths after "--" are ignored
// and standard input is read after the listed paths.
func (c *Config) Resolve(cmd *cobra.Command, args []string, dashAt int) {
	if dashAt >= 0 {
		args = args[:dashAt]
		c.ReadStdin = true
	}
	for _, a := range args {
		if a == StdinArg {
			c.ReadStdin = true
			continue
		}
		c.Paths = append(c.Paths, a)
	}
	if len(c.Paths) == 0 && !c.ReadStdin {
		c.Paths = []string{"."}
	}

	// An explicitly empty pattern is valid and matches every line
	c.PatternSet = cmd.Flags().Changed("regexp")
	c.ExcludeSet = cmd.Flags().Changed("ne")

	if !cmd.Flags().Changed("log-level") {
		switch {
		case c.Verbose:
			c.LogLevel = "debug"
		case c.Quiet:
			c.LogLevel = "warn"
		}
	}

	c.UseColors = !c.NoColor && !c.JSONOutput && c.OutputFile == "" && isatty.IsTerminal(os.Stdout.Fd())
	c.LogColors = !c.NoColor && isatty.IsTerminal(os.Stderr.Fd())
}

// CustomPatterns splits CustomIgnore on commas
func (c *Config) CustomPatterns() []string {
	if strings.TrimSpace(c.CustomIgnore) == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(c.CustomIgnore, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
