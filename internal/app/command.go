// Package app wires configuration, traversal, scanning and output into the
// dir-grep command
package app

import (
	"github.com/spf13/cobra"

	"github.com/bethropolis/dir-grep/internal/config"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates the dir-grep command
func NewRootCommand() *cobra.Command {
	var cfg *config.Config

	cmd := &cobra.Command{
		Use:   "dir-grep -e PATTERN [options] [PATH ...] [-- | -]",
		Short: "Recursive, filterable text search",
		Long: `dir-grep walks each PATH (default ".") and prints every line matching
PATTERN as "<file> +<line> |<text>", with line numbers starting at 0.

Files can be selected by path with --frgx/--fx and narrowed with --fnrgx.
A "-" argument, or a trailing "--", also searches standard input.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Resolve(cmd, args, cmd.ArgsLenAtDash())

			application, err := New(cfg)
			if err != nil {
				return err
			}
			application.WithStreams(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			runErr := application.Run()
			if err := application.Close(); err != nil && runErr == nil {
				runErr = err
			}
			return runErr
		},
	}
	cfg = config.AddFlags(cmd)

	return cmd
}
