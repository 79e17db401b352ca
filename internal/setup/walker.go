package setup

import (
	"fmt"

	"github.com/bethropolis/dir-grep/internal/filter"
	"github.com/bethropolis/dir-grep/internal/ignore"
	"github.com/bethropolis/dir-grep/internal/utils"
	"github.com/bethropolis/dir-grep/internal/walker"
)

// InfoLogger wraps the Info method for status updates
type InfoLogger func(format string, args ...interface{})

// WalkerConfig holds all parameters needed to configure a walk of one root
type WalkerConfig struct {
	RootDir        string
	Filter         filter.PathFilter
	GitIgnore      bool
	SkipHidden     bool
	CustomPatterns []string
	MaxFileSizeMB  int64
	Logger         utils.Logger
}

// ConfigureWalker builds the walker options for one root
func ConfigureWalker(cfg WalkerConfig, infoLog InfoLogger) ([]walker.Option, error) {
	if cfg.MaxFileSizeMB < 0 {
		return nil, &ConfigError{Flag: "max-size", Err: fmt.Errorf("must not be negative, got %d", cfg.MaxFileSizeMB)}
	}

	walkOptions := []walker.Option{
		walker.WithLogger(cfg.Logger),
		walker.WithFilter(cfg.Filter),
	}

	if cfg.GitIgnore || cfg.SkipHidden || len(cfg.CustomPatterns) > 0 {
		matcher, err := ignore.New(cfg.RootDir,
			ignore.WithLogger(cfg.Logger),
			ignore.WithGitIgnore(cfg.GitIgnore),
			ignore.WithHiddenIgnore(cfg.SkipHidden),
			ignore.WithCustomRules(cfg.CustomPatterns),
		)
		if err != nil {
			return nil, fmt.Errorf("error initializing ignore rules: %w", err)
		}
		walkOptions = append(walkOptions, walker.WithIgnore(matcher))
	}

	if cfg.MaxFileSizeMB > 0 {
		walkOptions = append(walkOptions, walker.WithMaxFileSize(cfg.MaxFileSizeMB*1024*1024))
		infoLog("Ignoring files larger than %d MB.", cfg.MaxFileSizeMB)
	}

	return walkOptions, nil
}
