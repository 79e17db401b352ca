package ignore

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bethropolis/dir-grep/internal/utils"
	gitignore "github.com/denormal/go-gitignore"
)

// New creates and initializes an IgnoreMatcher rooted at rootDir
func New(rootDir string, opts ...Option) (*IgnoreMatcher, error) {
	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("ignore: failed to get absolute path for rootDir '%s': %w", rootDir, err)
	}

	matcher := &IgnoreMatcher{
		rootDir: absRootDir,
		logger:  utils.NoopLogger{},
	}
	for _, opt := range opts {
		opt(matcher)
	}

	if err := matcher.init(); err != nil {
		return nil, err
	}
	return matcher, nil
}

func (m *IgnoreMatcher) init() error {
	m.logger.Debug("ignore.New: root=%s hidden=%v git=%v custom=%d",
		m.rootDir, m.ignoreHidden, m.ignoreGit, len(m.customPatterns))

	if m.ignoreGit {
		repoMatcher, repoErr := gitignore.NewRepository(m.rootDir)
		if repoErr != nil {
			if repoMatcher != nil {
				return fmt.Errorf("ignore: failed to load repository ignores: %w", repoErr)
			}
			m.logger.Warn("ignore.New: No .gitignore rules loaded for '%s': %v", m.rootDir, repoErr)
		}
		m.repoIgnore = repoMatcher
	}

	var rules []string
	for _, p := range m.customPatterns {
		if p = strings.TrimSpace(p); p != "" {
			rules = append(rules, p)
		}
	}
	if len(rules) > 0 {
		m.customIgnore = gitignore.New(strings.NewReader(strings.Join(rules, "\n")), m.rootDir, func(e gitignore.Error) bool {
			m.logger.Warn("ignore.New: Bad custom pattern: %v", e)
			return true
		})
	}
	return nil
}

// Active reports whether any pruning rule is enabled
func (m *IgnoreMatcher) Active() bool {
	return m != nil && (m.ignoreHidden || m.ignoreGit || m.customIgnore != nil)
}
