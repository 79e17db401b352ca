// Package ignore prunes entries the user asked to skip during traversal:
// .gitignore rules, hidden entries and extra gitignore-syntax patterns.
//
// Every rule is opt-in. A matcher with no rule enabled ignores nothing, so
// the default traversal visits every file.
package ignore

import (
	"github.com/bethropolis/dir-grep/internal/utils"
	gitignore "github.com/denormal/go-gitignore"
)

// IgnoreMatcher determines whether a file or directory should be pruned
type IgnoreMatcher struct {
	// Rules loaded from .gitignore files under rootDir
	repoIgnore gitignore.GitIgnore
	// Rules given on the command line
	customIgnore gitignore.GitIgnore

	rootDir        string
	ignoreHidden   bool
	ignoreGit      bool
	customPatterns []string
	logger         utils.Logger
}
