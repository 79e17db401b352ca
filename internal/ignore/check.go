package ignore

import (
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
)

// ShouldIgnore checks if the entry at relativePath (relative to the root)
// should be pruned
func (m *IgnoreMatcher) ShouldIgnore(relativePath string, isDir bool) bool {
	if !m.Active() {
		return false
	}

	// Never ignore the root itself
	if relativePath == "" || relativePath == "." {
		return false
	}

	if m.ignoreHidden && isHidden(relativePath) {
		m.logger.Debug("ignore.ShouldIgnore: Ignored %q (hidden rule)", relativePath)
		return true
	}

	if m.ignoreGit && isPathInGitDir(relativePath, isDir) {
		m.logger.Debug("ignore.ShouldIgnore: Ignored %q (.git rule)", relativePath)
		return true
	}

	for _, gi := range []gitignore.GitIgnore{m.customIgnore, m.repoIgnore} {
		if gi != nil && m.matches(gi, relativePath, isDir) {
			m.logger.Debug("ignore.ShouldIgnore: Ignored %q (gitignore rule)", relativePath)
			return true
		}
	}
	return false
}

// matches asks the gitignore library about relativePath. A panic inside the
// library is logged and treated as "not ignored".
func (m *IgnoreMatcher) matches(gi gitignore.GitIgnore, relativePath string, isDir bool) (ignored bool) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("PANIC recovered in gitignore library for path %q: %v", relativePath, r)
			ignored = false
		}
	}()
	match := gi.Relative(filepath.ToSlash(relativePath), isDir)
	return match != nil && match.Ignore()
}

// isHidden reports whether the base name or any parent starts with a dot
func isHidden(relativePath string) bool {
	for _, part := range strings.Split(filepath.ToSlash(relativePath), "/") {
		if strings.HasPrefix(part, ".") && part != "." && part != ".." {
			return true
		}
	}
	return false
}

// isPathInGitDir checks if a path is inside a .git directory
func isPathInGitDir(relativePath string, isDir bool) bool {
	parts := strings.Split(filepath.ToSlash(relativePath), "/")
	for i, part := range parts {
		if part == ".git" {
			// .git as a directory component, not a file named .git
			if isDir || i < len(parts)-1 {
				return true
			}
		}
	}
	return false
}
