package setup

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSearch_RequiresPattern(t *testing.T) {
	_, err := BuildSearch(SearchConfig{})
	var ce *ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "regexp", ce.Flag)
}

func TestBuildSearch_ExplicitEmptyPatterns(t *testing.T) {
	s, err := BuildSearch(SearchConfig{PatternSet: true})
	require.NoError(t, err)
	assert.True(t, s.Criteria.IsMatch(""))
	assert.True(t, s.Criteria.IsMatch("anything"))

	s, err = BuildSearch(SearchConfig{Pattern: "foo", ExcludeSet: true})
	require.NoError(t, err)
	assert.False(t, s.Criteria.IsMatch("foo"))
}

func TestBuildSearch_InvalidPatterns(t *testing.T) {
	tests := []struct {
		name string
		cfg  SearchConfig
		flag string
	}{
		{"content", SearchConfig{Pattern: "("}, "regexp"},
		{"exclude", SearchConfig{Pattern: "x", ExcludePattern: "["}, "ne"},
		{"file include", SearchConfig{Pattern: "x", FileInclude: "*"}, "frgx"},
		{"extension", SearchConfig{Pattern: "x", FileExt: "("}, "fx"},
		{"file exclude", SearchConfig{Pattern: "x", FileExclude: "(?"}, "fnrgx"},
		{"negative context", SearchConfig{Pattern: "x", Context: -1}, "context"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildSearch(tt.cfg)
			var ce *ConfigError
			require.True(t, errors.As(err, &ce), "got %v", err)
			assert.Equal(t, tt.flag, ce.Flag)
			assert.Contains(t, err.Error(), "--"+tt.flag)
		})
	}
}

func TestBuildSearch_Criteria(t *testing.T) {
	s, err := BuildSearch(SearchConfig{Pattern: "foo", ExcludePattern: "bar", Context: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Criteria.Context())
	assert.True(t, s.Criteria.IsMatch("foo"))
	assert.False(t, s.Criteria.IsMatch("foobar"))
	assert.False(t, s.Criteria.IsMatch("FOO"))
	assert.False(t, s.Filter.Active())
	assert.Empty(t, s.FilterExpr)
}

func TestBuildSearch_IgnoreCase(t *testing.T) {
	s, err := BuildSearch(SearchConfig{Pattern: "foo", ExcludePattern: "bar", IgnoreCase: true})
	require.NoError(t, err)
	assert.True(t, s.Criteria.IsMatch("FOO"))
	assert.False(t, s.Criteria.IsMatch("FOO BAR"))
}

func TestBuildSearch_ExtensionOverridesInclude(t *testing.T) {
	s, err := BuildSearch(SearchConfig{Pattern: "x", FileInclude: `\.txt$`, FileExt: "go"})
	require.NoError(t, err)
	assert.Equal(t, `\.go$`, s.FilterExpr)
	assert.True(t, s.Filter.Accepts("a/main.go"))
	assert.False(t, s.Filter.Accepts("a/notes.txt"))
}

func TestBuildSearch_FileExclude(t *testing.T) {
	s, err := BuildSearch(SearchConfig{Pattern: "x", FileExt: "go", FileExclude: `_test\.go$`})
	require.NoError(t, err)
	assert.True(t, s.Filter.Accepts("pkg/a.go"))
	assert.False(t, s.Filter.Accepts("pkg/a_test.go"))

	// Exclusion alone does not filter anything
	s, err = BuildSearch(SearchConfig{Pattern: "x", FileExclude: `_test\.go$`})
	require.NoError(t, err)
	assert.True(t, s.Filter.Accepts("pkg/a_test.go"))
}

func TestConfigureWalker(t *testing.T) {
	var infos []string
	infoLog := func(format string, args ...interface{}) { infos = append(infos, format) }

	opts, err := ConfigureWalker(WalkerConfig{RootDir: t.TempDir()}, infoLog)
	require.NoError(t, err)
	assert.Len(t, opts, 2)
	assert.Empty(t, infos)

	opts, err = ConfigureWalker(WalkerConfig{
		RootDir:        t.TempDir(),
		SkipHidden:     true,
		CustomPatterns: []string{"vendor/"},
		MaxFileSizeMB:  1,
	}, infoLog)
	require.NoError(t, err)
	assert.Len(t, opts, 4)
	assert.Len(t, infos, 1)

	_, err = ConfigureWalker(WalkerConfig{MaxFileSizeMB: -1}, infoLog)
	var ce *ConfigError
	assert.True(t, errors.As(err, &ce))
}
