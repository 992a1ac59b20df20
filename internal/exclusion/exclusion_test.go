package exclusion

import (
	"testing"

	"github.com/stretchr/testify/require"

	"prsentinel/internal/diff"
)

func TestDefaults(t *testing.T) {
	f := NewFilter(nil)

	tests := []struct {
		name     string
		excluded bool
	}{
		{"package-lock.json", true},
		{"frontend/package-lock.json", true},
		{"src/app.js", false},
		{"a/b/node_modules/x.js", true},
		{"notes.md.bak", false},
		{"app.min.js", true},
		{"server.log", true},
		{"LICENSE", true},
		{"docs/LICENSE", true},
		{"internal/licenses.go", false},
		{".env", true},
		{"config/.env", true},
		{"vendor/pkg/mod.go", true},
		{"README.md", false},
	}

	for _, tt := range tests {
		require.Equal(t, tt.excluded, f.ShouldExclude(tt.name), tt.name)
	}
}

func TestCustomPatternsMergeAfterDefaults(t *testing.T) {
	require.False(t, NewFilter(nil).ShouldExclude("legacy/old.js"))

	f := NewFilter([]string{"legacy/"})
	require.True(t, f.ShouldExclude("legacy/old.js"))
	require.True(t, f.ShouldExclude("src/legacy/old.js"))
}

func TestWildcardIsUnanchoredSearch(t *testing.T) {
	f := NewFilter([]string{"*.log"})

	require.True(t, f.ShouldExclude("foo.log"))

	// Known over-match: the wildcard expression is searched, not anchored,
	// so the ".log" inside "foo.logger.js" matches too. This looseness is
	// contract, not a bug to fix.
	require.True(t, f.ShouldExclude("foo.logger.js"))
}

func TestExactPatternIsNotASubstringMatch(t *testing.T) {
	f := NewFilter([]string{"secrets.txt"})

	require.True(t, f.ShouldExclude("secrets.txt"))
	require.True(t, f.ShouldExclude("config/secrets.txt"))
	require.False(t, f.ShouldExclude("notsecrets.txt"))
	require.False(t, f.ShouldExclude("secrets.txt.old"))
}

func TestMalformedPatternIsLiteral(t *testing.T) {
	f := NewFilter([]string{"[unclosed"})

	require.False(t, f.ShouldExclude("src/app.js"))
	require.True(t, f.ShouldExclude("[unclosed"))
}

func TestApplyPreservesOrder(t *testing.T) {
	changes := []diff.FileChange{
		{FileName: "README.md"},
		{FileName: "src/index.js"},
		{FileName: "package-lock.json"},
	}

	kept := NewFilter(nil).Apply(changes)

	require.Len(t, kept, 2)
	require.Equal(t, "README.md", kept[0].FileName)
	require.Equal(t, "src/index.js", kept[1].FileName)
}
