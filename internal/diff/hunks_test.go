package diff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseHunks_LineNumbersAndTypes(t *testing.T) {
	body := "diff --git a/main.go b/main.go\n" +
		"--- a/main.go\n" +
		"+++ b/main.go\n" +
		"@@ -10,3 +10,4 @@ func main() {\n" +
		" ctx\n" +
		"-removed\n" +
		"+added one\n" +
		"+added two\n"

	hunks := ParseHunks(body)
	require.Len(t, hunks, 1)

	lines := hunks[0].Lines
	require.Len(t, lines, 4)

	require.Equal(t, Context, lines[0].Type)
	require.Equal(t, 10, lines[0].OldNumber)
	require.Equal(t, 10, lines[0].NewNumber)

	require.Equal(t, Removed, lines[1].Type)
	require.Equal(t, 11, lines[1].OldNumber)

	require.Equal(t, Added, lines[2].Type)
	require.Equal(t, 11, lines[2].NewNumber)

	require.Equal(t, Added, lines[3].Type)
	require.Equal(t, 12, lines[3].NewNumber)
}

func TestParseHunks_MultipleHunks(t *testing.T) {
	body := "diff --git a/a.go b/a.go\n" +
		"@@ -1,1 +1,1 @@\n" +
		"-x\n" +
		"+y\n" +
		"@@ -20,1 +20,2 @@\n" +
		" keep\n" +
		"+more\n"

	hunks := ParseHunks(body)
	require.Len(t, hunks, 2)
	require.Equal(t, 1, hunks[0].Lines[0].OldNumber)
	require.Equal(t, 21, hunks[1].Lines[1].NewNumber)
}

func TestAIContext_RestoresPrefixes(t *testing.T) {
	fc := FileChange{
		FileName: "main.go",
		DiffText: "diff --git a/main.go b/main.go\n" +
			"@@ -1,1 +1,1 @@\n" +
			"-old\n" +
			"+new\n",
	}

	out := fc.AIContext()
	require.Contains(t, out, "File: main.go")
	require.Contains(t, out, "-old\n")
	require.Contains(t, out, "+new\n")
}
