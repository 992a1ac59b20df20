package review

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseResult_PlainJSON(t *testing.T) {
	res, err := ParseResult(`{"issues":[{"line":3,"severity":"high","title":"nil deref","suggestion":"check err"}]}`)

	require.NoError(t, err)
	require.Len(t, res.Issues, 1)
	require.Equal(t, 3, res.Issues[0].Line)
	require.Equal(t, "high", res.Issues[0].Severity)
}

func TestParseResult_FencedJSON(t *testing.T) {
	raw := "```json\n" +
		`{"issues":[{"line":1,"severity":"low","title":"style","suggestion":"rename"}]}` +
		"\n```"

	res, err := ParseResult(raw)

	require.NoError(t, err)
	require.Len(t, res.Issues, 1)
	require.Equal(t, "style", res.Issues[0].Title)
}

func TestParseResult_EmptyIssues(t *testing.T) {
	res, err := ParseResult(`{"issues":[]}`)

	require.NoError(t, err)
	require.Empty(t, res.Issues)
}

func TestParseResult_ProseFails(t *testing.T) {
	_, err := ParseResult("Looks good to me!")
	require.Error(t, err)
}

func TestStripFences_NoTagFence(t *testing.T) {
	raw := "```\n{\"issues\":[]}\n```"
	require.Equal(t, `{"issues":[]}`, StripFences(raw))
}
