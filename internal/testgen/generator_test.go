package testgen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"prsentinel/internal/ai"
	"prsentinel/internal/diff"
)

type stubProvider struct {
	resp ai.ReviewResponse
	err  error
}

func (s *stubProvider) Review(context.Context, ai.ReviewRequest) (ai.ReviewResponse, error) {
	return s.resp, s.err
}

func (s *stubProvider) GenerateTests(context.Context, ai.TestRequest) (ai.ReviewResponse, error) {
	return s.resp, s.err
}

func TestTestPath(t *testing.T) {
	tests := []struct{ in, want string }{
		{"main.go", "main_test.go"},
		{"internal/diff/segment.go", "internal/diff/segment_test.go"},
		{"src/app.js", "src/app.test.js"},
		{"lib/util.ts", "lib/util.test.ts"},
		{"scripts/tool.py", "scripts/test_tool.py"},
		{"Handler.java", "Handler_test.java"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, TestPath(tt.in), tt.in)
	}
}

func TestGenerate_StripsFences(t *testing.T) {
	p := &stubProvider{resp: ai.ReviewResponse{
		Content: "```go\npackage diff\n\nfunc TestX(t *testing.T) {}\n```",
		Model:   "gpt-4o-mini",
	}}

	g := New(p)

	out, err := g.Generate(context.Background(), diff.FileChange{
		FileName: "internal/diff/segment.go",
		DiffText: "diff --git a/internal/diff/segment.go b/internal/diff/segment.go\n",
	})

	require.NoError(t, err)
	require.Equal(t, "internal/diff/segment_test.go", out.TestPath)
	require.Contains(t, out.Content, "func TestX")
	require.NotContains(t, out.Content, "```")
}

func TestGenerate_EmptyCompletionFails(t *testing.T) {
	g := New(&stubProvider{resp: ai.ReviewResponse{Content: "```\n\n```"}})

	_, err := g.Generate(context.Background(), diff.FileChange{FileName: "a.go"})
	require.Error(t, err)
}

func TestGenerate_ProviderErrorPropagates(t *testing.T) {
	wantErr := errors.New("provider down")
	g := New(&stubProvider{err: wantErr})

	_, err := g.Generate(context.Background(), diff.FileChange{FileName: "a.go"})
	require.ErrorIs(t, err, wantErr)
}

func TestWriteFile_MirrorsLayout(t *testing.T) {
	dir := t.TempDir()
	g := New(nil)

	path, err := g.WriteFile(dir, GeneratedTest{
		SourcePath: "internal/diff/segment.go",
		TestPath:   "internal/diff/segment_test.go",
		Content:    "package diff",
	})

	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "internal", "diff", "segment_test.go"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "package diff\n", string(b))
}

func TestCommentBody(t *testing.T) {
	body := CommentBody(GeneratedTest{
		SourcePath: "src/app.js",
		TestPath:   "src/app.test.js",
		Content:    "test('x', () => {})",
	})

	require.Contains(t, body, "`src/app.js`")
	require.Contains(t, body, "```js")
	require.Contains(t, body, "test('x', () => {})")
}
