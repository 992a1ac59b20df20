// Package testgen turns a file's diff into a generated test file.
package testgen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"prsentinel/internal/ai"
	"prsentinel/internal/diff"
	"prsentinel/internal/review"
)

type GeneratedTest struct {
	SourcePath string
	TestPath   string
	Content    string
	Usage      ai.Usage
	Model      string
}

type Generator struct {
	provider ai.Provider
}

func New(provider ai.Provider) *Generator {
	return &Generator{provider: provider}
}

// Generate asks the provider for a test file covering the change. The
// completion's code fence is stripped so the content is writable as-is.
func (g *Generator) Generate(ctx context.Context, fc diff.FileChange) (GeneratedTest, error) {
	resp, err := g.provider.GenerateTests(ctx, ai.TestRequest{
		File:    fc.FileName,
		Content: fc.AIContext(),
	})
	if err != nil {
		return GeneratedTest{}, fmt.Errorf("generate tests for %s: %w", fc.FileName, err)
	}

	content := review.StripFences(resp.Content)
	if strings.TrimSpace(content) == "" {
		return GeneratedTest{}, fmt.Errorf("empty test content for %s", fc.FileName)
	}

	return GeneratedTest{
		SourcePath: fc.FileName,
		TestPath:   TestPath(fc.FileName),
		Content:    content,
		Usage:      resp.Usage,
		Model:      resp.Model,
	}, nil
}

// WriteFile writes the generated test under dir, mirroring the source
// layout, and returns the written path.
func (g *Generator) WriteFile(dir string, t GeneratedTest) (string, error) {
	path := filepath.Join(dir, filepath.FromSlash(t.TestPath))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create test dir: %w", err)
	}

	content := t.Content
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write test file: %w", err)
	}

	return path, nil
}

// TestPath derives a conventional test file name for the source path.
func TestPath(source string) string {
	dir := ""
	name := source
	if i := strings.LastIndex(source, "/"); i >= 0 {
		dir = source[:i+1]
		name = source[i+1:]
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	switch ext {
	case ".go":
		return dir + base + "_test.go"
	case ".py":
		return dir + "test_" + name
	case ".js", ".jsx", ".ts", ".tsx":
		return dir + base + ".test" + ext
	default:
		return dir + base + "_test" + ext
	}
}

// CommentBody formats a generated test as a PR comment.
func CommentBody(t GeneratedTest) string {
	lang := strings.TrimPrefix(filepath.Ext(t.TestPath), ".")

	var b strings.Builder
	b.WriteString("Generated tests for `" + t.SourcePath + "`")
	b.WriteString(" (suggested path `" + t.TestPath + "`):\n\n")
	b.WriteString("```" + lang + "\n")
	b.WriteString(t.Content)
	if !strings.HasSuffix(t.Content, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("```\n")
	return b.String()
}
