// Package chunker splits oversized review context into prompt-sized pieces.
package chunker

import "strings"

type Chunk struct {
	File    string
	Content string
	Index   int
	Total   int
}

type Chunker struct {
	maxChars int
}

func New(maxChars int) *Chunker {
	if maxChars <= 0 {
		maxChars = 3000
	}
	return &Chunker{maxChars: maxChars}
}

// Split cuts content into chunks of at most maxChars, breaking on line
// boundaries where possible. Content under the limit comes back as a single
// chunk.
func (c *Chunker) Split(file, content string) []Chunk {
	if len(content) <= c.maxChars {
		return []Chunk{{File: file, Content: content, Index: 0, Total: 1}}
	}

	var parts []string
	var current strings.Builder

	for _, line := range strings.SplitAfter(content, "\n") {
		if current.Len() > 0 && current.Len()+len(line) > c.maxChars {
			parts = append(parts, current.String())
			current.Reset()
		}

		// A single line longer than the limit is cut hard.
		for len(line) > c.maxChars {
			parts = append(parts, line[:c.maxChars])
			line = line[c.maxChars:]
		}

		current.WriteString(line)
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	chunks := make([]Chunk, len(parts))
	for i, p := range parts {
		chunks[i] = Chunk{
			File:    file,
			Content: p,
			Index:   i,
			Total:   len(parts),
		}
	}
	return chunks
}
