package diff

import "strings"

const headerPrefix = "diff --git a/"

// FileChange is one file's slice of a raw unified diff. DiffText runs from
// the file's own header line up to the next header (or end of input), so
// concatenating the DiffText of every record reconstructs the input from the
// first header onward.
type FileChange struct {
	FileName string
	DiffText string
}

// Segment splits raw unified-diff text into per-file change records, in
// order of first appearance. Input without a recognizable header yields nil.
//
// Headers are located with a single forward-only cursor: the search for the
// next header always resumes after the previous one, never from offset zero.
// Restarting a global search per file would silently skip or duplicate
// sections when the diff contains header-shaped text inside hunk bodies.
func Segment(raw string) []FileChange {
	start := nextHeader(raw, 0)
	if start < 0 {
		return nil
	}

	var changes []FileChange
	for start >= 0 {
		next := nextHeader(raw, start+1)

		var body string
		if next < 0 {
			body = raw[start:]
		} else {
			body = raw[start:next]
		}

		changes = append(changes, FileChange{
			FileName: headerPath(body),
			DiffText: body,
		})

		start = next
	}

	return changes
}

// nextHeader returns the offset of the first header line at or after from,
// or -1. A header only counts at the start of a line; hunk content lines
// always carry a +/-/space prefix, so a literal header string inside a hunk
// never matches.
func nextHeader(raw string, from int) int {
	if from == 0 && strings.HasPrefix(raw, headerPrefix) {
		return 0
	}
	if from > len(raw) {
		return -1
	}

	idx := strings.Index(raw[from:], "\n"+headerPrefix)
	if idx < 0 {
		return -1
	}
	return from + idx + 1
}

// headerPath extracts the a/ path from the header line opening body. The b/
// path is assumed identical; renames resolve to the a/ side.
func headerPath(body string) string {
	line := body
	if nl := strings.IndexByte(line, '\n'); nl >= 0 {
		line = line[:nl]
	}
	line = strings.TrimPrefix(line, headerPrefix)

	if cut := strings.LastIndex(line, " b/"); cut >= 0 {
		return line[:cut]
	}
	return line
}
