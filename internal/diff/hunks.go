package diff

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"
)

type LineType string

const (
	Added   LineType = "added"
	Removed LineType = "removed"
	Context LineType = "context"
)

type Line struct {
	Type      LineType
	Content   string
	OldNumber int
	NewNumber int
}

type Hunk struct {
	OldStart int
	NewStart int
	Lines    []Line
}

var hunkRe = regexp.MustCompile(`@@ -(\d+),?\d* \+(\d+),?\d* @@`)

// ParseHunks parses the hunks of a single file's diff text, as produced by
// Segment. Lines before the first @@ header (the diff/index/---/+++ preamble)
// are skipped. A body with no hunks (mode-only change, binary file) yields
// nil.
func ParseHunks(diffText string) []Hunk {
	var hunks []Hunk
	var current *Hunk

	scanner := bufio.NewScanner(strings.NewReader(diffText))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "@@") {
			if current != nil {
				hunks = append(hunks, *current)
			}
			h := parseHunkHeader(line)
			current = &h
			continue
		}

		if current == nil {
			continue
		}

		current.Lines = append(current.Lines, parseLine(line, current))
	}

	if current != nil {
		hunks = append(hunks, *current)
	}

	return hunks
}

func parseHunkHeader(line string) Hunk {
	m := hunkRe.FindStringSubmatch(line)
	if m == nil {
		return Hunk{}
	}

	oldStart, _ := strconv.Atoi(m[1])
	newStart, _ := strconv.Atoi(m[2])

	return Hunk{
		OldStart: oldStart,
		NewStart: newStart,
	}
}

// parseLine classifies one hunk content line and advances the hunk's running
// line counters.
func parseLine(raw string, h *Hunk) Line {
	if len(raw) == 0 {
		l := Line{Type: Context, OldNumber: h.OldStart, NewNumber: h.NewStart}
		h.OldStart++
		h.NewStart++
		return l
	}

	switch raw[0] {
	case '+':
		l := Line{
			Type:      Added,
			Content:   raw[1:],
			NewNumber: h.NewStart,
		}
		h.NewStart++
		return l

	case '-':
		l := Line{
			Type:      Removed,
			Content:   raw[1:],
			OldNumber: h.OldStart,
		}
		h.OldStart++
		return l

	default:
		l := Line{
			Type:      Context,
			Content:   raw[1:],
			OldNumber: h.OldStart,
			NewNumber: h.NewStart,
		}
		h.OldStart++
		h.NewStart++
		return l
	}
}
