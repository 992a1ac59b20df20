// Package review parses the model's structured review output.
package review

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Issue struct {
	Line       int    `json:"line"`
	Severity   string `json:"severity"`
	Title      string `json:"title"`
	Suggestion string `json:"suggestion"`
}

type Result struct {
	Issues []Issue `json:"issues"`
}

// ParseResult decodes the {"issues":[...]} payload the review prompt asks
// for. Models frequently wrap JSON in a markdown code fence despite the
// instructions, so fences are stripped before decoding.
func ParseResult(raw string) (Result, error) {
	cleaned := StripFences(raw)

	var res Result
	if err := json.Unmarshal([]byte(cleaned), &res); err != nil {
		return Result{}, fmt.Errorf("decode review result: %w", err)
	}

	return res, nil
}

// StripFences removes a surrounding markdown code fence, including an
// optional language tag on the opening line. Text without a fence passes
// through unchanged.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// Drop the language tag line ("json", "go", ...) if present.
		first := strings.TrimSpace(s[:nl])
		if first == "" || !strings.ContainsAny(first, "{}[]") {
			s = s[nl+1:]
		}
	}

	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
