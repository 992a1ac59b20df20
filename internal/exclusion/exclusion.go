// Package exclusion decides which changed files are dropped before review.
// Patterns come in three shapes: wildcard (contains *), directory prefix
// (trailing /), and exact name. They are classified once when the filter is
// built, not re-inspected per file.
package exclusion

import (
	"regexp"
	"strings"

	"prsentinel/internal/diff"
)

type kind int

const (
	wildcard kind = iota
	dirPrefix
	exact
)

type Pattern struct {
	raw  string
	kind kind
	re   *regexp.Regexp
}

// Defaults is the built-in exclusion set. Downstream behavior depends on the
// exact names, treat this list as a contract.
var Defaults = []string{
	// package manager lockfiles
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"Gemfile.lock",
	"Pipfile.lock",
	"poetry.lock",
	"Cargo.lock",
	"composer.lock",
	"go.sum",

	// dependency and build output directories
	"node_modules/",
	"vendor/",
	"dist/",
	"build/",
	"out/",
	"bin/",
	"target/",
	"coverage/",
	".next/",

	// environment files
	".env",
	".env.local",
	".env.production",

	// minified and bundled output
	"*.min.js",
	"*.min.css",
	"*.bundle.js",
	"*.map",

	// docs and license boilerplate
	"LICENSE",
	"LICENSE.md",
	"CHANGELOG.md",
	"CODE_OF_CONDUCT.md",

	// IDE and OS metadata
	".idea/",
	".vscode/",
	".DS_Store",
	"Thumbs.db",

	// logs, temp, caches
	"*.log",
	"*.tmp",
	"*.cache",
	"*.swp",
	"__pycache__/",
}

// Classify turns a raw pattern string into its matchable form. Any string is
// accepted; a pattern that fits none of the shapes is an exact name that
// simply won't match much.
func Classify(raw string) Pattern {
	if strings.Contains(raw, "*") {
		re, err := regexp.Compile(wildcardExpr(raw))
		if err == nil {
			return Pattern{raw: raw, kind: wildcard, re: re}
		}
		// Unreachable after QuoteMeta, but a bad pattern degrades to a
		// literal rather than being rejected.
	}

	if strings.HasSuffix(raw, "/") {
		return Pattern{raw: raw, kind: dirPrefix}
	}

	return Pattern{raw: raw, kind: exact}
}

// wildcardExpr compiles * to "any run of characters". The expression is not
// anchored and is matched as a search over the whole file name, so *.log
// also matches foo.logger.js. Downstream callers rely on this looseness to
// catch file name variants; do not anchor it.
func wildcardExpr(raw string) string {
	return strings.ReplaceAll(regexp.QuoteMeta(raw), `\*`, `.*`)
}

// Match reports whether the pattern excludes name.
func (p Pattern) Match(name string) bool {
	switch p.kind {
	case wildcard:
		return p.re.MatchString(name)
	case dirPrefix:
		return strings.HasPrefix(name, p.raw) ||
			strings.Contains(name, "/"+p.raw)
	default:
		return name == p.raw ||
			strings.HasSuffix(name, "/"+p.raw)
	}
}

// Filter is an ordered pattern set, defaults first. It is read-only after
// construction and safe for concurrent use.
type Filter struct {
	patterns []Pattern
}

// NewFilter builds a filter from the built-in defaults plus extra patterns,
// typically the pre-split EXCLUDE_PATTERNS config value.
func NewFilter(extra []string) *Filter {
	patterns := make([]Pattern, 0, len(Defaults)+len(extra))
	for _, raw := range Defaults {
		patterns = append(patterns, Classify(raw))
	}
	for _, raw := range extra {
		patterns = append(patterns, Classify(raw))
	}
	return &Filter{patterns: patterns}
}

// ShouldExclude reports whether a file name is dropped. First match wins;
// there is no allow-list override.
func (f *Filter) ShouldExclude(name string) bool {
	for _, p := range f.patterns {
		if p.Match(name) {
			return true
		}
	}
	return false
}

// Apply drops excluded records, preserving order.
func (f *Filter) Apply(changes []diff.FileChange) []diff.FileChange {
	var kept []diff.FileChange
	for _, c := range changes {
		if f.ShouldExclude(c.FileName) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}
