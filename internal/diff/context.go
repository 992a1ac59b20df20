package diff

import "strings"

// AIContext renders a file change as prompt input: the file name followed by
// each hunk with +/-/space prefixes restored.
func (fc FileChange) AIContext() string {
	var b strings.Builder

	b.WriteString("File: " + fc.FileName + "\n\n")

	for _, h := range ParseHunks(fc.DiffText) {
		b.WriteString("Hunk:\n")

		for _, l := range h.Lines {
			prefix := " "
			switch l.Type {
			case Added:
				prefix = "+"
			case Removed:
				prefix = "-"
			}
			b.WriteString(prefix + l.Content + "\n")
		}
	}

	return b.String()
}
