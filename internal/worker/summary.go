package worker

import (
	"fmt"
	"strings"

	"prsentinel/internal/review"
)

type reviewSummary struct {
	TotalIssues      int
	PostedComments   int
	SeverityCounters map[string]int
	CostUSD          float64
}

func newSummary() reviewSummary {
	return reviewSummary{
		SeverityCounters: map[string]int{
			"critical": 0,
			"high":     0,
			"medium":   0,
			"low":      0,
		},
	}
}

func (s *reviewSummary) Add(is review.Issue) {
	s.TotalIssues++

	sev := strings.ToLower(is.Severity)
	if _, ok := s.SeverityCounters[sev]; !ok {
		sev = "low"
	}
	s.SeverityCounters[sev]++
}

func formatSummaryComment(s reviewSummary) string {
	var b strings.Builder

	b.WriteString("## Automated review summary\n\n")

	if s.TotalIssues == 0 {
		b.WriteString("No issues detected in the reviewed changes.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Total issues found: %d\n", s.TotalIssues)
	fmt.Fprintf(&b, "Line comments posted: %d\n\n", s.PostedComments)

	fmt.Fprintf(&b, "Critical: %d\n", s.SeverityCounters["critical"])
	fmt.Fprintf(&b, "High: %d\n", s.SeverityCounters["high"])
	fmt.Fprintf(&b, "Medium: %d\n", s.SeverityCounters["medium"])
	fmt.Fprintf(&b, "Low: %d\n\n", s.SeverityCounters["low"])

	fmt.Fprintf(&b, "Estimated cost (USD): %.4f\n", s.CostUSD)

	return b.String()
}
