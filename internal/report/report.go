// Package report renders analysis results for the console, a file, or
// the HTTP surface.
package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/shivesh0001/ppt-checker/internal/analysis"
)

// Report is the JSON shape returned by the serve mode.
type Report struct {
	RunID          string             `json:"run_id"`
	SlidesAnalyzed int                `json:"slides_analyzed"`
	IssuesFound    int                `json:"issues_found"`
	Findings       []analysis.Finding `json:"findings"`
}

const rule = "=================================================="

// Render produces the fixed textual report layout.
func Render(findings []analysis.Finding, totalSlides int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "=== POWERPOINT INCONSISTENCY REPORT ===\n")
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "Slides Analyzed: %d\n", totalSlides)
	fmt.Fprintf(&b, "Issues Found: %d\n\n", len(findings))

	if len(findings) == 0 {
		b.WriteString("No significant inconsistencies detected!\n\n")
		b.WriteString("Note: Only inconsistencies with 70%+ confidence are shown.\n")
	} else {
		for i, f := range findings {
			fmt.Fprintf(&b, "%d. %s (Confidence: %.1f)\n", i+1, f.Type, f.Confidence)
			fmt.Fprintf(&b, "   Slides: %s\n", joinInts(f.Slides))
			fmt.Fprintf(&b, "   Issue: %s\n", f.Issue)
			b.WriteString("   Evidence:\n")
			for _, e := range f.Evidence {
				fmt.Fprintf(&b, "   - %s\n", e)
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "%s\n", rule)
	b.WriteString("Analysis complete. Review findings carefully for business impact.\n")
	fmt.Fprintf(&b, "%s", rule)

	return b.String()
}

// WriteFile saves the rendered report verbatim.
func WriteFile(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to save report to '%s': %w", path, err)
	}
	return nil
}

func joinInts(nums []int) string {
	parts := make([]string, 0, len(nums))
	for _, n := range nums {
		parts = append(parts, fmt.Sprintf("%d", n))
	}
	return strings.Join(parts, ", ")
}
