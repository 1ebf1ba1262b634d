package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivesh0001/ppt-checker/internal/analysis"
)

func TestRenderWithFindings(t *testing.T) {
	findings := []analysis.Finding{
		{
			Type:       analysis.TypeNumericalConflict,
			Confidence: 0.9,
			Slides:     []int{2, 5},
			Issue:      "Revenue mismatch",
			Evidence:   []string{"$10M", "$12M"},
		},
		{
			Type:       analysis.TypeTimelineMismatch,
			Confidence: 0.75,
			Slides:     []int{3},
			Issue:      "Launch precedes kickoff",
			Evidence:   []string{"Launch: Q1"},
		},
	}

	text := Render(findings, 13)

	assert.Contains(t, text, "=== POWERPOINT INCONSISTENCY REPORT ===")
	assert.Contains(t, text, "Slides Analyzed: 13")
	assert.Contains(t, text, "Issues Found: 2")
	assert.Contains(t, text, "1. Numerical Conflict (Confidence: 0.9)")
	assert.Contains(t, text, "   Slides: 2, 5")
	assert.Contains(t, text, "   Issue: Revenue mismatch")
	assert.Contains(t, text, "   - $10M")
	assert.Contains(t, text, "2. Timeline Mismatch (Confidence: 0.8)")
	assert.Contains(t, text, "Review findings carefully for business impact.")
}

func TestRenderEmptyNamesThreshold(t *testing.T) {
	text := Render(nil, 7)

	assert.Contains(t, text, "Issues Found: 0")
	assert.Contains(t, text, "No significant inconsistencies detected!")
	assert.Contains(t, text, "70%+ confidence")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	text := Render(nil, 1)

	require.NoError(t, WriteFile(path, text))

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, text, string(saved))
}
