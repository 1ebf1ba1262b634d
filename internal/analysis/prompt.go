package analysis

import (
	"fmt"
	"strings"

	"github.com/shivesh0001/ppt-checker/internal/deck"
)

// Scope selects the phrasing of the detection instructions: per-batch or
// whole-deck. The template is otherwise identical for both.
type Scope int

const (
	ScopeBatch Scope = iota
	ScopeDeck
)

func (s Scope) phrase() string {
	if s == ScopeDeck {
		return "across the entire presentation"
	}
	return "within these slides"
}

const promptTemplate = `You are an expert business analyst reviewing a slide presentation for inconsistencies.

CRITICAL INSTRUCTIONS:
- Only flag GENUINE business logic inconsistencies that would concern executives
- Ignore stylistic differences, synonyms, or different phrasings of the same concept
- Focus on factual/numerical conflicts, timeline errors, and logical contradictions
- Provide specific evidence with exact quotes
- Rate confidence 0.0-1.0 for each finding

INCONSISTENCY TYPES TO DETECT %s:
1. Numerical conflicts (revenue figures, percentages that don't add up, contradictory metrics)
2. Timeline mismatches (date conflicts, impossible sequences, chronological errors)
3. Logical contradictions (mutually exclusive statements about market, competition, etc.)
4. Data relationship errors (parts don't sum to whole, inconsistent breakdowns)

CONTENT TO ANALYZE:
%s

Respond in JSON format only:
{
    "inconsistencies": [
        {
            "type": "Numerical Conflict|Timeline Mismatch|Logical Contradiction|Data Relationship Error",
            "confidence": 0.85,
            "slides": [3, 8],
            "issue": "Brief description of the inconsistency",
            "evidence": [
                "Exact quote from slide 3",
                "Exact quote from slide 8"
            ]
        }
    ]
}

If no genuine inconsistencies are found, return: {"inconsistencies": []}`

// BuildPrompt renders the fixed instruction template around the content:
// either a formatted slide batch or the whole-deck digest.
func BuildPrompt(content string, scope Scope) string {
	return fmt.Sprintf(promptTemplate, scope.phrase(), content)
}

// FormatSlides renders a batch of slides for the model, one delimited
// block per slide with any OCR text appended.
func FormatSlides(slides []deck.SlideContent) string {
	parts := make([]string, 0, len(slides))
	for _, s := range slides {
		var b strings.Builder
		fmt.Fprintf(&b, "=== SLIDE %d ===\n", s.Number)
		b.WriteString(s.Text)
		if s.OCRText != "" {
			fmt.Fprintf(&b, "\n[OCR TEXT]: %s", s.OCRText)
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "\n\n")
}
