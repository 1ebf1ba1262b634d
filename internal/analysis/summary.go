package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shivesh0001/ppt-checker/internal/deck"
)

// Surface-level token patterns. Deliberately loose: they feed a compact
// digest for the global pass, not a semantic parse of business numbers.
var (
	numberPattern = regexp.MustCompile(`\$?[\d,]+\.?\d*[%MBK]?`)
	datePattern   = regexp.MustCompile(`\b\d{4}\b|\b\d{1,2}/\d{1,2}/\d{2,4}\b|\b\w+\s+\d{1,2},?\s+\d{4}\b`)
)

// Summarize builds the whole-deck digest sent on the global pass: one
// line per slide listing its numeric and date-like tokens. Slides with
// no matches are omitted, so the digest stays small regardless of deck
// size.
func Summarize(slides []deck.SlideContent) string {
	var lines []string
	for _, s := range slides {
		numbers := numberPattern.FindAllString(s.Text, -1)
		dates := datePattern.FindAllString(s.Text, -1)
		if len(numbers) == 0 && len(dates) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("Slide %d: Numbers: [%s], Dates: [%s]",
			s.Number, strings.Join(numbers, ", "), strings.Join(dates, ", ")))
	}
	return strings.Join(lines, "\n")
}
