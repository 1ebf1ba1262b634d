package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shivesh0001/ppt-checker/internal/deck"
)

func TestSummarizeCollectsNumbersAndDates(t *testing.T) {
	slides := []deck.SlideContent{
		{Number: 1, Text: "Revenue of $10M in 2024, up 25%"},
		{Number: 2, Text: "No figures on this slide"},
		{Number: 3, Text: "Launch on 3/15/2025"},
	}

	summary := Summarize(slides)
	lines := strings.Split(summary, "\n")

	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Slide 1:")
	assert.Contains(t, lines[0], "$10M")
	assert.Contains(t, lines[0], "25%")
	assert.Contains(t, lines[0], "2024")
	assert.Contains(t, lines[1], "Slide 3:")
	assert.Contains(t, lines[1], "3/15/2025")
}

func TestSummarizeOmitsSlidesWithoutMatches(t *testing.T) {
	slides := []deck.SlideContent{
		{Number: 1, Text: "Our mission and our vision"},
		{Number: 2, Text: "Strategy without any figures"},
	}

	assert.Equal(t, "", Summarize(slides))
}

func TestSummarizeMonthDayYearDates(t *testing.T) {
	slides := []deck.SlideContent{
		{Number: 4, Text: "Kickoff on January 15, 2025"},
	}

	summary := Summarize(slides)

	assert.Contains(t, summary, "January 15, 2025")
}
