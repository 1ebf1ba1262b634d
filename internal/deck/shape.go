// Package deck reads .pptx presentations into an ordered, uniform slide
// representation used by the analysis pipeline.
package deck

import (
	"strings"
)

// ShapeKind is a closed set of shape variants. Every kind exposes a
// uniform text extraction that returns "" for non-text kinds.
type ShapeKind int

const (
	KindOther ShapeKind = iota
	KindPlainText
	KindRichText
	KindImage
)

// Shape is one drawable element on a slide. Exactly one of the payload
// fields is meaningful, selected by Kind.
type Shape struct {
	Kind ShapeKind

	// Text holds pre-flattened text for KindPlainText (table cells).
	Text string

	// Paragraphs holds the run hierarchy for KindRichText: one inner
	// slice of runs per paragraph.
	Paragraphs [][]string

	// Image holds the embedded picture bytes for KindImage.
	Image []byte
}

// ExtractText returns the visible text of the shape, trimmed, or "" for
// image and other kinds.
func (s Shape) ExtractText() string {
	switch s.Kind {
	case KindPlainText:
		return strings.TrimSpace(s.Text)
	case KindRichText:
		var parts []string
		for _, runs := range s.Paragraphs {
			para := strings.TrimSpace(strings.Join(runs, ""))
			if para != "" {
				parts = append(parts, para)
			}
		}
		return strings.Join(parts, "\n")
	default:
		return ""
	}
}

// Slide is an ordered sequence of shapes, numbered from 1.
type Slide struct {
	Number int
	Shapes []Shape
}

// SlideContent is the uniform per-slide record consumed by analysis.
// Immutable once produced by the Extractor.
type SlideContent struct {
	Number  int
	Text    string
	OCRText string
}

// Deck is an opened presentation.
type Deck struct {
	Slides []Slide
}
