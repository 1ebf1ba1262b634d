package deck

import (
	"context"
	"log"
	"strings"

	"github.com/shivesh0001/ppt-checker/internal/ocr"
)

// Extractor produces the uniform SlideContent records for a deck.
type Extractor struct {
	// OCR recovers text from embedded images when non-nil.
	OCR ocr.Engine
}

// Extract walks the deck in slide order. Per-slide OCR failures are
// logged and recorded as empty OCR text; they never abort the rest of
// the deck.
func (e *Extractor) Extract(ctx context.Context, d *Deck) []SlideContent {
	contents := make([]SlideContent, 0, len(d.Slides))
	for _, s := range d.Slides {
		var parts []string
		for _, sh := range s.Shapes {
			if t := sh.ExtractText(); t != "" {
				parts = append(parts, t)
			}
		}

		ocrText := ""
		if e.OCR != nil {
			t, err := e.ocrSlide(ctx, s)
			if err != nil {
				log.Printf("warning: OCR failed for slide %d: %v", s.Number, err)
			} else {
				ocrText = t
			}
		}

		contents = append(contents, SlideContent{
			Number:  s.Number,
			Text:    strings.Join(parts, "\n"),
			OCRText: ocrText,
		})
	}
	return contents
}

func (e *Extractor) ocrSlide(ctx context.Context, s Slide) (string, error) {
	var parts []string
	for _, sh := range s.Shapes {
		if sh.Kind != KindImage || len(sh.Image) == 0 {
			continue
		}
		t, err := e.OCR.Recognize(ctx, sh.Image)
		if err != nil {
			return "", err
		}
		if t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n"), nil
}
