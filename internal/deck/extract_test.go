package deck

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEngine recognizes image bytes verbatim and crashes on the payload
// "bad".
type stubEngine struct{}

func (stubEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	if string(image) == "bad" {
		return "", errors.New("ocr crashed")
	}
	return "IMG:" + string(image), nil
}

func TestExtractOneRecordPerSlide(t *testing.T) {
	data := buildPPTX(t, []string{
		slideXML(spWithText("Revenue $10M")),
		slideXML(""),
		slideXML(spWithText("Costs $4M")),
	}, nil)
	d, err := ReadDeck(data)
	require.NoError(t, err)

	e := &Extractor{}
	contents := e.Extract(context.Background(), d)

	require.Len(t, contents, 3)
	assert.Equal(t, SlideContent{Number: 1, Text: "Revenue $10M"}, contents[0])
	assert.Equal(t, SlideContent{Number: 2, Text: ""}, contents[1])
	assert.Equal(t, SlideContent{Number: 3, Text: "Costs $4M"}, contents[2])
}

func TestExtractJoinsShapesWithNewlines(t *testing.T) {
	data := buildPPTX(t, []string{
		slideXML(spWithText("  Title  ") + spWithText("Body") + `<p:sp></p:sp>`),
	}, nil)
	d, err := ReadDeck(data)
	require.NoError(t, err)

	e := &Extractor{}
	contents := e.Extract(context.Background(), d)

	require.Len(t, contents, 1)
	assert.Equal(t, "Title\nBody", contents[0].Text)
}

func TestExtractWithOCR(t *testing.T) {
	pic := func(rid string) string {
		return `<p:pic><p:blipFill><a:blip r:embed="` + rid + `"/></p:blipFill></p:pic>`
	}
	rels := func(rid, target string) []byte {
		return []byte(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`<Relationship Id="` + rid + `" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="` + target + `"/>` +
			`</Relationships>`)
	}
	data := buildPPTX(t, []string{
		slideXML(spWithText("With chart") + pic("rId9")),
		slideXML(pic("rId9")),
		slideXML(spWithText("Plain slide")),
	}, map[string][]byte{
		"ppt/slides/_rels/slide1.xml.rels": rels("rId9", "../media/good.png"),
		"ppt/slides/_rels/slide2.xml.rels": rels("rId9", "../media/bad.png"),
		"ppt/media/good.png":               []byte("chart"),
		"ppt/media/bad.png":                []byte("bad"),
	})
	d, err := ReadDeck(data)
	require.NoError(t, err)

	e := &Extractor{OCR: stubEngine{}}
	contents := e.Extract(context.Background(), d)

	require.Len(t, contents, 3)
	assert.Equal(t, "IMG:chart", contents[0].OCRText)
	// Slide 2's OCR failure degrades to empty text without aborting the
	// rest of the deck.
	assert.Equal(t, "", contents[1].OCRText)
	assert.Equal(t, "Plain slide", contents[2].Text)
}

func TestExtractWithoutEngineLeavesOCRTextEmpty(t *testing.T) {
	data := buildPPTX(t, []string{slideXML(spWithText("Hello"))}, nil)
	d, err := ReadDeck(data)
	require.NoError(t, err)

	e := &Extractor{}
	contents := e.Extract(context.Background(), d)

	assert.Equal(t, "", contents[0].OCRText)
}
