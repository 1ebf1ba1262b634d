package deck

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"
)

// ExtractionError marks a deck that cannot be opened or parsed at all.
// It is the only fatal failure in the extraction stage.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("cannot read deck %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Open reads a .pptx archive into a Deck with slides in presentation
// order, numbered from 1.
func Open(filePath string) (*Deck, error) {
	zr, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, &ExtractionError{Path: filePath, Err: err}
	}
	defer zr.Close()

	d, err := readDeck(&zr.Reader)
	if err != nil {
		return nil, &ExtractionError{Path: filePath, Err: err}
	}
	return d, nil
}

// ReadDeck parses an in-memory .pptx archive. Used by the HTTP surface
// and tests; Open wraps it for files on disk.
func ReadDeck(data []byte) (*Deck, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ExtractionError{Path: "(upload)", Err: err}
	}
	d, err := readDeck(zr)
	if err != nil {
		return nil, &ExtractionError{Path: "(upload)", Err: err}
	}
	return d, nil
}

type presentationXML struct {
	SldIDs []struct {
		RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

type relationshipsXML struct {
	Rels []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type spXML struct {
	TxBody *txBodyXML `xml:"txBody"`
}

type txBodyXML struct {
	Paragraphs []struct {
		Runs []struct {
			Text string `xml:"t"`
		} `xml:"r"`
	} `xml:"p"`
}

type picXML struct {
	BlipFill struct {
		Blip struct {
			Embed string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships embed,attr"`
		} `xml:"blip"`
	} `xml:"blipFill"`
}

func readDeck(zr *zip.Reader) (*Deck, error) {
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	presData, err := readZipFile(files, "ppt/presentation.xml")
	if err != nil {
		return nil, fmt.Errorf("not a pptx archive: %w", err)
	}
	var pres presentationXML
	if err := xml.Unmarshal(presData, &pres); err != nil {
		return nil, fmt.Errorf("malformed presentation.xml: %w", err)
	}

	presRels, err := parseRels(files, "ppt/_rels/presentation.xml.rels")
	if err != nil {
		return nil, err
	}

	d := &Deck{}
	for i, sld := range pres.SldIDs {
		target, ok := presRels[sld.RID]
		if !ok {
			return nil, fmt.Errorf("slide relationship %q not found", sld.RID)
		}
		slidePath := resolveTarget("ppt", target)
		shapes, err := parseSlide(files, slidePath)
		if err != nil {
			return nil, fmt.Errorf("slide %d (%s): %w", i+1, slidePath, err)
		}
		d.Slides = append(d.Slides, Slide{Number: i + 1, Shapes: shapes})
	}
	return d, nil
}

func parseSlide(files map[string]*zip.File, slidePath string) ([]Shape, error) {
	data, err := readZipFile(files, slidePath)
	if err != nil {
		return nil, err
	}

	slideDir := path.Dir(slidePath)
	relsPath := path.Join(slideDir, "_rels", path.Base(slidePath)+".rels")
	slideRels := map[string]string{}
	if _, ok := files[relsPath]; ok {
		slideRels, err = parseRels(files, relsPath)
		if err != nil {
			return nil, err
		}
	}

	var shapes []Shape
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch se.Name.Local {
		case "sp":
			var sp spXML
			if err := dec.DecodeElement(&sp, &se); err != nil {
				return nil, err
			}
			shapes = append(shapes, richTextShape(sp))

		case "pic":
			var pic picXML
			if err := dec.DecodeElement(&pic, &se); err != nil {
				return nil, err
			}
			img := loadImage(files, slideDir, slideRels[pic.BlipFill.Blip.Embed])
			shapes = append(shapes, Shape{Kind: KindImage, Image: img})

		case "graphicFrame":
			// Tables carry their cell text as runs; flatten them into
			// one plain-text shape.
			texts, err := collectRunText(dec)
			if err != nil {
				return nil, err
			}
			if len(texts) > 0 {
				shapes = append(shapes, Shape{Kind: KindPlainText, Text: strings.Join(texts, "\n")})
			} else {
				shapes = append(shapes, Shape{Kind: KindOther})
			}

		case "grpSp", "cxnSp":
			if err := dec.Skip(); err != nil {
				return nil, err
			}
			shapes = append(shapes, Shape{Kind: KindOther})
		}
	}
	return shapes, nil
}

func richTextShape(sp spXML) Shape {
	if sp.TxBody == nil {
		return Shape{Kind: KindOther}
	}
	paragraphs := make([][]string, 0, len(sp.TxBody.Paragraphs))
	for _, p := range sp.TxBody.Paragraphs {
		runs := make([]string, 0, len(p.Runs))
		for _, r := range p.Runs {
			runs = append(runs, r.Text)
		}
		paragraphs = append(paragraphs, runs)
	}
	return Shape{Kind: KindRichText, Paragraphs: paragraphs}
}

// collectRunText consumes the remainder of the current element, returning
// the trimmed contents of every <a:t> run inside it.
func collectRunText(dec *xml.Decoder) ([]string, error) {
	var texts []string
	var buf strings.Builder
	depth := 1
	inT := false
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "t" {
				inT = true
				buf.Reset()
			}
		case xml.EndElement:
			depth--
			if inT && t.Name.Local == "t" {
				inT = false
				if s := strings.TrimSpace(buf.String()); s != "" {
					texts = append(texts, s)
				}
			}
		case xml.CharData:
			if inT {
				buf.Write(t)
			}
		}
	}
	return texts, nil
}

func loadImage(files map[string]*zip.File, baseDir, target string) []byte {
	if target == "" {
		return nil
	}
	data, err := readZipFile(files, resolveTarget(baseDir, target))
	if err != nil {
		return nil
	}
	return data
}

func parseRels(files map[string]*zip.File, name string) (map[string]string, error) {
	data, err := readZipFile(files, name)
	if err != nil {
		return nil, err
	}
	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, fmt.Errorf("malformed relationships %s: %w", name, err)
	}
	m := make(map[string]string, len(rels.Rels))
	for _, r := range rels.Rels {
		m[r.ID] = r.Target
	}
	return m, nil
}

func resolveTarget(baseDir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(baseDir, target)
}

func readZipFile(files map[string]*zip.File, name string) ([]byte, error) {
	f, ok := files[name]
	if !ok {
		return nil, fmt.Errorf("missing archive entry %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
