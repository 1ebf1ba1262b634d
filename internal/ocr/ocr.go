// Package ocr abstracts optional text recovery from slide images.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Engine recognizes text in an image. Implementations may shell out to a
// local binary or call a remote service; callers treat failures per image
// as non-fatal.
type Engine interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// Tesseract runs the tesseract binary over stdin/stdout.
type Tesseract struct {
	bin string
}

// NewTesseract probes for the tesseract binary. An error here means the
// backend is absent and OCR should be disabled for the whole run.
func NewTesseract() (*Tesseract, error) {
	bin, err := exec.LookPath("tesseract")
	if err != nil {
		return nil, fmt.Errorf("tesseract binary not found: %w", err)
	}
	return &Tesseract{bin: bin}, nil
}

func (t *Tesseract) Recognize(ctx context.Context, image []byte) (string, error) {
	cmd := exec.CommandContext(ctx, t.bin, "stdin", "stdout")
	cmd.Stdin = bytes.NewReader(image)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("tesseract failed: %w (%s)", err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(string(out)), nil
}
