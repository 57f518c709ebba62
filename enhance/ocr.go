//go:build ocr

package enhance

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract is an ImageText backed by the Tesseract engine via gosseract.
// It requires Tesseract installed on the system and the "ocr" build tag.
type Tesseract struct {
	client *gosseract.Client
}

// NewTesseract creates an OCR client. Close it when no longer needed.
func NewTesseract() (*Tesseract, error) {
	return &Tesseract{client: gosseract.NewClient()}, nil
}

// SetLanguage sets the recognition language(s), "+"-separated for multiple
// (e.g. "eng+kor"). Default is "eng".
func (t *Tesseract) SetLanguage(lang string) error {
	return t.client.SetLanguage(lang)
}

// Close releases Tesseract resources.
func (t *Tesseract) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}

// IsAvailable reports whether the client is usable.
func (t *Tesseract) IsAvailable() bool {
	return t != nil && t.client != nil
}

// ExtractText recognizes text in an image. Confidence is estimated from the
// fraction of word-like output, since Tesseract's per-word confidences are
// not exposed through the plain text call.
func (t *Tesseract) ExtractText(ctx context.Context, image []byte) (string, float64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}
	if err := t.client.SetImageFromBytes(image); err != nil {
		return "", 0, fmt.Errorf("enhance: set OCR image: %w", err)
	}

	text, err := t.client.Text()
	if err != nil {
		return "", 0, fmt.Errorf("enhance: OCR failed: %w", err)
	}

	text = strings.TrimSpace(text)
	return text, recognitionConfidence(text), nil
}

// recognitionConfidence scores OCR output by how much of it looks like real
// words rather than recognition noise.
func recognitionConfidence(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}
	wordlike := 0
	for _, w := range words {
		letters := 0
		for _, r := range w {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				letters++
			}
		}
		if n := len([]rune(w)); n >= 2 && n <= 20 && letters*2 >= n {
			wordlike++
		}
	}
	return float64(wordlike) / float64(len(words))
}
