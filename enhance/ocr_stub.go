//go:build !ocr

package enhance

import (
	"context"
	"errors"
)

// ErrOCRNotEnabled is returned when OCR is used without the "ocr" build tag.
// Rebuild with -tags ocr and Tesseract installed to enable recognition.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Tesseract is the stub ImageText used when OCR support is not compiled in.
// IsAvailable always reports false, so enhancement skips image text cleanly.
type Tesseract struct{}

// NewTesseract returns the stub client. Construction succeeds so callers can
// wire OCR unconditionally and rely on IsAvailable.
func NewTesseract() (*Tesseract, error) {
	return &Tesseract{}, nil
}

// SetLanguage is a no-op on the stub.
func (t *Tesseract) SetLanguage(lang string) error { return ErrOCRNotEnabled }

// Close is a no-op on the stub.
func (t *Tesseract) Close() error { return nil }

// IsAvailable always reports false without the "ocr" build tag.
func (t *Tesseract) IsAvailable() bool { return false }

// ExtractText always fails on the stub.
func (t *Tesseract) ExtractText(ctx context.Context, image []byte) (string, float64, error) {
	return "", 0, ErrOCRNotEnabled
}
