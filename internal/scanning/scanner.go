package scanning

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/disintegration/imaging"
)

// Image variants a Scanner can read.
const (
	VariantEnhanced = "enhanced"
	VariantOriginal = "original"
)

// Scanner defines the interface for turning receipt files into OCR text
type Scanner interface {
	// Scan decodes a receipt image or PDF and returns one recognition per
	// image variant read, best-prepared variant first.
	Scan(ctx context.Context, data []byte, contentType string) ([]Recognition, error)
	// Close closes the scanner and releases resources
	Close() error
}

// ScannerConfig configures an OCRScanner.
type ScannerConfig struct {
	// Passes defaults to DefaultPasses.
	Passes []Pass
	// CompareVariants also reads the grayscale image without resizing or
	// enhancement, for callers that pick the better-scoring text.
	CompareVariants bool
}

type variant struct {
	name string
	img  image.Image
}

// OCRScanner implements Scanner on top of a Recognizer.
type OCRScanner struct {
	recognizer Recognizer
	reader     *Reader
	compare    bool
}

// NewOCRScanner creates a scanner that owns the recognizer.
func NewOCRScanner(recognizer Recognizer, cfg ScannerConfig) *OCRScanner {
	return &OCRScanner{
		recognizer: recognizer,
		reader:     NewReader(recognizer, cfg.Passes...),
		compare:    cfg.CompareVariants,
	}
}

// Scan fails only when the data cannot be decoded; recognition problems come
// back as a recognition tagged MethodNone.
func (s *OCRScanner) Scan(ctx context.Context, data []byte, contentType string) ([]Recognition, error) {
	img, err := DecodeImage(data, contentType)
	if err != nil {
		return nil, err
	}

	variants := []variant{{VariantEnhanced, Normalize(img)}}
	if s.compare {
		variants = append(variants, variant{VariantOriginal, imaging.Grayscale(img)})
	}

	recognitions := make([]Recognition, 0, len(variants))
	for _, v := range variants {
		png, err := encodePNG(v.img)
		if err != nil {
			return nil, fmt.Errorf("preparing %s image: %w", v.name, err)
		}
		rec := s.reader.Read(ctx, png)
		rec.Variant = v.name
		slog.Info("receipt read", "variant", v.name, "method", rec.Method, "length", len(rec.Text))
		recognitions = append(recognitions, rec)
	}
	return recognitions, nil
}

// Close closes the underlying recognizer.
func (s *OCRScanner) Close() error {
	return s.recognizer.Close()
}
