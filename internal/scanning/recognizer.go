package scanning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"
)

var (
	// ErrEngineUnavailable is returned when a recognizer was not built in.
	ErrEngineUnavailable = errors.New("OCR engine not available in this build")
	// ErrRecognition wraps a failed OCR pass.
	ErrRecognition = errors.New("recognition failed")
)

// MethodNone tags a recognition where no pass produced text.
const MethodNone = "none"

// Minimum length, in characters, a non-final pass must exceed to be accepted.
const defaultMinLength = 20

// Pass is one OCR configuration. Zero OEM or PSM leaves the engine default.
type Pass struct {
	Name string
	OEM  int
	PSM  int
}

// DefaultPasses is a default pass followed by an explicit LSTM engine,
// single-block page segmentation fallback.
func DefaultPasses() []Pass {
	return []Pass{
		{Name: "simple"},
		{Name: "basic", OEM: 3, PSM: 6},
	}
}

// Recognizer turns a PNG image into text.
type Recognizer interface {
	Recognize(ctx context.Context, png []byte, pass Pass) (string, error)
	Close() error
}

// Recognition is the text a Reader settled on and the pass that produced it.
type Recognition struct {
	Text    string `json:"text"`
	Method  string `json:"method"`
	Variant string `json:"variant,omitempty"`
}

// Reader runs recognition passes in order until one is good enough.
type Reader struct {
	recognizer Recognizer
	passes     []Pass
	minLength  int
}

// NewReader creates a Reader. With no passes, DefaultPasses is used.
func NewReader(recognizer Recognizer, passes ...Pass) *Reader {
	if len(passes) == 0 {
		passes = DefaultPasses()
	}
	return &Reader{recognizer: recognizer, passes: passes, minLength: defaultMinLength}
}

// Read never fails. A pass error is logged and the next pass is tried. Every
// pass but the last must return more than minLength characters; the last
// accepts any non-empty text. If nothing is accepted the method is MethodNone.
func (r *Reader) Read(ctx context.Context, png []byte) Recognition {
	for i, pass := range r.passes {
		if ctx.Err() != nil {
			slog.Warn("OCR cancelled", "pass", pass.Name, "error", ctx.Err())
			break
		}

		text, err := r.recognizer.Recognize(ctx, png, pass)
		if err != nil {
			slog.Warn("OCR pass failed", "pass", pass.Name, "error", fmt.Errorf("%w: %w", ErrRecognition, err))
			continue
		}
		text = strings.TrimSpace(text)

		final := i == len(r.passes)-1
		if text == "" || (!final && utf8.RuneCountInString(text) <= r.minLength) {
			slog.Debug("OCR pass rejected", "pass", pass.Name, "length", utf8.RuneCountInString(text))
			continue
		}
		slog.Debug("OCR pass accepted", "pass", pass.Name, "length", utf8.RuneCountInString(text))
		return Recognition{Text: text, Method: pass.Name}
	}
	return Recognition{Method: MethodNone}
}
