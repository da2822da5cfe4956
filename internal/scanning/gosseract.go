//go:build gosseract

package scanning

import (
	"context"
	"fmt"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// Gosseract recognizes text through the libtesseract binding. A client holds
// engine state, so calls are serialized.
type Gosseract struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// NewGosseract creates a recognizer for the given tesseract language.
func NewGosseract(language string) (*Gosseract, error) {
	if language == "" {
		language = "eng"
	}
	client := gosseract.NewClient()
	if err := client.SetLanguage(language); err != nil {
		client.Close()
		return nil, fmt.Errorf("setting language: %w", err)
	}
	return &Gosseract{client: client}, nil
}

// Recognize runs one pass. The binding fixes the engine mode when the client
// is initialized, so only the page segmentation mode varies per pass.
func (g *Gosseract) Recognize(ctx context.Context, png []byte, pass Pass) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	psm := gosseract.PSM_AUTO
	if pass.PSM > 0 {
		psm = gosseract.PageSegMode(pass.PSM)
	}
	if err := g.client.SetPageSegMode(psm); err != nil {
		return "", fmt.Errorf("setting page segmentation mode: %w", err)
	}
	if err := g.client.SetImageFromBytes(png); err != nil {
		return "", fmt.Errorf("loading image: %w", err)
	}
	text, err := g.client.Text()
	if err != nil {
		return "", fmt.Errorf("gosseract %s pass: %w", pass.Name, err)
	}
	return text, nil
}

// Close releases the tesseract client.
func (g *Gosseract) Close() error {
	return g.client.Close()
}
