//go:build !gosseract

package scanning

import "context"

// Gosseract is only available when built with the gosseract tag, which needs
// libtesseract and cgo.
type Gosseract struct{}

// NewGosseract always fails with ErrEngineUnavailable in this build.
func NewGosseract(language string) (*Gosseract, error) {
	return nil, ErrEngineUnavailable
}

func (*Gosseract) Recognize(ctx context.Context, png []byte, pass Pass) (string, error) {
	return "", ErrEngineUnavailable
}

func (*Gosseract) Close() error {
	return nil
}
