package scanning

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// Runner executes an external command.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// TesseractConfig configures the tesseract command line.
type TesseractConfig struct {
	Binary      string
	Language    string
	TessdataDir string
}

// Tesseract recognizes text by running the tesseract binary.
type Tesseract struct {
	cfg    TesseractConfig
	runner Runner
}

// NewTesseract creates a Tesseract recognizer. Binary defaults to "tesseract"
// on PATH and Language to "eng".
func NewTesseract(cfg TesseractConfig) *Tesseract {
	return NewTesseractWithRunner(cfg, execRunner{})
}

// NewTesseractWithRunner creates a Tesseract recognizer with a custom command
// runner (useful for testing).
func NewTesseractWithRunner(cfg TesseractConfig, runner Runner) *Tesseract {
	if cfg.Binary == "" {
		cfg.Binary = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	return &Tesseract{cfg: cfg, runner: runner}
}

func (t *Tesseract) Recognize(ctx context.Context, png []byte, pass Pass) (string, error) {
	tmp, err := os.CreateTemp("", "receipt-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("creating temp image: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(png); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing temp image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing temp image: %w", err)
	}

	stdout, stderr, err := t.runner.Run(ctx, t.cfg.Binary, t.args(tmp.Name(), pass)...)
	if err != nil {
		return "", fmt.Errorf("tesseract %s pass: %w: %s", pass.Name, err, truncate(string(stderr), 512))
	}
	return string(stdout), nil
}

func (t *Tesseract) args(imagePath string, pass Pass) []string {
	args := []string{imagePath, "stdout", "-l", t.cfg.Language}
	if pass.OEM > 0 {
		args = append(args, "--oem", strconv.Itoa(pass.OEM))
	}
	if pass.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(pass.PSM))
	}
	if t.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", t.cfg.TessdataDir)
	}
	return args
}

// Close is a no-op; every pass runs its own process.
func (t *Tesseract) Close() error {
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
