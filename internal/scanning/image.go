package scanning

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log/slog"
	"math"
	"mime"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

const (
	targetWidth = 1000
	minHeight   = 600
	maxHeight   = 1600

	lowContrast    = 30.0
	darkBrightness = 50.0
	blurThreshold  = 100.0
)

// ImageStats summarizes the luminance of an image.
type ImageStats struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Sharpness  float64 `json:"sharpness"`
}

// LowContrast reports whether OCR is likely to struggle with faint print.
func (s ImageStats) LowContrast() bool { return s.Contrast < lowContrast }

// Dark reports an underexposed photo.
func (s ImageStats) Dark() bool { return s.Brightness < darkBrightness }

// Blurry reports a low edge response.
func (s ImageStats) Blurry() bool { return s.Sharpness < blurThreshold }

// ReadFile reads a receipt file and guesses its content type from the
// extension. A missing file wraps ErrImageNotFound.
func ReadFile(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: %s", ErrImageNotFound, path)
		}
		return nil, "", fmt.Errorf("reading image: %w", err)
	}
	return data, mime.TypeByExtension(filepath.Ext(path)), nil
}

// LoadImage reads and decodes the image at path.
func LoadImage(path string) (image.Image, error) {
	data, contentType, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeImage(data, contentType)
}

// Normalize prepares a receipt photo for OCR: grayscale, resized into the
// size band the engines read best, with a light lift for faint or dark scans.
func Normalize(img image.Image) *image.NRGBA {
	out := resizeForOCR(imaging.Grayscale(img))

	stats := AnalyzeImage(out)
	if stats.LowContrast() {
		out = imaging.AdjustContrast(out, 10)
	}
	if stats.Dark() {
		out = imaging.AdjustBrightness(out, 10)
	}
	if stats.Blurry() {
		out = imaging.Sharpen(out, 0.5)
	}
	slog.Debug("normalized image",
		"width", stats.Width,
		"height", stats.Height,
		"brightness", stats.Brightness,
		"contrast", stats.Contrast,
		"sharpness", stats.Sharpness,
	)
	return out
}

// resizeForOCR scales landscape images to a fixed width and clamps portrait
// images into [minHeight, maxHeight], keeping the aspect ratio.
func resizeForOCR(img *image.NRGBA) *image.NRGBA {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return img
	}

	switch {
	case w > h && w != targetWidth:
		return imaging.Resize(img, targetWidth, 0, resampleFilter(w < targetWidth))
	case w <= h && h < minHeight:
		return imaging.Resize(img, 0, minHeight, resampleFilter(true))
	case w <= h && h > maxHeight:
		return imaging.Resize(img, 0, maxHeight, resampleFilter(false))
	}
	return img
}

func resampleFilter(upscale bool) imaging.ResampleFilter {
	if upscale {
		return imaging.CatmullRom
	}
	return imaging.Box
}

var laplacian = [9]float64{
	0, 1, 0,
	1, -4, 1,
	0, 1, 0,
}

// AnalyzeImage measures brightness (mean luminance), contrast (standard
// deviation of luminance) and sharpness (variance of the Laplacian response).
func AnalyzeImage(img image.Image) ImageStats {
	gray := imaging.Grayscale(img)
	stats := ImageStats{Width: gray.Bounds().Dx(), Height: gray.Bounds().Dy()}
	if stats.Width == 0 || stats.Height == 0 {
		return stats
	}

	stats.Brightness, stats.Contrast = luminance(gray)
	_, edge := luminance(imaging.Convolve3x3(gray, laplacian, nil))
	stats.Sharpness = edge * edge
	return stats
}

// luminance returns the mean and standard deviation of the red channel of a
// grayscale image.
func luminance(img *image.NRGBA) (mean, stddev float64) {
	var sum, sumSq float64
	n := 0
	for i := 0; i+3 < len(img.Pix); i += 4 {
		v := float64(img.Pix[i])
		sum += v
		sumSq += v * v
		n++
	}
	if n == 0 {
		return 0, 0
	}
	mean = sum / float64(n)
	return mean, math.Sqrt(math.Max(sumSq/float64(n)-mean*mean, 0))
}
