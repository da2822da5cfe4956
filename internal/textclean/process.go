// Package textclean turns raw OCR output into normalized receipt lines and
// scores how much the result looks like a receipt.
package textclean

import "log/slog"

// Process runs the full cleaning pipeline: character correction, artifact
// stripping, line reconstruction and sanitizing, then scores the result.
func Process(raw string) (CleanedText, QualityMetrics) {
	if raw == "" {
		return CleanedText{}, QualityMetrics{}
	}
	slog.Debug("raw OCR text", "text", raw)

	text := Correct(raw)
	text = StripArtifacts(text)
	text = Reconstruct(text)
	cleaned := Sanitize(text)

	slog.Debug("cleaned OCR text", "lines", cleaned.Len(), "text", cleaned.String())
	return cleaned, Score(cleaned)
}
