package receipt

import (
	"log/slog"

	"github.com/zombor/receipt-ocr/internal/extraction"
	"github.com/zombor/receipt-ocr/internal/scanning"
	"github.com/zombor/receipt-ocr/internal/textclean"
)

// Analysis is the cleaned, scored and parsed form of one recognition.
type Analysis struct {
	Recognition scanning.Recognition     `json:"recognition"`
	CleanedText textclean.CleanedText    `json:"cleaned_text"`
	Metrics     textclean.QualityMetrics `json:"metrics"`
	Data        extraction.Record        `json:"data"`
}

// Analyze cleans every recognition, keeps the one with the best quality
// score and parses it. With no recognitions the result is empty and tagged
// scanning.MethodNone.
func Analyze(recognitions []scanning.Recognition) Analysis {
	candidates := make([]textclean.Candidate, len(recognitions))
	for i, rec := range recognitions {
		cleaned, metrics := textclean.Process(rec.Text)
		candidates[i] = textclean.Candidate{Text: cleaned, Metrics: metrics}
	}

	best := textclean.Best(candidates)
	if best == -1 {
		return Analysis{
			Recognition: scanning.Recognition{Method: scanning.MethodNone},
			CleanedText: textclean.CleanedText{},
			Data:        extraction.Parse(nil),
		}
	}
	if len(candidates) > 1 {
		slog.Debug("selected recognition",
			"variant", recognitions[best].Variant,
			"method", recognitions[best].Method,
			"quality_score", candidates[best].Metrics.QualityScore,
		)
	}

	return Analysis{
		Recognition: recognitions[best],
		CleanedText: candidates[best].Text,
		Metrics:     candidates[best].Metrics,
		Data:        extraction.Parse(candidates[best].Text),
	}
}

// AnalyzeText runs the pipeline on text that was recognized elsewhere.
func AnalyzeText(raw string) Analysis {
	return Analyze([]scanning.Recognition{{Text: raw, Method: MethodText}})
}
