package textclean

import (
	"math"
	"regexp"
	"unicode/utf8"
)

var (
	moneyPattern = regexp.MustCompile(`[£$€]?\d+\.\d{2}`)
	datePattern  = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)
)

// QualityMetrics describes how receipt-like a cleaned text looks.
type QualityMetrics struct {
	TextLength        int     `json:"text_length"`
	LinesCount        int     `json:"lines_count"`
	MoneyAmountsFound int     `json:"money_amounts_found"`
	DatesFound        int     `json:"dates_found"`
	QualityScore      float64 `json:"quality_score"`
}

// Score computes quality metrics for cleaned text. Text length counts runes of
// the newline-joined text.
func Score(text CleanedText) QualityMetrics {
	joined := text.String()
	m := QualityMetrics{
		TextLength:        utf8.RuneCountInString(joined),
		LinesCount:        text.Len(),
		MoneyAmountsFound: len(moneyPattern.FindAllStringIndex(joined, -1)),
		DatesFound:        len(datePattern.FindAllStringIndex(joined, -1)),
	}

	score := 0.3*float64(m.MoneyAmountsFound) +
		0.2*float64(m.DatesFound) +
		0.3*math.Min(float64(m.LinesCount)/10, 1) +
		0.2*math.Min(float64(m.TextLength)/500, 1)
	m.QualityScore = math.Min(score, 1)
	return m
}

// Candidate is one cleaned reading of a receipt competing for selection.
type Candidate struct {
	Text    CleanedText
	Metrics QualityMetrics
}

// Best returns the index of the highest-scoring candidate. Ties go to the
// earlier candidate; an empty slice returns -1.
func Best(candidates []Candidate) int {
	best := -1
	for i, c := range candidates {
		if best == -1 || c.Metrics.QualityScore > candidates[best].Metrics.QualityScore {
			best = i
		}
	}
	return best
}
