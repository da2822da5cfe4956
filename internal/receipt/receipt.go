package receipt

import (
	"time"

	"github.com/zombor/receipt-ocr/internal/extraction"
	"github.com/zombor/receipt-ocr/internal/textclean"
)

// MethodText tags receipts created from already-recognized text.
const MethodText = "text"

// Receipt is a processed receipt together with the text it was read from
type Receipt struct {
	ID          string                   `json:"id"`
	Filename    string                   `json:"filename,omitempty"` // stored source file, empty for text input
	ContentType string                   `json:"content_type,omitempty"`
	OCRMethod   string                   `json:"ocr_method"`
	Variant     string                   `json:"variant,omitempty"`
	RawText     string                   `json:"raw_text"`
	CleanedText textclean.CleanedText    `json:"cleaned_text"`
	Metrics     textclean.QualityMetrics `json:"metrics"`
	Data        extraction.Record        `json:"data"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// apply copies an analysis onto the receipt.
func (r *Receipt) apply(a Analysis) {
	r.OCRMethod = a.Recognition.Method
	r.Variant = a.Recognition.Variant
	r.RawText = a.Recognition.Text
	r.CleanedText = a.CleanedText
	r.Metrics = a.Metrics
	r.Data = a.Data
}
