package scanning

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// transcriptionPrompt is shared by the vision model recognizers. The models
// act as an OCR engine: they return the printed text and nothing else, so the
// same cleaning pipeline runs on their output as on tesseract's.
const transcriptionPrompt = `You are an OCR engine reading a photo of a shop receipt.

Transcribe every line of printed text exactly as it appears, top to bottom:
- Keep one printed line per output line.
- Keep prices, quantities, dates and currency symbols exactly as printed.
- Do not correct spelling, translate, summarize or add totals.
- Do not add commentary or markdown.

Return only the transcribed text.`

// Gemini recognizes receipt text with Google Gemini.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini creates a Gemini recognizer.
func NewGemini(apiKey string, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0)

	return &Gemini{
		client: client,
		model:  model,
	}, nil
}

// Recognize transcribes the image. The pass only names the result; Gemini
// has no engine or segmentation modes.
func (g *Gemini) Recognize(ctx context.Context, png []byte, pass Pass) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := g.model.GenerateContent(ctx,
		genai.ImageData("png", png),
		genai.Text(transcriptionPrompt),
	)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response from gemini")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return cleanTranscription(text.String()), nil
}

// Close closes the Gemini client
func (g *Gemini) Close() error {
	return g.client.Close()
}
