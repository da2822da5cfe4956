package scanning

import "strings"

// cleanTranscription strips the markdown fences vision models like to wrap
// their answers in, along with any leading "Here is the text:" chatter line.
func cleanTranscription(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		// Drop the opening fence and its optional language tag.
		if idx := strings.Index(text, "\n"); idx != -1 {
			text = text[idx+1:]
		} else {
			text = strings.TrimPrefix(text, "```")
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	} else if start := strings.Index(text, "```"); start != -1 {
		// Preamble before a fenced block
		body := text[start+3:]
		if idx := strings.Index(body, "\n"); idx != -1 {
			body = body[idx+1:]
		}
		if end := strings.LastIndex(body, "```"); end != -1 {
			body = body[:end]
		}
		text = body
	}

	return strings.TrimSpace(text)
}
