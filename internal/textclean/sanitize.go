package textclean

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// CleanedText is an ordered list of non-empty, normalized lines.
type CleanedText []string

// String joins the lines with newlines.
func (t CleanedText) String() string {
	return strings.Join(t, "\n")
}

// Len returns the number of lines.
func (t CleanedText) Len() int {
	return len(t)
}

var symbolsOnly = regexp.MustCompile(`^[\p{P}\p{S}\s]+$`)

// Both insertions are zero-width so running them twice adds nothing.
var spacingRules = []rewrite{
	newLookaround(`(?<=[a-z0-9])(?=[A-Z][a-z]{2,})`, " "),
	newLookaround(`(?<=[a-zA-Z]):(?=[A-Z])`, ": "),
}

// Sanitize splits text into lines and normalizes each one. Empty lines,
// punctuation-only lines and single-character lines are dropped.
func Sanitize(text string) CleanedText {
	lines := CleanedText{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" || symbolsOnly.MatchString(line) {
			continue
		}
		if utf8.RuneCountInString(line) < 2 {
			continue
		}
		lines = append(lines, applyAll(line, spacingRules))
	}
	return lines
}
