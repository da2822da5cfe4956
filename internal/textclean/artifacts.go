package textclean

var artifactRules = []rewrite{
	// "4.99 a Bread" -> "4.99\nBread": a lone glyph between a finished price
	// and the next capitalized word.
	newRewrite(`(\d\.\d{2})\s+[a-zA-Z]\s+([A-Z][a-zA-Z]+)`, "$1\n$2"),

	// A lone consonant between spaces, in front of a capitalized word. Vowels
	// are left alone since "a", "I" and friends are real words.
	newRewrite(`\s+[bcdfghjklmnpqrstvwxyzBCDFGHJKLMNPQRSTVWXYZ]\s+([A-Z])`, " $1"),

	// Runs of punctuation left over from dotted leaders and smudges.
	newRewrite(`\s*[,.\-+*]{2,}\s*`, " "),
}

// StripArtifacts removes noise glyphs OCR leaves between tokens. It only fires
// when the surrounding context is unambiguous.
func StripArtifacts(text string) string {
	return applyAll(text, artifactRules)
}
