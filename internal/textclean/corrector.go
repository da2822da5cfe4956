package textclean

import "strings"

// literalFixes are recurring misreads fixed verbatim before any pattern runs.
var literalFixes = []struct{ from, to string }{
	{"-£0,50", "-£0.50"},
	{"£0,50", "£0.50"},
}

var characterFixes = []rewrite{
	// -£-1.00 -> -£1.00
	newRewrite(`-([£$€])-(\d)`, "-$1$2"),

	// O/o and I/l read in place of 0 and 1, only when both neighbours are digits.
	newRewrite(`(\d)[Oo](\d)`, "${1}0${2}"),
	newRewrite(`(\d)[Il](\d)`, "${1}1${2}"),

	// Same confusion straight after a currency symbol.
	newRewrite(`([£$€])[Oo](\d)`, "${1}0${2}"),
	newRewrite(`([£$€])[Il](\d)`, "${1}1${2}"),

	// Comma read in place of the decimal point in two-decimal amounts.
	// The bare rule starts only at the head of a digit run.
	newLookaround(`([£$€])(\d+),(\d{2})(?!\d)`, "$1$2.$3"),
	newLookaround(`(?<!\d)(\d+),(\d{2})(?=\s|$)`, "$1.$2"),
}

// Correct repairs isolated character-level OCR misreads. Every substitution is
// anchored on digits or a currency symbol, so ordinary words pass through.
func Correct(text string) string {
	for _, fix := range literalFixes {
		text = strings.ReplaceAll(text, fix.from, fix.to)
	}
	return applyAll(text, characterFixes)
}
