package extraction

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var amountPattern = regexp.MustCompile(`[£$€]?(\d+\.\d{2})`)

// amount is the first money amount on a line.
type amount struct {
	// token is the matched text, currency symbol included.
	token string
	value decimal.Decimal
}

// findAmount returns the first amount on the line. The amount is negative
// when a standalone minus sign precedes it: the '-' starts the line or
// follows whitespace or a currency symbol, and only whitespace or a currency
// symbol sits between it and the digits. Hyphens inside words and dates do
// not count.
func findAmount(line string) (amount, bool) {
	loc := amountPattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return amount{}, false
	}

	value, err := decimal.NewFromString(line[loc[2]:loc[3]])
	if err != nil {
		return amount{}, false
	}
	if hasMinusSign(line[:loc[0]]) {
		value = value.Neg()
	}
	return amount{token: line[loc[0]:loc[1]], value: value}, true
}

const signSeparators = " \t£$€"

func hasMinusSign(prefix string) bool {
	prefix = strings.TrimRight(prefix, signSeparators)
	if !strings.HasSuffix(prefix, "-") {
		return false
	}
	before, _ := utf8.DecodeLastRuneInString(strings.TrimSuffix(prefix, "-"))
	return before == utf8.RuneError || strings.ContainsRune(signSeparators, before)
}
