package extraction

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// LineKind is what a receipt line was recognized as.
type LineKind int

const (
	LineUnknown LineKind = iota
	LineItem
	LineSubtotal
	LineTotalDiscount
	LineFinalTotal
	LinePayment
	LineChange
)

func (k LineKind) String() string {
	switch k {
	case LineItem:
		return "item"
	case LineSubtotal:
		return "subtotal"
	case LineTotalDiscount:
		return "total_discount"
	case LineFinalTotal:
		return "final_total"
	case LinePayment:
		return "payment"
	case LineChange:
		return "change"
	default:
		return "unknown"
	}
}

var (
	quantityPattern = regexp.MustCompile(`(?i)^(\d+)x\s*(.+)`)

	// Matched at word starts so that "coffee" is not an "off" line. A
	// capitalized "Off" glued to a lowercase letter ("MealDealOFF") also counts.
	discountPattern = regexp.MustCompile(`(?i:\b(?:discount|override|reduction|off|save))|[a-z]O[Ff][Ff]`)

	currencySymbols = strings.NewReplacer("£", "", "$", "", "€", "")
)

// Summary keywords that keep a line from being read as an item.
var reservedKeywords = []string{
	"total", "discount", "change", "cash", "card", "receipt", "thank", "admin", "manager",
}

// Checked in order; the first one found names the payment method.
var paymentMethods = []string{
	"cash", "card", "credit", "debit", "contactless", "chip", "pin",
}

// Classify reports what kind of line this is. Predicates are checked in
// priority order and the first match wins. Lines without an amount are
// always LineUnknown.
func Classify(line string) LineKind {
	line = strings.TrimSpace(line)
	if _, ok := findAmount(line); !ok {
		return LineUnknown
	}
	lower := strings.ToLower(line)

	switch {
	case isItemLine(line, lower):
		return LineItem
	case strings.Contains(lower, "sub") && strings.Contains(lower, "total"):
		return LineSubtotal
	case strings.Contains(lower, "discount") && strings.Contains(lower, "total"):
		return LineTotalDiscount
	case strings.HasPrefix(lower, "total") && !strings.Contains(lower, "sub") && !strings.Contains(lower, "discount"):
		return LineFinalTotal
	case paymentMethod(lower) != "":
		return LinePayment
	case strings.Contains(lower, "change"):
		return LineChange
	}
	return LineUnknown
}

func isItemLine(line, lower string) bool {
	for _, kw := range reservedKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	if utf8.RuneCountInString(strings.TrimSpace(currencySymbols.Replace(line))) <= 3 {
		return false
	}
	if quantityPattern.MatchString(line) {
		return true
	}
	return strings.HasSuffix(line, "0") || strings.HasSuffix(line, "5")
}

func isDiscountLine(line string) bool {
	if !discountPattern.MatchString(line) {
		return false
	}
	_, ok := findAmount(line)
	return ok
}

func paymentMethod(lower string) string {
	for _, m := range paymentMethods {
		if strings.Contains(lower, m) {
			return m
		}
	}
	return ""
}
