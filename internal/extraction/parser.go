package extraction

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/zombor/receipt-ocr/internal/textclean"
)

const defaultHeaderLines = 3

var (
	leadingNoise  = regexp.MustCompile(`^[\d\s\p{P}]+`)
	trailingNoise = regexp.MustCompile(`[\s\p{Pd}.,:;*+]+$`)
)

// Parser extracts items and totals from cleaned receipt text. A Parser has no
// state between calls and is safe for concurrent use.
type Parser struct {
	// HeaderLines is how many leading lines may hold the store header.
	// Zero means three.
	HeaderLines int
}

// Parse runs a zero-config Parser over text.
func Parse(text textclean.CleanedText) Record {
	return Parser{}.Parse(text)
}

// Parse makes one forward pass over the lines with one line of lookahead for
// item discounts. Lines that cannot be classified are skipped. When a summary
// line appears more than once the last one wins.
func (p Parser) Parse(text textclean.CleanedText) Record {
	headerLines := p.HeaderLines
	if headerLines <= 0 {
		headerLines = defaultHeaderLines
	}

	lines := make([]string, 0, len(text))
	for _, l := range text {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}

	rec := Record{Items: []Item{}}
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		amt, hasAmount := findAmount(line)
		if !hasAmount {
			if i < headerLines {
				slog.Debug("skipping header line", "line", line)
			}
			continue
		}

		switch Classify(line) {
		case LineItem:
			item, ok := parseItem(line)
			if !ok {
				slog.Debug("discarding item line", "line", line)
				continue
			}
			if i+1 < len(lines) && isDiscountLine(lines[i+1]) {
				discount, _ := findAmount(lines[i+1])
				item.applyDiscount(discount.value)
				i++
			}
			rec.Items = append(rec.Items, item)
		case LineSubtotal:
			rec.Subtotal = Some(amt.value)
		case LineTotalDiscount:
			rec.TotalDiscount = Some(amt.value.Abs())
		case LineFinalTotal:
			rec.FinalTotal = Some(amt.value)
		case LinePayment:
			rec.PaymentMethod = paymentMethod(strings.ToLower(line))
			rec.AmountPaid = Some(amt.value)
		case LineChange:
			rec.ChangeGiven = Some(amt.value)
		}
	}
	return rec
}

func parseItem(line string) (Item, bool) {
	quantity := 1
	remainder := line
	if m := quantityPattern.FindStringSubmatch(line); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			quantity = n
		}
		remainder = m[2]
	}

	amt, ok := findAmount(remainder)
	if !ok {
		return Item{}, false
	}

	name := strings.ReplaceAll(remainder, amt.token, "")
	name = leadingNoise.ReplaceAllString(name, "")
	name = trailingNoise.ReplaceAllString(name, "")
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return Item{}, false
	}

	return Item{
		Name:       name,
		Quantity:   quantity,
		UnitPrice:  amt.value.Div(decimal.NewFromInt(int64(quantity))).Round(2),
		TotalPrice: amt.value,
		Discount:   decimal.Zero,
		FinalPrice: amt.value,
	}, true
}
