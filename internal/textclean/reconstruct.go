package textclean

// BoundaryClass groups reconstruction rules by the kind of boundary they detect.
type BoundaryClass int

const (
	KeywordBoundary BoundaryClass = iota
	QuantityBoundary
	PriceBoundary
	DateTimeBoundary
)

func (c BoundaryClass) String() string {
	switch c {
	case KeywordBoundary:
		return "keyword"
	case QuantityBoundary:
		return "quantity"
	case PriceBoundary:
		return "price"
	case DateTimeBoundary:
		return "datetime"
	default:
		return "unknown"
	}
}

// Rule is one line-boundary detector. The replacement splits the match in
// two by putting a newline between the captured halves.
type Rule struct {
	Name  string
	Class BoundaryClass
	rewrite
}

// Apply runs the rule once over the whole text.
func (r Rule) Apply(text string) string {
	return r.apply(text)
}

func splitRule(name string, class BoundaryClass, pattern string) Rule {
	return Rule{Name: name, Class: class, rewrite: newRewrite(pattern, "$1\n$2")}
}

func guardedSplitRule(name string, class BoundaryClass, pattern string) Rule {
	return Rule{Name: name, Class: class, rewrite: newLookaround(pattern, "$1\n$2")}
}

// Rules are applied top to bottom. Capitalized keywords must be glued to a
// lowercase letter so that "Grand Total" or "Staff Discount" stay on one line.
var boundaryRules = []Rule{
	splitRule("receipt", KeywordBoundary, `([a-z])(\s*RECEIPT)`),
	splitRule("sales", KeywordBoundary, `([a-z])(\s*SALES)`),
	splitRule("thank", KeywordBoundary, `([a-z])(\s*THANK)`),
	splitRule("subtotal", KeywordBoundary, `([a-z])(Sub ?[Tt]otal)`),
	guardedSplitRule("total", KeywordBoundary, `([a-z])(?<!\b(?:[Ss]ub|[Dd]iscount))(Total)`),
	guardedSplitRule("discount", KeywordBoundary, `([a-z])(?<!\b[Tt]otal)(Discount)`),
	splitRule("qty", KeywordBoundary, `([a-z])(Qty\b)`),
	splitRule("items", KeywordBoundary, `([a-z])(Items?\b)`),
	splitRule("transaction", KeywordBoundary, `([a-z])(Transaction)`),

	splitRule("quantity", QuantityBoundary, `([a-z])(\s*\d+x\s*[A-Z])`),

	splitRule("currency-price", PriceBoundary, `([£$€]\d+\.\d{2})(\s+[A-Z])`),
	splitRule("price", PriceBoundary, `(\d+\.\d{2})(\s+[A-Z][a-zA-Z])`),

	splitRule("slash-date", DateTimeBoundary, `([a-z])(\s*\d{1,2}/\d{1,2}/\d)`),
	splitRule("dash-date", DateTimeBoundary, `([a-z])(\s*\d{1,2}-\d{1,2}-\d)`),
	splitRule("time", DateTimeBoundary, `([a-z])(\s*\d{1,2}:\d{2})`),
}

// Rules returns a copy of the reconstruction table in application order.
func Rules() []Rule {
	out := make([]Rule, len(boundaryRules))
	copy(out, boundaryRules)
	return out
}

// Reconstruct re-inserts line breaks that OCR collapsed, using the default
// rule table.
func Reconstruct(text string) string {
	return ReconstructWith(text, boundaryRules)
}

// ReconstructWith applies the given rules in order.
func ReconstructWith(text string, rules []Rule) string {
	for _, r := range rules {
		text = r.Apply(text)
	}
	return text
}
