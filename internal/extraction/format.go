package extraction

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-£" + d.Abs().StringFixed(2)
	}
	return "£" + d.StringFixed(2)
}

// Format renders a record as a plain-text report. Summary and payment fields
// that were not found on the receipt are left out.
func Format(rec Record) string {
	var b strings.Builder

	b.WriteString("ITEMS PURCHASED:\n")
	if len(rec.Items) == 0 {
		b.WriteString("(none)\n")
	}
	for i, item := range rec.Items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.Name)
		fmt.Fprintf(&b, "   Quantity: %d\n", item.Quantity)
		fmt.Fprintf(&b, "   Unit Price: %s\n", money(item.UnitPrice))
		fmt.Fprintf(&b, "   Total Price: %s\n", money(item.TotalPrice))
		if item.Discount.IsPositive() {
			fmt.Fprintf(&b, "   Discount: -%s\n", money(item.Discount))
		}
		fmt.Fprintf(&b, "   Final Price: %s\n", money(item.FinalPrice))
	}

	b.WriteString("\nSUMMARY:\n")
	if rec.Subtotal.Valid {
		fmt.Fprintf(&b, "Subtotal: %s\n", money(rec.Subtotal.Value))
	}
	if rec.TotalDiscount.Valid {
		fmt.Fprintf(&b, "Total Discounts: -%s\n", money(rec.TotalDiscount.Value))
	}
	if rec.FinalTotal.Valid {
		fmt.Fprintf(&b, "Final Total: %s\n", money(rec.FinalTotal.Value))
	}

	b.WriteString("\nPAYMENT:\n")
	if rec.PaymentMethod != "" {
		fmt.Fprintf(&b, "Method: %s\n", strings.ToUpper(rec.PaymentMethod[:1])+rec.PaymentMethod[1:])
	}
	if rec.AmountPaid.Valid {
		fmt.Fprintf(&b, "Amount Paid: %s\n", money(rec.AmountPaid.Value))
	}
	if rec.ChangeGiven.Valid {
		fmt.Fprintf(&b, "Change Given: %s\n", money(rec.ChangeGiven.Value))
	}

	return strings.TrimRight(b.String(), "\n")
}
