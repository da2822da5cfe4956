// Package extraction turns cleaned receipt lines into structured receipt data.
package extraction

import (
	"bytes"

	"github.com/shopspring/decimal"
)

// OptionalAmount is a money amount that may be absent from the receipt.
// Absent amounts marshal to JSON null.
type OptionalAmount struct {
	Value decimal.Decimal
	Valid bool
}

// Some wraps a known amount.
func Some(d decimal.Decimal) OptionalAmount {
	return OptionalAmount{Value: d, Valid: true}
}

func (o OptionalAmount) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return o.Value.MarshalJSON()
}

func (o *OptionalAmount) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = OptionalAmount{}
		return nil
	}
	if err := o.Value.UnmarshalJSON(data); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// Item is one purchased line.
type Item struct {
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Discount   decimal.Decimal `json:"discount"`
	FinalPrice decimal.Decimal `json:"final_price"`
}

// applyDiscount records a discount magnitude against the item.
func (i *Item) applyDiscount(amount decimal.Decimal) {
	i.Discount = amount.Abs()
	i.FinalPrice = i.TotalPrice.Sub(i.Discount)
}

// Record is everything extracted from one receipt.
type Record struct {
	Items         []Item         `json:"items"`
	Subtotal      OptionalAmount `json:"subtotal"`
	TotalDiscount OptionalAmount `json:"total_discount"`
	FinalTotal    OptionalAmount `json:"final_total"`
	// PaymentMethod is empty when no payment line was found.
	PaymentMethod string         `json:"payment_method"`
	AmountPaid    OptionalAmount `json:"amount_paid"`
	ChangeGiven   OptionalAmount `json:"change_given"`
}
