package extraction

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/zombor/receipt-ocr/internal/textclean"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func equalDecimal(s string) OmegaMatcher {
	return WithTransform(func(d decimal.Decimal) string { return d.StringFixed(2) }, Equal(dec(s).StringFixed(2)))
}

var _ = Describe("Parser", func() {
	var (
		lines  textclean.CleanedText
		parser Parser
		record Record
	)

	BeforeEach(func() {
		parser = Parser{}
	})

	JustBeforeEach(func() {
		record = parser.Parse(lines)
	})

	When("an item is followed by a discount line", func() {
		BeforeEach(func() {
			lines = textclean.CleanedText{"2x Milk 3.00", "Discount -0.50"}
		})

		It("links the discount to the item", func() {
			Expect(record.Items).To(HaveLen(1))
			item := record.Items[0]
			Expect(item.Name).To(Equal("Milk"))
			Expect(item.Quantity).To(Equal(2))
			Expect(item.UnitPrice).To(equalDecimal("1.50"))
			Expect(item.TotalPrice).To(equalDecimal("3.00"))
			Expect(item.Discount).To(equalDecimal("0.50"))
			Expect(item.FinalPrice).To(equalDecimal("2.50"))
		})

		It("consumes the discount line", func() {
			Expect(record.TotalDiscount.Valid).To(BeFalse())
		})
	})

	When("an item is followed by another item", func() {
		BeforeEach(func() {
			lines = textclean.CleanedText{"Milk 1.50", "Coffee 2.00"}
		})

		It("does not treat the second item as a discount", func() {
			Expect(record.Items).To(HaveLen(2))
			Expect(record.Items[0].Discount.IsZero()).To(BeTrue())
			Expect(record.Items[0].FinalPrice).To(equalDecimal("1.50"))
			Expect(record.Items[1].Name).To(Equal("Coffee"))
		})
	})

	When("item names contain hyphens", func() {
		BeforeEach(func() {
			lines = textclean.CleanedText{"STORE", "Semi-Skimmed Milk 1.50", "2x Coca-Cola 3.00"}
		})

		It("keeps the prices positive", func() {
			Expect(record.Items).To(HaveLen(2))
			Expect(record.Items[0].Name).To(Equal("Semi-Skimmed Milk"))
			Expect(record.Items[0].TotalPrice).To(equalDecimal("1.50"))
			Expect(record.Items[0].FinalPrice).To(equalDecimal("1.50"))
			Expect(record.Items[1].Name).To(Equal("Coca-Cola"))
			Expect(record.Items[1].UnitPrice).To(equalDecimal("1.50"))
			Expect(record.Items[1].TotalPrice).To(equalDecimal("3.00"))
		})
	})

	When("a discount keyword is glued to the previous word", func() {
		BeforeEach(func() {
			lines = textclean.CleanedText{"Meal Deal 3.00", "MealDealOFF -0.50"}
		})

		It("still links the discount to the item", func() {
			Expect(record.Items).To(HaveLen(1))
			Expect(record.Items[0].Discount).To(equalDecimal("0.50"))
			Expect(record.Items[0].FinalPrice).To(equalDecimal("2.50"))
		})
	})

	When("a negative line is read as an item", func() {
		BeforeEach(func() {
			lines = textclean.CleanedText{"Coffee -0.50"}
		})

		It("drops the dangling sign from the name", func() {
			Expect(record.Items).To(HaveLen(1))
			Expect(record.Items[0].Name).To(Equal("Coffee"))
			Expect(record.Items[0].TotalPrice).To(equalDecimal("-0.50"))
		})
	})

	When("the subtotal is written as two words", func() {
		BeforeEach(func() {
			lines = textclean.CleanedText{"Sub Total 10.00"}
		})

		It("is a subtotal and not a final total", func() {
			Expect(record.Subtotal.Valid).To(BeTrue())
			Expect(record.Subtotal.Value).To(equalDecimal("10.00"))
			Expect(record.FinalTotal.Valid).To(BeFalse())
		})
	})

	When("the receipt has a header", func() {
		BeforeEach(func() {
			lines = textclean.CleanedText{"TESCO STORES", "High Street", "VAT 123", "Bread 1.20"}
		})

		It("skips it", func() {
			Expect(record.Items).To(HaveLen(1))
			Expect(record.Items[0].Name).To(Equal("Bread"))
		})
	})

	When("a summary line appears twice", func() {
		BeforeEach(func() {
			lines = textclean.CleanedText{"Total 5.00", "Total 6.00", "Card 6.00", "Cash 7.00"}
		})

		It("keeps the last value", func() {
			Expect(record.FinalTotal.Value).To(equalDecimal("6.00"))
			Expect(record.PaymentMethod).To(Equal("cash"))
			Expect(record.AmountPaid.Value).To(equalDecimal("7.00"))
		})
	})

	When("a receipt has every summary line", func() {
		BeforeEach(func() {
			lines = textclean.CleanedText{
				"TESCO STORES",
				"Milk 1.50",
				"Bread 1.20",
				"Subtotal 2.70",
				"Total Discount -0.20",
				"Total 2.50",
				"Card 2.50",
				"Change 0.00",
			}
		})

		It("fills the record", func() {
			Expect(record.Items).To(HaveLen(2))
			Expect(record.Subtotal.Value).To(equalDecimal("2.70"))
			Expect(record.TotalDiscount.Value).To(equalDecimal("0.20"))
			Expect(record.FinalTotal.Value).To(equalDecimal("2.50"))
			Expect(record.PaymentMethod).To(Equal("card"))
			Expect(record.AmountPaid.Value).To(equalDecimal("2.50"))
		})

		It("keeps a zero amount distinct from a missing one", func() {
			Expect(record.ChangeGiven.Valid).To(BeTrue())
			Expect(record.ChangeGiven.Value.IsZero()).To(BeTrue())
		})
	})

	When("the text is empty", func() {
		BeforeEach(func() {
			lines = textclean.CleanedText{}
		})

		It("returns an empty record", func() {
			Expect(record.Items).NotTo(BeNil())
			Expect(record.Items).To(BeEmpty())
			Expect(record.Subtotal.Valid).To(BeFalse())
			Expect(record.FinalTotal.Valid).To(BeFalse())
			Expect(record.AmountPaid.Valid).To(BeFalse())
			Expect(record.ChangeGiven.Valid).To(BeFalse())
			Expect(record.PaymentMethod).To(BeEmpty())
		})
	})

	When("an item line has no name", func() {
		BeforeEach(func() {
			lines = textclean.CleanedText{"2x 10.00"}
		})

		It("discards it", func() {
			Expect(record.Items).To(BeEmpty())
		})
	})

	When("the header is configured", func() {
		BeforeEach(func() {
			parser = Parser{HeaderLines: 1}
			lines = textclean.CleanedText{"STORE", "Milk 1.50"}
		})

		It("still parses items", func() {
			Expect(record.Items).To(HaveLen(1))
		})
	})
})

var _ = Describe("Parse", func() {
	It("extracts a receipt from raw OCR text", func() {
		cleaned, _ := textclean.Process("2xMilk3.00\nTotal3.00\nCash5.00\nChange2.00")
		record := Parse(cleaned)

		Expect(record.Items).To(HaveLen(1))
		Expect(record.Items[0].Name).To(Equal("Milk"))
		Expect(record.Items[0].Quantity).To(Equal(2))
		Expect(record.Items[0].TotalPrice).To(equalDecimal("3.00"))
		Expect(record.FinalTotal.Value).To(equalDecimal("3.00"))
		Expect(record.PaymentMethod).To(Equal("cash"))
		Expect(record.AmountPaid.Value).To(equalDecimal("5.00"))
		Expect(record.ChangeGiven.Value).To(equalDecimal("2.00"))
		Expect(record.Subtotal.Valid).To(BeFalse())
	})

	It("never panics on noise", func() {
		for _, text := range []string{"", "£", "-\n-\n-", "1x", "x1.00", "Total -", "9999999999999999999x Tea 1.00"} {
			cleaned, _ := textclean.Process(text)
			Expect(func() { Parse(cleaned) }).NotTo(Panic())
		}
	})
})
