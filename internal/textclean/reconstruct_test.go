package textclean_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zombor/receipt-ocr/internal/textclean"
)

var _ = Describe("Reconstruct", func() {
	DescribeTable("line boundaries",
		func(input, expected string) {
			Expect(textclean.Reconstruct(input)).To(Equal(expected))
		},
		Entry("uppercase keyword after lowercase", "Coffee beansRECEIPT", "Coffee beans\nRECEIPT"),
		Entry("uppercase keyword after a space", "thanks THANK YOU", "thanks\n THANK YOU"),
		Entry("glued total", "milkTotal", "milk\nTotal"),
		Entry("glued subtotal keeps its prefix", "itemSubTotal5.00", "item\nSubTotal5.00"),
		Entry("spaced subtotal", "itemSub Total", "item\nSub Total"),
		Entry("grand total stays together", "Grand Total 5.00", "Grand Total 5.00"),
		Entry("glued discount", "breadDiscount -0.50", "bread\nDiscount -0.50"),
		Entry("staff discount stays together", "Staff Discount", "Staff Discount"),
		Entry("total discount stays together", "TotalDiscount", "TotalDiscount"),
		Entry("quantity prefix", "Bread 2x Milk", "Bread\n 2x Milk"),
		Entry("currency price before a capital", "£1.50 Bread", "£1.50\n Bread"),
		Entry("bare price before a word", "1.50 Bread", "1.50\n Bread"),
		Entry("slash date", "Store12/05/2024", "Store\n12/05/2024"),
		Entry("dash date", "Date 12-05-2024", "Date\n 12-05-2024"),
		Entry("clock time", "Time 14:30", "Time\n 14:30"),
		Entry("nothing to split", "Milk", "Milk"),
	)

	Describe("Rules", func() {
		It("returns the table in class order", func() {
			rules := textclean.Rules()
			Expect(rules).NotTo(BeEmpty())
			for i := 1; i < len(rules); i++ {
				Expect(rules[i].Class).To(BeNumerically(">=", rules[i-1].Class))
			}
		})

		It("gives every rule a unique name", func() {
			seen := map[string]bool{}
			for _, r := range textclean.Rules() {
				Expect(seen).NotTo(HaveKey(r.Name))
				seen[r.Name] = true
			}
		})

		It("returns a copy", func() {
			rules := textclean.Rules()
			rules[0] = textclean.Rule{Name: "changed"}
			Expect(textclean.Rules()[0].Name).To(Equal("receipt"))
		})
	})

	Describe("ReconstructWith", func() {
		var priceRules []textclean.Rule

		BeforeEach(func() {
			priceRules = nil
			for _, r := range textclean.Rules() {
				if r.Class == textclean.PriceBoundary {
					priceRules = append(priceRules, r)
				}
			}
		})

		It("applies only the given rules", func() {
			Expect(textclean.ReconstructWith("milkTotal 1.50 Bread", priceRules)).
				To(Equal("milkTotal 1.50\n Bread"))
		})

		It("leaves text alone with no rules", func() {
			Expect(textclean.ReconstructWith("milkTotal", nil)).To(Equal("milkTotal"))
		})
	})
})
