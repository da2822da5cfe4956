package extraction

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

var _ = Describe("findAmount", func() {
	DescribeTable("signed amounts",
		func(line, token, value string) {
			amt, ok := findAmount(line)
			Expect(ok).To(BeTrue())
			Expect(amt.token).To(Equal(token))
			Expect(amt.value.Equal(decimal.RequireFromString(value))).To(BeTrue(), "got %s", amt.value)
		},
		Entry("bare amount", "Milk 3.00", "3.00", "3.00"),
		Entry("currency amount", "Milk £3.00", "£3.00", "3.00"),
		Entry("negative currency amount", "-£1.00", "£1.00", "-1.00"),
		Entry("spaced minus", "Discount - 0.50", "0.50", "-0.50"),
		Entry("dashed date before the amount", "12-05-2024 Tea 3.00", "3.00", "3.00"),
		Entry("first amount wins", "Tea 1.50 2.00", "1.50", "1.50"),
		Entry("hyphenated name", "Semi-Skimmed Milk 1.50", "1.50", "1.50"),
		Entry("hyphen glued to the amount", "Coca-Cola-1.50", "1.50", "1.50"),
		Entry("minus after a word", "Offer -£1.00", "£1.00", "-1.00"),
		Entry("minus after the currency symbol", "£-1.00", "1.00", "-1.00"),
	)

	It("reports lines without an amount", func() {
		_, ok := findAmount("TESCO STORES")
		Expect(ok).To(BeFalse())
	})

	It("needs two decimal places", func() {
		_, ok := findAmount("Milk 3.0")
		Expect(ok).To(BeFalse())
	})
})
