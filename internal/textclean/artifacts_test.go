package textclean_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zombor/receipt-ocr/internal/textclean"
)

var _ = Describe("StripArtifacts", func() {
	DescribeTable("noise removal",
		func(input, expected string) {
			Expect(textclean.StripArtifacts(input)).To(Equal(expected))
		},
		Entry("stray letter after a price", "4.99 a Bread", "4.99\nBread"),
		Entry("lone consonant before a capital", "Milk x Bread", "Milk Bread"),
		Entry("lone vowel is a word", "Milk a Bread", "Milk a Bread"),
		Entry("dotted leader", "Total.....5.00", "Total 5.00"),
		Entry("dashes between tokens", "Milk 1.00 -- Bread", "Milk 1.00 Bread"),
		Entry("single punctuation is kept", "Milk 1.00", "Milk 1.00"),
		Entry("empty text", "", ""),
	)
})
