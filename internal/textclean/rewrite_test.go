package textclean

import (
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("rewrite", func() {
	It("replaces with the stdlib engine", func() {
		rw := newRewrite(`(\d),(\d{2})`, "$1.$2")
		Expect(rw.look).To(BeNil())
		Expect(rw.apply("Milk 1,50")).To(Equal("Milk 1.50"))
	})

	It("bounds lookaround matches", func() {
		rw := newLookaround(`(?<=a)b`, "c")
		Expect(rw.look.MatchTimeout).To(Equal(matchTimeout))
		Expect(rw.apply("abab")).To(Equal("acac"))
	})

	It("leaves the text alone when a match times out", func() {
		rw := newLookaround(`^(a+)+$`, "x")
		rw.look.MatchTimeout = time.Millisecond
		text := strings.Repeat("a", 64) + "!"
		Expect(rw.apply(text)).To(Equal(text))
	})

	It("leaves the text alone without a pattern", func() {
		Expect(rewrite{}.apply("Milk")).To(Equal("Milk"))
	})
})
