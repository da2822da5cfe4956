package receipt

import (
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zombor/receipt-ocr/internal/extraction"
	"github.com/zombor/receipt-ocr/internal/textclean"
)

var _ = Describe("BoltDB", func() {
	var (
		tmpDir string
		db     *BoltDB
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		var err error
		db, err = NewBoltDB(filepath.Join(tmpDir, "test.db"))
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Describe("SaveReceipt", func() {
		var receipt *Receipt

		BeforeEach(func() {
			cleaned, metrics := textclean.Process(sampleOCR)
			receipt = &Receipt{
				ID:          "test-id",
				Filename:    "test.jpg",
				ContentType: "image/jpeg",
				OCRMethod:   "simple",
				RawText:     sampleOCR,
				CleanedText: cleaned,
				Metrics:     metrics,
				Data:        extraction.Parse(cleaned),
				CreatedAt:   time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
				UpdatedAt:   time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			}
		})

		It("round-trips the receipt", func() {
			Expect(db.SaveReceipt(receipt)).To(Succeed())

			saved, err := db.GetReceipt("test-id")
			Expect(err).NotTo(HaveOccurred())
			Expect(saved.RawText).To(Equal(sampleOCR))
			Expect(saved.CleanedText).To(Equal(receipt.CleanedText))
			Expect(saved.Metrics).To(Equal(receipt.Metrics))
			Expect(saved.CreatedAt.Equal(receipt.CreatedAt)).To(BeTrue())
		})

		It("keeps missing amounts distinct from zero", func() {
			Expect(db.SaveReceipt(receipt)).To(Succeed())

			saved, err := db.GetReceipt("test-id")
			Expect(err).NotTo(HaveOccurred())
			Expect(saved.Data.Subtotal.Valid).To(BeFalse())
			Expect(saved.Data.FinalTotal.Valid).To(BeTrue())
			Expect(saved.Data.FinalTotal.Value.StringFixed(2)).To(Equal("3.00"))
			Expect(saved.Data.Items[0].TotalPrice.StringFixed(2)).To(Equal("3.00"))
		})

		It("replaces an existing receipt", func() {
			Expect(db.SaveReceipt(receipt)).To(Succeed())
			receipt.OCRMethod = "basic"
			Expect(db.SaveReceipt(receipt)).To(Succeed())

			saved, err := db.GetReceipt("test-id")
			Expect(err).NotTo(HaveOccurred())
			Expect(saved.OCRMethod).To(Equal("basic"))
		})
	})

	Describe("GetReceipt", func() {
		When("receipt does not exist", func() {
			It("returns ErrNotFound", func() {
				_, err := db.GetReceipt("missing")
				Expect(err).To(MatchError(ErrNotFound))
				Expect(err.Error()).To(ContainSubstring("missing"))
			})
		})
	})

	Describe("ListReceipts", func() {
		When("the database is empty", func() {
			It("returns an empty list", func() {
				receipts, err := db.ListReceipts()
				Expect(err).NotTo(HaveOccurred())
				Expect(receipts).NotTo(BeNil())
				Expect(receipts).To(BeEmpty())
			})
		})

		When("receipts exist", func() {
			BeforeEach(func() {
				base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
				Expect(db.SaveReceipt(&Receipt{ID: "a", CreatedAt: base})).To(Succeed())
				Expect(db.SaveReceipt(&Receipt{ID: "b", CreatedAt: base.Add(2 * time.Hour)})).To(Succeed())
				Expect(db.SaveReceipt(&Receipt{ID: "c", CreatedAt: base.Add(time.Hour)})).To(Succeed())
			})

			It("returns them newest first", func() {
				receipts, err := db.ListReceipts()
				Expect(err).NotTo(HaveOccurred())
				ids := []string{}
				for _, r := range receipts {
					ids = append(ids, r.ID)
				}
				Expect(ids).To(Equal([]string{"b", "c", "a"}))
			})
		})
	})

	Describe("DeleteReceipt", func() {
		BeforeEach(func() {
			Expect(db.SaveReceipt(&Receipt{ID: "gone"})).To(Succeed())
		})

		It("removes the receipt", func() {
			Expect(db.DeleteReceipt("gone")).To(Succeed())
			_, err := db.GetReceipt("gone")
			Expect(err).To(MatchError(ErrNotFound))
		})

		It("reports unknown receipts", func() {
			Expect(db.DeleteReceipt("missing")).To(MatchError(ErrNotFound))
		})
	})

	Describe("NewBoltDB", func() {
		It("fails for a path in a missing directory", func() {
			_, err := NewBoltDB(filepath.Join(tmpDir, "nope", "test.db"))
			Expect(err).To(HaveOccurred())
		})
	})
})
