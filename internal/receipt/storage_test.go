package receipt

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LocalStorage", func() {
	var (
		tmpDir  string
		storage Storage
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		var err error
		storage, err = NewLocalStorage(filepath.Join(tmpDir, "files"))
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Save", func() {
		var (
			filename  string
			savedPath string
			err       error
		)

		BeforeEach(func() {
			filename = "test.jpg"
		})

		JustBeforeEach(func() {
			savedPath, err = storage.Save(filename, []byte("test file content"))
		})

		It("writes the file and returns its key", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(savedPath).To(Equal("test.jpg"))
			Expect(filepath.Join(tmpDir, "files", "test.jpg")).To(BeAnExistingFile())
		})

		When("the name tries to leave the directory", func() {
			BeforeEach(func() {
				filename = "../../escape.jpg"
			})

			It("keeps the file inside the directory", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(savedPath).To(Equal("escape.jpg"))
				Expect(filepath.Join(tmpDir, "files", "escape.jpg")).To(BeAnExistingFile())
				Expect(filepath.Join(tmpDir, "escape.jpg")).NotTo(BeAnExistingFile())
			})
		})

		When("the name is empty", func() {
			BeforeEach(func() {
				filename = ""
			})

			It("returns an error", func() {
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Get", func() {
		BeforeEach(func() {
			_, err := storage.Save("test.jpg", []byte("content"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("reads the file back", func() {
			data, err := storage.Get("test.jpg")
			Expect(err).NotTo(HaveOccurred())
			Expect(data).To(Equal([]byte("content")))
		})

		It("reports missing files as not found", func() {
			_, err := storage.Get("missing.jpg")
			Expect(err).To(MatchError(ErrNotFound))
		})
	})

	Describe("Delete", func() {
		BeforeEach(func() {
			_, err := storage.Save("test.jpg", []byte("content"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("removes the file", func() {
			Expect(storage.Delete("test.jpg")).To(Succeed())
			_, statErr := os.Stat(filepath.Join(tmpDir, "files", "test.jpg"))
			Expect(os.IsNotExist(statErr)).To(BeTrue())
		})

		It("fails for a missing file", func() {
			Expect(storage.Delete("missing.jpg")).NotTo(Succeed())
		})
	})
})
