package logdir_test

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/afero"

	"github.com/angeloszaimis/keep-alive/internal/logdir"
)

var _ = Describe("Ensure", func() {
	var fs afero.Fs

	BeforeEach(func() {
		fs = afero.NewMemMapFs()
	})

	It("should create a missing directory", func() {
		created, err := logdir.Ensure(fs, "logs")
		Expect(err).NotTo(HaveOccurred())
		Expect(created).To(Equal([]string{"logs"}))

		exists, err := afero.DirExists(fs, "logs")
		Expect(err).NotTo(HaveOccurred())
		Expect(exists).To(BeTrue())
	})

	It("should create nested directories", func() {
		created, err := logdir.Ensure(fs, "logs", "var/log/keepalive")
		Expect(err).NotTo(HaveOccurred())
		Expect(created).To(ConsistOf("logs", "var/log/keepalive"))
	})

	It("should leave existing directories alone", func() {
		Expect(fs.MkdirAll("logs", 0o755)).To(Succeed())

		created, err := logdir.Ensure(fs, "logs")
		Expect(err).NotTo(HaveOccurred())
		Expect(created).To(BeEmpty())
	})

	It("should skip empty and current directory entries", func() {
		created, err := logdir.Ensure(fs, "", ".")
		Expect(err).NotTo(HaveOccurred())
		Expect(created).To(BeEmpty())
	})

	It("should fail when a file occupies the path", func() {
		Expect(afero.WriteFile(fs, "logs", []byte("x"), 0o644)).To(Succeed())

		_, err := logdir.Ensure(fs, "logs")
		Expect(err).To(MatchError(os.ErrExist))
	})

	It("should fail when the filesystem refuses to create it", func() {
		_, err := logdir.Ensure(afero.NewReadOnlyFs(afero.NewMemMapFs()), "logs")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("failed to create logs directory"))
	})
})
