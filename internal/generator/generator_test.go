package generator_test

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/flowcase-warehouse/internal/extract"
	"github.com/frahmantamala/flowcase-warehouse/internal/generator"
	"github.com/frahmantamala/flowcase-warehouse/internal/transform"
)

func TestGenerator(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Generator Suite")
}

var _ = Describe("Generator", func() {
	var (
		logger *slog.Logger
		now    time.Time
	)

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		now = time.Date(2025, time.August, 15, 12, 0, 0, 0, time.UTC)
	})

	generate := func(users int, seed int64) string {
		gen := generator.NewGenerator(generator.Config{
			Users:       users,
			Seed:        seed,
			DaysForward: 7,
		}, logger)
		outDir, err := gen.Generate(GinkgoT().TempDir(), now)
		Expect(err).NotTo(HaveOccurred())
		return outDir
	}

	readHeader := func(path string) []string {
		f, err := os.Open(path)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()
		header, err := csv.NewReader(f).Read()
		Expect(err).NotTo(HaveOccurred())
		return header
	}

	It("should name the output folder after the current quarter", func() {
		outDir := generate(5, 1)
		Expect(filepath.Base(outDir)).To(Equal("Q32025"))
	})

	It("should write all fifteen report files", func() {
		outDir := generate(5, 1)
		entries, err := os.ReadDir(outDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(15))

		for _, name := range []string{
			"user_report.csv", "usage_report.csv", "project_experiences.csv",
			"certifications.csv", "courses.csv", "languages.csv", "technologies.csv",
			"key_qualifications.csv", "educations.csv", "work_experiences.csv",
			"positions.csv", "blogs.csv", "cv_roles.csv", "sc_clearance.csv",
			"availability_report.csv",
		} {
			_, err := os.Stat(filepath.Join(outDir, name))
			Expect(err).NotTo(HaveOccurred())
		}
	})

	It("should emit the export column headers", func() {
		outDir := generate(5, 1)

		userHeader := readHeader(filepath.Join(outDir, "user_report.csv"))
		Expect(userHeader[:6]).To(Equal([]string{
			"Name", "Name (multilang)", "Title (#{lang})", "Email", "UPN", "External User ID",
		}))
		Expect(userHeader).To(ContainElements("CV Partner User ID", "CV Partner CV ID", "SFIA Level", "CPD Label"))

		clearanceHeader := readHeader(filepath.Join(outDir, "sc_clearance.csv"))
		Expect(clearanceHeader).To(Equal([]string{
			"Email", "UPN", "External User ID", "CV Partner User ID",
			"Clearance", "Valid From", "Valid To", "Verified By", "Notes",
		}))

		availabilityHeader := readHeader(filepath.Join(outDir, "availability_report.csv"))
		Expect(availabilityHeader).To(Equal([]string{
			"Email", "UPN", "External User ID", "CV Partner User ID",
			"Date", "Percent Available", "Source",
		}))

		workHeader := readHeader(filepath.Join(outDir, "work_experiences.csv"))
		Expect(workHeader).To(ContainElement("Long Description"))
	})

	It("should be deterministic for the same seed", func() {
		first := generate(10, 42)
		second := generate(10, 42)

		a, err := os.ReadFile(filepath.Join(first, "user_report.csv"))
		Expect(err).NotTo(HaveOccurred())
		b, err := os.ReadFile(filepath.Join(second, "user_report.csv"))
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(b))
	})

	It("should generate populations smaller than the leadership role list", func() {
		outDir := generate(2, 3)

		f, err := os.Open(filepath.Join(outDir, "user_report.csv"))
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()
		records, err := csv.NewReader(f).ReadAll()
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(3)) // header plus one row per user
	})

	It("should produce output the extract and transform stages accept", func() {
		outDir := generate(20, 7)

		tables, err := extract.LoadReports(outDir)
		Expect(err).NotTo(HaveOccurred())

		data, err := transform.Transform(tables)
		Expect(err).NotTo(HaveOccurred())
		Expect(data.Users).To(HaveLen(20))
		Expect(data.CVs).To(HaveLen(20))
		Expect(data.Technologies).NotTo(BeEmpty())
		Expect(data.Clearances).To(HaveLen(20))
		Expect(data.Availability).NotTo(BeEmpty())

		for _, a := range data.Availability {
			Expect(a.PercentAvailable).To(BeNumerically(">=", 0))
			Expect(a.PercentAvailable).To(BeNumerically("<=", 100))
		}
	})

	Describe("CPD leveling", func() {
		It("should map SFIA levels onto CPD labels", func() {
			cases := []struct {
				sfia  int
				label string
			}{
				{2, "CPD1E"},
				{3, "CPD2L"},
				{4, "CPD3E"},
				{5, "CPD3L"},
				{6, "CPD4E"},
			}
			for _, c := range cases {
				_, _, label := generator.SFIAToCPD(c.sfia)
				Expect(label).To(Equal(c.label))
			}
		})
	})
})
