package pipeline_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/flowcase-warehouse/internal"
	dm "github.com/frahmantamala/flowcase-warehouse/internal/core/datamodel/warehouse"
	"github.com/frahmantamala/flowcase-warehouse/internal/generator"
	"github.com/frahmantamala/flowcase-warehouse/internal/pipeline"
	warehousePostgres "github.com/frahmantamala/flowcase-warehouse/internal/warehouse/postgres"
)

func TestPipeline(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Pipeline Suite")
}

const userReportCSV = `Name,Name (multilang),Title (#{lang}),Email,UPN,External User ID,CV Partner User ID,CV Partner CV ID
Ada Lovelace,int:Ada Lovelace,int:Senior Engineer,ada@example.com,adalovelace,ext_u1,u-1,cv-1
`

// fileFetcher fakes the vendor API by writing a minimal report set.
type fileFetcher struct{}

func (fileFetcher) FetchAllReports(_ context.Context, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outputDir, "user_report.csv"), []byte(userReportCSV), 0o644)
}

var _ = Describe("Pipeline Service", func() {
	var (
		db     *gorm.DB
		loader *warehousePostgres.Loader
		log    *slog.Logger
		ctx    context.Context
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(dm.AllModels()...)).To(Succeed())

		log = slog.New(slog.NewTextHandler(io.Discard, nil))
		loader = warehousePostgres.NewLoader(db, log)
		ctx = context.Background()
	})

	newConfig := func(source internal.DataSource, reportsDir string) *internal.Config {
		return &internal.Config{
			Pipeline: internal.PipelineConfig{
				DataSource: source,
				ReportsDir: reportsDir,
			},
		}
	}

	Describe("fake mode", func() {
		It("should extract the newest quarterly folder and load it", func() {
			reportsDir := GinkgoT().TempDir()
			oldDir := filepath.Join(reportsDir, "Q1_2024")
			newDir := filepath.Join(reportsDir, "Q2_2025")
			Expect(os.MkdirAll(oldDir, 0o755)).To(Succeed())
			Expect(os.MkdirAll(newDir, 0o755)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(newDir, "user_report.csv"), []byte(userReportCSV), 0o644)).To(Succeed())

			cfg := newConfig(internal.DataSourceFake, reportsDir)
			svc := pipeline.NewService(cfg, loader, nil, nil, nil, log)

			summary, err := svc.Run(ctx, pipeline.Options{SkipRefresh: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.DataDir).To(Equal(newDir))
			Expect(summary.Users).To(Equal(1))
			Expect(summary.CVs).To(Equal(1))
			Expect(summary.RunID).NotTo(BeEmpty())

			var count int64
			Expect(db.Model(&dm.User{}).Count(&count).Error).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})

		It("should fail when no quarterly folder exists", func() {
			cfg := newConfig(internal.DataSourceFake, GinkgoT().TempDir())
			svc := pipeline.NewService(cfg, loader, nil, nil, nil, log)

			_, err := svc.Run(ctx, pipeline.Options{SkipRefresh: true})
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeNoQuarterFolder))
		})

		It("should generate fake reports first when asked", func() {
			reportsDir := GinkgoT().TempDir()
			cfg := newConfig(internal.DataSourceFake, reportsDir)
			gen := generator.NewGenerator(generator.Config{Users: 5, Seed: 1, DaysForward: 3}, log)
			svc := pipeline.NewService(cfg, loader, nil, gen, nil, log)

			summary, err := svc.Run(ctx, pipeline.Options{GenerateFake: true, SkipRefresh: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Users).To(Equal(5))

			var count int64
			Expect(db.Model(&dm.CV{}).Count(&count).Error).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(5)))
		})

		It("should reject --generate-fake without a generator", func() {
			cfg := newConfig(internal.DataSourceFake, GinkgoT().TempDir())
			svc := pipeline.NewService(cfg, loader, nil, nil, nil, log)

			_, err := svc.Run(ctx, pipeline.Options{GenerateFake: true})
			Expect(err).To(HaveOccurred())
		})

		It("should honor the data folder override", func() {
			override := GinkgoT().TempDir()
			dataDir := filepath.Join(override, "Q4_2025")
			Expect(os.MkdirAll(dataDir, 0o755)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(dataDir, "user_report.csv"), []byte(userReportCSV), 0o644)).To(Succeed())

			cfg := newConfig(internal.DataSourceFake, GinkgoT().TempDir())
			svc := pipeline.NewService(cfg, loader, nil, nil, nil, log)

			summary, err := svc.Run(ctx, pipeline.Options{DataFolder: override, SkipRefresh: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.DataDir).To(Equal(dataDir))
		})
	})

	Describe("real mode", func() {
		It("should download into a timestamped folder and load from it", func() {
			reportsDir := GinkgoT().TempDir()
			cfg := newConfig(internal.DataSourceReal, reportsDir)
			svc := pipeline.NewService(cfg, loader, fileFetcher{}, nil, nil, log)

			summary, err := svc.Run(ctx, pipeline.Options{SkipRefresh: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(strings.HasPrefix(filepath.Base(summary.DataDir), "QREAL_")).To(BeTrue())
			Expect(summary.Users).To(Equal(1))
		})

		It("should fail without a configured vendor client", func() {
			cfg := newConfig(internal.DataSourceReal, GinkgoT().TempDir())
			svc := pipeline.NewService(cfg, loader, nil, nil, nil, log)

			_, err := svc.Run(ctx, pipeline.Options{})
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})
})
