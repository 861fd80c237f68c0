package postgres_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dm "github.com/frahmantamala/flowcase-warehouse/internal/core/datamodel/warehouse"
	"github.com/frahmantamala/flowcase-warehouse/internal/normalize"
	"github.com/frahmantamala/flowcase-warehouse/internal/transform"
	warehousePostgres "github.com/frahmantamala/flowcase-warehouse/internal/warehouse/postgres"
)

func TestWarehousePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Warehouse Postgres Suite")
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

var _ = Describe("Warehouse Loader", func() {
	var (
		db     *gorm.DB
		loader *warehousePostgres.Loader
		ctx    context.Context
	)

	BeforeEach(func() {
		var err error
		// Use SQLite in-memory database for testing
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(dm.AllModels()...)
		Expect(err).NotTo(HaveOccurred())

		log := slog.New(slog.NewTextHandler(io.Discard, nil))
		loader = warehousePostgres.NewLoader(db, log)
		ctx = context.Background()
	})

	baseResult := func() *transform.Result {
		return &transform.Result{
			Users: []transform.UserRow{
				{
					CVPartnerUserID: "u-1",
					Name:            normalize.Multilang{"int": "Ada Lovelace"},
					Email:           "ada@example.com",
					UPN:             "ada@corp.example.com",
					ExternalUserID:  "EXT-1",
				},
			},
			CVs: []transform.CVRow{
				{
					CVPartnerCVID:   "cv-1",
					CVPartnerUserID: "u-1",
					Title:           normalize.Multilang{"int": "Senior Engineer"},
				},
			},
		}
	}

	Describe("Load", func() {
		It("should load users and cvs linked by surrogate key", func() {
			drops, err := loader.Load(ctx, baseResult())
			Expect(err).NotTo(HaveOccurred())
			Expect(drops.Total()).To(Equal(0))

			var user dm.User
			Expect(db.First(&user, "cv_partner_user_id = ?", "u-1").Error).NotTo(HaveOccurred())
			Expect(user.Email).To(HaveValue(Equal("ada@example.com")))

			var cv dm.CV
			Expect(db.First(&cv, "cv_partner_cv_id = ?", "cv-1").Error).NotTo(HaveOccurred())
			Expect(cv.UserID).To(Equal(user.UserID))
		})

		It("should be idempotent across repeated loads", func() {
			data := baseResult()
			_, err := loader.Load(ctx, data)
			Expect(err).NotTo(HaveOccurred())
			_, err = loader.Load(ctx, data)
			Expect(err).NotTo(HaveOccurred())

			var userCount, cvCount int64
			Expect(db.Model(&dm.User{}).Count(&userCount).Error).NotTo(HaveOccurred())
			Expect(db.Model(&dm.CV{}).Count(&cvCount).Error).NotTo(HaveOccurred())
			Expect(userCount).To(Equal(int64(1)))
			Expect(cvCount).To(Equal(int64(1)))
		})

		It("should overwrite attributes on reload instead of duplicating", func() {
			data := baseResult()
			_, err := loader.Load(ctx, data)
			Expect(err).NotTo(HaveOccurred())

			data.Users[0].Email = "ada.l@example.com"
			data.CVs[0].Title = normalize.Multilang{"int": "Principal Engineer"}
			_, err = loader.Load(ctx, data)
			Expect(err).NotTo(HaveOccurred())

			var user dm.User
			Expect(db.First(&user, "cv_partner_user_id = ?", "u-1").Error).NotTo(HaveOccurred())
			Expect(user.Email).To(HaveValue(Equal("ada.l@example.com")))

			var cv dm.CV
			Expect(db.First(&cv, "cv_partner_cv_id = ?", "cv-1").Error).NotTo(HaveOccurred())
			Expect(cv.TitleMultilang["int"]).To(Equal("Principal Engineer"))
		})

		It("should keep the last row when the batch repeats a business key", func() {
			data := baseResult()
			data.Users = append(data.Users, transform.UserRow{
				CVPartnerUserID: "u-1",
				Name:            normalize.Multilang{"int": "Ada Lovelace"},
				Email:           "ada.latest@example.com",
			})

			_, err := loader.Load(ctx, data)
			Expect(err).NotTo(HaveOccurred())

			var count int64
			Expect(db.Model(&dm.User{}).Count(&count).Error).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))

			var user dm.User
			Expect(db.First(&user, "cv_partner_user_id = ?", "u-1").Error).NotTo(HaveOccurred())
			Expect(user.Email).To(HaveValue(Equal("ada.latest@example.com")))
		})
	})

	Describe("orphan rows", func() {
		It("should drop cvs whose user is unknown and count the drop", func() {
			data := baseResult()
			data.CVs = append(data.CVs, transform.CVRow{
				CVPartnerCVID:   "cv-orphan",
				CVPartnerUserID: "u-missing",
			})

			drops, err := loader.Load(ctx, data)
			Expect(err).NotTo(HaveOccurred())
			Expect(drops["cvs"]).To(Equal(1))

			var count int64
			Expect(db.Model(&dm.CV{}).Count(&count).Error).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})

		It("should drop section rows referencing an unknown cv", func() {
			data := baseResult()
			data.ProjectExperiences = []transform.ProjectExperienceRow{
				{CVPartnerCVID: "cv-ghost", SectionID: "sec-1"},
			}
			data.Courses = []transform.CourseRow{
				{CVPartnerCVID: "cv-ghost", SectionID: "sec-2"},
			}

			drops, err := loader.Load(ctx, data)
			Expect(err).NotTo(HaveOccurred())
			Expect(drops["project_experiences"]).To(Equal(1))
			Expect(drops["courses"]).To(Equal(1))
			Expect(drops.Total()).To(Equal(2))
		})
	})

	Describe("dimensions", func() {
		It("should get-or-create technology names and link by id", func() {
			data := baseResult()
			data.Technologies = []transform.TechnologySkillRow{
				{CVPartnerCVID: "cv-1", SkillName: "Go"},
				{CVPartnerCVID: "cv-1", SkillName: "Kubernetes"},
			}

			_, err := loader.Load(ctx, data)
			Expect(err).NotTo(HaveOccurred())
			_, err = loader.Load(ctx, data)
			Expect(err).NotTo(HaveOccurred())

			var dimCount int64
			Expect(db.Model(&dm.DimTechnology{}).Count(&dimCount).Error).NotTo(HaveOccurred())
			Expect(dimCount).To(Equal(int64(2)))

			var linkCount int64
			Expect(db.Model(&dm.CVTechnology{}).Count(&linkCount).Error).NotTo(HaveOccurred())
			Expect(linkCount).To(Equal(int64(2)))
		})

		It("should leave project dimensions null when the source value is blank", func() {
			data := baseResult()
			data.ProjectExperiences = []transform.ProjectExperienceRow{
				{CVPartnerCVID: "cv-1", SectionID: "sec-1", Industry: "", ProjectType: "Delivery"},
			}

			_, err := loader.Load(ctx, data)
			Expect(err).NotTo(HaveOccurred())

			var pe dm.ProjectExperience
			Expect(db.First(&pe, "cv_partner_section_id = ?", "sec-1").Error).NotTo(HaveOccurred())
			Expect(pe.IndustryID).To(BeNil())
			Expect(pe.ProjectTypeID).NotTo(BeNil())
		})
	})

	Describe("clearances", func() {
		It("should default a blank clearance name and a missing valid_from", func() {
			data := baseResult()
			data.Clearances = []transform.ClearanceRow{
				{Email: "ada@example.com"},
			}

			_, err := loader.Load(ctx, data)
			Expect(err).NotTo(HaveOccurred())

			var clearance dm.UserClearance
			Expect(db.First(&clearance).Error).NotTo(HaveOccurred())
			Expect(clearance.ValidFrom.Format("2006-01-02")).To(Equal("1900-01-01"))

			var dim dm.DimClearance
			Expect(db.First(&dim, "clearance_id = ?", clearance.ClearanceID).Error).NotTo(HaveOccurred())
			Expect(dim.Name).To(Equal("None"))
		})

		It("should null out an expiry that precedes the start of validity", func() {
			data := baseResult()
			data.Clearances = []transform.ClearanceRow{
				{
					Email:     "ada@example.com",
					Clearance: "Secret",
					ValidFrom: datePtr(2024, time.March, 1),
					ValidTo:   datePtr(2023, time.January, 1),
				},
			}

			_, err := loader.Load(ctx, data)
			Expect(err).NotTo(HaveOccurred())

			var clearance dm.UserClearance
			Expect(db.First(&clearance).Error).NotTo(HaveOccurred())
			Expect(clearance.ValidTo).To(BeNil())
		})

		It("should resolve the user through the upn when the email is unknown", func() {
			data := baseResult()
			data.Clearances = []transform.ClearanceRow{
				{Email: "someone-else@example.com", UPN: "ada@corp.example.com", Clearance: "Secret"},
			}

			drops, err := loader.Load(ctx, data)
			Expect(err).NotTo(HaveOccurred())
			Expect(drops["clearances"]).To(Equal(0))

			var count int64
			Expect(db.Model(&dm.UserClearance{}).Count(&count).Error).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})

		It("should match identities case-insensitively on email", func() {
			data := baseResult()
			data.Clearances = []transform.ClearanceRow{
				{Email: "ADA@Example.COM", Clearance: "Secret"},
			}

			drops, err := loader.Load(ctx, data)
			Expect(err).NotTo(HaveOccurred())
			Expect(drops["clearances"]).To(Equal(0))
		})

		It("should drop clearances for users no identity can resolve", func() {
			data := baseResult()
			data.Clearances = []transform.ClearanceRow{
				{Email: "ghost@example.com", UPN: "ghost@corp.example.com", ExternalUserID: "EXT-ghost"},
			}

			drops, err := loader.Load(ctx, data)
			Expect(err).NotTo(HaveOccurred())
			Expect(drops["clearances"]).To(Equal(1))

			var count int64
			Expect(db.Model(&dm.UserClearance{}).Count(&count).Error).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(0)))
		})
	})

	Describe("availability", func() {
		It("should stamp updated_at and keep one row per user and date", func() {
			data := baseResult()
			data.Availability = []transform.AvailabilityRow{
				{Email: "ada@example.com", Date: datePtr(2025, time.July, 1), PercentAvailable: 40},
			}

			_, err := loader.Load(ctx, data)
			Expect(err).NotTo(HaveOccurred())

			data.Availability[0].PercentAvailable = 80
			_, err = loader.Load(ctx, data)
			Expect(err).NotTo(HaveOccurred())

			var rows []dm.UserAvailability
			Expect(db.Find(&rows).Error).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].PercentAvailable).To(Equal(80))
			Expect(rows[0].UpdatedAt).NotTo(BeZero())
		})

		It("should default a blank source", func() {
			data := baseResult()
			data.Availability = []transform.AvailabilityRow{
				{Email: "ada@example.com", Date: datePtr(2025, time.July, 1), PercentAvailable: 100},
			}

			_, err := loader.Load(ctx, data)
			Expect(err).NotTo(HaveOccurred())

			var row dm.UserAvailability
			Expect(db.First(&row).Error).NotTo(HaveOccurred())
			Expect(row.Source).To(HaveValue(Equal("Fake generator")))
		})

		It("should drop rows without a calendar date", func() {
			data := baseResult()
			data.Availability = []transform.AvailabilityRow{
				{Email: "ada@example.com", PercentAvailable: 50},
			}

			drops, err := loader.Load(ctx, data)
			Expect(err).NotTo(HaveOccurred())
			Expect(drops["availability"]).To(Equal(1))
		})
	})

	Describe("cv roles", func() {
		It("should key roles by cv and name", func() {
			data := baseResult()
			first := "lead of the platform group"
			second := "updated description"
			data.CVRoles = []transform.CVRoleRow{
				{CVPartnerCVID: "cv-1", Name: "Tech Lead", Description: &first},
			}

			_, err := loader.Load(ctx, data)
			Expect(err).NotTo(HaveOccurred())

			data.CVRoles[0].Description = &second
			_, err = loader.Load(ctx, data)
			Expect(err).NotTo(HaveOccurred())

			var rows []dm.CVRole
			Expect(db.Find(&rows).Error).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Description).To(HaveValue(Equal("updated description")))
		})
	})
})
