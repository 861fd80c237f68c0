// Package warehouse defines the persistence models for the CV warehouse.
// Column names and conflict keys mirror the SQL migrations under
// db/migrations; the sqlite test harness builds the same shape through
// AutoMigrate.
package warehouse

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	UserID               int64             `gorm:"column:user_id;primaryKey"`
	CVPartnerUserID      string            `gorm:"column:cv_partner_user_id;uniqueIndex;not null"`
	NameMultilang        datatypes.JSONMap `gorm:"column:name_multilang"`
	Email                *string           `gorm:"column:email"`
	UPN                  *string           `gorm:"column:upn"`
	ExternalUserID       *string           `gorm:"column:external_user_id"`
	PhoneNumber          *string           `gorm:"column:phone_number"`
	Landline             *string           `gorm:"column:landline"`
	BirthYear            *int              `gorm:"column:birth_year"`
	Department           *string           `gorm:"column:department"`
	Country              *string           `gorm:"column:country"`
	UserCreatedAt        *time.Time        `gorm:"column:user_created_at"`
	NationalityMultilang datatypes.JSONMap `gorm:"column:nationality_multilang"`
}

func (User) TableName() string { return "users" }

type CV struct {
	CVID                          int64             `gorm:"column:cv_id;primaryKey"`
	CVPartnerCVID                 string            `gorm:"column:cv_partner_cv_id;uniqueIndex;not null"`
	UserID                        int64             `gorm:"column:user_id;not null"`
	TitleMultilang                datatypes.JSONMap `gorm:"column:title_multilang"`
	YearsOfEducation              *int              `gorm:"column:years_of_education"`
	YearsSinceFirstWorkExperience *int              `gorm:"column:years_since_first_work_experience"`
	HasProfileImage               *bool             `gorm:"column:has_profile_image"`
	OwnsReferenceProject          *bool             `gorm:"column:owns_reference_project"`
	ReadPrivacyNotice             *bool             `gorm:"column:read_privacy_notice"`
	CVLastUpdatedByOwner          *time.Time        `gorm:"column:cv_last_updated_by_owner"`
	CVLastUpdated                 *time.Time        `gorm:"column:cv_last_updated"`
	SFIALevel                     *int              `gorm:"column:sfia_level"`
	CPDLevel                      *int              `gorm:"column:cpd_level"`
	CPDBand                       *string           `gorm:"column:cpd_band"`
	CPDLabel                      *string           `gorm:"column:cpd_label"`
}

func (CV) TableName() string { return "cvs" }

type DimTechnology struct {
	TechnologyID int64  `gorm:"column:technology_id;primaryKey"`
	Name         string `gorm:"column:name;uniqueIndex;not null"`
}

func (DimTechnology) TableName() string { return "dim_technology" }

type DimLanguage struct {
	LanguageID int64  `gorm:"column:language_id;primaryKey"`
	Name       string `gorm:"column:name;uniqueIndex;not null"`
}

func (DimLanguage) TableName() string { return "dim_language" }

type DimIndustry struct {
	IndustryID int64  `gorm:"column:industry_id;primaryKey"`
	Name       string `gorm:"column:name;uniqueIndex;not null"`
}

func (DimIndustry) TableName() string { return "dim_industry" }

type DimProjectType struct {
	ProjectTypeID int64  `gorm:"column:project_type_id;primaryKey"`
	Name          string `gorm:"column:name;uniqueIndex;not null"`
}

func (DimProjectType) TableName() string { return "dim_project_type" }

type DimClearance struct {
	ClearanceID int64  `gorm:"column:clearance_id;primaryKey"`
	Name        string `gorm:"column:name;uniqueIndex;not null"`
}

func (DimClearance) TableName() string { return "dim_clearance" }

type CVTechnology struct {
	ID                   int64             `gorm:"column:id;primaryKey"`
	CVID                 int64             `gorm:"column:cv_id;uniqueIndex:uq_cv_technology;not null"`
	TechnologyID         int64             `gorm:"column:technology_id;uniqueIndex:uq_cv_technology;not null"`
	YearsExperience      *int              `gorm:"column:years_experience"`
	Proficiency          *int              `gorm:"column:proficiency"`
	IsOfficialMasterdata datatypes.JSONMap `gorm:"column:is_official_masterdata"`
}

func (CVTechnology) TableName() string { return "cv_technology" }

type CVLanguage struct {
	ID                   int64             `gorm:"column:id;primaryKey"`
	CVID                 int64             `gorm:"column:cv_id;uniqueIndex:uq_cv_language;not null"`
	LanguageID           int64             `gorm:"column:language_id;uniqueIndex:uq_cv_language;not null"`
	Level                *string           `gorm:"column:level"`
	Highlighted          *bool             `gorm:"column:highlighted"`
	IsOfficialMasterdata datatypes.JSONMap `gorm:"column:is_official_masterdata"`
	Updated              *time.Time        `gorm:"column:updated"`
	UpdatedByOwner       *time.Time        `gorm:"column:updated_by_owner"`
}

func (CVLanguage) TableName() string { return "cv_language" }

type ProjectExperience struct {
	ID                       int64             `gorm:"column:id;primaryKey"`
	CVID                     int64             `gorm:"column:cv_id;uniqueIndex:uq_project_experience;not null"`
	CVPartnerSectionID       string            `gorm:"column:cv_partner_section_id;uniqueIndex:uq_project_experience;not null"`
	ExternalUniqueID         *string           `gorm:"column:external_unique_id"`
	MonthFrom                *int              `gorm:"column:month_from"`
	YearFrom                 *int              `gorm:"column:year_from"`
	MonthTo                  *int              `gorm:"column:month_to"`
	YearTo                   *int              `gorm:"column:year_to"`
	CustomerInt              *string           `gorm:"column:customer_int"`
	CustomerMultilang        datatypes.JSONMap `gorm:"column:customer_multilang"`
	CustomerAnonInt          *string           `gorm:"column:customer_anon_int"`
	CustomerAnonMultilang    datatypes.JSONMap `gorm:"column:customer_anon_multilang"`
	DescriptionInt           *string           `gorm:"column:description_int"`
	DescriptionMultilang     datatypes.JSONMap `gorm:"column:description_multilang"`
	LongDescriptionInt       *string           `gorm:"column:long_description_int"`
	LongDescriptionMultilang datatypes.JSONMap `gorm:"column:long_description_multilang"`
	IndustryID               *int64            `gorm:"column:industry_id"`
	ProjectTypeID            *int64            `gorm:"column:project_type_id"`
	PercentAllocated         *int              `gorm:"column:percent_allocated"`
	ExtentIndividualHours    *float64          `gorm:"column:extent_individual_hours"`
	ExtentHours              *float64          `gorm:"column:extent_hours"`
	ExtentTotalHours         *float64          `gorm:"column:extent_total_hours"`
	ExtentUnit               *string           `gorm:"column:extent_unit"`
	ExtentCurrency           *string           `gorm:"column:extent_currency"`
	ExtentTotal              *float64          `gorm:"column:extent_total"`
	ExtentTotalCurrency      *string           `gorm:"column:extent_total_currency"`
	ProjectArea              *float64          `gorm:"column:project_area"`
	ProjectAreaUnit          *string           `gorm:"column:project_area_unit"`
	Highlighted              *bool             `gorm:"column:highlighted"`
	Updated                  *time.Time        `gorm:"column:updated"`
	UpdatedByOwner           *time.Time        `gorm:"column:updated_by_owner"`
}

func (ProjectExperience) TableName() string { return "project_experience" }

type WorkExperience struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	CVID               int64      `gorm:"column:cv_id;uniqueIndex:uq_work_experience;not null"`
	CVPartnerSectionID string     `gorm:"column:cv_partner_section_id;uniqueIndex:uq_work_experience;not null"`
	ExternalUniqueID   *string    `gorm:"column:external_unique_id"`
	MonthFrom          *int       `gorm:"column:month_from"`
	YearFrom           *int       `gorm:"column:year_from"`
	MonthTo            *int       `gorm:"column:month_to"`
	YearTo             *int       `gorm:"column:year_to"`
	Highlighted        *bool      `gorm:"column:highlighted"`
	Employer           *string    `gorm:"column:employer"`
	Description        *string    `gorm:"column:description"`
	LongDescription    *string    `gorm:"column:long_description"`
	Updated            *time.Time `gorm:"column:updated"`
	UpdatedByOwner     *time.Time `gorm:"column:updated_by_owner"`
}

func (WorkExperience) TableName() string { return "work_experience" }

type Certification struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	CVID               int64      `gorm:"column:cv_id;uniqueIndex:uq_certification;not null"`
	CVPartnerSectionID string     `gorm:"column:cv_partner_section_id;uniqueIndex:uq_certification;not null"`
	ExternalUniqueID   *string    `gorm:"column:external_unique_id"`
	Month              *int       `gorm:"column:month"`
	Year               *int       `gorm:"column:year"`
	MonthExpire        *int       `gorm:"column:month_expire"`
	YearExpire         *int       `gorm:"column:year_expire"`
	Updated            *time.Time `gorm:"column:updated"`
	UpdatedByOwner     *time.Time `gorm:"column:updated_by_owner"`
}

func (Certification) TableName() string { return "certification" }

type Course struct {
	ID                   int64             `gorm:"column:id;primaryKey"`
	CVID                 int64             `gorm:"column:cv_id;uniqueIndex:uq_course;not null"`
	CVPartnerSectionID   string            `gorm:"column:cv_partner_section_id;uniqueIndex:uq_course;not null"`
	ExternalUniqueID     *string           `gorm:"column:external_unique_id"`
	Month                *int              `gorm:"column:month"`
	Year                 *int              `gorm:"column:year"`
	Name                 *string           `gorm:"column:name"`
	Organiser            *string           `gorm:"column:organiser"`
	LongDescription      *string           `gorm:"column:long_description"`
	Highlighted          *bool             `gorm:"column:highlighted"`
	IsOfficialMasterdata datatypes.JSONMap `gorm:"column:is_official_masterdata"`
	Attachments          *string           `gorm:"column:attachments"`
	Updated              *time.Time        `gorm:"column:updated"`
	UpdatedByOwner       *time.Time        `gorm:"column:updated_by_owner"`
}

func (Course) TableName() string { return "course" }

type Education struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	CVID               int64      `gorm:"column:cv_id;uniqueIndex:uq_education;not null"`
	CVPartnerSectionID string     `gorm:"column:cv_partner_section_id;uniqueIndex:uq_education;not null"`
	ExternalUniqueID   *string    `gorm:"column:external_unique_id"`
	MonthFrom          *int       `gorm:"column:month_from"`
	YearFrom           *int       `gorm:"column:year_from"`
	MonthTo            *int       `gorm:"column:month_to"`
	YearTo             *int       `gorm:"column:year_to"`
	Highlighted        *bool      `gorm:"column:highlighted"`
	Attachments        *string    `gorm:"column:attachments"`
	PlaceOfStudy       *string    `gorm:"column:place_of_study"`
	Degree             *string    `gorm:"column:degree"`
	Description        *string    `gorm:"column:description"`
	Updated            *time.Time `gorm:"column:updated"`
	UpdatedByOwner     *time.Time `gorm:"column:updated_by_owner"`
}

func (Education) TableName() string { return "education" }

type Position struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	CVID               int64      `gorm:"column:cv_id;uniqueIndex:uq_position;not null"`
	CVPartnerSectionID string     `gorm:"column:cv_partner_section_id;uniqueIndex:uq_position;not null"`
	ExternalUniqueID   *string    `gorm:"column:external_unique_id"`
	YearFrom           *int       `gorm:"column:year_from"`
	YearTo             *int       `gorm:"column:year_to"`
	Highlighted        *bool      `gorm:"column:highlighted"`
	Name               *string    `gorm:"column:name"`
	Description        *string    `gorm:"column:description"`
	Updated            *time.Time `gorm:"column:updated"`
	UpdatedByOwner     *time.Time `gorm:"column:updated_by_owner"`
}

func (Position) TableName() string { return "position" }

type BlogPublication struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	CVID               int64      `gorm:"column:cv_id;uniqueIndex:uq_blog_publication;not null"`
	CVPartnerSectionID string     `gorm:"column:cv_partner_section_id;uniqueIndex:uq_blog_publication;not null"`
	ExternalUniqueID   *string    `gorm:"column:external_unique_id"`
	Name               *string    `gorm:"column:name"`
	Description        *string    `gorm:"column:description"`
	Highlighted        *bool      `gorm:"column:highlighted"`
	Updated            *time.Time `gorm:"column:updated"`
	UpdatedByOwner     *time.Time `gorm:"column:updated_by_owner"`
}

func (BlogPublication) TableName() string { return "blog_publication" }

type CVRole struct {
	ID             int64      `gorm:"column:id;primaryKey"`
	CVID           int64      `gorm:"column:cv_id;uniqueIndex:uq_cv_role;not null"`
	Name           string     `gorm:"column:name;uniqueIndex:uq_cv_role;not null"`
	Description    *string    `gorm:"column:description"`
	Highlighted    *bool      `gorm:"column:highlighted"`
	Updated        *time.Time `gorm:"column:updated"`
	UpdatedByOwner *time.Time `gorm:"column:updated_by_owner"`
}

func (CVRole) TableName() string { return "cv_role" }

type KeyQualification struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	CVID               int64      `gorm:"column:cv_id;uniqueIndex:uq_key_qualification;not null"`
	CVPartnerSectionID string     `gorm:"column:cv_partner_section_id;uniqueIndex:uq_key_qualification;not null"`
	ExternalUniqueID   *string    `gorm:"column:external_unique_id"`
	Label              *string    `gorm:"column:label"`
	Summary            *string    `gorm:"column:summary"`
	ShortDescription   *string    `gorm:"column:short_description"`
	Updated            *time.Time `gorm:"column:updated"`
	UpdatedByOwner     *time.Time `gorm:"column:updated_by_owner"`
}

func (KeyQualification) TableName() string { return "key_qualification" }

type UserClearance struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	UserID      int64      `gorm:"column:user_id;uniqueIndex:uq_user_clearance;not null"`
	ClearanceID int64      `gorm:"column:clearance_id;uniqueIndex:uq_user_clearance;not null"`
	ValidFrom   time.Time  `gorm:"column:valid_from;uniqueIndex:uq_user_clearance;not null"`
	ValidTo     *time.Time `gorm:"column:valid_to"`
	VerifiedBy  *string    `gorm:"column:verified_by"`
	Notes       *string    `gorm:"column:notes"`
}

func (UserClearance) TableName() string { return "user_clearance" }

type UserAvailability struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	UserID           int64     `gorm:"column:user_id;uniqueIndex:uq_user_availability;not null"`
	Date             time.Time `gorm:"column:date;uniqueIndex:uq_user_availability;not null"`
	PercentAvailable int       `gorm:"column:percent_available;not null"`
	Source           *string   `gorm:"column:source"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (UserAvailability) TableName() string { return "user_availability" }

// AllModels lists every warehouse model in dependency order, used by the
// sqlite test harness to build the schema.
func AllModels() []any {
	return []any{
		&User{}, &CV{},
		&DimTechnology{}, &DimLanguage{}, &DimIndustry{}, &DimProjectType{}, &DimClearance{},
		&CVTechnology{}, &CVLanguage{},
		&ProjectExperience{}, &WorkExperience{}, &Certification{}, &Course{},
		&Education{}, &Position{}, &BlogPublication{}, &CVRole{}, &KeyQualification{},
		&UserClearance{}, &UserAvailability{},
	}
}
