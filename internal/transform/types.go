package transform

import (
	"time"

	"github.com/frahmantamala/flowcase-warehouse/internal/normalize"
)

// Typed per-entity records produced by the transform stage. Field access on
// these replaces the raw column lookups of the report tables; all coercion
// happens exactly once, here.

type UserRow struct {
	CVPartnerUserID string
	Name            normalize.Multilang
	Email           string
	UPN             string
	ExternalUserID  string
	PhoneNumber     *string
	Landline        *string
	BirthYear       *int
	Department      *string
	Country         *string
	CreatedAt       *time.Time
	Nationality     normalize.Multilang
}

type CVRow struct {
	CVPartnerCVID        string
	CVPartnerUserID      string
	Title                normalize.Multilang
	YearsOfEducation     *int
	YearsSinceFirstWork  *int
	HasProfileImage      *bool
	OwnsReferenceProject *bool
	ReadPrivacyNotice    *bool
	LastUpdatedByOwner   *time.Time
	LastUpdated          *time.Time
	SFIALevel            *int
	CPDLevel             *int
	CPDBand              *string
	CPDLabel             *string
}

type TechnologySkillRow struct {
	CVPartnerCVID        string
	SkillName            string
	YearsExperience      *int
	Proficiency          *int
	IsOfficialMasterdata normalize.Multilang
}

type LanguageSkillRow struct {
	CVPartnerCVID        string
	Language             string
	Level                *string
	Highlighted          *bool
	IsOfficialMasterdata normalize.Multilang
	Updated              *time.Time
	UpdatedByOwner       *time.Time
}

type ProjectExperienceRow struct {
	CVPartnerCVID        string
	SectionID            string
	ExternalUniqueID     *string
	MonthFrom            *int
	YearFrom             *int
	MonthTo              *int
	YearTo               *int
	CustomerInt          *string
	Customer             normalize.Multilang
	CustomerAnonInt      *string
	CustomerAnon         normalize.Multilang
	DescriptionInt       *string
	Description          normalize.Multilang
	LongDescriptionInt   *string
	LongDescription      normalize.Multilang
	Industry             string
	ProjectType          string
	PercentAllocated     *int
	ExtentIndividualHrs  *float64
	ExtentHours          *float64
	ExtentTotalHours     *float64
	ExtentUnit           *string
	ExtentCurrency       *string
	ExtentTotal          *float64
	ExtentTotalCurrency  *string
	ProjectArea          *float64
	ProjectAreaUnit      *string
	Highlighted          *bool
	Updated              *time.Time
	UpdatedByOwner       *time.Time
}

type WorkExperienceRow struct {
	CVPartnerCVID    string
	SectionID        string
	ExternalUniqueID *string
	MonthFrom        *int
	YearFrom         *int
	MonthTo          *int
	YearTo           *int
	Highlighted      *bool
	Employer         *string
	Description      *string
	LongDescription  *string
	Updated          *time.Time
	UpdatedByOwner   *time.Time
}

type CertificationRow struct {
	CVPartnerCVID    string
	SectionID        string
	ExternalUniqueID *string
	Month            *int
	Year             *int
	MonthExpire      *int
	YearExpire       *int
	Updated          *time.Time
	UpdatedByOwner   *time.Time
}

type CourseRow struct {
	CVPartnerCVID        string
	SectionID            string
	ExternalUniqueID     *string
	Month                *int
	Year                 *int
	Name                 *string
	Organiser            *string
	LongDescription      *string
	Highlighted          *bool
	IsOfficialMasterdata normalize.Multilang
	Attachments          *string
	Updated              *time.Time
	UpdatedByOwner       *time.Time
}

type EducationRow struct {
	CVPartnerCVID    string
	SectionID        string
	ExternalUniqueID *string
	MonthFrom        *int
	YearFrom         *int
	MonthTo          *int
	YearTo           *int
	Highlighted      *bool
	Attachments      *string
	PlaceOfStudy     *string
	Degree           *string
	Description      *string
	Updated          *time.Time
	UpdatedByOwner   *time.Time
}

type PositionRow struct {
	CVPartnerCVID    string
	SectionID        string
	ExternalUniqueID *string
	YearFrom         *int
	YearTo           *int
	Highlighted      *bool
	Name             *string
	Description      *string
	Updated          *time.Time
	UpdatedByOwner   *time.Time
}

type BlogRow struct {
	CVPartnerCVID    string
	SectionID        string
	ExternalUniqueID *string
	Name             *string
	Description      *string
	Highlighted      *bool
	Updated          *time.Time
	UpdatedByOwner   *time.Time
}

// CVRoleRow has no section id in the export; the load keys it by CV + name.
type CVRoleRow struct {
	CVPartnerCVID  string
	Name           string
	Description    *string
	Highlighted    *bool
	Updated        *time.Time
	UpdatedByOwner *time.Time
}

type KeyQualificationRow struct {
	CVPartnerCVID    string
	SectionID        string
	ExternalUniqueID *string
	Label            *string
	Summary          *string
	ShortDescription *string
	Updated          *time.Time
	UpdatedByOwner   *time.Time
}

type ClearanceRow struct {
	Email          string
	UPN            string
	ExternalUserID string
	Clearance      string
	ValidFrom      *time.Time
	ValidTo        *time.Time
	VerifiedBy     *string
	Notes          *string
}

type AvailabilityRow struct {
	Email            string
	UPN              string
	ExternalUserID   string
	Date             *time.Time
	PercentAvailable int
	Source           string
}

// Result is the full typed output of the transform stage, one slice per
// target entity, in the order the loader will write them.
type Result struct {
	Users              []UserRow
	CVs                []CVRow
	Technologies       []TechnologySkillRow
	Languages          []LanguageSkillRow
	ProjectExperiences []ProjectExperienceRow
	WorkExperiences    []WorkExperienceRow
	Certifications     []CertificationRow
	Courses            []CourseRow
	Educations         []EducationRow
	Positions          []PositionRow
	Blogs              []BlogRow
	CVRoles            []CVRoleRow
	KeyQualifications  []KeyQualificationRow
	Clearances         []ClearanceRow
	Availability       []AvailabilityRow
}
