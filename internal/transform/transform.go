// Package transform reshapes the raw report tables into typed per-entity
// records and runs the data-quality gates that must hold before any load.
package transform

import (
	"log/slog"

	"github.com/frahmantamala/flowcase-warehouse/internal"
	"github.com/frahmantamala/flowcase-warehouse/internal/extract"
	"github.com/frahmantamala/flowcase-warehouse/internal/normalize"
)

// Transform builds the typed Result from the raw tables. It fails fast on
// the integrity gates (empty user set, missing business id column, user/cv
// count mismatch); everything else degrades per row.
func Transform(tables map[string]extract.Table) (*Result, error) {
	slog.Info("starting transform step")

	userTable := tables[FileUserReport]
	if len(userTable.Rows) == 0 {
		return nil, internal.ErrUsersEmpty
	}
	if !userTable.HasColumn(colUserID) {
		return nil, internal.ErrMissingUserID
	}

	nationalities := nationalityByUserID(tables[FileUsageReport])

	result := &Result{}
	for _, row := range userTable.Rows {
		result.Users = append(result.Users, buildUser(row, nationalities))
		result.CVs = append(result.CVs, buildCV(row))
	}
	if len(result.Users) != len(result.CVs) {
		return nil, internal.ErrRowCountMismatch
	}

	result.Technologies = buildTechnologies(tables[FileTechnologies])
	result.Languages = buildLanguages(tables[FileLanguages])
	result.ProjectExperiences = buildProjectExperiences(tables[FileProjectExperiences])
	result.WorkExperiences = buildWorkExperiences(tables[FileWorkExperiences])
	result.Certifications = buildCertifications(tables[FileCertifications])
	result.Courses = buildCourses(tables[FileCourses])
	result.Educations = buildEducations(tables[FileEducations])
	result.Positions = buildPositions(tables[FilePositions])
	result.Blogs = buildBlogs(tables[FileBlogs])
	result.CVRoles = buildCVRoles(tables[FileCVRoles])
	result.KeyQualifications = buildKeyQualifications(tables[FileKeyQualifications])
	result.Clearances = buildClearances(tables[FileSCClearance])
	result.Availability = buildAvailability(tables[FileAvailability])

	slog.Info("transform complete",
		"users", len(result.Users),
		"cvs", len(result.CVs),
		"technologies", len(result.Technologies),
		"languages", len(result.Languages),
		"project_experiences", len(result.ProjectExperiences),
		"clearances", len(result.Clearances),
		"availability", len(result.Availability))
	return result, nil
}

func nationalityByUserID(usage extract.Table) map[string]normalize.Multilang {
	out := map[string]normalize.Multilang{}
	if !usage.HasColumn(colNationalityMultilang) {
		return out
	}
	for _, row := range usage.Rows {
		userID := row.Get(colUserID)
		if userID == "" {
			continue
		}
		out[userID] = normalize.ParseMultilang(row.Get(colNationalityMultilang))
	}
	return out
}

func buildUser(row extract.Row, nationalities map[string]normalize.Multilang) UserRow {
	userID := row.Get(colUserID)
	nationality, ok := nationalities[userID]
	if !ok {
		nationality = normalize.Multilang{}
	}
	return UserRow{
		CVPartnerUserID: userID,
		Name:            normalize.ParseMultilang(row.Get(colNameMultilang)),
		Email:           normalize.CleanString(row.Get(colEmail), ""),
		UPN:             normalize.CleanString(row.Get(colUPN), ""),
		ExternalUserID:  normalize.CleanString(row.Get(colExternalID), ""),
		PhoneNumber:     normalize.CleanStringPtr(row.Get(colPhoneNumber)),
		Landline:        normalize.CleanStringPtr(row.Get(colLandline)),
		BirthYear:       normalize.ToIntPtr(row.Get(colBirthYear)),
		Department:      normalize.CleanStringPtr(row.Get(colDepartment)),
		Country:         normalize.CleanStringPtr(row.Get(colCountry)),
		CreatedAt:       normalize.ToDate(row.Get(colUserCreatedAt)),
		Nationality:     nationality,
	}
}

func buildCV(row extract.Row) CVRow {
	return CVRow{
		CVPartnerCVID:        row.Get(colCVID),
		CVPartnerUserID:      row.Get(colUserID),
		Title:                normalize.ParseMultilang(row.Get(colTitleMultilang)),
		YearsOfEducation:     normalize.ToIntPtr(row.Get(colYearsOfEducation)),
		YearsSinceFirstWork:  normalize.ToIntPtr(row.Get(colYearsSinceFirstWork)),
		HasProfileImage:      normalize.ToBool(row.Get(colHasProfileImage)),
		OwnsReferenceProject: normalize.ToBool(row.Get(colOwnsReferenceProject)),
		ReadPrivacyNotice:    normalize.ToBool(row.Get(colReadPrivacyNotice)),
		LastUpdatedByOwner:   normalize.ToDate(row.Get(colCVLastUpdatedByOwner)),
		LastUpdated:          normalize.ToDate(row.Get(colCVLastUpdated)),
		SFIALevel:            normalize.ToIntPtr(row.Get(colSFIALevel)),
		CPDLevel:             normalize.ToIntPtr(row.Get(colCPDLevel)),
		CPDBand:              normalize.CleanStringPtr(row.Get(colCPDBand)),
		CPDLabel:             normalize.CleanStringPtr(row.Get(colCPDLabel)),
	}
}

func buildTechnologies(t extract.Table) []TechnologySkillRow {
	rows := make([]TechnologySkillRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		rows = append(rows, TechnologySkillRow{
			CVPartnerCVID:        row.Get(colCVID),
			SkillName:            normalize.CleanString(row.Get(colSkillName), ""),
			YearsExperience:      normalize.ToIntPtr(row.Get(colYearExp)),
			Proficiency:          normalize.ToIntPtr(row.Get(colProficiency)),
			IsOfficialMasterdata: normalize.ParseMultilang(row.Get(colOfficialMasterRaw)),
		})
	}
	return rows
}

func buildLanguages(t extract.Table) []LanguageSkillRow {
	rows := make([]LanguageSkillRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		rows = append(rows, LanguageSkillRow{
			CVPartnerCVID:        row.Get(colCVID),
			Language:             normalize.CleanString(row.Get(colLanguage), ""),
			Level:                normalize.CleanStringPtr(row.Get(colLevel)),
			Highlighted:          normalize.ToBool(row.Get(colHighlighted)),
			IsOfficialMasterdata: normalize.ParseMultilang(row.Get(colOfficialMasterRaw)),
			Updated:              normalize.ToDate(row.Get(colUpdated)),
			UpdatedByOwner:       normalize.ToDate(row.Get(colUpdatedByOwner)),
		})
	}
	return rows
}

func buildProjectExperiences(t extract.Table) []ProjectExperienceRow {
	rows := make([]ProjectExperienceRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		rows = append(rows, ProjectExperienceRow{
			CVPartnerCVID:       row.Get(colCVID),
			SectionID:           normalize.CleanString(row.Get(colSectionID), ""),
			ExternalUniqueID:    normalize.CleanStringPtr(row.Get(colExternalUniqueID)),
			MonthFrom:           normalize.ToIntPtr(row.Get(colMonthFrom)),
			YearFrom:            normalize.ToIntPtr(row.Get(colYearFrom)),
			MonthTo:             normalize.ToIntPtr(row.Get(colMonthTo)),
			YearTo:              normalize.ToIntPtr(row.Get(colYearTo)),
			CustomerInt:         normalize.CleanStringPtr(row.Get(colCustomerInt)),
			Customer:            normalize.ParseMultilang(row.Get(colCustomerML)),
			CustomerAnonInt:     normalize.CleanStringPtr(row.Get(colCustomerAnonInt)),
			CustomerAnon:        normalize.ParseMultilang(row.Get(colCustomerAnonML)),
			DescriptionInt:      normalize.CleanStringPtr(row.Get(colDescriptionInt)),
			Description:         normalize.ParseMultilang(row.Get(colDescriptionML)),
			LongDescriptionInt:  normalize.CleanStringPtr(row.Get(colLongDescInt)),
			LongDescription:     normalize.ParseMultilang(row.Get(colLongDescML)),
			Industry:            normalize.CleanString(row.Get(colIndustryInt), ""),
			ProjectType:         normalize.CleanString(row.Get(colProjectTypeInt), ""),
			PercentAllocated:    normalize.ToIntPtr(row.Get(colPercentAllocated)),
			ExtentIndividualHrs: normalize.ToFloatPtr(row.Get(colExtentIndivHours)),
			ExtentHours:         normalize.ToFloatPtr(row.Get(colExtentHours)),
			ExtentTotalHours:    normalize.ToFloatPtr(row.Get(colExtentTotalHours)),
			ExtentUnit:          normalize.CleanStringPtr(row.Get(colExtentUnit)),
			ExtentCurrency:      normalize.CleanStringPtr(row.Get(colExtentCurrency)),
			ExtentTotal:         normalize.ToFloatPtr(row.Get(colExtentTotal)),
			ExtentTotalCurrency: normalize.CleanStringPtr(row.Get(colExtentTotalCurr)),
			ProjectArea:         normalize.ToFloatPtr(row.Get(colProjectArea)),
			ProjectAreaUnit:     normalize.CleanStringPtr(row.Get(colProjectAreaUnit)),
			Highlighted:         normalize.ToBool(row.Get(colHighlighted)),
			Updated:             normalize.ToDate(row.Get(colUpdated)),
			UpdatedByOwner:      normalize.ToDate(row.Get(colUpdatedByOwner)),
		})
	}
	return rows
}

func buildWorkExperiences(t extract.Table) []WorkExperienceRow {
	rows := make([]WorkExperienceRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		longDescription := row.Get(colLongDescriptionW)
		if longDescription == "" {
			longDescription = row.Get(colLongDescription)
		}
		rows = append(rows, WorkExperienceRow{
			CVPartnerCVID:    row.Get(colCVID),
			SectionID:        normalize.CleanString(row.Get(colSectionID), ""),
			ExternalUniqueID: normalize.CleanStringPtr(row.Get(colExternalUniqueID)),
			MonthFrom:        normalize.ToIntPtr(row.Get(colMonthFrom)),
			YearFrom:         normalize.ToIntPtr(row.Get(colYearFrom)),
			MonthTo:          normalize.ToIntPtr(row.Get(colMonthTo)),
			YearTo:           normalize.ToIntPtr(row.Get(colYearTo)),
			Highlighted:      normalize.ToBool(row.Get(colHighlighted)),
			Employer:         normalize.CleanStringPtr(row.Get(colEmployer)),
			Description:      normalize.CleanStringPtr(row.Get(colDescription)),
			LongDescription:  normalize.CleanStringPtr(longDescription),
			Updated:          normalize.ToDate(row.Get(colUpdated)),
			UpdatedByOwner:   normalize.ToDate(row.Get(colUpdatedByOwner)),
		})
	}
	return rows
}

func buildCertifications(t extract.Table) []CertificationRow {
	rows := make([]CertificationRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		rows = append(rows, CertificationRow{
			CVPartnerCVID:    row.Get(colCVID),
			SectionID:        normalize.CleanString(row.Get(colSectionID), ""),
			ExternalUniqueID: normalize.CleanStringPtr(row.Get(colExternalUniqueID)),
			Month:            normalize.ToIntPtr(row.Get(colMonth)),
			Year:             normalize.ToIntPtr(row.Get(colYear)),
			MonthExpire:      normalize.ToIntPtr(row.Get(colMonthExpire)),
			YearExpire:       normalize.ToIntPtr(row.Get(colYearExpire)),
			Updated:          normalize.ToDate(row.Get(colUpdated)),
			UpdatedByOwner:   normalize.ToDate(row.Get(colUpdatedByOwner)),
		})
	}
	return rows
}

func buildCourses(t extract.Table) []CourseRow {
	rows := make([]CourseRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		rows = append(rows, CourseRow{
			CVPartnerCVID:        row.Get(colCVID),
			SectionID:            normalize.CleanString(row.Get(colSectionID), ""),
			ExternalUniqueID:     normalize.CleanStringPtr(row.Get(colExternalUniqueID)),
			Month:                normalize.ToIntPtr(row.Get(colMonth)),
			Year:                 normalize.ToIntPtr(row.Get(colYear)),
			Name:                 normalize.CleanStringPtr(row.Get(colName)),
			Organiser:            normalize.CleanStringPtr(row.Get(colOrganiser)),
			LongDescription:      normalize.CleanStringPtr(row.Get(colLongDescription)),
			Highlighted:          normalize.ToBool(row.Get(colHighlighted)),
			IsOfficialMasterdata: normalize.ParseMultilang(row.Get(colOfficialMasterRaw)),
			Attachments:          normalize.CleanStringPtr(row.Get(colAttachments)),
			Updated:              normalize.ToDate(row.Get(colUpdated)),
			UpdatedByOwner:       normalize.ToDate(row.Get(colUpdatedByOwner)),
		})
	}
	return rows
}

func buildEducations(t extract.Table) []EducationRow {
	rows := make([]EducationRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		rows = append(rows, EducationRow{
			CVPartnerCVID:    row.Get(colCVID),
			SectionID:        normalize.CleanString(row.Get(colSectionID), ""),
			ExternalUniqueID: normalize.CleanStringPtr(row.Get(colExternalUniqueID)),
			MonthFrom:        normalize.ToIntPtr(row.Get(colMonthFrom)),
			YearFrom:         normalize.ToIntPtr(row.Get(colYearFrom)),
			MonthTo:          normalize.ToIntPtr(row.Get(colMonthTo)),
			YearTo:           normalize.ToIntPtr(row.Get(colYearTo)),
			Highlighted:      normalize.ToBool(row.Get(colHighlighted)),
			Attachments:      normalize.CleanStringPtr(row.Get(colAttachments)),
			PlaceOfStudy:     normalize.CleanStringPtr(row.Get(colPlaceOfStudy)),
			Degree:           normalize.CleanStringPtr(row.Get(colDegree)),
			Description:      normalize.CleanStringPtr(row.Get(colDescription)),
			Updated:          normalize.ToDate(row.Get(colUpdated)),
			UpdatedByOwner:   normalize.ToDate(row.Get(colUpdatedByOwner)),
		})
	}
	return rows
}

func buildPositions(t extract.Table) []PositionRow {
	rows := make([]PositionRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		rows = append(rows, PositionRow{
			CVPartnerCVID:    row.Get(colCVID),
			SectionID:        normalize.CleanString(row.Get(colSectionID), ""),
			ExternalUniqueID: normalize.CleanStringPtr(row.Get(colExternalUniqueID)),
			YearFrom:         normalize.ToIntPtr(row.Get(colYearFrom)),
			YearTo:           normalize.ToIntPtr(row.Get(colYearTo)),
			Highlighted:      normalize.ToBool(row.Get(colHighlighted)),
			Name:             normalize.CleanStringPtr(row.Get(colName)),
			Description:      normalize.CleanStringPtr(row.Get(colDescription)),
			Updated:          normalize.ToDate(row.Get(colUpdated)),
			UpdatedByOwner:   normalize.ToDate(row.Get(colUpdatedByOwner)),
		})
	}
	return rows
}

func buildBlogs(t extract.Table) []BlogRow {
	rows := make([]BlogRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		rows = append(rows, BlogRow{
			CVPartnerCVID:    row.Get(colCVID),
			SectionID:        normalize.CleanString(row.Get(colSectionID), ""),
			ExternalUniqueID: normalize.CleanStringPtr(row.Get(colExternalUniqueID)),
			Name:             normalize.CleanStringPtr(row.Get(colName)),
			Description:      normalize.CleanStringPtr(row.Get(colDescription)),
			Highlighted:      normalize.ToBool(row.Get(colHighlighted)),
			Updated:          normalize.ToDate(row.Get(colUpdated)),
			UpdatedByOwner:   normalize.ToDate(row.Get(colUpdatedByOwner)),
		})
	}
	return rows
}

func buildCVRoles(t extract.Table) []CVRoleRow {
	rows := make([]CVRoleRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		rows = append(rows, CVRoleRow{
			CVPartnerCVID:  row.Get(colCVID),
			Name:           normalize.CleanString(row.Get(colName), ""),
			Description:    normalize.CleanStringPtr(row.Get(colDescription)),
			Highlighted:    normalize.ToBool(row.Get(colHighlighted)),
			Updated:        normalize.ToDate(row.Get(colUpdated)),
			UpdatedByOwner: normalize.ToDate(row.Get(colUpdatedByOwner)),
		})
	}
	return rows
}

func buildKeyQualifications(t extract.Table) []KeyQualificationRow {
	rows := make([]KeyQualificationRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		rows = append(rows, KeyQualificationRow{
			CVPartnerCVID:    row.Get(colCVID),
			SectionID:        normalize.CleanString(row.Get(colSectionID), ""),
			ExternalUniqueID: normalize.CleanStringPtr(row.Get(colExternalUniqueID)),
			Label:            normalize.CleanStringPtr(row.Get(colLabel)),
			Summary:          normalize.CleanStringPtr(row.Get(colSummary)),
			ShortDescription: normalize.CleanStringPtr(row.Get(colShortDescription)),
			Updated:          normalize.ToDate(row.Get(colUpdated)),
			UpdatedByOwner:   normalize.ToDate(row.Get(colUpdatedByOwner)),
		})
	}
	return rows
}

func buildClearances(t extract.Table) []ClearanceRow {
	rows := make([]ClearanceRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		rows = append(rows, ClearanceRow{
			Email:          normalize.CleanString(row.Get(colEmail), ""),
			UPN:            normalize.CleanString(row.Get(colUPN), ""),
			ExternalUserID: normalize.CleanString(row.Get(colExternalID), ""),
			Clearance:      normalize.CleanString(row.Get(colClearance), ""),
			ValidFrom:      normalize.ToDate(row.Get(colValidFrom)),
			ValidTo:        normalize.ToDate(row.Get(colValidTo)),
			VerifiedBy:     normalize.CleanStringPtr(row.Get(colVerifiedBy)),
			Notes:          normalize.CleanStringPtr(row.Get(colNotes)),
		})
	}
	return rows
}

func buildAvailability(t extract.Table) []AvailabilityRow {
	rows := make([]AvailabilityRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		rows = append(rows, AvailabilityRow{
			Email:            normalize.CleanString(row.Get(colEmail), ""),
			UPN:              normalize.CleanString(row.Get(colUPN), ""),
			ExternalUserID:   normalize.CleanString(row.Get(colExternalID), ""),
			Date:             normalize.ToDate(row.Get(colDate)),
			PercentAvailable: normalize.ClampPercent(row.Get(colPercentAvailable)),
			Source:           normalize.CleanString(row.Get(colSource), ""),
		})
	}
	return rows
}
