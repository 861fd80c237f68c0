package postgres

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	dm "github.com/frahmantamala/flowcase-warehouse/internal/core/datamodel/warehouse"
	"github.com/frahmantamala/flowcase-warehouse/internal/normalize"
	"github.com/frahmantamala/flowcase-warehouse/internal/transform"
)

func jsonMap(m normalize.Multilang) datatypes.JSONMap {
	out := datatypes.JSONMap{}
	for code, text := range m {
		out[code] = text
	}
	return out
}

func ptrIfNotEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *session) upsertUsers(rows []transform.UserRow) error {
	if len(rows) == 0 {
		return nil
	}
	s.logger.Info("upserting users", "rows", len(rows))
	rows = dedupeLast(rows, func(r transform.UserRow) string { return r.CVPartnerUserID })

	batch := make([]dm.User, 0, len(rows))
	for _, r := range rows {
		batch = append(batch, dm.User{
			CVPartnerUserID:      r.CVPartnerUserID,
			NameMultilang:        jsonMap(r.Name),
			Email:                ptrIfNotEmpty(r.Email),
			UPN:                  ptrIfNotEmpty(r.UPN),
			ExternalUserID:       ptrIfNotEmpty(r.ExternalUserID),
			PhoneNumber:          r.PhoneNumber,
			Landline:             r.Landline,
			BirthYear:            r.BirthYear,
			Department:           r.Department,
			Country:              r.Country,
			UserCreatedAt:        r.CreatedAt,
			NationalityMultilang: jsonMap(r.Nationality),
		})
	}
	return s.upsert(
		[]string{"cv_partner_user_id"},
		[]string{
			"name_multilang", "email", "upn", "external_user_id", "phone_number",
			"landline", "birth_year", "department", "country", "user_created_at",
			"nationality_multilang",
		},
		&batch,
	)
}

func (s *session) upsertCVs(rows []transform.CVRow) error {
	if len(rows) == 0 {
		return nil
	}
	s.logger.Info("upserting cvs", "rows", len(rows))
	rows = dedupeLast(rows, func(r transform.CVRow) string { return r.CVPartnerCVID })

	batch := make([]dm.CV, 0, len(rows))
	for _, r := range rows {
		userID, err := s.userIDByBusiness(r.CVPartnerUserID)
		if err != nil {
			return err
		}
		if userID == nil {
			s.drop("cvs", "unknown user", "cv_partner_cv_id", r.CVPartnerCVID, "cv_partner_user_id", r.CVPartnerUserID)
			continue
		}
		batch = append(batch, dm.CV{
			CVPartnerCVID:                 r.CVPartnerCVID,
			UserID:                        *userID,
			TitleMultilang:                jsonMap(r.Title),
			YearsOfEducation:              r.YearsOfEducation,
			YearsSinceFirstWorkExperience: r.YearsSinceFirstWork,
			HasProfileImage:               r.HasProfileImage,
			OwnsReferenceProject:          r.OwnsReferenceProject,
			ReadPrivacyNotice:             r.ReadPrivacyNotice,
			CVLastUpdatedByOwner:          r.LastUpdatedByOwner,
			CVLastUpdated:                 r.LastUpdated,
			SFIALevel:                     r.SFIALevel,
			CPDLevel:                      r.CPDLevel,
			CPDBand:                       r.CPDBand,
			CPDLabel:                      r.CPDLabel,
		})
	}
	if len(batch) == 0 {
		return nil
	}
	return s.upsert(
		[]string{"cv_partner_cv_id"},
		[]string{
			"title_multilang", "years_of_education", "years_since_first_work_experience",
			"has_profile_image", "owns_reference_project", "read_privacy_notice",
			"cv_last_updated_by_owner", "cv_last_updated",
			"sfia_level", "cpd_level", "cpd_band", "cpd_label",
		},
		&batch,
	)
}

func (s *session) upsertTechnologies(rows []transform.TechnologySkillRow) error {
	if len(rows) == 0 {
		return nil
	}
	s.logger.Info("upserting technology skills", "rows", len(rows))

	batch := make([]dm.CVTechnology, 0, len(rows))
	for _, r := range rows {
		techID, err := s.ensureDim("dim_technology", "technology_id", r.SkillName)
		if err != nil {
			return err
		}
		if techID == nil {
			s.drop("technologies", "unresolvable technology", "cv_partner_cv_id", r.CVPartnerCVID)
			continue
		}
		cvID, err := s.cvID(r.CVPartnerCVID)
		if err != nil {
			return err
		}
		if cvID == nil {
			s.drop("technologies", "unknown cv", "cv_partner_cv_id", r.CVPartnerCVID, "skill", r.SkillName)
			continue
		}
		batch = append(batch, dm.CVTechnology{
			CVID:                 *cvID,
			TechnologyID:         *techID,
			YearsExperience:      r.YearsExperience,
			Proficiency:          r.Proficiency,
			IsOfficialMasterdata: jsonMap(r.IsOfficialMasterdata),
		})
	}
	if len(batch) == 0 {
		return nil
	}
	batch = dedupeLast(batch, func(r dm.CVTechnology) string {
		return fmt.Sprintf("%d\x00%d", r.CVID, r.TechnologyID)
	})
	return s.upsert(
		[]string{"cv_id", "technology_id"},
		[]string{"years_experience", "proficiency", "is_official_masterdata"},
		&batch,
	)
}

func (s *session) upsertLanguages(rows []transform.LanguageSkillRow) error {
	if len(rows) == 0 {
		return nil
	}
	s.logger.Info("upserting language skills", "rows", len(rows))

	batch := make([]dm.CVLanguage, 0, len(rows))
	for _, r := range rows {
		cvID, err := s.cvID(r.CVPartnerCVID)
		if err != nil {
			return err
		}
		if cvID == nil {
			s.drop("languages", "unknown cv", "cv_partner_cv_id", r.CVPartnerCVID, "language", r.Language)
			continue
		}
		langID, err := s.ensureDim("dim_language", "language_id", r.Language)
		if err != nil {
			return err
		}
		if langID == nil {
			s.drop("languages", "unresolvable language", "cv_partner_cv_id", r.CVPartnerCVID)
			continue
		}
		batch = append(batch, dm.CVLanguage{
			CVID:                 *cvID,
			LanguageID:           *langID,
			Level:                r.Level,
			Highlighted:          r.Highlighted,
			IsOfficialMasterdata: jsonMap(r.IsOfficialMasterdata),
			Updated:              r.Updated,
			UpdatedByOwner:       r.UpdatedByOwner,
		})
	}
	if len(batch) == 0 {
		return nil
	}
	batch = dedupeLast(batch, func(r dm.CVLanguage) string {
		return fmt.Sprintf("%d\x00%d", r.CVID, r.LanguageID)
	})
	return s.upsert(
		[]string{"cv_id", "language_id"},
		[]string{"level", "highlighted", "is_official_masterdata", "updated", "updated_by_owner"},
		&batch,
	)
}

func (s *session) upsertProjectExperiences(rows []transform.ProjectExperienceRow) error {
	if len(rows) == 0 {
		return nil
	}
	s.logger.Info("upserting project experiences", "rows", len(rows))

	batch := make([]dm.ProjectExperience, 0, len(rows))
	for _, r := range rows {
		cvID, err := s.cvID(r.CVPartnerCVID)
		if err != nil {
			return err
		}
		if cvID == nil {
			s.drop("project_experiences", "unknown cv", "cv_partner_cv_id", r.CVPartnerCVID)
			continue
		}
		industryID, err := s.ensureDim("dim_industry", "industry_id", r.Industry)
		if err != nil {
			return err
		}
		projectTypeID, err := s.ensureDim("dim_project_type", "project_type_id", r.ProjectType)
		if err != nil {
			return err
		}
		batch = append(batch, dm.ProjectExperience{
			CVID:                     *cvID,
			CVPartnerSectionID:       r.SectionID,
			ExternalUniqueID:         r.ExternalUniqueID,
			MonthFrom:                r.MonthFrom,
			YearFrom:                 r.YearFrom,
			MonthTo:                  r.MonthTo,
			YearTo:                   r.YearTo,
			CustomerInt:              r.CustomerInt,
			CustomerMultilang:        jsonMap(r.Customer),
			CustomerAnonInt:          r.CustomerAnonInt,
			CustomerAnonMultilang:    jsonMap(r.CustomerAnon),
			DescriptionInt:           r.DescriptionInt,
			DescriptionMultilang:     jsonMap(r.Description),
			LongDescriptionInt:       r.LongDescriptionInt,
			LongDescriptionMultilang: jsonMap(r.LongDescription),
			IndustryID:               industryID,
			ProjectTypeID:            projectTypeID,
			PercentAllocated:         r.PercentAllocated,
			ExtentIndividualHours:    r.ExtentIndividualHrs,
			ExtentHours:              r.ExtentHours,
			ExtentTotalHours:         r.ExtentTotalHours,
			ExtentUnit:               r.ExtentUnit,
			ExtentCurrency:           r.ExtentCurrency,
			ExtentTotal:              r.ExtentTotal,
			ExtentTotalCurrency:      r.ExtentTotalCurrency,
			ProjectArea:              r.ProjectArea,
			ProjectAreaUnit:          r.ProjectAreaUnit,
			Highlighted:              r.Highlighted,
			Updated:                  r.Updated,
			UpdatedByOwner:           r.UpdatedByOwner,
		})
	}
	if len(batch) == 0 {
		return nil
	}
	batch = dedupeLast(batch, func(r dm.ProjectExperience) string {
		return fmt.Sprintf("%d\x00%s", r.CVID, r.CVPartnerSectionID)
	})
	return s.upsert(
		[]string{"cv_id", "cv_partner_section_id"},
		[]string{
			"external_unique_id", "month_from", "year_from", "month_to", "year_to",
			"customer_int", "customer_multilang", "customer_anon_int", "customer_anon_multilang",
			"description_int", "description_multilang", "long_description_int", "long_description_multilang",
			"industry_id", "project_type_id", "percent_allocated",
			"extent_individual_hours", "extent_hours", "extent_total_hours",
			"extent_unit", "extent_currency", "extent_total", "extent_total_currency",
			"project_area", "project_area_unit", "highlighted", "updated", "updated_by_owner",
		},
		&batch,
	)
}

func (s *session) upsertWorkExperiences(rows []transform.WorkExperienceRow) error {
	if len(rows) == 0 {
		return nil
	}
	s.logger.Info("upserting work experiences", "rows", len(rows))

	batch := make([]dm.WorkExperience, 0, len(rows))
	for _, r := range rows {
		cvID, err := s.cvID(r.CVPartnerCVID)
		if err != nil {
			return err
		}
		if cvID == nil {
			s.drop("work_experiences", "unknown cv", "cv_partner_cv_id", r.CVPartnerCVID)
			continue
		}
		batch = append(batch, dm.WorkExperience{
			CVID:               *cvID,
			CVPartnerSectionID: r.SectionID,
			ExternalUniqueID:   r.ExternalUniqueID,
			MonthFrom:          r.MonthFrom,
			YearFrom:           r.YearFrom,
			MonthTo:            r.MonthTo,
			YearTo:             r.YearTo,
			Highlighted:        r.Highlighted,
			Employer:           r.Employer,
			Description:        r.Description,
			LongDescription:    r.LongDescription,
			Updated:            r.Updated,
			UpdatedByOwner:     r.UpdatedByOwner,
		})
	}
	if len(batch) == 0 {
		return nil
	}
	batch = dedupeLast(batch, func(r dm.WorkExperience) string {
		return fmt.Sprintf("%d\x00%s", r.CVID, r.CVPartnerSectionID)
	})
	return s.upsert(
		[]string{"cv_id", "cv_partner_section_id"},
		[]string{
			"external_unique_id", "month_from", "year_from", "month_to", "year_to",
			"highlighted", "employer", "description", "long_description",
			"updated", "updated_by_owner",
		},
		&batch,
	)
}

func (s *session) upsertCertifications(rows []transform.CertificationRow) error {
	if len(rows) == 0 {
		return nil
	}
	s.logger.Info("upserting certifications", "rows", len(rows))

	batch := make([]dm.Certification, 0, len(rows))
	for _, r := range rows {
		cvID, err := s.cvID(r.CVPartnerCVID)
		if err != nil {
			return err
		}
		if cvID == nil {
			s.drop("certifications", "unknown cv", "cv_partner_cv_id", r.CVPartnerCVID)
			continue
		}
		batch = append(batch, dm.Certification{
			CVID:               *cvID,
			CVPartnerSectionID: r.SectionID,
			ExternalUniqueID:   r.ExternalUniqueID,
			Month:              r.Month,
			Year:               r.Year,
			MonthExpire:        r.MonthExpire,
			YearExpire:         r.YearExpire,
			Updated:            r.Updated,
			UpdatedByOwner:     r.UpdatedByOwner,
		})
	}
	if len(batch) == 0 {
		return nil
	}
	batch = dedupeLast(batch, func(r dm.Certification) string {
		return fmt.Sprintf("%d\x00%s", r.CVID, r.CVPartnerSectionID)
	})
	return s.upsert(
		[]string{"cv_id", "cv_partner_section_id"},
		[]string{
			"external_unique_id", "month", "year", "month_expire", "year_expire",
			"updated", "updated_by_owner",
		},
		&batch,
	)
}

func (s *session) upsertCourses(rows []transform.CourseRow) error {
	if len(rows) == 0 {
		return nil
	}
	s.logger.Info("upserting courses", "rows", len(rows))

	batch := make([]dm.Course, 0, len(rows))
	for _, r := range rows {
		cvID, err := s.cvID(r.CVPartnerCVID)
		if err != nil {
			return err
		}
		if cvID == nil {
			s.drop("courses", "unknown cv", "cv_partner_cv_id", r.CVPartnerCVID)
			continue
		}
		batch = append(batch, dm.Course{
			CVID:                 *cvID,
			CVPartnerSectionID:   r.SectionID,
			ExternalUniqueID:     r.ExternalUniqueID,
			Month:                r.Month,
			Year:                 r.Year,
			Name:                 r.Name,
			Organiser:            r.Organiser,
			LongDescription:      r.LongDescription,
			Highlighted:          r.Highlighted,
			IsOfficialMasterdata: jsonMap(r.IsOfficialMasterdata),
			Attachments:          r.Attachments,
			Updated:              r.Updated,
			UpdatedByOwner:       r.UpdatedByOwner,
		})
	}
	if len(batch) == 0 {
		return nil
	}
	batch = dedupeLast(batch, func(r dm.Course) string {
		return fmt.Sprintf("%d\x00%s", r.CVID, r.CVPartnerSectionID)
	})
	return s.upsert(
		[]string{"cv_id", "cv_partner_section_id"},
		[]string{
			"external_unique_id", "month", "year", "name", "organiser",
			"long_description", "highlighted", "is_official_masterdata",
			"attachments", "updated", "updated_by_owner",
		},
		&batch,
	)
}

func (s *session) upsertEducations(rows []transform.EducationRow) error {
	if len(rows) == 0 {
		return nil
	}
	s.logger.Info("upserting educations", "rows", len(rows))

	batch := make([]dm.Education, 0, len(rows))
	for _, r := range rows {
		cvID, err := s.cvID(r.CVPartnerCVID)
		if err != nil {
			return err
		}
		if cvID == nil {
			s.drop("educations", "unknown cv", "cv_partner_cv_id", r.CVPartnerCVID)
			continue
		}
		batch = append(batch, dm.Education{
			CVID:               *cvID,
			CVPartnerSectionID: r.SectionID,
			ExternalUniqueID:   r.ExternalUniqueID,
			MonthFrom:          r.MonthFrom,
			YearFrom:           r.YearFrom,
			MonthTo:            r.MonthTo,
			YearTo:             r.YearTo,
			Highlighted:        r.Highlighted,
			Attachments:        r.Attachments,
			PlaceOfStudy:       r.PlaceOfStudy,
			Degree:             r.Degree,
			Description:        r.Description,
			Updated:            r.Updated,
			UpdatedByOwner:     r.UpdatedByOwner,
		})
	}
	if len(batch) == 0 {
		return nil
	}
	batch = dedupeLast(batch, func(r dm.Education) string {
		return fmt.Sprintf("%d\x00%s", r.CVID, r.CVPartnerSectionID)
	})
	return s.upsert(
		[]string{"cv_id", "cv_partner_section_id"},
		[]string{
			"external_unique_id", "month_from", "year_from", "month_to", "year_to",
			"highlighted", "attachments", "place_of_study", "degree", "description",
			"updated", "updated_by_owner",
		},
		&batch,
	)
}

func (s *session) upsertPositions(rows []transform.PositionRow) error {
	if len(rows) == 0 {
		return nil
	}
	s.logger.Info("upserting positions", "rows", len(rows))

	batch := make([]dm.Position, 0, len(rows))
	for _, r := range rows {
		cvID, err := s.cvID(r.CVPartnerCVID)
		if err != nil {
			return err
		}
		if cvID == nil {
			s.drop("positions", "unknown cv", "cv_partner_cv_id", r.CVPartnerCVID)
			continue
		}
		batch = append(batch, dm.Position{
			CVID:               *cvID,
			CVPartnerSectionID: r.SectionID,
			ExternalUniqueID:   r.ExternalUniqueID,
			YearFrom:           r.YearFrom,
			YearTo:             r.YearTo,
			Highlighted:        r.Highlighted,
			Name:               r.Name,
			Description:        r.Description,
			Updated:            r.Updated,
			UpdatedByOwner:     r.UpdatedByOwner,
		})
	}
	if len(batch) == 0 {
		return nil
	}
	batch = dedupeLast(batch, func(r dm.Position) string {
		return fmt.Sprintf("%d\x00%s", r.CVID, r.CVPartnerSectionID)
	})
	return s.upsert(
		[]string{"cv_id", "cv_partner_section_id"},
		[]string{
			"external_unique_id", "year_from", "year_to", "highlighted",
			"name", "description", "updated", "updated_by_owner",
		},
		&batch,
	)
}

func (s *session) upsertBlogs(rows []transform.BlogRow) error {
	if len(rows) == 0 {
		return nil
	}
	s.logger.Info("upserting blog publications", "rows", len(rows))

	batch := make([]dm.BlogPublication, 0, len(rows))
	for _, r := range rows {
		cvID, err := s.cvID(r.CVPartnerCVID)
		if err != nil {
			return err
		}
		if cvID == nil {
			s.drop("blogs", "unknown cv", "cv_partner_cv_id", r.CVPartnerCVID)
			continue
		}
		batch = append(batch, dm.BlogPublication{
			CVID:               *cvID,
			CVPartnerSectionID: r.SectionID,
			ExternalUniqueID:   r.ExternalUniqueID,
			Name:               r.Name,
			Description:        r.Description,
			Highlighted:        r.Highlighted,
			Updated:            r.Updated,
			UpdatedByOwner:     r.UpdatedByOwner,
		})
	}
	if len(batch) == 0 {
		return nil
	}
	batch = dedupeLast(batch, func(r dm.BlogPublication) string {
		return fmt.Sprintf("%d\x00%s", r.CVID, r.CVPartnerSectionID)
	})
	return s.upsert(
		[]string{"cv_id", "cv_partner_section_id"},
		[]string{
			"external_unique_id", "name", "description", "highlighted",
			"updated", "updated_by_owner",
		},
		&batch,
	)
}

func (s *session) upsertCVRoles(rows []transform.CVRoleRow) error {
	if len(rows) == 0 {
		return nil
	}
	s.logger.Info("upserting cv roles", "rows", len(rows))

	batch := make([]dm.CVRole, 0, len(rows))
	for _, r := range rows {
		cvID, err := s.cvID(r.CVPartnerCVID)
		if err != nil {
			return err
		}
		if cvID == nil {
			s.drop("cv_roles", "unknown cv", "cv_partner_cv_id", r.CVPartnerCVID, "name", r.Name)
			continue
		}
		batch = append(batch, dm.CVRole{
			CVID:           *cvID,
			Name:           r.Name,
			Description:    r.Description,
			Highlighted:    r.Highlighted,
			Updated:        r.Updated,
			UpdatedByOwner: r.UpdatedByOwner,
		})
	}
	if len(batch) == 0 {
		return nil
	}
	batch = dedupeLast(batch, func(r dm.CVRole) string {
		return fmt.Sprintf("%d\x00%s", r.CVID, r.Name)
	})
	return s.upsert(
		[]string{"cv_id", "name"},
		[]string{"description", "highlighted", "updated", "updated_by_owner"},
		&batch,
	)
}

func (s *session) upsertKeyQualifications(rows []transform.KeyQualificationRow) error {
	if len(rows) == 0 {
		return nil
	}
	s.logger.Info("upserting key qualifications", "rows", len(rows))

	batch := make([]dm.KeyQualification, 0, len(rows))
	for _, r := range rows {
		cvID, err := s.cvID(r.CVPartnerCVID)
		if err != nil {
			return err
		}
		if cvID == nil {
			s.drop("key_qualifications", "unknown cv", "cv_partner_cv_id", r.CVPartnerCVID)
			continue
		}
		batch = append(batch, dm.KeyQualification{
			CVID:               *cvID,
			CVPartnerSectionID: r.SectionID,
			ExternalUniqueID:   r.ExternalUniqueID,
			Label:              r.Label,
			Summary:            r.Summary,
			ShortDescription:   r.ShortDescription,
			Updated:            r.Updated,
			UpdatedByOwner:     r.UpdatedByOwner,
		})
	}
	if len(batch) == 0 {
		return nil
	}
	batch = dedupeLast(batch, func(r dm.KeyQualification) string {
		return fmt.Sprintf("%d\x00%s", r.CVID, r.CVPartnerSectionID)
	})
	return s.upsert(
		[]string{"cv_id", "cv_partner_section_id"},
		[]string{
			"external_unique_id", "label", "summary", "short_description",
			"updated", "updated_by_owner",
		},
		&batch,
	)
}

func (s *session) upsertClearances(rows []transform.ClearanceRow) error {
	if len(rows) == 0 {
		return nil
	}
	s.logger.Info("upserting security clearances", "rows", len(rows))

	batch := make([]dm.UserClearance, 0, len(rows))
	for _, r := range rows {
		userID, err := s.resolveUser(r.Email, r.UPN, r.ExternalUserID)
		if err != nil {
			return err
		}
		if userID == nil {
			s.drop("clearances", "unresolvable user", "email", r.Email, "upn", r.UPN)
			continue
		}

		clearanceName := r.Clearance
		if clearanceName == "" {
			clearanceName = defaultClearanceName
		}
		clearanceID, err := s.ensureDim("dim_clearance", "clearance_id", clearanceName)
		if err != nil {
			return err
		}

		validFrom := defaultValidFrom
		if r.ValidFrom != nil {
			validFrom = *r.ValidFrom
		}
		validTo := r.ValidTo
		// An inverted window means the expiry is bogus; keep it open-ended.
		if validTo != nil && validTo.Before(validFrom) {
			validTo = nil
		}

		batch = append(batch, dm.UserClearance{
			UserID:      *userID,
			ClearanceID: *clearanceID,
			ValidFrom:   validFrom,
			ValidTo:     validTo,
			VerifiedBy:  r.VerifiedBy,
			Notes:       r.Notes,
		})
	}
	if len(batch) == 0 {
		return nil
	}
	batch = dedupeLast(batch, func(r dm.UserClearance) string {
		return fmt.Sprintf("%d\x00%d\x00%s", r.UserID, r.ClearanceID, r.ValidFrom.Format("2006-01-02"))
	})
	return s.upsert(
		[]string{"user_id", "clearance_id", "valid_from"},
		[]string{"valid_to", "verified_by", "notes"},
		&batch,
	)
}

func (s *session) upsertAvailability(rows []transform.AvailabilityRow) error {
	if len(rows) == 0 {
		return nil
	}
	s.logger.Info("upserting availability", "rows", len(rows))

	now := time.Now().UTC()
	batch := make([]dm.UserAvailability, 0, len(rows))
	for _, r := range rows {
		userID, err := s.resolveUser(r.Email, r.UPN, r.ExternalUserID)
		if err != nil {
			return err
		}
		if userID == nil {
			s.drop("availability", "unresolvable user", "email", r.Email, "upn", r.UPN)
			continue
		}
		// The calendar date is half the conflict key; a row without one
		// cannot be keyed and is dropped like any other unresolvable row.
		if r.Date == nil {
			s.drop("availability", "unparseable date", "email", r.Email)
			continue
		}
		source := r.Source
		if source == "" {
			source = defaultAvailabilitySource
		}
		batch = append(batch, dm.UserAvailability{
			UserID:           *userID,
			Date:             *r.Date,
			PercentAvailable: r.PercentAvailable,
			Source:           &source,
			UpdatedAt:        now,
		})
	}
	if len(batch) == 0 {
		return nil
	}
	batch = dedupeLast(batch, func(r dm.UserAvailability) string {
		return fmt.Sprintf("%d\x00%s", r.UserID, r.Date.Format("2006-01-02"))
	})
	return s.upsert(
		[]string{"user_id", "date"},
		[]string{"percent_available", "source", "updated_at"},
		&batch,
	)
}
