package transform

// Report filenames produced by the vendor export (and the fake generator).
const (
	FileUserReport         = "user_report.csv"
	FileUsageReport        = "usage_report.csv"
	FileProjectExperiences = "project_experiences.csv"
	FileCertifications     = "certifications.csv"
	FileCourses            = "courses.csv"
	FileLanguages          = "languages.csv"
	FileTechnologies       = "technologies.csv"
	FileKeyQualifications  = "key_qualifications.csv"
	FileEducations         = "educations.csv"
	FileWorkExperiences    = "work_experiences.csv"
	FilePositions          = "positions.csv"
	FileBlogs              = "blogs.csv"
	FileCVRoles            = "cv_roles.csv"
	FileSCClearance        = "sc_clearance.csv"
	FileAvailability       = "availability_report.csv"
)

// Column headers as they appear in the CSV exports.
const (
	colUserID    = "CV Partner User ID"
	colCVID      = "CV Partner CV ID"
	colSectionID = "CV Partner section ID"

	colNameMultilang = "Name (multilang)"
	colEmail         = "Email"
	colUPN           = "UPN"
	colExternalID    = "External User ID"
	colPhoneNumber   = "Phone Number"
	colLandline      = "Landline"
	colBirthYear     = "Birth Year"
	colDepartment    = "Department"
	colCountry       = "Country"
	colUserCreatedAt = "User created at"

	colTitleMultilang       = "Title (#{lang})"
	colNationalityMultilang = "Nationality (#{lang})"
	colYearsOfEducation     = "Years of education"
	colYearsSinceFirstWork  = "Years since first work experience"
	colHasProfileImage      = "Has profile image"
	colOwnsReferenceProject = "Owns a reference project"
	colReadPrivacyNotice    = "Read and understood privacy notice"
	colCVLastUpdatedByOwner = "CV Last updated by owner"
	colCVLastUpdated        = "CV Last updated"
	colSFIALevel            = "SFIA Level"
	colCPDLevel             = "CPD Level"
	colCPDBand              = "CPD Band"
	colCPDLabel             = "CPD Label"

	colExternalUniqueID = "External unique ID"
	colMonthFrom        = "Month from"
	colYearFrom         = "Year from"
	colMonthTo          = "Month to"
	colYearTo           = "Year to"
	colMonth            = "Month"
	colYear             = "Year"
	colMonthExpire      = "Month expire"
	colYearExpire       = "Year expire"
	colHighlighted      = "Highlighted"
	colName             = "Name"
	colDescription      = "Description"
	colLongDescription  = "Long description"
	colLongDescriptionW = "Long Description" // work_experiences drifts in case
	colUpdated          = "Updated"
	colUpdatedByOwner   = "Updated by owner"

	colEmployer     = "Employer"
	colAttachments  = "Attachments"
	colPlaceOfStudy = "Place of study"
	colDegree       = "Degree"
	colOrganiser    = "Organiser"

	colLabel            = "Label"
	colSummary          = "Summary of Qualifications"
	colShortDescription = "Short description"

	colSkillName   = "Skill name"
	colYearExp     = "Year experience"
	colProficiency = "Proficiency (0-5)"

	colLanguage = "Language"
	colLevel    = "Level"

	colCustomerML        = "Customer (#{lang})"
	colCustomerInt       = "Customer (int)"
	colCustomerAnonML    = "Customer Anonymized (#{lang})"
	colCustomerAnonInt   = "Customer Anonymized (int)"
	colDescriptionML     = "Description (#{lang})"
	colDescriptionInt    = "Description (int)"
	colLongDescML        = "Long description (#{lang})"
	colLongDescInt       = "Long description (int)"
	colIndustryInt       = "Industry (int)"
	colProjectTypeInt    = "Project type (int)"
	colPercentAllocated  = "Percent allocated"
	colExtentIndivHours  = "Project extent (individual hours)"
	colExtentHours       = "Project extent (hours)"
	colExtentTotalHours  = "Project extent total (hours)"
	colExtentUnit        = "Project extent"
	colExtentCurrency    = "Project extent (currency)"
	colExtentTotal       = "Project extent total"
	colExtentTotalCurr   = "Project extent total (currency)"
	colProjectArea       = "Project area"
	colProjectAreaUnit   = "Project area (unit)"
	colOfficialMasterRaw = "Is official masterdata (in #{lang})"

	colClearance  = "Clearance"
	colValidFrom  = "Valid From"
	colValidTo    = "Valid To"
	colVerifiedBy = "Verified By"
	colNotes      = "Notes"

	colDate             = "Date"
	colPercentAvailable = "Percent Available"
	colSource           = "Source"
)
