// Package generator produces a full set of fake vendor report CSVs shaped
// like the real exports: same filenames, same column headers, same value
// conventions. Fake mode of the pipeline runs entirely off its output.
package generator

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/frahmantamala/flowcase-warehouse/internal"
)

type Config struct {
	Users       int
	Seed        int64
	DaysForward int
}

type Generator struct {
	cfg    Config
	rng    *rand.Rand
	logger *slog.Logger

	now        time.Time
	people     []person
	users      []row
	cvs        []row
	userByCVID map[string]row
}

type row map[string]string

type person struct {
	userID      string
	fullName    string
	email       string
	upn         string
	nationality string
}

func NewGenerator(config Config, logger *slog.Logger) *Generator {
	if config.Users <= 0 {
		config.Users = 500
	}
	if config.DaysForward <= 0 {
		config.DaysForward = 60
	}
	return &Generator{
		cfg:    config,
		rng:    rand.New(rand.NewSource(config.Seed)),
		logger: logger,
	}
}

// Generate writes all 15 report CSVs into a Q{q}{year} folder under baseDir
// and returns the folder path.
func (g *Generator) Generate(baseDir string, now time.Time) (string, error) {
	g.now = now
	quarter := (int(now.Month())-1)/3 + 1
	outDir := filepath.Join(baseDir, fmt.Sprintf("Q%d%d", quarter, now.Year()))
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", internal.NewInternalError("failed to create report folder", err)
	}

	g.buildPeople()

	reports := []struct {
		name string
		rows func() []row
	}{
		{"user_report", g.userReportRows},
		{"usage_report", g.usageReportRows},
		{"project_experiences", g.projectRows},
		{"certifications", g.certificationRows},
		{"courses", g.courseRows},
		{"languages", g.languageRows},
		{"technologies", g.technologyRows},
		{"key_qualifications", g.keyQualificationRows},
		{"educations", g.educationRows},
		{"work_experiences", g.workExperienceRows},
		{"positions", g.positionRows},
		{"blogs", g.blogRows},
		{"cv_roles", g.cvRoleRows},
		{"sc_clearance", g.clearanceRows},
		{"availability_report", g.availabilityRows},
	}
	for _, report := range reports {
		rows := report.rows()
		if err := writeCSV(filepath.Join(outDir, report.name+".csv"), reportHeaders[report.name], rows); err != nil {
			return "", err
		}
		g.logger.Info("report generated", "report", report.name, "rows", len(rows))
	}
	return outDir, nil
}

func writeCSV(path string, headers []string, rows []row) error {
	f, err := os.Create(path)
	if err != nil {
		return internal.NewInternalError("failed to create report csv", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return internal.NewInternalError("failed to write csv header", err)
	}
	record := make([]string, len(headers))
	for _, r := range rows {
		for i, h := range headers {
			record[i] = r[h]
		}
		if err := w.Write(record); err != nil {
			return internal.NewInternalError("failed to write csv row", err)
		}
	}
	w.Flush()
	return w.Error()
}

var baseUserColumns = []string{
	"Name", "Name (multilang)", "Title (#{lang})", "Email", "UPN", "External User ID",
	"CV Partner User ID", "CV Partner CV ID", "Phone Number", "Landline", "Birth Year",
	"Department", "Country",
}

func withBase(extra ...string) []string {
	return append(append([]string{}, baseUserColumns...), extra...)
}

var reportHeaders = map[string][]string{
	"user_report": withBase(
		"User created at", "CV Last updated by owner", "CV Last updated",
		"Years of education", "Years since first work experience", "Access roles",
		"Has profile image", "Owns a reference project", "Read and understood privacy notice",
		"SFIA Level", "CPD Level", "CPD Band", "CPD Label",
	),
	"usage_report": withBase(
		"Nationality (#{lang})",
		"Owner last removed or added a section", "Owner last updated CV", "Last updated CV",
		"Summary Of Qualifications",
		"Owner last updated Qualifications",
		"Project Experiences", "Unique roles", "Owner last updated Project Experiences",
		"Highlighted roles", "Owner last updated Highlighted roles",
		"Skill categories", "Owner last updated Skill categories",
		"Educations", "Years of education", "Owner last updated Educations",
		"Work experiences", "Years since first work experience", "Owner last updated Work experiences",
		"Certifications", "Owner last updated Certifications",
		"Courses", "Owner last updated Courses",
		"Presentations", "Owner last updated Presentations",
		"Recommendations", "Owner last updated Recommendations",
		"Positions", "Owner last updated Positions",
		"Mentoring", "Owner last updated Mentoring",
		"Publications", "Owner last updated Publications",
		"Honors and awards", "Owner last updated Honors and awards",
		"Languages", "Owner last updated Languages",
		"Owner last updated Unique roles",
	),
	"project_experiences": withBase(
		"Nationality", "CV Partner section ID", "External unique ID",
		"Updated", "Updated by owner",
		"Month from", "Year from", "Month to", "Year to",
		"Customer (#{lang})", "Customer (int)", "Customer Anonymized (#{lang})", "Customer Anonymized (int)",
		"Description (#{lang})", "Description (int)", "Long description (#{lang})", "Long description (int)",
		"Industry (#{lang})", "Industry (int)", "Project type (#{lang})", "Project type (int)",
		"Percent allocated",
		"Project extent (individual hours)", "Project extent (hours)", "Project extent total (hours)",
		"Project extent", "Project extent (currency)", "Project extent total", "Project extent total (currency)",
		"Project area", "Project area (unit)", "Highlighted",
	),
	"certifications": withBase(
		"Nationality", "CV Partner section ID", "External unique ID", "Updated", "Updated by owner",
		"Month", "Year", "Month expire", "Year expire",
	),
	"courses": withBase(
		"Nationality", "CV Partner section ID", "External unique ID", "Updated", "Updated by owner",
		"Month", "Year", "Name", "Organiser", "Long description", "Highlighted",
		"Is official masterdata (in #{lang})", "Attachments",
	),
	"languages": withBase(
		"Nationality", "CV Partner section ID", "External unique ID", "Updated", "Updated by owner",
		"Highlighted", "Is official masterdata (in #{lang})", "Language", "Level",
	),
	"technologies": withBase(
		"Nationality", "CV Partner skill ID", "CV Partner skill category ID",
		"Skill name", "Year experience", "Proficiency (0-5)", "Is official masterdata (in #{lang})",
	),
	"key_qualifications": withBase(
		"Nationality", "CV Partner section ID", "External unique ID", "Updated", "Updated by owner",
		"Label", "Summary of Qualifications", "Short description",
	),
	"educations": withBase(
		"Nationality", "CV Partner section ID", "External unique ID", "Updated", "Updated by owner",
		"Month from", "Year from", "Month to", "Year to", "Highlighted", "Attachments",
		"Place of study", "Degree", "Description",
	),
	"work_experiences": withBase(
		"Nationality", "CV Partner section ID", "External unique ID", "Updated", "Updated by owner",
		"Month from", "Year from", "Month to", "Year to", "Highlighted", "Employer",
		"Description", "Long Description",
	),
	"positions": withBase(
		"Nationality", "CV Partner section ID", "External unique ID", "Updated", "Updated by owner",
		"Year from", "Year to", "Highlighted", "Name", "Description",
	),
	"blogs": withBase(
		"Nationality", "CV Partner section ID", "External unique ID", "Updated", "Updated by owner",
		"Name", "Description", "Highlighted",
	),
	"cv_roles": withBase(
		"Nationality", "Updated", "Updated by owner", "Name", "Description", "Highlighted",
	),
	"sc_clearance": {
		"Email", "UPN", "External User ID", "CV Partner User ID",
		"Clearance", "Valid From", "Valid To", "Verified By", "Notes",
	},
	"availability_report": {
		"Email", "UPN", "External User ID", "CV Partner User ID",
		"Date", "Percent Available", "Source",
	},
}

var firstNames = []string{
	"James", "Olivia", "Arjun", "Priya", "Liam", "Emma", "Noah", "Sofia",
	"Mateo", "Amelia", "Lucas", "Freya", "Oscar", "Isla", "Ethan", "Maja",
	"Aiden", "Nora", "Finn", "Clara", "Rohan", "Anya", "Tomas", "Elena",
}

var lastNames = []string{
	"Smith", "Jones", "Patel", "Sharma", "Murphy", "Walsh", "Brown", "Garcia",
	"Novak", "Kowalski", "Hansen", "Larsen", "Taylor", "Wilson", "Khan", "Singh",
	"OConnor", "Byrne", "Evans", "Hughes", "Moreno", "Vidmar", "Nair", "Reddy",
}

var nationalities = []string{"Norwegian", "British", "Swedish", "Danish", "Polish"}

const hexDigits = "0123456789abcdef"

func (g *Generator) shortID() string {
	b := make([]byte, 8)
	for i := range b {
		b[i] = hexDigits[g.rng.Intn(len(hexDigits))]
	}
	return string(b)
}

func (g *Generator) pick(values []string) string {
	return values[g.rng.Intn(len(values))]
}

func (g *Generator) sample(values []string, k int) []string {
	idx := g.rng.Perm(len(values))[:k]
	sort.Ints(idx)
	out := make([]string, 0, k)
	for _, i := range idx {
		out = append(out, values[i])
	}
	return out
}

func (g *Generator) randBool() string {
	if g.rng.Intn(2) == 0 {
		return "true"
	}
	return "false"
}

// maybe blanks the value with probability p, mimicking sparse optional
// columns in real exports.
func (g *Generator) maybe(value string, p float64) string {
	if g.rng.Float64() < p {
		return ""
	}
	return value
}

func (g *Generator) tsInYearsBack(maxYears int) string {
	days := g.rng.Intn(365 * maxYears)
	return g.now.AddDate(0, 0, -days).Format("2006-01-02")
}

func (g *Generator) monthYearPair(startYear, endYear int) (int, int, int, int) {
	y1 := startYear + g.rng.Intn(endYear-startYear)
	span := endYear - y1
	if span > 5 {
		span = 5
	}
	y2 := y1 + g.rng.Intn(span+1)
	return 1 + g.rng.Intn(12), y1, 1 + g.rng.Intn(12), y2
}

func multilang(base string) string {
	return "int:" + base
}

// weightedChoice picks a key proportionally to its weight. Keys are sorted
// first so the same seed always yields the same sequence.
func (g *Generator) weightedChoice(weights map[string]float64) string {
	keys := make([]string, 0, len(weights))
	total := 0.0
	for key, w := range weights {
		keys = append(keys, key)
		total += w
	}
	sort.Strings(keys)
	target := g.rng.Float64() * total
	for _, key := range keys {
		target -= weights[key]
		if target <= 0 {
			return key
		}
	}
	return keys[len(keys)-1]
}

var nonEmailChars = regexp.MustCompile(`[^a-z0-9.]`)

func (g *Generator) buildPeople() {
	domains := []string{"example.org", "example.com", "mail.test"}
	usedEmails := map[string]bool{}

	g.people = g.people[:0]
	for i := 0; i < g.cfg.Users; i++ {
		first := g.pick(firstNames)
		last := g.pick(lastNames)
		base := nonEmailChars.ReplaceAllString(strings.ToLower(first+"."+last), "")
		email := base + "@" + g.pick(domains)
		for n := 2; usedEmails[email]; n++ {
			email = fmt.Sprintf("%s%d@%s", base, n, g.pick(domains))
		}
		usedEmails[email] = true

		g.people = append(g.people, person{
			userID:      g.shortID(),
			fullName:    first + " " + last,
			email:       email,
			upn:         strings.ToLower(first + last),
			nationality: multilang(g.pick(nationalities)),
		})
	}

	// Hand each leadership title to a distinct person. Small populations
	// get as many leaders as there are people.
	leaderTitles := map[string]string{}
	leaderCount := len(leadershipRoles)
	if leaderCount > len(g.people) {
		leaderCount = len(g.people)
	}
	for i, idx := range g.rng.Perm(len(g.people))[:leaderCount] {
		leaderTitles[g.people[idx].userID] = canonicaliseLeadership(leadershipRoles[i])
	}

	practices := make([]string, 0, len(roleTaxonomy))
	for practice := range roleTaxonomy {
		practices = append(practices, practice)
	}
	sort.Strings(practices)

	g.users = g.users[:0]
	g.cvs = g.cvs[:0]
	g.userByCVID = map[string]row{}
	for _, p := range g.people {
		off := offices[g.rng.Intn(len(offices))]
		practice := g.weightedChoice(regionPractices[off.Region])
		family, level := g.chooseRoleAndLevel(practice)

		forcedTitle := leaderTitles[p.userID]
		department := practice
		if forcedTitle != "" {
			department = forcedTitle
		}

		userRow := row{
			"Name":               p.fullName,
			"Name (multilang)":   "int:" + p.fullName,
			"Email":              p.email,
			"UPN":                p.upn,
			"External User ID":   "ext_" + p.userID,
			"CV Partner User ID": p.userID,
			"Phone Number":       fmt.Sprintf("+44 7%03d %06d", g.rng.Intn(1000), g.rng.Intn(1000000)),
			"Landline":           fmt.Sprintf("+44 20 %04d %04d", g.rng.Intn(10000), g.rng.Intn(10000)),
			"Birth Year":         strconv.Itoa(1968 + g.rng.Intn(35)),
			"Department":         department,
			"Country":            isoToCountry[off.CountryISO],
			"Nationality":        p.nationality,
			"User created at":    g.tsInYearsBack(8),
			"Access roles":       g.pick([]string{"Administrator", "Country Manager", "User"}),
		}
		g.users = append(g.users, userRow)

		title := forcedTitle
		if title == "" {
			title = level + " " + family
		}
		if forcedTitle != "" {
			level = "Head"
			if strings.HasPrefix(forcedTitle, "Director of ") {
				level = "Director"
			}
		}
		sfia := roleToSFIA[level]
		cpdLevel, cpdBand, cpdLabel := SFIAToCPD(sfia)

		cvRow := row{
			"CV Partner User ID":                 p.userID,
			"CV Partner CV ID":                   "cv_" + p.userID,
			"Title (#{lang})":                    multilang(title),
			"SFIA Level":                         strconv.Itoa(sfia),
			"CPD Level":                          strconv.Itoa(cpdLevel),
			"CPD Band":                           cpdBand,
			"CPD Label":                          cpdLabel,
			"Years of education":                 strconv.Itoa(10 + g.rng.Intn(11)),
			"Years since first work experience":  strconv.Itoa(1 + g.rng.Intn(25)),
			"Has profile image":                  g.randBool(),
			"Owns a reference project":           g.randBool(),
			"Read and understood privacy notice": g.randBool(),
			"CV Last updated by owner":           g.tsInYearsBack(1),
			"CV Last updated":                    g.tsInYearsBack(1),
			"Summary Of Qualifications":          g.maybe(title+" in "+strings.ToLower(practice)+" delivering data platforms and analytics.", 0.3),
		}
		g.cvs = append(g.cvs, cvRow)
		g.userByCVID[cvRow["CV Partner CV ID"]] = userRow
	}
}

func (g *Generator) chooseRoleAndLevel(practice string) (string, string) {
	families := roleTaxonomy[practice]
	names := make([]string, 0, len(families))
	for name, levels := range families {
		if len(levels) == 1 && levels[0] == "Head" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	family := names[g.rng.Intn(len(names))]

	var candidates []string
	for _, level := range families[family] {
		if level != "Head" {
			candidates = append(candidates, level)
		}
	}
	return family, g.pick(candidates)
}

// base returns the shared identity columns every per-CV report repeats.
func (g *Generator) base(cv row) row {
	u := g.userByCVID[cv["CV Partner CV ID"]]
	return row{
		"Name":               u["Name"],
		"Name (multilang)":   u["Name (multilang)"],
		"Title (#{lang})":    cv["Title (#{lang})"],
		"Email":              u["Email"],
		"UPN":                u["UPN"],
		"External User ID":   u["External User ID"],
		"CV Partner User ID": u["CV Partner User ID"],
		"CV Partner CV ID":   cv["CV Partner CV ID"],
		"Phone Number":       u["Phone Number"],
		"Landline":           u["Landline"],
		"Birth Year":         u["Birth Year"],
		"Department":         u["Department"],
		"Country":            u["Country"],
	}
}

func (g *Generator) sectionBase(cv row) row {
	r := g.base(cv)
	u := g.userByCVID[cv["CV Partner CV ID"]]
	r["Nationality"] = strings.TrimPrefix(u["Nationality"], "int:")
	r["CV Partner section ID"] = g.shortID()
	r["External unique ID"] = g.shortID()
	r["Updated"] = g.tsInYearsBack(2)
	r["Updated by owner"] = g.tsInYearsBack(2)
	return r
}

func (g *Generator) userReportRows() []row {
	rows := make([]row, 0, len(g.cvs))
	for _, cv := range g.cvs {
		u := g.userByCVID[cv["CV Partner CV ID"]]
		r := g.base(cv)
		r["User created at"] = u["User created at"]
		r["Access roles"] = u["Access roles"]
		for _, col := range []string{
			"CV Last updated by owner", "CV Last updated",
			"Years of education", "Years since first work experience",
			"Has profile image", "Owns a reference project", "Read and understood privacy notice",
			"SFIA Level", "CPD Level", "CPD Band", "CPD Label",
		} {
			r[col] = cv[col]
		}
		rows = append(rows, r)
	}
	return rows
}

func (g *Generator) usageReportRows() []row {
	sectionCounts := []struct {
		label string
		max   int
	}{
		{"Project Experiences", 6}, {"Unique roles", 4}, {"Highlighted roles", 3},
		{"Skill categories", 5}, {"Educations", 3}, {"Work experiences", 6},
		{"Certifications", 4}, {"Courses", 6}, {"Presentations", 3},
		{"Recommendations", 2}, {"Positions", 4}, {"Mentoring", 2},
		{"Publications", 5}, {"Honors and awards", 2}, {"Languages", 4},
	}

	rows := make([]row, 0, len(g.cvs))
	for _, cv := range g.cvs {
		u := g.userByCVID[cv["CV Partner CV ID"]]
		r := g.base(cv)
		r["Nationality (#{lang})"] = u["Nationality"]
		r["Owner last removed or added a section"] = g.tsInYearsBack(1)
		r["Owner last updated CV"] = g.tsInYearsBack(1)
		r["Last updated CV"] = g.tsInYearsBack(1)
		r["Summary Of Qualifications"] = cv["Summary Of Qualifications"]
		r["Owner last updated Qualifications"] = g.tsInYearsBack(2)
		r["Years of education"] = cv["Years of education"]
		r["Years since first work experience"] = cv["Years since first work experience"]
		for _, sc := range sectionCounts {
			r[sc.label] = strconv.Itoa(g.rng.Intn(sc.max + 1))
			r["Owner last updated "+sc.label] = g.tsInYearsBack(2)
		}
		rows = append(rows, r)
	}
	return rows
}

func (g *Generator) projectRows() []row {
	customers := []string{"Acme", "Contoso", "Globex"}
	industries := []string{"Finance", "Energy", "Health"}
	projectTypes := []string{"Implementation", "Advisory"}
	currencies := []string{"NOK", "SEK", "GBP", "EUR"}

	var rows []row
	for _, cv := range g.cvs {
		for i := g.rng.Intn(7); i > 0; i-- {
			r := g.sectionBase(cv)
			m1, y1, m2, y2 := g.monthYearPair(2012, g.now.Year())
			r["Month from"], r["Year from"] = strconv.Itoa(m1), strconv.Itoa(y1)
			r["Month to"], r["Year to"] = strconv.Itoa(m2), strconv.Itoa(y2)

			customer := g.pick(customers)
			industry := g.pick(industries)
			projectType := g.pick(projectTypes)
			r["Customer (#{lang})"] = multilang(customer)
			r["Customer (int)"] = customer
			r["Customer Anonymized (#{lang})"] = multilang("Confidential Client")
			r["Customer Anonymized (int)"] = "Confidential Client"
			r["Description (#{lang})"] = multilang("Delivered analytics platform.")
			r["Description (int)"] = "Delivered analytics platform."
			r["Long description (#{lang})"] = multilang("Data lake, pipelines, BI.")
			r["Long description (int)"] = "Data lake, pipelines, BI."
			r["Industry (#{lang})"] = multilang(industry)
			r["Industry (int)"] = industry
			r["Project type (#{lang})"] = multilang(projectType)
			r["Project type (int)"] = projectType
			r["Percent allocated"] = strconv.Itoa(10 + g.rng.Intn(91))
			r["Project extent (individual hours)"] = strconv.Itoa(10 + g.rng.Intn(191))
			r["Project extent (hours)"] = strconv.Itoa(100 + g.rng.Intn(901))
			r["Project extent total (hours)"] = strconv.Itoa(100 + g.rng.Intn(1901))
			r["Project extent"] = g.pick([]string{"Budget", "Hours"})
			r["Project extent (currency)"] = g.pick(currencies)
			r["Project extent total"] = strconv.Itoa(10000 + g.rng.Intn(240001))
			r["Project extent total (currency)"] = g.pick(currencies)
			r["Project area"] = strconv.Itoa((1 + g.rng.Intn(10)) * 100)
			r["Project area (unit)"] = "sqm"
			r["Highlighted"] = g.randBool()
			rows = append(rows, r)
		}
	}
	return rows
}

func (g *Generator) certificationRows() []row {
	var rows []row
	for _, cv := range g.cvs {
		for i := g.rng.Intn(4); i > 0; i-- {
			r := g.sectionBase(cv)
			year := 2016 + g.rng.Intn(10)
			r["Month"] = strconv.Itoa(1 + g.rng.Intn(12))
			r["Year"] = strconv.Itoa(year)
			r["Month expire"] = strconv.Itoa(1 + g.rng.Intn(12))
			r["Year expire"] = strconv.Itoa(year + g.rng.Intn(4))
			rows = append(rows, r)
		}
	}
	return rows
}

func (g *Generator) courseRows() []row {
	names := []string{"SQL Advanced", "Azure Fundamentals", "Power BI", "AWS Solutions Architect", "Databricks Lakehouse"}
	organisers := []string{"Microsoft", "Udemy", "Coursera", "Internal", "AWS", "Databricks"}

	var rows []row
	for _, cv := range g.cvs {
		for i := g.rng.Intn(7); i > 0; i-- {
			r := g.sectionBase(cv)
			r["Month"] = strconv.Itoa(1 + g.rng.Intn(12))
			r["Year"] = strconv.Itoa(2018 + g.rng.Intn(8))
			r["Name"] = g.pick(names)
			r["Organiser"] = g.pick(organisers)
			r["Long description"] = g.maybe("Intensive 3-day workshop.", 0.1)
			r["Highlighted"] = g.randBool()
			r["Is official masterdata (in #{lang})"] = multilang(g.pick([]string{"Yes", "No"}))
			r["Attachments"] = g.maybe("certificate.pdf", 0.1)
			rows = append(rows, r)
		}
	}
	return rows
}

func (g *Generator) languageRows() []row {
	languages := []string{"English", "Norwegian", "Swedish", "Danish", "Polish"}
	levels := []string{"Native", "Fluent", "Professional", "Intermediate"}

	var rows []row
	for _, cv := range g.cvs {
		for _, lang := range g.sample(languages, 1+g.rng.Intn(3)) {
			r := g.sectionBase(cv)
			r["Highlighted"] = g.randBool()
			r["Is official masterdata (in #{lang})"] = multilang(g.pick([]string{"Yes", "No"}))
			r["Language"] = lang
			r["Level"] = g.pick(levels)
			rows = append(rows, r)
		}
	}
	return rows
}

func (g *Generator) technologyRows() []row {
	skills := []string{
		"Python", "C#", ".NET", "JavaScript", "TypeScript",
		"React", "Node.js", "SQL", "Azure", "AWS", "GCP",
		"Databricks", "Spark", "Kafka", "Airflow", "dbt",
		"Terraform", "Kubernetes", "Docker", "Oracle", "Snowflake", "Power BI",
	}

	var rows []row
	for _, cv := range g.cvs {
		u := g.userByCVID[cv["CV Partner CV ID"]]
		for _, skill := range g.sample(skills, 3+g.rng.Intn(4)) {
			r := g.base(cv)
			r["Nationality"] = strings.TrimPrefix(u["Nationality"], "int:")
			r["CV Partner skill ID"] = g.shortID()
			r["CV Partner skill category ID"] = g.shortID()
			r["Skill name"] = skill
			r["Year experience"] = strconv.Itoa(1 + g.rng.Intn(15))
			r["Proficiency (0-5)"] = strconv.Itoa(1 + g.rng.Intn(5))
			r["Is official masterdata (in #{lang})"] = multilang(g.pick([]string{"Yes", "No"}))
			rows = append(rows, r)
		}
	}
	return rows
}

func (g *Generator) keyQualificationRows() []row {
	var rows []row
	for _, cv := range g.cvs {
		for i := g.rng.Intn(3); i > 0; i-- {
			r := g.sectionBase(cv)
			r["Label"] = g.pick([]string{"Profile", "Summary", "Key Strengths"})
			r["Summary of Qualifications"] = "Experienced in cloud, data engineering and analytics."
			r["Short description"] = g.maybe("Focus on Python, Azure/AWS, Databricks.", 0.1)
			rows = append(rows, r)
		}
	}
	return rows
}

func (g *Generator) educationRows() []row {
	degrees := []string{"BSc Computer Science", "MSc Data Science", "BEng Software Eng"}
	places := []string{"NTNU", "KTH", "UiO", "OU", "UCL"}

	var rows []row
	for _, cv := range g.cvs {
		for i := g.rng.Intn(4); i > 0; i-- {
			r := g.sectionBase(cv)
			m1, y1, m2, y2 := g.monthYearPair(2008, 2024)
			r["Month from"], r["Year from"] = strconv.Itoa(m1), strconv.Itoa(y1)
			r["Month to"], r["Year to"] = strconv.Itoa(m2), strconv.Itoa(y2)
			r["Highlighted"] = g.randBool()
			r["Attachments"] = g.maybe("diploma.pdf", 0.1)
			r["Place of study"] = g.pick(places)
			r["Degree"] = g.pick(degrees)
			r["Description"] = g.maybe("Thesis on scalable data pipelines.", 0.1)
			rows = append(rows, r)
		}
	}
	return rows
}

func (g *Generator) workExperienceRows() []row {
	employers := []string{"Acme Bank", "Energia", "HealthCorp", "RetailCo", "ConsultCo"}

	var rows []row
	for _, cv := range g.cvs {
		for i := g.rng.Intn(7); i > 0; i-- {
			r := g.sectionBase(cv)
			m1, y1, m2, y2 := g.monthYearPair(2010, 2025)
			r["Month from"], r["Year from"] = strconv.Itoa(m1), strconv.Itoa(y1)
			r["Month to"], r["Year to"] = strconv.Itoa(m2), strconv.Itoa(y2)
			r["Highlighted"] = g.randBool()
			r["Employer"] = g.pick(employers)
			r["Description"] = "Worked on data platforms, software delivery and BI."
			r["Long Description"] = g.maybe("Led a small team delivering cloud migration.", 0.1)
			rows = append(rows, r)
		}
	}
	return rows
}

func (g *Generator) positionRows() []row {
	var rows []row
	for _, cv := range g.cvs {
		title := strings.TrimPrefix(cv["Title (#{lang})"], "int:")
		start := 2016 + g.rng.Intn(6)
		for i, name := range ladderFromTitle(title) {
			r := g.sectionBase(cv)
			r["Year from"] = strconv.Itoa(start + i)
			r["Year to"] = strconv.Itoa(start + i + 1)
			r["Highlighted"] = g.randBool()
			r["Name"] = name
			r["Description"] = g.maybe("Progression based on delivery impact.", 0.1)
			rows = append(rows, r)
		}
	}
	return rows
}

func (g *Generator) blogRows() []row {
	topics := []string{
		"Data Mesh in Practice", "Intro to dbt", "Streaming 101", "Kubernetes for Data",
		"Optimising PySpark", "Modern .NET APIs", "AWS Well-Architected", "Azure Fabric Basics",
		"MLOps Playbook", "Databricks Lakehouse Patterns",
	}

	var rows []row
	for _, cv := range g.cvs {
		for i := g.rng.Intn(4); i > 0; i-- {
			r := g.sectionBase(cv)
			r["Name"] = g.pick(topics)
			r["Description"] = g.maybe("Conference talk / blog summary.", 0.1)
			r["Highlighted"] = g.randBool()
			rows = append(rows, r)
		}
	}
	return rows
}

func (g *Generator) cvRoleRows() []row {
	roles := []string{"Developer", "Tech Lead", "Architect", "Analyst", "Manager"}

	var rows []row
	for _, cv := range g.cvs {
		u := g.userByCVID[cv["CV Partner CV ID"]]
		for _, role := range g.sample(roles, 1+g.rng.Intn(3)) {
			r := g.base(cv)
			r["Nationality"] = strings.TrimPrefix(u["Nationality"], "int:")
			r["Updated"] = g.tsInYearsBack(2)
			r["Updated by owner"] = g.tsInYearsBack(2)
			r["Name"] = role
			r["Description"] = g.maybe("High-level role on multiple projects.", 0.1)
			r["Highlighted"] = g.randBool()
			rows = append(rows, r)
		}
	}
	return rows
}

func (g *Generator) clearanceRows() []row {
	rows := make([]row, 0, len(g.users))
	for _, u := range g.users {
		clearance := g.weightedChoice(map[string]float64{"SC": 0.25, "NPPV2": 0.10, "None": 0.65})
		validFrom := ""
		if clearance != "None" {
			validFrom = g.tsInYearsBack(3)
		}
		rows = append(rows, row{
			"Email":              u["Email"],
			"UPN":                u["UPN"],
			"External User ID":   u["External User ID"],
			"CV Partner User ID": u["CV Partner User ID"],
			"Clearance":          clearance,
			"Valid From":         validFrom,
			"Valid To":           "",
			"Verified By":        g.pick([]string{"HR", "Security", "PMO"}),
			"Notes":              g.maybe("Imported from legacy sheet", 0.1),
		})
	}
	return rows
}

func (g *Generator) availabilityRows() []row {
	start := time.Date(g.now.Year(), g.now.Month(), g.now.Day(), 0, 0, 0, 0, time.UTC)

	var rows []row
	for _, u := range g.users {
		baseFree := 20 + g.rng.Intn(61)
		for d := 0; d < g.cfg.DaysForward; d++ {
			day := start.AddDate(0, 0, d)
			pct := 100
			if day.Weekday() != time.Saturday && day.Weekday() != time.Sunday {
				pct = baseFree + g.rng.Intn(41) - 20
				if pct < 0 {
					pct = 0
				}
				if pct > 100 {
					pct = 100
				}
				if g.rng.Float64() < 0.15 {
					pct = 0
				}
			}
			rows = append(rows, row{
				"Email":              u["Email"],
				"UPN":                u["UPN"],
				"External User ID":   u["External User ID"],
				"CV Partner User ID": u["CV Partner User ID"],
				"Date":               day.Format("2006-01-02"),
				"Percent Available":  strconv.Itoa(pct),
				"Source":             "Fake generator",
			})
		}
	}
	return rows
}
