package generator

import "strings"

// office mirrors the firm's real office layout so generated data exercises
// every region.
type office struct {
	ID         string
	Name       string
	City       string
	Region     string
	CountryISO string
}

var offices = []office{
	{"OFF-UK-LON-001", "London", "London", "UK & IE", "gb"},
	{"OFF-UK-EDI-001", "Edinburgh", "Edinburgh", "UK & IE", "gb"},
	{"OFF-UK-NCL-001", "Newcastle", "Newcastle", "UK & IE", "gb"},
	{"OFF-UK-BHM-001", "Birmingham", "Birmingham", "UK & IE", "gb"},
	{"OFF-IE-DUB-001", "Dublin", "Dublin", "UK & IE", "ie"},
	{"OFF-IE-CRK-001", "Cork", "Cork", "UK & IE", "ie"},
	{"OFF-US-NYC-001", "New York", "New York", "US", "us"},
	{"OFF-AU-SYD-001", "Sydney", "Sydney", "ANZ", "au"},
	{"OFF-IN-BLR-001", "Bangalore", "Bangalore", "India", "in"},
	{"OFF-IN-PNQ-001", "Pune", "Pune", "India", "in"},
	{"OFF-ES-AGP-001", "Malaga", "Malaga", "Europe", "es"},
	{"OFF-SI-LJU-001", "Slovenia", "Ljubljana", "Europe", "si"},
}

var isoToCountry = map[string]string{
	"gb": "United Kingdom",
	"ie": "Ireland",
	"us": "USA",
	"au": "Australia",
	"in": "India",
	"es": "Spain",
	"si": "Slovenia",
}

// regionPractices weights which practice a person in a region belongs to.
var regionPractices = map[string]map[string]float64{
	"UK & IE": {"Architecture": 0.15, "Data Engineering": 0.35, "Software Engineering": 0.20, "Cloud Engineering": 0.15, "Delivery Management": 0.05, "AI/ML": 0.10},
	"US":      {"Architecture": 0.10, "Data Engineering": 0.30, "Software Engineering": 0.25, "Cloud Engineering": 0.20, "Delivery Management": 0.05, "AI/ML": 0.10},
	"Europe":  {"Architecture": 0.12, "Data Engineering": 0.30, "Software Engineering": 0.25, "Cloud Engineering": 0.18, "Delivery Management": 0.05, "AI/ML": 0.10},
	"ANZ":     {"Architecture": 0.10, "Data Engineering": 0.33, "Software Engineering": 0.22, "Cloud Engineering": 0.20, "Delivery Management": 0.05, "AI/ML": 0.10},
	"India":   {"Architecture": 0.05, "Data Engineering": 0.35, "Software Engineering": 0.30, "Cloud Engineering": 0.20, "Delivery Management": 0.03, "AI/ML": 0.07},
}

// roleTaxonomy maps practice -> job family -> seniority ladder.
var roleTaxonomy = map[string]map[string][]string{
	"Architecture": {
		"Solution Architect":   {"Associate", "Consultant", "Senior", "Principal", "Lead"},
		"Data Architect":       {"Consultant", "Senior", "Principal", "Lead"},
		"Cloud Architect":      {"Consultant", "Senior", "Principal", "Lead"},
		"Enterprise Architect": {"Senior", "Principal", "Lead"},
		"Head of Architecture": {"Head"},
	},
	"Data Engineering": {
		"Python Developer":       {"Associate", "Consultant", "Senior", "Principal"},
		"Data Engineer":          {"Associate", "Consultant", "Senior", "Principal", "Lead"},
		"Data Platform Engineer": {"Consultant", "Senior", "Principal", "Lead"},
		"Databricks Engineer":    {"Consultant", "Senior", "Principal"},
		"MLOps Engineer":         {"Consultant", "Senior", "Principal"},
		"Analytics Engineer":     {"Consultant", "Senior", "Principal"},
	},
	"Software Engineering": {
		"C# Developer":        {"Associate", "Consultant", "Senior", "Principal"},
		".NET Engineer":       {"Associate", "Consultant", "Senior", "Principal"},
		"Backend Engineer":    {"Associate", "Consultant", "Senior", "Principal"},
		"Frontend Engineer":   {"Associate", "Consultant", "Senior", "Principal"},
		"Full-stack Engineer": {"Consultant", "Senior", "Principal"},
	},
	"Cloud Engineering": {
		"AWS Engineer":        {"Associate", "Consultant", "Senior", "Principal"},
		"Azure Engineer":      {"Associate", "Consultant", "Senior", "Principal"},
		"DevOps Engineer":     {"Associate", "Consultant", "Senior", "Principal"},
		"Kubernetes Engineer": {"Consultant", "Senior", "Principal"},
		"Oracle Engineer":     {"Consultant", "Senior", "Principal"},
	},
	"AI/ML": {
		"AI Engineer":    {"Associate", "Consultant", "Senior", "Principal"},
		"Data Scientist": {"Associate", "Consultant", "Senior", "Principal"},
		"ML Engineer":    {"Associate", "Consultant", "Senior", "Principal"},
	},
	"Delivery Management": {
		"Delivery Manager": {"Consultant", "Senior", "Principal", "Lead"},
		"Project Manager":  {"Consultant", "Senior", "Principal"},
		"Scrum Master":     {"Consultant", "Senior"},
	},
}

// leadershipRoles each go to exactly one person in the generated org.
var leadershipRoles = []string{
	"Director of DDC Engineering",
	"Head of Data Engineering",
	"Head of AWS Engineering",
	"Head of Azure Engineering",
	"Head of Quality Engineering",
	"Head of Microsoft Apps Engineering",
	"Head of Software Engineering EU",
	"Head of Software Engineering IDC",
	"Director of Design",
	"Head of Business Analysis",
	"Head of Product and Service Design",
	"Head of UCD and Insights",
	"Head of Strategy and Advisory",
}

var engineeringHeadBases = map[string]bool{
	"AWS":            true,
	"Azure":          true,
	"Quality":        true,
	"MS Apps":        true,
	"Microsoft Apps": true,
	"Data":           true,
}

// canonicaliseLeadership normalizes "Head of X" to "Head of X Engineering"
// for the engineering heads; design and advisory titles stay as written.
func canonicaliseLeadership(title string) string {
	base, ok := strings.CutPrefix(title, "Head of ")
	if !ok {
		return title
	}
	base = strings.TrimSpace(base)
	if base == "MS Apps" {
		base = "Microsoft Apps"
	}
	if engineeringHeadBases[base] && !strings.HasSuffix(base, "Engineering") {
		return "Head of " + base + " Engineering"
	}
	return title
}

var roleToSFIA = map[string]int{
	"Associate":  2,
	"Consultant": 3,
	"Senior":     4,
	"Principal":  5,
	"Lead":       6,
	"Head":       6,
	"Director":   6,
}

// SFIAToCPD maps an SFIA level onto the firm's CPD leveling scheme, returning
// the level, band and combined label (e.g. 3, "L", "CPD3L").
func SFIAToCPD(sfia int) (int, string, string) {
	switch {
	case sfia <= 2:
		return 1, "E", "CPD1E"
	case sfia == 3:
		return 2, "L", "CPD2L"
	case sfia == 4:
		return 3, "E", "CPD3E"
	case sfia == 5:
		return 3, "L", "CPD3L"
	default:
		return 4, "E", "CPD4E"
	}
}

var coreLevels = []string{"Associate", "Consultant", "Senior", "Principal", "Lead"}

// ladderFromTitle rebuilds the career progression that ends at the given
// title, used to backfill the positions report.
func ladderFromTitle(title string) []string {
	title = strings.TrimSpace(title)

	if family, ok := strings.CutPrefix(title, "Head of "); ok {
		family = strings.TrimSpace(family)
		return []string{
			"Senior " + family, "Principal " + family, "Lead " + family,
			"Head of " + family,
		}
	}
	if family, ok := strings.CutPrefix(title, "Director of "); ok {
		family = strings.TrimSpace(family)
		return []string{
			"Senior " + family, "Principal " + family, "Lead " + family,
			"Head of " + family, "Director of " + family,
		}
	}

	level := ""
	for _, part := range strings.Fields(title) {
		for _, candidate := range coreLevels {
			if part == candidate {
				level = candidate
				break
			}
		}
		if level != "" {
			break
		}
	}
	if level == "" {
		return []string{"Consultant " + title, "Senior " + title, "Principal " + title}
	}

	family := strings.TrimSpace(strings.Replace(title, level, "", 1))
	j := 0
	for i, candidate := range coreLevels {
		if candidate == level {
			j = i
			break
		}
	}
	start := j - 2
	if start < 0 {
		start = 0
	}
	ladder := make([]string, 0, 3)
	for _, lv := range coreLevels[start : j+1] {
		ladder = append(ladder, lv+" "+family)
	}
	return ladder
}
