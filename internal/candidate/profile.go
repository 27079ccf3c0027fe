package candidate

// JobHoppingRisk is the coarse tier assigned by CV extraction based on how
// often the candidate changed employers.
type JobHoppingRisk string

const (
	JobHoppingLow    JobHoppingRisk = "low"
	JobHoppingMedium JobHoppingRisk = "medium"
	JobHoppingHigh   JobHoppingRisk = "high"
)

// EmploymentGap is a single break between two roles in the work history.
// Dates are YYYY-MM strings as extracted from the CV.
type EmploymentGap struct {
	StartDate string `json:"gap_start_date,omitempty"`
	EndDate   string `json:"gap_end_date,omitempty"`
	Months    int    `json:"gap_months"`
	Note      string `json:"note,omitempty"`
}

// GapAnalysis summarizes employment gaps and the job-hopping tier.
type GapAnalysis struct {
	Gaps           []EmploymentGap `json:"gaps"`
	JobHoppingRisk JobHoppingRisk  `json:"job_hopping_risk"`
}

type WorkHistoryItem struct {
	Company          string   `json:"company,omitempty"`
	Title            string   `json:"title,omitempty"`
	EmploymentType   string   `json:"employment_type,omitempty"`
	Location         string   `json:"location,omitempty"`
	StartDate        string   `json:"start_date,omitempty"`
	EndDate          string   `json:"end_date,omitempty"`
	IsCurrent        bool     `json:"is_current"`
	MonthsInRole     int      `json:"months_in_role,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	CustomerFacing   string   `json:"customer_facing,omitempty"` // yes | no | unclear
	Channels         []string `json:"channels,omitempty"`
	ToolsSystems     []string `json:"tools_systems,omitempty"`
}

type EducationItem struct {
	Institution    string `json:"institution,omitempty"`
	Degree         string `json:"degree,omitempty"`
	FieldOfStudy   string `json:"field_of_study,omitempty"`
	GraduationDate string `json:"graduation_date,omitempty"`
}

// Totals are aggregate figures computed by CV extraction.
type Totals struct {
	TotalYearsExperience float64 `json:"total_years_experience_estimate,omitempty"`
	CustomerServiceYears float64 `json:"total_customer_service_years_estimate,omitempty"`
	MostRecentTitle      string  `json:"most_recent_role_title,omitempty"`
	MostRecentCompany    string  `json:"most_recent_company,omitempty"`
}

// Profile is the structured view of a candidate's CV. It is produced by CV
// extraction and read-only for the interview controller and the matcher.
type Profile struct {
	Headline       string            `json:"headline,omitempty"`
	Summary        string            `json:"summary,omitempty"`
	Skills         []string          `json:"skills"`
	Languages      []string          `json:"languages,omitempty"`
	Certifications []string          `json:"certifications,omitempty"`
	WorkHistory    []WorkHistoryItem `json:"work_history,omitempty"`
	Education      []EducationItem   `json:"education,omitempty"`
	GapAnalysis    GapAnalysis       `json:"gap_analysis"`
	Totals         Totals            `json:"totals"`
}

// SignificantGap returns the first employment gap of at least minMonths.
func (p *Profile) SignificantGap(minMonths int) (EmploymentGap, bool) {
	if p == nil {
		return EmploymentGap{}, false
	}
	for _, g := range p.GapAnalysis.Gaps {
		if g.Months >= minMonths {
			return g, true
		}
	}
	return EmploymentGap{}, false
}
