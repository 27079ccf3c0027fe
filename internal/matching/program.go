// Package matching scores and ranks candidates against open programs,
// producing explainable, deterministic match breakdowns.
package matching

import "time"

// ProgramType is the vertical an employer hires for.
type ProgramType string

const (
	InboundSupport ProgramType = "INBOUND_SUPPORT"
	OutboundSales  ProgramType = "OUTBOUND_SALES"
	TechSupport    ProgramType = "TECH_SUPPORT"
	BackOffice     ProgramType = "BACK_OFFICE"
)

// ProgramStatus tracks an opening through its lifecycle.
type ProgramStatus string

const (
	ProgramDraft  ProgramStatus = "DRAFT"
	ProgramLive   ProgramStatus = "LIVE"
	ProgramClosed ProgramStatus = "CLOSED"
)

// Program is an employer's job opening.
type Program struct {
	ID               string        `json:"id"`
	CompanyID        string        `json:"company_id"`
	Title            string        `json:"title"`
	Description      string        `json:"description,omitempty"`
	Location         string        `json:"location,omitempty"`
	Type             ProgramType   `json:"type"`
	HeadcountNeeded  int           `json:"headcount_needed"`
	MustHaveSkills   []string      `json:"must_have_skills"`
	NiceToHaveSkills []string      `json:"nice_to_have_skills"`
	DealBreakers     []string      `json:"deal_breakers,omitempty"`
	Status           ProgramStatus `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`
}

// Definition is the static recruiting guidance attached to a program type.
type Definition struct {
	Label        string
	Description  string
	Strengths    []string
	Personality  string
	RisksToWatch []string
}

// Definitions describes each program type for dashboards and program forms.
var Definitions = map[ProgramType]Definition{
	InboundSupport: {
		Label:        "Inbound Customer Care",
		Description:  "The core of BPO. Candidates handle incoming queries via phone, focusing on resolving issues, answering questions, and maintaining customer sentiment.",
		Strengths:    []string{"High Empathy", "De-escalation", "Patience", "Clear Communication"},
		Personality:  "Helper / Problem Solver",
		RisksToWatch: []string{"Low resilience to angry customers", "Burnout risk", "Sounding robotic"},
	},
	OutboundSales: {
		Label:        "Outbound Sales & Collections",
		Description:  "High-energy roles involving proactive calling to sell products, set appointments, or recover debts. Requires thick skin and drive.",
		Strengths:    []string{"Persuasion", "Resilience (Handling Rejection)", "Goal-Oriented", "High Energy"},
		Personality:  "Hunter / Achiever",
		RisksToWatch: []string{"Aggressiveness", "Lack of empathy", "Non-compliance with scripts", "Pushiness"},
	},
	TechSupport: {
		Label:        "Technical Support (Tier 1)",
		Description:  "Troubleshooting hardware, software, or connectivity issues. Requires the ability to explain complex steps simply.",
		Strengths:    []string{"Logical Reasoning", "Tech Literacy", "Instructional Clarity", "Problem Solving"},
		Personality:  "Analyzer / Teacher",
		RisksToWatch: []string{"Condescension/Arrogance", "Using too much jargon", "Getting lost in details"},
	},
	BackOffice: {
		Label:        "Back Office & Data Ops",
		Description:  "Non-voice tasks such as data entry, content moderation, claims processing, or annotation.",
		Strengths:    []string{"Attention to Detail", "Speed/Accuracy", "Reliability", "Focus"},
		Personality:  "Processor / Detail-Oriented",
		RisksToWatch: []string{"Poor verbal skills (if moved to voice)", "Boredom with repetition", "Low engagement"},
	},
}

// Tier buckets a numeric match score for quick scanning.
type Tier string

const (
	TierStrong  Tier = "strong"
	TierMedium  Tier = "medium"
	TierStretch Tier = "stretch"
)

// ApplicationStatus tracks a candidate-program pairing. Applications are
// never deleted, only transitioned.
type ApplicationStatus string

const (
	StatusSuggested          ApplicationStatus = "SUGGESTED"
	StatusApplied            ApplicationStatus = "APPLIED"
	StatusShortlisted        ApplicationStatus = "SHORTLISTED"
	StatusInterviewRequested ApplicationStatus = "INTERVIEW_REQUESTED"
	StatusAccepted           ApplicationStatus = "ACCEPTED"
	StatusRejected           ApplicationStatus = "REJECTED"
)

// Breakdown explains how a match score was assembled.
type Breakdown struct {
	ProgramTypeFit   int      `json:"program_type_fit"`
	MustHavePoints   int      `json:"must_have_points"`
	NiceToHavePoints int      `json:"nice_to_have_points"`
	InterviewPoints  int      `json:"interview_points"`
	Penalty          int      `json:"penalty"`
	WhyThisMatch     []string `json:"why_this_match"`
	Risks            []string `json:"risks_for_this_program"`
}

// Application is a candidate-program pairing produced by the matcher and
// later advanced by recruiter decisions.
type Application struct {
	ID              string            `json:"id"`
	CandidateID     string            `json:"candidate_id"`
	ProgramID       string            `json:"program_id"`
	Status          ApplicationStatus `json:"status"`
	MatchScore      int               `json:"match_score"`
	MatchTier       Tier              `json:"match_tier"`
	Breakdown       Breakdown         `json:"match_breakdown"`
	RecruiterReason string            `json:"recruiter_reason,omitempty"`
	RecruiterNote   string            `json:"recruiter_note,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at,omitempty"`
}
