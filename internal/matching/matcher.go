package matching

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/serenity-hq/screener/internal/candidate"
	"github.com/serenity-hq/screener/internal/scoring"
)

// CV skill signals checked by the type-fit rules.
var (
	techSkillRe  = regexp.MustCompile(`(?i)tech|support|it|helpdesk`)
	adminSkillRe = regexp.MustCompile(`(?i)data|typing|admin`)
)

// jobHoppingKeyword marks a deal breaker that targets the profile's
// job-hopping tier rather than an interview risk flag.
const jobHoppingKeyword = "hopping"

// Config carries the matcher's point schedule and thresholds. Demo
// calibration, overridable per deployment.
type Config struct {
	TypeFitCap         int     `mapstructure:"type-fit-cap"`
	MustHaveMax        int     `mapstructure:"must-have-max"`
	NiceToHaveEach     int     `mapstructure:"nice-to-have-each"`
	NiceToHaveCap      int     `mapstructure:"nice-to-have-cap"`
	InterviewWeight    float64 `mapstructure:"interview-weight"`
	DealBreakerPenalty int     `mapstructure:"deal-breaker-penalty"`
	StrongScore        int     `mapstructure:"strong-score"`
	MediumScore        int     `mapstructure:"medium-score"`

	// Dimension cutoffs used by the per-type fit rules.
	EmpathyCutoff       float64 `mapstructure:"empathy-cutoff"`
	CommunicationCutoff float64 `mapstructure:"communication-cutoff"`
	DeescalationCutoff  float64 `mapstructure:"deescalation-cutoff"`
	SalesCutoff         float64 `mapstructure:"sales-cutoff"`
	StressCutoff        float64 `mapstructure:"stress-cutoff"`
	ProcessCutoff       float64 `mapstructure:"process-cutoff"`
	ReliabilityCutoff   float64 `mapstructure:"reliability-cutoff"`
}

// DefaultConfig returns the production point schedule.
func DefaultConfig() Config {
	return Config{
		TypeFitCap:         30,
		MustHaveMax:        30,
		NiceToHaveEach:     5,
		NiceToHaveCap:      10,
		InterviewWeight:    0.3,
		DealBreakerPenalty: 50,
		StrongScore:        80,
		MediumScore:        60,

		EmpathyCutoff:       0.7,
		CommunicationCutoff: 0.7,
		DeescalationCutoff:  0.6,
		SalesCutoff:         0.6,
		StressCutoff:        0.7,
		ProcessCutoff:       0.7,
		ReliabilityCutoff:   0.8,
	}
}

// Matcher ranks a candidate against programs. It is stateless and pure: the
// same inputs always yield the same breakdowns and nothing is mutated, so it
// may be invoked concurrently for different candidates.
type Matcher struct {
	cfg    Config
	logger *zap.Logger
}

// New builds a matcher.
func New(cfg Config, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{cfg: cfg, logger: logger}
}

// Rank scores the candidate against every program, one application per
// program, in input order. Callers sort as needed.
func (m *Matcher) Rank(profile *candidate.Profile, result *scoring.Evaluation, programs []*Program) []*Application {
	apps := make([]*Application, 0, len(programs))
	for _, p := range programs {
		apps = append(apps, m.matchOne(profile, result, p))
	}
	return apps
}

// SortByScore orders applications best-first, ties broken by program id for
// stable output.
func SortByScore(apps []*Application) {
	sort.SliceStable(apps, func(i, j int) bool {
		if apps[i].MatchScore != apps[j].MatchScore {
			return apps[i].MatchScore > apps[j].MatchScore
		}
		return apps[i].ProgramID < apps[j].ProgramID
	})
}

func (m *Matcher) matchOne(profile *candidate.Profile, result *scoring.Evaluation, p *Program) *Application {
	var b Breakdown

	b.ProgramTypeFit = m.typeFit(profile, result, p, &b)
	m.skillOverlap(profile, p, &b)

	if result != nil {
		b.InterviewPoints = int(math.Round(float64(result.OverallScore) * m.cfg.InterviewWeight))
	}

	b.Penalty = m.dealBreakerPenalty(profile, result, p, &b)

	raw := b.ProgramTypeFit + b.MustHavePoints + b.NiceToHavePoints + b.InterviewPoints - b.Penalty
	score := raw
	if score < 0 {
		score = 0
	}
	if score > 99 {
		score = 99
	}

	tier := TierStretch
	switch {
	case score >= m.cfg.StrongScore:
		tier = TierStrong
	case score >= m.cfg.MediumScore:
		tier = TierMedium
	}

	return &Application{
		ProgramID:  p.ID,
		Status:     StatusSuggested,
		MatchScore: score,
		MatchTier:  tier,
		Breakdown:  b,
	}
}

// typeFit applies the per-program-type rules. Each satisfied rule adds a
// fixed point value and a human-readable explanation; the subtotal is capped.
func (m *Matcher) typeFit(profile *candidate.Profile, result *scoring.Evaluation, p *Program, b *Breakdown) int {
	if result == nil {
		return 0
	}
	s := result.Scores
	fit := 0
	add := func(points int, why string) {
		fit += points
		b.WhyThisMatch = append(b.WhyThisMatch, why)
	}

	switch p.Type {
	case InboundSupport:
		if s.Empathy >= m.cfg.EmpathyCutoff {
			add(10, "Matched because: High Empathy score (top 30%).")
		}
		if s.Communication >= m.cfg.CommunicationCutoff {
			add(10, "Matched because: Clear communication style.")
		}
		if s.Deescalation >= m.cfg.DeescalationCutoff {
			add(10, "Matched because: Proven de-escalation skills.")
		}
	case OutboundSales:
		if s.Sales >= m.cfg.SalesCutoff {
			add(15, "Matched because: Sales potential detected in interview.")
		}
		if s.Stress >= m.cfg.StressCutoff {
			add(15, "Matched because: High resilience under pressure.")
		}
	case TechSupport:
		if profileHasSkill(profile, techSkillRe) {
			add(15, "Matched because: Technical background found in CV.")
		}
		if s.Process >= m.cfg.ProcessCutoff {
			add(15, "Matched because: Strong process adherence.")
		}
	case BackOffice:
		if s.Reliability >= m.cfg.ReliabilityCutoff {
			add(15, "Matched because: High reliability score.")
		}
		if profileHasSkill(profile, adminSkillRe) {
			add(15, "Matched because: Admin skills present.")
		}
	}

	if fit > m.cfg.TypeFitCap {
		fit = m.cfg.TypeFitCap
	}
	return fit
}

// skillOverlap scores must-have coverage proportionally and nice-to-haves as
// a flat bonus per match. A program with no must-haves grants full credit.
func (m *Matcher) skillOverlap(profile *candidate.Profile, p *Program, b *Breakdown) {
	var candSkills []string
	if profile != nil {
		for _, s := range profile.Skills {
			candSkills = append(candSkills, strings.ToLower(s))
		}
	}

	mustHaves := normalizeSkills(p.MustHaveSkills)
	if len(mustHaves) == 0 {
		b.MustHavePoints = m.cfg.MustHaveMax
	} else {
		var matched, missing []string
		for _, mh := range mustHaves {
			if skillMatches(candSkills, mh) {
				matched = append(matched, mh)
			} else {
				missing = append(missing, mh)
			}
		}
		ratio := float64(len(matched)) / float64(len(mustHaves))
		b.MustHavePoints = int(math.Round(ratio * float64(m.cfg.MustHaveMax)))

		switch {
		case ratio == 1:
			b.WhyThisMatch = append(b.WhyThisMatch, "Matched because: Has all required skills.")
		case ratio > 0.5:
			b.WhyThisMatch = append(b.WhyThisMatch,
				fmt.Sprintf("Matched because: Has %d/%d required skills.", len(matched), len(mustHaves)))
		default:
			b.Risks = append(b.Risks, "Missing key skills: "+strings.Join(missing, ", "))
		}
	}

	niceHaves := normalizeSkills(p.NiceToHaveSkills)
	var matchedNice []string
	for _, nh := range niceHaves {
		if skillMatches(candSkills, nh) {
			matchedNice = append(matchedNice, nh)
		}
	}
	if len(matchedNice) > 0 {
		points := len(matchedNice) * m.cfg.NiceToHaveEach
		if points > m.cfg.NiceToHaveCap {
			points = m.cfg.NiceToHaveCap
		}
		b.NiceToHavePoints = points
		b.WhyThisMatch = append(b.WhyThisMatch,
			fmt.Sprintf("Bonus: Has relevant skills (%s).", strings.Join(matchedNice, ", ")))
	}
}

// dealBreakerPenalty checks every program deal breaker against the interview
// risk flags and the profile's job-hopping tier. Matching is best-effort
// keyword containment; triggered breakers stack.
func (m *Matcher) dealBreakerPenalty(profile *candidate.Profile, result *scoring.Evaluation, p *Program, b *Breakdown) int {
	if len(p.DealBreakers) == 0 {
		return 0
	}

	var riskFlags []string
	if result != nil {
		for _, r := range result.RiskFlags {
			riskFlags = append(riskFlags, strings.ToLower(r))
		}
	}

	penalty := 0
	for _, raw := range p.DealBreakers {
		breaker := strings.ToLower(strings.TrimSpace(raw))
		if breaker == "" {
			continue
		}
		for _, r := range riskFlags {
			if strings.Contains(r, breaker) {
				penalty += m.cfg.DealBreakerPenalty
				b.Risks = append(b.Risks,
					fmt.Sprintf("Deal Breaker Triggered: Candidate flagged for %s.", breaker))
				break
			}
		}
		if strings.Contains(breaker, jobHoppingKeyword) &&
			profile != nil && profile.GapAnalysis.JobHoppingRisk == candidate.JobHoppingHigh {
			penalty += m.cfg.DealBreakerPenalty
			b.Risks = append(b.Risks, "Deal Breaker Triggered: High Job Hopping Risk detected.")
		}
	}
	return penalty
}

func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// skillMatches is a case-insensitive, substring-tolerant lookup in either
// direction ("zendesk" matches "Zendesk Suite" and vice versa).
func skillMatches(candSkills []string, want string) bool {
	for _, cs := range candSkills {
		if strings.Contains(cs, want) || strings.Contains(want, cs) {
			return true
		}
	}
	return false
}

func profileHasSkill(profile *candidate.Profile, re *regexp.Regexp) bool {
	if profile == nil {
		return false
	}
	for _, s := range profile.Skills {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
