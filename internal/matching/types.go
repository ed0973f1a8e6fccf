package matching

import "time"

// Tier is the discrete readiness bucket derived from the composite score.
type Tier string

const (
	TierExcellent  Tier = "EXCELLENT"
	TierGood       Tier = "GOOD"
	TierPotential  Tier = "POTENTIAL"
	TierDeveloping Tier = "DEVELOPING"
	TierNotReady   Tier = "NOT_READY"
)

// Application statuses understood by the ranking service.
const StatusWithdrawn = "WITHDRAWN"

// Candidate is an immutable profile snapshot built fresh per scoring call.
// Optional numerics use zero as "not provided"; the store layer performs that
// defaulting once at the boundary.
type Candidate struct {
	UserID          string   `json:"userId"`
	Name            string   `json:"name,omitempty"`
	Skills          []string `json:"skills"`
	YearsExperience float64  `json:"yearsExperience"`
	Qualifications  []string `json:"qualifications,omitempty"`
	Location        string   `json:"location,omitempty"`
	ExpectedSalary  float64  `json:"expectedSalary,omitempty"`
	Verified        bool     `json:"verified"`
	Referred        bool     `json:"referred"`
}

// JobRequirements is the read-only requirement set owned by the job-listing
// collaborator.
type JobRequirements struct {
	ID                     string     `json:"id"`
	Title                  string     `json:"title,omitempty"`
	RequiredSkills         []string   `json:"requiredSkills"`
	PreferredSkills        []string   `json:"preferredSkills,omitempty"`
	MinExperience          float64    `json:"minExperience"`
	MaxExperience          float64    `json:"maxExperience"`
	RequiredQualifications []string   `json:"requiredQualifications,omitempty"`
	Location               string     `json:"location,omitempty"`
	Remote                 bool       `json:"remote"`
	SalaryMax              float64    `json:"salaryMax,omitempty"`
	StartDate              *time.Time `json:"startDate,omitempty"`
}

// Application links one candidate to one job. Its overrides take precedence
// over the candidate-profile defaults.
type Application struct {
	ID             string     `json:"id"`
	JobID          string     `json:"jobId"`
	Status         string     `json:"status"`
	Candidate      Candidate  `json:"candidate"`
	ExpectedSalary float64    `json:"expectedSalary,omitempty"`
	AvailableFrom  *time.Time `json:"availableFrom,omitempty"`
	SubmittedAt    time.Time  `json:"submittedAt"`
}

// expectedSalary resolves the application override against the profile default.
// Zero means no figure is known.
func (a *Application) expectedSalary() float64 {
	if a.ExpectedSalary > 0 {
		return a.ExpectedSalary
	}
	return a.Candidate.ExpectedSalary
}

// ScoreBreakdown holds the six weight-scaled point allocations, each rounded
// independently. Their sum may drift from the composite by a few points; that
// is accepted, not a bug.
type ScoreBreakdown struct {
	SkillsRequired  int `json:"skillsRequired"`
	SkillsPreferred int `json:"skillsPreferred"`
	Experience      int `json:"experience"`
	Qualifications  int `json:"qualifications"`
	Cultural        int `json:"cultural"`
	Availability    int `json:"availability"`
}

// Flag severities for red flags. Green flags carry no severity.
const (
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Flag is a derived risk or engagement indicator, recomputed every call.
type Flag struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Severity    string `json:"severity,omitempty"`
	Description string `json:"description"`
	Detail      string `json:"detail,omitempty"`
}

// SkillMatch is the skill-overlap result for one skill list.
type SkillMatch struct {
	Score   float64  `json:"score"`
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}

// ExperienceFit is the banded years-of-experience result.
type ExperienceFit struct {
	Score            float64 `json:"score"`
	IsOverqualified  bool    `json:"isOverqualified"`
	IsUnderqualified bool    `json:"isUnderqualified"`
}

// SignalReport is the community-engagement result.
type SignalReport struct {
	Score   int    `json:"score"`
	Signals []Flag `json:"signals"`
}

// CandidateScore is the full scoring output for one application.
type CandidateScore struct {
	ApplicationID   string         `json:"applicationId"`
	UserID          string         `json:"userId"`
	Name            string         `json:"name,omitempty"`
	Score           int            `json:"score"`
	Tier            Tier           `json:"tier"`
	Breakdown       ScoreBreakdown `json:"breakdown"`
	RedFlags        []Flag         `json:"redFlags"`
	GreenFlags      []Flag         `json:"greenFlags"`
	Recommendations []string       `json:"recommendations"`
	MatchedRequired []string       `json:"matchedRequiredSkills"`
	MissingRequired []string       `json:"missingRequiredSkills"`
}

// RankOptions filters and caps a ranking request. Ties between equal scores
// keep the application listing order (stable sort); no secondary key is
// applied.
type RankOptions struct {
	MinScore         int  `json:"minScore"`
	Tier             Tier `json:"tier,omitempty"`
	IncludeWithdrawn bool `json:"includeWithdrawn"`
	Limit            int  `json:"limit"`
}

// RankingResult is the ordered ranking output for one job.
type RankingResult struct {
	JobID      string           `json:"jobId"`
	JobTitle   string           `json:"jobTitle,omitempty"`
	Applicants []CandidateScore `json:"applicants"`
	Total      int              `json:"total"`
}

// ApplicantStats are the aggregate statistics over a full ranking.
type ApplicantStats struct {
	JobID          string         `json:"jobId"`
	Total          int            `json:"total"`
	TierCounts     map[Tier]int   `json:"tierCounts"`
	AverageScore   float64        `json:"averageScore"`
	WithRedFlags   int            `json:"withRedFlags"`
	WithGreenFlags int            `json:"withGreenFlags"`
	TopCandidate   *CandidateScore `json:"topCandidate,omitempty"`
}

// Comparison winner values.
const (
	WinnerA   = "candidateA"
	WinnerB   = "candidateB"
	WinnerTie = "tie"
)

// DimensionComparison compares one breakdown dimension between two candidates.
// Ties go to candidate A.
type DimensionComparison struct {
	Dimension string `json:"dimension"`
	A         int    `json:"a"`
	B         int    `json:"b"`
	Winner    string `json:"winner"`
}

// Comparison is the side-by-side result for two applicants on the same job.
type Comparison struct {
	JobID           string                `json:"jobId"`
	CandidateA      CandidateScore        `json:"candidateA"`
	CandidateB      CandidateScore        `json:"candidateB"`
	ScoreDifference int                   `json:"scoreDifference"`
	Winner          string                `json:"winner"`
	Dimensions      []DimensionComparison `json:"dimensions"`
}

// normalized applies boundary defaulting to a requirement set: negative or
// missing experience bounds fall back to the configured defaults so the rest
// of the pipeline never re-checks them.
func (j JobRequirements) normalized(bands ExperienceBands) JobRequirements {
	if j.MinExperience < 0 {
		j.MinExperience = 0
	}
	if j.MaxExperience <= 0 {
		j.MaxExperience = bands.DefaultMaxYears
	}
	return j
}

// normalized applies boundary defaulting to an application snapshot.
func (a Application) normalized() Application {
	if a.Candidate.YearsExperience < 0 {
		a.Candidate.YearsExperience = 0
	}
	return a
}
