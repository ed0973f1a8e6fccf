package matching

import "fmt"

// Config carries every constant of the scoring model. It is passed into the
// Service explicitly so tests and deployments can override single knobs
// without touching package state.
type Config struct {
	Weights    Weights         `mapstructure:"weights"`
	Tiers      TierThresholds  `mapstructure:"tiers"`
	Experience ExperienceBands `mapstructure:"experience"`
	Flags      FlagThresholds  `mapstructure:"flags"`
	Signals    SignalBonuses   `mapstructure:"signals"`

	// AvailabilityDecayPerDay is subtracted from the availability sub-score
	// for each day the candidate is available after the job start.
	AvailabilityDecayPerDay float64 `mapstructure:"availability_decay_per_day"`

	// ScoreConcurrency bounds the per-applicant scoring fan-out in ranking.
	ScoreConcurrency int `mapstructure:"score_concurrency"`
	// DefaultLimit caps ranking output when the request gives no limit.
	DefaultLimit int `mapstructure:"default_limit"`
	// StatsLimit is the ranking cap used by stats and comparison.
	StatsLimit int `mapstructure:"stats_limit"`
}

// Weights are the six sub-score weights. They must sum to 100.
type Weights struct {
	SkillsRequired  float64 `mapstructure:"skills_required"`
	SkillsPreferred float64 `mapstructure:"skills_preferred"`
	Experience      float64 `mapstructure:"experience"`
	Qualifications  float64 `mapstructure:"qualifications"`
	Cultural        float64 `mapstructure:"cultural"`
	Availability    float64 `mapstructure:"availability"`
}

// Sum returns the total of all six weights.
func (w Weights) Sum() float64 {
	return w.SkillsRequired + w.SkillsPreferred + w.Experience +
		w.Qualifications + w.Cultural + w.Availability
}

// TierThresholds maps a rounded composite score to a readiness tier.
// A composite at or above a threshold lands in that tier; below Developing
// is NotReady.
type TierThresholds struct {
	Excellent  int `mapstructure:"excellent"`
	Good       int `mapstructure:"good"`
	Potential  int `mapstructure:"potential"`
	Developing int `mapstructure:"developing"`
}

// ExperienceBands parametrizes the banded years-of-experience policy.
type ExperienceBands struct {
	// DefaultMaxYears substitutes a job's missing maximum preferred years.
	DefaultMaxYears float64 `mapstructure:"default_max_years"`
	// UnderqualifiedSlack is how many years short of the minimum a candidate
	// may be before the underqualified flag trips.
	UnderqualifiedSlack float64 `mapstructure:"underqualified_slack"`
	// OverqualifiedSlack is how many years past the maximum a candidate may
	// be before the overqualified band applies.
	OverqualifiedSlack float64 `mapstructure:"overqualified_slack"`
	// BelowMinCap caps the proportional score for candidates under the minimum.
	BelowMinCap float64 `mapstructure:"below_min_cap"`
	// NearMaxScore applies within OverqualifiedSlack years past the maximum.
	NearMaxScore float64 `mapstructure:"near_max_score"`
	// FarOverScore applies beyond OverqualifiedSlack years past the maximum.
	FarOverScore float64 `mapstructure:"far_over_score"`
}

// FlagThresholds parametrizes the red-flag rules.
type FlagThresholds struct {
	// SalaryStretch is the multiplier on the job's salary maximum above which
	// an expected salary trips the mismatch flag.
	SalaryStretch float64 `mapstructure:"salary_stretch"`
	// DelayedStartDays is the start-date gap beyond which the delayed-start
	// flag trips.
	DelayedStartDays int `mapstructure:"delayed_start_days"`
}

// SignalBonuses parametrizes the community-engagement score.
type SignalBonuses struct {
	Baseline           int `mapstructure:"baseline"`
	Mentorship         int `mapstructure:"mentorship"`
	Training           int `mapstructure:"training"`
	Forum              int `mapstructure:"forum"`
	Badges             int `mapstructure:"badges"`
	Verified           int `mapstructure:"verified"`
	Referred           int `mapstructure:"referred"`
	ForumPostThreshold int `mapstructure:"forum_post_threshold"`
}

// DefaultConfig returns the production scoring constants.
func DefaultConfig() Config {
	cfg := Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero-valued fields with the production constants.
func (c *Config) ApplyDefaults() {
	if c.Weights == (Weights{}) {
		c.Weights = Weights{
			SkillsRequired:  35,
			SkillsPreferred: 15,
			Experience:      20,
			Qualifications:  15,
			Cultural:        10,
			Availability:    5,
		}
	}
	if c.Tiers == (TierThresholds{}) {
		c.Tiers = TierThresholds{
			Excellent:  80,
			Good:       65,
			Potential:  50,
			Developing: 35,
		}
	}
	if c.Experience == (ExperienceBands{}) {
		c.Experience = ExperienceBands{
			DefaultMaxYears:     15,
			UnderqualifiedSlack: 2,
			OverqualifiedSlack:  5,
			BelowMinCap:         70,
			NearMaxScore:        85,
			FarOverScore:        70,
		}
	}
	if c.Flags == (FlagThresholds{}) {
		c.Flags = FlagThresholds{
			SalaryStretch:    1.2,
			DelayedStartDays: 30,
		}
	}
	if c.Signals == (SignalBonuses{}) {
		c.Signals = SignalBonuses{
			Baseline:           50,
			Mentorship:         15,
			Training:           10,
			Forum:              10,
			Badges:             10,
			Verified:           10,
			Referred:           10,
			ForumPostThreshold: 5,
		}
	}
	if c.AvailabilityDecayPerDay == 0 {
		c.AvailabilityDecayPerDay = 2
	}
	if c.ScoreConcurrency == 0 {
		c.ScoreConcurrency = 8
	}
	if c.DefaultLimit == 0 {
		c.DefaultLimit = 50
	}
	if c.StatsLimit == 0 {
		c.StatsLimit = 1000
	}
}

// Validate checks internal consistency of the scoring constants.
func (c *Config) Validate() error {
	if sum := c.Weights.Sum(); sum != 100 {
		return fmt.Errorf("sub-score weights must sum to 100, got %v", sum)
	}
	if c.Tiers.Excellent <= c.Tiers.Good || c.Tiers.Good <= c.Tiers.Potential ||
		c.Tiers.Potential <= c.Tiers.Developing {
		return fmt.Errorf("tier thresholds must be strictly descending")
	}
	if c.ScoreConcurrency < 1 {
		return fmt.Errorf("score_concurrency must be at least 1")
	}
	return nil
}
