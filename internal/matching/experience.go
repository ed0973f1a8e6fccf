package matching

// evaluateExperience scores years of experience against a job's band. The
// policy is deliberately non-continuous: candidates slightly outside the
// range keep a decent score, while significant mismatches on either side
// additionally raise a flag.
func evaluateExperience(years, minYears, maxYears float64, bands ExperienceBands) ExperienceFit {
	if years < 0 {
		years = 0
	}
	if minYears < 0 {
		minYears = 0
	}
	if maxYears <= 0 {
		maxYears = bands.DefaultMaxYears
	}

	switch {
	case years < minYears:
		score := years / minYears * bands.BelowMinCap
		if score < 0 {
			score = 0
		}
		return ExperienceFit{
			Score:            score,
			IsUnderqualified: minYears-years > bands.UnderqualifiedSlack,
		}
	case years > maxYears+bands.OverqualifiedSlack:
		return ExperienceFit{Score: bands.FarOverScore, IsOverqualified: true}
	case years > maxYears:
		return ExperienceFit{Score: bands.NearMaxScore}
	default:
		return ExperienceFit{Score: 100}
	}
}
