package rankapplicants

import "matching-workers/internal/matching"

type Input struct {
	JobID            string `json:"jobId"`
	MinScore         int    `json:"minScore"`
	Tier             string `json:"tier,omitempty"`
	IncludeWithdrawn bool   `json:"includeWithdrawn"`
	Limit            int    `json:"limit"`
}

type Output struct {
	Ranking *matching.RankingResult `json:"ranking"`
}
