package applicantstats

import "matching-workers/internal/matching"

type Input struct {
	JobID string `json:"jobId"`
}

type Output struct {
	Stats *matching.ApplicantStats `json:"stats"`
}
