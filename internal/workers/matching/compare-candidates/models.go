package comparecandidates

import "matching-workers/internal/matching"

type Input struct {
	JobID          string `json:"jobId"`
	ApplicationIDA string `json:"applicationIdA"`
	ApplicationIDB string `json:"applicationIdB"`
}

type Output struct {
	Comparison *matching.Comparison `json:"comparison"`
}
