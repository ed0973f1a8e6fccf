package scorecandidate

import "matching-workers/internal/matching"

// Input carries either the ids to resolve through the store, or an inline
// job and application pair supplied by the workflow itself. Inline data wins
// when both are present.
type Input struct {
	JobID         string `json:"jobId"`
	ApplicationID string `json:"applicationId"`

	Job         *matching.JobRequirements `json:"job,omitempty"`
	Application *matching.Application     `json:"application,omitempty"`
}

type Output struct {
	Result *matching.CandidateScore `json:"matchResult"`
}
