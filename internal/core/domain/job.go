package domain

import "time"

// JobStatus marks whether a search result has been seen before.
type JobStatus string

const (
	JobStatusNew  JobStatus = "new"
	JobStatusSeen JobStatus = "seen"
)

// Job is a single job-search result.
type Job struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Score     int       `json:"score"`
	Status    JobStatus `json:"status,omitempty"`
	FetchedAt time.Time `json:"fetchedAt"`
}
