package gitlab

import "time"

// Pipeline is a single run of a project's CI workflow.
type Pipeline struct {
	ID        int       `json:"id"`
	Status    Status    `json:"status"`
	Ref       string    `json:"ref"`
	SHA       string    `json:"sha"`
	WebURL    string    `json:"web_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Job is a single job within a pipeline.
type Job struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Stage  string `json:"stage"`
	Status Status `json:"status"`
}
