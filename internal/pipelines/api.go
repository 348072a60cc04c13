package pipelines

import (
	"context"

	"github.com/savaki/gitlab-pipelines/internal/gitlab"
)

// API is the subset of the GitLab client this package consumes. It exists so
// command-level behavior can be tested without a live GitLab.
type API interface {
	CreatePipeline(ctx context.Context, project, ref string, variables map[string]string) (*gitlab.Pipeline, error)
	Pipeline(ctx context.Context, project string, id int) (*gitlab.Pipeline, error)
	PipelinesForRef(ctx context.Context, project, ref string) ([]gitlab.Pipeline, error)
	PipelineJobs(ctx context.Context, project string, id int) ([]gitlab.Job, error)
}

// Waiter blocks until a pipeline reaches a terminal status.
type Waiter interface {
	Wait(ctx context.Context, project string, id int) (gitlab.Status, error)
}
