package pipelines

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/savaki/gitlab-pipelines/internal/errors"
	"github.com/savaki/gitlab-pipelines/internal/gitlab"
	"github.com/savaki/gox/slicex"
)

// Follower polls a pipeline until it reaches a terminal status, reporting
// pipeline and job status transitions as they happen.
type Follower struct {
	api      API
	interval time.Duration
}

func NewFollower(api API, interval time.Duration) *Follower {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Follower{
		api:      api,
		interval: interval,
	}
}

// Wait blocks until the pipeline is terminal and returns its final status.
// Failed and canceled pipelines additionally return ErrPipelineFailed so
// callers exit non-zero. Wait is unbounded; cancel via ctx.
func (f *Follower) Wait(ctx context.Context, project string, id int) (gitlab.Status, error) {
	logger := zerolog.Ctx(ctx)

	var lastStatus gitlab.Status
	jobStatuses := map[string]gitlab.Status{}

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		pipeline, err := f.api.Pipeline(ctx, project, id)
		if err != nil {
			return "", fmt.Errorf("failed to get pipeline %d: %w", id, err)
		}

		if pipeline.Status != lastStatus {
			logger.Info().
				Int("pipeline", id).
				Str("status", pipeline.Status.String()).
				Str("url", pipeline.WebURL).
				Msg("Pipeline status")
			lastStatus = pipeline.Status
		}

		f.reportJobs(ctx, project, id, jobStatuses)

		if pipeline.Status.Terminal() {
			if pipeline.Status.Failed() {
				return pipeline.Status, fmt.Errorf("%w: pipeline %d is %s", errors.ErrPipelineFailed, id, pipeline.Status)
			}
			return pipeline.Status, nil
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}

// reportJobs logs each job whose status changed since the previous poll.
// Job listing failures are logged and skipped; the pipeline poll is the
// source of truth for termination.
func (f *Follower) reportJobs(ctx context.Context, project string, id int, seen map[string]gitlab.Status) {
	logger := zerolog.Ctx(ctx)

	jobs, err := f.api.PipelineJobs(ctx, project, id)
	if err != nil {
		logger.Warn().Err(err).Int("pipeline", id).Msg("Failed to list pipeline jobs")
		return
	}

	var failed []gitlab.Job
	for _, job := range jobs {
		if seen[job.Name] == job.Status {
			continue
		}
		seen[job.Name] = job.Status

		event := logger.Info()
		if job.Status == gitlab.StatusFailed {
			event = logger.Warn()
			failed = append(failed, job)
		}
		event.
			Str("job", job.Name).
			Str("stage", job.Stage).
			Str("status", job.Status.String()).
			Msg("Job status")
	}

	if len(failed) > 0 {
		names := slicex.Map(failed, func(job gitlab.Job) string { return job.Name })
		logger.Warn().
			Int("pipeline", id).
			Str("jobs", strings.Join(names, ", ")).
			Msg("Jobs failed")
	}
}
