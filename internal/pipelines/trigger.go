package pipelines

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/savaki/gitlab-pipelines/internal/gitlab"
)

// TriggerInput carries the parameters for a nightly agent pipeline.
type TriggerInput struct {
	Project             string
	Ref                 string
	ReleaseVersion6     string
	ReleaseVersion7     string
	RepoBranch          string
	WindowsUpdateLatest bool
}

// Trigger starts a pipeline for input.Ref, passing the release parameters
// through as trigger variables.
func Trigger(ctx context.Context, api API, input TriggerInput) (*gitlab.Pipeline, error) {
	logger := zerolog.Ctx(ctx)

	variables := map[string]string{
		"RELEASE_VERSION_6":     input.ReleaseVersion6,
		"RELEASE_VERSION_7":     input.ReleaseVersion7,
		"REPO_BRANCH":           input.RepoBranch,
		"WINDOWS_UPDATE_LATEST": strconv.FormatBool(input.WindowsUpdateLatest),
	}

	pipeline, err := api.CreatePipeline(ctx, input.Project, input.Ref, variables)
	if err != nil {
		return nil, fmt.Errorf("failed to trigger pipeline: %w", err)
	}

	logger.Info().
		Int("pipeline", pipeline.ID).
		Str("ref", input.Ref).
		Str("url", pipeline.WebURL).
		Msg("Pipeline started")

	return pipeline, nil
}
