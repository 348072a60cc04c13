package pipelines

import (
	"context"
	"fmt"
	"io"

	"github.com/savaki/gitlab-pipelines/internal/gitlab"
	"github.com/savaki/gitlab-pipelines/internal/gitrepo"
)

// FollowInput selects which pipeline to follow. Precedence is ID, then Ref,
// then Here (resolve the ref from the current checkout).
type FollowInput struct {
	Project string
	ID      int
	Ref     string
	Here    bool
}

// Service composes the GitLab client and the follower into the command-level
// operations.
type Service struct {
	api      API
	waiter   Waiter
	out      io.Writer
	branchFn func(context.Context) (string, error)
}

func NewService(api API, waiter Waiter, out io.Writer) *Service {
	return &Service{
		api:      api,
		waiter:   waiter,
		out:      out,
		branchFn: gitrepo.CurrentBranch,
	}
}

// Trigger starts a pipeline with the given parameters and waits for it to
// reach a terminal status.
func (s *Service) Trigger(ctx context.Context, input TriggerInput) error {
	pipeline, err := Trigger(ctx, s.api, input)
	if err != nil {
		return err
	}

	_, err = s.waiter.Wait(ctx, input.Project, pipeline.ID)
	return err
}

// Follow waits on the selected pipeline. When a ref (explicit or inferred
// from the checkout) has no pipelines, it prints a message and returns nil.
func (s *Service) Follow(ctx context.Context, input FollowInput) error {
	switch {
	case input.ID != 0:
		_, err := s.waiter.Wait(ctx, input.Project, input.ID)
		return err
	case input.Ref != "":
		return s.followRef(ctx, input.Project, input.Ref)
	case input.Here:
		ref, err := s.branchFn(ctx)
		if err != nil {
			return err
		}
		return s.followRef(ctx, input.Project, ref)
	default:
		return fmt.Errorf("one of --id, --ref, or --here is required")
	}
}

// Recent returns up to limit pipelines for ref, most recent first.
func (s *Service) Recent(ctx context.Context, project, ref string, limit int) ([]gitlab.Pipeline, error) {
	pipelines, err := s.api.PipelinesForRef(ctx, project, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to list pipelines for %s: %w", ref, err)
	}
	if limit > 0 && len(pipelines) > limit {
		pipelines = pipelines[:limit]
	}
	return pipelines, nil
}

// LatestForRef returns the most recent pipeline for ref. ok is false when the
// ref has no pipelines at all.
func (s *Service) LatestForRef(ctx context.Context, project, ref string) (*gitlab.Pipeline, bool, error) {
	pipelines, err := s.api.PipelinesForRef(ctx, project, ref)
	if err != nil {
		return nil, false, fmt.Errorf("failed to list pipelines for %s: %w", ref, err)
	}
	if len(pipelines) == 0 {
		return nil, false, nil
	}
	return &pipelines[0], true, nil
}

func (s *Service) followRef(ctx context.Context, project, ref string) error {
	pipeline, ok, err := s.LatestForRef(ctx, project, ref)
	if err != nil {
		return err
	}

	if !ok {
		fmt.Fprintf(s.out, "No pipelines found for %s\n", ref)
		return nil
	}

	_, err = s.waiter.Wait(ctx, project, pipeline.ID)
	return err
}
