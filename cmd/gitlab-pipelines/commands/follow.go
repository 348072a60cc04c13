package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/savaki/gitlab-pipelines/internal/pipelines"
	"github.com/urfave/cli/v2"
)

// FollowCommand returns the follow command for waiting on a running pipeline
func FollowCommand(logger *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "follow",
		Usage: "Wait for a pipeline to finish",
		Description: `Follow a pipeline until it reaches a terminal state.

The pipeline is selected by --id, by the most recent pipeline for --ref, or
with --here by the most recent pipeline for the currently checked-out branch.

Examples:
  # Follow a specific pipeline
  gitlab-pipelines follow --id 123456

  # Follow the latest pipeline for a branch
  gitlab-pipelines follow --ref 6.15.x

  # Follow the latest pipeline for the current checkout
  gitlab-pipelines follow --here`,
		Flags: append(commonFlags(),
			&cli.IntFlag{
				Name:    "id",
				Aliases: []string{"i"},
				Usage:   "Pipeline id to follow",
			},
			&cli.StringFlag{
				Name:    "ref",
				Aliases: []string{"r"},
				Usage:   "Follow the most recent pipeline for this ref",
			},
			&cli.BoolFlag{
				Name:    "here",
				Usage:   "Follow the most recent pipeline for the current branch",
			},
		),
		Action: followAction,
	}
}

// followAction waits on the selected pipeline
func followAction(c *cli.Context) error {
	applyVerbosity(c)

	if c.Int("id") == 0 && c.String("ref") == "" && !c.Bool("here") {
		return fmt.Errorf("one of --id, --ref, or --here is required")
	}

	service, cfg, err := newService(c)
	if err != nil {
		return err
	}

	input := pipelines.FollowInput{
		Project: cfg.Project,
		ID:      c.Int("id"),
		Ref:     c.String("ref"),
		Here:    c.Bool("here"),
	}

	return service.Follow(c.Context, input)
}
