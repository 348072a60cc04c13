package main

import (
	"context"
	"os"

	"github.com/savaki/gitlab-pipelines/cmd/gitlab-pipelines/commands"
	"github.com/savaki/gitlab-pipelines/internal/di"
	"github.com/urfave/cli/v2"
)

func main() {
	logger := di.ProvideLogger()
	ctx := logger.WithContext(context.Background())

	app := &cli.App{
		Name:  "gitlab-pipelines",
		Usage: "Trigger and follow datadog-agent GitLab pipelines",
		Description: `A CLI for driving the datadog-agent CI pipelines on GitLab.

This tool provides commands for:
  - Triggering the nightly agent pipeline with release parameters
  - Following a pipeline until it reaches a terminal state
  - Listing recent pipelines for a ref`,
		Commands: []*cli.Command{
			commands.TriggerCommand(&logger),
			commands.FollowCommand(&logger),
			commands.ListCommand(&logger),
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		logger.Error().Err(err).Msg("Application error")
		os.Exit(1)
	}
}
