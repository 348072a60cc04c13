package commands

import (
	"github.com/rs/zerolog"
	"github.com/savaki/gitlab-pipelines/internal/pipelines"
	"github.com/urfave/cli/v2"
)

// TriggerCommand returns the trigger command for starting an agent pipeline
func TriggerCommand(logger *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "trigger",
		Usage: "Trigger a datadog-agent pipeline and wait for it to finish",
		Description: `Trigger a pipeline with the nightly release parameters and block until it
reaches a terminal state.

Examples:
  # Trigger the nightly pipeline on master
  gitlab-pipelines trigger

  # Trigger a pipeline for a release branch with explicit versions
  gitlab-pipelines trigger --ref 6.15.x \
    --release-version-6 6.15.0 \
    --release-version-7 7.15.0 \
    --repo-branch stable`,
		Flags: append(commonFlags(),
			&cli.StringFlag{
				Name:    "ref",
				Aliases: []string{"r"},
				Usage:   "Git ref to run the pipeline against",
				Value:   "master",
				EnvVars: []string{"REF"},
			},
			&cli.StringFlag{
				Name:    "release-version-6",
				Usage:   "Release version for agent 6",
				Value:   "nightly",
				EnvVars: []string{"RELEASE_VERSION_6"},
			},
			&cli.StringFlag{
				Name:    "release-version-7",
				Usage:   "Release version for agent 7",
				Value:   "nightly-a7",
				EnvVars: []string{"RELEASE_VERSION_7"},
			},
			&cli.StringFlag{
				Name:    "repo-branch",
				Usage:   "Package repository branch to publish to",
				Value:   "nightly",
				EnvVars: []string{"REPO_BRANCH"},
			},
			&cli.BoolFlag{
				Name:    "windows-update-latest",
				Usage:   "Update the latest Windows build pointer",
				Value:   true,
				EnvVars: []string{"WINDOWS_UPDATE_LATEST"},
			},
		),
		Action: triggerAction,
	}
}

// triggerAction starts the pipeline and waits on it
func triggerAction(c *cli.Context) error {
	applyVerbosity(c)

	service, cfg, err := newService(c)
	if err != nil {
		return err
	}

	input := pipelines.TriggerInput{
		Project:             cfg.Project,
		Ref:                 c.String("ref"),
		ReleaseVersion6:     c.String("release-version-6"),
		ReleaseVersion7:     c.String("release-version-7"),
		RepoBranch:          c.String("repo-branch"),
		WindowsUpdateLatest: c.Bool("windows-update-latest"),
	}

	return service.Trigger(c.Context, input)
}
