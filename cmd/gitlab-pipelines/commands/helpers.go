package commands

import (
	"github.com/rs/zerolog"
	"github.com/savaki/gitlab-pipelines/internal/config"
	"github.com/savaki/gitlab-pipelines/internal/di"
	"github.com/savaki/gitlab-pipelines/internal/pipelines"
	"github.com/urfave/cli/v2"
)

// commonFlags are shared by every command.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the YAML config file (defaults to ~/.gitlab-pipelines.yml)",
			EnvVars: []string{"GITLAB_PIPELINES_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "project",
			Aliases: []string{"p"},
			Usage:   "GitLab project path (defaults to DataDog/datadog-agent)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Enable debug logging",
			EnvVars: []string{"VERBOSE"},
		},
	}
}

// applyVerbosity lowers the context logger's level to debug when --verbose is
// set. The logger lives in the context, so the change is visible to everything
// downstream of the action.
func applyVerbosity(c *cli.Context) {
	if c.Bool("verbose") {
		logger := zerolog.Ctx(c.Context)
		*logger = logger.Level(zerolog.DebugLevel)
	}
}

// newService builds the pipeline service and resolved config for a command
// invocation via the dependency injection container.
func newService(c *cli.Context) (*pipelines.Service, *config.Config, error) {
	container, err := di.New(
		di.WithConfigPath(c.String("config")),
		di.WithProject(c.String("project")),
	)
	if err != nil {
		return nil, nil, err
	}

	var service *pipelines.Service
	var cfg *config.Config
	err = container.Invoke(func(s *pipelines.Service, conf *config.Config) {
		service = s
		cfg = conf
	})
	if err != nil {
		return nil, nil, err
	}

	return service, cfg, nil
}
