package di

import (
	"os"
	"time"

	"github.com/savaki/gitlab-pipelines/internal/config"
	"github.com/savaki/gitlab-pipelines/internal/gitlab"
	"github.com/savaki/gitlab-pipelines/internal/pipelines"
)

func ProvideConfig(path ConfigPath, project ProjectOverride) (*config.Config, error) {
	cfg, err := config.Load(string(path))
	if err != nil {
		return nil, err
	}
	if project != "" {
		cfg.Project = string(project)
	}
	return cfg, nil
}

func ProvideClient(cfg *config.Config) *gitlab.Client {
	return gitlab.NewClient(cfg.BaseURL, cfg.APIToken, cfg.TriggerToken)
}

func ProvideAPI(client *gitlab.Client) pipelines.API {
	return client
}

func ProvideFollower(api pipelines.API, cfg *config.Config) *pipelines.Follower {
	return pipelines.NewFollower(api, time.Duration(cfg.PollInterval))
}

func ProvideService(api pipelines.API, follower *pipelines.Follower) *pipelines.Service {
	return pipelines.NewService(api, follower, os.Stdout)
}
