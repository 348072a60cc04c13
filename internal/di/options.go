package di

type ConfigPath string
type ProjectOverride string

// Option is a function that configures the dependency injection container.
type Option func(*options)

func WithConfigPath(path string) Option {
	return func(opts *options) {
		opts.configPath = ConfigPath(path)
	}
}

func WithProject(project string) Option {
	return func(opts *options) {
		opts.project = ProjectOverride(project)
	}
}

// WithProviders adds constructor functions to the dependency injection container.
// Each provider should be a constructor function that returns one or more values.
// Providers can declare dependencies as function parameters, which will be
// automatically resolved by the container.
func WithProviders(providers ...any) Option {
	return func(opts *options) {
		opts.providers = append(opts.providers, providers...)
	}
}

type options struct {
	configPath ConfigPath
	project    ProjectOverride
	providers  []any
}
