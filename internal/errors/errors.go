package errors

import "errors"

var (
	ErrTokenRequired        = errors.New("GITLAB_TOKEN environment variable or api_token config entry is required")
	ErrTriggerTokenRequired = errors.New("GITLAB_TRIGGER_TOKEN environment variable or trigger_token config entry is required")
	ErrPipelineNotFound     = errors.New("pipeline not found")
	ErrPipelineFailed       = errors.New("pipeline finished in a failed state")
)
