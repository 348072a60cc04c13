package gitlab

// Status is a pipeline or job status as reported by the GitLab API.
type Status string

const (
	StatusCreated            Status = "created"
	StatusWaitingForResource Status = "waiting_for_resource"
	StatusPreparing          Status = "preparing"
	StatusPending            Status = "pending"
	StatusRunning            Status = "running"
	StatusSuccess            Status = "success"
	StatusFailed             Status = "failed"
	StatusCanceled           Status = "canceled"
	StatusSkipped            Status = "skipped"
	StatusManual             Status = "manual"
	StatusScheduled          Status = "scheduled"
)

func (s Status) String() string {
	return string(s)
}

// Terminal reports whether the pipeline will make no further progress.
func (s Status) Terminal() bool {
	switch s {
	case StatusSuccess, StatusFailed, StatusCanceled, StatusSkipped:
		return true
	}
	return false
}

// Failed reports whether a terminal status is anything other than success.
// Skipped pipelines ran nothing and are not treated as failures.
func (s Status) Failed() bool {
	switch s {
	case StatusFailed, StatusCanceled:
		return true
	}
	return false
}
