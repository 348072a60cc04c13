package pipelines

import (
	"context"
	"fmt"

	"github.com/savaki/gitlab-pipelines/internal/gitlab"
)

type createCall struct {
	project   string
	ref       string
	variables map[string]string
}

type listCall struct {
	project string
	ref     string
}

// fakeAPI records calls and plays back canned responses.
type fakeAPI struct {
	createCalls []createCall
	createResp  *gitlab.Pipeline
	createErr   error

	listCalls []listCall
	listResp  []gitlab.Pipeline
	listErr   error

	// statuses are returned by successive Pipeline calls; the last entry
	// repeats once exhausted.
	statuses    []gitlab.Status
	pipelinePos int

	jobs []gitlab.Job
}

func (f *fakeAPI) CreatePipeline(ctx context.Context, project, ref string, variables map[string]string) (*gitlab.Pipeline, error) {
	f.createCalls = append(f.createCalls, createCall{project: project, ref: ref, variables: variables})
	return f.createResp, f.createErr
}

func (f *fakeAPI) Pipeline(ctx context.Context, project string, id int) (*gitlab.Pipeline, error) {
	if len(f.statuses) == 0 {
		return nil, fmt.Errorf("unexpected Pipeline call for %d", id)
	}
	status := f.statuses[f.pipelinePos]
	if f.pipelinePos < len(f.statuses)-1 {
		f.pipelinePos++
	}
	return &gitlab.Pipeline{ID: id, Status: status}, nil
}

func (f *fakeAPI) PipelinesForRef(ctx context.Context, project, ref string) ([]gitlab.Pipeline, error) {
	f.listCalls = append(f.listCalls, listCall{project: project, ref: ref})
	return f.listResp, f.listErr
}

func (f *fakeAPI) PipelineJobs(ctx context.Context, project string, id int) ([]gitlab.Job, error) {
	return f.jobs, nil
}

// fakeWaiter records the pipeline ids it was asked to wait on.
type fakeWaiter struct {
	calls  []int
	status gitlab.Status
	err    error
}

func (f *fakeWaiter) Wait(ctx context.Context, project string, id int) (gitlab.Status, error) {
	f.calls = append(f.calls, id)
	return f.status, f.err
}
