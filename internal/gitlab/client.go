package gitlab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/savaki/gitlab-pipelines/internal/errors"
)

// Client is a minimal GitLab API client covering the pipeline endpoints this
// tool needs: triggering a pipeline, reading pipeline status, and listing
// pipelines and jobs.
type Client struct {
	baseURL      string
	apiToken     string
	triggerToken string
	httpClient   *http.Client
	retry        retryConfig
}

func NewClient(baseURL, apiToken, triggerToken string) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		apiToken:     apiToken,
		triggerToken: triggerToken,
		httpClient:   &http.Client{},
		retry:        defaultRetryConfig(),
	}
}

// CreatePipeline starts a new pipeline for ref via the trigger endpoint.
// variables are passed through as trigger variables.
func (c *Client) CreatePipeline(ctx context.Context, project, ref string, variables map[string]string) (*Pipeline, error) {
	if c.triggerToken == "" {
		return nil, errors.ErrTriggerTokenRequired
	}

	form := url.Values{}
	form.Set("token", c.triggerToken)
	form.Set("ref", ref)
	for key, value := range variables {
		form.Set(fmt.Sprintf("variables[%s]", key), value)
	}

	endpoint := fmt.Sprintf("%s/projects/%s/trigger/pipeline", c.baseURL, url.PathEscape(project))
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to trigger pipeline: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to trigger pipeline: status %d, body: %s", resp.StatusCode, string(body))
	}

	var pipeline Pipeline
	if err := json.NewDecoder(resp.Body).Decode(&pipeline); err != nil {
		return nil, fmt.Errorf("failed to decode pipeline: %w", err)
	}

	return &pipeline, nil
}

// Pipeline fetches a single pipeline by id.
func (c *Client) Pipeline(ctx context.Context, project string, id int) (*Pipeline, error) {
	endpoint := fmt.Sprintf("%s/projects/%s/pipelines/%d", c.baseURL, url.PathEscape(project), id)

	var pipeline Pipeline
	if _, err := c.getJSON(ctx, "get-pipeline", endpoint, &pipeline); err != nil {
		return nil, err
	}

	return &pipeline, nil
}

// PipelinesForRef lists the pipelines for ref, most recent first.
func (c *Client) PipelinesForRef(ctx context.Context, project, ref string) ([]Pipeline, error) {
	endpoint := fmt.Sprintf("%s/projects/%s/pipelines?ref=%s&order_by=id&sort=desc&per_page=100",
		c.baseURL, url.PathEscape(project), url.QueryEscape(ref))

	var pipelines []Pipeline
	if _, err := c.getJSON(ctx, "list-pipelines", endpoint, &pipelines); err != nil {
		return nil, err
	}

	return pipelines, nil
}

// PipelineJobs lists all jobs in a pipeline, following pagination.
func (c *Client) PipelineJobs(ctx context.Context, project string, id int) ([]Job, error) {
	base := fmt.Sprintf("%s/projects/%s/pipelines/%d/jobs?per_page=100", c.baseURL, url.PathEscape(project), id)

	var jobs []Job
	page := "1"
	for page != "" {
		var batch []Job
		next, err := c.getJSON(ctx, "list-jobs", base+"&page="+page, &batch)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, batch...)
		page = next
	}

	return jobs, nil
}

// getJSON performs an authenticated GET with retries on transient failures and
// decodes the response body into out. It returns the X-Next-Page header value
// for paginated endpoints.
func (c *Client) getJSON(ctx context.Context, operation, endpoint string, out any) (string, error) {
	if c.apiToken == "" {
		return "", errors.ErrTokenRequired
	}

	var next string
	err := retryDo(ctx, operation, c.retry, func() error {
		req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		req.Header.Set("PRIVATE-TOKEN", c.apiToken)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("failed to call GitLab: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			// fall through to decode
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(fmt.Errorf("%w: %s", errors.ErrPipelineNotFound, endpoint))
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			body, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("GitLab returned status %d, body: %s", resp.StatusCode, string(body))
		default:
			body, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(fmt.Errorf("GitLab returned status %d, body: %s", resp.StatusCode, string(body)))
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
		}

		next = nextPage(resp)
		return nil
	})
	if err != nil {
		return "", err
	}

	return next, nil
}

func nextPage(resp *http.Response) string {
	value := resp.Header.Get("X-Next-Page")
	if value == "" {
		return ""
	}
	if _, err := strconv.Atoi(value); err != nil {
		return ""
	}
	return value
}
