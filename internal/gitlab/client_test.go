package gitlab

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/savaki/gitlab-pipelines/internal/errors"
)

func fastRetry() retryConfig {
	return retryConfig{
		maxRetries:      2,
		initialInterval: time.Millisecond,
		maxInterval:     time.Millisecond,
	}
}

func TestCreatePipeline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/projects/DataDog%2Fdatadog-agent/trigger/pipeline", r.URL.EscapedPath())

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "trigger-token", r.PostForm.Get("token"))
		assert.Equal(t, "master", r.PostForm.Get("ref"))
		assert.Equal(t, "nightly", r.PostForm.Get("variables[RELEASE_VERSION_6]"))
		assert.Equal(t, "nightly-a7", r.PostForm.Get("variables[RELEASE_VERSION_7]"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 42, "status": "pending", "ref": "master", "web_url": "https://example.com/p/42"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "api-token", "trigger-token")
	pipeline, err := client.CreatePipeline(context.Background(), "DataDog/datadog-agent", "master", map[string]string{
		"RELEASE_VERSION_6": "nightly",
		"RELEASE_VERSION_7": "nightly-a7",
	})
	require.NoError(t, err)
	assert.Equal(t, 42, pipeline.ID)
	assert.Equal(t, StatusPending, pipeline.Status)
	assert.Equal(t, "https://example.com/p/42", pipeline.WebURL)
}

func TestCreatePipelineRequiresTriggerToken(t *testing.T) {
	client := NewClient("https://example.com", "api-token", "")
	_, err := client.CreatePipeline(context.Background(), "DataDog/datadog-agent", "master", nil)
	assert.ErrorIs(t, err, apperrors.ErrTriggerTokenRequired)
}

func TestPipeline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects/DataDog%2Fdatadog-agent/pipelines/42", r.URL.EscapedPath())
		assert.Equal(t, "api-token", r.Header.Get("PRIVATE-TOKEN"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 42, "status": "running", "ref": "master", "sha": "abc123"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "api-token", "")
	pipeline, err := client.Pipeline(context.Background(), "DataDog/datadog-agent", 42)
	require.NoError(t, err)
	assert.Equal(t, StatusRunning, pipeline.Status)
	assert.Equal(t, "abc123", pipeline.SHA)
}

func TestPipelineNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "404 Not Found"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "api-token", "")
	_, err := client.Pipeline(context.Background(), "DataDog/datadog-agent", 99)
	assert.ErrorIs(t, err, apperrors.ErrPipelineNotFound)
}

func TestPipelineRequiresToken(t *testing.T) {
	client := NewClient("https://example.com", "", "")
	_, err := client.Pipeline(context.Background(), "DataDog/datadog-agent", 42)
	assert.ErrorIs(t, err, apperrors.ErrTokenRequired)
}

func TestPipelinesForRef(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects/DataDog%2Fdatadog-agent/pipelines", r.URL.EscapedPath())
		assert.Equal(t, "6.15.x", r.URL.Query().Get("ref"))
		assert.Equal(t, "id", r.URL.Query().Get("order_by"))
		assert.Equal(t, "desc", r.URL.Query().Get("sort"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 44, "status": "running"}, {"id": 43, "status": "success"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "api-token", "")
	pipelines, err := client.PipelinesForRef(context.Background(), "DataDog/datadog-agent", "6.15.x")
	require.NoError(t, err)
	require.Len(t, pipelines, 2)
	assert.Equal(t, 44, pipelines[0].ID)
	assert.Equal(t, 43, pipelines[1].ID)
}

func TestPipelineJobsPagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("page") {
		case "1":
			w.Header().Set("X-Next-Page", "2")
			w.Write([]byte(`[{"id": 1, "name": "build", "stage": "build", "status": "success"}]`))
		case "2":
			w.Write([]byte(`[{"id": 2, "name": "test", "stage": "test", "status": "running"}]`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "api-token", "")
	jobs, err := client.PipelineJobs(context.Background(), "DataDog/datadog-agent", 42)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "build", jobs[0].Name)
	assert.Equal(t, "test", jobs[1].Name)
}

func TestRetriesTransientFailures(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 42, "status": "running"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "api-token", "")
	client.retry = fastRetry()

	pipeline, err := client.Pipeline(context.Background(), "DataDog/datadog-agent", 42)
	require.NoError(t, err)
	assert.Equal(t, 42, pipeline.ID)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "401 Unauthorized"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-token", "")
	client.retry = fastRetry()

	_, err := client.Pipeline(context.Background(), "DataDog/datadog-agent", 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
