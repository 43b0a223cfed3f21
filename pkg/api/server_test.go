package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/cache"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/cancel"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/config"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/dispatch"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/provider"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/provider/providertest"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/queue"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/ratelimit"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

type fixture struct {
	server *Server
	router *gin.Engine
	pool   *queue.Pool
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.MaxQueueSize = 4
	cfg.MaxConcurrentAnalyses = 2

	fake := providertest.NewFake(
		&provider.StartEvent{},
		&provider.DeltaEvent{Text: "ANALYSIS RESULT"},
		&provider.UsageEvent{InputTokens: 1000, OutputTokens: 400},
		&provider.EndEvent{},
	)
	reg := provider.NewRegistry(models.ProviderAnthropic)
	reg.Register(fake)

	store, err := cache.New(cache.Config{Dir: t.TempDir()}, testLogger())
	require.NoError(t, err)

	limiter := ratelimit.NewManager(ratelimit.Limits{}, ratelimit.DefaultProfiles(), map[models.ProviderType]ratelimit.Tier{
		models.ProviderAnthropic: ratelimit.TierScale,
		models.ProviderOpenAI:    ratelimit.TierScale,
		models.ProviderLocal:     ratelimit.TierScale,
	})

	cancels := cancel.NewManager()
	engine := dispatch.NewEngine(dispatch.Config{
		MaxFileSizeBytes: cfg.MaxFileSizeBytes,
		RequestTimeout:   time.Minute,
		MaxRateLimitWait: 5 * time.Second,
	}, reg, store, limiter, cancels, dispatch.NopAuditor{}, testLogger())

	tasks := queue.New(cfg.MaxQueueSize)
	pool := queue.NewPool(tasks, cancels, func(task queue.Task, token *cancel.Token) ([]byte, error) {
		var buf bytes.Buffer
		for ev := range engine.Analyze(context.Background(), task.Request, token) {
			switch e := ev.(type) {
			case *dispatch.ContentEvent:
				buf.WriteString(e.Text)
			case *dispatch.ErrorEvent:
				return nil, fmt.Errorf("%s: %s", e.Kind, e.Text)
			case *dispatch.CancelledEvent:
				return nil, cancel.ErrCancelled
			}
		}
		return buf.Bytes(), nil
	}, cfg.MaxConcurrentAnalyses, testLogger())
	pool.Start()
	t.Cleanup(func() { pool.Shutdown("test teardown") })

	srv := NewServer(cfg, engine, tasks, pool, cancels, store, nil, testLogger())
	return &fixture{server: srv, router: srv.Router(), pool: pool}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func analyzeBody(content string) map[string]any {
	return map[string]any{
		"content":   content,
		"kind":      "anr",
		"mode":      "quick",
		"client_id": "client-1",
	}
}

func TestSubmitReturnsTaskID(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/analyze", analyzeBody("some anr content"))
	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["task_id"])
}

func TestSubmitRejectsBadKind(t *testing.T) {
	f := newFixture(t)

	body := analyzeBody("content")
	body["kind"] = "logcat"
	rec := f.do(t, http.MethodPost, "/api/v1/analyze", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitRejectsOversizedContent(t *testing.T) {
	f := newFixture(t)
	f.server.cfg.MaxFileSizeBytes = 10

	rec := f.do(t, http.MethodPost, "/api/v1/analyze", analyzeBody("well over ten bytes of content"))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestSubmitMissingContent(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/analyze", map[string]any{"kind": "anr"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaskLifecycle(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/analyze", analyzeBody("some anr content"))
	require.Equal(t, http.StatusAccepted, rec.Code)
	var submitResp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &submitResp))
	taskID := submitResp["task_id"]

	var task taskResponse
	require.Eventually(t, func() bool {
		rec := f.do(t, http.MethodGet, "/api/v1/tasks/"+taskID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
		return task.Status == string(queue.StatusCompleted)
	}, 10*time.Second, 20*time.Millisecond)

	assert.Equal(t, "ANALYSIS RESULT", task.Result)
	assert.NotNil(t, task.CompletedAt)
}

func TestTaskStatusNotFound(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/tasks/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelUnknownTask(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/tasks/does-not-exist/cancel", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalyzeStreamEventContract(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/analyze/stream", analyzeBody("some anr content"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	var eventNames []string
	var contents []string
	scanner := bufio.NewScanner(rec.Body)
	var current string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			current = strings.TrimPrefix(line, "event: ")
			eventNames = append(eventNames, current)
		case strings.HasPrefix(line, "data: ") && current == "content":
			var payload dispatch.ContentEvent
			require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &payload))
			contents = append(contents, payload.Text)
		}
	}

	require.NotEmpty(t, eventNames)
	assert.Equal(t, "start", eventNames[0], "Start comes first")
	assert.Equal(t, "complete", eventNames[len(eventNames)-1], "exactly one terminal event, last")
	assert.Equal(t, "ANALYSIS RESULT", strings.Join(contents, ""))
}

func TestAnalyzeStreamValidationErrorAsEvent(t *testing.T) {
	f := newFixture(t)

	body := analyzeBody("content")
	body["kind"] = "logcat"
	rec := f.do(t, http.MethodPost, "/api/v1/analyze/stream", body)

	// The stream opens before validation, so the failure arrives as a
	// terminal error event rather than an HTTP status.
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "event: error")
}

func TestCompareEndpoint(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/estimates/compare?file_kb=512&mode=intelligent&budget_usd=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Estimates []models.Estimate `json:"estimates"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Estimates)
	for i := 1; i < len(resp.Estimates); i++ {
		assert.LessOrEqual(t, resp.Estimates[i-1].CostUSD, resp.Estimates[i].CostUSD, "sorted cheapest first")
	}
}

func TestCompareRejectsBadParams(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/v1/estimates/compare", nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/v1/estimates/compare?file_kb=-1", nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/v1/estimates/compare?file_kb=10&mode=psychic", nil).Code)
}

func TestRecommendEndpoint(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/estimates/recommend?file_kb=100&mode=quick&budget_usd=1&prefer=speed", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "recommendation")
}

func TestHealthEndpoint(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/system/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestCacheStatsEndpoint(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/system/cache/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats cache.Stats
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
}
