package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/vaanisetu/scheme-cli/internal/analysis"
	"github.com/vaanisetu/scheme-cli/internal/catalog"
	"github.com/vaanisetu/scheme-cli/internal/extract"
	"github.com/vaanisetu/scheme-cli/internal/match"
	"github.com/vaanisetu/scheme-cli/internal/model"
	"github.com/vaanisetu/scheme-cli/internal/store"
)

func newTestEnv(t *testing.T) *env {
	t.Helper()
	cache := catalog.NewCache(catalog.StaticSource{
		{
			ID:                  "pm-kisan",
			Name:                "PM Kisan Samman Nidhi",
			SchemeType:          "farmer_support",
			TargetGroups:        []string{"farmer"},
			EligibleOccupations: []string{"farmer"},
			States:              []string{"all"},
			BenefitSummary:      "₹6000 per year in three installments.",
		},
	}, nil)
	cache.Load(context.Background())
	require.Equal(t, catalog.StatusConnected, cache.Status())

	engine := match.NewEngine(cache, match.DefaultConfig())
	st := store.NopStore{}
	return &env{
		Catalog: cache,
		Engine:  engine,
		Service: analysis.New(extract.New(nil), engine, st, cache.Status),
		Store:   st,
	}
}

func testRouter(t *testing.T) chi.Router {
	t.Helper()
	return buildRouter(newTestEnv(t), rate.Limit(1000), 1000)
}

func TestServeHealth(t *testing.T) {
	r := testRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, catalog.StatusConnected, body["database"])
	assert.Equal(t, true, body["cache_loaded"])
}

func TestServeSchemes(t *testing.T) {
	r := testRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/schemes", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var schemes []model.Scheme
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &schemes))
	require.Len(t, schemes, 1)
	assert.Equal(t, "PM Kisan Samman Nidhi", schemes[0].Name)
}

func TestServeFullAnalysis(t *testing.T) {
	r := testRouter(t)

	body := strings.NewReader(`{"query": "i am a farmer in punjab", "language": "en"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/full-analysis", body)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp model.AnalysisResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Schemes)
	assert.Equal(t, "PM Kisan Samman Nidhi", resp.Schemes[0].Name)
	assert.Equal(t, analysis.DataSourceLabel, resp.DataSource)
}

func TestServeFullAnalysis_InvalidBody(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/full-analysis", strings.NewReader("not json"))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid request body")
}

func TestServeFullAnalysis_Demo(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/full-analysis?demo=1", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp model.AnalysisResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Schemes)
}

func TestServeDemoResponse(t *testing.T) {
	r := testRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/demo-response", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp model.AnalysisResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SpeakableText)
}

func TestServeReloadAndQueries(t *testing.T) {
	r := testRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/schemes/reload", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	var reload map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &reload))
	assert.Equal(t, float64(1), reload["count"])

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/queries", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]\n", rr.Body.String())
}

func TestServeStats(t *testing.T) {
	r := testRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/stats?lookback_hours=0", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var snap map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))
	assert.Equal(t, float64(0), snap["total_queries"])
}

func TestSafeFallbackRecoversPanic(t *testing.T) {
	h := safeFallback(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/full-analysis", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp model.AnalysisResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SpeakableText)
	assert.Empty(t, resp.Schemes)
}

func TestRateLimiterRejectsBurst(t *testing.T) {
	r := buildRouter(newTestEnv(t), rate.Limit(1), 1)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Contains(t, rr.Body.String(), "rate limit exceeded")
}
