package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/catalog"
	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/types"
)

type fakeAnswerer struct {
	answer string
	err    error
	asked  []string
}

func (f *fakeAnswerer) HandleQuery(ctx context.Context, text string) (string, error) {
	f.asked = append(f.asked, text)
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

type fakeInfo struct {
	stats    catalog.Stats
	statsErr error
	health   types.HealthStatus
}

func (f *fakeInfo) Stats(ctx context.Context) (catalog.Stats, error) {
	if f.statsErr != nil {
		return catalog.Stats{}, f.statsErr
	}
	return f.stats, nil
}

func (f *fakeInfo) Health(ctx context.Context) types.HealthStatus {
	return f.health
}

func newTestServer(answerer *fakeAnswerer, info *fakeInfo) *Server {
	return New(Config{
		Address:         ":0",
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		ShutdownTimeout: time.Second,
	}, answerer, info, nil)
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestAsk(t *testing.T) {
	answerer := &fakeAnswerer{answer: "Leo Harding wrote Storm Chaser. [Verified]"}
	s := newTestServer(answerer, &fakeInfo{health: types.Healthy("ok")})

	rec := doRequest(t, s, http.MethodPost, "/ask", `{"query":"Who wrote The Storm?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Leo Harding wrote Storm Chaser. [Verified]", resp["response"])
	assert.Equal(t, []string{"Who wrote The Storm?"}, answerer.asked)
}

func TestAsk_MalformedBody(t *testing.T) {
	s := newTestServer(&fakeAnswerer{}, &fakeInfo{})

	rec := doRequest(t, s, http.MethodPost, "/ask", `{"query":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["detail"])
}

func TestAsk_EmptyQuery(t *testing.T) {
	answerer := &fakeAnswerer{}
	s := newTestServer(answerer, &fakeInfo{})

	for _, body := range []string{`{}`, `{"query":""}`, `{"query":"   "}`} {
		rec := doRequest(t, s, http.MethodPost, "/ask", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
	assert.Empty(t, answerer.asked)
}

func TestAsk_EngineFailure(t *testing.T) {
	answerer := &fakeAnswerer{
		err: types.NewError(types.SEARCH_FAILED, "index lookup failed"),
	}
	s := newTestServer(answerer, &fakeInfo{})

	rec := doRequest(t, s, http.MethodPost, "/ask", `{"query":"anything"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["detail"], "index lookup failed")
}

func TestAsk_MethodNotAllowed(t *testing.T) {
	s := newTestServer(&fakeAnswerer{}, &fakeInfo{})
	rec := doRequest(t, s, http.MethodGet, "/ask", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestGraphInfo(t *testing.T) {
	s := newTestServer(&fakeAnswerer{}, &fakeInfo{
		stats: catalog.Stats{Books: 56, Authors: 24, Genres: 7},
	})

	rec := doRequest(t, s, http.MethodGet, "/graph-info", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]int64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, map[string]int64{"books": 56, "authors": 24, "genres": 7}, resp)
}

func TestGraphInfo_Failure(t *testing.T) {
	s := newTestServer(&fakeAnswerer{}, &fakeInfo{
		statsErr: types.NewError(types.AGGREGATE_FAILED, "count failed"),
	})

	rec := doRequest(t, s, http.MethodGet, "/graph-info", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name     string
		status   types.HealthStatus
		wantCode int
	}{
		{"healthy", types.Healthy("all good"), http.StatusOK},
		{"degraded", types.Degraded("embedder slow"), http.StatusOK},
		{"unhealthy", types.Unhealthy("graph unreachable"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(&fakeAnswerer{}, &fakeInfo{health: tt.status})

			rec := doRequest(t, s, http.MethodGet, "/health", "")
			require.Equal(t, tt.wantCode, rec.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, string(tt.status.State), resp["state"])
		})
	}
}
