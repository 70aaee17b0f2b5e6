package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ai-search-engine/search-backend/internal/search/domain"
	"github.com/ai-search-engine/search-backend/internal/search/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	choices []string
	err     error
	calls   int
}

func (s *stubCompleter) Complete(context.Context, string, domain.CompletionParams) ([]string, error) {
	s.calls++
	return s.choices, s.err
}

type countingAudit struct {
	records []*domain.SearchAudit
}

func (a *countingAudit) Record(_ context.Context, rec *domain.SearchAudit) error {
	a.records = append(a.records, rec)
	return nil
}

func newTestRouter(provider *stubCompleter) *gin.Engine {
	return newAuditedRouter(provider, nil)
}

func newAuditedRouter(provider *stubCompleter, audit service.AuditRecorder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := service.NewSearchService(provider, service.DefaultParams(""), audit)
	New(svc).Register(r)
	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func TestSearch_Success(t *testing.T) {
	provider := &stubCompleter{choices: []string{" Recursion is..."}}
	r := newTestRouter(provider)

	rr := doJSON(r, http.MethodPost, "/search", `{"query": "What is recursion?"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]string{"response": "Recursion is..."}, decode(t, rr))
	assert.Equal(t, 1, provider.calls)
}

func TestSearch_NoQuery(t *testing.T) {
	cases := map[string]string{
		"missing body":     "",
		"empty object":     `{}`,
		"empty query":      `{"query": ""}`,
		"blank query":      `{"query": "   "}`,
		"null query":       `{"query": null}`,
		"non-string query": `{"query": 42}`,
		"malformed json":   `{"query": `,
		"other fields":     `{"q": "hello", "extra": true}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			service.ResetMetrics()
			provider := &stubCompleter{choices: []string{"never"}}
			audit := &countingAudit{}
			r := newAuditedRouter(provider, audit)

			rr := doJSON(r, http.MethodPost, "/search", body)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, map[string]string{"error": "No query provided"}, decode(t, rr))
			assert.Equal(t, 0, provider.calls)

			require.Len(t, audit.records, 1)
			assert.Equal(t, domain.OutcomeInvalidInput, audit.records[0].Outcome)
			assert.Equal(t, http.StatusBadRequest, audit.records[0].StatusCode)
			assert.Equal(t, int64(1), service.GetMetrics().Snapshot().InvalidRequests)
		})
	}
}

func TestSearch_ProviderError(t *testing.T) {
	provider := &stubCompleter{err: errors.New("together error (status 401): Invalid API key provided")}
	r := newTestRouter(provider)

	rr := doJSON(r, http.MethodPost, "/search", `{"query": "hi"}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, map[string]string{"error": "together error (status 401): Invalid API key provided"}, decode(t, rr))
}

func TestEcho(t *testing.T) {
	provider := &stubCompleter{}
	r := newTestRouter(provider)

	for i := 0; i < 2; i++ {
		rr := doJSON(r, http.MethodGet, "/api/search?query=foo", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, map[string]string{"message": "Search results for foo"}, decode(t, rr))
	}
	assert.Equal(t, 0, provider.calls)

	rr := doJSON(r, http.MethodGet, "/api/search", "")
	assert.Equal(t, map[string]string{"message": "Search results for "}, decode(t, rr))
}

func TestHome(t *testing.T) {
	r := newTestRouter(&stubCompleter{})

	rr := doJSON(r, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]string{"message": "AI Search Engine Backend is Running!"}, decode(t, rr))
}

func TestSearch_LimitHandlersRunFirst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	provider := &stubCompleter{choices: []string{"x"}}
	svc := service.NewSearchService(provider, service.DefaultParams(""), nil)
	New(svc).Register(r, func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
	})

	rr := doJSON(r, http.MethodPost, "/search", `{"query": "hi"}`)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, 0, provider.calls)

	rr = doJSON(r, http.MethodGet, "/api/search?query=a", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}
