package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ai-search-engine/search-backend/internal/search/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testParams = domain.CompletionParams{
	Model:       "meta-llama/Meta-Llama-3-70B-Instruct-Turbo",
	MaxTokens:   800,
	Temperature: 0.7,
	TopK:        50,
	TopP:        0.7,
}

func TestTogetherClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body CompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, testParams.Model, body.Model)
		assert.Equal(t, "Question: hi", body.Prompt)
		assert.Equal(t, 800, body.MaxTokens)
		assert.Equal(t, 0.7, body.Temperature)
		assert.Equal(t, 50, body.TopK)
		assert.Equal(t, 0.7, body.TopP)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cmpl-1","choices":[{"text":" Hello there ","index":0}]}`))
	}))
	defer server.Close()

	client := NewTogether(server.URL+"/", "test-key", time.Second)
	texts, err := client.Complete(context.Background(), "Question: hi", testParams)
	require.NoError(t, err)
	assert.Equal(t, []string{" Hello there "}, texts)
}

func TestTogetherClient_Complete_Errors(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		client := NewTogether("http://127.0.0.1:1", "", time.Second)
		_, err := client.Complete(context.Background(), "p", testParams)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrMissingKey))
	})

	t.Run("provider error object", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"message":"Invalid API key provided","type":"invalid_request_error"}}`))
		}))
		defer server.Close()

		_, err := NewTogether(server.URL, "bad", time.Second).Complete(context.Background(), "p", testParams)
		require.Error(t, err)
		assert.Equal(t, "together error (status 401): Invalid API key provided", err.Error())
	})

	t.Run("provider error string", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"rate limited"}`))
		}))
		defer server.Close()

		_, err := NewTogether(server.URL, "k", time.Second).Complete(context.Background(), "p", testParams)
		require.Error(t, err)
		assert.Equal(t, "together error (status 429): rate limited", err.Error())
	})

	t.Run("empty error body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := NewTogether(server.URL, "k", time.Second).Complete(context.Background(), "p", testParams)
		require.Error(t, err)
		assert.Equal(t, "together error (status 502): 502 Bad Gateway", err.Error())
	})

	t.Run("no choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		_, err := NewTogether(server.URL, "k", time.Second).Complete(context.Background(), "p", testParams)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNoChoices))
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer server.Close()

		_, err := NewTogether(server.URL, "k", time.Second).Complete(context.Background(), "p", testParams)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "together decode")
	})

	t.Run("unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		_, err := NewTogether(url, "k", time.Second).Complete(context.Background(), "p", testParams)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "together completion")
	})
}
