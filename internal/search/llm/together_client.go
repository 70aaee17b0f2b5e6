package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ai-search-engine/search-backend/internal/search/domain"
)

const (
	DefaultBaseURL = "https://api.together.xyz"
	DefaultTimeout = 120 * time.Second

	completionsPath = "/v1/completions"
	maxErrorBody    = 4 << 10
)

// TogetherClient calls the Together AI completions endpoint.
type TogetherClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewTogether(baseURL, apiKey string, timeout time.Duration) *TogetherClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &TogetherClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type CompletionRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	TopK        int     `json:"top_k"`
	TopP        float64 `json:"top_p"`
}

type CompletionChoice struct {
	Text         string `json:"text"`
	Index        int    `json:"index"`
	FinishReason string `json:"finish_reason,omitempty"`
}

type CompletionResponse struct {
	ID      string             `json:"id"`
	Model   string             `json:"model"`
	Choices []CompletionChoice `json:"choices"`
}

type errorResponse struct {
	Error json.RawMessage `json:"error"`
}

// Complete sends one completion request and returns the text of every choice.
func (c *TogetherClient) Complete(ctx context.Context, prompt string, p domain.CompletionParams) ([]string, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("together: %w", domain.ErrMissingKey)
	}

	b, err := json.Marshal(CompletionRequest{
		Model:       p.Model,
		Prompt:      prompt,
		MaxTokens:   p.MaxTokens,
		Temperature: p.Temperature,
		TopK:        p.TopK,
		TopP:        p.TopP,
	})
	if err != nil {
		return nil, fmt.Errorf("together encode: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+completionsPath, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("together request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("together completion: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("together error (status %d): %s", resp.StatusCode, errorMessage(body, resp.Status))
	}

	var out CompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("together decode: %w", err)
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("together: %w", domain.ErrNoChoices)
	}

	texts := make([]string, len(out.Choices))
	for i, ch := range out.Choices {
		texts[i] = ch.Text
	}
	return texts, nil
}

// errorMessage pulls a readable message out of an error body. The provider sends
// either {"error": {"message": ...}} or {"error": "..."}.
func errorMessage(body []byte, status string) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && len(er.Error) > 0 {
		var obj struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(er.Error, &obj) == nil && obj.Message != "" {
			return obj.Message
		}
		var s string
		if json.Unmarshal(er.Error, &s) == nil && s != "" {
			return s
		}
	}
	if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
		return trimmed
	}
	return status
}
