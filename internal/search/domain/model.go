package domain

import "time"

// Outcome classifies how a relay request ended.
type Outcome string

const (
	OutcomeOK            Outcome = "ok"
	OutcomeInvalidInput  Outcome = "invalid_input"
	OutcomeProviderError Outcome = "provider_error"
)

// CompletionParams are the fixed sampling parameters sent with every prompt.
type CompletionParams struct {
	Model       string
	MaxTokens   int
	Temperature float64
	TopK        int
	TopP        float64
}

// SearchAudit is a metadata record about one relay request. It never holds the generated text.
type SearchAudit struct {
	ID         string    `json:"id"`
	RequestID  string    `json:"request_id"`
	Query      string    `json:"query"`
	Outcome    Outcome   `json:"outcome"`
	StatusCode int       `json:"status_code"`
	LatencyMs  int64     `json:"latency_ms"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
