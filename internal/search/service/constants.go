package service

import (
	"time"

	"github.com/ai-search-engine/search-backend/internal/search/domain"
)

const (
	DefaultModel       = "meta-llama/Meta-Llama-3-70B-Instruct-Turbo"
	DefaultMaxTokens   = 800
	DefaultTemperature = 0.7
	DefaultTopK        = 50
	DefaultTopP        = 0.7

	// AuditTimeout bounds the audit write that follows each request
	AuditTimeout = 2 * time.Second
)

// DefaultParams returns the fixed sampling parameters for model.
// An empty model selects DefaultModel.
func DefaultParams(model string) domain.CompletionParams {
	if model == "" {
		model = DefaultModel
	}
	return domain.CompletionParams{
		Model:       model,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
		TopK:        DefaultTopK,
		TopP:        DefaultTopP,
	}
}
