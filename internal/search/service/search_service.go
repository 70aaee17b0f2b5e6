package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ai-search-engine/search-backend/internal/requestid"
	"github.com/ai-search-engine/search-backend/internal/search/domain"
)

// Completer is the completion provider the relay forwards prompts to.
type Completer interface {
	Complete(ctx context.Context, prompt string, p domain.CompletionParams) ([]string, error)
}

// AuditRecorder persists one audit record per relay request.
type AuditRecorder interface {
	Record(ctx context.Context, a *domain.SearchAudit) error
}

// SearchService relays queries to the completion provider
type SearchService struct {
	provider Completer
	params   domain.CompletionParams
	audit    AuditRecorder
}

// NewSearchService creates a relay. audit may be nil.
func NewSearchService(provider Completer, params domain.CompletionParams, audit AuditRecorder) *SearchService {
	return &SearchService{
		provider: provider,
		params:   params,
		audit:    audit,
	}
}

// Search validates query, sends the filled prompt to the provider and returns the
// trimmed text of the first choice. It returns domain.ErrInvalidInput for a blank
// query and a *domain.ProviderError for any provider failure.
func (s *SearchService) Search(ctx context.Context, query string) (string, error) {
	start := time.Now()

	if strings.TrimSpace(query) == "" {
		recordInvalidRequest()
		s.record(ctx, query, start, domain.ErrInvalidInput)
		return "", domain.ErrInvalidInput
	}

	choices, err := s.provider.Complete(ctx, BuildPrompt(query), s.params)
	if err == nil && len(choices) == 0 {
		err = domain.ErrNoChoices
	}
	recordProviderCall(time.Since(start), err)
	if err != nil {
		NewLogger(ctx).LogError("search", err)
		perr := &domain.ProviderError{Err: err}
		s.record(ctx, query, start, perr)
		return "", perr
	}

	s.record(ctx, query, start, nil)
	return strings.TrimSpace(choices[0]), nil
}

// Echo is the side-effect free GET stub.
func (s *SearchService) Echo(query string) string {
	return "Search results for " + query
}

func (s *SearchService) record(ctx context.Context, query string, start time.Time, err error) {
	if s.audit == nil {
		return
	}

	a := &domain.SearchAudit{
		RequestID:  requestid.Get(ctx),
		Query:      query,
		Outcome:    domain.OutcomeOK,
		StatusCode: http.StatusOK,
		LatencyMs:  time.Since(start).Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		a.Outcome = domain.OutcomeInvalidInput
		a.StatusCode = http.StatusBadRequest
	case err != nil:
		a.Outcome = domain.OutcomeProviderError
		a.StatusCode = http.StatusInternalServerError
		a.Error = err.Error()
	}

	actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), AuditTimeout)
	defer cancel()
	if rerr := s.audit.Record(actx, a); rerr != nil {
		NewLogger(ctx).LogWarnf("audit", "failed to record search audit: %v", rerr)
	}
}
