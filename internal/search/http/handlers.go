package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/ai-search-engine/search-backend/internal/search/domain"
	"github.com/ai-search-engine/search-backend/internal/search/service"
	"github.com/gin-gonic/gin"
)

const (
	WelcomeMessage  = "AI Search Engine Backend is Running!"
	NoQueryProvided = "No query provided"
)

// Searcher is the relay the handlers delegate to.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
	Echo(query string) string
}

type Handler struct {
	svc Searcher
}

func New(svc Searcher) *Handler { return &Handler{svc: svc} }

// Home is the fixed welcome endpoint.
func (h *Handler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, MessageResponse{Message: WelcomeMessage})
}

// Echo is the GET stub. It never reaches the provider.
func (h *Handler) Echo(c *gin.Context) {
	c.JSON(http.StatusOK, MessageResponse{Message: h.svc.Echo(c.Query("query"))})
}

// Search relays the JSON body's query to the completion provider.
func (h *Handler) Search(c *gin.Context) {
	var body SearchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		// a missing, malformed or non-string query is validated as a blank one
		body.Query = ""
	}

	answer, err := h.svc.Search(c.Request.Context(), body.Query)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: NoQueryProvided})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SearchResponse{Response: answer})
}

// Metrics reports provider call counters.
func (h *Handler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, service.GetMetrics().Snapshot())
}
