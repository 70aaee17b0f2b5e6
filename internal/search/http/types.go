package http

type SearchRequest struct {
	Query string `json:"query"`
}

type SearchResponse struct {
	Response string `json:"response"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
