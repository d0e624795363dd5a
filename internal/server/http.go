package server

import (
	"encoding/json"
	"net/http"
)

// ActorHeader names the caller on mutations; it ends up on recorded events.
const ActorHeader = "X-Issueboard-Actor"

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /api/health) must include
// a valid Authorization: Bearer <token> header.
func (s *IssueServer) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/issues", s.handleListIssues)
	mux.HandleFunc("GET /api/issues/page", s.handleListIssuesPage)
	mux.HandleFunc("GET /api/issues/summary", s.handleSummary)
	mux.HandleFunc("POST /api/issues", s.handleCreateIssue)
	mux.HandleFunc("GET /api/issues/{id}", s.handleGetIssue)
	mux.HandleFunc("PATCH /api/issues/{id}", s.handleUpdateIssue)
	mux.HandleFunc("DELETE /api/issues/{id}", s.handleDeleteIssue)
	mux.HandleFunc("GET /api/issues/{id}/events", s.handleGetEvents)
	return LoggingMiddleware(AuthMiddleware(authToken, mux))
}

// handleHealth handles GET /api/health.
func (s *IssueServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
