package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/alfredjeanlab/issueboard/internal/model"
)

// filterFromQuery reads the shared list criteria. Unknown statuses are a 400.
func filterFromQuery(r *http.Request) (model.IssueFilter, error) {
	q := r.URL.Query()
	filter := model.IssueFilter{
		Assignee: q.Get("assignee"),
		Search:   q.Get("search"),
		Sort:     q.Get("sort"),
	}
	if v := q.Get("status"); v != "" {
		for _, raw := range strings.Split(v, ",") {
			st := model.Status(strings.TrimSpace(raw))
			if !st.IsValid() {
				return filter, inputError("invalid status " + strconv.Quote(raw))
			}
			filter.Status = append(filter.Status, st)
		}
	}
	return filter, nil
}

// handleListIssues handles GET /api/issues. The response is a bare array
// ordered by creation time, which is what the board consumes.
func (s *IssueServer) handleListIssues(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	issues, _, err := s.store.ListIssues(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list issues")
		return
	}
	if issues == nil {
		issues = []*model.Issue{}
	}
	writeJSON(w, http.StatusOK, issues)
}

// handleListIssuesPage handles GET /api/issues/page.
func (s *IssueServer) handleListIssuesPage(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("page_size"))
	page, size = filter.Paginate(page, size)

	issues, total, err := s.store.ListIssues(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list issues")
		return
	}
	if issues == nil {
		issues = []*model.Issue{}
	}
	writeJSON(w, http.StatusOK, model.IssuePage{
		Issues:   issues,
		Total:    total,
		Page:     page,
		PageSize: size,
	})
}

// handleSummary handles GET /api/issues/summary.
func (s *IssueServer) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.summary(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to summarize issues")
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// handleCreateIssue handles POST /api/issues.
func (s *IssueServer) handleCreateIssue(w http.ResponseWriter, r *http.Request) {
	var in createIssueInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	issue, err := s.createIssue(r.Context(), r.Header.Get(ActorHeader), in)
	if err != nil {
		var ie inputError
		if errors.As(err, &ie) {
			writeError(w, http.StatusBadRequest, ie.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusCreated, issue)
}

// handleGetIssue handles GET /api/issues/{id}.
func (s *IssueServer) handleGetIssue(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	issue, err := s.store.GetIssue(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && issue == nil) {
		writeError(w, http.StatusNotFound, "issue not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get issue")
		return
	}
	writeJSON(w, http.StatusOK, issue)
}

// handleUpdateIssue handles PATCH /api/issues/{id}.
func (s *IssueServer) handleUpdateIssue(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var in updateIssueInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	issue, err := s.updateIssue(r.Context(), id, r.Header.Get(ActorHeader), in)
	if err != nil {
		var ie inputError
		if errors.As(err, &ie) {
			writeError(w, http.StatusBadRequest, ie.Error())
			return
		}
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "issue not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, issue)
}

// handleDeleteIssue handles DELETE /api/issues/{id}.
func (s *IssueServer) handleDeleteIssue(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.deleteIssue(r.Context(), id, r.Header.Get(ActorHeader)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "issue not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete issue")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetEvents handles GET /api/issues/{id}/events.
func (s *IssueServer) handleGetEvents(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	evts, err := s.store.GetEvents(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get events")
		return
	}
	if evts == nil {
		evts = []*model.Event{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": evts})
}
