// Package api provides HTTP handlers for CoverageGuide content and session endpoints.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/BTreeMap/CoverageGuide/internal/content"
	"github.com/BTreeMap/CoverageGuide/internal/flow"
	"github.com/BTreeMap/CoverageGuide/internal/models"
	"github.com/go-chi/chi/v5"
)

// coverageListResponse is the body of GET /api/content/coverages.
type coverageListResponse struct {
	Filter      models.CoverageFilter `json:"filter"`
	FilterLabel string                `json:"filter_label"`
	Items       []models.CoverageItem `json:"items"`
}

// sessionResponse is the body of the session endpoints.
type sessionResponse struct {
	flow.ShellView
	Chat      flow.ChatView `json:"chat"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func sessionID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// coveragesHandler handles GET /api/content/coverages?filter=
func (s *Server) coveragesHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := content.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, "Server.coveragesHandler", err)
		return
	}
	items, err := s.mgr.Content().ListCoverages(filter)
	if err != nil {
		writeError(w, "Server.coveragesHandler", err)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(coverageListResponse{
		Filter:      filter,
		FilterLabel: content.FilterLabel(filter),
		Items:       items,
	}))
}

// groupedCoveragesHandler handles GET /api/content/coverages/grouped
func (s *Server) groupedCoveragesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, models.Success(s.mgr.Content().GroupedCoverages()))
}

// timelineHandler handles GET /api/content/timeline
func (s *Server) timelineHandler(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, models.Success(s.mgr.Content().ListTimeline()))
}

// quizSizeHandler handles GET /api/content/quiz/size
func (s *Server) quizSizeHandler(w http.ResponseWriter, r *http.Request) {
	n := len(s.mgr.Content().Questions())
	if n == 0 {
		writeError(w, "Server.quizSizeHandler", flow.ErrFeatureUnavailable)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(map[string]int{"total": n}))
}

func (s *Server) sessionResponse(r *http.Request, rec models.SessionRecord) (sessionResponse, error) {
	shell, err := s.mgr.Shell(r.Context(), rec.ID)
	if err != nil {
		return sessionResponse{}, err
	}
	return sessionResponse{
		ShellView: shell,
		Chat:      flow.ChatView{Transcript: rec.Conversation.Transcript, InFlight: rec.Conversation.InFlight},
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}

// createSessionHandler handles POST /api/sessions
func (s *Server) createSessionHandler(w http.ResponseWriter, r *http.Request) {
	rec, err := s.mgr.Create(r.Context())
	if err != nil {
		writeError(w, "Server.createSessionHandler", err)
		return
	}
	resp, err := s.sessionResponse(r, rec)
	if err != nil {
		writeError(w, "Server.createSessionHandler", err)
		return
	}
	slog.Info("Server.createSessionHandler: session created", "sessionID", rec.ID)
	writeJSONResponse(w, http.StatusCreated, models.SuccessWithMessage("Session created", resp))
}

// getSessionHandler handles GET /api/sessions/{id}
func (s *Server) getSessionHandler(w http.ResponseWriter, r *http.Request) {
	rec, err := s.mgr.Get(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, "Server.getSessionHandler", err)
		return
	}
	resp, err := s.sessionResponse(r, rec)
	if err != nil {
		writeError(w, "Server.getSessionHandler", err)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(resp))
}

// endSessionHandler handles DELETE /api/sessions/{id}
func (s *Server) endSessionHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.mgr.End(r.Context(), sessionID(r)); err != nil {
		writeError(w, "Server.endSessionHandler", err)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Session ended", nil))
}

// selectTabHandler handles POST /api/sessions/{id}/tab
func (s *Server) selectTabHandler(w http.ResponseWriter, r *http.Request) {
	var req models.TabRequest
	if !decodeRequest(w, r, "Server.selectTabHandler", &req) {
		return
	}
	view, err := s.mgr.SelectTab(r.Context(), sessionID(r), req.Tab)
	if err != nil {
		writeError(w, "Server.selectTabHandler", err)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(view))
}

// setFilterHandler handles POST /api/sessions/{id}/filter
func (s *Server) setFilterHandler(w http.ResponseWriter, r *http.Request) {
	var req models.FilterRequest
	if !decodeRequest(w, r, "Server.setFilterHandler", &req) {
		return
	}
	view, err := s.mgr.SetFilter(r.Context(), sessionID(r), string(req.Filter))
	if err != nil {
		writeError(w, "Server.setFilterHandler", err)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(view))
}
