// Package api provides advisor chat handlers for CoverageGuide endpoints.
package api

import (
	"log/slog"
	"net/http"

	"github.com/BTreeMap/CoverageGuide/internal/models"
)

// chatTranscriptHandler handles GET /api/sessions/{id}/chat
func (s *Server) chatTranscriptHandler(w http.ResponseWriter, r *http.Request) {
	view, err := s.mgr.Chat(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, "Server.chatTranscriptHandler", err)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(view))
}

// chatSendHandler handles POST /api/sessions/{id}/chat. The response is written once the
// advisor has answered or the fallback text has been recorded.
func (s *Server) chatSendHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if !decodeRequest(w, r, "Server.chatSendHandler", &req) {
		return
	}
	id := sessionID(r)
	slog.Debug("Server.chatSendHandler: forwarding question", "sessionID", id, "length", len(req.Text))
	turn, err := s.mgr.Send(r.Context(), id, req.Text)
	if err != nil {
		writeError(w, "Server.chatSendHandler", err)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(turn))
}

// chatClearHandler handles DELETE /api/sessions/{id}/chat
func (s *Server) chatClearHandler(w http.ResponseWriter, r *http.Request) {
	view, err := s.mgr.ClearChat(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, "Server.chatClearHandler", err)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Chat cleared", view))
}
