// Package api provides knowledge-check and scenario handlers for the employee guide.
package api

import (
	"net/http"

	"github.com/BTreeMap/CoverageGuide/internal/flow"
	"github.com/BTreeMap/CoverageGuide/internal/models"
)

func (s *Server) writeQuiz(w http.ResponseWriter, op string, view flow.QuizView, err error) {
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(view))
}

// quizViewHandler handles GET /api/sessions/{id}/quiz
func (s *Server) quizViewHandler(w http.ResponseWriter, r *http.Request) {
	view, err := s.mgr.Quiz(r.Context(), sessionID(r))
	s.writeQuiz(w, "Server.quizViewHandler", view, err)
}

// quizSelectHandler handles POST /api/sessions/{id}/quiz/select
func (s *Server) quizSelectHandler(w http.ResponseWriter, r *http.Request) {
	var req models.OptionRequest
	if !decodeRequest(w, r, "Server.quizSelectHandler", &req) {
		return
	}
	view, err := s.mgr.QuizSelect(r.Context(), sessionID(r), req.Option)
	s.writeQuiz(w, "Server.quizSelectHandler", view, err)
}

// quizSubmitHandler handles POST /api/sessions/{id}/quiz/submit
func (s *Server) quizSubmitHandler(w http.ResponseWriter, r *http.Request) {
	view, err := s.mgr.QuizSubmit(r.Context(), sessionID(r))
	s.writeQuiz(w, "Server.quizSubmitHandler", view, err)
}

// quizNextHandler handles POST /api/sessions/{id}/quiz/next
func (s *Server) quizNextHandler(w http.ResponseWriter, r *http.Request) {
	view, err := s.mgr.QuizNext(r.Context(), sessionID(r))
	s.writeQuiz(w, "Server.quizNextHandler", view, err)
}

// quizRestartHandler handles POST /api/sessions/{id}/quiz/restart
func (s *Server) quizRestartHandler(w http.ResponseWriter, r *http.Request) {
	view, err := s.mgr.QuizRestart(r.Context(), sessionID(r))
	s.writeQuiz(w, "Server.quizRestartHandler", view, err)
}

func (s *Server) writeScenario(w http.ResponseWriter, op string, view flow.ScenarioView, err error) {
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(view))
}

// scenarioViewHandler handles GET /api/sessions/{id}/scenario
func (s *Server) scenarioViewHandler(w http.ResponseWriter, r *http.Request) {
	view, err := s.mgr.Scenario(r.Context(), sessionID(r))
	s.writeScenario(w, "Server.scenarioViewHandler", view, err)
}

// scenarioToggleHandler handles POST /api/sessions/{id}/scenario/toggle
func (s *Server) scenarioToggleHandler(w http.ResponseWriter, r *http.Request) {
	var req models.OptionRequest
	if !decodeRequest(w, r, "Server.scenarioToggleHandler", &req) {
		return
	}
	view, err := s.mgr.ScenarioToggle(r.Context(), sessionID(r), req.Option)
	s.writeScenario(w, "Server.scenarioToggleHandler", view, err)
}

// scenarioResultsHandler handles POST /api/sessions/{id}/scenario/results
func (s *Server) scenarioResultsHandler(w http.ResponseWriter, r *http.Request) {
	view, err := s.mgr.ScenarioResults(r.Context(), sessionID(r))
	s.writeScenario(w, "Server.scenarioResultsHandler", view, err)
}

// scenarioDialogueHandler handles POST /api/sessions/{id}/scenario/dialogue
func (s *Server) scenarioDialogueHandler(w http.ResponseWriter, r *http.Request) {
	view, err := s.mgr.ScenarioDialogue(r.Context(), sessionID(r))
	s.writeScenario(w, "Server.scenarioDialogueHandler", view, err)
}

// scenarioChooseHandler handles POST /api/sessions/{id}/scenario/choose
func (s *Server) scenarioChooseHandler(w http.ResponseWriter, r *http.Request) {
	var req models.DialogueRequest
	if !decodeRequest(w, r, "Server.scenarioChooseHandler", &req) {
		return
	}
	view, err := s.mgr.ScenarioChoose(r.Context(), sessionID(r), req.Choice)
	s.writeScenario(w, "Server.scenarioChooseHandler", view, err)
}

// scenarioAdvanceHandler handles POST /api/sessions/{id}/scenario/advance
func (s *Server) scenarioAdvanceHandler(w http.ResponseWriter, r *http.Request) {
	view, err := s.mgr.ScenarioAdvance(r.Context(), sessionID(r))
	s.writeScenario(w, "Server.scenarioAdvanceHandler", view, err)
}

// scenarioPortraitHandler handles GET /api/sessions/{id}/scenario/portrait
func (s *Server) scenarioPortraitHandler(w http.ResponseWriter, r *http.Request) {
	p, err := s.mgr.Portrait(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, "Server.scenarioPortraitHandler", err)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(p))
}
