package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BTreeMap/CoverageGuide/internal/content"
	"github.com/BTreeMap/CoverageGuide/internal/flow"
	"github.com/BTreeMap/CoverageGuide/internal/genai"
	"github.com/BTreeMap/CoverageGuide/internal/models"
	"github.com/BTreeMap/CoverageGuide/internal/store"
)

// stubTextGenerator answers every question with the same reply.
type stubTextGenerator struct {
	reply string
}

func (s stubTextGenerator) GenerateText(ctx context.Context, req genai.TextRequest) (string, error) {
	return s.reply, nil
}

type envelope struct {
	Status  models.APIStatus `json:"status"`
	Message string           `json:"message"`
	Result  json.RawMessage  `json:"result"`
}

func newTestServer(t *testing.T, v models.Variant) *Server {
	t.Helper()
	mgr := flow.NewManager(flow.ManagerConfig{
		Content:      content.MustNew(v),
		Store:        store.NewInMemoryStore(),
		Conversation: flow.ConversationConfig{Generator: stubTextGenerator{reply: "Here is how it works."}, Temperature: 0.7},
	})
	return NewServer(mgr)
}

func do(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rdr *bytes.Reader
	if body != "" {
		rdr = bytes.NewReader([]byte(body))
	} else {
		rdr = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	var env envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: response is not a JSON envelope: %s", method, path, rr.Body.String())
	}
	return rr, env
}

func createSession(t *testing.T, s *Server) string {
	t.Helper()
	rr, env := do(t, s, http.MethodPost, "/api/sessions", "")
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(env.Result, &resp); err != nil || resp.SessionID == "" {
		t.Fatalf("missing session id: %s", rr.Body.String())
	}
	return resp.SessionID
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, models.VariantConsumer)
	rr, env := do(t, s, http.MethodGet, "/healthz", "")
	if rr.Code != http.StatusOK || env.Status != models.APIStatusOK {
		t.Errorf("expected ok, got %d %s", rr.Code, env.Status)
	}
}

func TestCoveragesHandler(t *testing.T) {
	s := newTestServer(t, models.VariantConsumer)
	rr, env := do(t, s, http.MethodGet, "/api/content/coverages?filter=mandatory", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var list coverageListResponse
	if err := json.Unmarshal(env.Result, &list); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if len(list.Items) != 3 || list.FilterLabel != "Mandatory" {
		t.Errorf("unexpected listing: %+v", list)
	}

	rr, env = do(t, s, http.MethodGet, "/api/content/coverages?filter=cheap", "")
	if rr.Code != http.StatusBadRequest || env.Status != models.APIStatusError {
		t.Errorf("expected 400 error envelope, got %d %s", rr.Code, env.Status)
	}
}

func TestContentHandlers(t *testing.T) {
	s := newTestServer(t, models.VariantEmployee)
	for _, path := range []string{"/api/content/coverages/grouped", "/api/content/timeline", "/api/content/quiz/size"} {
		if rr, _ := do(t, s, http.MethodGet, path, ""); rr.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rr.Code)
		}
	}
	_, env := do(t, s, http.MethodGet, "/api/content/quiz/size", "")
	var size map[string]int
	json.Unmarshal(env.Result, &size)
	if size["total"] != 10 {
		t.Errorf("expected 10 questions, got %v", size)
	}

	consumer := newTestServer(t, models.VariantConsumer)
	if rr, _ := do(t, consumer, http.MethodGet, "/api/content/quiz/size", ""); rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 for consumer quiz, got %d", rr.Code)
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestServer(t, models.VariantConsumer)
	id := createSession(t, s)

	rr, _ := do(t, s, http.MethodGet, "/api/sessions/"+id, "")
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
	rr, env := do(t, s, http.MethodGet, "/api/sessions/unknown", "")
	if rr.Code != http.StatusNotFound || env.Message != "Session not found" {
		t.Errorf("expected 404 Session not found, got %d %q", rr.Code, env.Message)
	}

	rr, _ = do(t, s, http.MethodPost, "/api/sessions/"+id+"/tab", `{"tab":"explorer"}`)
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200 selecting explorer, got %d", rr.Code)
	}
	rr, _ = do(t, s, http.MethodPost, "/api/sessions/"+id+"/tab", `{"tab":"quiz"}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for tab outside the variant, got %d", rr.Code)
	}
	rr, _ = do(t, s, http.MethodPost, "/api/sessions/"+id+"/filter", `{"filter":"optional"}`)
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200 setting filter, got %d", rr.Code)
	}
}

func TestEndSessionHandler(t *testing.T) {
	s := newTestServer(t, models.VariantConsumer)
	id := createSession(t, s)
	path := "/api/sessions/" + id

	rr, env := do(t, s, http.MethodDelete, path, "")
	if rr.Code != http.StatusOK || env.Status != models.APIStatusOK {
		t.Fatalf("expected 200 ending session, got %d: %s", rr.Code, rr.Body.String())
	}
	if rr, _ := do(t, s, http.MethodGet, path, ""); rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 after end, got %d", rr.Code)
	}
	if rr, _ := do(t, s, http.MethodDelete, path, ""); rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 ending twice, got %d", rr.Code)
	}
}

func TestChatHandlers(t *testing.T) {
	s := newTestServer(t, models.VariantConsumer)
	id := createSession(t, s)
	path := "/api/sessions/" + id + "/chat"

	rr, env := do(t, s, http.MethodPost, path, `{"text":"What is the caregiver benefit?"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var turn models.ChatTurn
	json.Unmarshal(env.Result, &turn)
	if turn.Role != models.ChatRoleAssistant || turn.Text != "Here is how it works." {
		t.Errorf("unexpected reply: %+v", turn)
	}

	if rr, _ := do(t, s, http.MethodPost, path, `{"text":"   "}`); rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for blank message, got %d", rr.Code)
	}
	if rr, _ := do(t, s, http.MethodPost, path, `{"text":`); rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad JSON, got %d", rr.Code)
	}

	_, env = do(t, s, http.MethodGet, path, "")
	var view flow.ChatView
	json.Unmarshal(env.Result, &view)
	if len(view.Transcript) != 3 {
		t.Errorf("expected 3 turns, got %d", len(view.Transcript))
	}

	rr, env = do(t, s, http.MethodDelete, path, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 clearing, got %d", rr.Code)
	}
	json.Unmarshal(env.Result, &view)
	if len(view.Transcript) != 1 || view.Transcript[0].Text != flow.ClearedText {
		t.Errorf("expected only the cleared notice after clear, got %+v", view.Transcript)
	}
}

func TestQuizHandlers(t *testing.T) {
	s := newTestServer(t, models.VariantEmployee)
	id := createSession(t, s)
	base := "/api/sessions/" + id + "/quiz"

	if rr, _ := do(t, s, http.MethodPost, base+"/submit", ""); rr.Code != http.StatusConflict {
		t.Errorf("expected 409 submitting without a selection, got %d", rr.Code)
	}
	answer := s.mgr.Content().Questions()[0].CorrectAnswer
	body, _ := json.Marshal(models.OptionRequest{Option: answer})
	if rr, _ := do(t, s, http.MethodPost, base+"/select", string(body)); rr.Code != http.StatusOK {
		t.Fatalf("expected 200 selecting, got %d", rr.Code)
	}
	rr, env := do(t, s, http.MethodPost, base+"/submit", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 submitting, got %d", rr.Code)
	}
	var view flow.QuizView
	json.Unmarshal(env.Result, &view)
	if view.Score != 1 || view.Correct == nil || !*view.Correct {
		t.Errorf("unexpected quiz view: %+v", view)
	}
	if rr, _ := do(t, s, http.MethodPost, base+"/submit", ""); rr.Code != http.StatusConflict {
		t.Errorf("expected 409 for double submit, got %d", rr.Code)
	}
	if rr, _ := do(t, s, http.MethodPost, base+"/select", `{"option":""}`); rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty option, got %d", rr.Code)
	}
	if rr, _ := do(t, s, http.MethodPost, base+"/restart", ""); rr.Code != http.StatusOK {
		t.Errorf("expected 200 restarting, got %d", rr.Code)
	}
}

func TestScenarioHandlers(t *testing.T) {
	s := newTestServer(t, models.VariantEmployee)
	id := createSession(t, s)
	base := "/api/sessions/" + id + "/scenario"

	if rr, _ := do(t, s, http.MethodPost, base+"/results", ""); rr.Code != http.StatusConflict {
		t.Errorf("expected 409 without three selections, got %d", rr.Code)
	}
	sc := s.mgr.Content().Scenarios()[0]
	for _, opt := range sc.CorrectCoverages {
		body, _ := json.Marshal(models.OptionRequest{Option: opt})
		if rr, _ := do(t, s, http.MethodPost, base+"/toggle", string(body)); rr.Code != http.StatusOK {
			t.Fatalf("expected 200 toggling %q, got %d", opt, rr.Code)
		}
	}
	rr, env := do(t, s, http.MethodPost, base+"/results", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var view flow.ScenarioView
	json.Unmarshal(env.Result, &view)
	if view.Review == nil || !view.Review.IsExactMatch {
		t.Errorf("expected exact match review, got %+v", view.Review)
	}
	if rr, _ := do(t, s, http.MethodPost, base+"/dialogue", ""); rr.Code != http.StatusOK {
		t.Fatalf("expected 200 opening dialogue, got %d", rr.Code)
	}
	if rr, _ := do(t, s, http.MethodPost, base+"/choose", `{"choice":"upsell"}`); rr.Code != http.StatusConflict {
		t.Errorf("expected 409 for unknown choice, got %d", rr.Code)
	}
	rr, env = do(t, s, http.MethodPost, base+"/choose", `{"choice":"recommendation"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 choosing, got %d", rr.Code)
	}
	json.Unmarshal(env.Result, &view)
	if view.Feedback == nil || view.Feedback.Verdict != "Compliance Failure" {
		t.Errorf("unexpected feedback: %+v", view.Feedback)
	}
	rr, env = do(t, s, http.MethodPost, base+"/advance", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 advancing, got %d", rr.Code)
	}
	json.Unmarshal(env.Result, &view)
	if view.Index != 1 {
		t.Errorf("expected second scenario, got %d", view.Index)
	}

	rr, env = do(t, s, http.MethodGet, base+"/portrait", "")
	var p models.PortraitState
	json.Unmarshal(env.Result, &p)
	if rr.Code != http.StatusOK || p.Status != models.PortraitUnavailable {
		t.Errorf("expected unavailable portrait without generator, got %d %+v", rr.Code, p)
	}
}

func TestTrainingRoutesHiddenForConsumer(t *testing.T) {
	s := newTestServer(t, models.VariantConsumer)
	id := createSession(t, s)
	for _, path := range []string{"/quiz", "/scenario", "/scenario/portrait"} {
		if rr, _ := do(t, s, http.MethodGet, "/api/sessions/"+id+path, ""); rr.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", path, rr.Code)
		}
	}
}

func TestCORSHeaders(t *testing.T) {
	s := newTestServer(t, models.VariantConsumer)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://example.org")
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard CORS header, got %q", got)
	}
}
