package flow

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/BTreeMap/CoverageGuide/internal/genai"
	"github.com/BTreeMap/CoverageGuide/internal/models"
)

// Advisor texts shown in place of, or before, generated replies.
const (
	GreetingText   = "Hello! I'm your Ontario Auto Insurance Advisor. Ask me anything about the upcoming Accident Benefit changes or what different coverages mean."
	FallbackText   = "There was an error connecting to the AI advisor. Please ensure your environment is configured correctly."
	EmptyReplyText = "I'm sorry, I couldn't process that request. Please try again."
	ClearedText    = "Chat history cleared. How can I help you today?"
)

// ConversationConfig holds the collaborator settings shared by every conversation.
type ConversationConfig struct {
	Generator   genai.TextGenerator
	System      string
	Temperature float64
}

// ConversationSession is the advisor chat of one visitor.
type ConversationSession struct {
	mu    sync.Mutex
	cfg   ConversationConfig
	state models.ConversationState
}

// NewConversationState returns a transcript holding only the greeting.
func NewConversationState(now time.Time) models.ConversationState {
	return openingState(GreetingText, now)
}

func openingState(text string, now time.Time) models.ConversationState {
	return models.ConversationState{
		Transcript: []models.ChatTurn{{Role: models.ChatRoleAssistant, Text: text, CreatedAt: now}},
	}
}

// NewConversationSession starts a conversation with the greeting.
func NewConversationSession(cfg ConversationConfig) *ConversationSession {
	return RestoreConversationSession(cfg, NewConversationState(time.Now()))
}

// RestoreConversationSession resumes a conversation from saved state.
func RestoreConversationSession(cfg ConversationConfig, state models.ConversationState) *ConversationSession {
	if cfg.Generator == nil {
		cfg.Generator = genai.Unconfigured{}
	}
	state.Transcript = append([]models.ChatTurn(nil), state.Transcript...)
	return &ConversationSession{cfg: cfg, state: state}
}

// Send asks the advisor a question and returns the assistant turn appended for it. The
// collaborator is called without holding the session lock.
func (s *ConversationSession) Send(ctx context.Context, text string) (models.ChatTurn, error) {
	s.mu.Lock()
	req, err := s.begin(text)
	s.mu.Unlock()
	if err != nil {
		return models.ChatTurn{}, err
	}

	reply, genErr := s.cfg.Generator.GenerateText(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finish(reply, genErr), nil
}

// Begin accepts a question: the user turn is appended and the session is marked in flight. The
// returned request carries the transcript as it was before the question.
func (s *ConversationSession) Begin(text string) (genai.TextRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.begin(text)
}

func (s *ConversationSession) begin(text string) (genai.TextRequest, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return genai.TextRequest{}, ErrEmptyMessage
	}
	if s.state.InFlight {
		slog.Debug("ConversationSession.Begin: rejected, request in flight")
		return genai.TextRequest{}, ErrRequestInFlight
	}
	req := genai.TextRequest{
		System:      s.cfg.System,
		History:     append([]models.ChatTurn(nil), s.state.Transcript...),
		Prompt:      text,
		Temperature: s.cfg.Temperature,
	}
	s.state.Transcript = append(s.state.Transcript, models.ChatTurn{Role: models.ChatRoleUser, Text: text, CreatedAt: time.Now()})
	s.state.InFlight = true
	return req, nil
}

// Finish records the outcome of the collaborator call started by Begin.
func (s *ConversationSession) Finish(reply string, err error) models.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finish(reply, err)
}

func (s *ConversationSession) finish(reply string, err error) models.ChatTurn {
	turn := models.ChatTurn{Role: models.ChatRoleAssistant, Text: ReplyText(reply, err), CreatedAt: time.Now()}
	s.state.Transcript = append(s.state.Transcript, turn)
	s.state.InFlight = false
	return turn
}

// ReplyText maps a collaborator outcome onto the text shown to the visitor.
func ReplyText(reply string, err error) string {
	if err != nil {
		slog.Error("ConversationSession: advisor request failed", "error", err)
		return FallbackText
	}
	if strings.TrimSpace(reply) == "" {
		return EmptyReplyText
	}
	return reply
}

// Clear replaces the transcript with the single ClearedText turn. The in-flight flag is left
// alone, so a reply that is already on its way is still appended.
func (s *ConversationSession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	inFlight := s.state.InFlight
	s.state = openingState(ClearedText, time.Now())
	s.state.InFlight = inFlight
}

// Transcript returns a copy of the chat history.
func (s *ConversationSession) Transcript() []models.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatTurn(nil), s.state.Transcript...)
}

// InFlight reports whether a question is awaiting its reply.
func (s *ConversationSession) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.InFlight
}

// State returns a copy of the session state for saving.
func (s *ConversationSession) State() models.ConversationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Transcript = append([]models.ChatTurn(nil), s.state.Transcript...)
	return st
}
