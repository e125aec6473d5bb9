package flow

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"github.com/BTreeMap/CoverageGuide/internal/content"
	"github.com/BTreeMap/CoverageGuide/internal/genai"
	"github.com/BTreeMap/CoverageGuide/internal/models"
	"github.com/BTreeMap/CoverageGuide/internal/store"
	"github.com/google/uuid"
)

// lockStripes is the number of mutexes session IDs are hashed onto.
const lockStripes = 64

var errStalePortrait = errors.New("stale portrait result")

// ShellView is the navigation state of a session.
type ShellView struct {
	SessionID   string                `json:"session_id"`
	Variant     models.Variant        `json:"variant"`
	Tabs        []TabView             `json:"tabs"`
	ActiveTab   models.Tab            `json:"active_tab"`
	Filter      models.CoverageFilter `json:"filter"`
	FilterLabel string                `json:"filter_label"`
}

// ChatView is the advisor transcript of a session.
type ChatView struct {
	Transcript []models.ChatTurn `json:"transcript"`
	InFlight   bool              `json:"in_flight"`
}

// ManagerConfig wires the manager to its collaborators.
type ManagerConfig struct {
	Content      *content.Store
	Store        store.Store
	Conversation ConversationConfig
	Portraits    *PortraitLoader
}

// Manager creates sessions and applies every operation to them. Each operation loads the record,
// mutates it under the session's lock and saves it back.
type Manager struct {
	content   *content.Store
	store     store.Store
	conv      ConversationConfig
	portraits *PortraitLoader
	images    *portraitCache
	locks     [lockStripes]sync.Mutex
	wg        sync.WaitGroup
	now       func() time.Time
}

// NewManager creates a Manager.
func NewManager(cfg ManagerConfig) *Manager {
	if cfg.Conversation.Generator == nil {
		cfg.Conversation.Generator = genai.Unconfigured{}
	}
	slog.Debug("flow.NewManager: creating session manager", "variant", cfg.Content.Variant(), "portraits", cfg.Portraits.Available())
	return &Manager{
		content:   cfg.Content,
		store:     cfg.Store,
		conv:      cfg.Conversation,
		portraits: cfg.Portraits,
		images:    newPortraitCache(),
		now:       time.Now,
	}
}

// Variant returns the variant every session of this manager runs.
func (m *Manager) Variant() models.Variant {
	return m.content.Variant()
}

// Content returns the Content Store sessions read from.
func (m *Manager) Content() *content.Store {
	return m.content
}

func (m *Manager) lockFor(id string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(id))
	return &m.locks[h.Sum32()%lockStripes]
}

// update applies fn to the stored record under the session lock. The record is saved only when
// fn succeeds.
func (m *Manager) update(ctx context.Context, id string, fn func(rec *models.SessionRecord) error) (models.SessionRecord, error) {
	mu := m.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	rec, err := m.store.GetSession(ctx, id)
	if err != nil {
		return models.SessionRecord{}, err
	}
	if err := fn(&rec); err != nil {
		return models.SessionRecord{}, err
	}
	rec.UpdatedAt = m.now()
	if err := m.store.SaveSession(ctx, rec); err != nil {
		return models.SessionRecord{}, fmt.Errorf("save session %s: %w", id, err)
	}
	return rec, nil
}

// Create starts a new session workspace.
func (m *Manager) Create(ctx context.Context) (models.SessionRecord, error) {
	now := m.now()
	v := m.Variant()
	rec := models.SessionRecord{
		ID:             uuid.NewString(),
		Variant:        v,
		Tab:            DefaultTab(v),
		CoverageFilter: models.FilterAll,
		Conversation:   NewConversationState(now),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	var portrait PortraitRequest
	var dispatch bool
	if m.hasTraining() {
		rec.Quiz = NewQuizProgress()
		rec.Scenario = NewScenarioProgress()
		portrait, dispatch = m.startPortrait(&rec)
	}
	if err := m.store.SaveSession(ctx, rec); err != nil {
		slog.Error("Manager.Create: failed to save session", "error", err)
		return models.SessionRecord{}, fmt.Errorf("save session: %w", err)
	}
	slog.Info("Manager.Create: session created", "sessionID", rec.ID, "variant", v)
	if dispatch {
		m.dispatchPortrait(ctx, rec.ID, portrait)
	}
	return rec, nil
}

// Get returns the stored record of a session.
func (m *Manager) Get(ctx context.Context, id string) (models.SessionRecord, error) {
	return m.store.GetSession(ctx, id)
}

func (m *Manager) shellView(rec models.SessionRecord) ShellView {
	sh := NewShell(rec.Variant, rec.Tab, rec.CoverageFilter)
	return ShellView{
		SessionID:   rec.ID,
		Variant:     rec.Variant,
		Tabs:        sh.Tabs(),
		ActiveTab:   sh.Tab(),
		Filter:      sh.Filter(),
		FilterLabel: content.FilterLabel(sh.Filter()),
	}
}

// End discards a session. Unknown IDs return store.ErrNotFound.
func (m *Manager) End(ctx context.Context, id string) error {
	mu := m.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	if _, err := m.store.GetSession(ctx, id); err != nil {
		return err
	}
	if err := m.store.DeleteSession(ctx, id); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	m.images.drop(id)
	slog.Info("Manager.End: session ended", "sessionID", id)
	return nil
}

// Shell returns the navigation state of a session.
func (m *Manager) Shell(ctx context.Context, id string) (ShellView, error) {
	rec, err := m.store.GetSession(ctx, id)
	if err != nil {
		return ShellView{}, err
	}
	return m.shellView(rec), nil
}

// SelectTab switches the active panel.
func (m *Manager) SelectTab(ctx context.Context, id string, tab models.Tab) (ShellView, error) {
	rec, err := m.update(ctx, id, func(rec *models.SessionRecord) error {
		sh := NewShell(rec.Variant, rec.Tab, rec.CoverageFilter)
		if err := sh.SelectTab(tab); err != nil {
			return err
		}
		rec.Tab = sh.Tab()
		return nil
	})
	if err != nil {
		return ShellView{}, err
	}
	return m.shellView(rec), nil
}

// SetFilter changes the coverage filter.
func (m *Manager) SetFilter(ctx context.Context, id string, filter string) (ShellView, error) {
	rec, err := m.update(ctx, id, func(rec *models.SessionRecord) error {
		sh := NewShell(rec.Variant, rec.Tab, rec.CoverageFilter)
		if err := sh.SetFilter(filter); err != nil {
			return err
		}
		rec.CoverageFilter = sh.Filter()
		return nil
	})
	if err != nil {
		return ShellView{}, err
	}
	return m.shellView(rec), nil
}

// Chat returns the advisor transcript.
func (m *Manager) Chat(ctx context.Context, id string) (ChatView, error) {
	rec, err := m.store.GetSession(ctx, id)
	if err != nil {
		return ChatView{}, err
	}
	return ChatView{Transcript: rec.Conversation.Transcript, InFlight: rec.Conversation.InFlight}, nil
}

// Send asks the advisor a question. The question is saved before the collaborator is called and
// the lock is released for the duration of the call; the reply is applied to whatever the
// transcript holds by then. The call is detached from ctx so it always runs to completion.
func (m *Manager) Send(ctx context.Context, id, text string) (models.ChatTurn, error) {
	var req genai.TextRequest
	_, err := m.update(ctx, id, func(rec *models.SessionRecord) error {
		sess := RestoreConversationSession(m.conv, rec.Conversation)
		r, err := sess.Begin(text)
		if err != nil {
			return err
		}
		req = r
		rec.Conversation = sess.State()
		return nil
	})
	if err != nil {
		return models.ChatTurn{}, err
	}

	detached := context.WithoutCancel(ctx)
	slog.Debug("Manager.Send: calling advisor", "sessionID", id, "historyTurns", len(req.History))
	reply, genErr := m.conv.Generator.GenerateText(detached, req)

	var turn models.ChatTurn
	_, err = m.update(detached, id, func(rec *models.SessionRecord) error {
		sess := RestoreConversationSession(m.conv, rec.Conversation)
		turn = sess.Finish(reply, genErr)
		rec.Conversation = sess.State()
		return nil
	})
	switch {
	case err == nil:
		return turn, nil
	case errors.Is(err, store.ErrNotFound):
		// Ended or swept during the call; the caller still gets the answer it waited for.
		slog.Warn("Manager.Send: session gone before reply, reply not saved", "sessionID", id)
		return models.ChatTurn{Role: models.ChatRoleAssistant, Text: ReplyText(reply, genErr), CreatedAt: m.now()}, nil
	default:
		return models.ChatTurn{}, err
	}
}

// ClearChat resets the transcript to the greeting.
func (m *Manager) ClearChat(ctx context.Context, id string) (ChatView, error) {
	rec, err := m.update(ctx, id, func(rec *models.SessionRecord) error {
		sess := RestoreConversationSession(m.conv, rec.Conversation)
		sess.Clear()
		rec.Conversation = sess.State()
		return nil
	})
	if err != nil {
		return ChatView{}, err
	}
	return ChatView{Transcript: rec.Conversation.Transcript, InFlight: rec.Conversation.InFlight}, nil
}

func (m *Manager) hasTraining() bool {
	return m.Variant() == models.VariantEmployee
}

// Quiz returns the current quiz view.
func (m *Manager) Quiz(ctx context.Context, id string) (QuizView, error) {
	if !m.hasTraining() {
		return QuizView{}, ErrFeatureUnavailable
	}
	rec, err := m.store.GetSession(ctx, id)
	if err != nil {
		return QuizView{}, err
	}
	return NewQuizSession(m.content.Questions(), rec.Quiz).View(), nil
}

func (m *Manager) withQuiz(ctx context.Context, id string, fn func(q *QuizSession) error) (QuizView, error) {
	if !m.hasTraining() {
		return QuizView{}, ErrFeatureUnavailable
	}
	var view QuizView
	_, err := m.update(ctx, id, func(rec *models.SessionRecord) error {
		q := NewQuizSession(m.content.Questions(), rec.Quiz)
		if err := fn(q); err != nil {
			return err
		}
		rec.Quiz = q.Progress()
		view = q.View()
		return nil
	})
	return view, err
}

// QuizSelect picks an answer.
func (m *Manager) QuizSelect(ctx context.Context, id, opt string) (QuizView, error) {
	return m.withQuiz(ctx, id, func(q *QuizSession) error { return q.SelectOption(opt) })
}

// QuizSubmit scores the selected answer.
func (m *Manager) QuizSubmit(ctx context.Context, id string) (QuizView, error) {
	return m.withQuiz(ctx, id, func(q *QuizSession) error { return q.Submit() })
}

// QuizNext moves to the next question or finishes the quiz.
func (m *Manager) QuizNext(ctx context.Context, id string) (QuizView, error) {
	return m.withQuiz(ctx, id, func(q *QuizSession) error { return q.Next() })
}

// QuizRestart starts the quiz over.
func (m *Manager) QuizRestart(ctx context.Context, id string) (QuizView, error) {
	return m.withQuiz(ctx, id, func(q *QuizSession) error {
		q.Restart()
		return nil
	})
}

func (m *Manager) scenarioSession(rec *models.SessionRecord) *ScenarioSession {
	s := NewScenarioSession(m.content.Scenarios(), m.content, rec.Scenario)
	if e, ok := m.images.get(rec.ID); ok {
		s.RestoreImage(e.token, e.uri)
	}
	return s
}

// Scenario returns the current scenario view.
func (m *Manager) Scenario(ctx context.Context, id string) (ScenarioView, error) {
	if !m.hasTraining() {
		return ScenarioView{}, ErrFeatureUnavailable
	}
	rec, err := m.store.GetSession(ctx, id)
	if err != nil {
		return ScenarioView{}, err
	}
	return m.scenarioSession(&rec).View(), nil
}

func (m *Manager) withScenario(ctx context.Context, id string, fn func(s *ScenarioSession) error) (ScenarioView, error) {
	if !m.hasTraining() {
		return ScenarioView{}, ErrFeatureUnavailable
	}
	var view ScenarioView
	_, err := m.update(ctx, id, func(rec *models.SessionRecord) error {
		s := m.scenarioSession(rec)
		if err := fn(s); err != nil {
			return err
		}
		rec.Scenario = s.Progress()
		view = s.View()
		return nil
	})
	return view, err
}

// ScenarioToggle adds or removes a coverage from the selection.
func (m *Manager) ScenarioToggle(ctx context.Context, id, opt string) (ScenarioView, error) {
	return m.withScenario(ctx, id, func(s *ScenarioSession) error { return s.ToggleOption(opt) })
}

// ScenarioResults shows the coverage review.
func (m *Manager) ScenarioResults(ctx context.Context, id string) (ScenarioView, error) {
	return m.withScenario(ctx, id, func(s *ScenarioSession) error { return s.ProceedToResults() })
}

// ScenarioDialogue opens the dialogue choice.
func (m *Manager) ScenarioDialogue(ctx context.Context, id string) (ScenarioView, error) {
	return m.withScenario(ctx, id, func(s *ScenarioSession) error { return s.ProceedToDialogue() })
}

// ScenarioChoose records the dialogue choice and shows the compliance feedback.
func (m *Manager) ScenarioChoose(ctx context.Context, id string, choice models.DialogueChoice) (ScenarioView, error) {
	return m.withScenario(ctx, id, func(s *ScenarioSession) error { return s.ChooseDialogue(choice) })
}

// ScenarioAdvance moves to the next scenario and requests its portrait.
func (m *Manager) ScenarioAdvance(ctx context.Context, id string) (ScenarioView, error) {
	var portrait PortraitRequest
	var dispatch bool
	view, err := m.withScenario(ctx, id, func(s *ScenarioSession) error {
		if err := s.Advance(); err != nil {
			return err
		}
		portrait, dispatch = s.StartPortrait(m.portraits.Available())
		return nil
	})
	if err != nil {
		return ScenarioView{}, err
	}
	if dispatch {
		m.dispatchPortrait(ctx, id, portrait)
	}
	return view, nil
}

// Portrait returns the portrait of the current scenario.
func (m *Manager) Portrait(ctx context.Context, id string) (PortraitView, error) {
	if !m.hasTraining() {
		return PortraitView{}, ErrFeatureUnavailable
	}
	rec, err := m.store.GetSession(ctx, id)
	if err != nil {
		return PortraitView{}, err
	}
	return m.scenarioSession(&rec).View().Portrait, nil
}

func (m *Manager) startPortrait(rec *models.SessionRecord) (PortraitRequest, bool) {
	s := m.scenarioSession(rec)
	req, ok := s.StartPortrait(m.portraits.Available())
	rec.Scenario = s.Progress()
	return req, ok
}

// dispatchPortrait generates the portrait in the background and applies it only if the
// session still expects this token.
func (m *Manager) dispatchPortrait(ctx context.Context, id string, req PortraitRequest) {
	ctx = context.WithoutCancel(ctx)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		img, genErr := m.portraits.Load(ctx, req)
		_, err := m.update(ctx, id, func(rec *models.SessionRecord) error {
			s := m.scenarioSession(rec)
			if !s.ApplyPortrait(req.Token, img, genErr) {
				return errStalePortrait
			}
			if uri := s.Image(); uri != "" {
				m.images.put(id, req.Token, uri)
			}
			rec.Scenario = s.Progress()
			return nil
		})
		switch {
		case err == nil:
			slog.Debug("Manager.dispatchPortrait: portrait applied", "sessionID", id, "token", req.Token)
		case errors.Is(err, errStalePortrait):
		case errors.Is(err, store.ErrNotFound):
			slog.Debug("Manager.dispatchPortrait: session ended before portrait", "sessionID", id)
		default:
			slog.Warn("Manager.dispatchPortrait: could not apply portrait", "sessionID", id, "error", err)
		}
	}()
}

// Wait blocks until every outstanding portrait request has been applied or discarded.
func (m *Manager) Wait() {
	m.wg.Wait()
}

// Sweep deletes sessions idle for longer than ttl.
func (m *Manager) Sweep(ctx context.Context, ttl time.Duration) (int, error) {
	n, err := m.store.DeleteSessionsBefore(ctx, m.now().Add(-ttl))
	if err != nil {
		slog.Error("Manager.Sweep: failed to delete idle sessions", "error", err)
		return 0, err
	}
	if n > 0 {
		slog.Info("Manager.Sweep: idle sessions removed", "count", n, "ttl", ttl)
		for _, id := range m.images.ids() {
			if _, err := m.store.GetSession(ctx, id); errors.Is(err, store.ErrNotFound) {
				m.images.drop(id)
			}
		}
	}
	return n, nil
}

// RunSweeper calls Sweep every interval until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, ttl, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Debug("Manager.RunSweeper: stopping")
			return
		case <-ticker.C:
			m.Sweep(ctx, ttl)
		}
	}
}
