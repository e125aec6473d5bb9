// Package models defines state management structures for CoverageGuide sessions.
package models

import "time"

// ChatRole identifies who authored a chat turn.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatTurn is one message of the advisor transcript.
type ChatTurn struct {
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// ConversationState is the persisted state of a conversation session.
type ConversationState struct {
	Transcript []ChatTurn `json:"transcript"`
	InFlight   bool       `json:"in_flight"`
}

// QuizState is the tagged state of a quiz session.
type QuizState string

const (
	QuizAnswering QuizState = "answering"
	QuizSubmitted QuizState = "submitted"
	QuizFinished  QuizState = "finished"
)

// QuizProgress is the persisted state of a quiz session.
type QuizProgress struct {
	CurrentIndex   int       `json:"current_index"`
	SelectedOption string    `json:"selected_option,omitempty"` // empty means no selection
	State          QuizState `json:"state"`
	Score          int       `json:"score"`
}

// ScenarioStep is the tagged step of a scenario session.
type ScenarioStep string

const (
	StepSelection       ScenarioStep = "selection"
	StepCoverageResults ScenarioStep = "coverage_results"
	StepDialogue        ScenarioStep = "dialogue"
	StepFeedback        ScenarioStep = "feedback"
)

// PortraitStatus is the state of the generated customer portrait.
type PortraitStatus string

const (
	PortraitIdle        PortraitStatus = "idle"
	PortraitGenerating  PortraitStatus = "generating"
	PortraitReady       PortraitStatus = "ready"
	PortraitUnavailable PortraitStatus = "unavailable"
)

// PortraitState tracks the portrait of the current scenario. Token identifies the latest request;
// results carrying an older token are discarded. The image itself is not part of the record.
type PortraitState struct {
	Status      PortraitStatus `json:"status"`
	Token       uint64         `json:"token"`
	Placeholder string         `json:"placeholder"`
}

// ScenarioProgress is the persisted state of a scenario session.
type ScenarioProgress struct {
	CurrentIndex    int            `json:"current_index"`
	SelectedOptions []string       `json:"selected_options"`
	Step            ScenarioStep   `json:"step"`
	DialogueChoice  DialogueChoice `json:"dialogue_choice,omitempty"`
	Portrait        PortraitState  `json:"portrait"`
}

// SessionRecord is the snapshot of one visitor's workspace kept by the session store.
type SessionRecord struct {
	ID             string            `json:"id"`
	Variant        Variant           `json:"variant"`
	Tab            Tab               `json:"tab"`
	CoverageFilter CoverageFilter    `json:"coverage_filter"`
	Conversation   ConversationState `json:"conversation"`
	Quiz           QuizProgress      `json:"quiz"`
	Scenario       ScenarioProgress  `json:"scenario"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}
