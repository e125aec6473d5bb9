// Package models defines the core data structures for CoverageGuide.
//
// It includes the static content types, chat turns, per-session progress snapshots and the
// JSON envelope shared by the API.
package models

import (
	"errors"
	"strings"
)

// Variant selects which audience the guide is deployed for.
type Variant string

const (
	// VariantConsumer is the driver-facing guide.
	VariantConsumer Variant = "consumer"
	// VariantEmployee is the insurance-employee training guide.
	VariantEmployee Variant = "employee"
)

// IsValidVariant checks if the given variant is supported.
func IsValidVariant(v Variant) bool {
	switch v {
	case VariantConsumer, VariantEmployee:
		return true
	default:
		return false
	}
}

// Validation constants for input validation
const (
	// MaxChatMessageLength defines the maximum allowed length for a chat question
	MaxChatMessageLength = 2000
)

// Error variables for better error handling and testability
var (
	ErrChatMessageTooLong = errors.New("chat message exceeds maximum length")
	ErrEmptyOption        = errors.New("option is required")
	ErrEmptyTab           = errors.New("tab is required")
	ErrEmptyChoice        = errors.New("choice is required")
)

// ChatRequest is the body of POST /api/sessions/{id}/chat.
type ChatRequest struct {
	Text string `json:"text"`
}

// Validate checks the length limit. Blank text is left for the conversation session to reject.
func (r *ChatRequest) Validate() error {
	if len(r.Text) > MaxChatMessageLength {
		return ErrChatMessageTooLong
	}
	return nil
}

// OptionRequest selects or toggles a quiz or scenario option.
type OptionRequest struct {
	Option string `json:"option"`
}

// Validate performs validation on an OptionRequest.
func (r *OptionRequest) Validate() error {
	if strings.TrimSpace(r.Option) == "" {
		return ErrEmptyOption
	}
	return nil
}

// TabRequest selects the active tab of the display shell.
type TabRequest struct {
	Tab Tab `json:"tab"`
}

// Validate performs validation on a TabRequest.
func (r *TabRequest) Validate() error {
	if r.Tab == "" {
		return ErrEmptyTab
	}
	return nil
}

// FilterRequest selects the coverage filter of the display shell.
type FilterRequest struct {
	Filter CoverageFilter `json:"filter"`
}

// DialogueRequest records the dialogue style picked in a scenario.
type DialogueRequest struct {
	Choice DialogueChoice `json:"choice"`
}

// Validate performs validation on a DialogueRequest.
func (r *DialogueRequest) Validate() error {
	if r.Choice == "" {
		return ErrEmptyChoice
	}
	return nil
}

// APIStatus represents the status of an API response.
type APIStatus string

const (
	// APIStatusOK indicates an API request completed successfully.
	APIStatusOK APIStatus = "ok"
	// APIStatusError indicates an API request failed with an error.
	APIStatusError APIStatus = "error"
)

// APIResponse represents a standard API response with a status and optional data.
type APIResponse struct {
	Status  string      `json:"status"`            // status of the API response
	Message string      `json:"message,omitempty"` // optional message for error responses or additional info
	Result  interface{} `json:"result,omitempty"`  // optional result data for successful responses
}

// APIResponseBuilder provides a fluent interface for building API responses.
type APIResponseBuilder struct {
	response APIResponse
}

// NewAPIResponseBuilder creates a new APIResponseBuilder instance.
func NewAPIResponseBuilder() *APIResponseBuilder {
	return &APIResponseBuilder{
		response: APIResponse{},
	}
}

// WithStatus sets the status of the API response.
func (b *APIResponseBuilder) WithStatus(status APIStatus) *APIResponseBuilder {
	b.response.Status = string(status)
	return b
}

// WithMessage sets the message of the API response.
func (b *APIResponseBuilder) WithMessage(message string) *APIResponseBuilder {
	b.response.Message = message
	return b
}

// WithResult sets the result data of the API response.
func (b *APIResponseBuilder) WithResult(result interface{}) *APIResponseBuilder {
	b.response.Result = result
	return b
}

// Build constructs and returns the final APIResponse.
func (b *APIResponseBuilder) Build() APIResponse {
	return b.response
}

// Success creates a successful API response with optional result data.
func Success(result interface{}) APIResponse {
	return NewAPIResponseBuilder().
		WithStatus(APIStatusOK).
		WithResult(result).
		Build()
}

// SuccessWithMessage creates a successful API response with a message and optional result data.
func SuccessWithMessage(message string, result interface{}) APIResponse {
	return NewAPIResponseBuilder().
		WithStatus(APIStatusOK).
		WithMessage(message).
		WithResult(result).
		Build()
}

// Error creates an error API response with a message.
func Error(message string) APIResponse {
	return NewAPIResponseBuilder().
		WithStatus(APIStatusError).
		WithMessage(message).
		Build()
}
