package genai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/BTreeMap/CoverageGuide/internal/models"
	"github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// DefaultAnthropicModel is the Claude model used when none is configured.
const DefaultAnthropicModel = "claude-sonnet-4-5"

// replyTokenBudget caps a reply; the system instruction asks for about 200 words.
const replyTokenBudget = 1024

// messageService defines minimal interface for the Anthropic Messages API.
type messageService interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...anthropicoption.RequestOption) (*anthropic.Message, error)
}

// AnthropicClient generates advisor replies with Claude.
type AnthropicClient struct {
	messages messageService
	model    string
}

// NewAnthropicClient builds a Claude-backed TextGenerator. Only APIKey and Model of the options
// apply.
func NewAnthropicClient(opts ...Option) (*AnthropicClient, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.APIKey == "" {
		slog.Debug("genai.NewAnthropicClient: API key not set")
		return nil, ErrAPIKeyMissing
	}
	if cfg.Model == "" {
		cfg.Model = DefaultAnthropicModel
	}
	cli := anthropic.NewClient(anthropicoption.WithAPIKey(cfg.APIKey))
	slog.Debug("genai.NewAnthropicClient: client created", "model", cfg.Model)
	return &AnthropicClient{messages: &cli.Messages, model: cfg.Model}, nil
}

// GenerateText sends the transcript and question to the Messages API. A reply without text blocks
// yields "" and a nil error.
func (c *AnthropicClient) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "genai.GenerateText")
	defer span.End()
	span.SetAttributes(
		attribute.String("genai.provider", "anthropic"),
		attribute.String("genai.model", c.model),
		attribute.Int("genai.history_turns", len(req.History)),
	)

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   replyTokenBudget,
		Temperature: param.NewOpt(req.Temperature),
		Messages:    buildAnthropicMessages(req),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	slog.Debug("AnthropicClient.GenerateText: sending message", "model", c.model, "messages", len(params.Messages))
	msg, err := c.messages.New(ctx, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "message request failed")
		return "", fmt.Errorf("anthropic message: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

// buildAnthropicMessages maps the transcript onto Claude turns. The conversation must open with a
// user turn, so leading assistant turns (the greeting) are dropped.
func buildAnthropicMessages(req TextRequest) []anthropic.MessageParam {
	messages := make([]anthropic.MessageParam, 0, len(req.History)+1)
	for _, turn := range req.History {
		switch turn.Role {
		case models.ChatRoleUser:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(turn.Text)))
		case models.ChatRoleAssistant:
			if len(messages) == 0 {
				continue
			}
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(turn.Text)))
		}
	}
	return append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)))
}
