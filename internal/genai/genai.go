// Package genai provides the text and image generation collaborators used by CoverageGuide.
//
// The default provider wraps the OpenAI API; an Anthropic-backed text generator is available as an
// alternative. Both sit behind small interfaces so sessions can be tested with fakes.
package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/BTreeMap/CoverageGuide/internal/models"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Default configuration constants
const (
	// DefaultModel is the chat model used when none is configured
	DefaultModel = openai.ChatModelGPT4oMini
	// DefaultImageModel is the image model used when none is configured
	DefaultImageModel = openai.ImageModelDallE3
	// DefaultTemperature matches the advisor's conversational tone
	DefaultTemperature = 0.7
)

const tracerName = "github.com/BTreeMap/CoverageGuide/internal/genai"

// Error variables for better error handling and testability
var (
	ErrAPIKeyMissing     = errors.New("genai API key not set")
	ErrNoChoicesReturned = errors.New("no choices returned")
	ErrNoImageData       = errors.New("no image data returned")
)

// TextRequest is one question to the text-generation collaborator.
type TextRequest struct {
	System      string
	History     []models.ChatTurn
	Prompt      string
	Temperature float64
}

// TextGenerator produces a reply to a question given the prior transcript.
type TextGenerator interface {
	GenerateText(ctx context.Context, req TextRequest) (string, error)
}

// chatService defines minimal interface for chat completions.
type chatService interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// imageService defines minimal interface for image generation.
type imageService interface {
	Generate(ctx context.Context, body openai.ImageGenerateParams, opts ...option.RequestOption) (*openai.ImagesResponse, error)
}

// Client wraps the OpenAI chat and image services.
type Client struct {
	chat       chatService
	images     imageService
	model      string
	imageModel string
}

// Opts holds configuration for the OpenAI client.
type Opts struct {
	APIKey     string
	Model      string
	ImageModel string
	BaseURL    string
}

// Option configures the OpenAI client.
type Option func(*Opts)

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(o *Opts) { o.APIKey = key }
}

// WithModel overrides the chat model.
func WithModel(model string) Option {
	return func(o *Opts) { o.Model = model }
}

// WithImageModel overrides the image model.
func WithImageModel(model string) Option {
	return func(o *Opts) { o.ImageModel = model }
}

// WithBaseURL points the client at an OpenAI-compatible endpoint.
func WithBaseURL(url string) Option {
	return func(o *Opts) { o.BaseURL = url }
}

// NewClient initializes a new OpenAI-backed client. It fails with ErrAPIKeyMissing when no key
// is configured; callers fall back to Unconfigured.
func NewClient(opts ...Option) (*Client, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.APIKey == "" {
		slog.Debug("genai.NewClient: API key not set")
		return nil, ErrAPIKeyMissing
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = DefaultImageModel
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.BaseURL))
	}
	cli := openai.NewClient(reqOpts...)
	slog.Debug("genai.NewClient: client created", "model", cfg.Model, "imageModel", cfg.ImageModel, "baseURLSet", cfg.BaseURL != "")
	return &Client{chat: &cli.Chat.Completions, images: &cli.Images, model: cfg.Model, imageModel: cfg.ImageModel}, nil
}

// GenerateText sends the system instruction, transcript and new question as one chat completion.
// A completion without content yields "" and a nil error.
func (c *Client) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "genai.GenerateText")
	defer span.End()
	span.SetAttributes(
		attribute.String("genai.provider", "openai"),
		attribute.String("genai.model", c.model),
		attribute.Int("genai.history_turns", len(req.History)),
	)

	params := openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    buildMessages(req),
		Temperature: openai.Float(req.Temperature),
	}
	slog.Debug("Client.GenerateText: sending chat completion", "model", c.model, "messages", len(params.Messages))
	resp, err := c.chat.New(ctx, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "chat completion failed")
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		span.SetStatus(codes.Error, ErrNoChoicesReturned.Error())
		return "", ErrNoChoicesReturned
	}
	// An empty reply is not an error; the conversation shows its own text for it.
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	slog.Debug("Client.GenerateText: reply received", "length", len(content))
	return content, nil
}

// buildMessages maps the transcript onto OpenAI chat roles.
func buildMessages(req TextRequest) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.History)+2)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	for _, turn := range req.History {
		switch turn.Role {
		case models.ChatRoleUser:
			messages = append(messages, openai.UserMessage(turn.Text))
		case models.ChatRoleAssistant:
			messages = append(messages, openai.AssistantMessage(turn.Text))
		}
	}
	return append(messages, openai.UserMessage(req.Prompt))
}

// Unconfigured is the text generator used when no credential is available. Every call fails with
// ErrAPIKeyMissing so the conversation falls back to its static reply.
type Unconfigured struct{}

// GenerateText always returns ErrAPIKeyMissing.
func (Unconfigured) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	return "", ErrAPIKeyMissing
}
