package genai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BTreeMap/CoverageGuide/internal/models"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// mockChatService implements chatService for testing.
type mockChatService struct {
	resp       *openai.ChatCompletion
	err        error
	lastParams openai.ChatCompletionNewParams
}

func (m *mockChatService) New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error) {
	m.lastParams = params
	return m.resp, m.err
}

// mockImageService implements imageService for testing.
type mockImageService struct {
	resp       *openai.ImagesResponse
	err        error
	lastParams openai.ImageGenerateParams
}

func (m *mockImageService) Generate(ctx context.Context, params openai.ImageGenerateParams, opts ...option.RequestOption) (*openai.ImagesResponse, error) {
	m.lastParams = params
	return m.resp, m.err
}

func completion(content string) *openai.ChatCompletion {
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func TestGenerateText_Success(t *testing.T) {
	chat := &mockChatService{resp: completion("  Hello World \n")}
	client := &Client{chat: chat, model: DefaultModel}
	out, err := client.GenerateText(context.Background(), TextRequest{
		System: "system prompt",
		History: []models.ChatTurn{
			{Role: models.ChatRoleAssistant, Text: "Hi"},
			{Role: models.ChatRoleUser, Text: "What is SABS?"},
			{Role: models.ChatRoleAssistant, Text: "A schedule."},
		},
		Prompt:      "Tell me more",
		Temperature: DefaultTemperature,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out != "Hello World" {
		t.Errorf("expected 'Hello World', got '%s'", out)
	}
	// system + 3 history turns + new prompt
	if got := len(chat.lastParams.Messages); got != 5 {
		t.Errorf("expected 5 messages, got %d", got)
	}
}

func TestGenerateText_ServiceError(t *testing.T) {
	client := &Client{chat: &mockChatService{err: errors.New("service failure")}}
	_, err := client.GenerateText(context.Background(), TextRequest{Prompt: "usr"})
	if err == nil || !strings.Contains(err.Error(), "service failure") {
		t.Errorf("expected service failure error, got %v", err)
	}
}

func TestGenerateText_NoChoices(t *testing.T) {
	client := &Client{chat: &mockChatService{resp: &openai.ChatCompletion{}}}
	_, err := client.GenerateText(context.Background(), TextRequest{Prompt: "usr"})
	if !errors.Is(err, ErrNoChoicesReturned) {
		t.Errorf("expected no choices returned error, got %v", err)
	}
}

func TestGenerateText_EmptyContent(t *testing.T) {
	client := &Client{chat: &mockChatService{resp: completion("   ")}}
	out, err := client.GenerateText(context.Background(), TextRequest{Prompt: "usr"})
	if err != nil {
		t.Fatalf("empty content must not be an error, got %v", err)
	}
	if out != "" {
		t.Errorf("expected empty reply, got %q", out)
	}
}

// newCompletionServer answers every chat completion request with content.
func newCompletionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 0,
			"model":   DefaultModel,
			"choices": []map[string]interface{}{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]interface{}{"role": "assistant", "content": content},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GenerateTextOverHTTP(t *testing.T) {
	srv := newCompletionServer(t, "Accident benefits are mandatory.")
	client, err := NewClient(WithAPIKey("test-key"), WithBaseURL(srv.URL+"/v1/"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := client.GenerateText(context.Background(), TextRequest{Prompt: "What is mandatory?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Accident benefits are mandatory." {
		t.Errorf("unexpected reply %q", out)
	}
}

func TestClient_EmptyContentOverHTTP(t *testing.T) {
	srv := newCompletionServer(t, "")
	client, err := NewClient(WithAPIKey("test-key"), WithBaseURL(srv.URL+"/v1/"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := client.GenerateText(context.Background(), TextRequest{Prompt: "hi"})
	if err != nil || out != "" {
		t.Errorf("expected empty reply without error, got %q, %v", out, err)
	}
}

func TestBuildMessages_NoSystem(t *testing.T) {
	msgs := buildMessages(TextRequest{Prompt: "q"})
	if len(msgs) != 1 {
		t.Fatalf("expected only the user prompt, got %d messages", len(msgs))
	}
}

func TestNewClient_NoKey(t *testing.T) {
	_, err := NewClient()
	if !errors.Is(err, ErrAPIKeyMissing) {
		t.Errorf("expected ErrAPIKeyMissing, got %v", err)
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c, err := NewClient(WithAPIKey("test-key"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.model != DefaultModel || c.imageModel != DefaultImageModel {
		t.Errorf("unexpected defaults: %s, %s", c.model, c.imageModel)
	}
	c, err = NewClient(WithAPIKey("k"), WithModel("gpt-4o"), WithImageModel("dall-e-2"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.model != "gpt-4o" || c.imageModel != "dall-e-2" {
		t.Errorf("options not applied: %s, %s", c.model, c.imageModel)
	}
}

func TestUnconfigured(t *testing.T) {
	_, err := Unconfigured{}.GenerateText(context.Background(), TextRequest{Prompt: "hi"})
	if !errors.Is(err, ErrAPIKeyMissing) {
		t.Errorf("expected ErrAPIKeyMissing, got %v", err)
	}
}

func TestGenerateImage_Success(t *testing.T) {
	images := &mockImageService{resp: &openai.ImagesResponse{Data: []openai.Image{{B64JSON: "aGVsbG8="}}}}
	client := &Client{images: images, imageModel: DefaultImageModel}
	img, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "portrait", AspectRatio: AspectSquare})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := img.DataURI(); got != "data:image/png;base64,aGVsbG8=" {
		t.Errorf("unexpected data URI %q", got)
	}
	if images.lastParams.Size != openai.ImageGenerateParamsSize1024x1024 {
		t.Errorf("expected square size, got %s", images.lastParams.Size)
	}
}

func TestGenerateImage_NoData(t *testing.T) {
	client := &Client{images: &mockImageService{resp: &openai.ImagesResponse{}}}
	_, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "p"})
	if !errors.Is(err, ErrNoImageData) {
		t.Errorf("expected ErrNoImageData, got %v", err)
	}
}

func TestGenerateImage_ServiceError(t *testing.T) {
	client := &Client{images: &mockImageService{err: errors.New("quota")}}
	_, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "p"})
	if err == nil || !strings.Contains(err.Error(), "quota") {
		t.Errorf("expected quota error, got %v", err)
	}
}

func TestSizeForAspect(t *testing.T) {
	tests := map[string]openai.ImageGenerateParamsSize{
		AspectSquare:    openai.ImageGenerateParamsSize1024x1024,
		AspectLandscape: openai.ImageGenerateParamsSize1792x1024,
		AspectPortrait:  openai.ImageGenerateParamsSize1024x1792,
		"4:3":           openai.ImageGenerateParamsSize1024x1024,
	}
	for aspect, want := range tests {
		if got := sizeForAspect(aspect); got != want {
			t.Errorf("aspect %s: expected %s, got %s", aspect, want, got)
		}
	}
}
