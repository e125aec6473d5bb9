package genai

import (
	"context"
	"errors"
	"testing"

	"github.com/BTreeMap/CoverageGuide/internal/models"
	"github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
)

type mockMessageService struct {
	resp       *anthropic.Message
	err        error
	lastParams anthropic.MessageNewParams
}

func (m *mockMessageService) New(ctx context.Context, params anthropic.MessageNewParams, opts ...anthropicoption.RequestOption) (*anthropic.Message, error) {
	m.lastParams = params
	return m.resp, m.err
}

func TestAnthropicGenerateText_Success(t *testing.T) {
	svc := &mockMessageService{resp: &anthropic.Message{Content: []anthropic.ContentBlockUnion{
		{Type: "text", Text: "Income replacement "},
		{Type: "text", Text: "is optional."},
	}}}
	client := &AnthropicClient{messages: svc, model: DefaultAnthropicModel}
	out, err := client.GenerateText(context.Background(), TextRequest{System: "sys", Prompt: "q", Temperature: 0.7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Income replacement is optional." {
		t.Errorf("unexpected reply %q", out)
	}
	if len(svc.lastParams.System) != 1 || svc.lastParams.System[0].Text != "sys" {
		t.Errorf("system instruction not forwarded: %+v", svc.lastParams.System)
	}
}

func TestAnthropicGenerateText_Errors(t *testing.T) {
	client := &AnthropicClient{messages: &mockMessageService{err: errors.New("overloaded")}}
	if _, err := client.GenerateText(context.Background(), TextRequest{Prompt: "q"}); err == nil {
		t.Error("expected error from service")
	}
}

func TestAnthropicGenerateText_EmptyReply(t *testing.T) {
	client := &AnthropicClient{messages: &mockMessageService{resp: &anthropic.Message{}}}
	out, err := client.GenerateText(context.Background(), TextRequest{Prompt: "q"})
	if err != nil {
		t.Fatalf("empty reply must not be an error, got %v", err)
	}
	if out != "" {
		t.Errorf("expected empty reply, got %q", out)
	}
}

func TestBuildAnthropicMessages_DropsLeadingAssistant(t *testing.T) {
	msgs := buildAnthropicMessages(TextRequest{
		History: []models.ChatTurn{
			{Role: models.ChatRoleAssistant, Text: "greeting"},
			{Role: models.ChatRoleUser, Text: "q1"},
			{Role: models.ChatRoleAssistant, Text: "a1"},
		},
		Prompt: "q2",
	})
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if msgs[0].Role != anthropic.MessageParamRoleUser {
		t.Errorf("expected first message from user, got %s", msgs[0].Role)
	}
}

func TestNewAnthropicClient_NoKey(t *testing.T) {
	if _, err := NewAnthropicClient(); !errors.Is(err, ErrAPIKeyMissing) {
		t.Errorf("expected ErrAPIKeyMissing, got %v", err)
	}
}
