package translate

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rogeecn/nchc-wrapper/pkg/types"
)

func stringPtr(s string) *string { return &s }

func TestCompletionPayloadOmitsUnsetFields(t *testing.T) {
	topP := 0.9
	payload := CompletionPayload(&types.ChatCompletionRequest{
		Model:    "m",
		Messages: []types.ChatMessage{{Role: "user", Content: "hi"}},
		TopP:     &topP,
	})

	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(keys) != 3 {
		t.Fatalf("payload keys = %s, want model, messages, top_p only", raw)
	}
	for _, key := range []string{"model", "messages", "top_p"} {
		if _, ok := keys[key]; !ok {
			t.Fatalf("payload missing %q: %s", key, raw)
		}
	}
}

func TestCompletionPayloadKeepsRolesVerbatim(t *testing.T) {
	in := &types.ChatCompletionRequest{
		Model:    "m",
		Messages: []types.ChatMessage{{Role: "narrator", Content: "x"}},
	}
	payload := CompletionPayload(in)
	if payload.Messages[0].Role != "narrator" {
		t.Fatalf("role = %q, want narrator", payload.Messages[0].Role)
	}

	payload.Messages[0].Content = "changed"
	if in.Messages[0].Content != "x" {
		t.Fatal("CompletionPayload should not alias the caller's messages")
	}
}

func TestCompletionPayloadDefaultsModel(t *testing.T) {
	payload := CompletionPayload(&types.ChatCompletionRequest{
		Messages: []types.ChatMessage{{Role: "user", Content: "hi"}},
	})
	if payload.Model != types.DefaultModel {
		t.Fatalf("model = %q, want %q", payload.Model, types.DefaultModel)
	}
}

func TestCompletionPayloadNil(t *testing.T) {
	if CompletionPayload(nil) != nil {
		t.Fatal("CompletionPayload(nil) should be nil")
	}
	if SimplePayload(nil) != nil {
		t.Fatal("SimplePayload(nil) should be nil")
	}
}

func TestSimplePayloadWithSystemPrompt(t *testing.T) {
	payload := SimplePayload(&types.SimpleChatRequest{
		Message:      "hello",
		SystemPrompt: stringPtr("be brief"),
		Model:        stringPtr("custom"),
	})

	if len(payload.Messages) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(payload.Messages))
	}
	if payload.Messages[0] != (types.ChatMessage{Role: "system", Content: "be brief"}) {
		t.Fatalf("messages[0] = %+v", payload.Messages[0])
	}
	if payload.Messages[1] != (types.ChatMessage{Role: "user", Content: "hello"}) {
		t.Fatalf("messages[1] = %+v", payload.Messages[1])
	}
	if payload.Model != "custom" {
		t.Fatalf("model = %q, want custom", payload.Model)
	}
	if payload.Temperature == nil || *payload.Temperature != 0.7 {
		t.Fatalf("temperature = %v, want 0.7", payload.Temperature)
	}
	if payload.MaxTokens == nil || *payload.MaxTokens != 1000 {
		t.Fatalf("max_tokens = %v, want 1000", payload.MaxTokens)
	}
	if payload.TopP != nil || payload.FrequencyPenalty != nil || payload.PresencePenalty != nil {
		t.Fatal("simple payload should only set temperature and max_tokens")
	}
}

func TestSimplePayloadEmptySystemPrompt(t *testing.T) {
	payload := SimplePayload(&types.SimpleChatRequest{
		Message:      "hello",
		SystemPrompt: stringPtr(""),
	})

	if len(payload.Messages) != 1 {
		t.Fatalf("len(messages) = %d, want 1", len(payload.Messages))
	}
	if payload.Messages[0].Role != "user" {
		t.Fatalf("messages[0].role = %q, want user", payload.Messages[0].Role)
	}
}

func TestSimplePayloadDefaults(t *testing.T) {
	payload := SimplePayload(&types.SimpleChatRequest{Message: "hello"})

	if payload.Model != types.DefaultModel {
		t.Fatalf("model = %q, want %q", payload.Model, types.DefaultModel)
	}
	if len(payload.Messages) != 2 || payload.Messages[0].Content != types.DefaultSystemPrompt {
		t.Fatalf("messages = %+v, want default persona first", payload.Messages)
	}
}

func TestSimplePayloadKeepsExplicitEmptyModel(t *testing.T) {
	payload := SimplePayload(&types.SimpleChatRequest{Message: "hello", Model: stringPtr("")})

	if payload.Model != "" {
		t.Fatalf("model = %q, want the caller's empty string", payload.Model)
	}
}

func TestSimplePayloadDeterministic(t *testing.T) {
	req := &types.SimpleChatRequest{Message: "same", SystemPrompt: stringPtr("p"), Model: stringPtr("m")}

	first, err := json.Marshal(SimplePayload(req))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(SimplePayload(req))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("payloads differ:\n%s\n%s", first, second)
	}
}
