// Package translate turns inbound request bodies into upstream payloads and
// upstream bodies into client responses.
package translate

import "github.com/rogeecn/nchc-wrapper/pkg/types"

const (
	// SimpleTemperature and SimpleMaxTokens are fixed for /chat/simple.
	SimpleTemperature = 0.7
	SimpleMaxTokens   = 1000

	RoleSystem = "system"
	RoleUser   = "user"
)

// CompletionPayload forwards a full-mode request as is. Unset optional fields
// stay nil and never reach the wire; roles are not checked.
func CompletionPayload(req *types.ChatCompletionRequest) *types.ChatCompletionRequest {
	if req == nil {
		return nil
	}

	payload := *req
	if payload.Model == "" {
		payload.Model = types.DefaultModel
	}
	payload.Messages = append([]types.ChatMessage(nil), req.Messages...)
	return &payload
}

// SimplePayload assembles the system + user conversation used by /chat/simple.
func SimplePayload(req *types.SimpleChatRequest) *types.ChatCompletionRequest {
	if req == nil {
		return nil
	}

	messages := make([]types.ChatMessage, 0, 2)
	if prompt := SystemPrompt(req); prompt != "" {
		messages = append(messages, types.ChatMessage{Role: RoleSystem, Content: prompt})
	}
	messages = append(messages, types.ChatMessage{Role: RoleUser, Content: req.Message})

	temperature := SimpleTemperature
	maxTokens := SimpleMaxTokens
	return &types.ChatCompletionRequest{
		Model:       SimpleModel(req),
		Messages:    messages,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	}
}

// SystemPrompt resolves the system message for a simple request; "" means none.
func SystemPrompt(req *types.SimpleChatRequest) string {
	if req.SystemPrompt == nil {
		return types.DefaultSystemPrompt
	}
	return *req.SystemPrompt
}

// SimpleModel returns the requested model, or DefaultModel when none was given.
func SimpleModel(req *types.SimpleChatRequest) string {
	if req.Model == nil {
		return types.DefaultModel
	}
	return *req.Model
}
