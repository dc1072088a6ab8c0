package types

import "encoding/json"

// DefaultModel is used whenever a caller does not name a model.
const DefaultModel = "Llama-4-Maverick-17B-128E-Instruct-FP8"

// DefaultSystemPrompt is the persona applied by /chat/simple when the caller
// omits system_prompt entirely.
const DefaultSystemPrompt = "你是一個樂於助人的助手。請使用中文繁體，不要使用任何簡體中文。"

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest mirrors the upstream chat completions body. Optional
// fields are pointers so that unset values are never serialized.
type ChatCompletionRequest struct {
	Model            string        `json:"model"`
	Messages         []ChatMessage `json:"messages"`
	MaxTokens        *int          `json:"max_tokens,omitempty"`
	Temperature      *float64      `json:"temperature,omitempty"`
	TopP             *float64      `json:"top_p,omitempty"`
	FrequencyPenalty *float64      `json:"frequency_penalty,omitempty"`
	PresencePenalty  *float64      `json:"presence_penalty,omitempty"`
}

// SimpleChatRequest is the body of /chat/simple. A nil SystemPrompt selects
// DefaultSystemPrompt; a pointer to "" disables the system message. A nil
// Model selects DefaultModel; any supplied string, "" included, is forwarded.
type SimpleChatRequest struct {
	Message      string  `json:"message"`
	SystemPrompt *string `json:"system_prompt,omitempty"`
	Model        *string `json:"model,omitempty"`
}

type SimpleChatResponse struct {
	Response string                 `json:"response"`
	Model    string                 `json:"model"`
	Usage    map[string]interface{} `json:"usage"`
}

// ChatCompletionResponse is the upstream body, forwarded untouched.
type ChatCompletionResponse = json.RawMessage

type ModelInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ModelsResponse struct {
	Models []ModelInfo `json:"models"`
}

type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Docs    string `json:"docs"`
}

type HealthResponse struct {
	Status           string `json:"status"`
	APIKeyConfigured bool   `json:"api_key_configured"`
}

// ErrorResponse is the body of every non-2xx reply. Detail is either a string
// or a list of ValidationIssue.
type ErrorResponse struct {
	Detail interface{} `json:"detail"`
}

type ValidationIssue struct {
	Loc  []interface{} `json:"loc"`
	Msg  string        `json:"msg"`
	Type string        `json:"type"`
}
