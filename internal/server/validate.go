package server

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rogeecn/nchc-wrapper/pkg/types"
	"github.com/tidwall/gjson"
)

var completionFloatFields = []string{"temperature", "top_p", "frequency_penalty", "presence_penalty"}

type validator struct {
	issues []types.ValidationIssue
}

func (v *validator) add(msg, kind string, loc ...interface{}) {
	v.issues = append(v.issues, types.ValidationIssue{
		Loc:  append([]interface{}{"body"}, loc...),
		Msg:  msg,
		Type: kind,
	})
}

// object parses body as a JSON object, recording an issue when it is not one.
func (v *validator) object(body []byte) (gjson.Result, bool) {
	if !gjson.ValidBytes(body) {
		v.add("invalid JSON body", "value_error.jsondecode")
		return gjson.Result{}, false
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		v.add("value is not a valid dict", "type_error.dict")
		return gjson.Result{}, false
	}
	return root, true
}

func (v *validator) requiredString(value gjson.Result, loc ...interface{}) string {
	if !value.Exists() || value.Type == gjson.Null {
		v.add("field required", "value_error.missing", loc...)
		return ""
	}
	if value.Type != gjson.String {
		v.add("str type expected", "type_error.str", loc...)
		return ""
	}
	return value.String()
}

// optionalString reports whether a non-null string was supplied.
func (v *validator) optionalString(value gjson.Result, loc ...interface{}) (string, bool) {
	if !value.Exists() || value.Type == gjson.Null {
		return "", false
	}
	if value.Type != gjson.String {
		v.add("str type expected", "type_error.str", loc...)
		return "", false
	}
	return value.String(), true
}

func (v *validator) optionalFloat(value gjson.Result, loc ...interface{}) *float64 {
	if !value.Exists() || value.Type == gjson.Null {
		return nil
	}
	if value.Type != gjson.Number {
		v.add("value is not a valid float", "type_error.float", loc...)
		return nil
	}
	f := value.Float()
	return &f
}

func (v *validator) optionalPositiveInt(value gjson.Result, loc ...interface{}) *int {
	if !value.Exists() || value.Type == gjson.Null {
		return nil
	}
	if value.Type != gjson.Number || strings.ContainsAny(value.Raw, ".eE") {
		v.add("value is not a valid integer", "type_error.integer", loc...)
		return nil
	}
	// Raw keeps every digit; gjson's Int would wrap on overflow.
	parsed, err := strconv.ParseInt(value.Raw, 10, strconv.IntSize)
	switch {
	case err != nil && strings.HasPrefix(value.Raw, "-"), err == nil && parsed <= 0:
		v.add("ensure this value is greater than 0", "value_error.number.not_gt", loc...)
		return nil
	case err != nil:
		v.add(fmt.Sprintf("ensure this value is less than or equal to %d", math.MaxInt), "value_error.number.not_le", loc...)
		return nil
	}
	n := int(parsed)
	return &n
}

func (v *validator) messages(value gjson.Result) []types.ChatMessage {
	if !value.Exists() || value.Type == gjson.Null {
		v.add("field required", "value_error.missing", "messages")
		return nil
	}
	if !value.IsArray() {
		v.add("value is not a valid list", "type_error.list", "messages")
		return nil
	}

	items := value.Array()
	if len(items) == 0 {
		v.add("ensure this value has at least 1 items", "value_error.list.min_items", "messages")
		return nil
	}

	messages := make([]types.ChatMessage, 0, len(items))
	for i, item := range items {
		if !item.IsObject() {
			v.add("value is not a valid dict", "type_error.dict", "messages", i)
			continue
		}
		messages = append(messages, types.ChatMessage{
			Role:    v.requiredString(item.Get("role"), "messages", i, "role"),
			Content: v.requiredString(item.Get("content"), "messages", i, "content"),
		})
	}
	return messages
}

// decodeCompletionRequest validates a /chat/completions body. Unknown keys are
// ignored; absent and null optionals both stay unset.
func decodeCompletionRequest(body []byte) (*types.ChatCompletionRequest, []types.ValidationIssue) {
	v := &validator{}
	root, ok := v.object(body)
	if !ok {
		return nil, v.issues
	}

	model, _ := v.optionalString(root.Get("model"), "model")
	req := &types.ChatCompletionRequest{
		Model:     model,
		Messages:  v.messages(root.Get("messages")),
		MaxTokens: v.optionalPositiveInt(root.Get("max_tokens"), "max_tokens"),
	}

	floats := make(map[string]*float64, len(completionFloatFields))
	for _, field := range completionFloatFields {
		floats[field] = v.optionalFloat(root.Get(field), field)
	}
	req.Temperature = floats["temperature"]
	req.TopP = floats["top_p"]
	req.FrequencyPenalty = floats["frequency_penalty"]
	req.PresencePenalty = floats["presence_penalty"]

	if len(v.issues) > 0 {
		return nil, v.issues
	}
	return req, nil
}

// decodeSimpleRequest validates a /chat/simple body. An absent system_prompt
// keeps the default persona; an explicit null disables it.
func decodeSimpleRequest(body []byte) (*types.SimpleChatRequest, []types.ValidationIssue) {
	v := &validator{}
	root, ok := v.object(body)
	if !ok {
		return nil, v.issues
	}

	req := &types.SimpleChatRequest{
		Message: v.requiredString(root.Get("message"), "message"),
	}

	systemPrompt := root.Get("system_prompt")
	switch {
	case !systemPrompt.Exists():
	case systemPrompt.Type == gjson.Null:
		empty := ""
		req.SystemPrompt = &empty
	default:
		if prompt, ok := v.optionalString(systemPrompt, "system_prompt"); ok {
			req.SystemPrompt = &prompt
		}
	}

	if model, ok := v.optionalString(root.Get("model"), "model"); ok {
		req.Model = &model
	}

	if len(v.issues) > 0 {
		return nil, v.issues
	}
	return req, nil
}
