package translate

import (
	"encoding/json"
	"fmt"

	"github.com/rogeecn/nchc-wrapper/pkg/types"
	"github.com/tidwall/gjson"
)

// FallbackResponse replaces the assistant text when upstream returns no choices.
const FallbackResponse = "無法生成回應"

// ShapeError reports an upstream 200 body that does not have the structure
// the wrapper promises to its callers.
type ShapeError struct {
	Reason string
}

func (e *ShapeError) Error() string {
	return "malformed upstream response: " + e.Reason
}

type requiredField struct {
	path  string
	check func(gjson.Result) bool
	want  string
}

var completionShape = []requiredField{
	{path: "id", check: isString, want: "a string"},
	{path: "object", check: isString, want: "a string"},
	{path: "created", check: isInteger, want: "an integer"},
	{path: "model", check: isString, want: "a string"},
	{path: "choices", check: isObjectArray, want: "an array of objects"},
	{path: "usage", check: gjson.Result.IsObject, want: "an object"},
}

// CompletionResponse returns the upstream body untouched once it satisfies the
// chat completion shape.
func CompletionResponse(body []byte) (types.ChatCompletionResponse, error) {
	root, err := parseObject(body)
	if err != nil {
		return nil, err
	}

	for _, field := range completionShape {
		value := root.Get(field.path)
		if !value.Exists() {
			return nil, &ShapeError{Reason: fmt.Sprintf("field %q is missing", field.path)}
		}
		if !field.check(value) {
			return nil, &ShapeError{Reason: fmt.Sprintf("field %q must be %s", field.path, field.want)}
		}
	}

	return types.ChatCompletionResponse(body), nil
}

// SimpleResponse extracts the first choice's content and the usage block.
// model is what the caller asked for, not what upstream echoes back.
func SimpleResponse(body []byte, model string) (*types.SimpleChatResponse, error) {
	root, err := parseObject(body)
	if err != nil {
		return nil, err
	}

	content := FallbackResponse
	choices := root.Get("choices")
	if choices.IsArray() && len(choices.Array()) > 0 {
		value := root.Get("choices.0.message.content")
		if value.Type != gjson.String {
			return nil, &ShapeError{Reason: "choices[0].message.content must be a string"}
		}
		content = value.String()
	}

	usage := map[string]interface{}{}
	switch value := root.Get("usage"); {
	case !value.Exists(), value.Type == gjson.Null:
	case value.IsObject():
		if err := json.Unmarshal([]byte(value.Raw), &usage); err != nil {
			return nil, &ShapeError{Reason: fmt.Sprintf("usage: %v", err)}
		}
	default:
		return nil, &ShapeError{Reason: "usage must be an object"}
	}

	return &types.SimpleChatResponse{
		Response: content,
		Model:    model,
		Usage:    usage,
	}, nil
}

func parseObject(body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, &ShapeError{Reason: "body is not valid JSON"}
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return gjson.Result{}, &ShapeError{Reason: "body is not a JSON object"}
	}
	return root, nil
}

func isString(value gjson.Result) bool {
	return value.Type == gjson.String
}

func isObjectArray(value gjson.Result) bool {
	if !value.IsArray() {
		return false
	}
	ok := true
	value.ForEach(func(_, item gjson.Result) bool {
		ok = item.IsObject()
		return ok
	})
	return ok
}

func isInteger(value gjson.Result) bool {
	return value.Type == gjson.Number && value.Num == float64(int64(value.Num))
}
