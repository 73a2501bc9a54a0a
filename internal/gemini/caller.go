// Package gemini implements the AI-call boundary: a thin client for the
// Gemini generateContent API with Google Search grounding, plus the
// declarative response-spec vocabulary the rest of the system uses to
// describe what a call must return.
//
// Everything above this package treats the model as an opaque function:
// prompt and spec in, decoded JSON payload (or error) out. The Caller
// interface exists so orchestration and scoring stay unit-testable with
// canned responses.
package gemini

import "context"

// Caller is the narrow interface the research orchestrator depends on.
// Implemented by *Client for production and by fakes in tests.
type Caller interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}

// Request describes a single generateContent call.
type Request struct {
	// System is the system instruction; empty for calls that carry all
	// context in the user prompt.
	System string

	// Prompt is the user-turn text.
	Prompt string

	// Grounding enables the google_search built-in tool. When set, response
	// schema enforcement is skipped: the API cannot combine built-in tools
	// with enforced schemas, so JSON is requested via the prompt and
	// recovered with ExtractJSON.
	Grounding bool

	// VideoURL, when non-empty, attaches the URL as a file_data part so the
	// model analyzes the video content directly (YouTube deep analysis).
	VideoURL string

	// Spec declares the expected response shape. Used for schema enforcement
	// when grounding is off; always available to the validator downstream.
	Spec *ResponseSpec

	// MaxOutputTokens overrides the client default when > 0.
	MaxOutputTokens int
}

// Result is a decoded generateContent response.
type Result struct {
	// Payload is the JSON object recovered from the model's text.
	Payload map[string]interface{}

	// Raw is the full response text before JSON extraction.
	Raw string

	// GroundingSources lists the web URLs the model consulted via Google
	// Search grounding, in response order.
	GroundingSources []string
}

// FieldKind is the declared type of a response field.
type FieldKind int

const (
	KindString FieldKind = iota
	KindNumber
	KindInteger
	KindArray
	KindObject
)

// FieldSpec declares one expected field of a response object.
type FieldSpec struct {
	Name     string
	Kind     FieldKind
	Required bool
}

// ResponseSpec declares the expected top-level shape of a response.
type ResponseSpec struct {
	Name   string
	Fields []FieldSpec
}

// Field returns the spec for name, or nil.
func (s *ResponseSpec) Field(name string) *FieldSpec {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

// JSONSchema renders the spec as a JSON schema object suitable for
// generationConfig.response_schema.
func (s *ResponseSpec) JSONSchema() map[string]interface{} {
	props := make(map[string]interface{}, len(s.Fields))
	var required []string
	for _, f := range s.Fields {
		props[f.Name] = map[string]interface{}{"type": kindName(f.Kind)}
		if f.Required {
			required = append(required, f.Name)
		}
	}
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func kindName(k FieldKind) string {
	switch k {
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "string"
	}
}
