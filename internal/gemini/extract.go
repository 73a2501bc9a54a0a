package gemini

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON finds the first JSON object in response text, tolerating
// markdown code fences and surrounding prose. Returns "" if none found.
func ExtractJSON(text string) string {
	// Prefer a fenced block when present: the fence marks exactly what the
	// model intended as the payload.
	if fenced := extractFenced(text); fenced != "" {
		if candidate := braceMatch(fenced); candidate != "" {
			return candidate
		}
	}
	return braceMatch(text)
}

// DecodeObject extracts and unmarshals a JSON object from response text.
func DecodeObject(text string) (map[string]interface{}, error) {
	// Direct parse first: schema-enforced responses are bare JSON.
	var direct map[string]interface{}
	if err := json.Unmarshal([]byte(text), &direct); err == nil {
		return direct, nil
	}

	candidate := ExtractJSON(text)
	if candidate == "" {
		return nil, fmt.Errorf("no JSON object found in response")
	}
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return nil, fmt.Errorf("invalid JSON in response: %w", err)
	}
	return payload, nil
}

func extractFenced(text string) string {
	start := strings.Index(text, "```")
	if start == -1 {
		return ""
	}
	rest := text[start+3:]
	if strings.HasPrefix(rest, "json") {
		rest = rest[4:]
	}
	end := strings.Index(rest, "```")
	if end == -1 {
		return rest
	}
	return rest[:end]
}

// braceMatch returns the first balanced {...} span, respecting strings.
func braceMatch(text string) string {
	start := strings.Index(text, "{")
	if start == -1 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1]
				}
			}
		}
	}
	return ""
}
