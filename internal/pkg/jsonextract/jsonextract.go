// Package jsonextract pulls a JSON object out of free-form model output.
// Judges are text-completion services, not structured APIs, and routinely
// wrap JSON in commentary or markdown fences.
package jsonextract

import (
	"encoding/json"
	"regexp"
	"strings"
)

type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return "jsonextract: " + e.Message
}

var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// Extract locates the first parseable JSON object in raw. Attempts, in
// order: the text verbatim, a fenced code block, and the span between the
// first '{' and the last '}'.
func Extract(raw string) (json.RawMessage, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, &ParseError{Message: "empty input"}
	}

	if json.Valid([]byte(text)) {
		return json.RawMessage(text), nil
	}

	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		candidate := strings.TrimSpace(m[1])
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), nil
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		candidate := text[start : end+1]
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), nil
		}
	}

	return nil, &ParseError{Message: "could not extract valid JSON from response"}
}

// Unmarshal extracts a JSON object from raw and decodes it into v.
func Unmarshal(raw string, v any) error {
	data, err := Extract(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
