package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrNoJSON = errors.New("no JSON object found in completion")

// ExtractJSON pulls a JSON document out of a model completion. Clean JSON
// passes through untouched. Fence-wrapped output (```json ... ``` or
// ``` ... ```) is unwrapped, including the unclosed-fence case. As a last
// resort the text is scanned for the first balanced {...} or [...] so that
// JSON embedded in prose still parses.
func ExtractJSON(raw string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, ErrNoJSON
	}

	if json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed), nil
	}

	if unfenced := stripFences(trimmed); unfenced != "" && json.Valid([]byte(unfenced)) {
		return json.RawMessage(unfenced), nil
	}

	if scanned := scanBalanced(trimmed); scanned != "" {
		return json.RawMessage(scanned), nil
	}

	return nil, ErrNoJSON
}

// stripFences returns the text between the first fence marker and the next
// closing fence. With no closing fence, everything after the marker is used.
func stripFences(s string) string {
	marker := "```json"
	idx := strings.Index(s, marker)
	if idx < 0 {
		marker = "```"
		idx = strings.Index(s, marker)
	}
	if idx < 0 {
		return ""
	}

	rest := s[idx+len(marker):]
	if end := strings.Index(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

// scanBalanced finds the first balanced top-level JSON object or array,
// honoring string and escape state.
func scanBalanced(s string) string {
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		ch := s[i]

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
		case '{', '[':
			if !inString {
				depth++
			}
		case '}', ']':
			if !inString {
				depth--
				if depth == 0 {
					candidate := s[start : i+1]
					if json.Valid([]byte(candidate)) {
						return candidate
					}
					return ""
				}
			}
		}
	}
	return ""
}

// DecodeJSON extracts and unmarshals in one step.
func DecodeJSON(raw string, v interface{}) error {
	extracted, err := ExtractJSON(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(extracted, v)
}
