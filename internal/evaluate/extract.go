package evaluate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"prompt-evaluator/internal/schemas"
)

var (
	ErrNoJSON           = errors.New("no JSON object found in response")
	ErrMalformedJSON    = errors.New("malformed JSON in response")
	ErrInvalidStructure = errors.New("invalid response structure")
)

// findJSONObject returns the first balanced {...} span in s. Quotes are only tracked once
// inside an object, so stray quotes in surrounding prose do not derail the scan, while braces
// inside JSON string values do not count toward depth.
func findJSONObject(s string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if depth > 0 {
			if escaped {
				escaped = false
				continue
			}
			if inString {
				switch ch {
				case '\\':
					escaped = true
				case '"':
					inString = false
				}
				continue
			}
			if ch == '"' {
				inString = true
				continue
			}
		}

		switch ch {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// Parse extracts the evaluation embedded in a model reply. The reply may wrap the JSON in
// prose or markdown fences.
func Parse(reply string) (*schemas.PromptEvaluation, error) {
	raw, ok := findJSONObject(reply)
	if !ok {
		return nil, ErrNoJSON
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	if err := requireKeys(fields, schemas.RequiredFields); err != nil {
		return nil, err
	}

	var scores map[string]json.RawMessage
	if err := json.Unmarshal(fields[schemas.FieldScores], &scores); err != nil {
		return nil, fmt.Errorf("%w: scores is not an object", ErrInvalidStructure)
	}
	if err := requireKeys(scores, schemas.Categories); err != nil {
		return nil, fmt.Errorf("scores: %w", err)
	}

	var evaluation schemas.PromptEvaluation
	if err := json.Unmarshal([]byte(raw), &evaluation); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return &evaluation, nil
}

// requireKeys treats an explicit null the same as an absent key.
func requireKeys(fields map[string]json.RawMessage, keys []string) error {
	var missing []string
	for _, k := range keys {
		v, ok := fields[k]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidStructure, strings.Join(missing, ", "))
	}
	return nil
}
