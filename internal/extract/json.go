package extract

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoJSONObject is returned when the text holds no recoverable JSON object.
var ErrNoJSONObject = errors.New("no valid JSON object found")

// FirstJSONObject finds the first balanced top-level {...} span in text and
// returns it if it parses as JSON. Braces inside string literals are ignored,
// and a backslash inside a string escapes exactly the next character.
//
// When no balanced span exists the whole text is tried as a JSON object, which
// covers model output that is pure JSON.
func FirstJSONObject(text string) (string, error) {
	inString := false
	escapePending := false
	depth := 0
	start := -1

	for i := 0; i < len(text); i++ {
		ch := text[i]

		if inString {
			switch {
			case escapePending:
				escapePending = false
			case ch == '\\':
				escapePending = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
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
			if depth == 0 && start != -1 {
				candidate := text[start : i+1]
				var probe json.RawMessage
				if err := json.Unmarshal([]byte(candidate), &probe); err != nil {
					return "", fmt.Errorf("%w: first candidate at offset %d: %v", ErrNoJSONObject, start, err)
				}
				return candidate, nil
			}
		}
	}

	if isJSONObject(text) {
		return text, nil
	}
	return "", ErrNoJSONObject
}

func isJSONObject(text string) bool {
	var obj map[string]json.RawMessage
	return json.Unmarshal([]byte(text), &obj) == nil && obj != nil
}
