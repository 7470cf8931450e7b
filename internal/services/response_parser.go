package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"alfredoptarigan/resume-screener/internal/models"
)

// ExtractJSONObject finds a top-level JSON object embedded in free-form model
// output. Leading and trailing prose is tolerated. Candidates are scanned left
// to right with brace depth and string escapes tracked, so braces inside string
// literals do not end an object early. Only top-level objects are
// candidates. The first candidate that decodes to a
// non-empty object wins; an empty "{}" is only returned when nothing else
// decodes.
func ExtractJSONObject(text string) (string, bool) {
	fallback := ""
	found := false

	for start := 0; start < len(text); {
		open := indexByteFrom(text, '{', start)
		if open < 0 {
			break
		}

		end, ok := scanObject(text, open)
		if !ok {
			// Unterminated object; a later '{' might still start a complete one.
			start = open + 1
			continue
		}

		candidate := text[open : end+1]
		var obj map[string]json.RawMessage
		if err := json.Unmarshal([]byte(candidate), &obj); err == nil {
			if len(obj) > 0 {
				return candidate, true
			}
			if !found {
				fallback = candidate
				found = true
			}
			start = end + 1
			continue
		}

		// Not valid JSON. Skip past it whole so an object nested inside is
		// never taken for the answer.
		start = end + 1
	}

	return fallback, found
}

// scanObject returns the index of the '}' that closes the object opened at
// text[open].
func scanObject(text string, open int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := open; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}

	return 0, false
}

func indexByteFrom(s string, c byte, from int) int {
	idx := strings.IndexByte(s[from:], c)
	if idx < 0 {
		return -1
	}
	return from + idx
}

// ParseJSONResponse decodes the embedded JSON object of a model response into
// target.
func ParseJSONResponse(response string, target interface{}) error {
	jsonStr, ok := ExtractJSONObject(response)
	if !ok {
		return fmt.Errorf("%w: no JSON object in response", ErrExtractionFormat)
	}

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("%w: failed to unmarshal JSON: %v", ErrExtractionFormat, err)
	}

	return nil
}

// DecodeOrFailure returns the decoded object, or the stage failure value when
// no object can be recovered.
func DecodeOrFailure(response, stage string) interface{} {
	var decoded map[string]interface{}
	if err := ParseJSONResponse(response, &decoded); err != nil {
		return models.NewStageFailure(stage)
	}
	return decoded
}
