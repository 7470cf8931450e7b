package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FlexString accepts a JSON string, number or boolean. Model output is not
// consistent about quoting scalar values such as years or short answers.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	text, err := scalarText(data)
	if err != nil {
		return err
	}
	*f = FlexString(text)
	return nil
}

func (f FlexString) String() string {
	return string(f)
}

// StringList accepts either a JSON array of scalars or a single scalar.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = nil
		return nil
	}

	if trimmed[0] != '[' {
		text, err := scalarText(trimmed)
		if err != nil {
			return err
		}
		if text == "" {
			*l = StringList{}
			return nil
		}
		*l = StringList{text}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}

	out := make(StringList, 0, len(raw))
	for _, item := range raw {
		text, err := scalarText(item)
		if err != nil {
			// Nested objects are kept as their compact JSON text.
			text = compactJSON(item)
		}
		out = append(out, text)
	}
	*l = out
	return nil
}

// looseEntry reports whether data is something other than a JSON object and,
// if so, the text it carries. Arrays keep their compact JSON text.
func looseEntry(data []byte) (text string, loose bool, err error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 {
		switch trimmed[0] {
		case '{':
			return "", false, nil
		case '[':
			return compactJSON(trimmed), true, nil
		}
	}
	text, err = scalarText(trimmed)
	return text, true, err
}

func scalarText(data []byte) (string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	case '{', '[':
		return "", fmt.Errorf("expected scalar, got %s", string(trimmed[:1]))
	default:
		// number or boolean literal
		var v interface{}
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return "", err
		}
		return string(trimmed), nil
	}
}

func compactJSON(data []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return strings.TrimSpace(string(data))
	}
	return buf.String()
}
