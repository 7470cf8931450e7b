package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type Contact struct {
	Phone FlexString `json:"phone"`
	Email FlexString `json:"email"`
}

type Education struct {
	Degree      FlexString `json:"degree"`
	Institution FlexString `json:"institution"`
	Year        FlexString `json:"year"`
}

type Experience struct {
	Title            FlexString `json:"title"`
	Company          FlexString `json:"company"`
	Duration         FlexString `json:"duration"`
	Responsibilities StringList `json:"responsibilities"`
}

type Internship struct {
	Title    FlexString `json:"title"`
	Company  FlexString `json:"company"`
	Duration FlexString `json:"duration"`
	Work     FlexString `json:"work"`
}

// Education, Experience and Internship entries sometimes arrive as a bare
// string such as "BSc CS, MIT, 2020". The text is kept in the first field
// instead of failing the whole résumé.

func (e *Education) UnmarshalJSON(data []byte) error {
	text, loose, err := looseEntry(data)
	if err != nil || loose {
		*e = Education{Degree: FlexString(text)}
		return err
	}
	type plain Education
	return json.Unmarshal(data, (*plain)(e))
}

func (e *Experience) UnmarshalJSON(data []byte) error {
	text, loose, err := looseEntry(data)
	if err != nil || loose {
		*e = Experience{Title: FlexString(text)}
		return err
	}
	type plain Experience
	return json.Unmarshal(data, (*plain)(e))
}

func (i *Internship) UnmarshalJSON(data []byte) error {
	text, loose, err := looseEntry(data)
	if err != nil || loose {
		*i = Internship{Title: FlexString(text)}
		return err
	}
	type plain Internship
	return json.Unmarshal(data, (*plain)(i))
}

// ParsedResume is the structured view of a résumé returned by the extraction
// prompt. Every field is best effort and may be empty.
type ParsedResume struct {
	Name        FlexString     `json:"name"`
	Contact     Contact        `json:"contact"`
	Education   []Education    `json:"education"`
	Experience  []Experience   `json:"experience"`
	Skills      StringList     `json:"skills"`
	Projects    []ProjectEntry `json:"projects"`
	Internships []Internship   `json:"internships"`
}

// ProjectField is one key/value pair of a structured project entry.
type ProjectField struct {
	Key   string
	Value string
}

// ProjectEntry is either plain text or a structured set of fields. Fields is
// nil for plain text entries.
type ProjectEntry struct {
	Text   string
	Fields []ProjectField
}

func PlainProject(text string) ProjectEntry {
	return ProjectEntry{Text: text}
}

func StructuredProject(fields ...ProjectField) ProjectEntry {
	if fields == nil {
		fields = []ProjectField{}
	}
	return ProjectEntry{Fields: fields}
}

func (p ProjectEntry) IsStructured() bool {
	return p.Fields != nil
}

// FlatText renders the entry as one line. Structured entries join their
// values in document order.
func (p ProjectEntry) FlatText() string {
	if !p.IsStructured() {
		return p.Text
	}

	values := make([]string, 0, len(p.Fields))
	for _, f := range p.Fields {
		values = append(values, f.Value)
	}
	return strings.Join(values, " ")
}

func (p *ProjectEntry) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*p = ProjectEntry{}
		return nil
	}

	switch trimmed[0] {
	case '{':
		fields, err := decodeOrderedFields(trimmed)
		if err != nil {
			return fmt.Errorf("failed to decode project fields: %w", err)
		}
		*p = StructuredProject(fields...)
	case '[':
		*p = PlainProject(compactJSON(trimmed))
	default:
		text, err := scalarText(trimmed)
		if err != nil {
			return err
		}
		*p = PlainProject(text)
	}
	return nil
}

func (p ProjectEntry) MarshalJSON() ([]byte, error) {
	if !p.IsStructured() {
		return json.Marshal(p.Text)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range p.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func decodeOrderedFields(data []byte) ([]ProjectField, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	fields := []ProjectField{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key token %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}

		value, err := scalarText(raw)
		if err != nil {
			value = compactJSON(raw)
		}
		fields = append(fields, ProjectField{Key: key, Value: value})
	}

	return fields, nil
}

// NormalizeProjects flattens heterogeneous project entries into one string,
// entries separated by a single space.
func NormalizeProjects(projects []ProjectEntry) string {
	parts := make([]string, 0, len(projects))
	for _, p := range projects {
		parts = append(parts, p.FlatText())
	}
	return strings.Join(parts, " ")
}
