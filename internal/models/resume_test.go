package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeProjects(t *testing.T) {
	tests := []struct {
		name     string
		projects []ProjectEntry
		want     string
	}{
		{name: "empty", projects: nil, want: ""},
		{
			name:     "plain text only",
			projects: []ProjectEntry{PlainProject("Chat app"), PlainProject("CLI tool")},
			want:     "Chat app CLI tool",
		},
		{
			name: "mixed entries keep field order",
			projects: []ProjectEntry{
				StructuredProject(
					ProjectField{Key: "title", Value: "Inventory API"},
					ProjectField{Key: "tech", Value: "Go, Postgres"},
				),
				PlainProject("Portfolio site"),
			},
			want: "Inventory API Go, Postgres Portfolio site",
		},
		{
			name:     "empty structured entry",
			projects: []ProjectEntry{StructuredProject(), PlainProject("x")},
			want:     " x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeProjects(tt.projects))
		})
	}
}

func TestProjectEntryDecodesHeterogeneousShapes(t *testing.T) {
	raw := `["Plain project", {"name": "Scraper", "year": 2023, "stack": ["Go", "Redis"]}, 42]`

	var projects []ProjectEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &projects))
	require.Len(t, projects, 3)

	assert.False(t, projects[0].IsStructured())
	assert.Equal(t, "Plain project", projects[0].Text)

	require.True(t, projects[1].IsStructured())
	assert.Equal(t, []ProjectField{
		{Key: "name", Value: "Scraper"},
		{Key: "year", Value: "2023"},
		{Key: "stack", Value: `["Go","Redis"]`},
	}, projects[1].Fields)

	assert.Equal(t, "42", projects[2].Text)
	assert.Equal(t, `Plain project Scraper 2023 ["Go","Redis"] 42`, NormalizeProjects(projects))
}

func TestProjectEntryMarshalPreservesShape(t *testing.T) {
	projects := []ProjectEntry{
		PlainProject("a"),
		StructuredProject(ProjectField{Key: "z", Value: "1"}, ProjectField{Key: "a", Value: "2"}),
	}

	out, err := json.Marshal(projects)
	require.NoError(t, err)
	assert.JSONEq(t, `["a", {"z": "1", "a": "2"}]`, string(out))
	assert.Equal(t, `["a",{"z":"1","a":"2"}]`, string(out))
}

func TestParsedResumeToleratesLooseTypes(t *testing.T) {
	raw := `{
		"name": "Ada",
		"contact": {"phone": 5551234, "email": "ada@example.com"},
		"education": [{"degree": "BSc", "institution": "UCL", "year": 2019}],
		"experience": [{"title": "Engineer", "company": "Acme", "duration": "2y", "responsibilities": "Built APIs"}],
		"skills": ["Go", "SQL"],
		"projects": [],
		"internships": [{"title": "Intern", "company": "Beta", "duration": "3m", "work": "Testing"}]
	}`

	var parsed ParsedResume
	require.NoError(t, json.Unmarshal([]byte(raw), &parsed))

	assert.Equal(t, FlexString("Ada"), parsed.Name)
	assert.Equal(t, FlexString("5551234"), parsed.Contact.Phone)
	assert.Equal(t, FlexString("2019"), parsed.Education[0].Year)
	assert.Equal(t, StringList{"Built APIs"}, parsed.Experience[0].Responsibilities)
	assert.Equal(t, StringList{"Go", "SQL"}, parsed.Skills)
	assert.Empty(t, parsed.Projects)
	assert.Equal(t, FlexString("Testing"), parsed.Internships[0].Work)
}

func TestParsedResumeAcceptsScalarEntries(t *testing.T) {
	raw := `{
		"name": "Jane Doe",
		"education": ["BSc CS, MIT, 2020", {"degree": "MSc", "institution": "ETH", "year": 2022}, null],
		"experience": ["Backend Engineer at Acme, 2 years", ["Go", "Kafka"]],
		"internships": [2019, {"title": "Intern", "company": "Beta"}]
	}`

	var parsed ParsedResume
	require.NoError(t, json.Unmarshal([]byte(raw), &parsed))

	assert.Equal(t, "Jane Doe", parsed.Name.String())

	require.Len(t, parsed.Education, 3)
	assert.Equal(t, Education{Degree: "BSc CS, MIT, 2020"}, parsed.Education[0])
	assert.Equal(t, Education{Degree: "MSc", Institution: "ETH", Year: "2022"}, parsed.Education[1])
	assert.Equal(t, Education{}, parsed.Education[2])

	require.Len(t, parsed.Experience, 2)
	assert.Equal(t, "Backend Engineer at Acme, 2 years", parsed.Experience[0].Title.String())
	assert.Empty(t, parsed.Experience[0].Company)
	assert.Equal(t, `["Go","Kafka"]`, parsed.Experience[1].Title.String())

	require.Len(t, parsed.Internships, 2)
	assert.Equal(t, Internship{Title: "2019"}, parsed.Internships[0])
	assert.Equal(t, Internship{Title: "Intern", Company: "Beta"}, parsed.Internships[1])
}

func TestParsedResumeMissingFields(t *testing.T) {
	var parsed ParsedResume
	require.NoError(t, json.Unmarshal([]byte(`{"name": ""}`), &parsed))

	assert.Empty(t, parsed.Skills)
	assert.Empty(t, parsed.Projects)
	assert.Empty(t, parsed.Internships)
}
