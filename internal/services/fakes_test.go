package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// stubGenerator answers prompts by matching a marker substring. Unmatched
// prompts fail with ErrGeneration.
type stubGenerator struct {
	mu      sync.Mutex
	replies []stubReply
	calls   []string
}

type stubReply struct {
	marker   string
	response string
	err      error
}

func (s *stubGenerator) on(marker, response string) *stubGenerator {
	s.replies = append(s.replies, stubReply{marker: marker, response: response})
	return s
}

func (s *stubGenerator) fail(marker string, err error) *stubGenerator {
	s.replies = append(s.replies, stubReply{marker: marker, err: err})
	return s
}

func (s *stubGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, prompt)
	for _, r := range s.replies {
		if strings.Contains(prompt, r.marker) {
			return r.response, r.err
		}
	}
	return "", fmt.Errorf("%w: no stub for prompt", ErrGeneration)
}

func (s *stubGenerator) callsContaining(marker string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, c := range s.calls {
		if strings.Contains(c, marker) {
			n++
		}
	}
	return n
}

// stubEmbedder returns a fixed-dimension vector derived from text length.
type stubEmbedder struct {
	err   error
	calls int
}

func (s *stubEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	v := make([]float32, EmbeddingDimension)
	v[0] = float32(len(text))
	return v, nil
}

const (
	markerExtraction = "AI Resume Parser"
	markerScoring    = "AI Resume Evaluator"
	markerAssessment = "generate relevant assessment questions"
	markerGrading    = "You are a coding evaluator"
)

const sampleAssessmentJSON = `{
  "mcqs": [
    {"question": "Which Go type is safe for concurrent map access?", "options": ["map", "sync.Map", "slice"], "answer": "sync.Map"},
    {"question": "What does defer do?", "options": ["Runs at return", "Runs immediately"], "answer": "Runs at return"},
    {"question": "Capital of France?", "options": ["Paris", "Rome"], "answer": "Paris"}
  ],
  "fill_in_the_blanks": [
    {"question": "A goroutine is started with the ___ keyword.", "answer": "go"},
    {"question": "Postgres default port is ___.", "answer": 5432}
  ],
  "code_completion": [
    {"question": "def evens(xs):\n    # TODO: Complete this function", "answer": "def evens(xs):\n    return [x for x in xs if x % 2 == 0]"},
    {"question": "def upper_names(rows):\n    # TODO: Complete this function", "answer": "def upper_names(rows):\n    return [r['name'].upper() for r in rows]"}
  ]
}`
