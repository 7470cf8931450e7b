package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ScoreResult is the relevance score of a résumé against a job description.
type ScoreResult struct {
	Score          int    `json:"score"`
	Feedback       string `json:"feedback"`
	ChainOfThought string `json:"chain_of_thought"`
}

// UnmarshalJSON accepts the score as an integer, a float or a numeric string
// and clamps it to 0-100. A missing score is an error.
func (s *ScoreResult) UnmarshalJSON(data []byte) error {
	var aux struct {
		Score          json.RawMessage `json:"score"`
		Feedback       FlexString      `json:"feedback"`
		ChainOfThought FlexString      `json:"chain_of_thought"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	raw, err := scalarText(aux.Score)
	if err != nil {
		return fmt.Errorf("invalid score: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("score is missing")
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("score is not numeric: %q", raw)
	}

	score := int(math.Round(value))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	s.Score = score
	s.Feedback = string(aux.Feedback)
	s.ChainOfThought = string(aux.ChainOfThought)
	return nil
}

type MCQ struct {
	Question FlexString `json:"question"`
	Options  StringList `json:"options"`
	Answer   FlexString `json:"answer"`
}

type FillInTheBlank struct {
	Question FlexString `json:"question"`
	Answer   FlexString `json:"answer"`
}

// CodeCompletion holds a function stub. Answer is a reference implementation
// shown for information only; it is never compared against submissions.
type CodeCompletion struct {
	Question FlexString `json:"question"`
	Answer   FlexString `json:"answer"`
}

type Assessment struct {
	MCQs            []MCQ            `json:"mcqs"`
	FillInTheBlanks []FillInTheBlank `json:"fill_in_the_blanks"`
	CodeCompletion  []CodeCompletion `json:"code_completion"`
}

func (a *Assessment) TotalQuestions() int {
	return len(a.MCQs) + len(a.FillInTheBlanks) + len(a.CodeCompletion)
}

// AnswerSet holds candidate answers positionally per question category.
type AnswerSet struct {
	MCQs            []string `json:"mcqs"`
	FillInTheBlanks []string `json:"fill_in_the_blanks"`
	CodeCompletion  []string `json:"code_completion"`
}

type QuestionKind string

const (
	KindMCQ            QuestionKind = "mcq"
	KindFillInTheBlank QuestionKind = "fill_in_the_blank"
	KindCodeCompletion QuestionKind = "code_completion"
)

type QuestionVerdict struct {
	Kind     QuestionKind `json:"kind"`
	Number   int          `json:"number"`
	Correct  bool         `json:"correct"`
	Feedback string       `json:"feedback"`
}

type GradeResult struct {
	Verdicts []QuestionVerdict `json:"verdicts"`
	Score    int               `json:"score"`
	Total    int               `json:"total"`
	Passed   bool              `json:"passed"`
}

// Breakdown counts correct and total verdicts per question kind.
func (r *GradeResult) Breakdown() map[string]interface{} {
	out := map[string]interface{}{}
	for _, kind := range []QuestionKind{KindMCQ, KindFillInTheBlank, KindCodeCompletion} {
		correct, total := 0, 0
		for _, v := range r.Verdicts {
			if v.Kind != kind {
				continue
			}
			total++
			if v.Correct {
				correct++
			}
		}
		if total > 0 {
			out[string(kind)] = map[string]interface{}{"correct": correct, "total": total}
		}
	}
	return out
}

type MCQView struct {
	Number   int      `json:"number"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type QuestionView struct {
	Number   int    `json:"number"`
	Question string `json:"question"`
}

// AssessmentView is what the candidate sees: questions without expected answers.
type AssessmentView struct {
	MCQs            []MCQView      `json:"mcqs"`
	FillInTheBlanks []QuestionView `json:"fill_in_the_blanks"`
	CodeCompletion  []QuestionView `json:"code_completion"`
	Total           int            `json:"total"`
}

// View numbers questions continuously across categories, MCQs first.
func (a *Assessment) View() AssessmentView {
	view := AssessmentView{
		MCQs:            make([]MCQView, 0, len(a.MCQs)),
		FillInTheBlanks: make([]QuestionView, 0, len(a.FillInTheBlanks)),
		CodeCompletion:  make([]QuestionView, 0, len(a.CodeCompletion)),
		Total:           a.TotalQuestions(),
	}

	n := 0
	for _, q := range a.MCQs {
		n++
		options := make([]string, len(q.Options))
		copy(options, q.Options)
		view.MCQs = append(view.MCQs, MCQView{Number: n, Question: string(q.Question), Options: options})
	}
	for _, q := range a.FillInTheBlanks {
		n++
		view.FillInTheBlanks = append(view.FillInTheBlanks, QuestionView{Number: n, Question: string(q.Question)})
	}
	for _, q := range a.CodeCompletion {
		n++
		view.CodeCompletion = append(view.CodeCompletion, QuestionView{Number: n, Question: string(q.Question)})
	}

	return view
}

// StageFailure is the fixed-shape value rendered in place of a stage result
// whose model response could not be decoded.
type StageFailure struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func NewStageFailure(stage string) StageFailure {
	return StageFailure{OK: false, Error: stage + " failed"}
}
