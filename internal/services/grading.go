package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/text/unicode/norm"

	"alfredoptarigan/resume-screener/internal/models"
)

const (
	feedbackCorrect         = "Correct"
	feedbackNoAnswer        = "No answer provided."
	feedbackEvaluationError = "Evaluation failed"
)

type GradingService interface {
	Grade(ctx context.Context, assessment *models.Assessment, answers models.AnswerSet) *models.GradeResult
}

type gradingService struct {
	generator     TextGenerator
	promptBuilder *PromptBuilder
	passRatio     float64
}

func NewGradingService(generator TextGenerator, passRatio float64) GradingService {
	return &gradingService{
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		passRatio:     passRatio,
	}
}

type codeVerdict struct {
	Correct  bool   `json:"correct"`
	Feedback string `json:"feedback"`
}

// Grade produces one verdict per question, MCQs first, then fill-in-the-blanks,
// then code completions. It never fails: code answers that cannot be judged
// are marked incorrect.
func (g *gradingService) Grade(ctx context.Context, assessment *models.Assessment, answers models.AnswerSet) *models.GradeResult {
	result := &models.GradeResult{
		Verdicts: make([]models.QuestionVerdict, 0, assessment.TotalQuestions()),
	}

	add := func(v models.QuestionVerdict) {
		result.Total++
		if v.Correct {
			result.Score++
		}
		result.Verdicts = append(result.Verdicts, v)
	}

	for i, q := range assessment.MCQs {
		add(gradeLiteral(models.KindMCQ, i+1, answerAt(answers.MCQs, i), string(q.Answer)))
	}

	for i, q := range assessment.FillInTheBlanks {
		add(gradeLiteral(models.KindFillInTheBlank, i+1, answerAt(answers.FillInTheBlanks, i), string(q.Answer)))
	}

	for i, q := range assessment.CodeCompletion {
		add(g.gradeCode(ctx, i+1, string(q.Question), answerAt(answers.CodeCompletion, i)))
	}

	result.Passed = Passed(result.Score, result.Total, g.passRatio)

	log.Printf("🎓 Graded assessment: %d/%d (passed=%t)", result.Score, result.Total, result.Passed)
	return result
}

// Passed reports whether score reaches ratio of total.
func Passed(score, total int, ratio float64) bool {
	return float64(score) >= ratio*float64(total)
}

// MatchesAnswer compares trimmed, lowercased, NFC-normalised strings. MCQ and
// fill-in-the-blank answers are both graded this way.
func MatchesAnswer(given, expected string) bool {
	return normalizeAnswer(given) == normalizeAnswer(expected)
}

func normalizeAnswer(s string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(s)))
}

func gradeLiteral(kind models.QuestionKind, number int, given, expected string) models.QuestionVerdict {
	if MatchesAnswer(given, expected) {
		return models.QuestionVerdict{Kind: kind, Number: number, Correct: true, Feedback: feedbackCorrect}
	}

	return models.QuestionVerdict{
		Kind:     kind,
		Number:   number,
		Correct:  false,
		Feedback: fmt.Sprintf("Incorrect. Correct answer: %s", strings.TrimSpace(expected)),
	}
}

func (g *gradingService) gradeCode(ctx context.Context, number int, question, given string) models.QuestionVerdict {
	verdict := models.QuestionVerdict{Kind: models.KindCodeCompletion, Number: number}

	code := strings.TrimSpace(given)
	if code == "" {
		verdict.Feedback = feedbackNoAnswer
		return verdict
	}

	prompt := g.promptBuilder.BuildCodeGradingPrompt(question, code)
	response, err := g.generator.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("❌ Code question %d could not be evaluated: %v", number, err)
		verdict.Feedback = feedbackEvaluationError
		return verdict
	}

	var cv codeVerdict
	if err := ParseJSONResponse(response, &cv); err != nil {
		log.Printf("⚠️  Code question %d verdict unreadable: %v", number, err)
		verdict.Feedback = feedbackEvaluationError
		return verdict
	}

	verdict.Correct = cv.Correct
	verdict.Feedback = cv.Feedback
	return verdict
}

func answerAt(answers []string, i int) string {
	if i < len(answers) {
		return answers[i]
	}
	return ""
}
