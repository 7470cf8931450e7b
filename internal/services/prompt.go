package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"alfredoptarigan/resume-screener/internal/models"
)

// CodeCompletionMarker is the comment every generated code stub carries where
// the candidate's implementation goes.
const CodeCompletionMarker = "# TODO: Complete this function"

const jsonOnlyInstruction = "Return only JSON. Do not include explanations, markdown, or text before or after the JSON object."

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildExtractionPrompt asks for the structured résumé fields. similarContext is
// text of similar résumés seen earlier and may be empty.
func (pb *PromptBuilder) BuildExtractionPrompt(resumeText, similarContext string) string {
	return fmt.Sprintf(`You are an AI Resume Parser. Extract the following fields in JSON format:
{
    "name": "",
    "contact": {"phone": "", "email": ""},
    "education": [{"degree": "", "institution": "", "year": ""}],
    "experience": [{"title": "", "company": "", "duration": "", "responsibilities": [""]}],
    "skills": ["skill1", "skill2"],
    "projects": ["project1", "project2"],
    "internships": [
        {
            "title": "",
            "company": "",
            "duration": "",
            "work": ""
        }
    ]
}

Every field above must be present in your answer. If the resume does not mention a field, use an empty string or an empty list for it.

Resume:
%s

Context from similar resumes:
%s

%s`, resumeText, similarContext, jsonOnlyInstruction)
}

// BuildScoringPrompt asks for a 0-100 relevance score against a job description.
func (pb *PromptBuilder) BuildScoringPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`You are an AI Resume Evaluator.

Evaluate the resume below against the given job description and provide:
- A relevance score (0-100).
- A brief feedback summary.
- A chain-of-thought explanation explaining how you arrived at the score, comparing skills, experience, and relevance.

Return only JSON in this format:
{
    "score": integer,
    "feedback": "short comment",
    "chain_of_thought": "step-by-step reasoning"
}

Job Description:
%s

Resume:
%s

%s`, jobDescription, resumeText, jsonOnlyInstruction)
}

// BuildAssessmentPrompt asks for 3 MCQs, 2 fill-in-the-blanks and 2 code
// completion stubs grounded in the candidate's résumé.
func (pb *PromptBuilder) BuildAssessmentPrompt(skills []string, projectsText string, internships []models.Internship) string {
	return fmt.Sprintf(`You are an AI resume parser and verifier designed to analyze job applicants' resumes and assess their fit for specific job descriptions. Your task is to generate relevant assessment questions based on the following parsed data.

Resume Information:
Skills: %s
Projects: %s
Internships: %s

Generate an assessment containing exactly:
- 3 conceptual multiple-choice questions (MCQs) based on the candidate's skills.
- 2 fill-in-the-blank questions (each with exactly one blank written as ___) based on technology terms or usage from the candidate's projects or internship experience.
- 2 partial code completion questions that require the candidate to complete an entire function.

Question guidelines:
- Ensure MCQs include conceptual traps or scenario-based options. The "answer" must be copied verbatim from "options".
- Ensure fill-in-the-blanks use technical usage in context, not definitions alone.
- Generate new fill-in-the-blank questions every time, based on the projects and skills only. Do not reuse templates.
- Ensure code completions use compound logic (loop + condition + transformation).
- Generate new code completion questions every time, based on the projects and skills only.
- The level of the questions should be intermediate to hard.
- Use edge cases, realistic workplace scenarios, and knowledge of advanced tools/concepts in the candidate's field.

Partial Code Completion Guidelines:
- Do NOT format as fill-in-the-blanks.
- Present a function header and description with a comment like "%s".
- Ensure the candidate must implement meaningful intermediate-level logic.
- Focus on concepts like loops, string/list manipulation, simple algorithms, filtering, or working with mock data/APIs.
- Use information from the candidate's resume (skills, projects, internships) to inspire the function's purpose.
- Variable names and function names may vary; the answer will be validated based on logical structure, not syntax.

Return the output in the following JSON structure:
{
    "mcqs": [
        {
            "question": "...",
            "options": ["..."],
            "answer": "..."
        }
    ],
    "fill_in_the_blanks": [
        {
            "question": "... ___ ...",
            "answer": "..."
        }
    ],
    "code_completion": [
        {
            "question": "def function_name(...):\n    %s",
            "answer": "def function_name(...):\n    line1\n    line2\n    line3\n    line4"
        }
    ]
}

%s`,
		toJSONText(skills),
		projectsText,
		toJSONText(internships),
		CodeCompletionMarker,
		CodeCompletionMarker,
		jsonOnlyInstruction)
}

// BuildCodeGradingPrompt asks for a logical-correctness verdict on a
// candidate's code.
func (pb *PromptBuilder) BuildCodeGradingPrompt(questionCode, userCode string) string {
	return fmt.Sprintf(`You are a coding evaluator.

A candidate was asked to complete the following function:

Question:
%s

Their response:
%s

Evaluate the candidate's code only for logical correctness. Ignore variable names, spacing, and formatting.
Return only one of the following JSON outputs:

{
  "correct": true,
  "feedback": "Brief explanation of why the logic is correct"
}

OR

{
  "correct": false,
  "feedback": "Brief explanation of the mistake"
}

%s`, questionCode, userCode, jsonOnlyInstruction)
}

func toJSONText(v interface{}) string {
	out, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	text := string(out)
	if text == "null" {
		return "[]"
	}
	return strings.TrimSpace(text)
}
