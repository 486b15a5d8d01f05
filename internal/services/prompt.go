package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/interview-prep/internal/models"
)

// voiceSafetyRule is appended to every prompt whose output is read aloud
// by the voice agent.
const voiceSafetyRule = `The questions and answers will be read by a voice assistant, so do not use special characters such as / or * or # or backticks or markdown formatting.`

const openEndedFormat = `[{"question": "Question 1", "answer": "Answer 1"}, {"question": "Question 2", "answer": "Answer 2"}]`

const multipleChoiceFormat = `[{"question": "Question 1", "options": ["Option A", "Option B", "Option C", "Option D"], "correctAnswer": "Option A"}, {"question": "Question 2", "options": ["Option A", "Option B", "Option C", "Option D"], "correctAnswer": "Option B"}]`

// FeedbackCategories are the only categories a transcript is scored on.
var FeedbackCategories = []string{
	"Communication Skills",
	"Technical Knowledge",
	"Problem-Solving",
	"Cultural & Role Fit",
	"Confidence & Clarity",
}

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildOpenEndedPrompt creates the open-ended Q&A prompt for the job-parameter flow
func (pb *PromptBuilder) BuildOpenEndedPrompt(req models.ParameterRequest) string {
	return fmt.Sprintf(`Prepare questions and answers for a job interview.
The job role is %s.
The job experience level is %s.
The tech stack used in the job is: %s.
The focus between behavioural and technical questions should lean towards: %s.
Generate exactly %d open-ended questions, each with a model answer.

Return ONLY the questions and answers as a JSON array of objects with the fields "question" and "answer", with no additional text, explanations, or code fences:
%s

%s`,
		req.Role, req.Level, strings.Join(req.TechStack, ", "), req.Focus, req.QuestionCount,
		openEndedFormat, voiceSafetyRule)
}

// BuildMultipleChoicePrompt creates the MCQ prompt for the job-parameter flow
func (pb *PromptBuilder) BuildMultipleChoicePrompt(req models.ParameterRequest, count int) string {
	return fmt.Sprintf(`Prepare multiple-choice questions (MCQs) for a mock job interview.
The job role is %s.
The job experience level is %s.
The tech stack used in the job is: %s.
The focus between behavioural and technical questions should lean towards: %s.
Generate exactly %d multiple-choice questions. Each question has exactly 4 distinct options and the correctAnswer must be copied verbatim from its options.

Return ONLY the questions as a JSON array of objects with the fields "question", "options" and "correctAnswer", with no additional text, explanations, or code fences:
%s

%s
Ensure exactly %d questions are generated.`,
		req.Role, req.Level, strings.Join(req.TechStack, ", "), req.Focus, count,
		multipleChoiceFormat, voiceSafetyRule, count)
}

// BuildResumeOpenEndedPrompt creates the open-ended Q&A prompt for the résumé flow
func (pb *PromptBuilder) BuildResumeOpenEndedPrompt(resumeText string, count int) string {
	return fmt.Sprintf(`Based on the following resume text, prepare questions and answers for a job interview.

RESUME TEXT:
%s

Generate exactly %d open-ended questions relevant to the candidate's experience, skills, or projects mentioned in the resume, each with a model answer.

Return ONLY the questions and answers as a JSON array of objects with the fields "question" and "answer", with no additional text, explanations, or code fences:
%s

%s`,
		resumeText, count, openEndedFormat, voiceSafetyRule)
}

// BuildResumeMultipleChoicePrompt creates the MCQ prompt for the résumé flow
func (pb *PromptBuilder) BuildResumeMultipleChoicePrompt(resumeText string, count int) string {
	return fmt.Sprintf(`Based on the following resume text, prepare %d multiple-choice questions (MCQs) for a mock job interview.

RESUME TEXT:
%s

Focus on technical questions related to the skills, technologies, or projects mentioned in the resume. Each question has exactly 4 distinct options and the correctAnswer must be copied verbatim from its options.

Return ONLY the questions as a JSON array of objects with the fields "question", "options" and "correctAnswer", with no additional text, explanations, or code fences:
%s

%s
Ensure exactly %d questions are generated.`,
		count, resumeText, multipleChoiceFormat, voiceSafetyRule, count)
}

// BuildInterviewerScript renders the question list handed to the voice agent.
func (pb *PromptBuilder) BuildInterviewerScript(questions []string) string {
	lines := make([]string, 0, len(questions))
	for _, q := range questions {
		lines = append(lines, "- "+q)
	}
	return strings.Join(lines, "\n")
}

// BuildFeedbackPrompt creates the transcript scoring prompt
func (pb *PromptBuilder) BuildFeedbackPrompt(transcript []models.TranscriptLine) string {
	var formatted strings.Builder
	for _, line := range transcript {
		formatted.WriteString(fmt.Sprintf("- %s: %s\n", line.Role, line.Content))
	}

	categories := make([]string, 0, len(FeedbackCategories))
	for _, c := range FeedbackCategories {
		categories = append(categories, fmt.Sprintf(`{"name": "%s", "score": <0-100>, "comment": "<one or two sentences>"}`, c))
	}

	return fmt.Sprintf(`You are an AI interviewer analyzing a mock interview. Your task is to evaluate the candidate based on structured categories. Be thorough and detailed in your analysis. Don't be lenient with the candidate. If there are mistakes or areas for improvement, point them out.

TRANSCRIPT:
%s
Score the candidate from 0 to 100 in the following areas. Do not add categories other than the ones provided:
- Communication Skills: Clarity, articulation, structured responses.
- Technical Knowledge: Understanding of key concepts for the role.
- Problem-Solving: Ability to analyze problems and propose solutions.
- Cultural & Role Fit: Alignment with company values and job role.
- Confidence & Clarity: Confidence in responses, engagement, and clarity.

Return your response in the following JSON format:
{
  "totalScore": <0-100>,
  "categoryScores": [%s],
  "strengths": ["<strength>", ...],
  "areasForImprovement": ["<area>", ...],
  "finalAssessment": "<3-5 sentences>"
}`,
		formatted.String(), strings.Join(categories, ", "))
}

// BuildIndexText is the text embedded for the similar-interview index.
func (pb *PromptBuilder) BuildIndexText(interview *models.Interview) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s interview for a %s %s role.\n", interview.Type, interview.Level, interview.Role))
	if len(interview.TechStack) > 0 {
		b.WriteString("Tech stack: " + strings.Join(interview.TechStack, ", ") + "\n")
	}
	for _, q := range interview.Questions {
		b.WriteString(q.Question + "\n")
	}
	return b.String()
}
