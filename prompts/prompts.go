package prompts

import (
	"bytes"
	"embed"
	"text/template"
)

//go:embed templates/*
var templatesFS embed.FS

// HistoryPair is one prior question/answer exchange rendered into prompts.
type HistoryPair struct {
	Question string
	Answer   string
}

type FirstQuestionPromptData struct {
	Role      string
	Level     string
	Skills    []string
	Language  string
	CVContext string
	JDContext string
}

type FollowUpPromptData struct {
	Question       string
	Answer         string
	History        []HistoryPair
	JobDomain      string
	Level          string
	Skills         []string
	CurrentIndex   int
	TotalQuestions int
	Difficulty     string
	Guidance       string
}

type EvaluationPromptData struct {
	Question  string
	Answer    string
	Context   string
	JobDomain string
	Level     string
}

type ReportPromptData struct {
	History       []HistoryPair
	JobDomain     string
	Level         string
	Skills        []string
	CandidateInfo string
}

// RenderFirstQuestionPrompt renders the opening-question prompt pair.
func RenderFirstQuestionPrompt(data FirstQuestionPromptData) (systemPrompt, userPrompt string, err error) {
	return renderPair("first_question", data)
}

// RenderFollowUpPrompt renders the next-question prompt pair, including the
// phase/difficulty directive computed by the strategy engine.
func RenderFollowUpPrompt(data FollowUpPromptData) (systemPrompt, userPrompt string, err error) {
	return renderPair("follow_up", data)
}

// RenderEvaluationPrompt renders the answer-scoring prompt pair.
func RenderEvaluationPrompt(data EvaluationPromptData) (systemPrompt, userPrompt string, err error) {
	return renderPair("evaluation", data)
}

// RenderReportPrompt renders the final-report prompt pair.
func RenderReportPrompt(data ReportPromptData) (systemPrompt, userPrompt string, err error) {
	return renderPair("report", data)
}

func renderPair(name string, data any) (string, string, error) {
	systemPrompt, err := render(name+"_system.md", data)
	if err != nil {
		return "", "", err
	}

	userPrompt, err := render(name+"_user.md", data)
	if err != nil {
		return "", "", err
	}

	return systemPrompt, userPrompt, nil
}

func render(file string, data any) (string, error) {
	content, err := templatesFS.ReadFile("templates/" + file)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(file).Parse(string(content))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
