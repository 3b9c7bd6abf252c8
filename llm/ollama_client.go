package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SaiNageswarS/interview-boot/prompts"
	"github.com/ollama/ollama/api"
)

// OllamaClient runs interview capabilities against a locally hosted ollama
// model. It sits between the fine-tuned local service and the hosted APIs
// in the router's preference order.
type OllamaClient struct {
	client *api.Client
	model  string
}

func NewOllamaClient(client *api.Client, model string) *OllamaClient {
	return &OllamaClient{client: client, model: model}
}

func (c *OllamaClient) Name() string {
	return "ollama:" + c.model
}

func (c *OllamaClient) Health(ctx context.Context) HealthStatus {
	if err := c.client.Heartbeat(ctx); err != nil {
		return HealthStatus{}
	}

	running, err := c.client.ListRunning(ctx)
	if err != nil {
		return HealthStatus{Reachable: true}
	}

	for _, m := range running.Models {
		if m.Name == c.model || m.Model == c.model {
			return HealthStatus{Reachable: true, ModelLoaded: true}
		}
	}

	return HealthStatus{Reachable: true}
}

// LoadModel issues an empty generate call, which pulls the model into
// memory and keeps it warm.
func (c *OllamaClient) LoadModel(ctx context.Context) error {
	req := &api.GenerateRequest{
		Model:     c.model,
		KeepAlive: &api.Duration{Duration: 10 * time.Minute},
	}

	return c.client.Generate(ctx, req, func(api.GenerateResponse) error { return nil })
}

func (c *OllamaClient) GenerateFirstQuestion(ctx context.Context, req FirstQuestionRequest) (*QuestionResponse, error) {
	systemPrompt, userPrompt, err := prompts.RenderFirstQuestionPrompt(prompts.FirstQuestionPromptData{
		Role:      req.Role,
		Level:     req.Level,
		Skills:    req.Skills,
		Language:  req.Language,
		CVContext: req.CVContext,
		JDContext: req.JDContext,
	})
	if err != nil {
		return nil, fmt.Errorf("error rendering first question prompt: %w", err)
	}

	raw, err := c.chat(ctx, systemPrompt, userPrompt, req.Temperature)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Question string `json:"question"`
	}
	if err := DecodeModelJSON(raw, &parsed); err != nil {
		return nil, err
	}

	return &QuestionResponse{Question: parsed.Question, Model: c.model}, nil
}

func (c *OllamaClient) GenerateFollowUp(ctx context.Context, req FollowUpRequest) (*FollowUpResponse, error) {
	systemPrompt, userPrompt, err := prompts.RenderFollowUpPrompt(prompts.FollowUpPromptData{
		Question:       req.Question,
		Answer:         req.Answer,
		History:        toHistoryPairs(req.History),
		JobDomain:      req.JobDomain,
		Level:          req.Level,
		Skills:         req.Skills,
		CurrentIndex:   req.CurrentIndex,
		TotalQuestions: req.TotalQuestions,
		Difficulty:     req.Difficulty,
		Guidance:       req.Guidance,
	})
	if err != nil {
		return nil, fmt.Errorf("error rendering follow-up prompt: %w", err)
	}

	raw, err := c.chat(ctx, systemPrompt, userPrompt, req.Temperature)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Question     string `json:"question"`
		QuestionType string `json:"questionType"`
		Difficulty   string `json:"difficulty"`
	}
	if err := DecodeModelJSON(raw, &parsed); err != nil {
		return nil, err
	}

	return &FollowUpResponse{
		Question:     parsed.Question,
		QuestionType: parsed.QuestionType,
		Difficulty:   parsed.Difficulty,
		Model:        c.model,
	}, nil
}

func (c *OllamaClient) EvaluateAnswer(ctx context.Context, req EvaluationRequest) (*EvaluationResponse, error) {
	systemPrompt, userPrompt, err := prompts.RenderEvaluationPrompt(prompts.EvaluationPromptData{
		Question:  req.Question,
		Answer:    req.Answer,
		Context:   req.Context,
		JobDomain: req.JobDomain,
		Level:     req.Level,
	})
	if err != nil {
		return nil, fmt.Errorf("error rendering evaluation prompt: %w", err)
	}

	raw, err := c.chat(ctx, systemPrompt, userPrompt, req.Temperature)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Scores         map[string]float64 `json:"scores"`
		Feedback       string             `json:"feedback"`
		ImprovedAnswer string             `json:"improvedAnswer"`
	}
	if err := DecodeModelJSON(raw, &parsed); err != nil {
		return nil, err
	}

	return &EvaluationResponse{
		Scores:         parsed.Scores,
		ScaleMax:       10,
		Feedback:       parsed.Feedback,
		ImprovedAnswer: parsed.ImprovedAnswer,
		Model:          c.model,
	}, nil
}

func (c *OllamaClient) BuildReport(ctx context.Context, req ReportRequest) (*ReportResponse, error) {
	systemPrompt, userPrompt, err := prompts.RenderReportPrompt(prompts.ReportPromptData{
		History:       toHistoryPairs(req.History),
		JobDomain:     req.JobDomain,
		Level:         req.Level,
		Skills:        req.Skills,
		CandidateInfo: req.CandidateInfo,
	})
	if err != nil {
		return nil, fmt.Errorf("error rendering report prompt: %w", err)
	}

	raw, err := c.chat(ctx, systemPrompt, userPrompt, req.Temperature)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Overview        string   `json:"overview"`
		Assessment      string   `json:"assessment"`
		Strengths       []string `json:"strengths"`
		Weaknesses      []string `json:"weaknesses"`
		Recommendations []string `json:"recommendations"`
		Score           float64  `json:"score"`
	}
	if err := DecodeModelJSON(raw, &parsed); err != nil {
		return nil, err
	}

	return &ReportResponse{
		Overview:        parsed.Overview,
		Assessment:      parsed.Assessment,
		Strengths:       parsed.Strengths,
		Weaknesses:      parsed.Weaknesses,
		Recommendations: parsed.Recommendations,
		Score:           parsed.Score,
		Model:           c.model,
	}, nil
}

func (c *OllamaClient) chat(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error) {
	stream := false
	req := &api.ChatRequest{
		Model: c.model,
		Messages: []api.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Stream:  &stream,
		Options: map[string]any{"temperature": temperature},
	}

	var response strings.Builder
	err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		response.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat failed: %w", err)
	}

	return response.String(), nil
}

func toHistoryPairs(history []HistoryEntry) []prompts.HistoryPair {
	pairs := make([]prompts.HistoryPair, len(history))
	for i, h := range history {
		pairs[i] = prompts.HistoryPair{Question: h.Question, Answer: h.Answer}
	}
	return pairs
}
