package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SaiNageswarS/interview-boot/prompts"
	"google.golang.org/genai"
)

// GeminiClient is the hosted general-purpose fallback backend. A hosted API
// has no model lifecycle of its own, so health is a constant and LoadModel
// is a no-op.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) Name() string {
	return "gemini:" + c.model
}

func (c *GeminiClient) Health(ctx context.Context) HealthStatus {
	return HealthStatus{Reachable: true, ModelLoaded: true}
}

func (c *GeminiClient) LoadModel(ctx context.Context) error {
	return nil
}

func (c *GeminiClient) GenerateFirstQuestion(ctx context.Context, req FirstQuestionRequest) (*QuestionResponse, error) {
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

	raw, err := c.generate(ctx, systemPrompt, userPrompt, req.Temperature)
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

func (c *GeminiClient) GenerateFollowUp(ctx context.Context, req FollowUpRequest) (*FollowUpResponse, error) {
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

	raw, err := c.generate(ctx, systemPrompt, userPrompt, req.Temperature)
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

func (c *GeminiClient) EvaluateAnswer(ctx context.Context, req EvaluationRequest) (*EvaluationResponse, error) {
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

	raw, err := c.generate(ctx, systemPrompt, userPrompt, req.Temperature)
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

func (c *GeminiClient) BuildReport(ctx context.Context, req ReportRequest) (*ReportResponse, error) {
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

	raw, err := c.generate(ctx, systemPrompt, userPrompt, req.Temperature)
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

func (c *GeminiClient) generate(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(temperature)),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(userPrompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			builder.WriteString(part.Text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}
