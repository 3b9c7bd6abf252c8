package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// LocalModelClient talks to a self-hosted, fine-tuned interview model
// behind a small HTTP service. It is the cheapest and fastest backend, so
// the router prefers it for every capability.
type LocalModelClient struct {
	baseURL    string
	httpClient *http.Client
	model      string
}

func NewLocalModelClient(baseURL, model string) *LocalModelClient {
	return &LocalModelClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		model:      model,
	}
}

func (c *LocalModelClient) Name() string {
	return "local:" + c.model
}

type localFirstQuestionRequest struct {
	Role        string   `json:"role"`
	Level       string   `json:"level"`
	Skills      []string `json:"skills"`
	Language    string   `json:"language"`
	CVContext   string   `json:"cvContext,omitempty"`
	JDContext   string   `json:"jdContext,omitempty"`
	Temperature float64  `json:"temperature"`
}

type localQuestionResponse struct {
	Question string `json:"question"`
}

func (c *LocalModelClient) GenerateFirstQuestion(ctx context.Context, req FirstQuestionRequest) (*QuestionResponse, error) {
	payload := localFirstQuestionRequest{
		Role:        req.Role,
		Level:       req.Level,
		Skills:      req.Skills,
		Language:    req.Language,
		CVContext:   req.CVContext,
		JDContext:   req.JDContext,
		Temperature: req.Temperature,
	}

	var response localQuestionResponse
	if err := c.postJSON(ctx, "/generate-first", payload, &response); err != nil {
		return nil, err
	}

	return &QuestionResponse{Question: response.Question, Model: c.model}, nil
}

type localFollowUpRequest struct {
	Question     string         `json:"question"`
	Answer       string         `json:"answer"`
	History      []HistoryEntry `json:"history"`
	JobDomain    string         `json:"jobDomain"`
	Level        string         `json:"level"`
	Skills       []string       `json:"skills"`
	CurrentIndex int            `json:"currentIndex"`
	Total        int            `json:"total"`
	Difficulty   string         `json:"difficulty,omitempty"`
	Guidance     string         `json:"guidance,omitempty"`
	Temperature  float64        `json:"temperature"`
}

type localFollowUpResponse struct {
	Question     string `json:"question"`
	QuestionType string `json:"questionType"`
	Difficulty   string `json:"difficulty"`
}

func (c *LocalModelClient) GenerateFollowUp(ctx context.Context, req FollowUpRequest) (*FollowUpResponse, error) {
	payload := localFollowUpRequest{
		Question:     req.Question,
		Answer:       req.Answer,
		History:      req.History,
		JobDomain:    req.JobDomain,
		Level:        req.Level,
		Skills:       req.Skills,
		CurrentIndex: req.CurrentIndex,
		Total:        req.TotalQuestions,
		Difficulty:   req.Difficulty,
		Guidance:     req.Guidance,
		Temperature:  req.Temperature,
	}

	var response localFollowUpResponse
	if err := c.postJSON(ctx, "/generate-follow-up", payload, &response); err != nil {
		return nil, err
	}

	return &FollowUpResponse{
		Question:     response.Question,
		QuestionType: response.QuestionType,
		Difficulty:   response.Difficulty,
		Model:        c.model,
	}, nil
}

type localEvaluateRequest struct {
	Question    string  `json:"question"`
	Answer      string  `json:"answer"`
	Context     string  `json:"context,omitempty"`
	JobDomain   string  `json:"jobDomain"`
	Level       string  `json:"level"`
	Temperature float64 `json:"temperature"`
}

type localEvaluateResponse struct {
	Scores         map[string]float64 `json:"scores"`
	Feedback       string             `json:"feedback"`
	ImprovedAnswer string             `json:"improvedAnswer"`
}

func (c *LocalModelClient) EvaluateAnswer(ctx context.Context, req EvaluationRequest) (*EvaluationResponse, error) {
	payload := localEvaluateRequest{
		Question:    req.Question,
		Answer:      req.Answer,
		Context:     req.Context,
		JobDomain:   req.JobDomain,
		Level:       req.Level,
		Temperature: req.Temperature,
	}

	var response localEvaluateResponse
	if err := c.postJSON(ctx, "/evaluate", payload, &response); err != nil {
		return nil, err
	}

	// The fine-tuned service scores each criterion on 0-10.
	return &EvaluationResponse{
		Scores:         response.Scores,
		ScaleMax:       10,
		Feedback:       response.Feedback,
		ImprovedAnswer: response.ImprovedAnswer,
		Model:          c.model,
	}, nil
}

type localReportRequest struct {
	History       []HistoryEntry `json:"history"`
	JobDomain     string         `json:"jobDomain"`
	Level         string         `json:"level"`
	Skills        []string       `json:"skills"`
	CandidateInfo string         `json:"candidateInfo,omitempty"`
	Temperature   float64        `json:"temperature"`
}

type localReportResponse struct {
	Overview        string   `json:"overview"`
	Assessment      string   `json:"assessment"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
	Score           float64  `json:"score"`
}

func (c *LocalModelClient) BuildReport(ctx context.Context, req ReportRequest) (*ReportResponse, error) {
	payload := localReportRequest{
		History:       req.History,
		JobDomain:     req.JobDomain,
		Level:         req.Level,
		Skills:        req.Skills,
		CandidateInfo: req.CandidateInfo,
		Temperature:   req.Temperature,
	}

	var response localReportResponse
	if err := c.postJSON(ctx, "/report", payload, &response); err != nil {
		return nil, err
	}

	return &ReportResponse{
		Overview:        response.Overview,
		Assessment:      response.Assessment,
		Strengths:       response.Strengths,
		Weaknesses:      response.Weaknesses,
		Recommendations: response.Recommendations,
		Score:           response.Score,
		Model:           c.model,
	}, nil
}

type localHealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

func (c *LocalModelClient) Health(ctx context.Context) HealthStatus {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/health", nil)
	if err != nil {
		return HealthStatus{}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return HealthStatus{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return HealthStatus{}
	}

	var health localHealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return HealthStatus{}
	}

	return HealthStatus{
		Reachable:   strings.EqualFold(health.Status, "ok") || strings.EqualFold(health.Status, "healthy"),
		ModelLoaded: health.ModelLoaded,
	}
}

// LoadModel asks the service to pull its model into memory. The call is
// slow on cold starts, so callers pass a context with the load timeout.
func (c *LocalModelClient) LoadModel(ctx context.Context) error {
	return c.postJSON(ctx, "/load", struct {
		Model string `json:"model"`
	}{Model: c.model}, nil)
}

func (c *LocalModelClient) postJSON(ctx context.Context, path string, payload any, out any) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("error unmarshaling response: %w", err)
	}

	return nil
}
