package llm

import (
	"context"
)

// HealthStatus is the result of a provider liveness probe. Probes never
// fail with an error: an unreachable backend is simply not Reachable.
type HealthStatus struct {
	Reachable   bool
	ModelLoaded bool
}

// HistoryEntry is one question/answer exchange passed as generation context.
type HistoryEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FirstQuestionRequest struct {
	Role        string
	Level       string
	Skills      []string
	Language    string
	CVContext   string
	JDContext   string
	Temperature float64
}

type QuestionResponse struct {
	Question string
	Model    string
}

type FollowUpRequest struct {
	Question       string
	Answer         string
	History        []HistoryEntry
	JobDomain      string
	Level          string
	Skills         []string
	CurrentIndex   int
	TotalQuestions int
	// Difficulty and Guidance carry the strategy directive into the prompt.
	Difficulty  string
	Guidance    string
	Temperature float64
}

type FollowUpResponse struct {
	Question     string
	QuestionType string
	Difficulty   string
	Model        string
}

type EvaluationRequest struct {
	Question    string
	Answer      string
	Context     string
	JobDomain   string
	Level       string
	Skills      []string
	Temperature float64
}

// EvaluationResponse carries per-criterion scores on the provider's native
// scale. ScaleMax tells the evaluation pipeline how to normalize them.
type EvaluationResponse struct {
	Scores         map[string]float64
	ScaleMax       float64
	Feedback       string
	ImprovedAnswer string
	Model          string
}

type ReportRequest struct {
	History       []HistoryEntry
	JobDomain     string
	Level         string
	Skills        []string
	CandidateInfo string
	Temperature   float64

	// FeedbackScores are the normalized 0-1 final scores already persisted
	// for this session's answers. Providers ignore them; the deterministic
	// report fallback aggregates them when every backend is down.
	FeedbackScores []float64
}

type ReportResponse struct {
	Overview        string
	Assessment      string
	Strengths       []string
	Weaknesses      []string
	Recommendations []string
	Score           float64
	Model           string
}

// ProviderClient is a thin adapter around one AI backend. Implementations
// are designed for dependency injection into the router; every capability
// call must honor ctx cancellation.
type ProviderClient interface {
	GenerateFirstQuestion(ctx context.Context, req FirstQuestionRequest) (*QuestionResponse, error)
	GenerateFollowUp(ctx context.Context, req FollowUpRequest) (*FollowUpResponse, error)
	EvaluateAnswer(ctx context.Context, req EvaluationRequest) (*EvaluationResponse, error)
	BuildReport(ctx context.Context, req ReportRequest) (*ReportResponse, error)

	// Health probes the backend. Failures are reported as a zero status,
	// never as an error.
	Health(ctx context.Context) HealthStatus

	// LoadModel asks the backend to load its model into memory. Only
	// meaningful for self-hosted backends; hosted APIs return nil.
	LoadModel(ctx context.Context) error

	Name() string
}
