package router

import (
	"fmt"
	"strings"

	"github.com/SaiNageswarS/interview-boot/llm"
)

// Deterministic local results used when every provider for a capability is
// down or erroring. They are intentionally bland: a generic question keeps
// the interview moving, a length-based score keeps reporting consistent.

const FallbackModel = "fallback"

func fallbackFirstQuestion(req llm.FirstQuestionRequest) *llm.QuestionResponse {
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = "software engineer"
	}

	return &llm.QuestionResponse{
		Question: fmt.Sprintf("Tell me about yourself and your experience as a %s. What projects are you most proud of?", role),
		Model:    FallbackModel,
	}
}

func fallbackFollowUp(req llm.FollowUpRequest) *llm.FollowUpResponse {
	topic := strings.TrimSpace(req.JobDomain)
	if len(req.Skills) > 0 {
		topic = req.Skills[0]
	}
	if topic == "" {
		topic = "your field"
	}

	return &llm.FollowUpResponse{
		Question:     fmt.Sprintf("Can you walk me through a challenging problem you solved involving %s? What made it difficult and how did you approach it?", topic),
		QuestionType: "behavioral",
		Difficulty:   "intermediate",
		Model:        FallbackModel,
	}
}

// fallbackEvaluation scores by answer length alone: the only signal
// available without a model. Scores are already normalized (ScaleMax 1).
func fallbackEvaluation(req llm.EvaluationRequest) *llm.EvaluationResponse {
	words := len(strings.Fields(req.Answer))
	score := float64(words) / 120
	if score > 1 {
		score = 1
	}

	return &llm.EvaluationResponse{
		Scores: map[string]float64{
			"relevance": score,
			"accuracy":  score,
			"depth":     score,
			"clarity":   score,
		},
		ScaleMax:       1,
		Feedback:       "Automated evaluation was unavailable for this answer; the score is an estimate based on answer completeness.",
		ImprovedAnswer: "",
		Model:          FallbackModel,
	}
}

func fallbackReport(req llm.ReportRequest) *llm.ReportResponse {
	score := 0.0
	if len(req.FeedbackScores) > 0 {
		for _, s := range req.FeedbackScores {
			score += s
		}
		score /= float64(len(req.FeedbackScores))
	}

	return &llm.ReportResponse{
		Overview:   fmt.Sprintf("The candidate completed %d interview questions. A detailed AI assessment could not be generated; the overall score aggregates the per-answer evaluations.", len(req.History)),
		Assessment: "Per-answer feedback is available on each question. Review individual answers for details.",
		Strengths:  nil,
		Weaknesses: nil,
		Recommendations: []string{
			"Re-run the report once the evaluation backends are reachable for a full written assessment.",
		},
		Score: score,
		Model: FallbackModel,
	}
}
