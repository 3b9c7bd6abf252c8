package interview

import (
	"context"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/interview-boot/db"
	"github.com/SaiNageswarS/interview-boot/llm"
	"go.uber.org/zap"
)

// criterionWeights define the weighted final score. Criteria a provider
// omits simply carry no weight for that answer.
var criterionWeights = map[string]float64{
	"relevance": 0.25,
	"accuracy":  0.35,
	"depth":     0.25,
	"clarity":   0.15,
}

// scheduleEvaluation scores the submitted answer in the background. It is
// called only after the next question has been produced, runs on its own
// context detached from the triggering request, and absorbs every failure:
// worst case a neutral default score set is persisted.
func (s *Service) scheduleEvaluation(answerID, questionContent, answerContent string, session *db.SessionModel) {
	role := session.Role
	level := session.Level
	skills := session.Skills
	cvContext := session.CVContext

	s.evalWG.Add(1)
	go func() {
		defer s.evalWG.Done()

		timeout := time.Duration(s.ccfgg.EvaluateTimeoutSec)*time.Second + 15*time.Second
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp := s.router.EvaluateAnswer(ctx, llm.EvaluationRequest{
			Question:    questionContent,
			Answer:      answerContent,
			Context:     cvContext,
			JobDomain:   role,
			Level:       level,
			Skills:      skills,
			Temperature: s.ccfgg.EvaluationTemperature,
		})

		feedback := s.buildFeedback(answerID, resp)
		if err := s.stores.Feedback.Save(ctx, feedback); err != nil {
			logger.Error("Failed to save answer feedback",
				zap.String("answerId", answerID), zap.Error(err))
		}
	}()
}

// WaitForEvaluations blocks until every scheduled evaluation has finished.
// Used on graceful shutdown so in-flight scores are not lost.
func (s *Service) WaitForEvaluations() {
	s.evalWG.Wait()
}

func (s *Service) buildFeedback(answerID string, resp *llm.EvaluationResponse) *db.AnswerFeedbackModel {
	feedback := db.NewAnswerFeedbackModel(answerID)

	if resp == nil || len(resp.Scores) == 0 || resp.ScaleMax <= 0 {
		logger.Error("Evaluation produced no usable scores, writing neutral defaults",
			zap.String("answerId", answerID))
		return s.neutralFeedback(feedback)
	}

	feedback.Scores = normalizeScores(resp.Scores, resp.ScaleMax)
	feedback.FinalScore = finalScore(feedback.Scores)
	feedback.Feedback = resp.Feedback
	feedback.SampleAnswer = resp.ImprovedAnswer
	feedback.EvaluatedBy = resp.Model

	return feedback
}

func (s *Service) neutralFeedback(feedback *db.AnswerFeedbackModel) *db.AnswerFeedbackModel {
	neutral := s.ccfgg.NeutralScore
	for criterion := range criterionWeights {
		feedback.Scores[criterion] = neutral
	}
	feedback.FinalScore = neutral
	feedback.Feedback = "Evaluation was unavailable for this answer."
	return feedback
}

// normalizeScores maps provider-native scales (0-10 from one backend, 0-1
// from another) onto the internal 0-1 range.
func normalizeScores(scores map[string]float64, scaleMax float64) map[string]float64 {
	normalized := make(map[string]float64, len(scores))
	for criterion, score := range scores {
		v := score / scaleMax
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		normalized[criterion] = v
	}
	return normalized
}

func finalScore(normalized map[string]float64) float64 {
	var weighted, totalWeight float64
	for criterion, score := range normalized {
		weight, ok := criterionWeights[criterion]
		if !ok {
			continue
		}
		weighted += score * weight
		totalWeight += weight
	}

	if totalWeight == 0 {
		// Unknown criteria only: fall back to their mean.
		var sum float64
		for _, score := range normalized {
			sum += score
		}
		return sum / float64(len(normalized))
	}

	return weighted / totalWeight
}
