package interview

import (
	"context"
	"testing"

	"github.com/SaiNageswarS/interview-boot/db"
	"github.com/SaiNageswarS/interview-boot/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalResponse(scores map[string]float64) *llm.EvaluationResponse {
	return &llm.EvaluationResponse{Scores: scores, ScaleMax: 10, Model: "scripted"}
}

func TestEvaluationPersistsNormalizedScores(t *testing.T) {
	router := newFakeRouter("Q1", "Q2")
	service, stores := newTestService(router)

	start, _ := service.StartSession(context.Background(), Profile{
		UserID: "u1", Role: "Backend Engineer", Level: "mid", TotalQuestions: 5,
	})

	_, err := service.SubmitAnswer(context.Background(), start.Session.ID, start.Question.ID, goodAnswer())
	require.NoError(t, err)

	service.WaitForEvaluations()

	entry, err := stores.Entries.FindByQuestionID(context.Background(), start.Question.ID)
	require.NoError(t, err)
	require.NotNil(t, entry)

	feedback, ok := stores.Feedback.(*fakeFeedbackStore).get(entry.AnswerID)
	require.True(t, ok)

	// Scripted scores are 8/10 on every criterion.
	assert.InDelta(t, 0.8, feedback.Scores["relevance"], 1e-9)
	assert.InDelta(t, 0.8, feedback.FinalScore, 1e-9)
	assert.Equal(t, "Good answer.", feedback.Feedback)
	assert.Equal(t, "scripted", feedback.EvaluatedBy)
}

func TestEvaluationWritesNeutralDefaultsOnFailure(t *testing.T) {
	router := newFakeRouter("Q1", "Q2")
	router.evaluation = nil
	service, stores := newTestService(router)

	start, _ := service.StartSession(context.Background(), Profile{
		UserID: "u1", Role: "Backend Engineer", TotalQuestions: 5,
	})

	_, err := service.SubmitAnswer(context.Background(), start.Session.ID, start.Question.ID, goodAnswer())
	require.NoError(t, err)

	service.WaitForEvaluations()

	entry, _ := stores.Entries.FindByQuestionID(context.Background(), start.Question.ID)
	feedback, ok := stores.Feedback.(*fakeFeedbackStore).get(entry.AnswerID)
	require.True(t, ok)

	assert.InDelta(t, 0.7, feedback.FinalScore, 1e-9)
	for _, criterion := range []string{"relevance", "accuracy", "depth", "clarity"} {
		assert.InDelta(t, 0.7, feedback.Scores[criterion], 1e-9)
	}
	assert.Equal(t, "Evaluation was unavailable for this answer.", feedback.Feedback)
}

func TestBuildFeedbackWeightsCriteria(t *testing.T) {
	service, _ := newTestService(newFakeRouter("Q1"))

	feedback := service.buildFeedback("a1", evalResponse(map[string]float64{
		"relevance": 10, "accuracy": 0, "depth": 10, "clarity": 10,
	}))

	// accuracy carries 0.35 weight; zeroing it drops the weighted final
	// to 0.65 while the unweighted mean would be 0.75.
	assert.InDelta(t, 0.65, feedback.FinalScore, 1e-9)
}

func TestBuildFeedbackClampsOutOfRangeScores(t *testing.T) {
	service, _ := newTestService(newFakeRouter("Q1"))

	feedback := service.buildFeedback("a1", evalResponse(map[string]float64{
		"relevance": 14, "accuracy": -2, "depth": 5, "clarity": 5,
	}))

	assert.Equal(t, 1.0, feedback.Scores["relevance"])
	assert.Equal(t, 0.0, feedback.Scores["accuracy"])
}

func TestBuildFeedbackUnknownCriteriaFallBackToMean(t *testing.T) {
	service, _ := newTestService(newFakeRouter("Q1"))

	feedback := service.buildFeedback("a1", evalResponse(map[string]float64{
		"vibes": 6, "style": 8,
	}))

	assert.InDelta(t, 0.7, feedback.FinalScore, 1e-9)
}

func TestNewAnswerFeedbackModelDefaults(t *testing.T) {
	feedback := db.NewAnswerFeedbackModel("a1")
	assert.Equal(t, "a1", feedback.AnswerID)
	assert.NotNil(t, feedback.Scores)
}
