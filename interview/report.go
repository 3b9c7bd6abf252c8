package interview

import (
	"context"
	"fmt"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/interview-boot/db"
	"github.com/SaiNageswarS/interview-boot/llm"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// QuestionReport is one transcript row of the final report. Feedback is
// nil while the asynchronous evaluation for that answer is still in
// flight; that is a partial result, not an error.
type QuestionReport struct {
	SequenceNumber int
	Question       string
	Answer         string
	Feedback       *db.AnswerFeedbackModel
}

type Report struct {
	SessionID       string
	Overview        string
	Assessment      string
	Strengths       []string
	Weaknesses      []string
	Recommendations []string
	Score           float64
	Questions       []QuestionReport
}

// BuildReport assembles the aggregate interview report. It may race
// in-flight evaluations; missing per-answer feedback is returned as absent.
func (s *Service) BuildReport(ctx context.Context, sessionID string) (*Report, error) {
	session, err := s.stores.Sessions.Get(ctx, sessionID)
	if err != nil || session == nil {
		return nil, status.Error(codes.NotFound, "session not found")
	}

	entries, err := s.stores.Entries.FindBySessionOrdered(ctx, sessionID)
	if err != nil {
		logger.Error("Failed to load conversation entries", zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to load conversation entries")
	}

	var questions []QuestionReport
	var history []llm.HistoryEntry
	var answerIDs []string
	answerIDByRow := make(map[int]string)

	for _, entry := range entries {
		question, err := s.stores.Questions.Get(ctx, entry.QuestionID)
		if err != nil || question == nil {
			continue
		}

		row := QuestionReport{
			SequenceNumber: entry.SequenceNumber,
			Question:       question.Content,
		}

		if entry.AnswerID != "" {
			answer, err := s.stores.Answers.Get(ctx, entry.AnswerID)
			if err == nil && answer != nil {
				row.Answer = answer.Content
				history = append(history, llm.HistoryEntry{Question: question.Content, Answer: answer.Content})
				answerIDs = append(answerIDs, entry.AnswerID)
				answerIDByRow[len(questions)] = entry.AnswerID
			}
		}

		questions = append(questions, row)
	}

	feedbackByAnswer := make(map[string]db.AnswerFeedbackModel)
	feedbackRows, err := s.stores.Feedback.FindByAnswerIDs(ctx, answerIDs)
	if err != nil {
		logger.Error("Failed to load answer feedback", zap.Error(err))
	} else {
		for _, row := range feedbackRows {
			feedbackByAnswer[row.AnswerID] = row
		}
	}

	var feedbackScores []float64
	for i := range questions {
		answerID, ok := answerIDByRow[i]
		if !ok {
			continue
		}
		if feedback, ok := feedbackByAnswer[answerID]; ok {
			f := feedback
			questions[i].Feedback = &f
			feedbackScores = append(feedbackScores, f.FinalScore)
		}
	}

	resp := s.router.BuildReport(ctx, llm.ReportRequest{
		History:        history,
		JobDomain:      session.Role,
		Level:          session.Level,
		Skills:         session.Skills,
		CandidateInfo:  fmt.Sprintf("%s, %s level", session.Role, session.Level),
		Temperature:    s.ccfgg.GenerationTemperature,
		FeedbackScores: feedbackScores,
	})

	return &Report{
		SessionID:       session.ID,
		Overview:        resp.Overview,
		Assessment:      resp.Assessment,
		Strengths:       resp.Strengths,
		Weaknesses:      resp.Weaknesses,
		Recommendations: resp.Recommendations,
		Score:           resp.Score,
		Questions:       questions,
	}, nil
}
