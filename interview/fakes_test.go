package interview

import (
	"context"
	"sort"
	"sync"

	"github.com/SaiNageswarS/interview-boot/db"
	"github.com/SaiNageswarS/interview-boot/llm"
)

// In-memory store fakes. The evaluation pipeline writes feedback from a
// background goroutine, so every fake is lock-guarded.

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]db.SessionModel
	entries  *fakeEntryStore
}

func (s *fakeSessionStore) Create(ctx context.Context, session *db.SessionModel) error {
	return s.Save(ctx, session)
}

func (s *fakeSessionStore) Get(ctx context.Context, id string) (*db.SessionModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (s *fakeSessionStore) Save(ctx context.Context, session *db.SessionModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = *session
	return nil
}

func (s *fakeSessionStore) CountAnswered(ctx context.Context, sessionID string) (int, error) {
	entries, _ := s.entries.FindBySessionOrdered(ctx, sessionID)
	count := 0
	for _, entry := range entries {
		if entry.AnswerID != "" {
			count++
		}
	}
	return count, nil
}

type fakeQuestionStore struct {
	mu        sync.Mutex
	questions map[string]db.QuestionModel
}

func (s *fakeQuestionStore) Save(ctx context.Context, question *db.QuestionModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions[question.ID] = *question
	return nil
}

func (s *fakeQuestionStore) Get(ctx context.Context, id string) (*db.QuestionModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	question, ok := s.questions[id]
	if !ok {
		return nil, nil
	}
	return &question, nil
}

type fakeAnswerStore struct {
	mu      sync.Mutex
	answers map[string]db.AnswerModel
}

func (s *fakeAnswerStore) Save(ctx context.Context, answer *db.AnswerModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers[answer.ID] = *answer
	return nil
}

func (s *fakeAnswerStore) Get(ctx context.Context, id string) (*db.AnswerModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	answer, ok := s.answers[id]
	if !ok {
		return nil, nil
	}
	return &answer, nil
}

type fakeEntryStore struct {
	mu      sync.Mutex
	entries map[string]db.ConversationEntryModel
}

func (s *fakeEntryStore) Save(ctx context.Context, entry *db.ConversationEntryModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.ID] = *entry
	return nil
}

func (s *fakeEntryStore) FindBySessionOrdered(ctx context.Context, sessionID string) ([]db.ConversationEntryModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []db.ConversationEntryModel
	for _, entry := range s.entries {
		if entry.SessionID == sessionID {
			result = append(result, entry)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SequenceNumber < result[j].SequenceNumber
	})
	return result, nil
}

func (s *fakeEntryStore) FindMaxSequence(ctx context.Context, sessionID string) (int, error) {
	entries, _ := s.FindBySessionOrdered(ctx, sessionID)
	if len(entries) == 0 {
		return 0, nil
	}
	return entries[len(entries)-1].SequenceNumber, nil
}

func (s *fakeEntryStore) FindByQuestionID(ctx context.Context, questionID string) (*db.ConversationEntryModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.entries {
		if entry.QuestionID == questionID {
			e := entry
			return &e, nil
		}
	}
	return nil, nil
}

type fakeFeedbackStore struct {
	mu       sync.Mutex
	feedback map[string]db.AnswerFeedbackModel
}

func (s *fakeFeedbackStore) Save(ctx context.Context, feedback *db.AnswerFeedbackModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedback[feedback.AnswerID] = *feedback
	return nil
}

func (s *fakeFeedbackStore) FindByAnswerIDs(ctx context.Context, answerIDs []string) ([]db.AnswerFeedbackModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []db.AnswerFeedbackModel
	for _, id := range answerIDs {
		if feedback, ok := s.feedback[id]; ok {
			result = append(result, feedback)
		}
	}
	return result, nil
}

func (s *fakeFeedbackStore) get(answerID string) (db.AnswerFeedbackModel, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	feedback, ok := s.feedback[answerID]
	return feedback, ok
}

func newFakeStores() *db.Stores {
	entries := &fakeEntryStore{entries: make(map[string]db.ConversationEntryModel)}
	return &db.Stores{
		Sessions:  &fakeSessionStore{sessions: make(map[string]db.SessionModel), entries: entries},
		Questions: &fakeQuestionStore{questions: make(map[string]db.QuestionModel)},
		Answers:   &fakeAnswerStore{answers: make(map[string]db.AnswerModel)},
		Entries:   entries,
		Feedback:  &fakeFeedbackStore{feedback: make(map[string]db.AnswerFeedbackModel)},
	}
}

// fakeRouter is a scripted ProviderRouter. Follow-up questions are served
// from a queue; an exhausted queue yields an empty question, which the
// service reads as end-of-interview.
type fakeRouter struct {
	mu sync.Mutex

	firstQuestion string
	followUps     []string
	evaluation    *llm.EvaluationResponse
	report        *llm.ReportResponse

	followUpReqs []llm.FollowUpRequest
	evalReqs     []llm.EvaluationRequest
	reportReqs   []llm.ReportRequest
}

func newFakeRouter(firstQuestion string, followUps ...string) *fakeRouter {
	return &fakeRouter{
		firstQuestion: firstQuestion,
		followUps:     followUps,
		evaluation: &llm.EvaluationResponse{
			Scores:   map[string]float64{"relevance": 8, "accuracy": 8, "depth": 8, "clarity": 8},
			ScaleMax: 10,
			Feedback: "Good answer.",
			Model:    "scripted",
		},
		report: &llm.ReportResponse{
			Overview:   "Strong showing overall.",
			Assessment: "Hire.",
			Score:      0.8,
			Model:      "scripted",
		},
	}
}

func (r *fakeRouter) GenerateFirstQuestion(ctx context.Context, req llm.FirstQuestionRequest) *llm.QuestionResponse {
	return &llm.QuestionResponse{Question: r.firstQuestion, Model: "scripted"}
}

func (r *fakeRouter) GenerateFollowUp(ctx context.Context, req llm.FollowUpRequest) *llm.FollowUpResponse {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.followUpReqs = append(r.followUpReqs, req)
	if len(r.followUps) == 0 {
		return &llm.FollowUpResponse{Model: "scripted"}
	}

	question := r.followUps[0]
	r.followUps = r.followUps[1:]
	return &llm.FollowUpResponse{Question: question, QuestionType: "technical", Difficulty: req.Difficulty, Model: "scripted"}
}

func (r *fakeRouter) EvaluateAnswer(ctx context.Context, req llm.EvaluationRequest) *llm.EvaluationResponse {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evalReqs = append(r.evalReqs, req)
	return r.evaluation
}

func (r *fakeRouter) BuildReport(ctx context.Context, req llm.ReportRequest) *llm.ReportResponse {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reportReqs = append(r.reportReqs, req)
	return r.report
}
