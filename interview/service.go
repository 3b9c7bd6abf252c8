package interview

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/interview-boot/appconfig"
	"github.com/SaiNageswarS/interview-boot/db"
	"github.com/SaiNageswarS/interview-boot/llm"
	"github.com/SaiNageswarS/interview-boot/strategy"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ProviderRouter is the slice of the router the interview service uses.
// Router methods never fail: exhaustion yields deterministic fallbacks.
type ProviderRouter interface {
	GenerateFirstQuestion(ctx context.Context, req llm.FirstQuestionRequest) *llm.QuestionResponse
	GenerateFollowUp(ctx context.Context, req llm.FollowUpRequest) *llm.FollowUpResponse
	EvaluateAnswer(ctx context.Context, req llm.EvaluationRequest) *llm.EvaluationResponse
	BuildReport(ctx context.Context, req llm.ReportRequest) *llm.ReportResponse
}

// Profile is the candidate profile a session is created from.
type Profile struct {
	UserID         string
	Role           string
	Level          string
	Skills         []string
	Language       string
	TotalQuestions int
	CVContext      string
	JDContext      string
}

type StartResult struct {
	Session  *db.SessionModel
	Question *db.QuestionModel
}

type SubmitResult struct {
	// NextQuestion is nil iff the interview completed on this submission.
	NextQuestion  *db.QuestionModel
	Completed     bool
	AnsweredCount int
}

// Service owns the interview session lifecycle: question/answer
// sequencing, termination, practice cloning, and the fixed
// record -> next-question -> schedule-evaluation call order.
type Service struct {
	stores   *db.Stores
	router   ProviderRouter
	strategy *strategy.Engine
	ccfgg    *appconfig.AppConfig
	locks    *sessionLocks
	evalWG   sync.WaitGroup
}

func ProvideService(stores *db.Stores, providerRouter ProviderRouter, engine *strategy.Engine, ccfgg *appconfig.AppConfig) *Service {
	return &Service{
		stores:   stores,
		router:   providerRouter,
		strategy: engine,
		ccfgg:    ccfgg,
		locks:    newSessionLocks(),
	}
}

// StartSession creates a session together with its first question.
func (s *Service) StartSession(ctx context.Context, profile Profile) (*StartResult, error) {
	if strings.TrimSpace(profile.Role) == "" {
		return nil, status.Error(codes.InvalidArgument, "role is required")
	}
	if profile.TotalQuestions <= 0 {
		profile.TotalQuestions = 10
	}

	session := db.NewSessionModel(profile.UserID)
	session.Role = profile.Role
	session.Level = profile.Level
	session.Skills = profile.Skills
	session.Language = profile.Language
	session.TotalQuestions = profile.TotalQuestions
	session.CVContext = profile.CVContext
	session.JDContext = profile.JDContext

	if err := s.stores.Sessions.Create(ctx, session); err != nil {
		logger.Error("Failed to create session", zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to create session")
	}

	directive := s.strategy.NextDirective(session.Level, 1, session.TotalQuestions,
		strategy.QualityUnknown, "", session.Skills)

	resp := s.router.GenerateFirstQuestion(ctx, llm.FirstQuestionRequest{
		Role:        session.Role,
		Level:       session.Level,
		Skills:      session.Skills,
		Language:    session.Language,
		CVContext:   session.CVContext,
		JDContext:   session.JDContext,
		Temperature: s.ccfgg.GenerationTemperature,
	})

	question, err := s.appendQuestion(ctx, session, resp.Question, directive.Topic, "opening", directive.Difficulty)
	if err != nil {
		return nil, err
	}

	return &StartResult{Session: session, Question: question}, nil
}

// SubmitAnswer records the answer, produces the next question (or the
// end-of-interview signal), and only then schedules evaluation of the
// submitted answer so scoring latency never delays the candidate.
func (s *Service) SubmitAnswer(ctx context.Context, sessionID, questionID, answerText string) (*SubmitResult, error) {
	session, err := s.stores.Sessions.Get(ctx, sessionID)
	if err != nil || session == nil {
		return nil, status.Error(codes.NotFound, "session not found")
	}
	if session.Status == db.SessionCompleted {
		return nil, status.Error(codes.FailedPrecondition, "session is already completed")
	}

	question, err := s.stores.Questions.Get(ctx, questionID)
	if err != nil || question == nil || question.SessionID != sessionID {
		return nil, status.Error(codes.NotFound, "question does not belong to session")
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	answer, err := s.recordAnswer(ctx, session, question, answerText)
	if err != nil {
		return nil, err
	}

	if session.Status == db.SessionCreated {
		session.Status = db.SessionInProgress
	}

	answered, err := s.stores.Sessions.CountAnswered(ctx, sessionID)
	if err != nil {
		logger.Error("Failed to count answered questions", zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to count answered questions")
	}

	// Quality of the just-submitted answer drives the next directive.
	// Evaluation is scheduled after the next question, so the text
	// heuristic is the only signal available here.
	quality := s.strategy.Config().QualityFromText(answerText)
	effective, probePending := strategy.ResolveQuality(quality, session.ProbePending)
	session.LastQuality = string(effective)
	session.ProbePending = probePending

	result := &SubmitResult{AnsweredCount: answered}

	// Same-context practice outlives the planned total: once the cloned
	// list is exhausted it keeps generating live questions until the
	// candidate ends it or generation yields nothing.
	sameContextPractice := session.IsPractice && session.PracticeMode == db.PracticeSameContext

	if answered >= session.TotalQuestions && !sameContextPractice {
		s.complete(session)
	} else {
		next, err := s.nextQuestion(ctx, session, question, answerText, answered, effective)
		if err != nil {
			return nil, err
		}
		if next == nil {
			s.complete(session)
		}
		result.NextQuestion = next
	}

	session.UpdatedOn = time.Now().Unix()
	if err := s.stores.Sessions.Save(ctx, session); err != nil {
		logger.Error("Failed to save session", zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to save session")
	}

	result.Completed = session.Status == db.SessionCompleted

	// Scheduled last: the candidate already has their next question.
	s.scheduleEvaluation(answer.ID, question.Content, answerText, session)

	return result, nil
}

// EndSession completes a session on explicit request. Ending an already
// completed session is a no-op.
func (s *Service) EndSession(ctx context.Context, sessionID string) (*db.SessionModel, error) {
	session, err := s.stores.Sessions.Get(ctx, sessionID)
	if err != nil || session == nil {
		return nil, status.Error(codes.NotFound, "session not found")
	}

	if session.Status == db.SessionCompleted {
		return session, nil
	}

	s.complete(session)
	session.UpdatedOn = time.Now().Unix()
	if err := s.stores.Sessions.Save(ctx, session); err != nil {
		logger.Error("Failed to save session", zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to save session")
	}

	return session, nil
}

// CreatePracticeSession deep-clones the origin's profile and question list
// (not its answers) into a fresh session. Practice sessions themselves can
// never serve as origins.
func (s *Service) CreatePracticeSession(ctx context.Context, originID string, mode db.PracticeMode) (*StartResult, error) {
	if mode != db.PracticeReplay && mode != db.PracticeSameContext {
		return nil, status.Error(codes.InvalidArgument, "unknown practice mode")
	}

	origin, err := s.stores.Sessions.Get(ctx, originID)
	if err != nil || origin == nil {
		return nil, status.Error(codes.NotFound, "session not found")
	}
	if origin.IsPractice {
		return nil, status.Error(codes.FailedPrecondition, "cannot create a practice session from a practice session")
	}

	clone := db.NewSessionModel(origin.UserID)
	clone.Role = origin.Role
	clone.Level = origin.Level
	clone.Skills = origin.Skills
	clone.Language = origin.Language
	clone.TotalQuestions = origin.TotalQuestions
	clone.CVContext = origin.CVContext
	clone.JDContext = origin.JDContext
	clone.IsPractice = true
	clone.OriginalSessionID = origin.ID
	clone.PracticeMode = mode

	if err := s.stores.Sessions.Create(ctx, clone); err != nil {
		logger.Error("Failed to create practice session", zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to create practice session")
	}

	entries, err := s.stores.Entries.FindBySessionOrdered(ctx, originID)
	if err != nil {
		logger.Error("Failed to load origin entries", zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to load origin session")
	}

	var firstQuestion *db.QuestionModel
	seq := 0
	for _, entry := range entries {
		originQuestion, err := s.stores.Questions.Get(ctx, entry.QuestionID)
		if err != nil || originQuestion == nil {
			continue
		}

		cloned := db.NewQuestionModel(clone.ID, originQuestion.Content)
		cloned.SkillTag = originQuestion.SkillTag
		cloned.QuestionType = originQuestion.QuestionType
		cloned.Difficulty = originQuestion.Difficulty
		if err := s.stores.Questions.Save(ctx, cloned); err != nil {
			return nil, status.Error(codes.Internal, "failed to clone question")
		}

		seq++
		if err := s.stores.Entries.Save(ctx, db.NewConversationEntryModel(clone.ID, cloned.ID, seq)); err != nil {
			return nil, status.Error(codes.Internal, "failed to clone conversation entry")
		}

		if firstQuestion == nil {
			firstQuestion = cloned
		}
	}

	return &StartResult{Session: clone, Question: firstQuestion}, nil
}

func (s *Service) complete(session *db.SessionModel) {
	session.Status = db.SessionCompleted
	session.ProbePending = false
}

// recordAnswer persists the answer and attaches it to the question's
// conversation entry, synthesizing the entry when it is missing (cloning
// or migration gaps) rather than failing the request.
func (s *Service) recordAnswer(ctx context.Context, session *db.SessionModel, question *db.QuestionModel, answerText string) (*db.AnswerModel, error) {
	entry, err := s.stores.Entries.FindByQuestionID(ctx, question.ID)
	if err != nil {
		logger.Error("Failed to load conversation entry", zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to load conversation entry")
	}

	if entry != nil && entry.AnswerID != "" {
		return nil, status.Error(codes.FailedPrecondition, "question is already answered")
	}

	answer := db.NewAnswerModel(question.ID, answerText)
	if err := s.stores.Answers.Save(ctx, answer); err != nil {
		logger.Error("Failed to save answer", zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to save answer")
	}

	if entry == nil {
		maxSeq, err := s.stores.Entries.FindMaxSequence(ctx, session.ID)
		if err != nil {
			return nil, status.Error(codes.Internal, "failed to compute sequence number")
		}
		entry = db.NewConversationEntryModel(session.ID, question.ID, maxSeq+1)
	}

	entry.AnswerID = answer.ID
	if err := s.stores.Entries.Save(ctx, entry); err != nil {
		logger.Error("Failed to save conversation entry", zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to save conversation entry")
	}

	return answer, nil
}

// nextQuestion returns the next question for the session, or nil when the
// interview should complete. Practice sessions replay their pre-cloned
// list first; same-context practice falls through to live generation when
// the list is exhausted.
func (s *Service) nextQuestion(ctx context.Context, session *db.SessionModel, answeredQuestion *db.QuestionModel,
	answerText string, answered int, quality strategy.AnswerQuality) (*db.QuestionModel, error) {

	if session.IsPractice {
		preCloned, err := s.nextPreClonedQuestion(ctx, session)
		if err != nil {
			return nil, err
		}
		if preCloned != nil {
			return preCloned, nil
		}
		if session.PracticeMode == db.PracticeReplay {
			return nil, nil
		}
	}

	directive := s.strategy.NextDirective(session.Level, answered+1, session.TotalQuestions,
		quality, answeredQuestion.SkillTag, session.Skills)

	history, err := s.history(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	resp := s.router.GenerateFollowUp(ctx, llm.FollowUpRequest{
		Question:       answeredQuestion.Content,
		Answer:         answerText,
		History:        history,
		JobDomain:      session.Role,
		Level:          session.Level,
		Skills:         session.Skills,
		CurrentIndex:   answered + 1,
		TotalQuestions: session.TotalQuestions,
		Difficulty:     directive.Difficulty,
		Guidance:       directive.Guidance,
		Temperature:    s.ccfgg.GenerationTemperature,
	})
	if resp == nil || strings.TrimSpace(resp.Question) == "" {
		return nil, nil
	}

	return s.appendQuestion(ctx, session, resp.Question, directive.Topic, resp.QuestionType, resp.Difficulty)
}

// nextPreClonedQuestion returns the first cloned question without an
// answer, or nil when the clone list is exhausted.
func (s *Service) nextPreClonedQuestion(ctx context.Context, session *db.SessionModel) (*db.QuestionModel, error) {
	entries, err := s.stores.Entries.FindBySessionOrdered(ctx, session.ID)
	if err != nil {
		logger.Error("Failed to load conversation entries", zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to load conversation entries")
	}

	for _, entry := range entries {
		if entry.AnswerID != "" {
			continue
		}
		question, err := s.stores.Questions.Get(ctx, entry.QuestionID)
		if err != nil || question == nil {
			continue
		}
		return question, nil
	}

	return nil, nil
}

// appendQuestion persists a question and its conversation entry with the
// next sequence number. Callers hold the session lock.
func (s *Service) appendQuestion(ctx context.Context, session *db.SessionModel, content, skillTag, questionType, difficulty string) (*db.QuestionModel, error) {
	question := db.NewQuestionModel(session.ID, content)
	question.SkillTag = skillTag
	question.QuestionType = questionType
	question.Difficulty = difficulty

	if err := s.stores.Questions.Save(ctx, question); err != nil {
		logger.Error("Failed to save question", zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to save question")
	}

	maxSeq, err := s.stores.Entries.FindMaxSequence(ctx, session.ID)
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to compute sequence number")
	}

	if err := s.stores.Entries.Save(ctx, db.NewConversationEntryModel(session.ID, question.ID, maxSeq+1)); err != nil {
		logger.Error("Failed to save conversation entry", zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to save conversation entry")
	}

	return question, nil
}

// history assembles the answered transcript in sequence order.
func (s *Service) history(ctx context.Context, sessionID string) ([]llm.HistoryEntry, error) {
	entries, err := s.stores.Entries.FindBySessionOrdered(ctx, sessionID)
	if err != nil {
		logger.Error("Failed to load conversation entries", zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to load conversation entries")
	}

	var history []llm.HistoryEntry
	for _, entry := range entries {
		if entry.AnswerID == "" {
			continue
		}

		question, err := s.stores.Questions.Get(ctx, entry.QuestionID)
		if err != nil || question == nil {
			continue
		}
		answer, err := s.stores.Answers.Get(ctx, entry.AnswerID)
		if err != nil || answer == nil {
			continue
		}

		history = append(history, llm.HistoryEntry{Question: question.Content, Answer: answer.Content})
	}

	return history, nil
}
