package interview

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/SaiNageswarS/interview-boot/appconfig"
	"github.com/SaiNageswarS/interview-boot/db"
	"github.com/SaiNageswarS/interview-boot/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func newTestService(router ProviderRouter) (*Service, *db.Stores) {
	stores := newFakeStores()
	ccfgg := (&appconfig.AppConfig{}).WithDefaults()
	engine := strategy.NewEngine(strategy.Config{})
	return ProvideService(stores, router, engine, ccfgg), stores
}

func goodAnswer() string {
	return strings.Repeat("a well reasoned point about the design ", 25)
}

func TestStartSessionRequiresRole(t *testing.T) {
	service, _ := newTestService(newFakeRouter("Q1"))

	_, err := service.StartSession(context.Background(), Profile{UserID: "u1"})

	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestStartSessionCreatesFirstQuestion(t *testing.T) {
	service, stores := newTestService(newFakeRouter("Tell me about yourself."))

	result, err := service.StartSession(context.Background(), Profile{
		UserID: "u1",
		Role:   "Backend Engineer",
		Level:  "senior",
		Skills: []string{"Go", "Kubernetes"},
	})

	require.NoError(t, err)
	assert.Equal(t, db.SessionCreated, result.Session.Status)
	assert.Equal(t, 10, result.Session.TotalQuestions)
	assert.Equal(t, "Tell me about yourself.", result.Question.Content)

	entries, err := stores.Entries.FindBySessionOrdered(context.Background(), result.Session.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].SequenceNumber)
	assert.Equal(t, result.Question.ID, entries[0].QuestionID)
	assert.Empty(t, entries[0].AnswerID)
}

func TestSubmitAnswerWalksToCompletion(t *testing.T) {
	service, stores := newTestService(newFakeRouter("Q1", "Q2", "Q3"))

	start, err := service.StartSession(context.Background(), Profile{
		UserID:         "u1",
		Role:           "Backend Engineer",
		Skills:         []string{"Go"},
		TotalQuestions: 3,
	})
	require.NoError(t, err)

	question := start.Question
	var lastResult *SubmitResult
	for i := 1; i <= 3; i++ {
		lastResult, err = service.SubmitAnswer(context.Background(), start.Session.ID, question.ID, goodAnswer())
		require.NoError(t, err)
		assert.Equal(t, i, lastResult.AnsweredCount)

		if lastResult.NextQuestion != nil {
			question = lastResult.NextQuestion
		}
	}

	assert.True(t, lastResult.Completed)
	assert.Nil(t, lastResult.NextQuestion)

	session, err := stores.Sessions.Get(context.Background(), start.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, db.SessionCompleted, session.Status)

	// Sequence numbers are 1..n with no gaps or duplicates.
	entries, err := stores.Entries.FindBySessionOrdered(context.Background(), start.Session.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, entry := range entries {
		assert.Equal(t, i+1, entry.SequenceNumber)
		assert.NotEmpty(t, entry.AnswerID)
	}

	service.WaitForEvaluations()
}

func TestSubmitAnswerTransitionsToInProgress(t *testing.T) {
	service, stores := newTestService(newFakeRouter("Q1", "Q2"))

	start, _ := service.StartSession(context.Background(), Profile{
		UserID: "u1", Role: "Backend Engineer", Skills: []string{"Go"}, TotalQuestions: 5,
	})

	_, err := service.SubmitAnswer(context.Background(), start.Session.ID, start.Question.ID, goodAnswer())
	require.NoError(t, err)

	session, _ := stores.Sessions.Get(context.Background(), start.Session.ID)
	assert.Equal(t, db.SessionInProgress, session.Status)

	service.WaitForEvaluations()
}

func TestSubmitAnswerUnknownSession(t *testing.T) {
	service, _ := newTestService(newFakeRouter("Q1"))

	_, err := service.SubmitAnswer(context.Background(), "missing", "q", "answer")

	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestSubmitAnswerRejectsForeignQuestion(t *testing.T) {
	service, _ := newTestService(newFakeRouter("Q1", "Q2"))

	first, _ := service.StartSession(context.Background(), Profile{
		UserID: "u1", Role: "Backend Engineer",
	})
	second, _ := service.StartSession(context.Background(), Profile{
		UserID: "u2", Role: "Data Engineer",
	})

	_, err := service.SubmitAnswer(context.Background(), first.Session.ID, second.Question.ID, "answer")

	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestSubmitAnswerRejectsDoubleSubmission(t *testing.T) {
	service, _ := newTestService(newFakeRouter("Q1", "Q2"))

	start, _ := service.StartSession(context.Background(), Profile{
		UserID: "u1", Role: "Backend Engineer", TotalQuestions: 5,
	})

	_, err := service.SubmitAnswer(context.Background(), start.Session.ID, start.Question.ID, goodAnswer())
	require.NoError(t, err)

	_, err = service.SubmitAnswer(context.Background(), start.Session.ID, start.Question.ID, goodAnswer())
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	service.WaitForEvaluations()
}

func TestSubmitAnswerRejectsCompletedSession(t *testing.T) {
	service, _ := newTestService(newFakeRouter("Q1"))

	start, _ := service.StartSession(context.Background(), Profile{
		UserID: "u1", Role: "Backend Engineer", TotalQuestions: 1,
	})

	result, err := service.SubmitAnswer(context.Background(), start.Session.ID, start.Question.ID, goodAnswer())
	require.NoError(t, err)
	require.True(t, result.Completed)

	_, err = service.SubmitAnswer(context.Background(), start.Session.ID, start.Question.ID, goodAnswer())
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	service.WaitForEvaluations()
}

func TestSubmitAnswerSynthesizesMissingEntry(t *testing.T) {
	service, stores := newTestService(newFakeRouter("Q1", "Q2"))

	start, _ := service.StartSession(context.Background(), Profile{
		UserID: "u1", Role: "Backend Engineer", TotalQuestions: 5,
	})

	// A question persisted without its conversation entry, as a cloning or
	// migration gap would leave it.
	orphan := db.NewQuestionModel(start.Session.ID, "Orphaned question?")
	require.NoError(t, stores.Questions.Save(context.Background(), orphan))

	_, err := service.SubmitAnswer(context.Background(), start.Session.ID, orphan.ID, goodAnswer())
	require.NoError(t, err)

	entry, err := stores.Entries.FindByQuestionID(context.Background(), orphan.ID)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.NotEmpty(t, entry.AnswerID)
	assert.Equal(t, 2, entry.SequenceNumber)

	service.WaitForEvaluations()
}

func TestConcurrentSubmissionsKeepSequenceGapless(t *testing.T) {
	service, stores := newTestService(newFakeRouter("Q1", "F1", "F2", "F3"))

	start, err := service.StartSession(context.Background(), Profile{
		UserID: "u1", Role: "Backend Engineer", Skills: []string{"Go"}, TotalQuestions: 10,
	})
	require.NoError(t, err)

	// Two questions persisted without entries, so each racing submission
	// also synthesizes its sequence number under the session lock.
	orphanA := db.NewQuestionModel(start.Session.ID, "Orphan A?")
	orphanB := db.NewQuestionModel(start.Session.ID, "Orphan B?")
	require.NoError(t, stores.Questions.Save(context.Background(), orphanA))
	require.NoError(t, stores.Questions.Save(context.Background(), orphanB))

	var wg sync.WaitGroup
	for _, questionID := range []string{start.Question.ID, orphanA.ID, orphanB.ID} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := service.SubmitAnswer(context.Background(), start.Session.ID, id, goodAnswer())
			assert.NoError(t, err)
		}(questionID)
	}
	wg.Wait()

	// 3 answered entries plus 3 generated follow-ups: sequence numbers must
	// be 1..6 with no gaps or duplicates, whatever order the races landed.
	entries, err := stores.Entries.FindBySessionOrdered(context.Background(), start.Session.ID)
	require.NoError(t, err)
	require.Len(t, entries, 6)
	for i, entry := range entries {
		assert.Equal(t, i+1, entry.SequenceNumber)
	}

	service.WaitForEvaluations()
}

func TestSubmitAnswerCompletesWhenGenerationDriesUp(t *testing.T) {
	// No scripted follow-ups: the router yields an empty question and the
	// interview ends early even though the planned total is not reached.
	service, _ := newTestService(newFakeRouter("Q1"))

	start, _ := service.StartSession(context.Background(), Profile{
		UserID: "u1", Role: "Backend Engineer", TotalQuestions: 10,
	})

	result, err := service.SubmitAnswer(context.Background(), start.Session.ID, start.Question.ID, goodAnswer())
	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.Nil(t, result.NextQuestion)

	service.WaitForEvaluations()
}

func TestSubmitAnswerTracksQualityState(t *testing.T) {
	router := newFakeRouter("Q1", "Q2", "Q3", "Q4")
	service, stores := newTestService(router)

	start, _ := service.StartSession(context.Background(), Profile{
		UserID: "u1", Role: "Backend Engineer", Skills: []string{"Go", "Kubernetes"}, TotalQuestions: 10,
	})

	// A mid-length answer is AVERAGE and arms the clarifying probe.
	result, err := service.SubmitAnswer(context.Background(), start.Session.ID, start.Question.ID,
		strings.Repeat("word ", 60))
	require.NoError(t, err)

	session, _ := stores.Sessions.Get(context.Background(), start.Session.ID)
	assert.Equal(t, string(strategy.QualityAverage), session.LastQuality)
	assert.True(t, session.ProbePending)

	// Another AVERAGE answer after the spent probe hardens to POOR.
	_, err = service.SubmitAnswer(context.Background(), start.Session.ID, result.NextQuestion.ID,
		strings.Repeat("word ", 60))
	require.NoError(t, err)

	session, _ = stores.Sessions.Get(context.Background(), start.Session.ID)
	assert.Equal(t, string(strategy.QualityPoor), session.LastQuality)
	assert.False(t, session.ProbePending)

	service.WaitForEvaluations()
}

func TestEndSessionIsIdempotent(t *testing.T) {
	service, _ := newTestService(newFakeRouter("Q1"))

	start, _ := service.StartSession(context.Background(), Profile{
		UserID: "u1", Role: "Backend Engineer",
	})

	session, err := service.EndSession(context.Background(), start.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, db.SessionCompleted, session.Status)

	session, err = service.EndSession(context.Background(), start.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, db.SessionCompleted, session.Status)
}

func TestEndSessionUnknownSession(t *testing.T) {
	service, _ := newTestService(newFakeRouter("Q1"))

	_, err := service.EndSession(context.Background(), "missing")

	assert.Equal(t, codes.NotFound, status.Code(err))
}
