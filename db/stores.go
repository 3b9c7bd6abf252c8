package db

import (
	"context"

	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Store interfaces consumed by the orchestration core. The mongo-backed
// implementations below are the production wiring; tests substitute
// in-memory fakes.

type SessionStore interface {
	Create(ctx context.Context, session *SessionModel) error
	Get(ctx context.Context, id string) (*SessionModel, error)
	Save(ctx context.Context, session *SessionModel) error
	// CountAnswered counts entries with an answer attached, not rows:
	// orphaned or pre-generated questions must not inflate progress.
	CountAnswered(ctx context.Context, sessionID string) (int, error)
}

type QuestionStore interface {
	Save(ctx context.Context, question *QuestionModel) error
	Get(ctx context.Context, id string) (*QuestionModel, error)
}

type AnswerStore interface {
	Save(ctx context.Context, answer *AnswerModel) error
	Get(ctx context.Context, id string) (*AnswerModel, error)
}

type EntryStore interface {
	Save(ctx context.Context, entry *ConversationEntryModel) error
	FindBySessionOrdered(ctx context.Context, sessionID string) ([]ConversationEntryModel, error)
	FindMaxSequence(ctx context.Context, sessionID string) (int, error)
	// FindByQuestionID returns nil (no error) when no entry exists.
	FindByQuestionID(ctx context.Context, questionID string) (*ConversationEntryModel, error)
}

type FeedbackStore interface {
	Save(ctx context.Context, feedback *AnswerFeedbackModel) error
	FindByAnswerIDs(ctx context.Context, answerIDs []string) ([]AnswerFeedbackModel, error)
}

// Stores bundles every store over one mongo client/tenant pair.
type Stores struct {
	Sessions  SessionStore
	Questions QuestionStore
	Answers   AnswerStore
	Entries   EntryStore
	Feedback  FeedbackStore
}

func ProvideStores(client odm.MongoClient, tenant string) *Stores {
	return &Stores{
		Sessions:  &mongoSessionStore{client: client, tenant: tenant},
		Questions: &mongoQuestionStore{client: client, tenant: tenant},
		Answers:   &mongoAnswerStore{client: client, tenant: tenant},
		Entries:   &mongoEntryStore{client: client, tenant: tenant},
		Feedback:  &mongoFeedbackStore{client: client, tenant: tenant},
	}
}

type mongoSessionStore struct {
	client odm.MongoClient
	tenant string
}

func (s *mongoSessionStore) collection() odm.OdmCollectionInterface[SessionModel] {
	return odm.CollectionOf[SessionModel](s.client, s.tenant)
}

func (s *mongoSessionStore) Create(ctx context.Context, session *SessionModel) error {
	_, err := async.Await(s.collection().Save(ctx, *session))
	return err
}

func (s *mongoSessionStore) Get(ctx context.Context, id string) (*SessionModel, error) {
	return async.Await(s.collection().FindOneByID(ctx, id))
}

func (s *mongoSessionStore) Save(ctx context.Context, session *SessionModel) error {
	_, err := async.Await(s.collection().Save(ctx, *session))
	return err
}

func (s *mongoSessionStore) CountAnswered(ctx context.Context, sessionID string) (int, error) {
	entries, err := async.Await(odm.CollectionOf[ConversationEntryModel](s.client, s.tenant).
		Find(ctx, bson.M{"sessionId": sessionID, "answerId": bson.M{"$nin": bson.A{"", nil}}}, nil, 0, 0))
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

type mongoQuestionStore struct {
	client odm.MongoClient
	tenant string
}

func (s *mongoQuestionStore) collection() odm.OdmCollectionInterface[QuestionModel] {
	return odm.CollectionOf[QuestionModel](s.client, s.tenant)
}

func (s *mongoQuestionStore) Save(ctx context.Context, question *QuestionModel) error {
	_, err := async.Await(s.collection().Save(ctx, *question))
	return err
}

func (s *mongoQuestionStore) Get(ctx context.Context, id string) (*QuestionModel, error) {
	return async.Await(s.collection().FindOneByID(ctx, id))
}

type mongoAnswerStore struct {
	client odm.MongoClient
	tenant string
}

func (s *mongoAnswerStore) collection() odm.OdmCollectionInterface[AnswerModel] {
	return odm.CollectionOf[AnswerModel](s.client, s.tenant)
}

func (s *mongoAnswerStore) Save(ctx context.Context, answer *AnswerModel) error {
	_, err := async.Await(s.collection().Save(ctx, *answer))
	return err
}

func (s *mongoAnswerStore) Get(ctx context.Context, id string) (*AnswerModel, error) {
	return async.Await(s.collection().FindOneByID(ctx, id))
}

type mongoEntryStore struct {
	client odm.MongoClient
	tenant string
}

func (s *mongoEntryStore) collection() odm.OdmCollectionInterface[ConversationEntryModel] {
	return odm.CollectionOf[ConversationEntryModel](s.client, s.tenant)
}

func (s *mongoEntryStore) Save(ctx context.Context, entry *ConversationEntryModel) error {
	_, err := async.Await(s.collection().Save(ctx, *entry))
	return err
}

func (s *mongoEntryStore) FindBySessionOrdered(ctx context.Context, sessionID string) ([]ConversationEntryModel, error) {
	return async.Await(s.collection().
		Find(ctx, bson.M{"sessionId": sessionID}, bson.D{{Key: "sequenceNumber", Value: 1}}, 0, 0))
}

func (s *mongoEntryStore) FindMaxSequence(ctx context.Context, sessionID string) (int, error) {
	entries, err := async.Await(s.collection().
		Find(ctx, bson.M{"sessionId": sessionID}, bson.D{{Key: "sequenceNumber", Value: -1}}, 1, 0))
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}
	return entries[0].SequenceNumber, nil
}

func (s *mongoEntryStore) FindByQuestionID(ctx context.Context, questionID string) (*ConversationEntryModel, error) {
	entries, err := async.Await(s.collection().
		Find(ctx, bson.M{"questionId": questionID}, nil, 1, 0))
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

type mongoFeedbackStore struct {
	client odm.MongoClient
	tenant string
}

func (s *mongoFeedbackStore) collection() odm.OdmCollectionInterface[AnswerFeedbackModel] {
	return odm.CollectionOf[AnswerFeedbackModel](s.client, s.tenant)
}

func (s *mongoFeedbackStore) Save(ctx context.Context, feedback *AnswerFeedbackModel) error {
	_, err := async.Await(s.collection().Save(ctx, *feedback))
	return err
}

func (s *mongoFeedbackStore) FindByAnswerIDs(ctx context.Context, answerIDs []string) ([]AnswerFeedbackModel, error) {
	if len(answerIDs) == 0 {
		return nil, nil
	}
	return async.Await(s.collection().
		Find(ctx, bson.M{"_id": bson.M{"$in": answerIDs}}, nil, 0, 0))
}
