package db

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionCreated    SessionStatus = "created"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
)

// PracticeMode controls what happens when a practice session runs out of
// pre-cloned questions: replay sessions complete, same-context sessions
// fall through to live generation.
type PracticeMode string

const (
	PracticeReplay      PracticeMode = "replay"
	PracticeSameContext PracticeMode = "same_context"
)

type SessionModel struct {
	ID             string        `bson:"_id"`
	UserID         string        `bson:"userId"`
	Role           string        `bson:"role"`
	Level          string        `bson:"level"`
	Skills         []string      `bson:"skills"`
	Language       string        `bson:"language"`
	TotalQuestions int           `bson:"totalQuestions"`
	Status         SessionStatus `bson:"status"`

	IsPractice        bool         `bson:"isPractice"`
	OriginalSessionID string       `bson:"originalSessionId,omitempty"`
	PracticeMode      PracticeMode `bson:"practiceMode,omitempty"`

	// Cached free-text generation context; the core treats both as opaque.
	CVContext string `bson:"cvContext,omitempty"`
	JDContext string `bson:"jdContext,omitempty"`

	// Adaptive-pivot state: quality of the last answered question and
	// whether the one clarifying probe has already been spent.
	LastQuality  string `bson:"lastQuality,omitempty"`
	ProbePending bool   `bson:"probePending"`

	CreatedOn int64 `bson:"createdOn"`
	UpdatedOn int64 `bson:"updatedOn"`
}

func NewSessionModel(userID string) *SessionModel {
	now := time.Now().Unix()
	return &SessionModel{
		ID:        uuid.New().String(),
		UserID:    userID,
		Status:    SessionCreated,
		CreatedOn: now,
		UpdatedOn: now,
	}
}

func (m SessionModel) Id() string {
	return m.ID
}

func (m SessionModel) CollectionName() string {
	return "sessions"
}
