package db

import (
	"time"

	"github.com/google/uuid"
)

// ConversationEntryModel joins one question with its (possibly absent)
// answer. Sequence numbers are strictly increasing per session, assigned
// at question-creation time under the session's lock, and never reused.
type ConversationEntryModel struct {
	ID             string `bson:"_id"`
	SessionID      string `bson:"sessionId"`
	QuestionID     string `bson:"questionId"`
	AnswerID       string `bson:"answerId,omitempty"`
	SequenceNumber int    `bson:"sequenceNumber"`
	CreatedOn      int64  `bson:"createdOn"`
}

func NewConversationEntryModel(sessionID, questionID string, sequenceNumber int) *ConversationEntryModel {
	return &ConversationEntryModel{
		ID:             uuid.New().String(),
		SessionID:      sessionID,
		QuestionID:     questionID,
		SequenceNumber: sequenceNumber,
		CreatedOn:      time.Now().Unix(),
	}
}

func (m ConversationEntryModel) Id() string {
	return m.ID
}

func (m ConversationEntryModel) CollectionName() string {
	return "conversationEntries"
}
