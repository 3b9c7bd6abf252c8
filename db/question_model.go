package db

import (
	"time"

	"github.com/google/uuid"
)

// QuestionModel is one generated interview question. Content is immutable
// once created; ordering lives on the conversation entry, not here.
type QuestionModel struct {
	ID           string `bson:"_id"`
	SessionID    string `bson:"sessionId"`
	Content      string `bson:"content"`
	SkillTag     string `bson:"skillTag,omitempty"`
	QuestionType string `bson:"questionType,omitempty"`
	Difficulty   string `bson:"difficulty,omitempty"`
	CreatedOn    int64  `bson:"createdOn"`
}

func NewQuestionModel(sessionID, content string) *QuestionModel {
	return &QuestionModel{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Content:   content,
		CreatedOn: time.Now().Unix(),
	}
}

func (m QuestionModel) Id() string {
	return m.ID
}

func (m QuestionModel) CollectionName() string {
	return "questions"
}
