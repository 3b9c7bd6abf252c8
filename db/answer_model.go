package db

import (
	"time"

	"github.com/google/uuid"
)

type AnswerModel struct {
	ID         string `bson:"_id"`
	QuestionID string `bson:"questionId"`
	Content    string `bson:"content"`
	CreatedOn  int64  `bson:"createdOn"`
}

func NewAnswerModel(questionID, content string) *AnswerModel {
	return &AnswerModel{
		ID:         uuid.New().String(),
		QuestionID: questionID,
		Content:    content,
		CreatedOn:  time.Now().Unix(),
	}
}

func (m AnswerModel) Id() string {
	return m.ID
}

func (m AnswerModel) CollectionName() string {
	return "answers"
}
