package db

import "time"

// AnswerFeedbackModel is written asynchronously by the evaluation pipeline,
// keyed by answer id. It may legitimately not exist yet when a report is
// requested.
type AnswerFeedbackModel struct {
	AnswerID string `bson:"_id"`

	// Per-criterion scores normalized to 0-1, plus the weighted final.
	Scores     map[string]float64 `bson:"scores"`
	FinalScore float64            `bson:"finalScore"`

	Feedback     string `bson:"feedback,omitempty"`
	SampleAnswer string `bson:"sampleAnswer,omitempty"`
	EvaluatedBy  string `bson:"evaluatedBy,omitempty"`
	CreatedOn    int64  `bson:"createdOn"`
}

func NewAnswerFeedbackModel(answerID string) *AnswerFeedbackModel {
	return &AnswerFeedbackModel{
		AnswerID:  answerID,
		Scores:    make(map[string]float64),
		CreatedOn: time.Now().Unix(),
	}
}

func (m AnswerFeedbackModel) Id() string {
	return m.AnswerID
}

func (m AnswerFeedbackModel) CollectionName() string {
	return "answerFeedback"
}
