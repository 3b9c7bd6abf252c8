package db

import (
	"context"

	"github.com/SaiNageswarS/go-api-boot/odm"
)

func InitInterviewDB(ctx context.Context, mongo odm.MongoClient, tenant string) error {
	err := odm.EnsureIndexes[SessionModel](ctx, mongo, tenant)
	if err != nil {
		return err
	}

	err = odm.EnsureIndexes[QuestionModel](ctx, mongo, tenant)
	if err != nil {
		return err
	}

	err = odm.EnsureIndexes[AnswerModel](ctx, mongo, tenant)
	if err != nil {
		return err
	}

	err = odm.EnsureIndexes[ConversationEntryModel](ctx, mongo, tenant)
	if err != nil {
		return err
	}

	err = odm.EnsureIndexes[AnswerFeedbackModel](ctx, mongo, tenant)
	if err != nil {
		return err
	}

	return nil
}
