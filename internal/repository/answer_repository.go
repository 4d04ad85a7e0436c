package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"qna_workspace/model"
)

// AnswerRepository maintains the flat answers collection: one row per
// nested answer, written in the same service call that pushes the nested
// element. Profile queries ("answers by user X") read this collection
// instead of scanning every question document.
type AnswerRepository struct {
	Col *mongo.Collection
}

func NewAnswerRepository(db *mongo.Database) *AnswerRepository {
	return &AnswerRepository{Col: db.Collection("answers")}
}

func (r *AnswerRepository) Insert(ctx context.Context, row model.AnswerRow) error {
	_, err := r.Col.InsertOne(ctx, row)
	return err
}

func (r *AnswerRepository) ListByAuthor(ctx context.Context, authorID string, limit int64) ([]model.AnswerRow, error) {
	cursor, err := r.Col.Find(ctx, bson.M{"author_id": authorID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []model.AnswerRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.AnswerRow{}
	}
	return rows, nil
}

func (r *AnswerRepository) UpdateText(ctx context.Context, answerID, text string) error {
	_, err := r.Col.UpdateOne(ctx, bson.M{"answer_id": answerID},
		bson.M{"$set": bson.M{"text": text}})
	return err
}

func (r *AnswerRepository) DeleteByAnswerID(ctx context.Context, answerID string) error {
	_, err := r.Col.DeleteOne(ctx, bson.M{"answer_id": answerID})
	return err
}

// DeleteByQuestion removes every index row of a deleted question.
func (r *AnswerRepository) DeleteByQuestion(ctx context.Context, questionID bson.ObjectID) error {
	_, err := r.Col.DeleteMany(ctx, bson.M{"question_id": questionID})
	return err
}
