package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"qna_workspace/model"
)

type NotificationRepository struct {
	Col *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{Col: db.Collection("notifications")}
}

func (r *NotificationRepository) Insert(ctx context.Context, n model.Notification) (bson.ObjectID, error) {
	res, err := r.Col.InsertOne(ctx, n)
	if err != nil {
		return bson.NilObjectID, err
	}
	return res.InsertedID.(bson.ObjectID), nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, uid string, limit int64) ([]model.Notification, error) {
	cursor, err := r.Col.Find(ctx, bson.M{"user_id": uid},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []model.Notification
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Notification{}
	}
	return out, nil
}

// MarkRead flips read on one notification, scoped to its owner.
func (r *NotificationRepository) MarkRead(ctx context.Context, id bson.ObjectID, uid string) error {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": uid},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
