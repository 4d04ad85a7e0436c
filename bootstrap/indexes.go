package bootstrap

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EnsureIndexes creates every index the query paths rely on. CreateMany is
// idempotent, so this runs on every boot.
func EnsureIndexes(db *mongo.Database) error {
	ctx := context.Background()

	if _, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "uid", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_uid"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			Keys:    bson.D{{Key: "points", Value: -1}},
			Options: options.Index().SetName("points_desc"),
		},
	}); err != nil {
		return err
	}

	if _, err := db.Collection("questions").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: -1}},
		Options: options.Index().SetName("created_desc"),
	}); err != nil {
		return err
	}

	if _, err := db.Collection("answers").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "answer_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_answer_id"),
		},
		{
			Keys:    bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("author_created"),
		},
		{
			Keys:    bson.D{{Key: "question_id", Value: 1}},
			Options: options.Index().SetName("by_question"),
		},
	}); err != nil {
		return err
	}

	if _, err := db.Collection("notifications").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("user_created"),
	}); err != nil {
		return err
	}

	if _, err := db.Collection("live_messages").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "session_id", Value: 1}, {Key: "timestamp", Value: 1}},
		Options: options.Index().SetName("session_time"),
	}); err != nil {
		return err
	}

	return nil
}
