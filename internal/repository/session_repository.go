package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"qna_workspace/model"
)

// SessionRepository persists live sessions and their messages. Messages live
// in their own collection keyed by session_id and are owned by the session;
// the service deletes them before the session document.
type SessionRepository struct {
	Sessions *mongo.Collection
	Messages *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{
		Sessions: db.Collection("live_sessions"),
		Messages: db.Collection("live_messages"),
	}
}

func (r *SessionRepository) Insert(ctx context.Context, s model.LiveSession) (bson.ObjectID, error) {
	res, err := r.Sessions.InsertOne(ctx, s)
	if err != nil {
		return bson.NilObjectID, err
	}
	return res.InsertedID.(bson.ObjectID), nil
}

func (r *SessionRepository) Get(ctx context.Context, id bson.ObjectID) (model.LiveSession, error) {
	var s model.LiveSession
	err := r.Sessions.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.LiveSession{}, ErrNotFound
	}
	if err != nil {
		return model.LiveSession{}, err
	}
	if s.Participants == nil {
		s.Participants = []string{}
	}
	return s, nil
}

// ListVisible returns browsable sessions, newest first: active ones with at
// least one participant. Host-abandoned sessions (is_active=false) stay
// hidden until the last participant leaves and the document is deleted.
func (r *SessionRepository) ListVisible(ctx context.Context) ([]model.LiveSession, error) {
	filter := bson.M{
		"is_active":      bson.M{"$ne": false},
		"participants.0": bson.M{"$exists": true},
	}
	cursor, err := r.Sessions.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []model.LiveSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []model.LiveSession{}
	}
	return sessions, nil
}

// AddParticipant is idempotent ($addToSet).
func (r *SessionRepository) AddParticipant(ctx context.Context, id bson.ObjectID, uid string) error {
	res, err := r.Sessions.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$addToSet": bson.M{"participants": uid}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SessionRepository) RemoveParticipant(ctx context.Context, id bson.ObjectID, uid string) error {
	res, err := r.Sessions.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$pull": bson.M{"participants": uid}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SessionRepository) SetInactive(ctx context.Context, id bson.ObjectID) error {
	_, err := r.Sessions.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_active": false}})
	return err
}

// DeleteMessages purges every message of a session.
func (r *SessionRepository) DeleteMessages(ctx context.Context, id bson.ObjectID) error {
	_, err := r.Messages.DeleteMany(ctx, bson.M{"session_id": id})
	return err
}

// Delete removes the session document itself. Callers must have purged the
// messages first; deleting the parent first would orphan them.
func (r *SessionRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	_, err := r.Sessions.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *SessionRepository) InsertMessage(ctx context.Context, m model.Message) (bson.ObjectID, error) {
	res, err := r.Messages.InsertOne(ctx, m)
	if err != nil {
		return bson.NilObjectID, err
	}
	return res.InsertedID.(bson.ObjectID), nil
}

func (r *SessionRepository) ListMessages(ctx context.Context, sessionID bson.ObjectID) ([]model.Message, error) {
	cursor, err := r.Messages.Find(ctx, bson.M{"session_id": sessionID},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var msgs []model.Message
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []model.Message{}
	}
	return msgs, nil
}
