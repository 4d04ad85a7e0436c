package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"qna_workspace/model"
)

type UserRepository struct {
	Col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{Col: db.Collection("users")}
}

func (r *UserRepository) Insert(ctx context.Context, u model.User) (dup bool, err error) {
	_, err = r.Col.InsertOne(ctx, u)
	if err == nil {
		return false, nil
	}
	var we mongo.WriteException
	if errors.As(err, &we) && len(we.WriteErrors) > 0 && we.WriteErrors[0].Code == 11000 {
		return true, nil
	}
	return false, err
}

func (r *UserRepository) GetByUID(ctx context.Context, uid string) (model.User, error) {
	var u model.User
	err := r.Col.FindOne(ctx, bson.M{"uid": uid}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	if u.Bookmarks == nil {
		u.Bookmarks = []string{}
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.Col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// ApplyActivity upserts the activity counters in one atomic update: $inc on
// the counters, identity fields only on insert. Lazy user creation and
// concurrent activity from two clients both come out right without a read.
func (r *UserRepository) ApplyActivity(ctx context.Context, uid, username, email string, inc model.ActivityDelta) error {
	_, err := r.Col.UpdateOne(ctx,
		bson.M{"uid": uid},
		bson.M{
			"$inc": bson.M{
				"points":           inc.Points,
				"questions_posted": inc.QuestionsPosted,
				"answers_posted":   inc.AnswersPosted,
			},
			"$setOnInsert": bson.M{
				"uid":        uid,
				"username":   username,
				"email":      email,
				"bookmarks":  []string{},
				"created_at": inc.At,
			},
		},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}

// AddBookmark is the set-union primitive: already-present ids are a no-op.
func (r *UserRepository) AddBookmark(ctx context.Context, uid, questionID string) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"uid": uid},
		bson.M{"$addToSet": bson.M{"bookmarks": questionID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveBookmark is the set-difference primitive.
func (r *UserRepository) RemoveBookmark(ctx context.Context, uid, questionID string) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"uid": uid},
		bson.M{"$pull": bson.M{"bookmarks": questionID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// TopByPoints returns up to limit users, points descending. Mongo does not
// promise a stable order between equal point totals, so _id ascending is the
// explicit tie-break.
func (r *UserRepository) TopByPoints(ctx context.Context, limit int64) ([]model.User, error) {
	cursor, err := r.Col.Find(ctx, bson.M{},
		options.Find().
			SetSort(bson.D{{Key: "points", Value: -1}, {Key: "_id", Value: 1}}).
			SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
