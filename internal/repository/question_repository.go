package repository

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"qna_workspace/model"
)

// ErrNotFound is returned when a filter matched no document.
var ErrNotFound = errors.New("document not found")

type QuestionRepository struct {
	Col *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{Col: db.Collection("questions")}
}

func (r *QuestionRepository) Insert(ctx context.Context, q model.Question) (bson.ObjectID, error) {
	res, err := r.Col.InsertOne(ctx, q)
	if err != nil {
		return bson.NilObjectID, err
	}
	return res.InsertedID.(bson.ObjectID), nil
}

func (r *QuestionRepository) Get(ctx context.Context, id bson.ObjectID) (model.Question, error) {
	var q model.Question
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&q)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Question{}, ErrNotFound
	}
	if err != nil {
		return model.Question{}, err
	}
	if q.Answers == nil {
		q.Answers = []model.Answer{}
	}
	return q, nil
}

// List returns questions newest first. A non-empty tag filters
// case-insensitively on the tags array.
func (r *QuestionRepository) List(ctx context.Context, tag string, limit int64) ([]model.Question, error) {
	filter := bson.M{}
	if tag != "" {
		filter["tags"] = bson.M{"$regex": "^" + escapeRegex(strings.TrimSpace(tag)) + "$", "$options": "i"}
	}

	cursor, err := r.Col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []model.Question
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].Answers == nil {
			out[i].Answers = []model.Answer{}
		}
	}
	return out, nil
}

// UpdateFields patches top-level question fields (title, tags, ...).
func (r *QuestionRepository) UpdateFields(ctx context.Context, id bson.ObjectID, fields bson.M) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *QuestionRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PushAnswer appends one element to the answers array atomically, so two
// concurrent answer posts to the same question both land.
func (r *QuestionRepository) PushAnswer(ctx context.Context, id bson.ObjectID, ans model.Answer) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$push": bson.M{"answers": ans}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PushComment appends to the comments of the answer with the given element
// id. Filtering by id rather than index keeps a comment from landing on the
// wrong answer when the array changed shape since the caller read it.
func (r *QuestionRepository) PushComment(ctx context.Context, id bson.ObjectID, answerID string, c model.Comment) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$push": bson.M{"answers.$[a].comments": c}},
		options.UpdateOne().SetArrayFilters([]any{bson.M{"a.id": answerID}}))
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *QuestionRepository) PushReply(ctx context.Context, id bson.ObjectID, answerID, commentID string, reply model.Reply) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$push": bson.M{"answers.$[a].comments.$[c].replies": reply}},
		options.UpdateOne().SetArrayFilters([]any{
			bson.M{"a.id": answerID},
			bson.M{"c.id": commentID},
		}))
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *QuestionRepository) SetAnswerText(ctx context.Context, id bson.ObjectID, answerID, text string) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"answers.$[a].text": text}},
		options.UpdateOne().SetArrayFilters([]any{bson.M{"a.id": answerID}}))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PullAnswer removes the answer element by id and clears the accepted mark
// if it pointed at that element.
func (r *QuestionRepository) PullAnswer(ctx context.Context, id bson.ObjectID, answerID string) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$pull": bson.M{"answers": bson.M{"id": answerID}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	_, err = r.Col.UpdateOne(ctx,
		bson.M{"_id": id, "accepted_answer": answerID},
		bson.M{"$unset": bson.M{"accepted_answer": ""}})
	return err
}

func (r *QuestionRepository) SetAccepted(ctx context.Context, id bson.ObjectID, answerID string) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"accepted_answer": answerID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ApplyVote records one user's vote change on one answer element: the count
// moves by delta and the per-user ledger entry is set or cleared. Both land
// in a single update so concurrent votes by different users cannot clobber
// each other's ledger entries.
func (r *QuestionRepository) ApplyVote(ctx context.Context, id bson.ObjectID, answerID, userID string, delta, current int) error {
	update := bson.M{
		"$inc": bson.M{"answers.$[a].votes": delta},
	}
	if current == 0 {
		update["$unset"] = bson.M{"answers.$[a].voted_by." + userID: ""}
	} else {
		update["$set"] = bson.M{"answers.$[a].voted_by." + userID: current}
	}

	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, update,
		options.UpdateOne().SetArrayFilters([]any{bson.M{"a.id": answerID}}))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func escapeRegex(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`, `.`, `\.`, `+`, `\+`, `*`, `\*`, `?`, `\?`,
		`(`, `\(`, `)`, `\)`, `[`, `\[`, `]`, `\]`, `{`, `\{`, `}`, `\}`,
		`^`, `\^`, `$`, `\$`, `|`, `\|`,
	)
	return replacer.Replace(s)
}
