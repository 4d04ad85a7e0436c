package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"qna_workspace/internal/authctx"
	"qna_workspace/internal/logger"
	"qna_workspace/internal/thread"
	"qna_workspace/internal/watch"
	"qna_workspace/model"
)

type questionStore interface {
	Insert(ctx context.Context, q model.Question) (bson.ObjectID, error)
	Get(ctx context.Context, id bson.ObjectID) (model.Question, error)
	List(ctx context.Context, tag string, limit int64) ([]model.Question, error)
	UpdateFields(ctx context.Context, id bson.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id bson.ObjectID) error
	PushAnswer(ctx context.Context, id bson.ObjectID, ans model.Answer) error
	PushComment(ctx context.Context, id bson.ObjectID, answerID string, c model.Comment) error
	PushReply(ctx context.Context, id bson.ObjectID, answerID, commentID string, r model.Reply) error
	SetAnswerText(ctx context.Context, id bson.ObjectID, answerID, text string) error
	PullAnswer(ctx context.Context, id bson.ObjectID, answerID string) error
	SetAccepted(ctx context.Context, id bson.ObjectID, answerID string) error
	ApplyVote(ctx context.Context, id bson.ObjectID, answerID, userID string, delta, current int) error
}

type answerIndex interface {
	Insert(ctx context.Context, row model.AnswerRow) error
	UpdateText(ctx context.Context, answerID, text string) error
	DeleteByAnswerID(ctx context.Context, answerID string) error
	DeleteByQuestion(ctx context.Context, questionID bson.ObjectID) error
}

type answerNotifier interface {
	AnswerPosted(ctx context.Context, q model.Question, ans model.Answer)
}

// QuestionService orchestrates every nested-thread mutation. The flow is
// always: read the question fresh, apply the edit in memory to resolve the
// element id, persist with an element-targeted update, then re-read and
// refresh the cache. Indexes held by the UI are never trusted across the
// round trip; the element id from the in-memory resolve is what the write
// filters on.
type QuestionService struct {
	Store  questionStore
	Index  answerIndex
	Points *PointsService
	Noti   answerNotifier
	Cache  *watch.QuestionCache
	Hub    *watch.Hub
	Log    *logger.Logger
}

// NormalizeTags lowercases, trims and dedupes the tag set.
func NormalizeTags(tags []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func (s *QuestionService) AddQuestion(ctx context.Context, viewer authctx.Viewer, title string, tags []string) (model.Question, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Question{}, fmt.Errorf("%w: title is empty", ErrValidation)
	}

	q := model.Question{
		Title:     title,
		Author:    viewer.DisplayName(),
		AuthorID:  viewer.UID,
		Tags:      NormalizeTags(tags),
		Answers:   []model.Answer{},
		CreatedAt: time.Now().UTC(),
	}
	id, err := s.Store.Insert(ctx, q)
	if err != nil {
		return model.Question{}, err
	}
	q.ID = id

	s.Points.RecordActivity(ctx, viewer, KindQuestion)
	s.Cache.Put(q)
	s.Hub.Publish(watch.TopicQuestions, watch.EventQuestionChanged, q)
	return q, nil
}

func (s *QuestionService) ListQuestions(ctx context.Context, tag string, limit int64) ([]model.Question, error) {
	return s.Store.List(ctx, tag, limit)
}

func (s *QuestionService) GetQuestion(ctx context.Context, id bson.ObjectID) (model.Question, error) {
	return s.Store.Get(ctx, id)
}

// EditQuestion patches title/tags. Only the author may edit.
func (s *QuestionService) EditQuestion(ctx context.Context, viewer authctx.Viewer, id bson.ObjectID, title string, tags []string) (model.Question, error) {
	q, err := s.Store.Get(ctx, id)
	if err != nil {
		return model.Question{}, err
	}
	if q.AuthorID != viewer.UID {
		return model.Question{}, ErrForbidden
	}

	fields := bson.M{}
	if t := strings.TrimSpace(title); t != "" {
		fields["title"] = t
	}
	if tags != nil {
		fields["tags"] = NormalizeTags(tags)
	}
	if len(fields) == 0 {
		return model.Question{}, fmt.Errorf("%w: nothing to update", ErrValidation)
	}
	if err := s.Store.UpdateFields(ctx, id, fields); err != nil {
		return model.Question{}, err
	}
	return s.refresh(ctx, id), nil
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, viewer authctx.Viewer, id bson.ObjectID) error {
	q, err := s.Store.Get(ctx, id)
	if err != nil {
		return err
	}
	if q.AuthorID != viewer.UID {
		return ErrForbidden
	}
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.Index.DeleteByQuestion(ctx, id); err != nil {
		s.Log.WithQuestionID(id.Hex()).WithField("error", err.Error()).Error("answer index purge failed")
	}
	s.Cache.Delete(id.Hex())
	s.Hub.Publish(watch.TopicQuestions, watch.EventQuestionDeleted, id.Hex())
	return nil
}

// AddAnswer appends an answer, writes its flat index row, credits the
// answerer and notifies the question author.
func (s *QuestionService) AddAnswer(ctx context.Context, viewer authctx.Viewer, questionID bson.ObjectID, text string) (model.Answer, error) {
	q, err := s.Store.Get(ctx, questionID)
	if err != nil {
		return model.Answer{}, err
	}

	ans, err := thread.NewAnswer(text, viewer.DisplayName(), viewer.UID, time.Now().UTC())
	if err != nil {
		return model.Answer{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if err := s.Store.PushAnswer(ctx, questionID, ans); err != nil {
		return model.Answer{}, err
	}

	if err := s.Index.Insert(ctx, model.AnswerRow{
		AnswerID:   ans.ID,
		QuestionID: questionID,
		AuthorID:   viewer.UID,
		Text:       ans.Text,
		CreatedAt:  ans.CreatedAt,
	}); err != nil {
		s.Log.WithQuestionID(questionID.Hex()).WithField("error", err.Error()).Error("answer index write failed")
	}

	s.Points.RecordActivity(ctx, viewer, KindAnswer)
	s.Noti.AnswerPosted(ctx, q, ans)
	s.refresh(ctx, questionID)
	return ans, nil
}

// EditAnswer persists the new text. Only the answer's author may edit.
func (s *QuestionService) EditAnswer(ctx context.Context, viewer authctx.Viewer, questionID bson.ObjectID, answerIdx int, text string) error {
	q, err := s.Store.Get(ctx, questionID)
	if err != nil {
		return err
	}
	ans, err := thread.ResolveAnswer(&q, answerIdx)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if ans.AuthorID != viewer.UID {
		return ErrForbidden
	}

	answerID, err := thread.EditAnswer(&q, answerIdx, text)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if err := s.Store.SetAnswerText(ctx, questionID, answerID, q.Answers[answerIdx].Text); err != nil {
		return err
	}
	if err := s.Index.UpdateText(ctx, answerID, q.Answers[answerIdx].Text); err != nil {
		s.Log.WithQuestionID(questionID.Hex()).WithField("error", err.Error()).Error("answer index update failed")
	}
	s.refresh(ctx, questionID)
	return nil
}

// DeleteAnswer removes the element at answerIdx. The answer's author or the
// question's author may delete.
func (s *QuestionService) DeleteAnswer(ctx context.Context, viewer authctx.Viewer, questionID bson.ObjectID, answerIdx int) error {
	q, err := s.Store.Get(ctx, questionID)
	if err != nil {
		return err
	}
	ans, err := thread.ResolveAnswer(&q, answerIdx)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if ans.AuthorID != viewer.UID && q.AuthorID != viewer.UID {
		return ErrForbidden
	}

	answerID, err := thread.RemoveAnswer(&q, answerIdx)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if err := s.Store.PullAnswer(ctx, questionID, answerID); err != nil {
		return err
	}
	if err := s.Index.DeleteByAnswerID(ctx, answerID); err != nil {
		s.Log.WithQuestionID(questionID.Hex()).WithField("error", err.Error()).Error("answer index delete failed")
	}
	s.refresh(ctx, questionID)
	return nil
}

func (s *QuestionService) AddComment(ctx context.Context, viewer authctx.Viewer, questionID bson.ObjectID, answerIdx int, text string) (model.Comment, error) {
	q, err := s.Store.Get(ctx, questionID)
	if err != nil {
		return model.Comment{}, err
	}
	ans, err := thread.ResolveAnswer(&q, answerIdx)
	if err != nil {
		return model.Comment{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	c, err := thread.NewComment(text, viewer.DisplayName(), viewer.UID, time.Now().UTC())
	if err != nil {
		return model.Comment{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if err := s.Store.PushComment(ctx, questionID, ans.ID, c); err != nil {
		return model.Comment{}, err
	}
	s.refresh(ctx, questionID)
	return c, nil
}

func (s *QuestionService) AddReply(ctx context.Context, viewer authctx.Viewer, questionID bson.ObjectID, answerIdx, commentIdx int, text string) (model.Reply, error) {
	q, err := s.Store.Get(ctx, questionID)
	if err != nil {
		return model.Reply{}, err
	}
	com, err := thread.ResolveComment(&q, answerIdx, commentIdx)
	if err != nil {
		return model.Reply{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	ans := q.Answers[answerIdx]

	r, err := thread.NewReply(text, viewer.DisplayName(), viewer.UID, time.Now().UTC())
	if err != nil {
		return model.Reply{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if err := s.Store.PushReply(ctx, questionID, ans.ID, com.ID, r); err != nil {
		return model.Reply{}, err
	}
	s.refresh(ctx, questionID)
	return r, nil
}

// MarkAccepted records the accepted answer. Question author only.
func (s *QuestionService) MarkAccepted(ctx context.Context, viewer authctx.Viewer, questionID bson.ObjectID, answerIdx int) error {
	q, err := s.Store.Get(ctx, questionID)
	if err != nil {
		return err
	}
	if q.AuthorID != viewer.UID {
		return ErrForbidden
	}
	answerID, err := thread.MarkAccepted(&q, answerIdx)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if err := s.Store.SetAccepted(ctx, questionID, answerID); err != nil {
		return err
	}
	s.refresh(ctx, questionID)
	return nil
}

// Vote toggles one user's vote on one answer. The cache is refreshed only
// after the write succeeds, so a failed write leaves the observable count
// untouched instead of drifting.
func (s *QuestionService) Vote(ctx context.Context, viewer authctx.Viewer, questionID bson.ObjectID, answerIdx, direction int) (thread.VoteResult, error) {
	if viewer.UID == "" {
		return thread.VoteResult{}, ErrUnauthenticated
	}
	q, err := s.Store.Get(ctx, questionID)
	if err != nil {
		return thread.VoteResult{}, err
	}
	ans, err := thread.ResolveAnswer(&q, answerIdx)
	if err != nil {
		return thread.VoteResult{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	res, err := thread.ApplyVote(ans, viewer.UID, direction)
	if err != nil {
		return thread.VoteResult{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if err := s.Store.ApplyVote(ctx, questionID, ans.ID, viewer.UID, res.Delta, res.Current); err != nil {
		return thread.VoteResult{}, err
	}
	s.refresh(ctx, questionID)
	return res, nil
}

// refresh re-reads the question after a successful write and pushes it to
// the cache and subscribers. The re-read (rather than trusting the local
// mutation) picks up whatever other writers did during the round trip.
func (s *QuestionService) refresh(ctx context.Context, id bson.ObjectID) model.Question {
	q, err := s.Store.Get(ctx, id)
	if err != nil {
		s.Log.WithQuestionID(id.Hex()).WithField("error", err.Error()).Warn("cache refresh failed")
		return model.Question{}
	}
	s.Cache.Put(q)
	s.Hub.Publish(watch.TopicQuestions, watch.EventQuestionChanged, q)
	return q
}
