package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"qna_workspace/internal/logger"
	"qna_workspace/internal/watch"
	"qna_workspace/model"
)

const NotiAnswer model.NotiType = "answer"

type notificationStore interface {
	Insert(ctx context.Context, n model.Notification) (bson.ObjectID, error)
	ListByUser(ctx context.Context, uid string, limit int64) ([]model.Notification, error)
	MarkRead(ctx context.Context, id bson.ObjectID, uid string) error
}

type NotificationService struct {
	Store notificationStore
	Hub   *watch.Hub
	Log   *logger.Logger
}

// AnswerPosted notifies the question author about a new answer. Self-answers
// are skipped. Best-effort: a failed insert is logged, not surfaced.
func (s *NotificationService) AnswerPosted(ctx context.Context, q model.Question, ans model.Answer) {
	if q.AuthorID == "" || q.AuthorID == ans.AuthorID {
		return
	}
	n := model.Notification{
		UserID:     q.AuthorID,
		Message:    fmt.Sprintf("Your question %q received a new answer.", q.Title),
		QuestionID: q.ID,
		AnswerID:   ans.ID,
		Type:       NotiAnswer,
		Read:       false,
		CreatedAt:  time.Now().UTC(),
	}
	id, err := s.Store.Insert(ctx, n)
	if err != nil {
		s.Log.WithUserID(q.AuthorID).WithField("error", err.Error()).Warn("notification insert failed")
		return
	}
	n.ID = id
	s.Hub.Publish(watch.UserTopic(q.AuthorID), watch.EventNotification, n)
}

func (s *NotificationService) List(ctx context.Context, uid string, limit int64) ([]model.Notification, error) {
	return s.Store.ListByUser(ctx, uid, limit)
}

func (s *NotificationService) MarkRead(ctx context.Context, uid string, id bson.ObjectID) error {
	return s.Store.MarkRead(ctx, id, uid)
}
