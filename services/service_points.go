package services

import (
	"context"
	"fmt"
	"time"

	"qna_workspace/internal/authctx"
	"qna_workspace/internal/logger"
	"qna_workspace/model"
)

// Activity kinds and their point values.
const (
	KindQuestion = "question"
	KindAnswer   = "answer"

	PointsPerQuestion = 5
	PointsPerAnswer   = 10
)

type activityStore interface {
	ApplyActivity(ctx context.Context, uid, username, email string, inc model.ActivityDelta) error
}

// PointsService credits users for posting activity. Points are best-effort
// gamification, not a ledger of record: failures are logged and dropped,
// never retried or surfaced.
type PointsService struct {
	Users activityStore
	Log   *logger.Logger
}

// ActivityFor translates an activity kind into counter increments.
func ActivityFor(kind string, now time.Time) (model.ActivityDelta, error) {
	switch kind {
	case KindQuestion:
		return model.ActivityDelta{Points: PointsPerQuestion, QuestionsPosted: 1, At: now}, nil
	case KindAnswer:
		return model.ActivityDelta{Points: PointsPerAnswer, AnswersPosted: 1, At: now}, nil
	}
	return model.ActivityDelta{}, fmt.Errorf("unknown activity kind %q", kind)
}

// RecordActivity applies the credit for one posted question or answer,
// creating the user record on first activity. Fire-and-forget.
func (s *PointsService) RecordActivity(ctx context.Context, viewer authctx.Viewer, kind string) {
	delta, err := ActivityFor(kind, time.Now().UTC())
	if err != nil {
		s.Log.WithUserID(viewer.UID).WithField("kind", kind).Warn("activity credit skipped")
		return
	}
	if err := s.Users.ApplyActivity(ctx, viewer.UID, viewer.DisplayName(), viewer.Email, delta); err != nil {
		s.Log.WithUserID(viewer.UID).WithField("error", err.Error()).Warn("activity credit failed")
	}
}
