package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"qna_workspace/internal/authctx"
	"qna_workspace/internal/logger"
	"qna_workspace/internal/repository"
	"qna_workspace/internal/watch"
	"qna_workspace/model"
)

type sessionStore interface {
	Insert(ctx context.Context, s model.LiveSession) (bson.ObjectID, error)
	Get(ctx context.Context, id bson.ObjectID) (model.LiveSession, error)
	ListVisible(ctx context.Context) ([]model.LiveSession, error)
	AddParticipant(ctx context.Context, id bson.ObjectID, uid string) error
	RemoveParticipant(ctx context.Context, id bson.ObjectID, uid string) error
	SetInactive(ctx context.Context, id bson.ObjectID) error
	DeleteMessages(ctx context.Context, id bson.ObjectID) error
	Delete(ctx context.Context, id bson.ObjectID) error
	InsertMessage(ctx context.Context, m model.Message) (bson.ObjectID, error)
	ListMessages(ctx context.Context, sessionID bson.ObjectID) ([]model.Message, error)
}

// SessionService owns the live session lifecycle:
// created -> active -> inactive (host left) -> deleted (last participant left).
type SessionService struct {
	Store sessionStore
	Hub   *watch.Hub
	Log   *logger.Logger
}

func (s *SessionService) Create(ctx context.Context, viewer authctx.Viewer, title string) (model.LiveSession, error) {
	if viewer.UID == "" {
		return model.LiveSession{}, ErrUnauthenticated
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return model.LiveSession{}, fmt.Errorf("%w: title is empty", ErrValidation)
	}

	sess := model.LiveSession{
		Title:        title,
		HostID:       viewer.UID,
		HostName:     viewer.DisplayName(),
		Participants: []string{viewer.UID},
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	id, err := s.Store.Insert(ctx, sess)
	if err != nil {
		return model.LiveSession{}, err
	}
	sess.ID = id
	s.Hub.Publish(watch.TopicSessions, watch.EventSessionsChanged, sess)
	return sess, nil
}

func (s *SessionService) List(ctx context.Context) ([]model.LiveSession, error) {
	return s.Store.ListVisible(ctx)
}

// Join adds the viewer to the participant set; joining twice is a no-op.
func (s *SessionService) Join(ctx context.Context, viewer authctx.Viewer, id bson.ObjectID) error {
	if viewer.UID == "" {
		return ErrUnauthenticated
	}
	if err := s.Store.AddParticipant(ctx, id, viewer.UID); err != nil {
		return err
	}
	s.Hub.Publish(watch.TopicSessions, watch.EventSessionsChanged, id.Hex())
	return nil
}

// Leave removes the viewer. The host leaving retires the session
// (is_active=false); the last participant leaving deletes it — messages
// first, then the session document, in that order, so no message can
// outlive its parent.
func (s *SessionService) Leave(ctx context.Context, viewer authctx.Viewer, id bson.ObjectID) error {
	if viewer.UID == "" {
		return ErrUnauthenticated
	}
	sess, err := s.Store.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Store.RemoveParticipant(ctx, id, viewer.UID); err != nil {
		return err
	}
	if sess.HostID == viewer.UID {
		if err := s.Store.SetInactive(ctx, id); err != nil {
			return err
		}
	}

	// Re-read: another participant may have joined or left during the
	// round trips above.
	updated, err := s.Store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil // a concurrent leaver already cleaned up
		}
		return err
	}
	if len(updated.Participants) == 0 {
		if err := s.Store.DeleteMessages(ctx, id); err != nil {
			return err
		}
		if err := s.Store.Delete(ctx, id); err != nil {
			return err
		}
	}
	s.Hub.Publish(watch.TopicSessions, watch.EventSessionsChanged, id.Hex())
	return nil
}

// SendMessage appends a chat message. Both preconditions failing are silent
// no-ops by contract: an unauthenticated sender or a retired session drops
// the message without an error.
func (s *SessionService) SendMessage(ctx context.Context, viewer authctx.Viewer, id bson.ObjectID, text string) (model.Message, bool) {
	if viewer.UID == "" {
		s.Log.Debug("chat message dropped: anonymous sender")
		return model.Message{}, false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Message{}, false
	}
	sess, err := s.Store.Get(ctx, id)
	if err != nil || !sess.IsActive {
		s.Log.WithField("session_id", id.Hex()).Debug("chat message dropped: session not active")
		return model.Message{}, false
	}

	msg := model.Message{
		SessionID:  id,
		Text:       text,
		SenderID:   viewer.UID,
		SenderName: viewer.DisplayName(),
		Timestamp:  time.Now().UTC(),
	}
	msgID, err := s.Store.InsertMessage(ctx, msg)
	if err != nil {
		s.Log.WithField("error", err.Error()).Error("chat message write failed")
		return model.Message{}, false
	}
	msg.ID = msgID
	s.Hub.Publish(watch.SessionTopic(id.Hex()), watch.EventChatMessage, msg)
	return msg, true
}

func (s *SessionService) Messages(ctx context.Context, id bson.ObjectID) ([]model.Message, error) {
	return s.Store.ListMessages(ctx, id)
}
