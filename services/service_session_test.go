package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"qna_workspace/internal/authctx"
	"qna_workspace/internal/logger"
	"qna_workspace/internal/repository"
	"qna_workspace/internal/watch"
	"qna_workspace/model"
)

// memSessionStore keeps sessions and messages in memory and records the
// order of destructive operations, so tests can assert the two-phase
// delete order.
type memSessionStore struct {
	sessions map[string]*model.LiveSession
	messages map[string][]model.Message
	ops      []string
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{
		sessions: map[string]*model.LiveSession{},
		messages: map[string][]model.Message{},
	}
}

func (m *memSessionStore) Insert(_ context.Context, s model.LiveSession) (bson.ObjectID, error) {
	id := bson.NewObjectID()
	s.ID = id
	m.sessions[id.Hex()] = &s
	return id, nil
}

func (m *memSessionStore) Get(_ context.Context, id bson.ObjectID) (model.LiveSession, error) {
	s, ok := m.sessions[id.Hex()]
	if !ok {
		return model.LiveSession{}, repository.ErrNotFound
	}
	out := *s
	out.Participants = append([]string{}, s.Participants...)
	return out, nil
}

func (m *memSessionStore) ListVisible(_ context.Context) ([]model.LiveSession, error) {
	out := []model.LiveSession{}
	for _, s := range m.sessions {
		if s.IsActive && len(s.Participants) > 0 {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *memSessionStore) AddParticipant(_ context.Context, id bson.ObjectID, uid string) error {
	s, ok := m.sessions[id.Hex()]
	if !ok {
		return repository.ErrNotFound
	}
	for _, p := range s.Participants {
		if p == uid {
			return nil
		}
	}
	s.Participants = append(s.Participants, uid)
	return nil
}

func (m *memSessionStore) RemoveParticipant(_ context.Context, id bson.ObjectID, uid string) error {
	s, ok := m.sessions[id.Hex()]
	if !ok {
		return repository.ErrNotFound
	}
	kept := s.Participants[:0]
	for _, p := range s.Participants {
		if p != uid {
			kept = append(kept, p)
		}
	}
	s.Participants = kept
	return nil
}

func (m *memSessionStore) SetInactive(_ context.Context, id bson.ObjectID) error {
	if s, ok := m.sessions[id.Hex()]; ok {
		s.IsActive = false
	}
	return nil
}

func (m *memSessionStore) DeleteMessages(_ context.Context, id bson.ObjectID) error {
	m.ops = append(m.ops, "delete_messages")
	delete(m.messages, id.Hex())
	return nil
}

func (m *memSessionStore) Delete(_ context.Context, id bson.ObjectID) error {
	m.ops = append(m.ops, "delete_session")
	delete(m.sessions, id.Hex())
	return nil
}

func (m *memSessionStore) InsertMessage(_ context.Context, msg model.Message) (bson.ObjectID, error) {
	id := bson.NewObjectID()
	msg.ID = id
	m.messages[msg.SessionID.Hex()] = append(m.messages[msg.SessionID.Hex()], msg)
	return id, nil
}

func (m *memSessionStore) ListMessages(_ context.Context, sessionID bson.ObjectID) ([]model.Message, error) {
	return append([]model.Message{}, m.messages[sessionID.Hex()]...), nil
}

func newSessionService(store sessionStore) *SessionService {
	return &SessionService{
		Store: store,
		Hub:   watch.NewHub(),
		Log:   logger.NewLogger("test"),
	}
}

var (
	host  = authctx.Viewer{UID: "host1", Username: "hosty"}
	guest = authctx.Viewer{UID: "guest1", Username: "guestie"}
)

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("create requires auth and title", func(t *testing.T) {
		svc := newSessionService(newMemSessionStore())

		_, err := svc.Create(ctx, authctx.Viewer{}, "anything")
		assert.ErrorIs(t, err, ErrUnauthenticated)
		_, err = svc.Create(ctx, host, "  ")
		assert.ErrorIs(t, err, ErrValidation)

		sess, err := svc.Create(ctx, host, "office hours")
		require.NoError(t, err)
		assert.True(t, sess.IsActive)
		assert.Equal(t, []string{"host1"}, sess.Participants)
	})

	t.Run("join is idempotent", func(t *testing.T) {
		store := newMemSessionStore()
		svc := newSessionService(store)
		sess, err := svc.Create(ctx, host, "office hours")
		require.NoError(t, err)

		require.NoError(t, svc.Join(ctx, guest, sess.ID))
		require.NoError(t, svc.Join(ctx, guest, sess.ID))

		got, err := store.Get(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"host1", "guest1"}, got.Participants)
	})

	t.Run("host leaving hides the session but keeps it alive", func(t *testing.T) {
		store := newMemSessionStore()
		svc := newSessionService(store)
		sess, err := svc.Create(ctx, host, "office hours")
		require.NoError(t, err)
		require.NoError(t, svc.Join(ctx, guest, sess.ID))

		require.NoError(t, svc.Leave(ctx, host, sess.ID))

		got, err := store.Get(ctx, sess.ID)
		require.NoError(t, err, "session still exists while a guest remains")
		assert.False(t, got.IsActive)

		visible, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, visible, "inactive sessions are hidden from the list")
	})

	t.Run("last participant leaving deletes messages before the session", func(t *testing.T) {
		store := newMemSessionStore()
		svc := newSessionService(store)
		sess, err := svc.Create(ctx, host, "office hours")
		require.NoError(t, err)

		_, sent := svc.SendMessage(ctx, host, sess.ID, "hello everyone")
		require.True(t, sent)

		require.NoError(t, svc.Leave(ctx, host, sess.ID))

		assert.Equal(t, []string{"delete_messages", "delete_session"}, store.ops,
			"message purge must complete before the session document is deleted")

		_, err = store.Get(ctx, sess.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		msgs, err := svc.Messages(ctx, sess.ID)
		require.NoError(t, err)
		assert.Empty(t, msgs, "no partial message set may survive the session")
	})
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()
	store := newMemSessionStore()
	svc := newSessionService(store)
	sess, err := svc.Create(ctx, host, "chatty")
	require.NoError(t, err)

	t.Run("delivers with sender identity and timestamp", func(t *testing.T) {
		before := time.Now().UTC()
		msg, ok := svc.SendMessage(ctx, guest, sess.ID, "  hi  ")
		require.True(t, ok)

		assert.Equal(t, "hi", msg.Text)
		assert.Equal(t, "guest1", msg.SenderID)
		assert.Equal(t, "guestie", msg.SenderName)
		assert.False(t, msg.Timestamp.Before(before))
	})

	t.Run("silent no-op for anonymous sender", func(t *testing.T) {
		_, ok := svc.SendMessage(ctx, authctx.Viewer{}, sess.ID, "sneaky")
		assert.False(t, ok)
	})

	t.Run("silent no-op for retired session", func(t *testing.T) {
		require.NoError(t, store.SetInactive(ctx, sess.ID))
		_, ok := svc.SendMessage(ctx, guest, sess.ID, "too late")
		assert.False(t, ok)

		msgs, err := svc.Messages(ctx, sess.ID)
		require.NoError(t, err)
		assert.Len(t, msgs, 1)
	})
}
