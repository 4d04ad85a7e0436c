package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"qna_workspace/internal/logger"
	"qna_workspace/internal/repository"
	"qna_workspace/model"
)

// memBookmarkStore backs users' bookmark arrays with set semantics.
type memBookmarkStore struct {
	bookmarks map[string][]string
	failNext  error
}

func (m *memBookmarkStore) GetByUID(_ context.Context, uid string) (model.User, error) {
	b, ok := m.bookmarks[uid]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return model.User{UID: uid, Bookmarks: append([]string{}, b...)}, nil
}

func (m *memBookmarkStore) AddBookmark(_ context.Context, uid, questionID string) error {
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	for _, id := range m.bookmarks[uid] {
		if id == questionID {
			return nil
		}
	}
	if m.bookmarks == nil {
		m.bookmarks = map[string][]string{}
	}
	m.bookmarks[uid] = append(m.bookmarks[uid], questionID)
	return nil
}

func (m *memBookmarkStore) RemoveBookmark(_ context.Context, uid, questionID string) error {
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	kept := m.bookmarks[uid][:0]
	for _, id := range m.bookmarks[uid] {
		if id != questionID {
			kept = append(kept, id)
		}
	}
	m.bookmarks[uid] = kept
	return nil
}

type memBookmarkQuestions struct {
	docs map[string]model.Question
}

func (m *memBookmarkQuestions) Get(_ context.Context, id bson.ObjectID) (model.Question, error) {
	q, ok := m.docs[id.Hex()]
	if !ok {
		return model.Question{}, repository.ErrNotFound
	}
	return q, nil
}

func newBookmarkService(store *memBookmarkStore, questions *memBookmarkQuestions) *BookmarkService {
	if store.bookmarks == nil {
		store.bookmarks = map[string][]string{}
	}
	if questions == nil {
		questions = &memBookmarkQuestions{docs: map[string]model.Question{}}
	}
	return NewBookmarkService(store, questions, logger.NewLogger("test"))
}

func TestBookmarkRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := &memBookmarkStore{bookmarks: map[string][]string{"u1": {"seed"}}}
	svc := newBookmarkService(store, nil)

	// add then remove restores both the local set and the backend exactly
	require.NoError(t, svc.Add(ctx, "u1", "q42"))
	assert.True(t, svc.IsBookmarked(ctx, "u1", "q42"))

	require.NoError(t, svc.Remove(ctx, "u1", "q42"))
	assert.False(t, svc.IsBookmarked(ctx, "u1", "q42"))

	ids, err := svc.IDs(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"seed"}, ids)
	assert.Equal(t, []string{"seed"}, store.bookmarks["u1"])
}

func TestBookmarkAddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := &memBookmarkStore{bookmarks: map[string][]string{"u1": {}}}
	svc := newBookmarkService(store, nil)

	require.NoError(t, svc.Add(ctx, "u1", "q1"))
	require.NoError(t, svc.Add(ctx, "u1", "q1"))

	assert.Equal(t, []string{"q1"}, store.bookmarks["u1"])
}

func TestBookmarkAnonymousIsNoop(t *testing.T) {
	ctx := context.Background()
	store := &memBookmarkStore{}
	svc := newBookmarkService(store, nil)

	require.NoError(t, svc.Add(ctx, "", "q1"))
	require.NoError(t, svc.Remove(ctx, "", "q1"))
	assert.False(t, svc.IsBookmarked(ctx, "", "q1"))
	assert.Empty(t, store.bookmarks)
}

func TestBookmarkRollbackOnWriteFailure(t *testing.T) {
	ctx := context.Background()
	store := &memBookmarkStore{bookmarks: map[string][]string{"u1": {"q1"}}}
	svc := newBookmarkService(store, nil)

	store.failNext = errors.New("network down")
	err := svc.Add(ctx, "u1", "q2")
	require.Error(t, err)
	assert.False(t, svc.IsBookmarked(ctx, "u1", "q2"),
		"failed add must roll the local set back")

	store.failNext = errors.New("network down")
	err = svc.Remove(ctx, "u1", "q1")
	require.Error(t, err)
	assert.True(t, svc.IsBookmarked(ctx, "u1", "q1"),
		"failed remove must restore the local entry")
}

func TestMaterializeDropsDeletedQuestions(t *testing.T) {
	ctx := context.Background()

	alive := model.Question{ID: bson.NewObjectID(), Title: "still here", CreatedAt: time.Now().UTC()}
	older := model.Question{ID: bson.NewObjectID(), Title: "older", CreatedAt: time.Now().UTC().Add(-time.Hour)}
	deleted := bson.NewObjectID()

	questions := &memBookmarkQuestions{docs: map[string]model.Question{
		alive.ID.Hex(): alive,
		older.ID.Hex(): older,
	}}
	store := &memBookmarkStore{bookmarks: map[string][]string{
		"u1": {older.ID.Hex(), deleted.Hex(), alive.ID.Hex()},
	}}
	svc := newBookmarkService(store, questions)

	got, err := svc.Materialize(ctx, "u1")
	require.NoError(t, err)

	require.Len(t, got, 2, "the deleted question silently disappears")
	assert.Equal(t, "still here", got[0].Title, "newest first")
	assert.Equal(t, "older", got[1].Title)
}
