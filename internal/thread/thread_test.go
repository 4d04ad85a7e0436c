package thread

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qna_workspace/model"
)

func newTestQuestion(t *testing.T, answers int) *model.Question {
	t.Helper()
	q := &model.Question{
		Title:     "Why is the sky blue?",
		Author:    "userA",
		AuthorID:  "uidA",
		Tags:      []string{"science", "physics"},
		Answers:   []model.Answer{},
		CreatedAt: time.Now().UTC(),
	}
	for i := 0; i < answers; i++ {
		ans, err := NewAnswer("answer text", "userB", "uidB", time.Now().UTC())
		require.NoError(t, err)
		AppendAnswer(q, ans)
	}
	return q
}

func TestNewAnswer(t *testing.T) {
	t.Run("trims text and initializes fields", func(t *testing.T) {
		ans, err := NewAnswer("  Rayleigh scattering  ", "userB", "uidB", time.Now().UTC())
		require.NoError(t, err)

		assert.Equal(t, "Rayleigh scattering", ans.Text)
		assert.NotEmpty(t, ans.ID)
		assert.Zero(t, ans.Votes)
		assert.NotNil(t, ans.VotedBy)
		assert.NotNil(t, ans.Comments)
	})

	t.Run("rejects blank text", func(t *testing.T) {
		_, err := NewAnswer("   ", "userB", "uidB", time.Now().UTC())
		assert.ErrorIs(t, err, ErrEmptyText)
	})
}

func TestAppendComment(t *testing.T) {
	q := newTestQuestion(t, 2)

	c, err := NewComment("nice explanation", "userC", "uidC", time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, AppendComment(q, 1, c))

	assert.Len(t, q.Answers[1].Comments, 1)
	assert.Empty(t, q.Answers[0].Comments)

	err = AppendComment(q, 5, c)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestAppendReply(t *testing.T) {
	q := newTestQuestion(t, 1)
	c, err := NewComment("could you expand?", "userC", "uidC", time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, AppendComment(q, 0, c))

	r, err := NewReply("sure, see the link", "userB", "uidB", time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, AppendReply(q, 0, 0, r))

	assert.Len(t, q.Answers[0].Comments[0].Replies, 1)

	err = AppendReply(q, 0, 3, r)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestEditAnswer(t *testing.T) {
	q := newTestQuestion(t, 1)

	id, err := EditAnswer(q, 0, "  corrected text ")
	require.NoError(t, err)

	assert.Equal(t, q.Answers[0].ID, id)
	assert.Equal(t, "corrected text", q.Answers[0].Text)

	_, err = EditAnswer(q, 0, " ")
	assert.ErrorIs(t, err, ErrEmptyText)
	_, err = EditAnswer(q, 9, "x")
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestRemoveAnswer(t *testing.T) {
	t.Run("removes by position", func(t *testing.T) {
		q := newTestQuestion(t, 3)
		survivor := q.Answers[2].ID

		removed, err := RemoveAnswer(q, 1)
		require.NoError(t, err)

		assert.Len(t, q.Answers, 2)
		assert.NotEqual(t, removed, q.Answers[0].ID)
		assert.Equal(t, survivor, q.Answers[1].ID)
	})

	t.Run("clears accepted mark when accepted answer is removed", func(t *testing.T) {
		q := newTestQuestion(t, 2)
		_, err := MarkAccepted(q, 1)
		require.NoError(t, err)

		_, err = RemoveAnswer(q, 1)
		require.NoError(t, err)
		assert.Empty(t, q.AcceptedAnswer)
	})

	t.Run("accepted mark survives removal of an earlier answer", func(t *testing.T) {
		q := newTestQuestion(t, 3)
		acceptedID, err := MarkAccepted(q, 2)
		require.NoError(t, err)

		// Removing answers[0] shifts positions; the mark is by id, so it
		// still points at the same answer.
		_, err = RemoveAnswer(q, 0)
		require.NoError(t, err)
		assert.Equal(t, acceptedID, q.AcceptedAnswer)
		assert.Equal(t, acceptedID, q.Answers[1].ID)
	})
}

func TestMarkAccepted(t *testing.T) {
	q := newTestQuestion(t, 2)

	id, err := MarkAccepted(q, 0)
	require.NoError(t, err)
	assert.Equal(t, q.Answers[0].ID, id)
	assert.Equal(t, id, q.AcceptedAnswer)

	_, err = MarkAccepted(q, 7)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

// Two clients that each snapshot the answers array, append to their copy and
// write the whole array back will lose one of the two comments: the second
// write replaces the first. Appending to the shared document element keeps
// both. The write path uses per-element pushes for exactly this reason.
func TestSnapshotRewriteLosesConcurrentComment(t *testing.T) {
	base := newTestQuestion(t, 1)

	c1, err := NewComment("from client one", "c1", "uid1", time.Now().UTC())
	require.NoError(t, err)
	c2, err := NewComment("from client two", "c2", "uid2", time.Now().UTC())
	require.NoError(t, err)

	// Naive read-modify-write: both clients copy the same snapshot.
	snapshotA := append([]model.Comment{}, base.Answers[0].Comments...)
	snapshotB := append([]model.Comment{}, base.Answers[0].Comments...)
	snapshotA = append(snapshotA, c1)
	snapshotB = append(snapshotB, c2)

	// Last write wins at the backend: client two's array replaces client
	// one's entirely.
	base.Answers[0].Comments = snapshotA
	base.Answers[0].Comments = snapshotB
	assert.Len(t, base.Answers[0].Comments, 1, "whole-array rewrite drops the concurrent comment")

	// Element-targeted appends applied in either order keep both.
	atomic := newTestQuestion(t, 1)
	require.NoError(t, AppendComment(atomic, 0, c1))
	require.NoError(t, AppendComment(atomic, 0, c2))
	assert.Len(t, atomic.Answers[0].Comments, 2)
}
