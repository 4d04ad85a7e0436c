package thread

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qna_workspace/model"
)

func newTestAnswer(t *testing.T) *model.Answer {
	t.Helper()
	ans, err := NewAnswer("Rayleigh scattering", "userB", "uidB", time.Now().UTC())
	require.NoError(t, err)
	return &ans
}

func TestApplyVote(t *testing.T) {
	t.Run("first upvote", func(t *testing.T) {
		ans := newTestAnswer(t)

		res, err := ApplyVote(ans, "u1", 1)
		require.NoError(t, err)

		assert.Equal(t, 0, res.Previous)
		assert.Equal(t, 1, res.Current)
		assert.Equal(t, 1, ans.Votes)
		assert.Equal(t, 1, ans.VotedBy["u1"])
	})

	t.Run("same direction twice toggles off", func(t *testing.T) {
		ans := newTestAnswer(t)

		_, err := ApplyVote(ans, "u1", 1)
		require.NoError(t, err)
		res, err := ApplyVote(ans, "u1", 1)
		require.NoError(t, err)

		assert.Equal(t, 0, res.Current)
		assert.Equal(t, -1, res.Delta)
		assert.Equal(t, 0, ans.Votes, "net delta after toggle must be 0")
		_, present := ans.VotedBy["u1"]
		assert.False(t, present, "ledger entry must be removed on unvote")
	})

	t.Run("opposite direction swaps", func(t *testing.T) {
		ans := newTestAnswer(t)

		_, err := ApplyVote(ans, "u1", 1)
		require.NoError(t, err)
		res, err := ApplyVote(ans, "u1", -1)
		require.NoError(t, err)

		assert.Equal(t, -2, res.Delta, "swap moves the count by two")
		assert.Equal(t, -1, ans.Votes)
		assert.Equal(t, -1, ans.VotedBy["u1"])
	})

	t.Run("independent voters accumulate", func(t *testing.T) {
		ans := newTestAnswer(t)

		for _, uid := range []string{"u1", "u2", "u3"} {
			_, err := ApplyVote(ans, uid, 1)
			require.NoError(t, err)
		}
		_, err := ApplyVote(ans, "u4", -1)
		require.NoError(t, err)

		assert.Equal(t, 2, ans.Votes)
	})

	t.Run("rejects bad direction", func(t *testing.T) {
		ans := newTestAnswer(t)

		_, err := ApplyVote(ans, "u1", 2)
		assert.ErrorIs(t, err, ErrBadDirection)
		_, err = ApplyVote(ans, "u1", 0)
		assert.ErrorIs(t, err, ErrBadDirection)
	})

	t.Run("nil ledger is initialized", func(t *testing.T) {
		ans := &model.Answer{Text: "loaded from an old document"}

		_, err := ApplyVote(ans, "u1", -1)
		require.NoError(t, err)
		assert.Equal(t, -1, ans.Votes)
	})
}

// The derived count must always equal the ledger sum, whatever sequence of
// clicks arrives.
func TestVoteCountMatchesLedger(t *testing.T) {
	ans := newTestAnswer(t)

	clicks := []struct {
		uid string
		dir int
	}{
		{"u1", 1}, {"u2", 1}, {"u1", 1}, {"u3", -1},
		{"u2", -1}, {"u3", -1}, {"u1", -1}, {"u2", -1},
	}
	for _, c := range clicks {
		_, err := ApplyVote(ans, c.uid, c.dir)
		require.NoError(t, err)
		assert.Equal(t, TallyVotes(ans), ans.Votes,
			"votes drifted from ledger after %s -> %d", c.uid, c.dir)
	}
}
