package thread

import (
	"errors"

	"qna_workspace/model"
)

// One vote per user per answer. Repeating the same direction toggles the
// vote off; the opposite direction swaps it. Invariant:
// ans.Votes == sum over ans.VotedBy of the stored directions.

var ErrBadDirection = errors.New("direction must be +1 or -1")

// VoteResult describes what a vote click changed.
type VoteResult struct {
	Previous int // stored direction before the click (0 if none)
	Current  int // stored direction after the click (0 if toggled off)
	Delta    int // Current - Previous, already applied to ans.Votes
}

// ApplyVote mutates ans in place and reports the change. userID must be
// checked by the caller; this layer only accounts.
func ApplyVote(ans *model.Answer, userID string, direction int) (VoteResult, error) {
	if direction != 1 && direction != -1 {
		return VoteResult{}, ErrBadDirection
	}
	if ans.VotedBy == nil {
		ans.VotedBy = map[string]int{}
	}

	prev := ans.VotedBy[userID]
	next := direction
	if prev == direction {
		next = 0
	}

	if next == 0 {
		delete(ans.VotedBy, userID)
	} else {
		ans.VotedBy[userID] = next
	}
	ans.Votes += next - prev

	return VoteResult{Previous: prev, Current: next, Delta: next - prev}, nil
}

// TallyVotes recomputes the derived count from the ledger. Used by tests and
// by reconciliation after a failed partial write.
func TallyVotes(ans *model.Answer) int {
	sum := 0
	for _, d := range ans.VotedBy {
		sum += d
	}
	return sum
}
