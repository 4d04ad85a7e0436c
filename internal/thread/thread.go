package thread

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"qna_workspace/model"
)

// Package thread applies one logical edit to a question's nested
// answers/comments/replies tree in memory. Callers address elements by
// position (the shape the API exposes), but every element carries a
// generated id; Resolve* converts an index to the id so persistence can
// target one element and a stale index can never hit a different one after
// the array has changed shape.

var (
	ErrEmptyText      = errors.New("text is empty")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// NewAnswer builds a ready-to-append answer from trimmed draft text.
func NewAnswer(text, author, authorID string, now time.Time) (model.Answer, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Answer{}, ErrEmptyText
	}
	return model.Answer{
		ID:        uuid.NewString(),
		Text:      text,
		Author:    author,
		AuthorID:  authorID,
		Votes:     0,
		VotedBy:   map[string]int{},
		Comments:  []model.Comment{},
		CreatedAt: now,
	}, nil
}

func NewComment(text, author, authorID string, now time.Time) (model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Comment{}, ErrEmptyText
	}
	return model.Comment{
		ID:        uuid.NewString(),
		Text:      text,
		Author:    author,
		AuthorID:  authorID,
		Replies:   []model.Reply{},
		CreatedAt: now,
	}, nil
}

func NewReply(text, author, authorID string, now time.Time) (model.Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Reply{}, ErrEmptyText
	}
	return model.Reply{
		ID:        uuid.NewString(),
		Text:      text,
		Author:    author,
		AuthorID:  authorID,
		CreatedAt: now,
	}, nil
}

// ResolveAnswer maps a positional index to the answer element. The returned
// pointer is only valid until the next mutation of q.Answers.
func ResolveAnswer(q *model.Question, idx int) (*model.Answer, error) {
	if idx < 0 || idx >= len(q.Answers) {
		return nil, ErrIndexOutOfRange
	}
	return &q.Answers[idx], nil
}

// ResolveComment maps (answerIdx, commentIdx) to the comment element.
func ResolveComment(q *model.Question, answerIdx, commentIdx int) (*model.Comment, error) {
	ans, err := ResolveAnswer(q, answerIdx)
	if err != nil {
		return nil, err
	}
	if commentIdx < 0 || commentIdx >= len(ans.Comments) {
		return nil, ErrIndexOutOfRange
	}
	return &ans.Comments[commentIdx], nil
}

// AppendAnswer appends ans to the tree.
func AppendAnswer(q *model.Question, ans model.Answer) {
	q.Answers = append(q.Answers, ans)
}

// AppendComment appends c to answers[answerIdx].comments.
func AppendComment(q *model.Question, answerIdx int, c model.Comment) error {
	ans, err := ResolveAnswer(q, answerIdx)
	if err != nil {
		return err
	}
	ans.Comments = append(ans.Comments, c)
	return nil
}

// AppendReply appends r to answers[answerIdx].comments[commentIdx].replies.
func AppendReply(q *model.Question, answerIdx, commentIdx int, r model.Reply) error {
	com, err := ResolveComment(q, answerIdx, commentIdx)
	if err != nil {
		return err
	}
	com.Replies = append(com.Replies, r)
	return nil
}

// EditAnswer replaces the text of answers[idx] and returns the element id
// the persistence layer must filter on.
func EditAnswer(q *model.Question, idx int, newText string) (string, error) {
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return "", ErrEmptyText
	}
	ans, err := ResolveAnswer(q, idx)
	if err != nil {
		return "", err
	}
	ans.Text = newText
	return ans.ID, nil
}

// RemoveAnswer removes answers[idx] by position and returns the removed
// element's id. Clears the accepted mark if it pointed at the removed
// answer.
func RemoveAnswer(q *model.Question, idx int) (string, error) {
	ans, err := ResolveAnswer(q, idx)
	if err != nil {
		return "", err
	}
	id := ans.ID
	q.Answers = append(q.Answers[:idx], q.Answers[idx+1:]...)
	if q.AcceptedAnswer == id {
		q.AcceptedAnswer = ""
	}
	return id, nil
}

// MarkAccepted records answers[idx] as the accepted answer. The stable id is
// stored, not the index, so a later removal of an earlier answer cannot
// silently re-point the mark.
func MarkAccepted(q *model.Question, idx int) (string, error) {
	ans, err := ResolveAnswer(q, idx)
	if err != nil {
		return "", err
	}
	q.AcceptedAnswer = ans.ID
	return ans.ID, nil
}
