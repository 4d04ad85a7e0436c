package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Question owns its full answer/comment/reply tree. The tree is stored as a
// single compound field on the question document; nested elements carry a
// generated id so updates can target one element instead of rewriting the
// whole array.
type Question struct {
	ID             bson.ObjectID `json:"id"                       bson:"_id,omitempty"`
	Title          string        `json:"title"                    bson:"title"`
	Author         string        `json:"author"                   bson:"author"`
	AuthorID       string        `json:"authorId,omitempty"       bson:"author_id,omitempty"`
	Tags           []string      `json:"tags"                     bson:"tags"`
	Answers        []Answer      `json:"answers"                  bson:"answers"`
	CreatedAt      time.Time     `json:"createdAt"                bson:"created_at"`
	AcceptedAnswer string        `json:"acceptedAnswer,omitempty" bson:"accepted_answer,omitempty"`
}

type Answer struct {
	ID        string         `json:"id"        bson:"id"`
	Text      string         `json:"text"      bson:"text"`
	Author    string         `json:"author"    bson:"author"`
	AuthorID  string         `json:"authorId"  bson:"author_id"`
	Votes     int            `json:"votes"     bson:"votes"`
	VotedBy   map[string]int `json:"votedBy"   bson:"voted_by"`
	Comments  []Comment      `json:"comments"  bson:"comments"`
	CreatedAt time.Time      `json:"createdAt" bson:"created_at"`
}

type Comment struct {
	ID        string    `json:"id"        bson:"id"`
	Text      string    `json:"text"      bson:"text"`
	Author    string    `json:"author"    bson:"author"`
	AuthorID  string    `json:"authorId"  bson:"author_id"`
	Replies   []Reply   `json:"replies"   bson:"replies"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

type Reply struct {
	ID        string    `json:"id"        bson:"id"`
	Text      string    `json:"text"      bson:"text"`
	Author    string    `json:"author"    bson:"author"`
	AuthorID  string    `json:"authorId"  bson:"author_id"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// AnswerRow is the flat secondary index of answers, one document per answer,
// written in the same call that pushes the nested element. Profile queries
// filter this collection by author_id.
type AnswerRow struct {
	ID         bson.ObjectID `json:"-"          bson:"_id,omitempty"`
	AnswerID   string        `json:"answerId"   bson:"answer_id"`
	QuestionID bson.ObjectID `json:"questionId" bson:"question_id"`
	AuthorID   string        `json:"authorId"   bson:"author_id"`
	Text       string        `json:"text"       bson:"text"`
	CreatedAt  time.Time     `json:"createdAt"  bson:"created_at"`
}
