package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type User struct {
	ID              bson.ObjectID `json:"-"               bson:"_id,omitempty"`
	UID             string        `json:"uid"             bson:"uid"`
	Username        string        `json:"username"        bson:"username"`
	Email           string        `json:"email"           bson:"email"`
	PasswordHash    string        `json:"-"               bson:"password_hash,omitempty"`
	Points          int           `json:"points"          bson:"points"`
	QuestionsPosted int           `json:"questionsPosted" bson:"questions_posted"`
	AnswersPosted   int           `json:"answersPosted"   bson:"answers_posted"`
	Bookmarks       []string      `json:"bookmarks"       bson:"bookmarks"`
	CreatedAt       time.Time     `json:"createdAt"       bson:"created_at"`
}

// ActivityDelta is one activity credit applied to a user's counters.
type ActivityDelta struct {
	Points          int
	QuestionsPosted int
	AnswersPosted   int
	At              time.Time
}

