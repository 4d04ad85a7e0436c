package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type NotiType string

type Notification struct {
	ID         bson.ObjectID `json:"id"                 bson:"_id,omitempty"`
	UserID     string        `json:"userId"             bson:"user_id"`
	Message    string        `json:"message"            bson:"message"`
	QuestionID bson.ObjectID `json:"questionId"         bson:"question_id"`
	AnswerID   string        `json:"answerId,omitempty" bson:"answer_id,omitempty"`
	Type       NotiType      `json:"type"               bson:"type"`
	Read       bool          `json:"read"               bson:"read"`
	CreatedAt  time.Time     `json:"createdAt"          bson:"created_at"`
}
