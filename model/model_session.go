package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// LiveSession lifecycle: created -> active while participants > 0 ->
// inactive once the host leaves -> deleted when the last participant leaves.
type LiveSession struct {
	ID           bson.ObjectID `json:"id"           bson:"_id,omitempty"`
	Title        string        `json:"title"        bson:"title"`
	HostID       string        `json:"hostId"       bson:"host_id"`
	HostName     string        `json:"hostName"     bson:"host_name"`
	Participants []string      `json:"participants" bson:"participants"`
	IsActive     bool          `json:"isActive"     bson:"is_active"`
	CreatedAt    time.Time     `json:"createdAt"    bson:"created_at"`
}

// Message belongs to one session and dies with it.
type Message struct {
	ID         bson.ObjectID `json:"id"         bson:"_id,omitempty"`
	SessionID  bson.ObjectID `json:"sessionId"  bson:"session_id"`
	Text       string        `json:"text"       bson:"text"`
	SenderID   string        `json:"senderId"   bson:"sender_id"`
	SenderName string        `json:"senderName" bson:"sender_name"`
	Timestamp  time.Time     `json:"timestamp"  bson:"timestamp"`
}
