package watch

import (
	"sync"
)

// The hub is the in-process stand-in for a document store's push
// subscriptions: writers publish change events onto a topic, views subscribe
// for as long as they are mounted and cancel on unmount. Delivery is
// best-effort per subscriber; a subscriber that stops draining loses events
// rather than blocking the writer.

type EventKind string

const (
	EventQuestionChanged EventKind = "question_changed"
	EventQuestionDeleted EventKind = "question_deleted"
	EventSessionsChanged EventKind = "sessions_changed"
	EventChatMessage     EventKind = "chat_message"
	EventNotification    EventKind = "notification"
)

// Topics: TopicQuestions for the question list, TopicSessions for the live
// session list, SessionTopic(id) for one session's chat, UserTopic(uid) for
// a user's notifications.
const (
	TopicQuestions = "questions"
	TopicSessions  = "sessions"
)

func SessionTopic(sessionID string) string { return "session:" + sessionID }
func UserTopic(uid string) string          { return "user:" + uid }

type Event struct {
	Kind    EventKind `json:"kind"`
	Topic   string    `json:"topic"`
	Payload any       `json:"payload,omitempty"`
}

type Subscription struct {
	C      chan Event
	hub    *Hub
	topics []string
	once   sync.Once
}

// Cancel detaches the subscription and closes C. Safe to call twice.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.hub.drop(s)
		close(s.C)
	})
}

type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{topics: map[string]map[*Subscription]struct{}{}}
}

const subscriberBuffer = 32

// Subscribe registers for every named topic. The caller owns the returned
// subscription and must Cancel it when done.
func (h *Hub) Subscribe(topics ...string) *Subscription {
	sub := &Subscription{
		C:      make(chan Event, subscriberBuffer),
		hub:    h,
		topics: topics,
	}
	h.mu.Lock()
	for _, t := range topics {
		if h.topics[t] == nil {
			h.topics[t] = map[*Subscription]struct{}{}
		}
		h.topics[t][sub] = struct{}{}
	}
	h.mu.Unlock()
	return sub
}

// Publish fans the event out to the topic's current subscribers without
// blocking: full subscriber buffers drop the event.
func (h *Hub) Publish(topic string, kind EventKind, payload any) {
	ev := Event{Kind: kind, Topic: topic, Payload: payload}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.topics[topic] {
		select {
		case sub.C <- ev:
		default:
		}
	}
}

// Subscribers reports how many subscriptions a topic currently has.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

func (h *Hub) drop(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, t := range sub.topics {
		delete(h.topics[t], sub)
		if len(h.topics[t]) == 0 {
			delete(h.topics, t)
		}
	}
}
