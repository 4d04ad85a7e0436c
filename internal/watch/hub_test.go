package watch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, ch chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestHubPublishSubscribe(t *testing.T) {
	t.Run("delivers to topic subscribers only", func(t *testing.T) {
		h := NewHub()
		qs := h.Subscribe(TopicQuestions)
		defer qs.Cancel()
		sess := h.Subscribe(TopicSessions)
		defer sess.Cancel()

		h.Publish(TopicQuestions, EventQuestionChanged, "q1")

		ev := recv(t, qs.C)
		assert.Equal(t, EventQuestionChanged, ev.Kind)
		assert.Equal(t, "q1", ev.Payload)
		assert.Empty(t, sess.C)
	})

	t.Run("one subscription can span topics", func(t *testing.T) {
		h := NewHub()
		sub := h.Subscribe(TopicQuestions, UserTopic("u1"))
		defer sub.Cancel()

		h.Publish(UserTopic("u1"), EventNotification, nil)
		h.Publish(TopicQuestions, EventQuestionDeleted, "q2")

		assert.Equal(t, EventNotification, recv(t, sub.C).Kind)
		assert.Equal(t, EventQuestionDeleted, recv(t, sub.C).Kind)
	})

	t.Run("cancel detaches and closes channel", func(t *testing.T) {
		h := NewHub()
		sub := h.Subscribe(TopicSessions)
		require.Equal(t, 1, h.Subscribers(TopicSessions))

		sub.Cancel()
		sub.Cancel() // idempotent

		assert.Equal(t, 0, h.Subscribers(TopicSessions))
		_, open := <-sub.C
		assert.False(t, open)

		// Publishing to a topic with no subscribers must not panic.
		h.Publish(TopicSessions, EventSessionsChanged, nil)
	})

	t.Run("slow subscriber drops instead of blocking", func(t *testing.T) {
		h := NewHub()
		sub := h.Subscribe(TopicQuestions)
		defer sub.Cancel()

		done := make(chan struct{})
		go func() {
			for i := 0; i < subscriberBuffer*3; i++ {
				h.Publish(TopicQuestions, EventQuestionChanged, i)
			}
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("publisher blocked on a full subscriber")
		}
		assert.Len(t, sub.C, subscriberBuffer)
	})
}
