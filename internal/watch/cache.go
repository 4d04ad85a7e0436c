package watch

import (
	"sort"
	"sync"

	"qna_workspace/model"
)

// QuestionCache is the client-observable copy of the questions collection.
// Services refresh an entry only after a backend write succeeds, so the
// cache never runs ahead of the store for thread mutations; a stale entry is
// overwritten by the next refresh.
type QuestionCache struct {
	mu        sync.RWMutex
	questions map[string]model.Question
}

func NewQuestionCache() *QuestionCache {
	return &QuestionCache{questions: map[string]model.Question{}}
}

// Put stores a deep-enough copy: the answers slice is cloned so later
// in-place mutation by a service working on its own read does not leak into
// readers of the cache.
func (c *QuestionCache) Put(q model.Question) {
	q.Answers = append([]model.Answer{}, q.Answers...)
	c.mu.Lock()
	c.questions[q.ID.Hex()] = q
	c.mu.Unlock()
}

func (c *QuestionCache) Delete(id string) {
	c.mu.Lock()
	delete(c.questions, id)
	c.mu.Unlock()
}

func (c *QuestionCache) Get(id string) (model.Question, bool) {
	c.mu.RLock()
	q, ok := c.questions[id]
	c.mu.RUnlock()
	if ok {
		q.Answers = append([]model.Answer{}, q.Answers...)
	}
	return q, ok
}

// Snapshot returns all cached questions, newest first.
func (c *QuestionCache) Snapshot() []model.Question {
	c.mu.RLock()
	out := make([]model.Question, 0, len(c.questions))
	for _, q := range c.questions {
		q.Answers = append([]model.Answer{}, q.Answers...)
		out = append(out, q)
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.Hex() > out[j].ID.Hex()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (c *QuestionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.questions)
}
