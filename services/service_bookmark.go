package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"qna_workspace/internal/logger"
	"qna_workspace/internal/repository"
	"qna_workspace/model"
)

type bookmarkStore interface {
	GetByUID(ctx context.Context, uid string) (model.User, error)
	AddBookmark(ctx context.Context, uid, questionID string) error
	RemoveBookmark(ctx context.Context, uid, questionID string) error
}

type questionGetter interface {
	Get(ctx context.Context, id bson.ObjectID) (model.Question, error)
}

// BookmarkService keeps each user's bookmarked-question-id set synchronized
// between a local set and the user document. The local set is updated first
// for responsiveness and rolled back if the backend write fails; the backend
// ops themselves are atomic set-union/set-difference, so retries and
// concurrent clients converge.
type BookmarkService struct {
	Users     bookmarkStore
	Questions questionGetter
	Log       *logger.Logger

	mu   sync.Mutex
	sets map[string]map[string]struct{} // uid -> bookmarked question ids
}

func NewBookmarkService(users bookmarkStore, questions questionGetter, log *logger.Logger) *BookmarkService {
	return &BookmarkService{
		Users:     users,
		Questions: questions,
		Log:       log,
		sets:      map[string]map[string]struct{}{},
	}
}

// loadSet lazily seeds the local set from the user document.
func (s *BookmarkService) loadSet(ctx context.Context, uid string) (map[string]struct{}, error) {
	s.mu.Lock()
	set, ok := s.sets[uid]
	s.mu.Unlock()
	if ok {
		return set, nil
	}

	u, err := s.Users.GetByUID(ctx, uid)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	set = map[string]struct{}{}
	for _, id := range u.Bookmarks {
		set[id] = struct{}{}
	}

	s.mu.Lock()
	if existing, ok := s.sets[uid]; ok {
		set = existing // another request seeded it meanwhile
	} else {
		s.sets[uid] = set
	}
	s.mu.Unlock()
	return set, nil
}

// Add bookmarks a question: no-op if already present or uid is empty.
func (s *BookmarkService) Add(ctx context.Context, uid, questionID string) error {
	if uid == "" {
		return nil
	}
	set, err := s.loadSet(ctx, uid)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if _, present := set[questionID]; present {
		s.mu.Unlock()
		return nil
	}
	set[questionID] = struct{}{}
	s.mu.Unlock()

	if err := s.Users.AddBookmark(ctx, uid, questionID); err != nil {
		s.mu.Lock()
		delete(set, questionID)
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *BookmarkService) Remove(ctx context.Context, uid, questionID string) error {
	if uid == "" {
		return nil
	}
	set, err := s.loadSet(ctx, uid)
	if err != nil {
		return err
	}

	s.mu.Lock()
	_, present := set[questionID]
	delete(set, questionID)
	s.mu.Unlock()

	if err := s.Users.RemoveBookmark(ctx, uid, questionID); err != nil {
		if present {
			s.mu.Lock()
			set[questionID] = struct{}{}
			s.mu.Unlock()
		}
		return err
	}
	return nil
}

// IsBookmarked is a pure lookup against the local set.
func (s *BookmarkService) IsBookmarked(ctx context.Context, uid, questionID string) bool {
	if uid == "" {
		return false
	}
	set, err := s.loadSet(ctx, uid)
	if err != nil {
		return false
	}
	s.mu.Lock()
	_, ok := set[questionID]
	s.mu.Unlock()
	return ok
}

// IDs returns the current bookmark id set, sorted for stable output.
func (s *BookmarkService) IDs(ctx context.Context, uid string) ([]string, error) {
	set, err := s.loadSet(ctx, uid)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	s.mu.Unlock()
	sort.Strings(ids)
	return ids, nil
}

// Materialize fetches the full question for every bookmarked id in
// parallel. Ids whose question no longer exists are silently dropped, not
// errors: deleted questions just disappear from bookmarks.
func (s *BookmarkService) Materialize(ctx context.Context, uid string) ([]model.Question, error) {
	ids, err := s.IDs(ctx, uid)
	if err != nil {
		return nil, err
	}

	results := make([]*model.Question, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		oid, err := bson.ObjectIDFromHex(id)
		if err != nil {
			continue // junk id in the set, skip
		}
		wg.Add(1)
		go func(i int, oid bson.ObjectID) {
			defer wg.Done()
			q, err := s.Questions.Get(ctx, oid)
			if err != nil {
				if !errors.Is(err, repository.ErrNotFound) {
					s.Log.WithUserID(uid).WithField("error", err.Error()).Warn("bookmark fetch failed")
				}
				return
			}
			results[i] = &q
		}(i, oid)
	}
	wg.Wait()

	out := make([]model.Question, 0, len(results))
	for _, q := range results {
		if q != nil {
			out = append(out, *q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Forget drops the local set, forcing the next call to re-read the backend.
// Called on logout.
func (s *BookmarkService) Forget(uid string) {
	s.mu.Lock()
	delete(s.sets, uid)
	s.mu.Unlock()
}
