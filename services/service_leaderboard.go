package services

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"qna_workspace/internal/logger"
	"qna_workspace/model"
)

const (
	LeaderboardSize     = 50
	leaderboardCacheKey = "leaderboard:top"
	leaderboardCacheTTL = 60 * time.Second
)

type rankSource interface {
	TopByPoints(ctx context.Context, limit int64) ([]model.User, error)
}

// LeaderboardEntry is one ranked row of the snapshot.
type LeaderboardEntry struct {
	Rank            int    `json:"rank"`
	UID             string `json:"uid"`
	Username        string `json:"username"`
	Points          int    `json:"points"`
	QuestionsPosted int    `json:"questionsPosted"`
	AnswersPosted   int    `json:"answersPosted"`
}

// LeaderboardService snapshots the top users by points on demand. Redis is
// optional: when wired it holds the serialized snapshot for a minute so a
// busy leaderboard page does not hammer the users collection.
type LeaderboardService struct {
	Users rankSource
	Redis *redis.Client
	Log   *logger.Logger
}

// Rank orders users by points descending (uid ascending breaks ties, so two
// snapshots of the same data agree) and assigns dense ranks from 1.
func Rank(users []model.User) []LeaderboardEntry {
	sorted := append([]model.User{}, users...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Points != sorted[j].Points {
			return sorted[i].Points > sorted[j].Points
		}
		return sorted[i].UID < sorted[j].UID
	})

	entries := make([]LeaderboardEntry, 0, len(sorted))
	for i, u := range sorted {
		entries = append(entries, LeaderboardEntry{
			Rank:            i + 1,
			UID:             u.UID,
			Username:        u.Username,
			Points:          u.Points,
			QuestionsPosted: u.QuestionsPosted,
			AnswersPosted:   u.AnswersPosted,
		})
	}
	return entries
}

// Snapshot returns the current top-50 ranking.
func (s *LeaderboardService) Snapshot(ctx context.Context) ([]LeaderboardEntry, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	users, err := s.Users.TopByPoints(ctx, LeaderboardSize)
	if err != nil {
		return nil, err
	}
	entries := Rank(users)

	s.toCache(ctx, entries)
	return entries, nil
}

func (s *LeaderboardService) fromCache(ctx context.Context) ([]LeaderboardEntry, bool) {
	if s.Redis == nil {
		return nil, false
	}
	raw, err := s.Redis.Get(ctx, leaderboardCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.Log.WithField("error", err.Error()).Warn("leaderboard cache read failed")
		}
		return nil, false
	}
	var entries []LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (s *LeaderboardService) toCache(ctx context.Context, entries []LeaderboardEntry) {
	if s.Redis == nil {
		return
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, leaderboardCacheKey, raw, leaderboardCacheTTL).Err(); err != nil {
		s.Log.WithField("error", err.Error()).Warn("leaderboard cache write failed")
	}
}
