package store

import (
	"context"
	"sync"

	"character-studio/backend/pkg/storage"
)

// RatingStore records the per-client "already voted" flags. The flags are
// advisory: they gate re-voting at the service layer but nothing stops a
// client that forges a new client id. Aggregate counters live on the
// character record itself, not here.
type RatingStore struct {
	mu      sync.Mutex
	adapter storage.Adapter
}

func NewRatingStore(adapter storage.Adapter) *RatingStore {
	return &RatingStore{adapter: adapter}
}

// votes maps client id -> character id -> "like"/"dislike".
func (s *RatingStore) loadVotes(ctx context.Context) (map[string]map[string]string, error) {
	votes := make(map[string]map[string]string)
	if err := load(ctx, s.adapter, keyRatingVotes, &votes); err != nil {
		return nil, err
	}
	return votes, nil
}

// Vote returns the rating the client already cast for the character, or "".
func (s *RatingStore) Vote(ctx context.Context, clientID, characterID string) (string, error) {
	votes, err := s.loadVotes(ctx)
	if err != nil {
		return "", err
	}
	return votes[clientID][characterID], nil
}

// MarkVoted records the client's vote flag for the character.
func (s *RatingStore) MarkVoted(ctx context.Context, clientID, characterID, rating string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	votes, err := s.loadVotes(ctx)
	if err != nil {
		return err
	}
	if votes[clientID] == nil {
		votes[clientID] = make(map[string]string)
	}
	votes[clientID][characterID] = rating
	return save(ctx, s.adapter, keyRatingVotes, votes)
}
