package service

import (
	"context"
	"fmt"

	"character-studio/backend/internal/models"
	"character-studio/backend/internal/store"
	apperrors "character-studio/backend/pkg/errors"
	"character-studio/backend/pkg/logger"
)

// RatingService applies like/dislike votes: it bumps the aggregate counters
// on the character record and sets the per-client vote flag that gates
// re-voting. The flag check happens before the increment, so a rejected
// re-vote never touches the counters.
type RatingService struct {
	characters *store.CharacterStore
	votes      *store.RatingStore
	log        *logger.Logger
}

func NewRatingService(characters *store.CharacterStore, votes *store.RatingStore, log *logger.Logger) *RatingService {
	return &RatingService{characters: characters, votes: votes, log: log}
}

// Rate casts a vote for the character on behalf of clientID.
func (s *RatingService) Rate(ctx context.Context, clientID, characterID, rating string) (*models.Ratings, error) {
	if rating != "like" && rating != "dislike" {
		return nil, apperrors.NewValidationError(fmt.Sprintf("rating must be \"like\" or \"dislike\", got %q", rating))
	}

	prior, err := s.votes.Vote(ctx, clientID, characterID)
	if err != nil {
		return nil, err
	}
	if prior != "" {
		return nil, apperrors.NewConflictError(apperrors.CodeAlreadyVoted,
			fmt.Sprintf("this client already rated the character (%s)", prior))
	}

	counters, err := s.characters.IncrementRating(ctx, characterID, rating)
	if err != nil {
		return nil, err
	}
	if err := s.votes.MarkVoted(ctx, clientID, characterID, rating); err != nil {
		// The counter landed but the flag write failed; accepted
		// inconsistency, same as the paired-write risk in the data model.
		s.log.LogError(err, "vote flag write failed", "character_id", characterID)
	}
	return counters, nil
}
