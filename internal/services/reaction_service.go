// Package services – ReactionService
//
// This file implements the reaction toggle. Each (article, actor, type) key
// is a two-state flag: toggling an absent key inserts a row and reports
// ActionAdded, toggling a present key deletes it and reports ActionRemoved.
// Callers never choose the transition.
//
// No application lock is taken. The store's unique index on the key decides
// racing toggles: the loser of an insert race, or a delete that finds the
// row already gone, gets ErrReactionConflict and may retry.
package services

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-advent-calendar/internal/domain"
	"github.com/tbourn/go-advent-calendar/internal/repo"
)

// Action is the transition a toggle performed.
type Action string

const (
	ActionAdded   Action = "added"
	ActionRemoved Action = "removed"
)

// ReactionService implements reaction toggling and reads.
type ReactionService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// Toggle flips actorID's reaction of type t on articleID.
//
// Errors:
//   - ErrUnauthenticated if actorID is empty (checked first).
//   - ErrInvalidReaction if t is not in the palette.
//   - ErrArticleNotFound if the article does not exist or is another
//     user's draft.
//   - ErrReactionConflict if a concurrent toggle on the same key won.
//   - ErrStorageFailure (wrapped) for anything else.
func (s *ReactionService) Toggle(ctx context.Context, articleID, actorID string, t domain.ReactionType) (Action, error) {
	if actorID == "" {
		return "", ErrUnauthenticated
	}
	if !t.Valid() {
		return "", ErrInvalidReaction
	}

	tr := otel.Tracer("services/ReactionService")
	ctx, span := tr.Start(ctx, "Toggle",
		trace.WithAttributes(
			attribute.String("article.id", articleID),
			attribute.String("user.id", actorID),
			attribute.String("reaction.type", string(t)),
		),
	)
	defer span.End()

	if err := s.visible(ctx, "reaction.Toggle", articleID, actorID); err != nil {
		return "", err
	}

	existing, err := repo.FindReaction(ctx, s.DB, articleID, actorID, t)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		if _, err := repo.CreateReaction(ctx, s.DB, articleID, actorID, t); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return "", ErrReactionConflict
			}
			return "", storageErr("reaction.Toggle", err)
		}
		span.SetAttributes(attribute.String("reaction.action", string(ActionAdded)))
		return ActionAdded, nil
	case err != nil:
		return "", storageErr("reaction.Toggle", err)
	}

	if err := repo.DeleteReaction(ctx, s.DB, existing.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrReactionConflict
		}
		return "", storageErr("reaction.Toggle", err)
	}
	span.SetAttributes(attribute.String("reaction.action", string(ActionRemoved)))
	return ActionRemoved, nil
}

// Counts returns the number of reactions per palette type on articleID.
// Every palette type is present in the map, zero when unused. Another
// user's draft, like a missing article, yields ErrArticleNotFound.
func (s *ReactionService) Counts(ctx context.Context, articleID, viewerID string) (map[domain.ReactionType]int, error) {
	if err := s.visible(ctx, "reaction.Counts", articleID, viewerID); err != nil {
		return nil, err
	}
	raw, err := repo.CountReactionsByType(ctx, s.DB, articleID)
	if err != nil {
		return nil, storageErr("reaction.Counts", err)
	}
	out := make(map[domain.ReactionType]int, len(domain.AvailableReactions))
	for _, o := range domain.AvailableReactions {
		out[o.Emoji] = raw[o.Emoji]
	}
	return out, nil
}

// UserReactions returns the types actorID currently has on articleID. An
// anonymous actor has none.
func (s *ReactionService) UserReactions(ctx context.Context, articleID, actorID string) ([]domain.ReactionType, error) {
	if actorID == "" {
		return []domain.ReactionType{}, nil
	}
	types, err := repo.ListUserReactionTypes(ctx, s.DB, articleID, actorID)
	if err != nil {
		return nil, storageErr("reaction.UserReactions", err)
	}
	if types == nil {
		types = []domain.ReactionType{}
	}
	return types, nil
}

// visible applies the article read rule: drafts exist for their owner only.
func (s *ReactionService) visible(ctx context.Context, op, articleID, actorID string) error {
	a, err := repo.GetArticle(ctx, s.DB, articleID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrArticleNotFound
		}
		return storageErr(op, err)
	}
	if a.Status != domain.StatusPublished && a.UserID != actorID {
		return ErrArticleNotFound
	}
	return nil
}
