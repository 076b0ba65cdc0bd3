// Package services – PickupService
//
// This file implements the pickup feed: a random sample of articles
// already published on or before today, skipping administrators. The
// sample is drawn from a bounded pool of the newest candidates.
package services

import (
	"context"
	"math/rand/v2"

	"gorm.io/gorm"

	"github.com/tbourn/go-advent-calendar/internal/content"
	"github.com/tbourn/go-advent-calendar/internal/datekit"
	"github.com/tbourn/go-advent-calendar/internal/domain"
	"github.com/tbourn/go-advent-calendar/internal/repo"
)

// Pickup is one entry of the feed.
type Pickup struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	PublishDate string `json:"publish_date"`
	PenName     string `json:"pen_name"`
	Excerpt     string `json:"excerpt"`
}

// PickupService samples published articles.
type PickupService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// ExcerptRunes caps excerpt length (content.DefaultExcerptRunes if 0).
	ExcerptRunes int
	// Shuffle permutes n items; nil uses math/rand/v2.
	Shuffle func(n int, swap func(i, j int))
}

// Random returns up to limit pickups dated on or before today.
func (s *PickupService) Random(ctx context.Context, today datekit.Date, limit int) ([]Pickup, error) {
	if limit <= 0 {
		return []Pickup{}, nil
	}
	pool := max(limit*10, 30)

	rows, err := repo.ListPublishedUpTo(ctx, s.DB, today.String(), domain.RoleAdmin, pool)
	if err != nil {
		return nil, storageErr("pickup.Random", err)
	}

	shuffle := s.Shuffle
	if shuffle == nil {
		shuffle = rand.Shuffle
	}
	shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })

	if len(rows) > limit {
		rows = rows[:limit]
	}
	out := make([]Pickup, 0, len(rows))
	for _, r := range rows {
		out = append(out, Pickup{
			ID:          r.ID,
			Title:       r.Title,
			PublishDate: r.PublishDate,
			PenName:     r.PenName,
			Excerpt:     content.Excerpt(r.Content, s.ExcerptRunes),
		})
	}
	return out, nil
}
