package services

import (
	"context"
	"testing"

	"github.com/tbourn/go-advent-calendar/internal/content"
	"github.com/tbourn/go-advent-calendar/internal/datekit"
	"github.com/tbourn/go-advent-calendar/internal/domain"
	"github.com/tbourn/go-advent-calendar/internal/repo"
)

func TestPickup_Random_FiltersAndLimits(t *testing.T) {
	db := newTestDB(t)
	seedProfile(t, db, "admin", domain.RoleAdmin)
	seedProfile(t, db, "u1", domain.RoleUser)
	seedProfile(t, db, "u2", domain.RoleUser)

	ctx := context.Background()
	for _, s := range []struct {
		user, date string
		status     domain.ArticleStatus
	}{
		{"admin", "2025-12-01", domain.StatusPublished},
		{"u1", "2025-12-01", domain.StatusPublished},
		{"u2", "2025-12-02", domain.StatusPublished},
		{"u1", "2025-12-03", domain.StatusDraft},
		{"u2", "2025-12-20", domain.StatusPublished}, // future
	} {
		if _, err := repo.CreateArticle(ctx, db, s.user, repo.ArticleFields{
			Title: s.user + s.date, Content: content.Wrap("body of " + s.user), PublishDate: s.date, Status: s.status,
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	svc := &PickupService{DB: db}
	today := datekit.MustParseDate("2025-12-10")

	all, err := svc.Random(ctx, today, 10)
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 eligible articles, got %+v", all)
	}
	for _, p := range all {
		if p.PenName == "pen-admin" || p.PublishDate > today.String() {
			t.Fatalf("ineligible pickup: %+v", p)
		}
		if p.Excerpt == "" || p.Excerpt[:7] != "body of" {
			t.Fatalf("unexpected excerpt: %q", p.Excerpt)
		}
	}

	one, err := svc.Random(ctx, today, 1)
	if err != nil || len(one) != 1 {
		t.Fatalf("limit 1: %+v %v", one, err)
	}
	none, err := svc.Random(ctx, today, 0)
	if err != nil || len(none) != 0 {
		t.Fatalf("limit 0: %+v %v", none, err)
	}
}

func TestPickup_Random_UsesInjectedShuffle(t *testing.T) {
	db := newTestDB(t)
	seedProfile(t, db, "u1", domain.RoleUser)
	seedArticle(t, db, "u1", "2025-12-01", domain.StatusPublished)
	seedArticle(t, db, "u1", "2025-12-02", domain.StatusPublished)

	called := false
	svc := &PickupService{DB: db, Shuffle: func(n int, swap func(i, j int)) {
		called = true
		if n == 2 {
			swap(0, 1)
		}
	}}
	out, err := svc.Random(context.Background(), datekit.MustParseDate("2025-12-25"), 2)
	if err != nil || len(out) != 2 || !called {
		t.Fatalf("Random: %+v %v called=%v", out, err, called)
	}
}
