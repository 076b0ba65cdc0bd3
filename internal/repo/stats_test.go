package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-advent-calendar/internal/domain"
)

func newTestDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()
	// Unique DB per test to avoid schema leaking across tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// One connection so per-connection PRAGMAs stick.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
		t.Cleanup(func() { _ = sqlDB.Close() })
	}
	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func allModels() []any {
	return []any{&domain.Profile{}, &domain.Article{}, &domain.Declaration{}, &domain.Reaction{}}
}

func TestCalendarStats_CountError_NoTable(t *testing.T) {
	db := newTestDB(t /* no migrations */)
	if _, err := CalendarStats(context.Background(), db, "2025-12-01", "2025-12-25"); err == nil {
		t.Fatalf("expected error due to missing tables")
	}
}

func TestCalendarStats_ZeroRows(t *testing.T) {
	db := newTestDB(t, allModels()...)
	st, err := CalendarStats(context.Background(), db, "2025-12-01", "2025-12-25")
	if err != nil {
		t.Fatalf("CalendarStats error: %v", err)
	}
	if st.Declarations != 0 || st.Articles != 0 || st.LastDeclaration != nil || st.LastArticleWrite != nil {
		t.Fatalf("expected zero stats, got %+v", st)
	}
}

func TestCalendarStats_FiltersWindow_AndPicksLatest(t *testing.T) {
	db := newTestDB(t, allModels()...)

	t1 := time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 11, 28, 18, 30, 0, 0, time.UTC) // latest in window
	t3 := time.Date(2025, 12, 30, 8, 0, 0, 0, time.UTC)   // outside window

	seed := []any{
		&domain.Declaration{ID: "d1", UserID: "u1", PublishDate: "2025-12-01", CreatedAt: t1},
		&domain.Declaration{ID: "d2", UserID: "u2", PublishDate: "2025-12-24", CreatedAt: t2},
		&domain.Declaration{ID: "d3", UserID: "u3", PublishDate: "2025-12-31", CreatedAt: t3},
		&domain.Article{ID: "a1", UserID: "u1", PublishDate: "2025-12-01", Status: domain.StatusDraft, CreatedAt: t1, UpdatedAt: t2},
		&domain.Article{ID: "a2", UserID: "u3", PublishDate: "2025-12-31", Status: domain.StatusDraft, CreatedAt: t3, UpdatedAt: t3},
	}
	for _, s := range seed {
		if err := db.Create(s).Error; err != nil {
			t.Fatalf("seed %T: %v", s, err)
		}
	}

	st, err := CalendarStats(context.Background(), db, "2025-12-01", "2025-12-25")
	if err != nil {
		t.Fatalf("CalendarStats error: %v", err)
	}
	if st.Declarations != 2 || st.Articles != 1 {
		t.Fatalf("unexpected counts: %+v", st)
	}
	if st.LastDeclaration == nil || !st.LastDeclaration.Equal(t2) {
		t.Fatalf("expected last declaration %v, got %v", t2, st.LastDeclaration)
	}
	if st.LastArticleWrite == nil || !st.LastArticleWrite.Equal(t2) {
		t.Fatalf("expected last article write %v, got %v", t2, st.LastArticleWrite)
	}
}

// Force the follow-up select to fail by renaming the timestamp column.
func TestCalendarStats_SelectLatest_ErrorPath(t *testing.T) {
	db := newTestDB(t, allModels()...)
	if err := db.Create(&domain.Declaration{ID: "d1", UserID: "u1", PublishDate: "2025-12-02", CreatedAt: time.Now().UTC()}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := db.Exec(`ALTER TABLE declarations RENAME COLUMN created_at TO created_at_old`).Error; err != nil {
		t.Fatalf("rename column: %v", err)
	}
	if _, err := CalendarStats(context.Background(), db, "2025-12-01", "2025-12-25"); err == nil {
		t.Fatalf("expected error from latest select after column rename")
	}
}
