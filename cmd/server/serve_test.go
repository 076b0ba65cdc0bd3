package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tbourn/go-advent-calendar/internal/domain"
	"github.com/tbourn/go-advent-calendar/internal/repo"
)

func TestMigrate_CreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", path)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("CALENDAR_TZ", "UTC")

	if err := migrate(context.Background(), nil); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	db, err := repo.OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()
	for _, m := range []any{&domain.Profile{}, &domain.Article{}, &domain.Declaration{}, &domain.Reaction{}} {
		if !db.Migrator().HasTable(m) {
			t.Fatalf("missing table for %T", m)
		}
	}
}

func TestBootstrap_InvalidConfig(t *testing.T) {
	t.Setenv("CALENDAR_TZ", "Mars/Olympus")
	if _, _, _, err := bootstrap(); err == nil {
		t.Fatal("expected config error")
	}
}
