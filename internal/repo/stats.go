// Package repo implements the fact store for profiles, articles,
// declarations, and reactions, backed by GORM. This file provides small
// aggregate queries used for conditional responses (ETag generation) on the
// calendar endpoint.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-advent-calendar/internal/domain"
)

// WindowStats summarizes every fact that can change a DayState in a date
// window. Declarations are append-only, so count plus newest created_at
// identifies them; articles use updated_at.
type WindowStats struct {
	Declarations     int64
	Articles         int64
	LastDeclaration  *time.Time
	LastArticleWrite *time.Time
}

// CalendarStats computes WindowStats for [from, to].
//
// It executes up to four lightweight queries. When a table has no rows in the
// window, its count is 0 and its timestamp is nil.
func CalendarStats(ctx context.Context, db *gorm.DB, from, to string) (WindowStats, error) {
	var st WindowStats
	var err error

	dq := db.WithContext(ctx).Model(&domain.Declaration{}).
		Where("publish_date >= ? AND publish_date <= ?", from, to)
	if st.Declarations, st.LastDeclaration, err = countAndLatest(dq, "created_at"); err != nil {
		return WindowStats{}, err
	}

	aq := db.WithContext(ctx).Model(&domain.Article{}).
		Where("publish_date >= ? AND publish_date <= ?", from, to)
	if st.Articles, st.LastArticleWrite, err = countAndLatest(aq, "updated_at"); err != nil {
		return WindowStats{}, err
	}
	return st, nil
}

func countAndLatest(q *gorm.DB, column string) (int64, *time.Time, error) {
	var count int64
	if err := q.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Latest timestamp (avoid MAX() -> TEXT in SQLite)
	var row struct {
		At time.Time
	}
	if err := q.Session(&gorm.Session{}).Select(column + " AS at").Order(column + " DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.At, nil
}
