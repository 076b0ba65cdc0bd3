// Package domain defines the persistence models for profiles, articles,
// declarations, and reactions, plus the derived DayState view. The models
// are mapped with GORM and shared by the repository and service layers.
//
// Uniqueness is a schema contract, not an application check:
//   - articles:      (user_id, publish_date)
//   - declarations:  (user_id, publish_date)
//   - reactions:     (article_id, user_id, reaction_type)
//   - profiles:      pen_name
//
// Rows are hard-deleted. A soft-delete marker would keep the unique slot
// occupied and break reaction toggling.
package domain

import "time"

// Role distinguishes regular writers from administrators.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ArticleStatus is the lifecycle state of an article.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
)

// Valid reports whether s is a known status.
func (s ArticleStatus) Valid() bool { return s == StatusDraft || s == StatusPublished }

// Profile is the public identity of an authenticated user. ID equals the
// subject of the identity provider and never changes.
//
// Fields:
//   - ID: subject id (varchar(64)).
//   - PenName: display name, unique across profiles.
//   - Role: "user" or "admin" (enforced by DB constraint).
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Profile struct {
	ID        string    `json:"id"         gorm:"type:varchar(64);primaryKey"`
	PenName   string    `json:"pen_name"   gorm:"type:varchar(64);not null;uniqueIndex:ux_profiles_pen_name"`
	Role      Role      `json:"role"       gorm:"type:varchar(16);not null;default:'user';check:role IN ('user','admin')"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Profile.
func (Profile) TableName() string { return "profiles" }

// Article is a user's document for one calendar day. Content is the editor's
// JSON document stored verbatim; this layer only cares whether it exists.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - UserID: owning profile; unique together with PublishDate.
//   - PublishDate: calendar day, YYYY-MM-DD.
//   - Title / Content: editor payload.
//   - Status: "draft" or "published" (enforced by DB constraint).
//   - Author: FK association, cascade-deleted with the profile.
type Article struct {
	ID          string        `json:"id"           gorm:"type:char(36);primaryKey"`
	UserID      string        `json:"user_id"      gorm:"type:varchar(64);not null;uniqueIndex:ux_articles_user_date,priority:1"`
	PublishDate string        `json:"publish_date" gorm:"type:varchar(10);not null;uniqueIndex:ux_articles_user_date,priority:2;index:idx_articles_date_status,priority:1"`
	Title       string        `json:"title"        gorm:"type:varchar(255);not null;default:''"`
	Content     string        `json:"-"            gorm:"type:text;not null;default:''"`
	Status      ArticleStatus `json:"status"       gorm:"type:varchar(16);not null;default:'draft';index:idx_articles_date_status,priority:2;check:status IN ('draft','published')"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	Author Profile `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Article.
func (Article) TableName() string { return "articles" }

// ArticleWithAuthor is the canonical shape of an article joined with its
// author's pen name. Repositories normalize join results into this type.
type ArticleWithAuthor struct {
	Article
	PenName string `json:"pen_name"`
}

// Declaration is a one-time statement that UserID will publish on
// PublishDate. There is no retraction.
type Declaration struct {
	ID          string    `json:"id"           gorm:"type:char(36);primaryKey"`
	UserID      string    `json:"user_id"      gorm:"type:varchar(64);not null;uniqueIndex:ux_declarations_user_date,priority:1"`
	PublishDate string    `json:"publish_date" gorm:"type:varchar(10);not null;uniqueIndex:ux_declarations_user_date,priority:2;index:idx_declarations_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the database table name for Declaration.
func (Declaration) TableName() string { return "declarations" }

// Reaction is one reader's emoji on one article. At most one row exists per
// (article, user, type); toggling deletes it.
type Reaction struct {
	ID           string       `json:"id"            gorm:"type:char(36);primaryKey"`
	ArticleID    string       `json:"article_id"    gorm:"type:char(36);not null;uniqueIndex:ux_reactions_article_user_type,priority:1"`
	UserID       string       `json:"user_id"       gorm:"type:varchar(64);not null;uniqueIndex:ux_reactions_article_user_type,priority:2"`
	ReactionType ReactionType `json:"reaction_type" gorm:"type:varchar(16);not null;uniqueIndex:ux_reactions_article_user_type,priority:3"`
	CreatedAt    time.Time    `json:"created_at"`

	// Article is the reacted-to document. Reactions are cascade-deleted
	// with it.
	Article Article `json:"-" gorm:"foreignKey:ArticleID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Reaction.
func (Reaction) TableName() string { return "reactions" }

// DayState is the derived engagement view of one calendar day for one
// (possibly anonymous) viewer. It is never persisted.
type DayState struct {
	Date                string `json:"date"`
	DeclarationCount    uint   `json:"declaration_count"`
	HasPublishedArticle bool   `json:"has_published_article"`
	IsViewerDeclared    bool   `json:"is_viewer_declared"`
	IsViewerDraft       bool   `json:"is_viewer_draft"`
	IsViewerPublished   bool   `json:"is_viewer_published"`
}

// IsViewerArticleExists reports whether the viewer has any article that day.
func (s DayState) IsViewerArticleExists() bool { return s.IsViewerDraft || s.IsViewerPublished }
