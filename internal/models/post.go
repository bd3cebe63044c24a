package models

import "time"

// Post is a blog entry. Slug is derived from Title once, at creation.
type Post struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	AuthorID  int64     `json:"-" gorm:"not null;index"`
	Author    User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Slug      string    `json:"slug" gorm:"size:255;uniqueIndex;not null"`
	CreatedAt time.Time `json:"timestamp" gorm:"index"`
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the database table name for the Post model.
func (Post) TableName() string {
	return "posts"
}

// RankedPost is a post summary annotated with its comment count.
// It is a read model produced by an aggregate query, not a table.
type RankedPost struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	AuthorEmail  string    `json:"author"`
	Slug         string    `json:"slug"`
	CreatedAt    time.Time `json:"timestamp"`
	CommentCount int64     `json:"comment_count"`
}
