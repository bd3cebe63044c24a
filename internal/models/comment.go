package models

import "time"

// Comment belongs to a post and an author. It is removed with either of them.
type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	AuthorID  int64     `json:"-" gorm:"not null;index"`
	Author    User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	PostID    int64     `json:"-" gorm:"not null;index"`
	Post      Post      `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"timestamp" gorm:"index"`
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the database table name for the Comment model.
func (Comment) TableName() string {
	return "comments"
}
