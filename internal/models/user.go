// Package models contains data models for the blog service.
package models

import "time"

// User is an account that authors posts and comments. Email is the login identity.
type User struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	FirstName    string     `json:"first_name" gorm:"not null;default:''"`
	LastName     string     `json:"last_name" gorm:"not null;default:''"`
	DateOfBirth  *time.Time `json:"date_of_birth" gorm:"type:date"`
	PasswordHash string     `json:"-" gorm:"not null"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName returns the database table name for the User model.
func (User) TableName() string {
	return "users"
}
