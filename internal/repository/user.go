// Package repository provides the data access layer for the blog service.
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/GunarsK-portfolio/blog-service/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository instance.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// NormalizeEmail is the stored form of an address. Emails are unique on this
// form, so lookups and inserts must both go through it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if isNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email %s: %w", email, err)
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if isNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by id %d: %w", id, err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = NormalizeEmail(user.Email)
	err := r.db.WithContext(ctx).Create(user).Error
	if isUniqueViolation(err) {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Delete removes the user together with every post and comment it owns,
// and every comment left on those posts, in a single transaction.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownPosts := tx.Model(&models.Post{}).Select("id").Where("author_id = ?", id)

		if err := tx.Where("author_id = ? OR post_id IN (?)", id, ownPosts).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete comments of user %d: %w", id, err)
		}
		if err := tx.Where("author_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return fmt.Errorf("failed to delete posts of user %d: %w", id, err)
		}

		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete user %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
