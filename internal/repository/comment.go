package repository

import (
	"context"
	"fmt"

	"github.com/GunarsK-portfolio/blog-service/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	FindByID(ctx context.Context, postID, id int64) (*models.Comment, error)
	ListByPost(ctx context.Context, postID int64, limit, offset int) ([]models.Comment, int64, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id int64) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository instance.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit("Author", "Post").Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// FindByID looks the comment up within its post, so ids from another post are not found.
func (r *commentRepository) FindByID(ctx context.Context, postID, id int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Post").
		Where("post_id = ?", postID).
		First(&comment, id).Error
	if isNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find comment %d: %w", id, err)
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID int64, limit, offset int) ([]models.Comment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Comment{}).Where("post_id = ?", postID).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count comments of post %d: %w", postID, err)
	}

	var comments []models.Comment
	err := query.Preload("Author").
		Preload("Post").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments of post %d: %w", postID, err)
	}
	return comments, total, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	result := r.db.WithContext(ctx).Model(comment).Select("body", "updated_at").Updates(comment)
	if result.Error != nil {
		return fmt.Errorf("failed to update comment %d: %w", comment.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete comment %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
