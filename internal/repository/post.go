package repository

import (
	"context"
	"fmt"

	"github.com/GunarsK-portfolio/blog-service/internal/models"
	"gorm.io/gorm"
)

// PostFilter narrows a post listing.
type PostFilter struct {
	// Author matches first name, last name or email, case-insensitive substring.
	Author string
}

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	FindBySlug(ctx context.Context, slug string) (*models.Post, error)
	List(ctx context.Context, filter PostFilter, limit, offset int) ([]models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int64) error
	TopCommented(ctx context.Context, limit int) ([]models.RankedPost, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository instance.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts post. A slug collision is reported as ErrSlugTaken so the
// caller can pick another slug; any other failure is wrapped.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Omit("Author").Create(post).Error
	if isUniqueViolation(err) {
		post.ID = 0
		return ErrSlugTaken
	}
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *postRepository) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Preload("Author").Where("slug = ?", slug).First(&post).Error
	if isNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post by slug %s: %w", slug, err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter, limit, offset int) ([]models.Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Post{})
	if filter.Author != "" {
		pattern := likePattern(filter.Author)
		authors := r.db.Model(&models.User{}).Select("id").Where(
			`LOWER(first_name) LIKE ? ESCAPE '\' OR LOWER(last_name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern,
		)
		query = query.Where("author_id IN (?)", authors)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	var posts []models.Post
	err := query.Preload("Author").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, total, nil
}

// Update persists title and body only; the slug never changes after creation.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	result := r.db.WithContext(ctx).Model(post).Select("title", "body", "updated_at").Updates(post)
	if result.Error != nil {
		return fmt.Errorf("failed to update post id %d: %w", post.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the post and its comments in one transaction.
func (r *postRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete comments of post %d: %w", id, err)
		}
		result := tx.Delete(&models.Post{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete post %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// TopCommented ranks posts by comment count, newest first on ties, with one
// grouped aggregate over posts, users and comments.
func (r *postRepository) TopCommented(ctx context.Context, limit int) ([]models.RankedPost, error) {
	ranked := make([]models.RankedPost, 0, limit)
	err := r.db.WithContext(ctx).
		Table("posts").
		Select("posts.id, posts.title, posts.body, posts.slug, posts.created_at, users.email AS author_email, COUNT(comments.id) AS comment_count").
		Joins("JOIN users ON users.id = posts.author_id").
		Joins("LEFT JOIN comments ON comments.post_id = posts.id").
		Group("posts.id, posts.title, posts.body, posts.slug, posts.created_at, users.email").
		Order("comment_count DESC, posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Scan(&ranked).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank posts by comments: %w", err)
	}
	return ranked, nil
}
