package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GunarsK-portfolio/blog-service/internal/metrics"
	"github.com/GunarsK-portfolio/blog-service/internal/models"
	"github.com/GunarsK-portfolio/blog-service/internal/repository"
)

// TopPostsLimit is how many posts the comment ranking returns.
const TopPostsLimit = 5

// CreatePostInput holds the fields a caller may set on a new post.
type CreatePostInput struct {
	Title string
	Body  string
}

// UpdatePostInput holds a partial post update; nil fields are left unchanged.
type UpdatePostInput struct {
	Title *string
	Body  *string
}

// PostList is one page of posts plus the total number of matches.
type PostList struct {
	Posts []models.Post
	Total int64
}

// PostService defines post operations.
type PostService interface {
	Create(ctx context.Context, caller Identity, input CreatePostInput) (*models.Post, error)
	Get(ctx context.Context, slug string) (*models.Post, error)
	List(ctx context.Context, filter repository.PostFilter, page Page) (*PostList, error)
	Update(ctx context.Context, caller Identity, slug string, input UpdatePostInput) (*models.Post, error)
	Delete(ctx context.Context, caller Identity, slug string) error
	TopCommented(ctx context.Context) ([]models.RankedPost, error)
}

type postService struct {
	posts   repository.PostRepository
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewPostService creates a new PostService instance. m may be nil.
func NewPostService(posts repository.PostRepository, m *metrics.Metrics) PostService {
	return &postService{
		posts:   posts,
		metrics: m,
		now:     time.Now,
	}
}

// Create stores a post authored by caller. The slug comes from the title; if
// it is already taken, one retry is made with the creation time appended.
// Failures other than a slug conflict are returned without retrying.
func (s *postService) Create(ctx context.Context, caller Identity, input CreatePostInput) (*models.Post, error) {
	post := &models.Post{
		Title:     input.Title,
		Body:      input.Body,
		AuthorID:  caller.UserID,
		Slug:      CandidateSlug(input.Title),
		CreatedAt: s.now().UTC(),
	}

	err := s.posts.Create(ctx, post)
	if errors.Is(err, repository.ErrSlugTaken) {
		candidate := post.Slug
		post.Slug = TimestampedSlug(candidate, post.CreatedAt)
		slog.InfoContext(ctx, "slug taken, retrying with timestamp", "candidate", candidate, "slug", post.Slug)

		err = s.posts.Create(ctx, post)
		if err != nil {
			s.metrics.ObserveSlugCollision(metrics.CollisionFailed)
		} else {
			s.metrics.ObserveSlugCollision(metrics.CollisionResolved)
		}
	}
	if err != nil {
		return nil, err
	}

	s.metrics.ObservePostCreated()
	post.Author = models.User{ID: caller.UserID, Email: caller.Email}
	return post, nil
}

func (s *postService) Get(ctx context.Context, slug string) (*models.Post, error) {
	return s.posts.FindBySlug(ctx, slug)
}

func (s *postService) List(ctx context.Context, filter repository.PostFilter, page Page) (*PostList, error) {
	if err := page.validate(); err != nil {
		return nil, err
	}

	posts, total, err := s.posts.List(ctx, filter, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}
	if err := page.checkBounds(total); err != nil {
		return nil, err
	}
	return &PostList{Posts: posts, Total: total}, nil
}

func (s *postService) Update(ctx context.Context, caller Identity, slug string, input UpdatePostInput) (*models.Post, error) {
	post, err := s.authorize(ctx, caller, slug)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Body != nil {
		post.Body = *input.Body
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Delete(ctx context.Context, caller Identity, slug string) error {
	post, err := s.authorize(ctx, caller, slug)
	if err != nil {
		return err
	}
	return s.posts.Delete(ctx, post.ID)
}

func (s *postService) TopCommented(ctx context.Context) ([]models.RankedPost, error) {
	ranked, err := s.posts.TopCommented(ctx, TopPostsLimit)
	if err != nil {
		return nil, fmt.Errorf("top commented posts: %w", err)
	}
	if ranked == nil {
		ranked = []models.RankedPost{}
	}
	return ranked, nil
}

// authorize loads the post and checks the caller wrote it. A missing post is
// ErrNotFound whoever asks.
func (s *postService) authorize(ctx context.Context, caller Identity, slug string) (*models.Post, error) {
	post, err := s.posts.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !caller.Owns(post.AuthorID) {
		return nil, ErrForbidden
	}
	return post, nil
}
