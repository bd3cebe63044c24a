package service

import (
	"context"

	"github.com/GunarsK-portfolio/blog-service/internal/models"
	"github.com/GunarsK-portfolio/blog-service/internal/repository"
)

// CommentList is one page of a post's comments plus their total.
type CommentList struct {
	Comments []models.Comment
	Total    int64
}

// CommentService defines comment operations. Comments are always addressed
// through the slug of the post they belong to.
type CommentService interface {
	List(ctx context.Context, postSlug string, page Page) (*CommentList, error)
	Create(ctx context.Context, caller Identity, postSlug, body string) (*models.Comment, error)
	Update(ctx context.Context, caller Identity, postSlug string, id int64, body string) (*models.Comment, error)
	Delete(ctx context.Context, caller Identity, postSlug string, id int64) error
}

type commentService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
}

// NewCommentService creates a new CommentService instance.
func NewCommentService(posts repository.PostRepository, comments repository.CommentRepository) CommentService {
	return &commentService{posts: posts, comments: comments}
}

func (s *commentService) List(ctx context.Context, postSlug string, page Page) (*CommentList, error) {
	if err := page.validate(); err != nil {
		return nil, err
	}

	post, err := s.posts.FindBySlug(ctx, postSlug)
	if err != nil {
		return nil, err
	}

	comments, total, err := s.comments.ListByPost(ctx, post.ID, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}
	if err := page.checkBounds(total); err != nil {
		return nil, err
	}
	return &CommentList{Comments: comments, Total: total}, nil
}

func (s *commentService) Create(ctx context.Context, caller Identity, postSlug, body string) (*models.Comment, error) {
	post, err := s.posts.FindBySlug(ctx, postSlug)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Body:     body,
		AuthorID: caller.UserID,
		PostID:   post.ID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	comment.Author = models.User{ID: caller.UserID, Email: caller.Email}
	comment.Post = *post
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, caller Identity, postSlug string, id int64, body string) (*models.Comment, error) {
	comment, err := s.authorize(ctx, caller, postSlug, id)
	if err != nil {
		return nil, err
	}

	comment.Body = body
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, caller Identity, postSlug string, id int64) error {
	comment, err := s.authorize(ctx, caller, postSlug, id)
	if err != nil {
		return err
	}
	return s.comments.Delete(ctx, comment.ID)
}

func (s *commentService) authorize(ctx context.Context, caller Identity, postSlug string, id int64) (*models.Comment, error) {
	post, err := s.posts.FindBySlug(ctx, postSlug)
	if err != nil {
		return nil, err
	}
	comment, err := s.comments.FindByID(ctx, post.ID, id)
	if err != nil {
		return nil, err
	}
	if !caller.Owns(comment.AuthorID) {
		return nil, ErrForbidden
	}
	return comment, nil
}
