package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/GunarsK-portfolio/blog-service/internal/models"
	"github.com/GunarsK-portfolio/blog-service/internal/repository"
	"github.com/GunarsK-portfolio/blog-service/internal/service"
	"github.com/gin-gonic/gin"
)

// =============================================================================
// Mock Implementations
// =============================================================================

type mockPostService struct {
	createFunc       func(ctx context.Context, caller service.Identity, input service.CreatePostInput) (*models.Post, error)
	getFunc          func(ctx context.Context, slug string) (*models.Post, error)
	listFunc         func(ctx context.Context, filter repository.PostFilter, page service.Page) (*service.PostList, error)
	updateFunc       func(ctx context.Context, caller service.Identity, slug string, input service.UpdatePostInput) (*models.Post, error)
	deleteFunc       func(ctx context.Context, caller service.Identity, slug string) error
	topCommentedFunc func(ctx context.Context) ([]models.RankedPost, error)
}

func (m *mockPostService) Create(ctx context.Context, caller service.Identity, input service.CreatePostInput) (*models.Post, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, caller, input)
	}
	return nil, errors.New("not implemented")
}

func (m *mockPostService) Get(ctx context.Context, slug string) (*models.Post, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, slug)
	}
	return nil, errors.New("not implemented")
}

func (m *mockPostService) List(ctx context.Context, filter repository.PostFilter, page service.Page) (*service.PostList, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter, page)
	}
	return nil, errors.New("not implemented")
}

func (m *mockPostService) Update(ctx context.Context, caller service.Identity, slug string, input service.UpdatePostInput) (*models.Post, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, caller, slug, input)
	}
	return nil, errors.New("not implemented")
}

func (m *mockPostService) Delete(ctx context.Context, caller service.Identity, slug string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, caller, slug)
	}
	return errors.New("not implemented")
}

func (m *mockPostService) TopCommented(ctx context.Context) ([]models.RankedPost, error) {
	if m.topCommentedFunc != nil {
		return m.topCommentedFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

// =============================================================================
// Test Helpers
// =============================================================================

var postCreatedAt = time.Date(2024, 5, 1, 10, 15, 30, 0, time.UTC)

func samplePost(slug string) *models.Post {
	return &models.Post{
		ID:        7,
		Title:     "Hello World",
		Body:      "First post",
		AuthorID:  author.UserID,
		Author:    models.User{ID: author.UserID, Email: author.Email},
		Slug:      slug,
		CreatedAt: postCreatedAt,
	}
}

func withSlugParam(c *gin.Context, slug string) {
	c.Params = append(c.Params, gin.Param{Key: "slug", Value: slug})
}

func decodePost(t *testing.T, env testEnvelope) PostResponse {
	t.Helper()
	var post PostResponse
	if err := json.Unmarshal(env.Data, &post); err != nil {
		t.Fatalf("failed to parse post: %v (data %s)", err, env.Data)
	}
	return post
}

// =============================================================================
// Create Handler Tests
// =============================================================================

func TestCreatePost_Success(t *testing.T) {
	var got service.CreatePostInput
	handler := NewPostHandler(&mockPostService{
		createFunc: func(ctx context.Context, caller service.Identity, input service.CreatePostInput) (*models.Post, error) {
			if caller != author {
				t.Errorf("caller = %+v, want %+v", caller, author)
			}
			got = input
			return samplePost("hello-world"), nil
		},
	}, 10)

	w, c := createAuthedContext(http.MethodPost, "/posts/", CreatePostRequest{Title: "  Hello World ", Body: "First post"}, author)
	handler.Create(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, http.StatusCreated, w.Body.String())
	}
	if got.Title != "Hello World" {
		t.Errorf("title = %q, want trimmed", got.Title)
	}

	env := decodeEnvelope(t, w)
	if env.Msg != "Post created successfully" {
		t.Errorf("msg = %q", env.Msg)
	}
	post := decodePost(t, env)
	if post.Slug != "hello-world" {
		t.Errorf("slug = %q, want hello-world", post.Slug)
	}
	if post.Author != author.Email {
		t.Errorf("author = %q, want %q", post.Author, author.Email)
	}
	if !post.Timestamp.Equal(postCreatedAt) {
		t.Errorf("timestamp = %v, want %v", post.Timestamp, postCreatedAt)
	}
}

func TestCreatePost_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      interface{}
		wantField string
	}{
		{"title too short", map[string]string{"title": "T", "body": "x"}, "title"},
		{"title too long", map[string]string{"title": strings.Repeat("a", 101), "body": "x"}, "title"},
		{"title short once trimmed", map[string]string{"title": "   ab   ", "body": "x"}, "title"},
		{"missing body", map[string]string{"title": "Hello World"}, "body"},
		{"blank body", map[string]string{"title": "Hello World", "body": "  "}, "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewPostHandler(&mockPostService{
				createFunc: func(ctx context.Context, caller service.Identity, input service.CreatePostInput) (*models.Post, error) {
					t.Error("Create should not be called for invalid input")
					return nil, nil
				},
			}, 10)

			w, c := createAuthedContext(http.MethodPost, "/posts/", tt.body, author)
			handler.Create(c)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
			fields := decodeFieldErrors(t, decodeEnvelope(t, w))
			if len(fields[tt.wantField]) == 0 {
				t.Errorf("expected an error for %q, got %v", tt.wantField, fields)
			}
		})
	}
}

func TestCreatePost_SlugConflict(t *testing.T) {
	handler := NewPostHandler(&mockPostService{
		createFunc: func(ctx context.Context, caller service.Identity, input service.CreatePostInput) (*models.Post, error) {
			return nil, service.ErrSlugTaken
		},
	}, 10)

	w, c := createAuthedContext(http.MethodPost, "/posts/", CreatePostRequest{Title: "Hello World", Body: "b"}, author)
	handler.Create(c)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", w.Code, http.StatusConflict)
	}
}

func TestCreatePost_Unauthenticated(t *testing.T) {
	handler := NewPostHandler(&mockPostService{}, 10)

	w, c := createTestContext(http.MethodPost, "/posts/", CreatePostRequest{Title: "Hello World", Body: "b"})
	handler.Create(c)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

// =============================================================================
// Read Handler Tests
// =============================================================================

func TestGetPost(t *testing.T) {
	handler := NewPostHandler(&mockPostService{
		getFunc: func(ctx context.Context, slug string) (*models.Post, error) {
			if slug == "hello-world" {
				return samplePost(slug), nil
			}
			return nil, service.ErrNotFound
		},
	}, 10)

	w, c := createTestContext(http.MethodGet, "/posts/hello-world/", nil)
	withSlugParam(c, "hello-world")
	handler.Get(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if post := decodePost(t, decodeEnvelope(t, w)); post.ID != 7 {
		t.Errorf("id = %d, want 7", post.ID)
	}

	w, c = createTestContext(http.MethodGet, "/posts/missing/", nil)
	withSlugParam(c, "missing")
	handler.Get(c)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestListPosts_Pagination(t *testing.T) {
	var gotFilter repository.PostFilter
	var gotPage service.Page
	handler := NewPostHandler(&mockPostService{
		listFunc: func(ctx context.Context, filter repository.PostFilter, page service.Page) (*service.PostList, error) {
			gotFilter, gotPage = filter, page
			return &service.PostList{Posts: []models.Post{*samplePost("a-post")}, Total: 5}, nil
		},
	}, 2)

	w, c := createTestContext(http.MethodGet, "/posts/?page=2&author=ada", nil)
	c.Request.Header.Set("X-Forwarded-Proto", "https")
	handler.List(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, http.StatusOK, w.Body.String())
	}
	if gotFilter.Author != "ada" {
		t.Errorf("author filter = %q, want ada", gotFilter.Author)
	}
	if gotPage.Number != 2 || gotPage.Size != 2 {
		t.Errorf("page = %+v, want {2 2}", gotPage)
	}

	var page struct {
		Count    int64          `json:"count"`
		Next     *string        `json:"next"`
		Previous *string        `json:"previous"`
		Results  []PostResponse `json:"results"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &page); err != nil {
		t.Fatalf("failed to parse page: %v", err)
	}
	if page.Count != 5 {
		t.Errorf("count = %d, want 5", page.Count)
	}
	if page.Next == nil || *page.Next != "https://example.com/posts/?author=ada&page=3" {
		t.Errorf("next = %v", page.Next)
	}
	if page.Previous == nil || *page.Previous != "https://example.com/posts/?author=ada" {
		t.Errorf("previous = %v", page.Previous)
	}
	if len(page.Results) != 1 {
		t.Errorf("results = %d, want 1", len(page.Results))
	}
}

func TestListPosts_InvalidPage(t *testing.T) {
	tests := []struct {
		name  string
		query string
		err   error
	}{
		{"not a number", "?page=abc", nil},
		{"zero", "?page=0", nil},
		{"past the end", "?page=9", service.ErrInvalidPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewPostHandler(&mockPostService{
				listFunc: func(ctx context.Context, filter repository.PostFilter, page service.Page) (*service.PostList, error) {
					if tt.err == nil {
						t.Error("List should not be called for a malformed page")
					}
					return nil, tt.err
				},
			}, 10)

			w, c := createTestContext(http.MethodGet, "/posts/"+tt.query, nil)
			handler.List(c)

			if w.Code != http.StatusNotFound {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
			}
			if env := decodeEnvelope(t, w); env.Msg != "Invalid page." {
				t.Errorf("msg = %q, want Invalid page.", env.Msg)
			}
		})
	}
}

func TestListPosts_EmptyFirstPage(t *testing.T) {
	handler := NewPostHandler(&mockPostService{
		listFunc: func(ctx context.Context, filter repository.PostFilter, page service.Page) (*service.PostList, error) {
			return &service.PostList{}, nil
		},
	}, 10)

	w, c := createTestContext(http.MethodGet, "/posts/", nil)
	handler.List(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var page map[string]json.RawMessage
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &page); err != nil {
		t.Fatalf("failed to parse page: %v", err)
	}
	if string(page["results"]) != "[]" {
		t.Errorf("results = %s, want []", page["results"])
	}
	if string(page["next"]) != "null" || string(page["previous"]) != "null" {
		t.Errorf("next = %s, previous = %s, want null", page["next"], page["previous"])
	}
}

// =============================================================================
// Update/Delete Handler Tests
// =============================================================================

func TestUpdatePost_Partial(t *testing.T) {
	var got service.UpdatePostInput
	handler := NewPostHandler(&mockPostService{
		updateFunc: func(ctx context.Context, caller service.Identity, slug string, input service.UpdatePostInput) (*models.Post, error) {
			got = input
			post := samplePost(slug)
			post.Body = *input.Body
			return post, nil
		},
	}, 10)

	w, c := createAuthedContext(http.MethodPut, "/posts/hello-world/", map[string]string{"body": "Edited"}, author)
	withSlugParam(c, "hello-world")
	handler.Update(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, http.StatusOK, w.Body.String())
	}
	if got.Title != nil {
		t.Errorf("title = %q, want nil for an omitted field", *got.Title)
	}
	post := decodePost(t, decodeEnvelope(t, w))
	if post.Body != "Edited" || post.Slug != "hello-world" {
		t.Errorf("post = %+v", post)
	}
}

func TestUpdatePost_ShortTitle(t *testing.T) {
	handler := NewPostHandler(&mockPostService{}, 10)

	w, c := createAuthedContext(http.MethodPut, "/posts/hello-world/", map[string]string{"title": "T"}, author)
	withSlugParam(c, "hello-world")
	handler.Update(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if fields := decodeFieldErrors(t, decodeEnvelope(t, w)); len(fields["title"]) == 0 {
		t.Errorf("expected a title error, got %v", fields)
	}
}

func TestUpdatePost_PaddedShortTitle(t *testing.T) {
	handler := NewPostHandler(&mockPostService{
		updateFunc: func(ctx context.Context, caller service.Identity, slug string, input service.UpdatePostInput) (*models.Post, error) {
			t.Error("Update should not be called for invalid input")
			return nil, nil
		},
	}, 10)

	w, c := createAuthedContext(http.MethodPut, "/posts/hello-world/", map[string]string{"title": "   ab   "}, author)
	withSlugParam(c, "hello-world")
	handler.Update(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if fields := decodeFieldErrors(t, decodeEnvelope(t, w)); len(fields["title"]) == 0 {
		t.Errorf("expected a title error, got %v", fields)
	}
}

func TestUpdatePost_TitleTrimmed(t *testing.T) {
	var got service.UpdatePostInput
	handler := NewPostHandler(&mockPostService{
		updateFunc: func(ctx context.Context, caller service.Identity, slug string, input service.UpdatePostInput) (*models.Post, error) {
			got = input
			post := samplePost(slug)
			post.Title = *input.Title
			return post, nil
		},
	}, 10)

	w, c := createAuthedContext(http.MethodPut, "/posts/hello-world/", map[string]string{"title": "  " + strings.Repeat("a", 100) + "  "}, author)
	withSlugParam(c, "hello-world")
	handler.Update(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, http.StatusOK, w.Body.String())
	}
	if got.Title == nil || *got.Title != strings.Repeat("a", 100) {
		t.Errorf("title = %v, want 100 trimmed characters", got.Title)
	}
}

func TestPostMutations_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not the author", service.ErrForbidden, http.StatusForbidden},
		{"missing post", service.ErrNotFound, http.StatusNotFound},
		{"storage failure", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewPostHandler(&mockPostService{
				updateFunc: func(ctx context.Context, caller service.Identity, slug string, input service.UpdatePostInput) (*models.Post, error) {
					return nil, tt.err
				},
				deleteFunc: func(ctx context.Context, caller service.Identity, slug string) error {
					return tt.err
				},
			}, 10)

			w, c := createAuthedContext(http.MethodPut, "/posts/hello-world/", map[string]string{"body": "x"}, stranger)
			withSlugParam(c, "hello-world")
			handler.Update(c)
			if w.Code != tt.wantStatus {
				t.Errorf("Update status = %d, want %d", w.Code, tt.wantStatus)
			}

			w, c = createAuthedContext(http.MethodDelete, "/posts/hello-world/", nil, stranger)
			withSlugParam(c, "hello-world")
			handler.Delete(c)
			if w.Code != tt.wantStatus {
				t.Errorf("Delete status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestDeletePost_Success(t *testing.T) {
	var deleted string
	handler := NewPostHandler(&mockPostService{
		deleteFunc: func(ctx context.Context, caller service.Identity, slug string) error {
			deleted = slug
			return nil
		},
	}, 10)

	w, c := createAuthedContext(http.MethodDelete, "/posts/hello-world/", nil, author)
	withSlugParam(c, "hello-world")
	handler.Delete(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if deleted != "hello-world" {
		t.Errorf("deleted = %q, want hello-world", deleted)
	}
	assertEmptySuccess(t, w, http.StatusOK, "Post deleted successfully")
}

// =============================================================================
// TopFive Handler Tests
// =============================================================================

func TestTopFive(t *testing.T) {
	handler := NewPostHandler(&mockPostService{
		topCommentedFunc: func(ctx context.Context) ([]models.RankedPost, error) {
			return []models.RankedPost{
				{ID: 2, Title: "Busy", AuthorEmail: author.Email, Slug: "busy", CommentCount: 4},
				{ID: 1, Title: "Quiet", AuthorEmail: author.Email, Slug: "quiet", CommentCount: 1},
			}, nil
		},
	}, 10)

	w, c := createAuthedContext(http.MethodGet, "/top-five-posts/", nil, author)
	handler.TopFive(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var ranked []map[string]interface{}
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &ranked); err != nil {
		t.Fatalf("failed to parse ranking: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("len = %d, want 2", len(ranked))
	}
	if ranked[0]["comment_count"] != float64(4) || ranked[0]["author"] != author.Email {
		t.Errorf("first = %v", ranked[0])
	}
}

func TestTopFive_Empty(t *testing.T) {
	handler := NewPostHandler(&mockPostService{
		topCommentedFunc: func(ctx context.Context) ([]models.RankedPost, error) {
			return []models.RankedPost{}, nil
		},
	}, 10)

	w, c := createAuthedContext(http.MethodGet, "/top-five-posts/", nil, author)
	handler.TopFive(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if env := decodeEnvelope(t, w); string(env.Data) != "[]" {
		t.Errorf("data = %s, want []", env.Data)
	}
}
