package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/GunarsK-portfolio/blog-service/internal/middleware"
	"github.com/GunarsK-portfolio/blog-service/internal/models"
	"github.com/GunarsK-portfolio/blog-service/internal/repository"
	"github.com/GunarsK-portfolio/blog-service/internal/service"
	"github.com/gin-gonic/gin"
)

var postMessages = errorMessages{
	notFound:  "Post not found",
	forbidden: "You do not have permission to perform this action.",
}

// PostHandler handles post HTTP requests.
type PostHandler struct {
	postService service.PostService
	pageSize    int
}

// NewPostHandler creates a new PostHandler instance.
func NewPostHandler(postService service.PostService, pageSize int) *PostHandler {
	return &PostHandler{postService: postService, pageSize: pageSize}
}

// PostResponse is the public representation of a post.
type PostResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	Slug      string    `json:"slug"`
	Timestamp time.Time `json:"timestamp"`
}

func newPostResponse(p *models.Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Body:      p.Body,
		Author:    p.Author.Email,
		Slug:      p.Slug,
		Timestamp: p.CreatedAt,
	}
}

// CreatePostRequest represents a new post.
type CreatePostRequest struct {
	Title string `json:"title" binding:"required,notblank,min=5,max=100"`
	Body  string `json:"body" binding:"required,notblank"`
}

// UpdatePostRequest is a partial update; omitted fields are left unchanged.
type UpdatePostRequest struct {
	Title *string `json:"title" binding:"omitempty,notblank,min=5,max=100"`
	Body  *string `json:"body" binding:"omitempty,notblank"`
}

func (r *CreatePostRequest) trim() {
	r.Title = strings.TrimSpace(r.Title)
	r.Body = strings.TrimSpace(r.Body)
}

func (r *UpdatePostRequest) trim() {
	r.Title = trimPtr(r.Title)
	r.Body = trimPtr(r.Body)
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// List godoc
// @Summary List posts
// @Description Paginated posts, newest first. author filters by first name, last name or email.
// @Tags posts
// @Produce json
// @Param page query int false "Page number"
// @Param author query string false "Author substring"
// @Success 200 {object} Envelope{data=Paginated{results=[]PostResponse}}
// @Failure 404 {object} Envelope
// @Router /posts/ [get]
func (h *PostHandler) List(c *gin.Context) {
	page, err := pageFromQuery(c, h.pageSize)
	if err != nil {
		respondServiceError(c, err, postMessages)
		return
	}

	filter := repository.PostFilter{Author: strings.TrimSpace(c.Query("author"))}
	list, err := h.postService.List(c.Request.Context(), filter, page)
	if err != nil {
		respondServiceError(c, err, postMessages)
		return
	}

	results := make([]PostResponse, 0, len(list.Posts))
	for i := range list.Posts {
		results = append(results, newPostResponse(&list.Posts[i]))
	}
	Respond(c, http.StatusOK, "Posts fetched successfully", paginate(c, page, list.Total, results))
}

// Create godoc
// @Summary Create post
// @Description Create a post authored by the caller. The slug is derived from the title.
// @Tags posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreatePostRequest true "Post"
// @Success 201 {object} Envelope{data=PostResponse}
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 409 {object} Envelope
// @Router /posts/ [post]
func (h *PostHandler) Create(c *gin.Context) {
	caller, ok := middleware.IdentityFrom(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	var req CreatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.postService.Create(c.Request.Context(), caller, service.CreatePostInput{
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		respondServiceError(c, err, postMessages)
		return
	}

	Respond(c, http.StatusCreated, "Post created successfully", newPostResponse(post))
}

// Get godoc
// @Summary Get post
// @Tags posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} Envelope{data=PostResponse}
// @Failure 404 {object} Envelope
// @Router /posts/{slug}/ [get]
func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.postService.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondServiceError(c, err, postMessages)
		return
	}

	Respond(c, http.StatusOK, "Post fetched successfully", newPostResponse(post))
}

// Update godoc
// @Summary Update post
// @Description Partially update a post. Only the author may update it; the slug never changes.
// @Tags posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param slug path string true "Post slug"
// @Param request body UpdatePostRequest true "Fields to change"
// @Success 200 {object} Envelope{data=PostResponse}
// @Failure 400 {object} Envelope
// @Failure 403 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /posts/{slug}/ [put]
func (h *PostHandler) Update(c *gin.Context) {
	caller, ok := middleware.IdentityFrom(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	var req UpdatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.postService.Update(c.Request.Context(), caller, c.Param("slug"), service.UpdatePostInput{
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		respondServiceError(c, err, postMessages)
		return
	}

	Respond(c, http.StatusOK, "Post updated successfully", newPostResponse(post))
}

// Delete godoc
// @Summary Delete post
// @Description Delete a post and its comments. Only the author may delete it.
// @Tags posts
// @Security BearerAuth
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} Envelope
// @Failure 403 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /posts/{slug}/ [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	caller, ok := middleware.IdentityFrom(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	if err := h.postService.Delete(c.Request.Context(), caller, c.Param("slug")); err != nil {
		respondServiceError(c, err, postMessages)
		return
	}

	Respond(c, http.StatusOK, "Post deleted successfully", nil)
}

// TopFive godoc
// @Summary Top five posts
// @Description The five most commented posts; ties go to the newer post.
// @Tags posts
// @Security BearerAuth
// @Produce json
// @Success 200 {object} Envelope{data=[]models.RankedPost}
// @Failure 401 {object} Envelope
// @Router /top-five-posts/ [get]
func (h *PostHandler) TopFive(c *gin.Context) {
	ranked, err := h.postService.TopCommented(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, postMessages)
		return
	}

	Respond(c, http.StatusOK, "Top five posts fetched successfully", ranked)
}
