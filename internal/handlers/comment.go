package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/GunarsK-portfolio/blog-service/internal/middleware"
	"github.com/GunarsK-portfolio/blog-service/internal/models"
	"github.com/GunarsK-portfolio/blog-service/internal/service"
	"github.com/gin-gonic/gin"
)

var commentMessages = errorMessages{
	notFound:  "Not found.",
	forbidden: "You do not have permission to perform this action.",
}

// CommentHandler handles comment HTTP requests.
type CommentHandler struct {
	commentService service.CommentService
	pageSize       int
}

// NewCommentHandler creates a new CommentHandler instance.
func NewCommentHandler(commentService service.CommentService, pageSize int) *CommentHandler {
	return &CommentHandler{commentService: commentService, pageSize: pageSize}
}

// CommentResponse is the public representation of a comment.
type CommentResponse struct {
	ID        int64     `json:"id"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	Post      string    `json:"post"`
	Timestamp time.Time `json:"timestamp"`
}

func newCommentResponse(cm *models.Comment) CommentResponse {
	return CommentResponse{
		ID:        cm.ID,
		Body:      cm.Body,
		Author:    cm.Author.Email,
		Post:      cm.Post.Slug,
		Timestamp: cm.CreatedAt,
	}
}

// CommentRequest is the body of comment create and update calls.
type CommentRequest struct {
	Body string `json:"body" binding:"required,notblank,max=5000"`
}

func (r *CommentRequest) trim() {
	r.Body = strings.TrimSpace(r.Body)
}

// List godoc
// @Summary List comments
// @Description Paginated comments of a post, newest first
// @Tags comments
// @Security BearerAuth
// @Produce json
// @Param slug path string true "Post slug"
// @Param page query int false "Page number"
// @Success 200 {object} Envelope{data=Paginated{results=[]CommentResponse}}
// @Failure 404 {object} Envelope
// @Router /posts/{slug}/comments/ [get]
func (h *CommentHandler) List(c *gin.Context) {
	page, err := pageFromQuery(c, h.pageSize)
	if err != nil {
		respondServiceError(c, err, commentMessages)
		return
	}

	list, err := h.commentService.List(c.Request.Context(), c.Param("slug"), page)
	if err != nil {
		respondServiceError(c, err, commentMessages)
		return
	}

	results := make([]CommentResponse, 0, len(list.Comments))
	for i := range list.Comments {
		results = append(results, newCommentResponse(&list.Comments[i]))
	}
	Respond(c, http.StatusOK, "Comments fetched successfully", paginate(c, page, list.Total, results))
}

// Create godoc
// @Summary Create comment
// @Tags comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param slug path string true "Post slug"
// @Param request body CommentRequest true "Comment"
// @Success 201 {object} Envelope{data=CommentResponse}
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /posts/{slug}/comments/ [post]
func (h *CommentHandler) Create(c *gin.Context) {
	caller, ok := middleware.IdentityFrom(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	var req CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), caller, c.Param("slug"), req.Body)
	if err != nil {
		respondServiceError(c, err, commentMessages)
		return
	}

	Respond(c, http.StatusCreated, "Comment created successfully", newCommentResponse(comment))
}

// Update godoc
// @Summary Update comment
// @Description Only the comment's author may change it.
// @Tags comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param slug path string true "Post slug"
// @Param id path int true "Comment ID"
// @Param request body CommentRequest true "Comment"
// @Success 200 {object} Envelope{data=CommentResponse}
// @Failure 400 {object} Envelope
// @Failure 403 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /posts/{slug}/comments/{id}/ [put]
func (h *CommentHandler) Update(c *gin.Context) {
	caller, ok := middleware.IdentityFrom(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	id, ok := commentID(c)
	if !ok {
		return
	}

	var req CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), caller, c.Param("slug"), id, req.Body)
	if err != nil {
		respondServiceError(c, err, commentMessages)
		return
	}

	Respond(c, http.StatusOK, "Comment updated successfully", newCommentResponse(comment))
}

// Delete godoc
// @Summary Delete comment
// @Description Only the comment's author may delete it.
// @Tags comments
// @Security BearerAuth
// @Produce json
// @Param slug path string true "Post slug"
// @Param id path int true "Comment ID"
// @Success 200 {object} Envelope
// @Failure 403 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /posts/{slug}/comments/{id}/ [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	caller, ok := middleware.IdentityFrom(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	id, ok := commentID(c)
	if !ok {
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), caller, c.Param("slug"), id); err != nil {
		respondServiceError(c, err, commentMessages)
		return
	}

	Respond(c, http.StatusOK, "Comment deleted successfully", nil)
}

// commentID parses the :id path segment. Non-numeric ids are a 404, the way
// an unmatched route would be.
func commentID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		RespondError(c, http.StatusNotFound, commentMessages.notFound)
		return 0, false
	}
	return id, true
}
