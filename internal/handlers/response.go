// Package handlers contains HTTP request handlers for the blog service.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/GunarsK-portfolio/blog-service/internal/service"
	"github.com/gin-gonic/gin"
)

// Envelope is the body of every API response.
type Envelope struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// Respond writes data inside the envelope with the given status.
func Respond(c *gin.Context, status int, msg string, data interface{}) {
	if data == nil {
		data = gin.H{}
	}
	c.JSON(status, Envelope{Code: status, Msg: msg, Data: data})
}

// RespondError writes an error envelope with an empty payload.
func RespondError(c *gin.Context, status int, msg string) {
	Respond(c, status, msg, nil)
}

// LogAndRespondError logs err with request context and writes msg to the client.
func LogAndRespondError(c *gin.Context, status int, err error, msg string) {
	slog.ErrorContext(c.Request.Context(), msg,
		"error", err,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", status,
	)
	RespondError(c, status, msg)
}

// errorMessages holds resource-specific wording for the common failures.
type errorMessages struct {
	notFound  string
	forbidden string
}

// respondServiceError maps service errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error, msgs errorMessages) {
	switch {
	case errors.Is(err, service.ErrInvalidPage):
		RespondError(c, http.StatusNotFound, "Invalid page.")
	case errors.Is(err, service.ErrNotFound):
		RespondError(c, http.StatusNotFound, msgs.notFound)
	case errors.Is(err, service.ErrForbidden):
		RespondError(c, http.StatusForbidden, msgs.forbidden)
	case errors.Is(err, service.ErrSlugTaken):
		RespondError(c, http.StatusConflict, "Post with this slug already exists")
	default:
		LogAndRespondError(c, http.StatusInternalServerError, err, "Internal server error")
	}
}
