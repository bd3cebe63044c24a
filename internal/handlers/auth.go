package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/GunarsK-portfolio/blog-service/internal/middleware"
	"github.com/GunarsK-portfolio/blog-service/internal/service"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration and token HTTP requests.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents the registration payload.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email,max=254"`
	FirstName   string `json:"first_name" binding:"required,notblank,max=150"`
	LastName    string `json:"last_name" binding:"required,notblank,max=150"`
	DateOfBirth string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
}

func (r *RegisterRequest) trim() {
	r.Email = strings.TrimSpace(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.DateOfBirth = strings.TrimSpace(r.DateOfBirth)
}

// LoginRequest represents the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (r *LoginRequest) trim() {
	r.Email = strings.TrimSpace(r.Email)
}

// RefreshRequest carries a refresh token.
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// LogoutRequest carries the refresh token to blacklist.
type LogoutRequest struct {
	Refresh string `json:"refresh"`
}

// Register godoc
// @Summary Register a user
// @Description Register a new user with email, first name, last name, date of birth and password.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "New account"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /register/ [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	input := service.RegisterInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			Respond(c, http.StatusBadRequest, "Invalid data", map[string][]string{
				"date_of_birth": {"Date has wrong format. Use one of these formats instead: YYYY-MM-DD."},
			})
			return
		}
		input.DateOfBirth = &dob
	}

	_, err := h.authService.Register(c.Request.Context(), input)
	if errors.Is(err, service.ErrEmailTaken) {
		Respond(c, http.StatusBadRequest, "Invalid data", map[string][]string{
			"email": {"user with this email already exists."},
		})
		return
	}
	if err != nil {
		LogAndRespondError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	Respond(c, http.StatusCreated, "User registered successfully!", nil)
}

// Login godoc
// @Summary User login
// @Description Authenticate with email and password and receive access and refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} Envelope{data=service.TokenPair}
// @Failure 400 {object} Envelope
// @Router /login/ [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	tokens, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		RespondError(c, http.StatusBadRequest, "Invalid email or password")
		return
	}
	if err != nil {
		LogAndRespondError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	Respond(c, http.StatusOK, "Login successful !", tokens)
}

// Refresh godoc
// @Summary Refresh access token
// @Description Exchange a valid refresh token for a new access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} Envelope{data=service.AccessToken}
// @Failure 400 {object} Envelope
// @Router /refresh-token/ [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.authService.RefreshToken(c.Request.Context(), req.Refresh)
	if errors.Is(err, service.ErrInvalidToken) {
		RespondError(c, http.StatusBadRequest, "Token is invalid or expired")
		return
	}
	if err != nil {
		LogAndRespondError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	Respond(c, http.StatusOK, "Token refreshed successfully", token)
}

// Logout godoc
// @Summary User logout
// @Description Log out by blacklisting the provided refresh token
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body LogoutRequest true "Refresh token"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /logout/ [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	caller, ok := middleware.IdentityFrom(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Refresh == "" {
		RespondError(c, http.StatusBadRequest, "Refresh token is required")
		return
	}

	err := h.authService.Logout(c.Request.Context(), caller, req.Refresh)
	if errors.Is(err, service.ErrInvalidToken) {
		RespondError(c, http.StatusBadRequest, "Invalid or expired refresh token")
		return
	}
	if err != nil {
		LogAndRespondError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	Respond(c, http.StatusOK, "Logout successful", nil)
}

// DeleteAccount godoc
// @Summary Delete account
// @Description Delete the caller's account together with their posts and comments
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /account/ [delete]
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	caller, ok := middleware.IdentityFrom(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	if err := h.authService.DeleteAccount(c.Request.Context(), caller); err != nil {
		respondServiceError(c, err, errorMessages{notFound: "User not found"})
		return
	}

	Respond(c, http.StatusOK, "Account deleted successfully", nil)
}
