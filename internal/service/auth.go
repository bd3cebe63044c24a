package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GunarsK-portfolio/blog-service/internal/models"
	"github.com/GunarsK-portfolio/blog-service/internal/repository"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const blacklistKeyPrefix = "blacklist:"

// TokenPair is returned by a successful login.
type TokenPair struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

// AccessToken is returned by a refresh.
type AccessToken struct {
	Access string `json:"access"`
}

// RegisterInput holds the fields of a new account.
type RegisterInput struct {
	Email       string
	FirstName   string
	LastName    string
	DateOfBirth *time.Time
	Password    string
}

// AuthService handles accounts, credentials and tokens.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AccessToken, error)
	Logout(ctx context.Context, caller Identity, refreshToken string) error
	Authenticate(ctx context.Context, accessToken string) (*Identity, error)
	DeleteAccount(ctx context.Context, caller Identity) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService JWTService
	redis      *redis.Client
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(userRepo repository.UserRepository, jwtService JWTService, redisClient *redis.Client) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		redis:      redisClient,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		DateOfBirth:  input.DateOfBirth,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &TokenPair{Refresh: refreshToken, Access: accessToken}, nil
}

// RefreshToken exchanges a valid, non-blacklisted refresh token for a new
// access token. The refresh token itself is not rotated.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*AccessToken, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	blacklisted, err := s.isBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, fmt.Errorf("%w: token is blacklisted", ErrInvalidToken)
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.UserID, claims.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	return &AccessToken{Access: accessToken}, nil
}

// Logout blacklists the caller's refresh token until it would have expired.
func (s *authService) Logout(ctx context.Context, caller Identity, refreshToken string) error {
	claims, err := s.jwtService.ValidateToken(refreshToken, TokenTypeRefresh)
	if err != nil {
		return err
	}
	if claims.UserID != caller.UserID {
		return fmt.Errorf("%w: token belongs to another user", ErrInvalidToken)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return ErrInvalidToken
	}

	key := blacklistKeyPrefix + claims.ID
	if err := s.redis.Set(ctx, key, claims.UserID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist refresh token: %w", err)
	}
	return nil
}

// Authenticate resolves an access token to the identity of an existing user.
func (s *authService) Authenticate(ctx context.Context, accessToken string) (*Identity, error) {
	claims, err := s.jwtService.ValidateToken(accessToken, TokenTypeAccess)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: user no longer exists", ErrInvalidToken)
	}
	if err != nil {
		return nil, err
	}
	return &Identity{UserID: user.ID, Email: user.Email}, nil
}

// DeleteAccount removes the caller and everything they authored.
func (s *authService) DeleteAccount(ctx context.Context, caller Identity) error {
	return s.userRepo.Delete(ctx, caller.UserID)
}

func (s *authService) isBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := s.redis.Exists(ctx, blacklistKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return n > 0, nil
}
