package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token types carried in the token_type claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

const minSecretLength = 32

// Claims represents JWT token claims.
type Claims struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTService defines JWT token operations.
type JWTService interface {
	GenerateAccessToken(userID int64, email string) (string, error)
	GenerateRefreshToken(userID int64, email string) (string, error)
	ValidateToken(tokenString, tokenType string) (*Claims, error)
	GetAccessExpiry() time.Duration
	GetRefreshExpiry() time.Duration
}

type jwtService struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewJWTService creates a new JWTService instance. The HS256 secret must be at least 32 bytes.
func NewJWTService(secret string, accessExpiry, refreshExpiry time.Duration) (JWTService, error) {
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes", minSecretLength)
	}
	return &jwtService{
		secret:        []byte(secret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}, nil
}

func (s *jwtService) GenerateAccessToken(userID int64, email string) (string, error) {
	return s.generateToken(userID, email, TokenTypeAccess, s.accessExpiry)
}

func (s *jwtService) GenerateRefreshToken(userID int64, email string) (string, error) {
	return s.generateToken(userID, email, TokenTypeRefresh, s.refreshExpiry)
}

func (s *jwtService) GetAccessExpiry() time.Duration {
	return s.accessExpiry
}

func (s *jwtService) GetRefreshExpiry() time.Duration {
	return s.refreshExpiry
}

func (s *jwtService) generateToken(userID int64, email, tokenType string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken parses tokenString and checks signature, expiry and that it
// is of tokenType.
func (s *jwtService) ValidateToken(tokenString, tokenType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithIssuedAt())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("%w: expected %s token, got %q", ErrInvalidToken, tokenType, claims.TokenType)
	}
	if claims.ID == "" || claims.UserID == 0 {
		return nil, fmt.Errorf("%w: missing subject or token id", ErrInvalidToken)
	}
	return claims, nil
}
