package auth

import (
	"errors"
	"fmt"
	"time"

	"linkvault-backend/internal/config"
	"linkvault-backend/internal/database/models"
	apperrors "linkvault-backend/internal/errors"
	"linkvault-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Claims represents access and refresh token claims
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// ServiceInterface defines the interface for the auth service
type ServiceInterface interface {
	Register(req *RegisterRequest) (*Session, error)
	Login(req *LoginRequest) (*Session, error)
	Refresh(refreshToken string) (*Session, error)
	Logout(refreshToken string) error
	ValidateAccessToken(token string) (uuid.UUID, error)
}

// Service issues and validates tokens and owns the credential checks
type Service struct {
	users     repository.UserRepositoryInterface
	tokens    repository.RefreshTokenRepositoryInterface
	validator *validator.Validate

	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)

// NewService creates a new auth service
func NewService(cfg *config.Config, users repository.UserRepositoryInterface, tokens repository.RefreshTokenRepositoryInterface, validator *validator.Validate) *Service {
	return &Service{
		users:         users,
		tokens:        tokens,
		validator:     validator,
		accessSecret:  []byte(cfg.JWTSecret),
		refreshSecret: []byte(cfg.JWTRefreshSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
	}
}

// RegisterRequest represents the request to register a user
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents the request to log in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserInfo is the public shape of a user in auth responses
type UserInfo struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// Session carries a fresh access token plus the refresh token the handler
// puts in the cookie
type Session struct {
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
	User             *UserInfo
}

// Register creates a user and logs them in
func (s *Service) Register(req *RegisterRequest) (*Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError(apperrors.FirstViolation(err))
	}

	existing, err := s.users.GetByEmail(req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrEmailRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
	}
	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueSession(user)
}

// Login checks credentials and issues a session. Missing user and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(req *LoginRequest) (*Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError(apperrors.FirstViolation(err))
	}

	user, err := s.users.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueSession(user)
}

// Refresh exchanges a valid refresh token for a new session. The stored
// token is superseded, not revoked, so a concurrent refresh with the same
// token still succeeds until expiry. Unknown or expired tokens fail closed.
func (s *Service) Refresh(refreshToken string) (*Session, error) {
	claims, err := s.parseToken(refreshToken, s.refreshSecret)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	stored, err := s.tokens.GetByToken(refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if stored.IsExpired() {
		_ = s.tokens.DeleteByToken(refreshToken)
		return nil, apperrors.ErrRefreshTokenExpired
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return s.issueSession(user)
}

// Logout deletes the stored refresh token. A missing token is not an error.
func (s *Service) Logout(refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.tokens.DeleteByToken(refreshToken)
}

// ValidateAccessToken parses an access token and returns the user id
func (s *Service) ValidateAccessToken(token string) (uuid.UUID, error) {
	claims, err := s.parseToken(token, s.accessSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, apperrors.ErrTokenExpired
		}
		return uuid.Nil, apperrors.ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, apperrors.ErrInvalidToken
	}
	return userID, nil
}

func (s *Service) issueSession(user *models.User) (*Session, error) {
	accessToken, err := s.signToken(user.ID, s.accessSecret, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refreshToken, err := s.signToken(user.ID, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	expiresAt := time.Now().Add(s.refreshTTL)
	if err := s.tokens.Create(&models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &Session{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: expiresAt,
		User: &UserInfo{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	}, nil
}

func (s *Service) signToken(userID uuid.UUID, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (s *Service) parseToken(token string, secret []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
