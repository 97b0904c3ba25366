package repository

import (
	"linkvault-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshTokenRepository handles database operations for refresh tokens
type RefreshTokenRepository struct {
	db *gorm.DB
}

// Ensure RefreshTokenRepository implements RefreshTokenRepositoryInterface
var _ RefreshTokenRepositoryInterface = (*RefreshTokenRepository)(nil)

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// Create inserts a new refresh token
func (r *RefreshTokenRepository) Create(token *models.RefreshToken) error {
	return r.db.Create(token).Error
}

// GetByToken retrieves a stored refresh token by its opaque value
func (r *RefreshTokenRepository) GetByToken(token string) (*models.RefreshToken, error) {
	var stored models.RefreshToken
	if err := r.db.First(&stored, "token = ?", token).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// DeleteByToken removes a stored refresh token
func (r *RefreshTokenRepository) DeleteByToken(token string) error {
	return r.db.Where("token = ?", token).Delete(&models.RefreshToken{}).Error
}

// DeleteByUser removes all of a user's refresh tokens
func (r *RefreshTokenRepository) DeleteByUser(userID uuid.UUID) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error
}
