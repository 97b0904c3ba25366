package repository

import (
	"linkvault-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryRepository handles database operations for categories
type CategoryRepository struct {
	db *gorm.DB
}

// Ensure CategoryRepository implements CategoryRepositoryInterface
var _ CategoryRepositoryInterface = (*CategoryRepository)(nil)

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a new category
func (r *CategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// GetByIDForUser retrieves a category owned by the given user
func (r *CategoryRepository) GetByIDForUser(id, userID uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// GetByNameForUser retrieves a category by exact name within one user's set
func (r *CategoryRepository) GetByNameForUser(userID uuid.UUID, name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "user_id = ? AND name = ?", userID, name).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// GetOwnedByIDs retrieves the subset of ids that resolve to categories owned by userID
func (r *CategoryRepository) GetOwnedByIDs(userID uuid.UUID, ids []uuid.UUID) ([]models.Category, error) {
	if len(ids) == 0 {
		return []models.Category{}, nil
	}
	var categories []models.Category
	if err := r.db.Where("user_id = ? AND id IN ?", userID, ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ListByUser retrieves one page of a user's categories, newest first
func (r *CategoryRepository) ListByUser(userID uuid.UUID, limit, offset int) ([]models.Category, int64, error) {
	var categories []models.Category
	var total int64

	q := r.db.Model(&models.Category{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&categories).Error; err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

// Update persists all fields of a category
func (r *CategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// Delete removes a category and its link memberships. Links are untouched.
func (r *CategoryRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.LinkCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, "id = ?", id).Error
	})
}
