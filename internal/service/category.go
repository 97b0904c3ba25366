package service

import (
	"errors"
	"fmt"

	"linkvault-backend/internal/database/models"
	apperrors "linkvault-backend/internal/errors"
	"linkvault-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultCategoryPageSize = 20

// CategoryService handles business logic for categories
type CategoryService struct {
	categories repository.CategoryRepositoryInterface
	validator  *validator.Validate
}

// Ensure CategoryService implements CategoryServiceInterface
var _ CategoryServiceInterface = (*CategoryService)(nil)

// NewCategoryService creates a new category service
func NewCategoryService(categories repository.CategoryRepositoryInterface, validator *validator.Validate) *CategoryService {
	return &CategoryService{categories: categories, validator: validator}
}

// CreateCategoryRequest represents the request to create a category
type CreateCategoryRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=50"`
	Color string `json:"color" validate:"required,hexcolor"`
}

// UpdateCategoryRequest represents a partial update of a category
type UpdateCategoryRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=50"`
	Color *string `json:"color" validate:"omitempty,hexcolor"`
}

// CategoryPage is one page of categories
type CategoryPage struct {
	Categories []models.Category `json:"categories"`
	Pagination Pagination        `json:"pagination"`
}

// List retrieves one page of the user's categories
func (s *CategoryService) List(userID uuid.UUID, page, limit int) (*CategoryPage, error) {
	page, limit, offset := normalizePage(page, limit, defaultCategoryPageSize, 0)

	categories, total, err := s.categories.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return &CategoryPage{
		Categories: categories,
		Pagination: NewPagination(page, limit, total),
	}, nil
}

// Create validates and saves a new category. Names are unique per owner.
func (s *CategoryService) Create(userID uuid.UUID, req *CreateCategoryRequest) (*models.Category, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError(apperrors.FirstViolation(err))
	}

	if err := s.checkNameAvailable(userID, req.Name, uuid.Nil); err != nil {
		return nil, err
	}

	category := &models.Category{
		UserID: userID,
		Name:   req.Name,
		Color:  req.Color,
	}
	if err := s.categories.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// GetByID retrieves one of the user's categories
func (s *CategoryService) GetByID(userID, categoryID uuid.UUID) (*models.Category, error) {
	return s.getOwned(userID, categoryID)
}

// Update applies a partial update to one of the user's categories
func (s *CategoryService) Update(userID, categoryID uuid.UUID, req *UpdateCategoryRequest) (*models.Category, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError(apperrors.FirstViolation(err))
	}

	category, err := s.getOwned(userID, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != category.Name {
		if err := s.checkNameAvailable(userID, *req.Name, category.ID); err != nil {
			return nil, err
		}
		category.Name = *req.Name
	}
	if req.Color != nil {
		category.Color = *req.Color
	}

	if err := s.categories.Update(category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// Delete removes one of the user's categories. Its links stay, only the
// membership rows go.
func (s *CategoryService) Delete(userID, categoryID uuid.UUID) error {
	category, err := s.getOwned(userID, categoryID)
	if err != nil {
		return err
	}
	if err := s.categories.Delete(category.ID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func (s *CategoryService) getOwned(userID, categoryID uuid.UUID) (*models.Category, error) {
	category, err := s.categories.GetByIDForUser(categoryID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// checkNameAvailable enforces the per-owner unique name, excluding the
// category being updated
func (s *CategoryService) checkNameAvailable(userID uuid.UUID, name string, excludeID uuid.UUID) error {
	existing, err := s.categories.GetByNameForUser(userID, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check category name: %w", err)
	}
	if existing.ID != excludeID {
		return apperrors.ErrCategoryExists
	}
	return nil
}
