package repository

import (
	"linkvault-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LinkFilter describes one page of a user's links. Optional predicates are
// combined conjunctively.
type LinkFilter struct {
	UserID              uuid.UUID
	Status              *models.LinkStatus
	Favorite            *bool
	Private             *bool
	Search              string
	ExcludeCollectionID *uuid.UUID
	Limit               int
	Offset              int
}

// LinkRepository handles database operations for links
type LinkRepository struct {
	db *gorm.DB
}

// Ensure LinkRepository implements LinkRepositoryInterface
var _ LinkRepositoryInterface = (*LinkRepository)(nil)

// NewLinkRepository creates a new link repository
func NewLinkRepository(db *gorm.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

// Create inserts a new link and its category memberships in one transaction
func (r *LinkRepository) Create(link *models.Link, categoryIDs []uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(link).Error; err != nil {
			return err
		}
		for _, categoryID := range categoryIDs {
			lc := models.LinkCategory{LinkID: link.ID, CategoryID: categoryID}
			if err := tx.Create(&lc).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByIDForUser retrieves a link owned by the given user
func (r *LinkRepository) GetByIDForUser(id, userID uuid.UUID) (*models.Link, error) {
	var link models.Link
	if err := r.db.First(&link, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// GetOwnedByIDs retrieves the subset of ids that resolve to links owned by userID
func (r *LinkRepository) GetOwnedByIDs(userID uuid.UUID, ids []uuid.UUID) ([]models.Link, error) {
	if len(ids) == 0 {
		return []models.Link{}, nil
	}
	var links []models.Link
	if err := r.db.Where("user_id = ? AND id IN ?", userID, ids).Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// List retrieves one page of links matching the filter, newest first
func (r *LinkRepository) List(filter LinkFilter) ([]models.Link, int64, error) {
	q := r.db.Model(&models.Link{}).Where("user_id = ?", filter.UserID)

	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Favorite != nil {
		q = q.Where("is_favorite = ?", *filter.Favorite)
	}
	if filter.Private != nil {
		q = q.Where("is_private = ?", *filter.Private)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(
			"LOWER(title) LIKE LOWER(?) OR LOWER(url) LIKE LOWER(?) OR LOWER(COALESCE(notes, '')) LIKE LOWER(?)",
			pattern, pattern, pattern,
		)
	}
	if filter.ExcludeCollectionID != nil {
		q = q.Where(
			"id NOT IN (?)",
			r.db.Model(&models.CollectionLink{}).Select("link_id").Where("collection_id = ?", *filter.ExcludeCollectionID),
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var links []models.Link
	if err := q.Order("created_at DESC").Limit(filter.Limit).Offset(filter.Offset).Find(&links).Error; err != nil {
		return nil, 0, err
	}
	return links, total, nil
}

// Update persists all fields of a link
func (r *LinkRepository) Update(link *models.Link) error {
	return r.db.Save(link).Error
}

// ReplaceCategories swaps a link's category memberships for the given set
func (r *LinkRepository) ReplaceCategories(linkID uuid.UUID, categoryIDs []uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("link_id = ?", linkID).Delete(&models.LinkCategory{}).Error; err != nil {
			return err
		}
		for _, categoryID := range categoryIDs {
			lc := models.LinkCategory{LinkID: linkID, CategoryID: categoryID}
			if err := tx.Create(&lc).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// CategoriesForLinks retrieves the categories of each given link in one query
func (r *LinkRepository) CategoriesForLinks(linkIDs []uuid.UUID) (map[uuid.UUID][]models.Category, error) {
	result := make(map[uuid.UUID][]models.Category, len(linkIDs))
	if len(linkIDs) == 0 {
		return result, nil
	}

	var joins []models.LinkCategory
	if err := r.db.Where("link_id IN ?", linkIDs).Find(&joins).Error; err != nil {
		return nil, err
	}
	if len(joins) == 0 {
		return result, nil
	}

	categoryIDs := make([]uuid.UUID, 0, len(joins))
	for _, j := range joins {
		categoryIDs = append(categoryIDs, j.CategoryID)
	}
	var categories []models.Category
	if err := r.db.Where("id IN ?", categoryIDs).Find(&categories).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	for _, j := range joins {
		if c, ok := byID[j.CategoryID]; ok {
			result[j.LinkID] = append(result[j.LinkID], c)
		}
	}
	return result, nil
}

// RemoveFromPublicCollections detaches a link from every public collection
// of its owner. Private collections keep their membership rows.
func (r *LinkRepository) RemoveFromPublicCollections(linkID, ownerID uuid.UUID) error {
	return r.db.
		Where("link_id = ? AND collection_id IN (?)",
			linkID,
			r.db.Model(&models.Collection{}).Select("id").Where("user_id = ? AND is_private = ?", ownerID, false),
		).
		Delete(&models.CollectionLink{}).Error
}

// Delete removes a link along with its category and collection memberships
func (r *LinkRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("link_id = ?", id).Delete(&models.LinkCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("link_id = ?", id).Delete(&models.CollectionLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Link{}, "id = ?", id).Error
	})
}

// CountPublicByUser counts a user's public links
func (r *LinkRepository) CountPublicByUser(userID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.Model(&models.Link{}).
		Where("user_id = ? AND is_private = ?", userID, false).
		Count(&total).Error
	return total, err
}

// insertIgnoringConflicts is shared by collection membership writers
func insertIgnoringConflicts(tx *gorm.DB, rows []models.CollectionLink) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection_id"}, {Name: "link_id"}},
		DoNothing: true,
	}).Create(&rows).Error
}
