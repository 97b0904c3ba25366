package repository

import (
	"linkvault-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CollectionRepository handles database operations for collections and
// their link memberships
type CollectionRepository struct {
	db *gorm.DB
}

// Ensure CollectionRepository implements CollectionRepositoryInterface
var _ CollectionRepositoryInterface = (*CollectionRepository)(nil)

// NewCollectionRepository creates a new collection repository
func NewCollectionRepository(db *gorm.DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

// Create inserts a new collection
func (r *CollectionRepository) Create(collection *models.Collection) error {
	return r.db.Create(collection).Error
}

// GetByID retrieves a collection regardless of owner. Callers decide what a
// non-owner is allowed to see.
func (r *CollectionRepository) GetByID(id uuid.UUID) (*models.Collection, error) {
	var collection models.Collection
	if err := r.db.First(&collection, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &collection, nil
}

// GetByIDForUser retrieves a collection owned by the given user
func (r *CollectionRepository) GetByIDForUser(id, userID uuid.UUID) (*models.Collection, error) {
	var collection models.Collection
	if err := r.db.First(&collection, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &collection, nil
}

// ListByUser retrieves one page of a user's collections, newest first
func (r *CollectionRepository) ListByUser(userID uuid.UUID, limit, offset int) ([]models.Collection, int64, error) {
	return r.list(r.db.Model(&models.Collection{}).Where("user_id = ?", userID), limit, offset)
}

// ListPublicByUser retrieves one page of a user's public collections, newest first
func (r *CollectionRepository) ListPublicByUser(userID uuid.UUID, limit, offset int) ([]models.Collection, int64, error) {
	q := r.db.Model(&models.Collection{}).Where("user_id = ? AND is_private = ?", userID, false)
	return r.list(q, limit, offset)
}

func (r *CollectionRepository) list(q *gorm.DB, limit, offset int) ([]models.Collection, int64, error) {
	var collections []models.Collection
	var total int64

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&collections).Error; err != nil {
		return nil, 0, err
	}
	return collections, total, nil
}

type collectionCount struct {
	CollectionID uuid.UUID
	Count        int64
}

// LinkCounts counts the membership rows of each given collection
func (r *CollectionRepository) LinkCounts(collectionIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	result := make(map[uuid.UUID]int64, len(collectionIDs))
	if len(collectionIDs) == 0 {
		return result, nil
	}

	var rows []collectionCount
	err := r.db.Model(&models.CollectionLink{}).
		Select("collection_id, COUNT(*) AS count").
		Where("collection_id IN ?", collectionIDs).
		Group("collection_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.CollectionID] = row.Count
	}
	return result, nil
}

// PublicLinkCounts counts only the public links of each given collection
func (r *CollectionRepository) PublicLinkCounts(collectionIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	result := make(map[uuid.UUID]int64, len(collectionIDs))
	if len(collectionIDs) == 0 {
		return result, nil
	}

	var rows []collectionCount
	err := r.db.Model(&models.CollectionLink{}).
		Select("collection_links.collection_id, COUNT(*) AS count").
		Joins("JOIN links ON links.id = collection_links.link_id").
		Where("collection_links.collection_id IN ? AND links.is_private = ?", collectionIDs, false).
		Group("collection_links.collection_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.CollectionID] = row.Count
	}
	return result, nil
}

// TitleExistsForUser reports whether the user already has a collection with
// this exact title
func (r *CollectionRepository) TitleExistsForUser(userID uuid.UUID, title string) (bool, error) {
	var total int64
	err := r.db.Model(&models.Collection{}).
		Where("user_id = ? AND title = ?", userID, title).
		Count(&total).Error
	return total > 0, err
}

// Update persists all fields of a collection
func (r *CollectionRepository) Update(collection *models.Collection) error {
	return r.db.Save(collection).Error
}

// Delete removes a collection and its membership rows. Links are untouched.
func (r *CollectionRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection_id = ?", id).Delete(&models.CollectionLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Collection{}, "id = ?", id).Error
	})
}

// AddLinks inserts membership rows for the given links. Conflicts on the
// composite key are ignored; the service rejects duplicates before this
// point, the constraint is only a safety net.
func (r *CollectionRepository) AddLinks(collectionID uuid.UUID, linkIDs []uuid.UUID) error {
	rows := make([]models.CollectionLink, 0, len(linkIDs))
	for _, linkID := range linkIDs {
		rows = append(rows, models.CollectionLink{CollectionID: collectionID, LinkID: linkID})
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return insertIgnoringConflicts(tx, rows)
	})
}

// ExistingLinkIDs returns which of the given links are already members of
// the collection
func (r *CollectionRepository) ExistingLinkIDs(collectionID uuid.UUID, linkIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(linkIDs) == 0 {
		return nil, nil
	}
	var ids []uuid.UUID
	err := r.db.Model(&models.CollectionLink{}).
		Where("collection_id = ? AND link_id IN ?", collectionID, linkIDs).
		Pluck("link_id", &ids).Error
	return ids, err
}

// HasLink reports whether the membership row exists
func (r *CollectionRepository) HasLink(collectionID, linkID uuid.UUID) (bool, error) {
	var total int64
	err := r.db.Model(&models.CollectionLink{}).
		Where("collection_id = ? AND link_id = ?", collectionID, linkID).
		Count(&total).Error
	return total > 0, err
}

// RemoveLink deletes one membership row
func (r *CollectionRepository) RemoveLink(collectionID, linkID uuid.UUID) error {
	return r.db.
		Where("collection_id = ? AND link_id = ?", collectionID, linkID).
		Delete(&models.CollectionLink{}).Error
}

// ListLinks retrieves one page of a collection's links ordered by when they
// were added, newest first. With publicOnly the page is filtered to public
// links; this filter stays in place even where add-time checks should make
// it redundant.
func (r *CollectionRepository) ListLinks(collectionID uuid.UUID, publicOnly bool, limit, offset int) ([]models.Link, int64, error) {
	q := r.db.Model(&models.Link{}).
		Joins("JOIN collection_links ON collection_links.link_id = links.id").
		Where("collection_links.collection_id = ?", collectionID)
	if publicOnly {
		q = q.Where("links.is_private = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var links []models.Link
	if err := q.Order("collection_links.created_at DESC").Limit(limit).Offset(offset).Find(&links).Error; err != nil {
		return nil, 0, err
	}
	return links, total, nil
}

// LinkIDs retrieves every link id associated with the collection
func (r *CollectionRepository) LinkIDs(collectionID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&models.CollectionLink{}).
		Where("collection_id = ?", collectionID).
		Pluck("link_id", &ids).Error
	return ids, err
}

// PublicLinks retrieves all public links of the collection in membership
// order, newest first
func (r *CollectionRepository) PublicLinks(collectionID uuid.UUID) ([]models.Link, error) {
	var links []models.Link
	err := r.db.Model(&models.Link{}).
		Joins("JOIN collection_links ON collection_links.link_id = links.id").
		Where("collection_links.collection_id = ? AND links.is_private = ?", collectionID, false).
		Order("collection_links.created_at DESC").
		Find(&links).Error
	return links, err
}

// CloneWithLinkRefs creates the clone and copies the source's membership
// rows verbatim in one transaction. Foreign keys make the whole transaction
// fail if a referenced link disappears mid-flight.
func (r *CollectionRepository) CloneWithLinkRefs(clone *models.Collection, linkIDs []uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(clone).Error; err != nil {
			return err
		}
		rows := make([]models.CollectionLink, 0, len(linkIDs))
		for _, linkID := range linkIDs {
			rows = append(rows, models.CollectionLink{CollectionID: clone.ID, LinkID: linkID})
		}
		return insertIgnoringConflicts(tx, rows)
	})
}

// CloneWithNewLinks creates the clone, inserts the duplicated links under
// their new owner, and points the membership rows at the duplicates. One
// transaction: either everything lands or nothing does.
func (r *CollectionRepository) CloneWithNewLinks(clone *models.Collection, links []*models.Link) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(clone).Error; err != nil {
			return err
		}
		rows := make([]models.CollectionLink, 0, len(links))
		for _, link := range links {
			if err := tx.Create(link).Error; err != nil {
				return err
			}
			rows = append(rows, models.CollectionLink{CollectionID: clone.ID, LinkID: link.ID})
		}
		return insertIgnoringConflicts(tx, rows)
	})
}

// CountPublicByUser counts a user's public collections
func (r *CollectionRepository) CountPublicByUser(userID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.Model(&models.Collection{}).
		Where("user_id = ? AND is_private = ?", userID, false).
		Count(&total).Error
	return total, err
}
