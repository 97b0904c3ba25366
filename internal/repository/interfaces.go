package repository

import (
	"linkvault-backend/internal/database/models"

	"github.com/google/uuid"
)

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Search(query string, limit, offset int) ([]models.User, int64, error)
	Delete(id uuid.UUID) error
}

// LinkRepositoryInterface defines the interface for link repository operations
type LinkRepositoryInterface interface {
	Create(link *models.Link, categoryIDs []uuid.UUID) error
	GetByIDForUser(id, userID uuid.UUID) (*models.Link, error)
	GetOwnedByIDs(userID uuid.UUID, ids []uuid.UUID) ([]models.Link, error)
	List(filter LinkFilter) ([]models.Link, int64, error)
	Update(link *models.Link) error
	ReplaceCategories(linkID uuid.UUID, categoryIDs []uuid.UUID) error
	CategoriesForLinks(linkIDs []uuid.UUID) (map[uuid.UUID][]models.Category, error)
	RemoveFromPublicCollections(linkID, ownerID uuid.UUID) error
	Delete(id uuid.UUID) error
	CountPublicByUser(userID uuid.UUID) (int64, error)
}

// CategoryRepositoryInterface defines the interface for category repository operations
type CategoryRepositoryInterface interface {
	Create(category *models.Category) error
	GetByIDForUser(id, userID uuid.UUID) (*models.Category, error)
	GetByNameForUser(userID uuid.UUID, name string) (*models.Category, error)
	GetOwnedByIDs(userID uuid.UUID, ids []uuid.UUID) ([]models.Category, error)
	ListByUser(userID uuid.UUID, limit, offset int) ([]models.Category, int64, error)
	Update(category *models.Category) error
	Delete(id uuid.UUID) error
}

// CollectionRepositoryInterface defines the interface for collection repository operations
type CollectionRepositoryInterface interface {
	Create(collection *models.Collection) error
	GetByID(id uuid.UUID) (*models.Collection, error)
	GetByIDForUser(id, userID uuid.UUID) (*models.Collection, error)
	ListByUser(userID uuid.UUID, limit, offset int) ([]models.Collection, int64, error)
	ListPublicByUser(userID uuid.UUID, limit, offset int) ([]models.Collection, int64, error)
	LinkCounts(collectionIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	PublicLinkCounts(collectionIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	TitleExistsForUser(userID uuid.UUID, title string) (bool, error)
	Update(collection *models.Collection) error
	Delete(id uuid.UUID) error
	AddLinks(collectionID uuid.UUID, linkIDs []uuid.UUID) error
	ExistingLinkIDs(collectionID uuid.UUID, linkIDs []uuid.UUID) ([]uuid.UUID, error)
	HasLink(collectionID, linkID uuid.UUID) (bool, error)
	RemoveLink(collectionID, linkID uuid.UUID) error
	ListLinks(collectionID uuid.UUID, publicOnly bool, limit, offset int) ([]models.Link, int64, error)
	LinkIDs(collectionID uuid.UUID) ([]uuid.UUID, error)
	PublicLinks(collectionID uuid.UUID) ([]models.Link, error)
	CloneWithLinkRefs(clone *models.Collection, linkIDs []uuid.UUID) error
	CloneWithNewLinks(clone *models.Collection, links []*models.Link) error
	CountPublicByUser(userID uuid.UUID) (int64, error)
}

// RefreshTokenRepositoryInterface defines the interface for refresh token repository operations
type RefreshTokenRepositoryInterface interface {
	Create(token *models.RefreshToken) error
	GetByToken(token string) (*models.RefreshToken, error)
	DeleteByToken(token string) error
	DeleteByUser(userID uuid.UUID) error
}
