package service

import (
	"github.com/google/uuid"

	"linkvault-backend/internal/database/models"
)

// LinkServiceInterface defines the interface for link operations
type LinkServiceInterface interface {
	List(userID uuid.UUID, query ListLinksQuery) (*LinkPage, error)
	Create(userID uuid.UUID, req *CreateLinkRequest) (*LinkWithCategories, error)
	GetByID(userID, linkID uuid.UUID) (*LinkWithCategories, error)
	Update(userID, linkID uuid.UUID, req *UpdateLinkRequest) (*LinkWithCategories, bool, error)
	ToggleRead(userID, linkID uuid.UUID) (*LinkWithCategories, error)
	ToggleArchive(userID, linkID uuid.UUID) (*LinkWithCategories, error)
	ToggleFavorite(userID, linkID uuid.UUID) (*LinkWithCategories, error)
	Delete(userID, linkID uuid.UUID) error
}

// CategoryServiceInterface defines the interface for category operations
type CategoryServiceInterface interface {
	List(userID uuid.UUID, page, limit int) (*CategoryPage, error)
	Create(userID uuid.UUID, req *CreateCategoryRequest) (*models.Category, error)
	GetByID(userID, categoryID uuid.UUID) (*models.Category, error)
	Update(userID, categoryID uuid.UUID, req *UpdateCategoryRequest) (*models.Category, error)
	Delete(userID, categoryID uuid.UUID) error
}

// CollectionServiceInterface defines the interface for collection operations
type CollectionServiceInterface interface {
	List(userID uuid.UUID, page, limit int) (*CollectionPage, error)
	Create(userID uuid.UUID, req *CreateCollectionRequest) (*CollectionWithCount, error)
	GetByID(callerID, collectionID uuid.UUID) (*CollectionWithCount, error)
	Update(userID, collectionID uuid.UUID, req *UpdateCollectionRequest) (*CollectionWithCount, bool, error)
	Delete(userID, collectionID uuid.UUID) error
	AddLinks(userID, collectionID uuid.UUID, req *AddLinksRequest) error
	ListLinks(callerID, collectionID uuid.UUID, page, limit int) (*CollectionLinkPage, error)
	RemoveLink(userID, collectionID, linkID uuid.UUID) error
	Clone(userID, collectionID uuid.UUID) (*CollectionWithCount, error)
	ClonePublic(callerID, collectionID uuid.UUID) (*CollectionWithCount, error)
	PublicView(collectionID uuid.UUID, page, limit int) (*PublicCollectionView, error)
}

// ExploreServiceInterface defines the interface for public explore operations
type ExploreServiceInterface interface {
	SearchUsers(query string, page, limit int) (*ExploreUserPage, error)
	GetUser(userID uuid.UUID) (*PublicProfile, error)
	ListUserCollections(userID uuid.UUID, page, limit int) (*PublicCollectionPage, error)
	ListUserLinks(userID uuid.UUID, page, limit int) (*PublicLinkPage, error)
	ListUserCollectionLinks(userID, collectionID uuid.UUID, page, limit int) (*PublicLinkPage, error)
}
