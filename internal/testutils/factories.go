package testutils

import (
	"fmt"
	"time"

	"linkvault-backend/internal/database/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with default values and a unique email
func (f *UserFactory) Create() *models.User {
	id := uuid.New()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	return &models.User{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:     "Test User",
		Email:    fmt.Sprintf("user-%s@test.com", id.String()[:8]),
		Password: string(hash),
	}
}

// WithName sets a custom name for the user
func (f *UserFactory) WithName(name string) *models.User {
	user := f.Create()
	user.Name = name
	return user
}

// LinkFactory provides methods to create test Link data
type LinkFactory struct{}

// NewLinkFactory creates a new LinkFactory
func NewLinkFactory() *LinkFactory {
	return &LinkFactory{}
}

// Create creates a test Link owned by the given user
func (f *LinkFactory) Create(userID uuid.UUID) *models.Link {
	id := uuid.New()
	return &models.Link{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		UserID: userID,
		URL:    fmt.Sprintf("https://example.com/articles/%s", id.String()[:8]),
		Title:  "Test Link",
		Status: models.LinkStatusUnread,
	}
}

// Private creates a private test Link owned by the given user
func (f *LinkFactory) Private(userID uuid.UUID) *models.Link {
	link := f.Create(userID)
	link.IsPrivate = true
	return link
}

// WithTitle creates a test Link with a custom title
func (f *LinkFactory) WithTitle(userID uuid.UUID, title string) *models.Link {
	link := f.Create(userID)
	link.Title = title
	return link
}

// CategoryFactory provides methods to create test Category data
type CategoryFactory struct{}

// NewCategoryFactory creates a new CategoryFactory
func NewCategoryFactory() *CategoryFactory {
	return &CategoryFactory{}
}

// Create creates a test Category owned by the given user with a unique name
func (f *CategoryFactory) Create(userID uuid.UUID) *models.Category {
	id := uuid.New()
	return &models.Category{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		UserID: userID,
		Name:   "Category " + id.String()[:8],
		Color:  "#FF5733",
	}
}

// WithName creates a test Category with a custom name
func (f *CategoryFactory) WithName(userID uuid.UUID, name string) *models.Category {
	category := f.Create(userID)
	category.Name = name
	return category
}

// CollectionFactory provides methods to create test Collection data
type CollectionFactory struct{}

// NewCollectionFactory creates a new CollectionFactory
func NewCollectionFactory() *CollectionFactory {
	return &CollectionFactory{}
}

// Create creates a public test Collection owned by the given user
func (f *CollectionFactory) Create(userID uuid.UUID) *models.Collection {
	id := uuid.New()
	return &models.Collection{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		UserID: userID,
		Title:  "Collection " + id.String()[:8],
		Color:  "#33C1FF",
	}
}

// Private creates a private test Collection owned by the given user
func (f *CollectionFactory) Private(userID uuid.UUID) *models.Collection {
	collection := f.Create(userID)
	collection.IsPrivate = true
	return collection
}

// WithTitle creates a test Collection with a custom title
func (f *CollectionFactory) WithTitle(userID uuid.UUID, title string) *models.Collection {
	collection := f.Create(userID)
	collection.Title = title
	return collection
}
