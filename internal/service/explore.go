package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"linkvault-backend/internal/database/models"
	apperrors "linkvault-backend/internal/errors"
	"linkvault-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultExplorePageSize = 20
	maxExplorePageSize     = 50
)

// ExploreService exposes the public side of other users' profiles:
// searchable users, their public collections and their public links
type ExploreService struct {
	users       repository.UserRepositoryInterface
	links       repository.LinkRepositoryInterface
	collections repository.CollectionRepositoryInterface
}

// Ensure ExploreService implements ExploreServiceInterface
var _ ExploreServiceInterface = (*ExploreService)(nil)

// NewExploreService creates a new explore service
func NewExploreService(users repository.UserRepositoryInterface, links repository.LinkRepositoryInterface, collections repository.CollectionRepositoryInterface) *ExploreService {
	return &ExploreService{users: users, links: links, collections: collections}
}

// ExploreUser is a user as shown on the explore page
type ExploreUser struct {
	ID                     uuid.UUID `json:"id"`
	Name                   string    `json:"name"`
	PublicCollectionsCount int64     `json:"publicCollectionsCount"`
	PublicLinksCount       int64     `json:"publicLinksCount"`
}

// ExploreUserPage is one page of explore users
type ExploreUserPage struct {
	Users      []ExploreUser `json:"users"`
	Pagination Pagination    `json:"pagination"`
}

// PublicProfile identifies a user on their public profile page
type PublicProfile struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// PublicLink is the public shape of a link on explore pages
type PublicLink struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

// PublicLinkPage is one page of public links
type PublicLinkPage struct {
	Links      []PublicLink `json:"links"`
	Pagination Pagination   `json:"pagination"`
}

// PublicCollectionPage is one page of a user's public collections. Link
// counts include public links only.
type PublicCollectionPage struct {
	Collections []CollectionWithCount `json:"collections"`
	Pagination  Pagination            `json:"pagination"`
}

// SearchUsers retrieves one page of users matching the query, alphabetical
// by name, with their public collection and link counts
func (s *ExploreService) SearchUsers(query string, page, limit int) (*ExploreUserPage, error) {
	page, limit, offset := normalizePage(page, limit, defaultExplorePageSize, maxExplorePageSize)

	users, total, err := s.users.Search(strings.TrimSpace(query), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	items := make([]ExploreUser, 0, len(users))
	for _, user := range users {
		collectionsCount, err := s.collections.CountPublicByUser(user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count collections: %w", err)
		}
		linksCount, err := s.links.CountPublicByUser(user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count links: %w", err)
		}
		items = append(items, ExploreUser{
			ID:                     user.ID,
			Name:                   user.Name,
			PublicCollectionsCount: collectionsCount,
			PublicLinksCount:       linksCount,
		})
	}

	return &ExploreUserPage{
		Users:      items,
		Pagination: NewPaginationAtLeastOne(page, limit, total),
	}, nil
}

// GetUser retrieves a user's public profile
func (s *ExploreService) GetUser(userID uuid.UUID) (*PublicProfile, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &PublicProfile{ID: user.ID, Name: user.Name}, nil
}

// ListUserCollections retrieves one page of a user's public collections
// with their public link counts
func (s *ExploreService) ListUserCollections(userID uuid.UUID, page, limit int) (*PublicCollectionPage, error) {
	if _, err := s.GetUser(userID); err != nil {
		return nil, err
	}

	page, limit, offset := normalizePage(page, limit, defaultExplorePageSize, maxExplorePageSize)
	collections, total, err := s.collections.ListPublicByUser(userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(collections))
	for _, c := range collections {
		ids = append(ids, c.ID)
	}
	counts, err := s.collections.PublicLinkCounts(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count links: %w", err)
	}

	items := make([]CollectionWithCount, 0, len(collections))
	for _, c := range collections {
		items = append(items, CollectionWithCount{Collection: c, LinkCount: counts[c.ID]})
	}

	return &PublicCollectionPage{
		Collections: items,
		Pagination:  NewPaginationAtLeastOne(page, limit, total),
	}, nil
}

// ListUserLinks retrieves one page of a user's public links
func (s *ExploreService) ListUserLinks(userID uuid.UUID, page, limit int) (*PublicLinkPage, error) {
	if _, err := s.GetUser(userID); err != nil {
		return nil, err
	}

	page, limit, offset := normalizePage(page, limit, defaultExplorePageSize, maxExplorePageSize)
	public := false
	links, total, err := s.links.List(repository.LinkFilter{
		UserID:  userID,
		Private: &public,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}

	return &PublicLinkPage{
		Links:      toPublicLinks(links),
		Pagination: NewPaginationAtLeastOne(page, limit, total),
	}, nil
}

// ListUserCollectionLinks retrieves one page of the public links inside a
// user's public collection. A private or foreign collection is not found.
func (s *ExploreService) ListUserCollectionLinks(userID, collectionID uuid.UUID, page, limit int) (*PublicLinkPage, error) {
	collection, err := s.collections.GetByID(collectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCollectionNotFound
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	if collection.UserID != userID || collection.IsPrivate {
		return nil, apperrors.ErrCollectionNotFound
	}

	page, limit, offset := normalizePage(page, limit, defaultExplorePageSize, maxExplorePageSize)
	links, total, err := s.collections.ListLinks(collection.ID, true, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list collection links: %w", err)
	}

	return &PublicLinkPage{
		Links:      toPublicLinks(links),
		Pagination: NewPaginationAtLeastOne(page, limit, total),
	}, nil
}

func toPublicLinks(links []models.Link) []PublicLink {
	items := make([]PublicLink, 0, len(links))
	for _, link := range links {
		items = append(items, PublicLink{
			ID:        link.ID,
			URL:       link.URL,
			Title:     link.Title,
			Notes:     link.Notes,
			CreatedAt: link.CreatedAt,
		})
	}
	return items
}
