package service

import (
	"errors"
	"fmt"
	"strings"

	"linkvault-backend/internal/database/models"
	apperrors "linkvault-backend/internal/errors"
	"linkvault-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultLinkPageSize = 5
)

// LinkService handles business logic for links
type LinkService struct {
	links      repository.LinkRepositoryInterface
	categories repository.CategoryRepositoryInterface
	validator  *validator.Validate
}

// Ensure LinkService implements LinkServiceInterface
var _ LinkServiceInterface = (*LinkService)(nil)

// NewLinkService creates a new link service
func NewLinkService(links repository.LinkRepositoryInterface, categories repository.CategoryRepositoryInterface, validator *validator.Validate) *LinkService {
	return &LinkService{links: links, categories: categories, validator: validator}
}

// CreateLinkRequest represents the request to save a link
type CreateLinkRequest struct {
	URL         string      `json:"url" validate:"required,max=2000"`
	Title       string      `json:"title" validate:"required,max=255"`
	Notes       *string     `json:"notes" validate:"omitempty,max=250"`
	IsPrivate   *bool       `json:"isPrivate"`
	CategoryIDs []uuid.UUID `json:"categoryIds"`
}

// UpdateLinkRequest represents a partial update of a link. Nil fields are
// left untouched.
type UpdateLinkRequest struct {
	URL         *string            `json:"url" validate:"omitempty,min=1,max=2000"`
	Title       *string            `json:"title" validate:"omitempty,min=1,max=255"`
	Notes       *string            `json:"notes" validate:"omitempty,max=250"`
	Status      *models.LinkStatus `json:"status"`
	IsFavorite  *bool              `json:"isFavorite"`
	IsPrivate   *bool              `json:"isPrivate"`
	CategoryIDs *[]uuid.UUID       `json:"categoryIds"`
}

// ListLinksQuery carries the query parameters of a link listing
type ListLinksQuery struct {
	Page                int
	Limit               int
	Status              string
	Favorite            *bool
	Private             *bool
	Search              string
	ExcludeCollectionID *uuid.UUID
}

// LinkWithCategories is a link together with its categories
type LinkWithCategories struct {
	models.Link
	Categories []models.Category `json:"categories"`
}

// LinkPage is one page of links
type LinkPage struct {
	Links      []LinkWithCategories `json:"links"`
	Pagination Pagination           `json:"pagination"`
}

// List retrieves one page of the user's links with their categories
func (s *LinkService) List(userID uuid.UUID, query ListLinksQuery) (*LinkPage, error) {
	filter := repository.LinkFilter{
		UserID:              userID,
		Favorite:            query.Favorite,
		Private:             query.Private,
		Search:              strings.TrimSpace(query.Search),
		ExcludeCollectionID: query.ExcludeCollectionID,
	}

	if query.Status != "" {
		status := models.LinkStatus(query.Status)
		if !status.IsValid() {
			return nil, apperrors.NewValidationError("Invalid status. Use: unread, read or archived")
		}
		filter.Status = &status
	}

	page, limit, offset := normalizePage(query.Page, query.Limit, defaultLinkPageSize, 0)
	filter.Limit = limit
	filter.Offset = offset

	links, total, err := s.links.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}

	items, err := s.attachCategories(links)
	if err != nil {
		return nil, err
	}

	return &LinkPage{
		Links:      items,
		Pagination: NewPagination(page, limit, total),
	}, nil
}

// Create validates and saves a new link. A URL without a scheme gets
// https:// prepended before it is stored.
func (s *LinkService) Create(userID uuid.UUID, req *CreateLinkRequest) (*LinkWithCategories, error) {
	req.URL = NormalizeURL(req.URL)
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError(apperrors.FirstViolation(err))
	}

	if err := s.checkCategoryOwnership(userID, req.CategoryIDs); err != nil {
		return nil, err
	}

	link := &models.Link{
		UserID: userID,
		URL:    req.URL,
		Title:  req.Title,
		Notes:  req.Notes,
		Status: models.LinkStatusUnread,
	}
	if req.IsPrivate != nil {
		link.IsPrivate = *req.IsPrivate
	}

	if err := s.links.Create(link, req.CategoryIDs); err != nil {
		return nil, fmt.Errorf("failed to create link: %w", err)
	}

	return s.withCategories(link)
}

// GetByID retrieves one of the user's links
func (s *LinkService) GetByID(userID, linkID uuid.UUID) (*LinkWithCategories, error) {
	link, err := s.getOwned(userID, linkID)
	if err != nil {
		return nil, err
	}
	return s.withCategories(link)
}

// Update applies a partial update to one of the user's links. Flipping a
// link to private detaches it from the owner's public collections; the
// reverse flip has no side effect. Returns whether anything changed.
func (s *LinkService) Update(userID, linkID uuid.UUID, req *UpdateLinkRequest) (*LinkWithCategories, bool, error) {
	if req.URL != nil {
		normalized := NormalizeURL(*req.URL)
		req.URL = &normalized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, false, apperrors.NewValidationError(apperrors.FirstViolation(err))
	}
	if req.Status != nil && !req.Status.IsValid() {
		return nil, false, apperrors.NewValidationError("Invalid status. Use: unread, read or archived")
	}

	link, err := s.getOwned(userID, linkID)
	if err != nil {
		return nil, false, err
	}

	changed := false
	if req.URL != nil && *req.URL != link.URL {
		link.URL = *req.URL
		changed = true
	}
	if req.Title != nil && *req.Title != link.Title {
		link.Title = *req.Title
		changed = true
	}
	if req.Notes != nil && (link.Notes == nil || *req.Notes != *link.Notes) {
		link.Notes = req.Notes
		changed = true
	}
	if req.Status != nil && *req.Status != link.Status {
		link.Status = *req.Status
		changed = true
	}
	if req.IsFavorite != nil && *req.IsFavorite != link.IsFavorite {
		link.IsFavorite = *req.IsFavorite
		changed = true
	}

	becamePrivate := false
	if req.IsPrivate != nil && *req.IsPrivate != link.IsPrivate {
		becamePrivate = *req.IsPrivate
		link.IsPrivate = *req.IsPrivate
		changed = true
	}

	if req.CategoryIDs != nil {
		if err := s.checkCategoryOwnership(userID, *req.CategoryIDs); err != nil {
			return nil, false, err
		}
		if err := s.links.ReplaceCategories(link.ID, *req.CategoryIDs); err != nil {
			return nil, false, fmt.Errorf("failed to replace categories: %w", err)
		}
		changed = true
	}

	if !changed {
		result, err := s.withCategories(link)
		return result, false, err
	}

	if err := s.links.Update(link); err != nil {
		return nil, false, fmt.Errorf("failed to update link: %w", err)
	}

	if becamePrivate {
		if err := s.links.RemoveFromPublicCollections(link.ID, userID); err != nil {
			return nil, false, fmt.Errorf("failed to detach link from public collections: %w", err)
		}
	}

	result, err := s.withCategories(link)
	return result, true, err
}

// ToggleRead flips a link between unread and read. An archived link becomes
// read.
func (s *LinkService) ToggleRead(userID, linkID uuid.UUID) (*LinkWithCategories, error) {
	return s.setStatus(userID, linkID, func(current models.LinkStatus) models.LinkStatus {
		if current == models.LinkStatusRead {
			return models.LinkStatusUnread
		}
		return models.LinkStatusRead
	})
}

// ToggleArchive flips a link between archived and unread
func (s *LinkService) ToggleArchive(userID, linkID uuid.UUID) (*LinkWithCategories, error) {
	return s.setStatus(userID, linkID, func(current models.LinkStatus) models.LinkStatus {
		if current == models.LinkStatusArchived {
			return models.LinkStatusUnread
		}
		return models.LinkStatusArchived
	})
}

// ToggleFavorite flips a link's favorite flag
func (s *LinkService) ToggleFavorite(userID, linkID uuid.UUID) (*LinkWithCategories, error) {
	link, err := s.getOwned(userID, linkID)
	if err != nil {
		return nil, err
	}
	link.IsFavorite = !link.IsFavorite
	if err := s.links.Update(link); err != nil {
		return nil, fmt.Errorf("failed to update link: %w", err)
	}
	return s.withCategories(link)
}

// Delete removes one of the user's links along with its memberships
func (s *LinkService) Delete(userID, linkID uuid.UUID) error {
	link, err := s.getOwned(userID, linkID)
	if err != nil {
		return err
	}
	if err := s.links.Delete(link.ID); err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}
	return nil
}

func (s *LinkService) setStatus(userID, linkID uuid.UUID, next func(models.LinkStatus) models.LinkStatus) (*LinkWithCategories, error) {
	link, err := s.getOwned(userID, linkID)
	if err != nil {
		return nil, err
	}
	link.Status = next(link.Status)
	if err := s.links.Update(link); err != nil {
		return nil, fmt.Errorf("failed to update link: %w", err)
	}
	return s.withCategories(link)
}

func (s *LinkService) getOwned(userID, linkID uuid.UUID) (*models.Link, error) {
	link, err := s.links.GetByIDForUser(linkID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to get link: %w", err)
	}
	return link, nil
}

// checkCategoryOwnership rejects the whole set when any id is missing or
// owned by someone else
func (s *LinkService) checkCategoryOwnership(userID uuid.UUID, categoryIDs []uuid.UUID) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	unique := uniqueIDs(categoryIDs)
	owned, err := s.categories.GetOwnedByIDs(userID, unique)
	if err != nil {
		return fmt.Errorf("failed to check categories: %w", err)
	}
	if len(owned) != len(unique) {
		return apperrors.ErrInvalidCategories
	}
	return nil
}

func (s *LinkService) withCategories(link *models.Link) (*LinkWithCategories, error) {
	items, err := s.attachCategories([]models.Link{*link})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (s *LinkService) attachCategories(links []models.Link) ([]LinkWithCategories, error) {
	ids := make([]uuid.UUID, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.ID)
	}
	byLink, err := s.links.CategoriesForLinks(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load link categories: %w", err)
	}

	items := make([]LinkWithCategories, 0, len(links))
	for _, link := range links {
		categories := byLink[link.ID]
		if categories == nil {
			categories = []models.Category{}
		}
		items = append(items, LinkWithCategories{Link: link, Categories: categories})
	}
	return items, nil
}

// NormalizeURL prepends https:// when the URL carries no scheme
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "https://" + raw
	}
	return raw
}

// uniqueIDs drops duplicate ids while preserving order
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
