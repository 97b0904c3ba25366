package service

import (
	"errors"
	"fmt"
	"time"

	"linkvault-backend/internal/database/models"
	apperrors "linkvault-backend/internal/errors"
	"linkvault-backend/internal/logger"
	"linkvault-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultCollectionPageSize     = 20
	defaultCollectionLinkPageSize = 10
)

// CollectionService handles business logic for collections, their link
// memberships and both clone variants
type CollectionService struct {
	collections repository.CollectionRepositoryInterface
	links       repository.LinkRepositoryInterface
	users       repository.UserRepositoryInterface
	validator   *validator.Validate

	// cloneDelay is slept after a clone commits, giving callers a
	// predictable minimum latency. Zero in tests.
	cloneDelay time.Duration
}

// Ensure CollectionService implements CollectionServiceInterface
var _ CollectionServiceInterface = (*CollectionService)(nil)

// NewCollectionService creates a new collection service
func NewCollectionService(
	collections repository.CollectionRepositoryInterface,
	links repository.LinkRepositoryInterface,
	users repository.UserRepositoryInterface,
	validator *validator.Validate,
	cloneDelay time.Duration,
) *CollectionService {
	return &CollectionService{
		collections: collections,
		links:       links,
		users:       users,
		validator:   validator,
		cloneDelay:  cloneDelay,
	}
}

// CreateCollectionRequest represents the request to create a collection
type CreateCollectionRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=50"`
	Description *string `json:"description" validate:"omitempty,max=250"`
	Color       string  `json:"color" validate:"required,hexcolor"`
	IsPrivate   *bool   `json:"isPrivate"`
}

// UpdateCollectionRequest represents a partial update of a collection
type UpdateCollectionRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=50"`
	Description *string `json:"description" validate:"omitempty,max=250"`
	Color       *string `json:"color" validate:"omitempty,hexcolor"`
	IsPrivate   *bool   `json:"isPrivate"`
}

// AddLinksRequest represents the request to add links to a collection
type AddLinksRequest struct {
	LinkIDs []uuid.UUID `json:"linkIds" validate:"required,min=1"`
}

// CollectionWithCount is a collection together with its link count
type CollectionWithCount struct {
	models.Collection
	LinkCount int64 `json:"linkCount"`
}

// CollectionPage is one page of collections
type CollectionPage struct {
	Collections []CollectionWithCount `json:"collections"`
	Pagination  Pagination            `json:"pagination"`
}

// CollectionLinkPage is one page of a collection's links
type CollectionLinkPage struct {
	Links      []models.Link `json:"links"`
	Pagination Pagination    `json:"pagination"`
}

// List retrieves one page of the user's collections with link counts
func (s *CollectionService) List(userID uuid.UUID, page, limit int) (*CollectionPage, error) {
	page, limit, offset := normalizePage(page, limit, defaultCollectionPageSize, 0)

	collections, total, err := s.collections.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	items, err := s.withCounts(collections, false)
	if err != nil {
		return nil, err
	}

	return &CollectionPage{
		Collections: items,
		Pagination:  NewPagination(page, limit, total),
	}, nil
}

// Create validates and saves a new collection
func (s *CollectionService) Create(userID uuid.UUID, req *CreateCollectionRequest) (*CollectionWithCount, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError(apperrors.FirstViolation(err))
	}

	collection := &models.Collection{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
	}
	if req.IsPrivate != nil {
		collection.IsPrivate = *req.IsPrivate
	}

	if err := s.collections.Create(collection); err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}
	return &CollectionWithCount{Collection: *collection}, nil
}

// GetByID retrieves a collection the caller may see: their own, or anyone's
// public one. A private collection of another user is reported not found.
func (s *CollectionService) GetByID(callerID, collectionID uuid.UUID) (*CollectionWithCount, error) {
	collection, err := s.getVisible(callerID, collectionID)
	if err != nil {
		return nil, err
	}

	publicOnly := collection.UserID != callerID
	items, err := s.withCounts([]models.Collection{*collection}, publicOnly)
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// Update applies a partial update to one of the user's collections. Returns
// whether anything changed.
func (s *CollectionService) Update(userID, collectionID uuid.UUID, req *UpdateCollectionRequest) (*CollectionWithCount, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, false, apperrors.NewValidationError(apperrors.FirstViolation(err))
	}

	collection, err := s.getOwned(userID, collectionID)
	if err != nil {
		return nil, false, err
	}

	changed := false
	if req.Title != nil && *req.Title != collection.Title {
		collection.Title = *req.Title
		changed = true
	}
	if req.Description != nil && (collection.Description == nil || *req.Description != *collection.Description) {
		collection.Description = req.Description
		changed = true
	}
	if req.Color != nil && *req.Color != collection.Color {
		collection.Color = *req.Color
		changed = true
	}
	if req.IsPrivate != nil && *req.IsPrivate != collection.IsPrivate {
		collection.IsPrivate = *req.IsPrivate
		changed = true
	}

	if changed {
		if err := s.collections.Update(collection); err != nil {
			return nil, false, fmt.Errorf("failed to update collection: %w", err)
		}
	}

	items, err := s.withCounts([]models.Collection{*collection}, false)
	if err != nil {
		return nil, false, err
	}
	return &items[0], changed, nil
}

// Delete removes one of the user's collections and its membership rows.
// The links themselves stay.
func (s *CollectionService) Delete(userID, collectionID uuid.UUID) error {
	collection, err := s.getOwned(userID, collectionID)
	if err != nil {
		return err
	}
	if err := s.collections.Delete(collection.ID); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	return nil
}

// AddLinks adds a batch of the user's links to one of their collections.
// The operation is all-or-nothing: any invalid, private-into-public or
// already-present link rejects the whole batch.
func (s *CollectionService) AddLinks(userID, collectionID uuid.UUID, req *AddLinksRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return apperrors.NewValidationError(apperrors.FirstViolation(err))
	}

	collection, err := s.getOwned(userID, collectionID)
	if err != nil {
		return err
	}

	linkIDs := uniqueIDs(req.LinkIDs)
	owned, err := s.links.GetOwnedByIDs(userID, linkIDs)
	if err != nil {
		return fmt.Errorf("failed to check links: %w", err)
	}
	if len(owned) != len(linkIDs) {
		return apperrors.ErrInvalidLinks
	}

	if !collection.IsPrivate {
		for _, link := range owned {
			if link.IsPrivate {
				return apperrors.ErrPrivateLinkInPublic
			}
		}
	}

	existing, err := s.collections.ExistingLinkIDs(collection.ID, linkIDs)
	if err != nil {
		return fmt.Errorf("failed to check memberships: %w", err)
	}
	if len(existing) == 1 {
		return apperrors.ErrLinkAlreadyInCollection
	}
	if len(existing) > 1 {
		return apperrors.ErrLinksAlreadyInCollection
	}

	if err := s.collections.AddLinks(collection.ID, linkIDs); err != nil {
		return fmt.Errorf("failed to add links: %w", err)
	}
	return nil
}

// ListLinks retrieves one page of a collection's links. The owner of a
// private collection sees everything; every view of a public collection is
// filtered to public links, the owner's included.
func (s *CollectionService) ListLinks(callerID, collectionID uuid.UUID, page, limit int) (*CollectionLinkPage, error) {
	collection, err := s.getVisible(callerID, collectionID)
	if err != nil {
		return nil, err
	}

	page, limit, offset := normalizePage(page, limit, defaultCollectionLinkPageSize, 0)
	publicOnly := !collection.IsPrivate

	links, total, err := s.collections.ListLinks(collection.ID, publicOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list collection links: %w", err)
	}

	return &CollectionLinkPage{
		Links:      links,
		Pagination: NewPagination(page, limit, total),
	}, nil
}

// RemoveLink removes one membership row from the user's collection
func (s *CollectionService) RemoveLink(userID, collectionID, linkID uuid.UUID) error {
	collection, err := s.getOwned(userID, collectionID)
	if err != nil {
		return err
	}

	present, err := s.collections.HasLink(collection.ID, linkID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !present {
		return apperrors.ErrCollectionLinkNotFound
	}

	if err := s.collections.RemoveLink(collection.ID, linkID); err != nil {
		return fmt.Errorf("failed to remove link: %w", err)
	}
	return nil
}

// PublicCollectionInfo is the collection part of the public view. For a
// private collection only the id and the privacy flag are filled in.
type PublicCollectionInfo struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Color       string     `json:"color,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	LinkCount   *int64     `json:"linkCount,omitempty"`
	IsPrivate   bool       `json:"isPrivate"`
}

// CollectionOwner names the owner in the public view
type CollectionOwner struct {
	Name string `json:"name"`
}

// PublicCollectionView is the payload of the open public-collection
// endpoint
type PublicCollectionView struct {
	Collection PublicCollectionInfo `json:"collection"`
	Owner      *CollectionOwner     `json:"owner,omitempty"`
	Links      []models.Link        `json:"links,omitempty"`
	Pagination *Pagination          `json:"pagination,omitempty"`
}

// PublicView resolves a collection for the unauthenticated public page. A
// private collection is acknowledged with a minimal payload rather than
// hidden; a missing one is not found. Only public links are returned.
func (s *CollectionService) PublicView(collectionID uuid.UUID, page, limit int) (*PublicCollectionView, error) {
	collection, err := s.collections.GetByID(collectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCollectionNotFound
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}

	if collection.IsPrivate {
		return &PublicCollectionView{
			Collection: PublicCollectionInfo{ID: collection.ID, IsPrivate: true},
		}, nil
	}

	page, limit, offset := normalizePage(page, limit, defaultCollectionLinkPageSize, 0)
	links, total, err := s.collections.ListLinks(collection.ID, true, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list collection links: %w", err)
	}

	ownerName := "Unknown"
	if owner, err := s.users.GetByID(collection.UserID); err == nil {
		ownerName = owner.Name
	}

	pagination := NewPaginationAtLeastOne(page, limit, total)
	createdAt := collection.CreatedAt
	return &PublicCollectionView{
		Collection: PublicCollectionInfo{
			ID:          collection.ID,
			Title:       collection.Title,
			Description: collection.Description,
			Color:       collection.Color,
			CreatedAt:   &createdAt,
			LinkCount:   &total,
			IsPrivate:   false,
		},
		Owner:      &CollectionOwner{Name: ownerName},
		Links:      links,
		Pagination: &pagination,
	}, nil
}

// Clone copies one of the user's collections under a deduplicated
// " (Copy)" title. Membership rows are copied verbatim, links are shared
// with the source. One transaction.
func (s *CollectionService) Clone(userID, collectionID uuid.UUID) (*CollectionWithCount, error) {
	source, err := s.getOwned(userID, collectionID)
	if err != nil {
		return nil, err
	}
	return s.cloneOwn(userID, source)
}

// ClonePublic copies another user's public collection under the caller.
// Every public source link is duplicated as a new link owned by the caller
// with isPrivate forced false; the clone's membership rows point at the
// duplicates. A caller cloning their own collection gets the same-owner
// semantics.
func (s *CollectionService) ClonePublic(callerID, collectionID uuid.UUID) (*CollectionWithCount, error) {
	source, err := s.collections.GetByID(collectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCollectionNotFound
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}

	if source.UserID == callerID {
		return s.cloneOwn(callerID, source)
	}
	if source.IsPrivate {
		return nil, apperrors.NewValidationError(apperrors.ErrCloneSourcePrivate.Error())
	}

	sourceLinks, err := s.collections.PublicLinks(source.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load source links: %w", err)
	}

	title, err := s.dedupeTitle(callerID, source.Title, "Cloned")
	if err != nil {
		return nil, err
	}

	clone := &models.Collection{
		UserID:      callerID,
		Title:       title,
		Description: copyString(source.Description),
		Color:       source.Color,
		IsPrivate:   false,
	}
	newLinks := make([]*models.Link, 0, len(sourceLinks))
	for _, src := range sourceLinks {
		newLinks = append(newLinks, &models.Link{
			UserID:    callerID,
			URL:       src.URL,
			Title:     src.Title,
			Notes:     copyString(src.Notes),
			Status:    src.Status,
			IsPrivate: false,
		})
	}

	if err := s.collections.CloneWithNewLinks(clone, newLinks); err != nil {
		return nil, fmt.Errorf("failed to clone collection: %w", err)
	}
	logger.New().WithUser(callerID).Infof("cloned public collection %s into %s with %d links", source.ID, clone.ID, len(newLinks))
	s.sleepAfterClone()

	return &CollectionWithCount{Collection: *clone, LinkCount: int64(len(newLinks))}, nil
}

func (s *CollectionService) cloneOwn(userID uuid.UUID, source *models.Collection) (*CollectionWithCount, error) {
	title, err := s.dedupeTitle(userID, source.Title, "Copy")
	if err != nil {
		return nil, err
	}

	linkIDs, err := s.collections.LinkIDs(source.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load source memberships: %w", err)
	}

	clone := &models.Collection{
		UserID:      userID,
		Title:       title,
		Description: copyString(source.Description),
		Color:       source.Color,
		IsPrivate:   source.IsPrivate,
	}
	if err := s.collections.CloneWithLinkRefs(clone, linkIDs); err != nil {
		return nil, fmt.Errorf("failed to clone collection: %w", err)
	}
	logger.New().WithUser(userID).Infof("cloned collection %s into %s", source.ID, clone.ID)
	s.sleepAfterClone()

	return &CollectionWithCount{Collection: *clone, LinkCount: int64(len(linkIDs))}, nil
}

// dedupeTitle appends " (<suffix>)" to the base title, bumping a counter
// until the caller has no collection with that title
func (s *CollectionService) dedupeTitle(userID uuid.UUID, base, suffix string) (string, error) {
	candidate := fmt.Sprintf("%s (%s)", base, suffix)
	for n := 2; ; n++ {
		taken, err := s.collections.TitleExistsForUser(userID, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check title: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s (%s %d)", base, suffix, n)
	}
}

func (s *CollectionService) sleepAfterClone() {
	if s.cloneDelay > 0 {
		time.Sleep(s.cloneDelay)
	}
}

func (s *CollectionService) getOwned(userID, collectionID uuid.UUID) (*models.Collection, error) {
	collection, err := s.collections.GetByIDForUser(collectionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCollectionNotFound
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return collection, nil
}

// getVisible resolves a collection the caller is allowed to see. Another
// user's private collection is indistinguishable from a missing one.
func (s *CollectionService) getVisible(callerID, collectionID uuid.UUID) (*models.Collection, error) {
	collection, err := s.collections.GetByID(collectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCollectionNotFound
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	if collection.UserID != callerID && collection.IsPrivate {
		return nil, apperrors.ErrCollectionNotFound
	}
	return collection, nil
}

func (s *CollectionService) withCounts(collections []models.Collection, publicOnly bool) ([]CollectionWithCount, error) {
	ids := make([]uuid.UUID, 0, len(collections))
	for _, c := range collections {
		ids = append(ids, c.ID)
	}

	var counts map[uuid.UUID]int64
	var err error
	if publicOnly {
		counts, err = s.collections.PublicLinkCounts(ids)
	} else {
		counts, err = s.collections.LinkCounts(ids)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to count links: %w", err)
	}

	items := make([]CollectionWithCount, 0, len(collections))
	for _, c := range collections {
		items = append(items, CollectionWithCount{Collection: c, LinkCount: counts[c.ID]})
	}
	return items, nil
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
