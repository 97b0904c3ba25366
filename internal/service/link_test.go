package service_test

import (
	"testing"

	"linkvault-backend/internal/database/models"
	apperrors "linkvault-backend/internal/errors"
	"linkvault-backend/internal/repository"
	"linkvault-backend/internal/service"
	"linkvault-backend/internal/testutils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type LinkServiceTestSuite struct {
	suite.Suite
	db          *gorm.DB
	linkService *service.LinkService

	links       *testutils.LinkFactory
	categories  *testutils.CategoryFactory
	collections *testutils.CollectionFactory

	owner    *models.User
	stranger *models.User
}

func (suite *LinkServiceTestSuite) SetupTest() {
	suite.db = testutils.NewTestDB(suite.T())
	linkRepo := repository.NewLinkRepository(suite.db)
	categoryRepo := repository.NewCategoryRepository(suite.db)
	suite.linkService = service.NewLinkService(linkRepo, categoryRepo, validator.New())

	suite.links = testutils.NewLinkFactory()
	suite.categories = testutils.NewCategoryFactory()
	suite.collections = testutils.NewCollectionFactory()

	users := testutils.NewUserFactory()
	suite.owner = users.Create()
	suite.stranger = users.Create()
	require.NoError(suite.T(), suite.db.Create(suite.owner).Error)
	require.NoError(suite.T(), suite.db.Create(suite.stranger).Error)
}

func (suite *LinkServiceTestSuite) TestCreate_SchemelessURL_GetsHTTPSPrefix() {
	link, err := suite.linkService.Create(suite.owner.ID, &service.CreateLinkRequest{
		URL:   "example.com/post",
		Title: "Example",
	})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "https://example.com/post", link.URL)
	assert.Equal(suite.T(), models.LinkStatusUnread, link.Status)
}

func (suite *LinkServiceTestSuite) TestCreate_ExplicitScheme_Unchanged() {
	link, err := suite.linkService.Create(suite.owner.ID, &service.CreateLinkRequest{
		URL:   "http://example.com",
		Title: "Example",
	})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "http://example.com", link.URL)
}

func (suite *LinkServiceTestSuite) TestCreate_ForeignCategory_Rejected() {
	theirs := suite.categories.Create(suite.stranger.ID)
	require.NoError(suite.T(), suite.db.Create(theirs).Error)

	_, err := suite.linkService.Create(suite.owner.ID, &service.CreateLinkRequest{
		URL:         "https://example.com",
		Title:       "Example",
		CategoryIDs: []uuid.UUID{theirs.ID},
	})

	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidCategories)
}

func (suite *LinkServiceTestSuite) TestCreate_WithOwnedCategories_Attached() {
	category := suite.categories.Create(suite.owner.ID)
	require.NoError(suite.T(), suite.db.Create(category).Error)

	link, err := suite.linkService.Create(suite.owner.ID, &service.CreateLinkRequest{
		URL:         "https://example.com",
		Title:       "Example",
		CategoryIDs: []uuid.UUID{category.ID},
	})

	require.NoError(suite.T(), err)
	require.Len(suite.T(), link.Categories, 1)
	assert.Equal(suite.T(), category.ID, link.Categories[0].ID)
}

func (suite *LinkServiceTestSuite) TestGetByID_ForeignLink_NotFound() {
	theirs := suite.links.Create(suite.stranger.ID)
	require.NoError(suite.T(), suite.db.Create(theirs).Error)

	_, err := suite.linkService.GetByID(suite.owner.ID, theirs.ID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrLinkNotFound)
}

func (suite *LinkServiceTestSuite) TestUpdate_NoFields_ReportsNoChange() {
	link := suite.links.Create(suite.owner.ID)
	require.NoError(suite.T(), suite.db.Create(link).Error)

	_, changed, err := suite.linkService.Update(suite.owner.ID, link.ID, &service.UpdateLinkRequest{})

	require.NoError(suite.T(), err)
	assert.False(suite.T(), changed)
}

func (suite *LinkServiceTestSuite) TestUpdate_FlipToPrivate_DetachesFromPublicCollections() {
	link := suite.links.Create(suite.owner.ID)
	require.NoError(suite.T(), suite.db.Create(link).Error)

	publicColl := suite.collections.Create(suite.owner.ID)
	privateColl := suite.collections.Private(suite.owner.ID)
	require.NoError(suite.T(), suite.db.Create(publicColl).Error)
	require.NoError(suite.T(), suite.db.Create(privateColl).Error)
	for _, collID := range []uuid.UUID{publicColl.ID, privateColl.ID} {
		require.NoError(suite.T(), suite.db.Create(&models.CollectionLink{
			CollectionID: collID, LinkID: link.ID,
		}).Error)
	}

	private := true
	updated, changed, err := suite.linkService.Update(suite.owner.ID, link.ID, &service.UpdateLinkRequest{
		IsPrivate: &private,
	})

	require.NoError(suite.T(), err)
	assert.True(suite.T(), changed)
	assert.True(suite.T(), updated.IsPrivate)

	var count int64
	suite.db.Model(&models.CollectionLink{}).Where("collection_id = ?", publicColl.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count, "private link must leave public collections")

	suite.db.Model(&models.CollectionLink{}).Where("collection_id = ?", privateColl.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count, "private collection membership survives")
}

func (suite *LinkServiceTestSuite) TestUpdate_FlipToPublic_NoSideEffect() {
	link := suite.links.Private(suite.owner.ID)
	require.NoError(suite.T(), suite.db.Create(link).Error)

	privateColl := suite.collections.Private(suite.owner.ID)
	require.NoError(suite.T(), suite.db.Create(privateColl).Error)
	require.NoError(suite.T(), suite.db.Create(&models.CollectionLink{
		CollectionID: privateColl.ID, LinkID: link.ID,
	}).Error)

	public := false
	_, changed, err := suite.linkService.Update(suite.owner.ID, link.ID, &service.UpdateLinkRequest{
		IsPrivate: &public,
	})

	require.NoError(suite.T(), err)
	assert.True(suite.T(), changed)

	var count int64
	suite.db.Model(&models.CollectionLink{}).Where("link_id = ?", link.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count, "making a link public moves nothing")
}

func (suite *LinkServiceTestSuite) TestToggleRead_CyclesStatuses() {
	link := suite.links.Create(suite.owner.ID)
	require.NoError(suite.T(), suite.db.Create(link).Error)

	read, err := suite.linkService.ToggleRead(suite.owner.ID, link.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.LinkStatusRead, read.Status)

	unread, err := suite.linkService.ToggleRead(suite.owner.ID, link.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.LinkStatusUnread, unread.Status)
}

func (suite *LinkServiceTestSuite) TestToggleArchive_RoundTrips() {
	link := suite.links.Create(suite.owner.ID)
	require.NoError(suite.T(), suite.db.Create(link).Error)

	archived, err := suite.linkService.ToggleArchive(suite.owner.ID, link.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.LinkStatusArchived, archived.Status)

	restored, err := suite.linkService.ToggleArchive(suite.owner.ID, link.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.LinkStatusUnread, restored.Status)
}

func (suite *LinkServiceTestSuite) TestList_InvalidStatus_Rejected() {
	_, err := suite.linkService.List(suite.owner.ID, service.ListLinksQuery{Status: "starred"})

	require.Error(suite.T(), err)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

func (suite *LinkServiceTestSuite) TestList_PaginationTotalsStableBeyondLastPage() {
	for i := 0; i < 7; i++ {
		require.NoError(suite.T(), suite.db.Create(suite.links.Create(suite.owner.ID)).Error)
	}

	first, err := suite.linkService.List(suite.owner.ID, service.ListLinksQuery{Page: 1, Limit: 5})
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), first.Links, 5)
	assert.Equal(suite.T(), int64(7), first.Pagination.Total)
	assert.Equal(suite.T(), 2, first.Pagination.TotalPages)

	beyond, err := suite.linkService.List(suite.owner.ID, service.ListLinksQuery{Page: 5, Limit: 5})
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), beyond.Links)
	assert.Equal(suite.T(), int64(7), beyond.Pagination.Total, "total must not change past the last page")
	assert.Equal(suite.T(), 2, beyond.Pagination.TotalPages)
}

func (suite *LinkServiceTestSuite) TestList_SearchMatchesTitleURLAndNotes() {
	notes := "all about golang concurrency"
	withNotes := suite.links.Create(suite.owner.ID)
	withNotes.Notes = &notes
	inTitle := suite.links.WithTitle(suite.owner.ID, "Golang patterns")
	unrelated := suite.links.WithTitle(suite.owner.ID, "Cooking")
	for _, l := range []*models.Link{withNotes, inTitle, unrelated} {
		require.NoError(suite.T(), suite.db.Create(l).Error)
	}

	page, err := suite.linkService.List(suite.owner.ID, service.ListLinksQuery{Search: "GOLANG"})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), page.Pagination.Total)
}

func (suite *LinkServiceTestSuite) TestList_ExcludeCollectionFiltersMembers() {
	collection := suite.collections.Create(suite.owner.ID)
	require.NoError(suite.T(), suite.db.Create(collection).Error)

	member := suite.links.Create(suite.owner.ID)
	free := suite.links.Create(suite.owner.ID)
	require.NoError(suite.T(), suite.db.Create(member).Error)
	require.NoError(suite.T(), suite.db.Create(free).Error)
	require.NoError(suite.T(), suite.db.Create(&models.CollectionLink{
		CollectionID: collection.ID, LinkID: member.ID,
	}).Error)

	page, err := suite.linkService.List(suite.owner.ID, service.ListLinksQuery{
		ExcludeCollectionID: &collection.ID,
	})

	require.NoError(suite.T(), err)
	require.Len(suite.T(), page.Links, 1)
	assert.Equal(suite.T(), free.ID, page.Links[0].ID)
}

func (suite *LinkServiceTestSuite) TestDelete_RemovesMemberships() {
	link := suite.links.Create(suite.owner.ID)
	require.NoError(suite.T(), suite.db.Create(link).Error)

	category := suite.categories.Create(suite.owner.ID)
	collection := suite.collections.Create(suite.owner.ID)
	require.NoError(suite.T(), suite.db.Create(category).Error)
	require.NoError(suite.T(), suite.db.Create(collection).Error)
	require.NoError(suite.T(), suite.db.Create(&models.LinkCategory{LinkID: link.ID, CategoryID: category.ID}).Error)
	require.NoError(suite.T(), suite.db.Create(&models.CollectionLink{CollectionID: collection.ID, LinkID: link.ID}).Error)

	require.NoError(suite.T(), suite.linkService.Delete(suite.owner.ID, link.ID))

	var count int64
	suite.db.Model(&models.LinkCategory{}).Where("link_id = ?", link.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
	suite.db.Model(&models.CollectionLink{}).Where("link_id = ?", link.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func TestLinkServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LinkServiceTestSuite))
}
