package service_test

import (
	"testing"

	"linkvault-backend/internal/database/models"
	apperrors "linkvault-backend/internal/errors"
	"linkvault-backend/internal/repository"
	"linkvault-backend/internal/service"
	"linkvault-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type ExploreServiceTestSuite struct {
	suite.Suite
	db             *gorm.DB
	exploreService *service.ExploreService

	links       *testutils.LinkFactory
	collections *testutils.CollectionFactory

	alice *models.User
	bob   *models.User
}

func (suite *ExploreServiceTestSuite) SetupTest() {
	suite.db = testutils.NewTestDB(suite.T())
	suite.exploreService = service.NewExploreService(
		repository.NewUserRepository(suite.db),
		repository.NewLinkRepository(suite.db),
		repository.NewCollectionRepository(suite.db),
	)

	suite.links = testutils.NewLinkFactory()
	suite.collections = testutils.NewCollectionFactory()

	users := testutils.NewUserFactory()
	suite.alice = users.WithName("Alice")
	suite.bob = users.WithName("Bob")
	require.NoError(suite.T(), suite.db.Create(suite.alice).Error)
	require.NoError(suite.T(), suite.db.Create(suite.bob).Error)
}

func (suite *ExploreServiceTestSuite) TestSearchUsers_CountsPublicContentOnly() {
	require.NoError(suite.T(), suite.db.Create(suite.links.Create(suite.alice.ID)).Error)
	require.NoError(suite.T(), suite.db.Create(suite.links.Private(suite.alice.ID)).Error)
	require.NoError(suite.T(), suite.db.Create(suite.collections.Create(suite.alice.ID)).Error)
	require.NoError(suite.T(), suite.db.Create(suite.collections.Private(suite.alice.ID)).Error)

	page, err := suite.exploreService.SearchUsers("ali", 1, 20)

	require.NoError(suite.T(), err)
	require.Len(suite.T(), page.Users, 1)
	assert.Equal(suite.T(), "Alice", page.Users[0].Name)
	assert.Equal(suite.T(), int64(1), page.Users[0].PublicLinksCount)
	assert.Equal(suite.T(), int64(1), page.Users[0].PublicCollectionsCount)
}

func (suite *ExploreServiceTestSuite) TestSearchUsers_EmptyQuery_AllUsersAlphabetical() {
	page, err := suite.exploreService.SearchUsers("", 1, 20)

	require.NoError(suite.T(), err)
	require.Len(suite.T(), page.Users, 2)
	assert.Equal(suite.T(), "Alice", page.Users[0].Name)
	assert.Equal(suite.T(), "Bob", page.Users[1].Name)
}

func (suite *ExploreServiceTestSuite) TestSearchUsers_NoMatches_TotalPagesFloorsAtOne() {
	page, err := suite.exploreService.SearchUsers("nobody", 1, 20)

	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), page.Users)
	assert.Equal(suite.T(), int64(0), page.Pagination.Total)
	assert.Equal(suite.T(), 1, page.Pagination.TotalPages)
}

func (suite *ExploreServiceTestSuite) TestSearchUsers_LimitCappedAtFifty() {
	page, err := suite.exploreService.SearchUsers("", 1, 500)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 50, page.Pagination.Limit)
}

func (suite *ExploreServiceTestSuite) TestGetUser_Missing_NotFound() {
	_, err := suite.exploreService.GetUser(uuid.New())

	assert.ErrorIs(suite.T(), err, apperrors.ErrUserNotFound)
}

func (suite *ExploreServiceTestSuite) TestListUserLinks_PrivateLinksHidden() {
	require.NoError(suite.T(), suite.db.Create(suite.links.WithTitle(suite.alice.ID, "Public one")).Error)
	require.NoError(suite.T(), suite.db.Create(suite.links.Private(suite.alice.ID)).Error)

	page, err := suite.exploreService.ListUserLinks(suite.alice.ID, 1, 20)

	require.NoError(suite.T(), err)
	require.Len(suite.T(), page.Links, 1)
	assert.Equal(suite.T(), "Public one", page.Links[0].Title)
	assert.Equal(suite.T(), int64(1), page.Pagination.Total)
}

func (suite *ExploreServiceTestSuite) TestListUserCollections_PublicLinkCounts() {
	collection := suite.collections.Create(suite.alice.ID)
	require.NoError(suite.T(), suite.db.Create(collection).Error)

	publicLink := suite.links.Create(suite.alice.ID)
	privateLink := suite.links.Private(suite.alice.ID)
	require.NoError(suite.T(), suite.db.Create(publicLink).Error)
	require.NoError(suite.T(), suite.db.Create(privateLink).Error)
	for _, linkID := range []uuid.UUID{publicLink.ID, privateLink.ID} {
		require.NoError(suite.T(), suite.db.Create(&models.CollectionLink{
			CollectionID: collection.ID, LinkID: linkID,
		}).Error)
	}

	page, err := suite.exploreService.ListUserCollections(suite.alice.ID, 1, 20)

	require.NoError(suite.T(), err)
	require.Len(suite.T(), page.Collections, 1)
	assert.Equal(suite.T(), int64(1), page.Collections[0].LinkCount, "count only public links")
}

func (suite *ExploreServiceTestSuite) TestListUserCollectionLinks_PrivateCollection_NotFound() {
	private := suite.collections.Private(suite.alice.ID)
	require.NoError(suite.T(), suite.db.Create(private).Error)

	_, err := suite.exploreService.ListUserCollectionLinks(suite.alice.ID, private.ID, 1, 20)

	assert.ErrorIs(suite.T(), err, apperrors.ErrCollectionNotFound)
}

func (suite *ExploreServiceTestSuite) TestListUserCollectionLinks_WrongOwner_NotFound() {
	collection := suite.collections.Create(suite.alice.ID)
	require.NoError(suite.T(), suite.db.Create(collection).Error)

	_, err := suite.exploreService.ListUserCollectionLinks(suite.bob.ID, collection.ID, 1, 20)

	assert.ErrorIs(suite.T(), err, apperrors.ErrCollectionNotFound)
}

func TestExploreServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExploreServiceTestSuite))
}
