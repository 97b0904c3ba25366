package repository_test

import (
	"testing"
	"time"

	"linkvault-backend/internal/database/models"
	"linkvault-backend/internal/repository"
	"linkvault-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type CollectionRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo *repository.CollectionRepository

	links       *testutils.LinkFactory
	collections *testutils.CollectionFactory

	owner *models.User
}

func (suite *CollectionRepositoryTestSuite) SetupTest() {
	suite.db = testutils.NewTestDB(suite.T())
	suite.repo = repository.NewCollectionRepository(suite.db)

	suite.links = testutils.NewLinkFactory()
	suite.collections = testutils.NewCollectionFactory()

	suite.owner = testutils.NewUserFactory().Create()
	require.NoError(suite.T(), suite.db.Create(suite.owner).Error)
}

func (suite *CollectionRepositoryTestSuite) createCollection() *models.Collection {
	collection := suite.collections.Create(suite.owner.ID)
	require.NoError(suite.T(), suite.db.Create(collection).Error)
	return collection
}

func (suite *CollectionRepositoryTestSuite) createLink() *models.Link {
	link := suite.links.Create(suite.owner.ID)
	require.NoError(suite.T(), suite.db.Create(link).Error)
	return link
}

func (suite *CollectionRepositoryTestSuite) membershipCount(collectionID uuid.UUID) int64 {
	var total int64
	suite.db.Model(&models.CollectionLink{}).Where("collection_id = ?", collectionID).Count(&total)
	return total
}

func (suite *CollectionRepositoryTestSuite) TestAddLinks_DuplicatePairIgnored() {
	collection := suite.createCollection()
	link := suite.createLink()

	require.NoError(suite.T(), suite.repo.AddLinks(collection.ID, []uuid.UUID{link.ID}))
	require.NoError(suite.T(), suite.repo.AddLinks(collection.ID, []uuid.UUID{link.ID}))

	assert.Equal(suite.T(), int64(1), suite.membershipCount(collection.ID))
}

func (suite *CollectionRepositoryTestSuite) TestAddLinks_MixedBatch_OnlyNewRowsLand() {
	collection := suite.createCollection()
	existing := suite.createLink()
	fresh := suite.createLink()
	require.NoError(suite.T(), suite.repo.AddLinks(collection.ID, []uuid.UUID{existing.ID}))

	require.NoError(suite.T(), suite.repo.AddLinks(collection.ID, []uuid.UUID{existing.ID, fresh.ID}))

	assert.Equal(suite.T(), int64(2), suite.membershipCount(collection.ID))
}

func (suite *CollectionRepositoryTestSuite) TestCloneWithLinkRefs_MissingLink_RollsBack() {
	source := suite.createCollection()
	link := suite.createLink()
	require.NoError(suite.T(), suite.repo.AddLinks(source.ID, []uuid.UUID{link.ID}))

	clone := suite.collections.WithTitle(suite.owner.ID, "Clone target")
	err := suite.repo.CloneWithLinkRefs(clone, []uuid.UUID{link.ID, uuid.New()})

	require.Error(suite.T(), err)
	var total int64
	suite.db.Model(&models.Collection{}).Where("title = ?", "Clone target").Count(&total)
	assert.Equal(suite.T(), int64(0), total, "failed clone must leave no collection row")
	assert.Equal(suite.T(), int64(0), suite.membershipCount(clone.ID))
}

func (suite *CollectionRepositoryTestSuite) TestCloneWithLinkRefs_CopiesMemberships() {
	source := suite.createCollection()
	first := suite.createLink()
	second := suite.createLink()
	require.NoError(suite.T(), suite.repo.AddLinks(source.ID, []uuid.UUID{first.ID, second.ID}))

	clone := suite.collections.WithTitle(suite.owner.ID, "Clone target")
	require.NoError(suite.T(), suite.repo.CloneWithLinkRefs(clone, []uuid.UUID{first.ID, second.ID}))

	ids, err := suite.repo.LinkIDs(clone.ID)
	require.NoError(suite.T(), err)
	assert.ElementsMatch(suite.T(), []uuid.UUID{first.ID, second.ID}, ids)
}

func (suite *CollectionRepositoryTestSuite) TestCloneWithNewLinks_FailureMidway_RollsBack() {
	clone := suite.collections.WithTitle(suite.owner.ID, "Clone target")
	good := suite.links.Create(suite.owner.ID)
	// Same primary key as the first link forces the second insert to fail
	conflicting := suite.links.Create(suite.owner.ID)
	conflicting.ID = good.ID

	err := suite.repo.CloneWithNewLinks(clone, []*models.Link{good, conflicting})

	require.Error(suite.T(), err)
	var linkTotal int64
	suite.db.Model(&models.Link{}).Where("id = ?", good.ID).Count(&linkTotal)
	assert.Equal(suite.T(), int64(0), linkTotal, "partial link inserts must roll back")
	var collectionTotal int64
	suite.db.Model(&models.Collection{}).Where("id = ?", clone.ID).Count(&collectionTotal)
	assert.Equal(suite.T(), int64(0), collectionTotal)
}

func (suite *CollectionRepositoryTestSuite) TestListLinks_MembershipOrderNewestFirst() {
	collection := suite.createCollection()
	older := suite.createLink()
	newer := suite.createLink()

	base := time.Now().Add(-time.Hour)
	require.NoError(suite.T(), suite.db.Create(&models.CollectionLink{
		CollectionID: collection.ID, LinkID: older.ID, CreatedAt: base,
	}).Error)
	require.NoError(suite.T(), suite.db.Create(&models.CollectionLink{
		CollectionID: collection.ID, LinkID: newer.ID, CreatedAt: base.Add(time.Minute),
	}).Error)

	links, total, err := suite.repo.ListLinks(collection.ID, false, 10, 0)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), total)
	require.Len(suite.T(), links, 2)
	assert.Equal(suite.T(), newer.ID, links[0].ID)
	assert.Equal(suite.T(), older.ID, links[1].ID)
}

func (suite *CollectionRepositoryTestSuite) TestListLinks_PublicOnlyAffectsTotal() {
	collection := suite.createCollection()
	public := suite.createLink()
	private := suite.links.Private(suite.owner.ID)
	require.NoError(suite.T(), suite.db.Create(private).Error)
	require.NoError(suite.T(), suite.repo.AddLinks(collection.ID, []uuid.UUID{public.ID, private.ID}))

	links, total, err := suite.repo.ListLinks(collection.ID, true, 10, 0)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), total)
	require.Len(suite.T(), links, 1)
	assert.Equal(suite.T(), public.ID, links[0].ID)
}

func (suite *CollectionRepositoryTestSuite) TestExistingLinkIDs_ReturnsOnlyMembers() {
	collection := suite.createCollection()
	member := suite.createLink()
	outsider := suite.createLink()
	require.NoError(suite.T(), suite.repo.AddLinks(collection.ID, []uuid.UUID{member.ID}))

	ids, err := suite.repo.ExistingLinkIDs(collection.ID, []uuid.UUID{member.ID, outsider.ID})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []uuid.UUID{member.ID}, ids)
}

func (suite *CollectionRepositoryTestSuite) TestPublicLinkCounts_IgnoresPrivateMembers() {
	collection := suite.createCollection()
	public := suite.createLink()
	private := suite.links.Private(suite.owner.ID)
	require.NoError(suite.T(), suite.db.Create(private).Error)
	require.NoError(suite.T(), suite.repo.AddLinks(collection.ID, []uuid.UUID{public.ID, private.ID}))

	counts, err := suite.repo.PublicLinkCounts([]uuid.UUID{collection.ID})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), counts[collection.ID])
}

func TestCollectionRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(CollectionRepositoryTestSuite))
}
