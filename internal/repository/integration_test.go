//go:build integration

package repository_test

import (
	"os"
	"testing"

	"linkvault-backend/internal/database/models"
	"linkvault-backend/internal/repository"
	"linkvault-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestMain(m *testing.M) {
	code := m.Run()
	testutils.CleanupSharedContainer()
	os.Exit(code)
}

type PostgresIntegrationTestSuite struct {
	suite.Suite
	integration *testutils.IntegrationSuite

	links       *testutils.LinkFactory
	collections *testutils.CollectionFactory

	owner *models.User
}

func (suite *PostgresIntegrationTestSuite) SetupTest() {
	suite.integration = testutils.SetupIntegrationSuite(suite.T())

	suite.links = testutils.NewLinkFactory()
	suite.collections = testutils.NewCollectionFactory()

	suite.owner = testutils.NewUserFactory().Create()
	require.NoError(suite.T(), suite.integration.DB.Create(suite.owner).Error)
}

func (suite *PostgresIntegrationTestSuite) TestAddLinks_OnConflictDoNothing() {
	db := suite.integration.DB
	repo := repository.NewCollectionRepository(db)

	collection := suite.collections.Create(suite.owner.ID)
	require.NoError(suite.T(), db.Create(collection).Error)
	link := suite.links.Create(suite.owner.ID)
	require.NoError(suite.T(), db.Create(link).Error)

	require.NoError(suite.T(), repo.AddLinks(collection.ID, []uuid.UUID{link.ID}))
	require.NoError(suite.T(), repo.AddLinks(collection.ID, []uuid.UUID{link.ID}))

	var total int64
	db.Model(&models.CollectionLink{}).Where("collection_id = ?", collection.ID).Count(&total)
	assert.Equal(suite.T(), int64(1), total)
}

func (suite *PostgresIntegrationTestSuite) TestCloneWithLinkRefs_ForeignKeyEnforced() {
	db := suite.integration.DB
	repo := repository.NewCollectionRepository(db)

	clone := suite.collections.WithTitle(suite.owner.ID, "Clone target")
	err := repo.CloneWithLinkRefs(clone, []uuid.UUID{uuid.New()})

	require.Error(suite.T(), err)
	var total int64
	db.Model(&models.Collection{}).Where("id = ?", clone.ID).Count(&total)
	assert.Equal(suite.T(), int64(0), total)
}

func (suite *PostgresIntegrationTestSuite) TestSearch_CaseInsensitiveOnPostgres() {
	db := suite.integration.DB
	repo := repository.NewLinkRepository(db)

	require.NoError(suite.T(), db.Create(suite.links.WithTitle(suite.owner.ID, "Golang Patterns")).Error)
	require.NoError(suite.T(), db.Create(suite.links.WithTitle(suite.owner.ID, "Unrelated")).Error)

	links, total, err := repo.List(repository.LinkFilter{
		UserID: suite.owner.ID,
		Search: "GOLANG",
		Limit:  10,
	})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), total)
	require.Len(suite.T(), links, 1)
	assert.Equal(suite.T(), "Golang Patterns", links[0].Title)
}

func (suite *PostgresIntegrationTestSuite) TestCleanTestDB_IsolatesSuites() {
	db := suite.integration.DB
	require.NoError(suite.T(), db.Create(suite.links.Create(suite.owner.ID)).Error)

	suite.integration.CleanTestDB()

	var total int64
	db.Model(&models.Link{}).Count(&total)
	assert.Equal(suite.T(), int64(0), total)
}

func TestPostgresIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(PostgresIntegrationTestSuite))
}
