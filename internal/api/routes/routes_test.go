package routes_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"linkvault-backend/internal/api/routes"
	"linkvault-backend/internal/config"
	"linkvault-backend/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RoutesTestSuite struct {
	suite.Suite
	http *testutils.HTTPTestSuite
}

func (suite *RoutesTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	db := testutils.NewTestDB(suite.T())
	cfg := &config.Config{
		Environment:      "test",
		JWTSecret:        "test-access-secret",
		JWTRefreshSecret: "test-refresh-secret",
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  7 * 24 * time.Hour,
		ScraperTimeout:   time.Second,
	}
	suite.http = &testutils.HTTPTestSuite{Router: routes.SetupRoutes(db, cfg)}
}

// registerUser registers a user over HTTP and returns the bearer token
func (suite *RoutesTestSuite) registerUser(email string) string {
	recorder := suite.http.MakeRequest(http.MethodPost, "/api/auth/register", gin.H{
		"name":     "Test User",
		"email":    email,
		"password": "secret123",
	})
	env := testutils.DecodeEnvelope(suite.T(), recorder, http.StatusCreated)
	require.True(suite.T(), env.IsSuccess)

	var data struct {
		AccessToken string `json:"accessToken"`
	}
	testutils.DecodeData(suite.T(), env, &data)
	require.NotEmpty(suite.T(), data.AccessToken)
	return data.AccessToken
}

func (suite *RoutesTestSuite) authHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func (suite *RoutesTestSuite) TestHealth_Open() {
	recorder := suite.http.MakeRequest(http.MethodGet, "/api/health", nil)
	env := testutils.DecodeEnvelope(suite.T(), recorder, http.StatusOK)
	assert.True(suite.T(), env.IsSuccess)
}

func (suite *RoutesTestSuite) TestUnknownRoute_JSONEnvelope() {
	recorder := suite.http.MakeRequest(http.MethodGet, "/api/no-such-resource", nil)

	env := testutils.DecodeEnvelope(suite.T(), recorder, http.StatusNotFound)
	assert.False(suite.T(), env.IsSuccess)
	assert.Equal(suite.T(), "Route not found", env.Message)
}

func (suite *RoutesTestSuite) TestSecurityHeaders_SetOnEveryResponse() {
	recorder := suite.http.MakeRequest(http.MethodGet, "/api/health", nil)

	assert.Equal(suite.T(), "nosniff", recorder.Header().Get("X-Content-Type-Options"))
	assert.Equal(suite.T(), "SAMEORIGIN", recorder.Header().Get("X-Frame-Options"))
	assert.Equal(suite.T(), "no-referrer", recorder.Header().Get("Referrer-Policy"))
}

func (suite *RoutesTestSuite) TestRateLimit_RejectsAboveWindowMax() {
	db := testutils.NewTestDB(suite.T())
	cfg := &config.Config{
		Environment:      "test",
		JWTSecret:        "test-access-secret",
		JWTRefreshSecret: "test-refresh-secret",
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  7 * 24 * time.Hour,
		ScraperTimeout:   time.Second,
		RateLimitMax:     3,
		RateLimitWindow:  time.Minute,
	}
	limited := &testutils.HTTPTestSuite{Router: routes.SetupRoutes(db, cfg)}

	for i := 0; i < 3; i++ {
		recorder := limited.MakeRequest(http.MethodGet, "/api/health", nil)
		require.Equal(suite.T(), http.StatusOK, recorder.Code)
	}

	recorder := limited.MakeRequest(http.MethodGet, "/api/health", nil)
	env := testutils.DecodeEnvelope(suite.T(), recorder, http.StatusTooManyRequests)
	assert.False(suite.T(), env.IsSuccess)
	assert.Equal(suite.T(), "Too many requests from this IP, try again in 15 minutes", env.Message)
}

func (suite *RoutesTestSuite) TestLinks_RequireAuthentication() {
	recorder := suite.http.MakeRequest(http.MethodGet, "/api/links", nil)

	env := testutils.DecodeEnvelope(suite.T(), recorder, http.StatusUnauthorized)
	assert.False(suite.T(), env.IsSuccess)
	assert.Equal(suite.T(), "Token not provided", env.Message)
}

func (suite *RoutesTestSuite) TestLinks_CreateAndList() {
	token := suite.registerUser("alice@test.com")

	recorder := suite.http.MakeRequestWithHeaders(http.MethodPost, "/api/links", gin.H{
		"url":   "example.com/article",
		"title": "An Article",
	}, suite.authHeader(token))
	env := testutils.DecodeEnvelope(suite.T(), recorder, http.StatusCreated)
	assert.Equal(suite.T(), "Link created successfully", env.Message)

	recorder = suite.http.MakeRequestWithHeaders(http.MethodGet, "/api/links", nil, suite.authHeader(token))
	env = testutils.DecodeEnvelope(suite.T(), recorder, http.StatusOK)

	var data struct {
		Links []struct {
			URL string `json:"url"`
		} `json:"links"`
		Pagination struct {
			Total int64 `json:"total"`
			Limit int   `json:"limit"`
		} `json:"pagination"`
	}
	testutils.DecodeData(suite.T(), env, &data)
	require.Len(suite.T(), data.Links, 1)
	assert.Equal(suite.T(), "https://example.com/article", data.Links[0].URL)
	assert.Equal(suite.T(), int64(1), data.Pagination.Total)
	assert.Equal(suite.T(), 5, data.Pagination.Limit)
}

func (suite *RoutesTestSuite) TestLinks_OwnershipIsolation() {
	aliceToken := suite.registerUser("alice@test.com")
	bobToken := suite.registerUser("bob@test.com")

	recorder := suite.http.MakeRequestWithHeaders(http.MethodPost, "/api/links", gin.H{
		"url":   "https://example.com",
		"title": "Alice's link",
	}, suite.authHeader(aliceToken))
	env := testutils.DecodeEnvelope(suite.T(), recorder, http.StatusCreated)

	var created struct {
		ID string `json:"id"`
	}
	testutils.DecodeData(suite.T(), env, &created)

	recorder = suite.http.MakeRequestWithHeaders(http.MethodGet, "/api/links/"+created.ID, nil, suite.authHeader(bobToken))
	env = testutils.DecodeEnvelope(suite.T(), recorder, http.StatusNotFound)
	assert.Equal(suite.T(), "Link not found", env.Message)
}

func (suite *RoutesTestSuite) TestPublicCollections_PrivateAcknowledged() {
	token := suite.registerUser("alice@test.com")

	recorder := suite.http.MakeRequestWithHeaders(http.MethodPost, "/api/collections", gin.H{
		"title":     "Secrets",
		"color":     "#112233",
		"isPrivate": true,
	}, suite.authHeader(token))
	env := testutils.DecodeEnvelope(suite.T(), recorder, http.StatusCreated)

	var created struct {
		ID string `json:"id"`
	}
	testutils.DecodeData(suite.T(), env, &created)

	// No auth on the public view
	recorder = suite.http.MakeRequest(http.MethodGet, "/api/public/collections/"+created.ID, nil)
	env = testutils.DecodeEnvelope(suite.T(), recorder, http.StatusOK)
	assert.Equal(suite.T(), "Collection is private", env.Message)

	var view struct {
		Collection struct {
			ID        string `json:"id"`
			IsPrivate bool   `json:"isPrivate"`
			Title     string `json:"title"`
		} `json:"collection"`
	}
	testutils.DecodeData(suite.T(), env, &view)
	assert.Equal(suite.T(), created.ID, view.Collection.ID)
	assert.True(suite.T(), view.Collection.IsPrivate)
	assert.Empty(suite.T(), view.Collection.Title, "private view must not leak the title")
}

func (suite *RoutesTestSuite) TestPublicCollections_CloneFlow() {
	aliceToken := suite.registerUser("alice@test.com")
	bobToken := suite.registerUser("bob@test.com")

	recorder := suite.http.MakeRequestWithHeaders(http.MethodPost, "/api/collections", gin.H{
		"title": "Reading",
		"color": "#112233",
	}, suite.authHeader(aliceToken))
	env := testutils.DecodeEnvelope(suite.T(), recorder, http.StatusCreated)
	var collection struct {
		ID string `json:"id"`
	}
	testutils.DecodeData(suite.T(), env, &collection)

	var linkIDs []string
	for i := 0; i < 2; i++ {
		recorder = suite.http.MakeRequestWithHeaders(http.MethodPost, "/api/links", gin.H{
			"url":   fmt.Sprintf("https://example.com/%d", i),
			"title": fmt.Sprintf("Link %d", i),
		}, suite.authHeader(aliceToken))
		env = testutils.DecodeEnvelope(suite.T(), recorder, http.StatusCreated)
		var link struct {
			ID string `json:"id"`
		}
		testutils.DecodeData(suite.T(), env, &link)
		linkIDs = append(linkIDs, link.ID)
	}

	recorder = suite.http.MakeRequestWithHeaders(http.MethodPost, "/api/collections/"+collection.ID+"/links", gin.H{
		"linkIds": linkIDs,
	}, suite.authHeader(aliceToken))
	env = testutils.DecodeEnvelope(suite.T(), recorder, http.StatusCreated)
	assert.Equal(suite.T(), "Links added to collection", env.Message)

	// Unauthenticated clone is rejected
	recorder = suite.http.MakeRequest(http.MethodPost, "/api/public/collections/"+collection.ID+"/clone", nil)
	testutils.DecodeEnvelope(suite.T(), recorder, http.StatusUnauthorized)

	// Bob clones Alice's public collection
	recorder = suite.http.MakeRequestWithHeaders(http.MethodPost, "/api/public/collections/"+collection.ID+"/clone", nil, suite.authHeader(bobToken))
	env = testutils.DecodeEnvelope(suite.T(), recorder, http.StatusCreated)
	assert.Equal(suite.T(), "Collection cloned successfully", env.Message)

	var clone struct {
		Title     string          `json:"title"`
		LinkCount json.RawMessage `json:"linkCount"`
	}
	testutils.DecodeData(suite.T(), env, &clone)
	assert.Equal(suite.T(), "Reading (Cloned)", clone.Title)

	// The clone shows up in Bob's collections with duplicated links
	recorder = suite.http.MakeRequestWithHeaders(http.MethodGet, "/api/collections", nil, suite.authHeader(bobToken))
	env = testutils.DecodeEnvelope(suite.T(), recorder, http.StatusOK)
	var list struct {
		Collections []struct {
			Title     string `json:"title"`
			LinkCount int64  `json:"linkCount"`
		} `json:"collections"`
	}
	testutils.DecodeData(suite.T(), env, &list)
	require.Len(suite.T(), list.Collections, 1)
	assert.Equal(suite.T(), "Reading (Cloned)", list.Collections[0].Title)
	assert.Equal(suite.T(), int64(2), list.Collections[0].LinkCount)
}

func (suite *RoutesTestSuite) TestExplore_Open() {
	suite.registerUser("alice@test.com")

	recorder := suite.http.MakeRequest(http.MethodGet, "/api/explore/users?q=ali", nil)
	env := testutils.DecodeEnvelope(suite.T(), recorder, http.StatusOK)
	assert.Equal(suite.T(), "Users retrieved successfully", env.Message)

	var data struct {
		Users []struct {
			Name string `json:"name"`
		} `json:"users"`
	}
	testutils.DecodeData(suite.T(), env, &data)
	require.Len(suite.T(), data.Users, 1)
	assert.Equal(suite.T(), "Test User", data.Users[0].Name)
}

func (suite *RoutesTestSuite) TestAuth_RefreshWithoutCookie_Unauthorized() {
	recorder := suite.http.MakeRequest(http.MethodPost, "/api/auth/refresh", nil)

	env := testutils.DecodeEnvelope(suite.T(), recorder, http.StatusUnauthorized)
	assert.Equal(suite.T(), "Refresh token not provided", env.Message)
}

func (suite *RoutesTestSuite) TestAuth_RegisterSetsRefreshCookie() {
	recorder := suite.http.MakeRequest(http.MethodPost, "/api/auth/register", gin.H{
		"name":     "Test User",
		"email":    "alice@test.com",
		"password": "secret123",
	})
	require.Equal(suite.T(), http.StatusCreated, recorder.Code)

	var refreshCookie *http.Cookie
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == "refreshToken" {
			refreshCookie = cookie
		}
	}
	require.NotNil(suite.T(), refreshCookie, "register must set the refresh cookie")
	assert.True(suite.T(), refreshCookie.HttpOnly)
	assert.NotEmpty(suite.T(), refreshCookie.Value)
}

func TestRoutesTestSuite(t *testing.T) {
	suite.Run(t, new(RoutesTestSuite))
}
