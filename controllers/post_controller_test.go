package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"social-network/config"
	"social-network/middlewares"
	"social-network/models"
	"social-network/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupModerationTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	t.Setenv("PREFIX_TOKEN_USER", "user")
	t.Setenv("PREFIX_TOKEN_ADMIN", "admin")
	t.Setenv("ACCESS_SIGNATURE_USER", "user-secret")
	t.Setenv("ACCESS_SIGNATURE_ADMIN", "admin-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}))

	old := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = old })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := middlewares.TokenAuthMiddleware()
	r.POST("/posts/:postId/archive", auth, ArchivePost)
	r.POST("/posts/:postId/unarchive", auth, UnArchivePost)
	r.POST("/comments/:commentId/freeze", auth, FreezeComment)
	r.POST("/comments/:commentId/unfreeze", auth, UnFreezeComment)
	return db, r
}

func authHeader(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := services.GenerateAccessToken(user)
	require.NoError(t, err)
	return "user " + token
}

func postRequest(t *testing.T, r *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.Header.Set("Authorization", authorization)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestArchiveThenUnarchivePost(t *testing.T) {
	db, r := setupModerationTest(t)
	owner := createChatUser(t, db, "owner@test.com")

	post := models.Post{Content: "hello", UserID: owner.ID}
	require.NoError(t, db.Create(&post).Error)

	w := postRequest(t, r, fmt.Sprintf("/posts/%d/archive", post.ID), authHeader(t, owner))
	require.Equal(t, http.StatusCreated, w.Code)

	var archived models.Post
	require.NoError(t, db.First(&archived, post.ID).Error)
	assert.True(t, archived.IsArchived)
	assert.NotNil(t, archived.ArchivedAt)

	w = postRequest(t, r, fmt.Sprintf("/posts/%d/unarchive", post.ID), authHeader(t, owner))
	require.Equal(t, http.StatusCreated, w.Code)

	var unarchived models.Post
	require.NoError(t, db.First(&unarchived, post.ID).Error)
	assert.False(t, unarchived.IsArchived)
	assert.Nil(t, unarchived.ArchivedAt)
}

func TestUnarchivePostRejectsNonOwner(t *testing.T) {
	db, r := setupModerationTest(t)
	owner := createChatUser(t, db, "owner@test.com")
	other := createChatUser(t, db, "other@test.com")

	post := models.Post{Content: "hello", UserID: owner.ID}
	require.NoError(t, db.Create(&post).Error)

	w := postRequest(t, r, fmt.Sprintf("/posts/%d/archive", post.ID), authHeader(t, owner))
	require.Equal(t, http.StatusCreated, w.Code)

	w = postRequest(t, r, fmt.Sprintf("/posts/%d/unarchive", post.ID), authHeader(t, other))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUnarchivePostRequiresArchivedPost(t *testing.T) {
	db, r := setupModerationTest(t)
	owner := createChatUser(t, db, "owner@test.com")

	post := models.Post{Content: "hello", UserID: owner.ID}
	require.NoError(t, db.Create(&post).Error)

	w := postRequest(t, r, fmt.Sprintf("/posts/%d/unarchive", post.ID), authHeader(t, owner))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
