package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danuartha/go-commerce-api/internal/domain/entity"
	repo "github.com/danuartha/go-commerce-api/internal/domain/repository"
	"github.com/danuartha/go-commerce-api/pkg/helpers"
)

type userRepoStub struct {
	users map[string]*entity.User
}

func (s *userRepoStub) Create(_ context.Context, _ *entity.User) error { return nil }

func (s *userRepoStub) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return u, nil
}

func (s *userRepoStub) GetByEmail(_ context.Context, _ string) (*entity.User, error) {
	return nil, repo.ErrNotFound
}

func newAuthRouter(t *testing.T) (*gin.Engine, *helpers.JWTManager, *userRepoStub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	users := &userRepoStub{users: map[string]*entity.User{
		"u1": {ID: "u1", Name: "Dina", Email: "dina@example.com", Role: entity.RoleUser},
		"a1": {ID: "a1", Name: "Root", Email: "root@example.com", Role: entity.RoleAdmin},
	}}

	r := gin.New()
	auth := r.Group("/", Auth(users, jwt))
	auth.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetString("userID"), "role": c.GetString("userRole")})
	})
	auth.GET("/admin", RequireRoles(entity.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, jwt, users
}

func doGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRejectsMissingToken(t *testing.T) {
	r, _, _ := newAuthRouter(t)
	w := doGet(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	r, _, _ := newAuthRouter(t)
	w := doGet(r, "/me", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsUnknownUser(t *testing.T) {
	r, jwt, _ := newAuthRouter(t)
	token, _, err := jwt.Generate("ghost")
	require.NoError(t, err)

	w := doGet(r, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	r, _, _ := newAuthRouter(t)
	expired := helpers.NewJWTManager("test-secret", -time.Minute)
	token, _, err := expired.Generate("u1")
	require.NoError(t, err)

	w := doGet(r, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthSetsIdentity(t *testing.T) {
	r, jwt, _ := newAuthRouter(t)
	token, _, err := jwt.Generate("u1")
	require.NoError(t, err)

	w := doGet(r, "/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"u1"`)
	assert.Contains(t, w.Body.String(), `"role":"user"`)
}

func TestRequireRolesGate(t *testing.T) {
	r, jwt, _ := newAuthRouter(t)

	userToken, _, err := jwt.Generate("u1")
	require.NoError(t, err)
	adminToken, _, err := jwt.Generate("a1")
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doGet(r, "/admin", userToken).Code)
	assert.Equal(t, http.StatusOK, doGet(r, "/admin", adminToken).Code)
}
