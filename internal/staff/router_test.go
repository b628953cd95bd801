package staff

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, account *Account) (*gin.Engine, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := new(mockRepository)
	if account != nil {
		repo.On("GetAccountByID", mock.Anything, account.ID.String()).Return(account, nil)
	}
	controller := NewController(NewService(repo, testConfig()))

	// stand-in for the JWT middleware the route composer injects
	authCalls := 0
	authRequired := func(c *gin.Context) {
		authCalls++
		if account == nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set("user_id", account.ID.String())
		c.Next()
	}

	engine := gin.New()
	NewRouter(controller).SetupRoutes(engine.Group("/api/v1"), authRequired)
	return engine, &authCalls
}

func TestRouter_ProtectedRoutesUseInjectedAuth(t *testing.T) {
	account := testAccount("pw")
	engine, authCalls := newTestEngine(t, account)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, *authCalls)
	assert.Contains(t, w.Body.String(), account.Email)
}

func TestRouter_ProtectedRoutesBlockedWithoutAuth(t *testing.T) {
	engine, authCalls := newTestEngine(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 1, *authCalls)
}

func TestRouter_PublicRoutesBypassAuth(t *testing.T) {
	engine, authCalls := newTestEngine(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	// a malformed body reaches the controller (400), not the auth stub (401)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, *authCalls)
	require.NotContains(t, w.Body.String(), "Unauthorized")
}
