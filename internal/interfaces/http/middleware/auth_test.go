package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remory/internal/infrastructure/auth"
	"remory/internal/shared/errors"
	"remory/internal/shared/logger"
	"remory/internal/shared/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "middleware-test-secret"

func newGuardedRouter(t *testing.T) (*gin.Engine, *auth.TokenCodec) {
	t.Helper()
	codec := auth.NewTokenCodec(testSecret, 30, 14)
	log := logger.NewLoggerWithSlog(slog.New(slog.DiscardHandler))

	router := gin.New()
	router.Use(AuthMiddleware(codec, log))
	router.GET("/api/users/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"subject_id": c.GetString(ContextSubjectID)})
	})
	router.GET("/api/auth/login", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, codec
}

func mintPairHeaders(t *testing.T, req *http.Request, accessCodec, refreshCodec *auth.TokenCodec) {
	t.Helper()
	access, err := accessCodec.Mint("id_alice", "USER", "Alice", auth.TokenClassAccess)
	require.NoError(t, err)
	refresh, err := refreshCodec.Mint("id_alice", "USER", "Alice", auth.TokenClassRefresh)
	require.NoError(t, err)
	req.Header.Set(utils.AuthorizationHeader, "Bearer "+access)
	req.Header.Set(utils.RefreshTokenHeader, "Bearer "+refresh)
}

func TestAuthMiddleware_BothValidForwards(t *testing.T) {
	router, codec := newGuardedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	mintPairHeaders(t, req, codec, codec)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "id_alice")
}

func TestAuthMiddleware_BothMissing(t *testing.T) {
	router, _ := newGuardedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Header().Get(utils.TokenExpiredHeader))
}

func TestAuthMiddleware_LoneAccessTokenRejected(t *testing.T) {
	router, codec := newGuardedRouter(t)

	access, err := codec.Mint("id_alice", "USER", "Alice", auth.TokenClassAccess)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set(utils.AuthorizationHeader, "Bearer "+access)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_AccessExpiredRefreshValidGetsHint(t *testing.T) {
	router, codec := newGuardedRouter(t)
	expiredCodec := auth.NewTokenCodec(testSecret, -1, 14)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	mintPairHeaders(t, req, expiredCodec, codec)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, errors.TokenClassAccess, rec.Header().Get(utils.TokenExpiredHeader))
}

func TestAuthMiddleware_AccessValidRefreshExpired(t *testing.T) {
	router, codec := newGuardedRouter(t)
	expiredCodec := auth.NewTokenCodec(testSecret, 30, -1)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	mintPairHeaders(t, req, codec, expiredCodec)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Not recoverable via reissue, so no hint header.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Header().Get(utils.TokenExpiredHeader))
}

func TestAuthMiddleware_BothExpired(t *testing.T) {
	router, _ := newGuardedRouter(t)
	expiredCodec := auth.NewTokenCodec(testSecret, -1, -1)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	mintPairHeaders(t, req, expiredCodec, expiredCodec)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Header().Get(utils.TokenExpiredHeader))
}

func TestAuthMiddleware_ForeignSignatureRejected(t *testing.T) {
	router, codec := newGuardedRouter(t)
	foreignCodec := auth.NewTokenCodec("some-other-secret", 30, 14)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	mintPairHeaders(t, req, foreignCodec, codec)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_SwappedTokenClassesRejected(t *testing.T) {
	router, codec := newGuardedRouter(t)

	// Refresh token in the access position and vice versa.
	access, err := codec.Mint("id_alice", "USER", "Alice", auth.TokenClassAccess)
	require.NoError(t, err)
	refresh, err := codec.Mint("id_alice", "USER", "Alice", auth.TokenClassRefresh)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set(utils.AuthorizationHeader, "Bearer "+refresh)
	req.Header.Set(utils.RefreshTokenHeader, "Bearer "+access)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_BypassesAuthRoutes(t *testing.T) {
	router, _ := newGuardedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/login", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_AdminOnly(t *testing.T) {
	router := gin.New()
	router.GET("/admin",
		func(c *gin.Context) { c.Set(ContextRole, "USER") },
		RequireRole("ADMIN"),
		func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/admin-ok",
		func(c *gin.Context) { c.Set(ContextRole, "ADMIN") },
		RequireRole("ADMIN"),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin-ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
