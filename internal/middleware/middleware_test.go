package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nccf-fellowship/portal-backend/internal/auth"
)

type fakeChecker struct {
	admins map[uuid.UUID]bool
	err    error
}

func (f *fakeChecker) IsAdmin(_ context.Context, profileID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.admins[profileID], nil
}

func authedRouter(jwtSvc *auth.JWTService, denylist *auth.TokenDenylist) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWT(jwtSvc, denylist, zap.NewNop()))
	r.GET("/ping", func(c *gin.Context) {
		id := c.MustGet(auth.ContextProfileID).(uuid.UUID)
		c.JSON(http.StatusOK, gin.H{"profile_id": id.String()})
	})
	return r
}

func TestJWTMiddlewareAcceptsValidToken(t *testing.T) {
	svc := auth.NewJWTService("test-secret", 1)
	token, err := svc.Generate(uuid.New(), "m@nccf.org")
	require.NoError(t, err)

	router := authedRouter(svc, nil)
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTMiddlewareRejectsBadHeaders(t *testing.T) {
	svc := auth.NewJWTService("test-secret", 1)
	router := authedRouter(svc, nil)

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer bad.token"} {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestJWTMiddlewareRejectsRevokedToken(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	denylist := auth.NewTokenDenylist(client)

	svc := auth.NewJWTService("test-secret", 1)
	token, err := svc.Generate(uuid.New(), "m@nccf.org")
	require.NoError(t, err)
	claims, err := svc.Validate(token)
	require.NoError(t, err)
	require.NoError(t, denylist.Revoke(context.Background(), claims.ID, time.Hour))

	router := authedRouter(svc, denylist)
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func adminRouter(checker AdminChecker, profileID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if profileID != uuid.Nil {
			c.Set(auth.ContextProfileID, profileID)
		}
	})
	r.GET("/admin", RequireAdmin(checker, zap.NewNop()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequireAdmin(t *testing.T) {
	adminID, memberID := uuid.New(), uuid.New()
	checker := &fakeChecker{admins: map[uuid.UUID]bool{adminID: true}}

	rec := httptest.NewRecorder()
	adminRouter(checker, adminID).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	adminRouter(checker, memberID).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	adminRouter(checker, uuid.Nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "no profile in context")
}

func TestRequireAdminLookupFailureDeniesAccess(t *testing.T) {
	checker := &fakeChecker{err: errors.New("db down")}
	rec := httptest.NewRecorder()
	adminRouter(checker, uuid.New()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code, "lookup failure degrades to non-admin")
}
