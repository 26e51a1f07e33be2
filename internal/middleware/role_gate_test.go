package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selimc/akademi/internal/app/models"
	"github.com/selimc/akademi/internal/pkg/auth"
)

const testCookieName = "akademi_session"

type stubResolver struct {
	role models.Role
	err  error
}

func (s *stubResolver) RoleOf(context.Context, int64) (models.Role, error) {
	return s.role, s.err
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func gateRouter(t *testing.T, resolver RoleResolver) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := newTestJWTService()
	gate := NewRoleGate(jwtService, resolver, testCookieName)

	router := gin.New()
	router.Use(gate.Handler())
	router.GET("/*path", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router, jwtService
}

func sessionCookie(t *testing.T, jwtService *auth.JWTService) *http.Cookie {
	t.Helper()
	accessToken, _, _, err := jwtService.GenerateTokenPair(&models.Profile{
		ID:    42,
		Name:  "Test User",
		Email: "test@akademi.app",
		Role:  models.RoleStudent,
	})
	require.NoError(t, err)
	return &http.Cookie{Name: testCookieName, Value: accessToken}
}

func get(router *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGateBypassesPublicPaths(t *testing.T) {
	// Resolver must never be consulted for public paths
	router, _ := gateRouter(t, &stubResolver{err: errors.New("must not be called")})

	for _, path := range []string{
		"/",
		"/auth",
		"/auth/callback",
		"/assets/app.js",
		"/api/v1/courses",
		"/swagger/index.html",
		"/favicon.ico",
	} {
		w := get(router, path, nil)
		assert.Equal(t, http.StatusOK, w.Code, "path %s", path)
	}
}

func TestGateRedirectsToLoginWithoutSession(t *testing.T) {
	router, _ := gateRouter(t, &stubResolver{role: models.RoleAdmin})

	for _, path := range []string{"/admin", "/dashboard", "/settings"} {
		w := get(router, path, nil)
		assert.Equal(t, http.StatusFound, w.Code, "path %s", path)
		assert.Equal(t, "/auth", w.Header().Get("Location"), "path %s", path)
	}
}

func TestGateRedirectsToLoginWithInvalidSession(t *testing.T) {
	router, _ := gateRouter(t, &stubResolver{role: models.RoleAdmin})

	w := get(router, "/admin", &http.Cookie{Name: testCookieName, Value: "not-a-jwt"})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth", w.Header().Get("Location"))
}

func TestGateRules(t *testing.T) {
	tests := []struct {
		name         string
		role         models.Role
		resolveErr   error
		path         string
		wantStatus   int
		wantLocation string
	}{
		{name: "admin inside admin area", role: models.RoleAdmin, path: "/admin/courses", wantStatus: http.StatusOK},
		{name: "admin inside student area", role: models.RoleAdmin, path: "/dashboard", wantStatus: http.StatusOK},
		{name: "admin outside both areas", role: models.RoleAdmin, path: "/settings", wantStatus: http.StatusFound, wantLocation: "/admin"},
		{name: "student inside student area", role: models.RoleStudent, path: "/dashboard/courses", wantStatus: http.StatusOK},
		{name: "student in admin area", role: models.RoleStudent, path: "/admin", wantStatus: http.StatusFound, wantLocation: "/dashboard"},
		{name: "student outside student area", role: models.RoleStudent, path: "/settings", wantStatus: http.StatusFound, wantLocation: "/dashboard"},
		{name: "no role in admin area", resolveErr: errors.New("lookup failed"), path: "/admin", wantStatus: http.StatusFound, wantLocation: "/dashboard"},
		{name: "no role in student area", resolveErr: errors.New("lookup failed"), path: "/dashboard", wantStatus: http.StatusFound, wantLocation: "/auth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, jwtService := gateRouter(t, &stubResolver{role: tt.role, err: tt.resolveErr})

			w := get(router, tt.path, sessionCookie(t, jwtService))
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
			}
		})
	}
}

func TestGateResolvesRoleFreshEachRequest(t *testing.T) {
	resolver := &stubResolver{role: models.RoleStudent}
	router, jwtService := gateRouter(t, resolver)
	cookie := sessionCookie(t, jwtService)

	w := get(router, "/dashboard", cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	// Role changes between requests take effect immediately
	resolver.role = models.RoleAdmin
	w = get(router, "/dashboard", cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(router, "/settings", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))
}
