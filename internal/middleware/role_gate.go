package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/selimc/akademi/internal/app/models"
	"github.com/selimc/akademi/internal/pkg/auth"
	"github.com/selimc/akademi/internal/pkg/logger"
)

// RoleResolver resolves the current role of a profile. The gate reads the
// role fresh on every request so a role change takes effect immediately.
type RoleResolver interface {
	RoleOf(ctx context.Context, profileID int64) (models.Role, error)
}

// Page area prefixes and the public paths the gate never touches
const (
	loginPath     = "/auth"
	adminPrefix   = "/admin"
	studentPrefix = "/dashboard"
)

var gateBypassPrefixes = []string{"/auth", "/assets", "/api", "/swagger", "/favicon"}

// RoleGate enforces the role to page-area mapping on every page request
type RoleGate struct {
	jwtService *auth.JWTService
	roles      RoleResolver
	cookieName string
}

// NewRoleGate creates a new RoleGate
func NewRoleGate(jwtService *auth.JWTService, roles RoleResolver, cookieName string) *RoleGate {
	return &RoleGate{
		jwtService: jwtService,
		roles:      roles,
		cookieName: cookieName,
	}
}

// Handler returns the gin middleware enforcing the gate.
//
// Public paths pass through untouched. Requests without a valid session are
// sent to the login page. For everyone else the rules are evaluated in
// order: an admin outside the admin and student areas goes to the admin
// home, a student outside the student area goes to the student home,
// a non-admin inside the admin area goes to the student home, and a caller
// with no usable role inside the student area goes back to login. A failed
// role lookup counts as no role, never as access.
func (g *RoleGate) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if g.bypassed(path) {
			c.Next()
			return
		}

		claims, ok := g.session(c)
		if !ok {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		role, err := g.roles.RoleOf(c.Request.Context(), claims.UserID)
		if err != nil {
			logger.Warn().Err(err).Int64("profileID", claims.UserID).Str("path", path).Msg("Role lookup failed, treating as no role")
			role = ""
		}

		inAdmin := strings.HasPrefix(path, adminPrefix)
		inStudent := strings.HasPrefix(path, studentPrefix)

		switch {
		case role == models.RoleAdmin && !inAdmin && !inStudent:
			c.Redirect(http.StatusFound, adminPrefix)
		case role == models.RoleStudent && !inStudent:
			c.Redirect(http.StatusFound, studentPrefix)
		case inAdmin && role != models.RoleAdmin:
			c.Redirect(http.StatusFound, studentPrefix)
		case inStudent && role != models.RoleAdmin && role != models.RoleStudent:
			c.Redirect(http.StatusFound, loginPath)
		default:
			c.Set(ContextUserIDKey, claims.UserID)
			c.Set(ContextRoleKey, string(role))
			c.Next()
			return
		}

		c.Abort()
	}
}

// bypassed reports whether the path is public. The root path is public;
// everything under the public prefixes is too.
func (g *RoleGate) bypassed(path string) bool {
	if path == "/" {
		return true
	}
	for _, prefix := range gateBypassPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// session reads and validates the session cookie
func (g *RoleGate) session(c *gin.Context) (*auth.Claims, bool) {
	token, err := c.Cookie(g.cookieName)
	if err != nil || token == "" {
		return nil, false
	}

	claims, err := g.jwtService.ValidateAndExtractClaims(token)
	if err != nil {
		return nil, false
	}

	return claims, true
}
