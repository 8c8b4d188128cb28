package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/server/respond"
)

const (
	userIDKey    = "userId"
	userEmailKey = "userEmail"
	userStaffKey = "isStaff"
)

// TokenVerifier checks bearer tokens.
type TokenVerifier interface {
	Verify(token, wantType string) (auth.Claims, error)
}

// Paths reachable without a bearer token. Entries ending in "/" match by prefix.
var publicPaths = []string{
	"/api/v1/health",
	"/api/v1/signup",
	"/api/v1/token",
	"/api/v1/token/refresh",
	"/api/v1/auth/google/",
	"/metrics",
}

// Auth validates access tokens and stores the caller identity in context.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || isPublic(c.Request.URL.Path) {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if token == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		claims, err := verifier.Verify(token, auth.TokenAccess)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		c.Set(userIDKey, claims.Subject)
		if claims.Email != "" {
			c.Set(userEmailKey, claims.Email)
		}
		c.Set(userStaffKey, claims.Staff)
		c.Next()
	}
}

// RequireStaff rejects callers whose token is not marked staff.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsStaffFromContext(c) {
			respond.Error(c, http.StatusForbidden, "forbidden", "staff access required", nil)
			return
		}
		c.Next()
	}
}

func isPublic(path string) bool {
	for _, p := range publicPaths {
		if strings.HasSuffix(p, "/") {
			if strings.HasPrefix(path, p) {
				return true
			}
			continue
		}
		if path == p || path == p+"/" {
			return true
		}
	}
	return false
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(userIDKey)
}

// UserEmailFromContext fetches the user email set by the auth middleware.
func UserEmailFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(userEmailKey)
}

// IsStaffFromContext reports whether the caller's token carries the staff flag.
func IsStaffFromContext(c *gin.Context) bool {
	if c == nil {
		return false
	}
	return c.GetBool(userStaffKey)
}
