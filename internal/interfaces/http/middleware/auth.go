package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"course-gate.backend/pkg/jwt"
	"course-gate.backend/pkg/redis"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// SessionIDHeader carries the admin session id issued at login
	SessionIDHeader = "X-Session-Id"
	// AdminEmailKey is the context key for the admin email
	AdminEmailKey = "adminEmail"
	// AdminRoleKey is the context key for the admin role
	AdminRoleKey = "adminRole"
)

// AdminAuthMiddleware authenticates admin requests. It accepts either a
// Bearer JWT or a session id resolved through the encrypted Redis session
// store; the session path lets browser clients avoid holding raw tokens.
func AdminAuthMiddleware(jwtService *jwt.JWTService, sessionStore *redis.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""

		authHeader := c.GetHeader(AuthorizationHeader)
		if strings.HasPrefix(authHeader, BearerPrefix) {
			tokenString = strings.TrimPrefix(authHeader, BearerPrefix)
		}

		if tokenString == "" && sessionStore != nil {
			if sessionID := c.GetHeader(SessionIDHeader); sessionID != "" {
				session, err := sessionStore.GetSession(c.Request.Context(), sessionID)
				if err == nil && session != nil {
					tokenString = session.AccessToken
				}
			}
		}

		if tokenString == "" {
			log.Printf("[AdminAuth] Request to %s failed: no credentials provided", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header or session id is required",
			})
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			log.Printf("[AdminAuth] Request to %s failed: %v", c.Request.URL.Path, err)
			if err == jwt.ErrExpiredToken {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Token has expired",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			return
		}

		c.Set(AdminEmailKey, claims.Email)
		c.Set(AdminRoleKey, claims.Role)

		c.Next()
	}
}

// GetAdminEmail gets the admin email from context
func GetAdminEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(AdminEmailKey)
	if !exists {
		return "", false
	}
	return email.(string), true
}

// RequireAdmin requires the authenticated actor to carry the admin role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(AdminRoleKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Role not found",
			})
			return
		}

		if role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			return
		}

		c.Next()
	}
}
