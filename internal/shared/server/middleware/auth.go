package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resumevar-backend/internal/session"
	"resumevar-backend/internal/shared/auth"
	"resumevar-backend/internal/shared/server/respond"
)

const (
	userIDKey    = "userId"
	userRoleKey  = "userRole"
	firstnameKey = "userFirstname"
)

// Auth validates the bearer credential and stores the verified identity in
// context. The signature check is authoritative; the session registry is
// additionally consulted so a logout or sweep invalidates a token that is
// otherwise still within its lifetime.
func Auth(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if token == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		claims, err := auth.VerifyJWT(token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		if sessions != nil {
			current, ok := sessions.Get(claims.Sub)
			if !ok || current != token {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "session is no longer active", nil)
				return
			}
		}

		c.Set(userIDKey, claims.Sub)
		c.Set(userRoleKey, session.ParseRole(claims.Role))
		if claims.Firstname != "" {
			c.Set(firstnameKey, claims.Firstname)
		}
		c.Next()
	}
}

// RequireCapability rejects identities whose role lacks the capability.
// This is the only role check in the request path; handlers never compare
// role strings themselves.
func RequireCapability(cap session.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !RoleFromContext(c).Has(cap) {
			respond.StatusError(c, http.StatusForbidden)
			return
		}
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// RoleFromContext fetches the role set by the auth middleware.
func RoleFromContext(c *gin.Context) session.Role {
	if c == nil {
		return session.RoleGuest
	}
	val, _ := c.Get(userRoleKey)
	if role, ok := val.(session.Role); ok {
		return role
	}
	return session.RoleGuest
}

// FirstnameFromContext fetches the display name set by the auth middleware.
func FirstnameFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(firstnameKey)
	if name, ok := val.(string); ok {
		return name
	}
	return ""
}
