package mw

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"airrental-backend/internal/model"
)

const (
	ctxUserID = "auth_user_id"
	ctxRole   = "auth_role"
)

// Claims is the token payload issued by the external auth service.
type Claims struct {
	UserID int64          `json:"uid"`
	Role   model.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Auth validates the bearer token and stores the caller's identity on the
// request context. Token issuance lives in the external auth service; this
// middleware only verifies the shared-secret signature.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		var claims Claims
		token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), &claims,
			func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// RequireRole rejects callers whose token carries a different role.
func RequireRole(role model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if Role(c) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller's user id.
func UserID(c *gin.Context) int64 {
	id, _ := c.Get(ctxUserID)
	v, _ := id.(int64)
	return v
}

// Role returns the authenticated caller's role.
func Role(c *gin.Context) model.UserRole {
	role, _ := c.Get(ctxRole)
	v, _ := role.(model.UserRole)
	return v
}

// SignToken mints a token the Auth middleware accepts. Used by tests and by
// local tooling; production tokens come from the auth service.
func SignToken(secret string, userID int64, role model.UserRole, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// InternalAuth guards the service-to-service metric ingestion endpoint with a
// shared static token. An empty configured token rejects everything.
func InternalAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" || c.GetHeader("X-Internal-Token") != token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid internal token"})
			return
		}
		c.Next()
	}
}
