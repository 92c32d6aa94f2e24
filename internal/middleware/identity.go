package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const ContextKeyIdentity = "identity"

// Identity resolves a stable per-user identity for every request. A valid
// Bearer token yields the token's subject. Anyone else gets an anonymous
// identity, taken from the X-Client-ID header when the caller supplies one
// so an anonymous user keeps the same history across requests, otherwise
// minted fresh. Requests are never rejected here: a bad token simply
// degrades to anonymous.
func Identity(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyIdentity, resolveIdentity(c, secret))
		c.Next()
	}
}

func resolveIdentity(c *gin.Context, secret string) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") && secret != "" {
		raw := strings.TrimPrefix(authHeader, "Bearer ")
		if sub, err := parseSubject(raw, secret); err == nil && sub != "" {
			return sub
		}
	}

	if clientID := strings.TrimSpace(c.GetHeader("X-Client-ID")); clientID != "" {
		return "anonymous-" + clientID
	}
	return "anonymous-" + uuid.New().String()
}

func parseSubject(raw, secret string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("parsing token: %w", err)
	}
	return token.Claims.GetSubject()
}

// GetIdentity extracts the resolved identity from the Gin context.
func GetIdentity(c *gin.Context) string {
	val, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return ""
	}
	return val.(string)
}
