package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lyonblue/PHADMINISTRATION/internal/server/auth"
)

// claimsKey is the gin context key holding the verified access-token claims.
const claimsKey = "claims"

// bearerToken extracts the token from an Authorization header, or "".
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// claimsFrom returns the claims set by RequireAuth, or nil.
func claimsFrom(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

// RequireAuth verifies the Bearer access token and stores its claims in the
// request context. Missing or invalid tokens end the request with 401.
func (s *Server) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		claims, err := s.auth.ParseAccessToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole runs after RequireAuth and ends the request with 403 unless
// the token carries the given role.
func (s *Server) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := claimsFrom(c)
		if claims == nil || claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// optionalClaims parses a Bearer token when one is presented but never
// rejects the request. Used by public routes that personalize output for
// authenticated viewers.
func (s *Server) optionalClaims(c *gin.Context) *auth.Claims {
	token := bearerToken(c)
	if token == "" {
		return nil
	}
	claims, err := s.auth.ParseAccessToken(token)
	if err != nil {
		return nil
	}
	return claims
}
