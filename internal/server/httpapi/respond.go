package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/lyonblue/PHADMINISTRATION/internal/common"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/models"
)

// renderError maps service errors to HTTP statuses. Anything unrecognized
// is logged and reported as an opaque 500 so internals never leak.
func (s *Server) renderError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
		return
	}

	switch {
	case errors.Is(err, common.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
	case errors.Is(err, common.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, common.ErrEmailNotVerified):
		c.JSON(http.StatusForbidden, gin.H{"error": "email not verified"})
	case errors.Is(err, common.ErrInvalidToken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid token"})
	case errors.Is(err, common.ErrTokenExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "token expired"})
	case errors.Is(err, common.ErrInvalidRefresh), errors.Is(err, common.ErrRefreshTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
	case errors.Is(err, common.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
	case errors.Is(err, common.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, common.ErrorAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	default:
		s.logger.Error(c.Request.Context(), "request failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// userJSON is the public shape of an account. The credential hash never
// leaves the server.
func userJSON(u *models.User) gin.H {
	return gin.H{
		"id":            u.ID,
		"email":         u.Email,
		"fullName":      u.FullName,
		"avatarUrl":     u.AvatarURL,
		"role":          u.Role,
		"emailVerified": u.EmailVerifiedAt != nil,
		"createdAt":     u.CreatedAt.Format(time.RFC3339),
	}
}

func newsJSON(n *models.NewsItem) gin.H {
	return gin.H{
		"id":          n.ID,
		"title":       n.Title,
		"subtitle":    n.Subtitle,
		"description": n.Description,
		"imageUrl":    n.ImageURL,
		"authorName":  n.AuthorName,
		"createdAt":   n.CreatedAt.Format(time.RFC3339),
	}
}

func testimonialJSON(t *models.Testimonial) gin.H {
	return gin.H{
		"id":        t.ID,
		"userName":  t.UserName,
		"avatarUrl": t.AvatarURL,
		"rating":    t.Rating,
		"message":   t.Message,
		"isOwner":   t.IsOwner,
		"createdAt": t.CreatedAt.Format(time.RFC3339),
	}
}
