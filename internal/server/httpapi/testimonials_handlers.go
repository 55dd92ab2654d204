package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// listTestimonials is public, but a valid Bearer token personalizes the
// isOwner flag on the viewer's own entries.
func (s *Server) listTestimonials(c *gin.Context) {
	var viewerID string
	if claims := s.optionalClaims(c); claims != nil {
		viewerID = claims.UserID
	}

	items, err := s.testimonials.List(c.Request.Context(), viewerID)
	if err != nil {
		s.renderError(c, err)
		return
	}
	out := make([]gin.H, 0, len(items))
	for _, item := range items {
		out = append(out, testimonialJSON(item))
	}
	c.JSON(http.StatusOK, gin.H{"testimonials": out})
}

type createTestimonialRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Message string `json:"message" binding:"required"`
}

func (s *Server) createTestimonial(c *gin.Context) {
	var req createTestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, err)
		return
	}
	item, err := s.testimonials.Create(c.Request.Context(), claimsFrom(c).UserID, req.Rating, req.Message)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"testimonial": testimonialJSON(item)})
}

func (s *Server) deleteTestimonial(c *gin.Context) {
	claims := claimsFrom(c)
	if err := s.testimonials.Delete(c.Request.Context(), c.Param("id"), claims.UserID, claims.Role); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
