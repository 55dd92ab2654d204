package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) listNews(c *gin.Context) {
	items, err := s.news.List(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	out := make([]gin.H, 0, len(items))
	for _, item := range items {
		out = append(out, newsJSON(item))
	}
	c.JSON(http.StatusOK, gin.H{"news": out})
}

type createNewsRequest struct {
	Title       string `json:"title" binding:"required"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description" binding:"required"`
	ImageURL    string `json:"imageUrl"`
}

func (s *Server) createNews(c *gin.Context) {
	var req createNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, err)
		return
	}
	item, err := s.news.Create(c.Request.Context(), claimsFrom(c).UserID,
		req.Title, req.Subtitle, req.Description, req.ImageURL)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"news": newsJSON(item)})
}

func (s *Server) deleteNews(c *gin.Context) {
	if err := s.news.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
