package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name": "PH administration API",
		"routes": []string{
			"POST /auth/register", "POST /auth/login", "POST /auth/refresh",
			"POST /auth/logout", "POST /auth/verify-email",
			"POST /auth/forgot-password", "POST /auth/reset-password",
			"GET /me", "PATCH /me", "POST /me/change-password", "POST /me/avatar-upload",
			"POST /admin/create-user",
			"GET /news", "POST /news", "DELETE /news/:id",
			"GET /testimonials", "POST /testimonials", "DELETE /testimonials/:id",
			"POST /contact/proposal", "GET /health",
		},
	})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
