package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lyonblue/PHADMINISTRATION/internal/mailx"
)

type createUserRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FullName    string `json:"fullName" binding:"required"`
	Role        string `json:"role" binding:"required,oneof=admin user"`
	PreVerified bool   `json:"preVerified"`
}

func (s *Server) adminCreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, err)
		return
	}

	user, verificationToken, err := s.auth.CreateAccountWithRole(c.Request.Context(),
		req.Email, req.Password, req.FullName, req.Role, req.PreVerified)
	if err != nil {
		s.renderError(c, err)
		return
	}

	if verificationToken != "" {
		s.sendMail(c, mailx.Message{
			To:      user.Email,
			Subject: "Your account",
			Body:    fmt.Sprintf("An account has been created for you.\n\nYour verification code is: %s\n", verificationToken),
		})
	}

	s.logger.Info(c.Request.Context(), "account created by admin",
		"userId", user.ID, "role", user.Role, "createdBy", claimsFrom(c).UserID)
	c.JSON(http.StatusCreated, gin.H{"user": userJSON(user)})
}
