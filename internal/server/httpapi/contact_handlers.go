package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lyonblue/PHADMINISTRATION/internal/mailx"
)

type proposalRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" binding:"required"`
}

// contactProposal relays a contact form to the configured recipient and
// sends the requester a best-effort confirmation copy.
func (s *Server) contactProposal(c *gin.Context) {
	var req proposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, err)
		return
	}

	body := fmt.Sprintf("New proposal from %s <%s>\nPhone: %s\n\n%s\n",
		req.Name, req.Email, req.Phone, req.Message)
	if err := s.mailer.Send(c.Request.Context(), mailx.Message{
		To:      s.config.ProposalEmail,
		Subject: "New contact proposal",
		Body:    body,
	}); err != nil {
		s.renderError(c, err)
		return
	}

	// Confirmation copy; failure here does not fail the request.
	s.sendMail(c, mailx.Message{
		To:      req.Email,
		Subject: "We received your proposal",
		Body:    fmt.Sprintf("Hello %s,\n\nThanks for reaching out. We will get back to you shortly.\n", req.Name),
	})

	c.JSON(http.StatusOK, gin.H{"message": "proposal sent"})
}
