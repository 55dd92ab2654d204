package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lyonblue/PHADMINISTRATION/internal/mailx"
)

// refreshCookieName holds the raw refresh token, httpOnly so scripts never
// see it.
const refreshCookieName = "refresh_token"

func (s *Server) setRefreshCookie(c *gin.Context, token string) {
	maxAge := int(s.config.RefreshTokenValidityDuration.Seconds())
	c.SetCookie(refreshCookieName, token, maxAge, "/", "", false, true)
}

func (s *Server) clearRefreshCookie(c *gin.Context) {
	c.SetCookie(refreshCookieName, "", -1, "/", "", false, true)
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"required"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, err)
		return
	}

	user, verificationToken, err := s.auth.Register(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		s.renderError(c, err)
		return
	}

	if verificationToken != "" {
		s.sendMail(c, mailx.Message{
			To:      user.Email,
			Subject: "Verify your email",
			Body:    fmt.Sprintf("Hello %s,\n\nYour verification code is: %s\n", user.FullName, verificationToken),
		})
	}

	s.logger.Info(c.Request.Context(), "account registered", "userId", user.ID)
	c.JSON(http.StatusCreated, gin.H{"user": userJSON(user)})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, err)
		return
	}

	user, pair, err := s.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.renderError(c, err)
		return
	}

	s.setRefreshCookie(c, pair.RefreshToken)
	c.JSON(http.StatusOK, gin.H{
		"accessToken": pair.AccessToken,
		"user":        userJSON(user),
	})
}

type refreshRequest struct {
	UserID string `json:"userId" binding:"required"`
}

func (s *Server) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, err)
		return
	}
	refreshToken, err := c.Cookie(refreshCookieName)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	pair, err := s.auth.Refresh(c.Request.Context(), req.UserID, refreshToken)
	if err != nil {
		s.clearRefreshCookie(c)
		s.renderError(c, err)
		return
	}

	s.setRefreshCookie(c, pair.RefreshToken)
	c.JSON(http.StatusOK, gin.H{"accessToken": pair.AccessToken})
}

// logout revokes the presented session. The Bearer token is parsed
// opportunistically to learn whose session to revoke; an expired or absent
// token still clears the cookie and succeeds.
func (s *Server) logout(c *gin.Context) {
	refreshToken, _ := c.Cookie(refreshCookieName)

	var userID string
	if token := bearerToken(c); token != "" {
		if claims, err := s.auth.ParseAccessToken(token); err == nil {
			userID = claims.UserID
		}
	}

	if err := s.auth.Logout(c.Request.Context(), userID, refreshToken); err != nil {
		s.logger.Warn(c.Request.Context(), "logout revoke failed", "error", err.Error())
	}

	s.clearRefreshCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

type verifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

func (s *Server) verifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, err)
		return
	}
	if err := s.auth.VerifyEmail(c.Request.Context(), req.Token); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email verified"})
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// forgotPassword answers the same way whether or not the account exists.
func (s *Server) forgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, err)
		return
	}

	token, err := s.auth.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		s.renderError(c, err)
		return
	}
	if token != "" {
		s.sendMail(c, mailx.Message{
			To:      req.Email,
			Subject: "Password reset",
			Body:    fmt.Sprintf("Your password reset code is: %s\n\nIf you did not request this, ignore this message.\n", token),
		})
	}

	c.JSON(http.StatusOK, gin.H{"message": "if the account exists, a reset email has been sent"})
}

type resetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

func (s *Server) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, err)
		return
	}
	if err := s.auth.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// sendMail delivers best-effort: a mail failure is logged but never fails
// the request that triggered it.
func (s *Server) sendMail(c *gin.Context, msg mailx.Message) {
	if err := s.mailer.Send(c.Request.Context(), msg); err != nil {
		s.logger.Error(c.Request.Context(), "mail delivery failed", "to", msg.To, "error", err.Error())
	}
}
