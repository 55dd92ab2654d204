package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) getProfile(c *gin.Context) {
	claims := claimsFrom(c)
	user, err := s.profile.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userJSON(user)})
}

type updateProfileRequest struct {
	FullName  *string `json:"fullName"`
	AvatarURL *string `json:"avatarUrl"`
}

func (s *Server) updateProfile(c *gin.Context) {
	claims := claimsFrom(c)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, err)
		return
	}
	user, err := s.profile.Update(c.Request.Context(), claims.UserID, req.FullName, req.AvatarURL)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userJSON(user)})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

func (s *Server) changePassword(c *gin.Context) {
	claims := claimsFrom(c)
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, err)
		return
	}
	if err := s.profile.ChangePassword(c.Request.Context(), claims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

// avatarUpload hands the client a presigned PUT URL; once the client
// uploads the object it PATCHes /me with the returned download URL.
func (s *Server) avatarUpload(c *gin.Context) {
	claims := claimsFrom(c)

	key, uploadURL, err := s.avatars.GetPresignedPutURL(c.Request.Context(), claims.UserID)
	if err != nil {
		s.renderError(c, err)
		return
	}
	downloadURL, err := s.avatars.GetPresignedGetURL(c.Request.Context(), key)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"key":         key,
		"uploadUrl":   uploadURL,
		"downloadUrl": downloadURL,
	})
}
