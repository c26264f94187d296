package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Web-A1/hauls-service/internal/service"
)

// Поля повторяют payload установки приложения Bitrix24.
type installRequest struct {
	Domain       string `json:"DOMAIN" binding:"required"`
	MemberID     string `json:"member_id" binding:"required"`
	AccessToken  string `json:"AUTH_ID" binding:"required"`
	RefreshToken string `json:"REFRESH_ID"`
	ExpiresIn    int64  `json:"AUTH_EXPIRES"`
}

type sessionRequest struct {
	MemberID string  `json:"member_id" binding:"required"`
	UserID   *int64  `json:"user_id"`
	UserName *string `json:"user_name"`
	IsAdmin  bool    `json:"is_admin"`
	IsDriver bool    `json:"is_driver"`
}

func (h *Handler) installApp(c *gin.Context) {
	var req installRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	portal, err := h.install.Install(c.Request.Context(), service.InstallInput{
		Domain:       req.Domain,
		MemberID:     req.MemberID,
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
		ExpiresIn:    req.ExpiresIn,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"member_id": portal.MemberID,
		"domain":    portal.Domain,
		"installed": true,
	})
}

func (h *Handler) createSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.install.CreateSession(c.Request.Context(), service.SessionInput{
		MemberID: req.MemberID,
		UserID:   req.UserID,
		UserName: req.UserName,
		IsAdmin:  req.IsAdmin,
		IsDriver: req.IsDriver,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      session.Token,
		"expires_in": int64(time.Until(session.ExpiresAt).Seconds()),
		"role":       session.Actor.Role,
	})
}
