package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/surakshalabs/suraksha-backend/internal/http/response"
	"github.com/surakshalabs/suraksha-backend/internal/pkg/ctxutil"
	"github.com/surakshalabs/suraksha-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, err := ah.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"user": user})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, pair, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"user":          user,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	pair, err := ah.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

func (ah *AuthHandler) Logout(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", services.ErrNotAuthorized)
		return
	}
	if err := ah.authService.Logout(c.Request.Context(), rd.UserID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
