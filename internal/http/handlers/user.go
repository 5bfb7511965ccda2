package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/surakshalabs/suraksha-backend/internal/http/response"
	"github.com/surakshalabs/suraksha-backend/internal/pkg/ctxutil"
	"github.com/surakshalabs/suraksha-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	user, err := uh.userService.GetByID(c.Request.Context(), rd.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"user": user})
}

func (uh *UserHandler) UpdateProfile(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	var req services.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, err := uh.userService.UpdateProfile(c.Request.Context(), rd.UserID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"user": user})
}

func (uh *UserHandler) Search(c *gin.Context) {
	users, err := uh.userService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"users": users})
}

func (uh *UserHandler) Delete(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}
	if err := uh.userService.Delete(c.Request.Context(), userID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
