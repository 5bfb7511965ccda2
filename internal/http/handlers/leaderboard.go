package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/surakshalabs/suraksha-backend/internal/http/response"
	"github.com/surakshalabs/suraksha-backend/internal/pkg/ctxutil"
	"github.com/surakshalabs/suraksha-backend/internal/services"
)

const defaultLeaderboardLimit = 50

type LeaderboardHandler struct {
	leaderboardService services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

func (lh *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	limit := defaultLeaderboardLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit", err)
			return
		}
		limit = parsed
	}
	entries, err := lh.leaderboardService.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"leaderboard": entries})
}

func (lh *LeaderboardHandler) GetMyRank(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	rank, err := lh.leaderboardService.GetUserRank(c.Request.Context(), rd.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"rank": rank})
}
