package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/surakshalabs/suraksha-backend/internal/http/response"
	"github.com/surakshalabs/suraksha-backend/internal/pkg/ctxutil"
	"github.com/surakshalabs/suraksha-backend/internal/services"
)

type StatsHandler struct {
	statsService services.StatsService
}

func NewStatsHandler(statsService services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (sh *StatsHandler) GetMyStats(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	stats, err := sh.statsService.GetUserStats(c.Request.Context(), rd.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, stats)
}

func (sh *StatsHandler) GetGlobalStats(c *gin.Context) {
	stats, err := sh.statsService.GetGlobalStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, stats)
}
