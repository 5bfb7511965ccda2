package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/surakshalabs/suraksha-backend/internal/http/response"
	"github.com/surakshalabs/suraksha-backend/internal/pkg/ctxutil"
	"github.com/surakshalabs/suraksha-backend/internal/services"
)

type ProgressHandler struct {
	progressService services.ProgressService
}

func NewProgressHandler(progressService services.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

func (ph *ProgressHandler) SubmitQuiz(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	var req services.QuizSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	outcome, err := ph.progressService.RecordQuizResult(c.Request.Context(), rd.UserID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, outcome)
}

func (ph *ProgressHandler) SubmitDrill(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	var req services.DrillSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	outcome, err := ph.progressService.RecordDrillResult(c.Request.Context(), rd.UserID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, outcome)
}

func (ph *ProgressHandler) SubmitModule(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	var req services.ModuleSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	completion, err := ph.progressService.RecordModuleCompletion(c.Request.Context(), rd.UserID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"module_completion": completion})
}

func (ph *ProgressHandler) ListQuizResults(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	results, err := ph.progressService.ListQuizResults(c.Request.Context(), rd.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"quiz_results": results})
}

func (ph *ProgressHandler) ListDrillResults(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	results, err := ph.progressService.ListDrillResults(c.Request.Context(), rd.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"drill_results": results})
}

func (ph *ProgressHandler) ListModuleCompletions(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	completions, err := ph.progressService.ListModuleCompletions(c.Request.Context(), rd.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"module_completions": completions})
}

func (ph *ProgressHandler) ListAchievements(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	achievements, err := ph.progressService.ListAchievements(c.Request.Context(), rd.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"achievements": achievements})
}
