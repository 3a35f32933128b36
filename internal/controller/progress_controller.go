package controller

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/riaz37/portfolio-backend/internal/service"
	"github.com/riaz37/portfolio-backend/internal/util"
	"github.com/riaz37/portfolio-backend/pkg/monitoring"
)

type ProgressController struct {
	Service *service.ProgressService
}

func NewProgressController(svc *service.ProgressService) *ProgressController {
	return &ProgressController{Service: svc}
}

// @Summary Get learning progress
// @Description Returns progress stats for a learning path, or the last accessed path id when getLastPath=true.
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param learningPathId query string false "Learning path id"
// @Param getLastPath query bool false "Return the most recently accessed path instead"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /progress [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if ctx.Query("getLastPath") == "true" {
		pathID, err := c.Service.GetLastAccessedPath(user.UserID)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		if pathID == "" {
			util.Success(ctx, gin.H{"learningPathId": nil})
			return
		}
		util.Success(ctx, gin.H{"learningPathId": pathID})
		return
	}

	pathID := ctx.Query("learningPathId")
	if pathID == "" {
		util.BadRequest(ctx, "learningPathId is required")
		return
	}

	stats, err := c.Service.GetUserProgress(user.UserID, pathID)
	if err != nil {
		respondProgressError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

type updateProgressRequest struct {
	LearningPathID string `json:"learningPathId" binding:"required"`
	ResourceID     string `json:"resourceId" binding:"required"`
	SkillID        string `json:"skillId" binding:"required"`
	Completed      *bool  `json:"completed" binding:"required"`
}

// @Summary Toggle resource completion
// @Description Marks a resource complete or incomplete and returns recomputed stats.
// @Tags progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body updateProgressRequest true "Completion toggle"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /progress [post]
func (c *ProgressController) UpdateProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req updateProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	stats, err := c.Service.MarkResourceComplete(user.UserID, req.LearningPathID, req.ResourceID, req.SkillID, *req.Completed)
	if err != nil {
		respondProgressError(ctx, err)
		return
	}

	direction := "uncomplete"
	if *req.Completed {
		direction = "complete"
	}
	monitoring.CompletionToggles.WithLabelValues(direction).Inc()

	util.Success(ctx, stats)
}

// @Summary Get career path progress
// @Description Completion aggregate across all learning paths of a career path.
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param careerPathId query string true "Career path id"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /progress/career [get]
func (c *ProgressController) GetCareerProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	careerPathID := ctx.Query("careerPathId")
	if careerPathID == "" {
		util.BadRequest(ctx, "careerPathId is required")
		return
	}

	careerProgress, err := c.Service.GetCareerPathProgress(user.UserID, careerPathID)
	if err != nil {
		respondProgressError(ctx, err)
		return
	}
	util.Success(ctx, careerProgress)
}

// @Summary Get completion streak
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /progress/streak [get]
func (c *ProgressController) GetStreak(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	streak, err := c.Service.GetStreak(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, streak)
}

// @Summary Get per-skill progress
// @Description Per-skill completion percentages plus prerequisite availability for a learning path.
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param learningPathId query string true "Learning path id"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /progress/skills [get]
func (c *ProgressController) GetSkillProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	pathID := ctx.Query("learningPathId")
	if pathID == "" {
		util.BadRequest(ctx, "learningPathId is required")
		return
	}

	skills, err := c.Service.GetSkillProgress(user.UserID, pathID)
	if err != nil {
		respondProgressError(ctx, err)
		return
	}
	util.Success(ctx, skills)
}

func respondProgressError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidInput):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrPathNotFound),
		errors.Is(err, util.ErrCareerPathNotFound),
		errors.Is(err, util.ErrResourceNotFound):
		util.NotFound(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
