package controller

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/riaz37/portfolio-backend/internal/service"
	"github.com/riaz37/portfolio-backend/internal/util"
)

type CurriculumController struct {
	Service *service.CurriculumService
}

func NewCurriculumController(svc *service.CurriculumService) *CurriculumController {
	return &CurriculumController{Service: svc}
}

// @Summary List career paths
// @Tags curriculum
// @Produce json
// @Success 200 {object} util.Response
// @Router /curriculum/career-paths [get]
func (c *CurriculumController) ListCareerPaths(ctx *gin.Context) {
	paths, err := c.Service.ListCareerPaths()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, paths)
}

// @Summary Get a career path with its full tree
// @Tags curriculum
// @Produce json
// @Param id path string true "Career path id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /curriculum/career-paths/{id} [get]
func (c *CurriculumController) GetCareerPath(ctx *gin.Context) {
	path, err := c.Service.GetCareerPath(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrCareerPathNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, path)
}

// @Summary Get a learning path with skills and resources
// @Tags curriculum
// @Produce json
// @Param id path string true "Learning path id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /curriculum/learning-paths/{id} [get]
func (c *CurriculumController) GetLearningPath(ctx *gin.Context) {
	path, err := c.Service.FindLearningPath(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrPathNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, path)
}
