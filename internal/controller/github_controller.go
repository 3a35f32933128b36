package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/riaz37/portfolio-backend/internal/service"
	"github.com/riaz37/portfolio-backend/internal/util"
)

type GitHubController struct {
	Service *service.GitHubService
}

func NewGitHubController(svc *service.GitHubService) *GitHubController {
	return &GitHubController{Service: svc}
}

// @Summary Get GitHub profile stats
// @Tags github
// @Produce json
// @Success 200 {object} util.Response
// @Router /github/stats [get]
func (c *GitHubController) GetStats(ctx *gin.Context) {
	stats, err := c.Service.GetStats()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
