package controller

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/riaz37/portfolio-backend/internal/service"
	"github.com/riaz37/portfolio-backend/internal/util"
)

type PlaygroundController struct {
	Service *service.PlaygroundService
}

func NewPlaygroundController(svc *service.PlaygroundService) *PlaygroundController {
	return &PlaygroundController{Service: svc}
}

// @Summary Execute code
// @Description Runs a snippet in the Piston sandbox and returns its output.
// @Tags playground
// @Accept json
// @Produce json
// @Param body body service.ExecuteRequest true "Snippet"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /playground/execute [post]
func (c *PlaygroundController) Execute(ctx *gin.Context) {
	var req service.ExecuteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.Execute(req)
	if err != nil {
		if errors.Is(err, util.ErrInvalidInput) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary List supported runtimes
// @Tags playground
// @Produce json
// @Success 200 {object} util.Response
// @Router /playground/runtimes [get]
func (c *PlaygroundController) Runtimes(ctx *gin.Context) {
	runtimes, err := c.Service.Runtimes()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, runtimes)
}
