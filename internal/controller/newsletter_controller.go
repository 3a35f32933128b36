package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/riaz37/portfolio-backend/internal/service"
	"github.com/riaz37/portfolio-backend/internal/util"
)

type NewsletterController struct {
	Service *service.NewsletterService
}

func NewNewsletterController(svc *service.NewsletterService) *NewsletterController {
	return &NewsletterController{Service: svc}
}

type subscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}

// @Summary Subscribe to the newsletter
// @Tags newsletter
// @Accept json
// @Produce json
// @Param body body subscribeRequest true "Subscriber"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /newsletter/subscribe [post]
func (c *NewsletterController) Subscribe(ctx *gin.Context) {
	var req subscribeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.Service.Subscribe(req.Email, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidInput), errors.Is(err, util.ErrAlreadySubscribed):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, sub)
}

type unsubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// @Summary Unsubscribe from the newsletter
// @Tags newsletter
// @Accept json
// @Produce json
// @Param body body unsubscribeRequest true "Subscriber"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /newsletter/unsubscribe [post]
func (c *NewsletterController) Unsubscribe(ctx *gin.Context) {
	var req unsubscribeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.Unsubscribe(req.Email); err != nil {
		switch {
		case errors.Is(err, util.ErrNotSubscribed):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrInvalidInput):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"unsubscribed": true})
}

// @Summary List subscribers
// @Tags newsletter
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response
// @Router /admin/newsletter/subscribers [get]
func (c *NewsletterController) ListSubscribers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	subs, total, err := c.Service.ListSubscribers(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: subs, Total: total, Page: page, Limit: limit})
}
