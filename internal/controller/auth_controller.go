package controller

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/riaz37/portfolio-backend/internal/service"
	"github.com/riaz37/portfolio-backend/internal/util"
)

type AuthController struct {
	Service     *service.AuthService
	UserService *service.UserService
}

func NewAuthController(svc *service.AuthService, userSvc *service.UserService) *AuthController {
	return &AuthController{Service: svc, UserService: userSvc}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Error(ctx, 401, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// @Summary Register
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.RegisterRequest true "New account"
// @Success 201 {object} util.Response
// @Router /register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.Service.Register(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, user)
}

// @Summary Get own profile
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.UserService.GetUserByID(claims.UserID)
	if err != nil {
		util.NotFound(ctx, "user not found")
		return
	}
	util.Success(ctx, user)
}
