package controller

import (
	"feelio_backend/internal/service"
	"feelio_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
	UserService *service.UserService
}

func NewAuthController(authService *service.AuthService, userService *service.UserService) *AuthController {
	return &AuthController{
		AuthService: authService,
		UserService: userService,
	}
}

// Signup godoc
// @Summary 注册
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body service.SignupRequest true "注册信息"
// @Success 200 {object} util.MessageResponse
// @Failure 400 {object} util.ErrorResponse "参数错误或邮箱已注册"
// @Router /signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req service.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.Signup(req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, util.MessageResponse{ID: user.ID, Message: "Signup successful"})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary 登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body loginRequest true "登录凭据"
// @Success 200 {object} service.LoginResult
// @Failure 401 {object} util.ErrorResponse
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// GetChildren godoc
// @Summary 获取陪伴者名下的孩子
// @Tags 认证
// @Produce json
// @Param id path int true "陪伴者ID"
// @Success 200 {array} service.ChildView
// @Router /pendamping/{id}/children [get]
func (c *AuthController) GetChildren(ctx *gin.Context) {
	parentID, ok := parseIDParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "Invalid guardian ID")
		return
	}

	children, err := c.UserService.GetChildren(parentID)
	if err != nil {
		util.InternalServerError(ctx, err)
		return
	}
	util.Success(ctx, children)
}
