package controller

import (
	"feelio_backend/internal/service"
	"feelio_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// UserController 处理用户相关的HTTP请求
type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

type verifyPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// VerifyPassword godoc
// @Summary 校验密码
// @Description 进入陪伴者页面前的确认
// @Tags 用户
// @Accept json
// @Produce json
// @Param user_id path int true "用户ID"
// @Param body body verifyPasswordRequest true "密码"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} util.ErrorResponse
// @Router /user/{user_id}/verify-password [post]
func (c *UserController) VerifyPassword(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "user_id")
	if !ok {
		util.BadRequest(ctx, "Invalid user ID")
		return
	}

	var req verifyPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	valid, err := c.UserService.VerifyPassword(userID, req.Password)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"valid": valid})
}
