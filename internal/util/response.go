package util

import (
	"errors"
	"feelio_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse 统一错误结构，前端读取 error 字段
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse 变更类接口的统一返回
type MessageResponse struct {
	ID      uint   `json:"id,omitempty"`
	Message string `json:"message"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageResponse{Message: message})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Error: message})
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalServerError 记录日志并把错误信息原样返回
func InternalServerError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	Error(c, http.StatusInternalServerError, err.Error())
}

// HandleError 按错误类型映射状态码
func HandleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrResponseNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrNarrativeNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, ErrEmailRegistered), errors.Is(err, ErrValidation):
		BadRequest(c, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		Unauthorized(c, err.Error())
	case errors.Is(err, ErrFeedbackDisabled), errors.Is(err, ErrClassifierDisabled):
		Error(c, http.StatusServiceUnavailable, err.Error())
	default:
		InternalServerError(c, err)
	}
}
