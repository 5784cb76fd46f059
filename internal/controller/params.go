package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseIDParam 解析路径中的数字 ID
func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
