package controller

import (
	"feelio_backend/internal/service"
	"feelio_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AchievementController struct {
	AchievementService *service.AchievementService
	StatisticsService  *service.StatisticsService
}

func NewAchievementController(achievementService *service.AchievementService, statisticsService *service.StatisticsService) *AchievementController {
	return &AchievementController{
		AchievementService: achievementService,
		StatisticsService:  statisticsService,
	}
}

// GetAchievements godoc
// @Summary 获取已获得徽章
// @Tags 成就系统
// @Produce json
// @Param user_id path int true "用户ID"
// @Success 200 {array} service.Achievement
// @Failure 500 {object} util.ErrorResponse
// @Router /user/{user_id}/achievements [get]
func (c *AchievementController) GetAchievements(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "user_id")
	if !ok {
		util.BadRequest(ctx, "Invalid user ID")
		return
	}

	achievements, err := c.AchievementService.GetAchievements(ctx.Request.Context(), userID)
	if err != nil {
		util.InternalServerError(ctx, err)
		return
	}
	util.Success(ctx, achievements)
}

// GetUpcomingBadges godoc
// @Summary 获取未获得徽章
// @Tags 成就系统
// @Produce json
// @Param user_id path int true "用户ID"
// @Success 200 {array} service.UpcomingBadge
// @Failure 500 {object} util.ErrorResponse
// @Router /user/{user_id}/upcoming-badges [get]
func (c *AchievementController) GetUpcomingBadges(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "user_id")
	if !ok {
		util.BadRequest(ctx, "Invalid user ID")
		return
	}

	badges, err := c.AchievementService.GetUpcoming(ctx.Request.Context(), userID)
	if err != nil {
		util.InternalServerError(ctx, err)
		return
	}
	util.Success(ctx, badges)
}

// GetSummary godoc
// @Summary 获取积分汇总
// @Description 总分 = 答对得分 + 徽章分
// @Tags 成就系统
// @Produce json
// @Param user_id path int true "用户ID"
// @Success 200 {object} service.Summary
// @Failure 500 {object} util.ErrorResponse
// @Router /user/{user_id}/summary [get]
func (c *AchievementController) GetSummary(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "user_id")
	if !ok {
		util.BadRequest(ctx, "Invalid user ID")
		return
	}

	summary, err := c.AchievementService.GetSummary(ctx.Request.Context(), userID)
	if err != nil {
		util.InternalServerError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// GetStats godoc
// @Summary 获取情绪统计
// @Tags 成就系统
// @Produce json
// @Param user_id path int true "用户ID"
// @Success 200 {object} service.UserStats
// @Failure 500 {object} util.ErrorResponse
// @Router /user/{user_id}/stats [get]
func (c *AchievementController) GetStats(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "user_id")
	if !ok {
		util.BadRequest(ctx, "Invalid user ID")
		return
	}

	stats, err := c.StatisticsService.GetUserStats(ctx.Request.Context(), userID)
	if err != nil {
		util.InternalServerError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
