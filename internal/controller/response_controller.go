package controller

import (
	"feelio_backend/internal/service"
	"feelio_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ResponseController struct {
	ResponseService *service.ResponseService
}

func NewResponseController(responseService *service.ResponseService) *ResponseController {
	return &ResponseController{ResponseService: responseService}
}

// SaveResponse godoc
// @Summary 保存作答
// @Description 保存一次作答，首次答对得 10 分，并重算总分与徽章
// @Tags 作答
// @Accept json
// @Produce json
// @Param body body service.SaveResponseRequest true "作答内容"
// @Success 200 {object} util.MessageResponse
// @Failure 400 {object} util.ErrorResponse
// @Failure 500 {object} util.ErrorResponse
// @Router /responses [post]
func (c *ResponseController) SaveResponse(ctx *gin.Context) {
	var req service.SaveResponseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	id, err := c.ResponseService.Save(ctx.Request.Context(), req)
	if err != nil {
		util.InternalServerError(ctx, err)
		return
	}

	util.Success(ctx, util.MessageResponse{ID: id, Message: "Response saved"})
}

// OverrideCorrect godoc
// @Summary 改判为正确
// @Tags 作答
// @Produce json
// @Param id path int true "作答ID"
// @Success 200 {object} util.MessageResponse
// @Failure 404 {object} util.ErrorResponse
// @Failure 500 {object} util.ErrorResponse
// @Router /responses/{id}/override-correct [patch]
func (c *ResponseController) OverrideCorrect(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "Invalid response ID")
		return
	}

	if _, err := c.ResponseService.OverrideCorrect(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, "Marked as correct.")
}

// OverrideIncorrect godoc
// @Summary 改判为错误
// @Tags 作答
// @Produce json
// @Param id path int true "作答ID"
// @Success 200 {object} util.MessageResponse
// @Failure 404 {object} util.ErrorResponse
// @Failure 500 {object} util.ErrorResponse
// @Router /responses/{id}/override-incorrect [patch]
func (c *ResponseController) OverrideIncorrect(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "Invalid response ID")
		return
	}

	if _, err := c.ResponseService.OverrideIncorrect(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, "Marked as incorrect.")
}

type followUpRequest struct {
	Feedback *string `json:"feedback"`
}

// AddFollowUp godoc
// @Summary 追加反馈
// @Tags 作答
// @Accept json
// @Produce json
// @Param id path int true "作答ID"
// @Param body body followUpRequest true "反馈内容"
// @Success 200 {object} util.MessageResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /responses/{id}/add_followup [patch]
func (c *ResponseController) AddFollowUp(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "Invalid response ID")
		return
	}

	var req followUpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ResponseService.AddFollowUp(ctx.Request.Context(), id, req.Feedback); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, "Follow-up added")
}

// MarkRepeatable godoc
// @Summary 标记为可重做
// @Tags 作答
// @Param id path int true "作答ID"
// @Success 200 {object} util.MessageResponse
// @Router /responses/{id}/mark-repeatable [patch]
func (c *ResponseController) MarkRepeatable(ctx *gin.Context) {
	c.toggle(ctx, func(id uint) error {
		return c.ResponseService.SetRepeatable(ctx.Request.Context(), id, true)
	}, "Response marked as repeatable.")
}

// UnmarkRepeatable godoc
// @Summary 取消可重做
// @Tags 作答
// @Param id path int true "作答ID"
// @Success 200 {object} util.MessageResponse
// @Router /responses/{id}/unmark-repeatable [patch]
func (c *ResponseController) UnmarkRepeatable(ctx *gin.Context) {
	c.toggle(ctx, func(id uint) error {
		return c.ResponseService.SetRepeatable(ctx.Request.Context(), id, false)
	}, "Response unmarked from repeatable.")
}

// Flag godoc
// @Summary 标记作答
// @Tags 作答
// @Param id path int true "作答ID"
// @Success 200 {object} util.MessageResponse
// @Router /responses/{id}/flag [post]
func (c *ResponseController) Flag(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "Invalid response ID")
		return
	}
	if err := c.ResponseService.SetFlagged(ctx.Request.Context(), id, true); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, "Response flagged")
}

// Unflag godoc
// @Summary 取消标记
// @Tags 作答
// @Param id path int true "作答ID"
// @Success 200 {object} util.MessageResponse
// @Router /responses/{id}/unflag [patch]
func (c *ResponseController) Unflag(ctx *gin.Context) {
	c.toggle(ctx, func(id uint) error {
		return c.ResponseService.SetFlagged(ctx.Request.Context(), id, false)
	}, "Response unflagged.")
}

type flagLatestRequest struct {
	UserID      uint   `json:"user_id"`
	NarrativeID string `json:"narrative_id"`
}

// FlagLatest godoc
// @Summary 标记最近一次作答
// @Tags 作答
// @Accept json
// @Param body body flagLatestRequest true "用户与故事"
// @Success 200 {object} util.MessageResponse
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /responses/flag-latest [post]
func (c *ResponseController) FlagLatest(ctx *gin.Context) {
	var req flagLatestRequest
	_ = ctx.ShouldBindJSON(&req)
	if req.UserID == 0 || req.NarrativeID == "" {
		util.BadRequest(ctx, "Missing user_id or narrative_id")
		return
	}

	if err := c.ResponseService.FlagLatest(ctx.Request.Context(), req.UserID, req.NarrativeID); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, "Response flagged")
}

// GetUserResponses godoc
// @Summary 获取用户作答记录
// @Tags 作答
// @Produce json
// @Param user_id path int true "用户ID"
// @Param limit query int false "返回数量"
// @Success 200 {array} service.ResponseView
// @Router /user/{user_id}/responses [get]
func (c *ResponseController) GetUserResponses(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "user_id")
	if !ok {
		util.BadRequest(ctx, "Invalid user ID")
		return
	}

	limit := 0
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			limit = l
		}
	}

	views, err := c.ResponseService.ListByUser(ctx.Request.Context(), userID, limit)
	if err != nil {
		util.InternalServerError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

func (c *ResponseController) toggle(ctx *gin.Context, apply func(id uint) error, message string) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "Invalid response ID")
		return
	}
	if err := apply(id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, message)
}
