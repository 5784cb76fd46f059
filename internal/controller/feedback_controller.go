package controller

import (
	"feelio_backend/internal/service"
	"feelio_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// FeedbackController 对接外部模型：大模型反馈与情绪分类
type FeedbackController struct {
	FeedbackService   *service.FeedbackService
	ClassifierService *service.ClassifierService
}

func NewFeedbackController(feedbackService *service.FeedbackService, classifierService *service.ClassifierService) *FeedbackController {
	return &FeedbackController{
		FeedbackService:   feedbackService,
		ClassifierService: classifierService,
	}
}

// GenerateFeedback godoc
// @Summary 生成作答反馈
// @Description 10-12 岁组仅在 followup 为 true 时生成
// @Tags 模型
// @Accept json
// @Produce json
// @Param body body service.FeedbackRequest true "作答上下文"
// @Success 200 {object} map[string]string
// @Failure 500 {object} util.ErrorResponse
// @Router /gpt-feedback [post]
func (c *FeedbackController) GenerateFeedback(ctx *gin.Context) {
	var req service.FeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	feedback, err := c.FeedbackService.Generate(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"feedback": feedback})
}

type predictRequest struct {
	Text string `json:"text"`
}

// Predict godoc
// @Summary 情绪分类
// @Tags 模型
// @Accept json
// @Produce json
// @Param body body predictRequest true "文本"
// @Success 200 {object} service.Prediction
// @Failure 400 {object} util.ErrorResponse
// @Router /predict [post]
func (c *FeedbackController) Predict(ctx *gin.Context) {
	var req predictRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	prediction, err := c.ClassifierService.Predict(ctx.Request.Context(), req.Text)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, prediction)
}
