package controller

import (
	"feelio_backend/internal/model"
	"feelio_backend/internal/service"
	"feelio_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type NarrativeController struct {
	NarrativeService *service.NarrativeService
}

func NewNarrativeController(narrativeService *service.NarrativeService) *NarrativeController {
	return &NarrativeController{NarrativeService: narrativeService}
}

// ListNarratives godoc
// @Summary 按年龄段获取故事
// @Tags 故事
// @Produce json
// @Param segment query int true "年龄段 1 或 2"
// @Success 200 {array} service.NarrativeView
// @Failure 400 {object} util.ErrorResponse
// @Router /narratives [get]
func (c *NarrativeController) ListNarratives(ctx *gin.Context) {
	segmentStr := ctx.Query("segment")
	if segmentStr == "" {
		util.BadRequest(ctx, "Missing 'segment' parameter")
		return
	}
	segment, err := strconv.Atoi(segmentStr)
	if err != nil {
		util.BadRequest(ctx, "Invalid 'segment' parameter")
		return
	}

	narratives, err := c.NarrativeService.ListBySegment(ctx.Request.Context(), model.Segment(segment))
	if err != nil {
		util.InternalServerError(ctx, err)
		return
	}
	util.Success(ctx, narratives)
}

// GetNarrative godoc
// @Summary 获取故事详情
// @Tags 故事
// @Produce json
// @Param id path string true "故事ID"
// @Success 200 {object} service.NarrativeView
// @Failure 404 {object} util.ErrorResponse
// @Router /narratives/{id} [get]
func (c *NarrativeController) GetNarrative(ctx *gin.Context) {
	narrative, err := c.NarrativeService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, narrative)
}

// CreateNarrative godoc
// @Summary 新增故事
// @Tags 故事
// @Accept json
// @Produce json
// @Param body body service.CreateNarrativeRequest true "故事内容"
// @Success 201 {object} service.NarrativeView
// @Failure 400 {object} util.ErrorResponse
// @Router /narratives [post]
func (c *NarrativeController) CreateNarrative(ctx *gin.Context) {
	var req service.CreateNarrativeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	narrative, err := c.NarrativeService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	ctx.JSON(201, narrative)
}

// UploadImage godoc
// @Summary 上传故事插图
// @Tags 故事
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "故事ID"
// @Param image formData file true "图片"
// @Success 200 {object} map[string]string
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /narratives/{id}/image [post]
func (c *NarrativeController) UploadImage(ctx *gin.Context) {
	file, err := ctx.FormFile("image")
	if err != nil {
		util.BadRequest(ctx, "Missing image file")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.InternalServerError(ctx, err)
		return
	}
	defer src.Close()

	url, err := c.NarrativeService.UploadImage(
		ctx.Request.Context(),
		ctx.Param("id"),
		file.Filename,
		src,
		file.Size,
		file.Header.Get("Content-Type"),
	)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"image_path": url})
}
