package controller

import (
	"errors"
	"strconv"

	"omr_backend/internal/service"
	"omr_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChapterController struct {
	Service *service.ChapterService
}

func NewChapterController(svc *service.ChapterService) *ChapterController {
	return &ChapterController{Service: svc}
}

// @Summary 获取选项字母
// @Description 按选项数量返回可用的选项字母序列
// @Tags 章节
// @Produce json
// @Param count query int true "选项数量" default(4)
// @Success 200 {object} util.Response
// @Router /api/options [get]
func (c *ChapterController) GetOptionLetters(ctx *gin.Context) {
	count, err := strconv.Atoi(ctx.DefaultQuery("count", "4"))
	if err != nil {
		util.BadRequest(ctx, "invalid count")
		return
	}

	letters, err := util.OptionLetters(count)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, letters)
}

// @Summary 获取章节列表
// @Tags 章节
// @Produce json
// @Param subjectId query int false "科目ID"
// @Success 200 {object} util.Response
// @Router /api/chapters [get]
func (c *ChapterController) ListChapters(ctx *gin.Context) {
	subjectID := util.MustParseUint(ctx.Query("subjectId"))

	chapters, err := c.Service.ListChapters(subjectID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, chapters)
}

// @Summary 获取章节详情
// @Tags 章节
// @Produce json
// @Param id path int true "章节ID"
// @Success 200 {object} util.Response
// @Router /api/chapters/{id} [get]
func (c *ChapterController) GetChapter(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	chapter, err := c.Service.GetChapter(id)
	if err != nil {
		if errors.Is(err, util.ErrChapterNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, chapter)
}

// @Summary 按名称获取章节
// @Tags 章节
// @Produce json
// @Param name path string true "章节名"
// @Success 200 {object} util.Response
// @Router /api/chapters/by-name/{name} [get]
func (c *ChapterController) GetChapterByName(ctx *gin.Context) {
	name := ctx.Param("name")

	chapter, err := c.Service.GetChapterByName(name)
	if err != nil {
		if errors.Is(err, util.ErrChapterNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, chapter)
}

// @Summary 创建章节
// @Description 录入答案卷：章节名、题目数、选项数和标准答案
// @Tags 章节
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateChapterRequest true "章节信息"
// @Success 201 {object} util.Response
// @Router /api/chapters [post]
func (c *ChapterController) CreateChapter(ctx *gin.Context) {
	var req service.CreateChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	chapter, err := c.Service.CreateChapter(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrChapterExists):
			util.Conflict(ctx, err.Error())
		case errors.Is(err, util.ErrAnswerCountMismatch),
			errors.Is(err, util.ErrInvalidOptionCount),
			errors.Is(err, util.ErrSubjectNotFound):
			util.BadRequest(ctx, err.Error())
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Created(ctx, chapter)
}

// @Summary 编辑章节
// @Description 替换章节名和/或标准答案
// @Tags 章节
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "章节ID"
// @Param body body service.UpdateChapterRequest true "修改内容"
// @Success 200 {object} util.Response
// @Router /api/chapters/{id} [put]
func (c *ChapterController) UpdateChapter(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req service.UpdateChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	chapter, err := c.Service.UpdateChapter(id, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrChapterNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrChapterExists):
			util.Conflict(ctx, err.Error())
		case errors.Is(err, util.ErrAnswerCountMismatch),
			errors.Is(err, util.ErrInvalidOptionCount):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, chapter)
}

// @Summary 删除章节
// @Description 删除章节并级联删除其全部作答记录，不可恢复
// @Tags 章节
// @Produce json
// @Security BearerAuth
// @Param id path int true "章节ID"
// @Success 200 {object} util.Response
// @Router /api/chapters/{id} [delete]
func (c *ChapterController) DeleteChapter(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	if err := c.Service.DeleteChapter(id); err != nil {
		if errors.Is(err, util.ErrChapterNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
