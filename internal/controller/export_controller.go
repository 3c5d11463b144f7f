package controller

import (
	"errors"
	"path/filepath"

	"omr_backend/internal/service"
	"omr_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExportController struct {
	Service *service.ExportService
}

func NewExportController(svc *service.ExportService) *ExportController {
	return &ExportController{Service: svc}
}

// @Summary 导出作答报表
// @Description 生成包含概要、逐题比对和统计的 Excel 报表并下载
// @Tags 导出
// @Produce application/octet-stream
// @Security BearerAuth
// @Param id path int true "作答ID"
// @Success 200 {file} binary
// @Router /api/attempts/{id}/export [get]
func (c *ExportController) ExportAttempt(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	path, err := c.Service.ExportAttempt(id)
	if err != nil {
		if errors.Is(err, util.ErrAttemptNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	ctx.FileAttachment(path, filepath.Base(path))
}
