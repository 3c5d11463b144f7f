package controller

import (
	"strconv"

	"omr_backend/internal/service"
	"omr_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// @Summary 获取分析面板
// @Description 全局统计、章节统计、排行榜和作答明细的聚合视图
// @Tags 分析
// @Produce json
// @Param student query string false "学生名"
// @Param subjectId query int false "科目ID"
// @Param chapterId query int false "章节ID"
// @Param days query int false "最近N天"
// @Success 200 {object} util.Response
// @Router /api/analytics [get]
func (c *AnalyticsController) GetDashboard(ctx *gin.Context) {
	filter := parseAttemptFilter(ctx)

	dashboard, err := c.AnalyticsService.GetDashboard(filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}

// @Summary 获取学生排行榜
// @Description 总分比值百分比降序，并列时按学生名升序
// @Tags 分析
// @Produce json
// @Param limit query int false "行数" default(10)
// @Success 200 {object} util.Response
// @Router /api/analytics/top-performers [get]
func (c *AnalyticsController) GetTopPerformers(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	performers, err := c.AnalyticsService.TopPerformers(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, performers)
}
