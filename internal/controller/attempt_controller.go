package controller

import (
	"errors"
	"strconv"

	"omr_backend/internal/repository"
	"omr_backend/internal/service"
	"omr_backend/internal/util"
	"omr_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	Service *service.AttemptService
}

func NewAttemptController(svc *service.AttemptService) *AttemptController {
	return &AttemptController{Service: svc}
}

// @Summary 提交作答
// @Description 判分并保存一次学生作答，返回得分、百分比和等级
// @Tags 作答
// @Accept json
// @Produce json
// @Param body body service.SubmitAttemptRequest true "作答内容"
// @Success 201 {object} util.Response
// @Router /api/attempts [post]
func (c *AttemptController) SubmitAttempt(ctx *gin.Context) {
	var req service.SubmitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.SubmitAttempt(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrChapterNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrStudentNameRequired),
			errors.Is(err, util.ErrIncompleteSubmission),
			errors.Is(err, util.ErrAnswerCountMismatch):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.AttemptCounter.WithLabelValues(strconv.FormatUint(uint64(req.ChapterID), 10)).Inc()
	util.Created(ctx, result)
}

// @Summary 查询作答记录
// @Description 按学生、科目、章节和时间窗过滤，条件之间取交集
// @Tags 作答
// @Produce json
// @Param student query string false "学生名"
// @Param subjectId query int false "科目ID"
// @Param chapterId query int false "章节ID"
// @Param days query int false "最近N天"
// @Success 200 {object} util.Response
// @Router /api/attempts [get]
func (c *AttemptController) ListAttempts(ctx *gin.Context) {
	filter := parseAttemptFilter(ctx)

	attempts, err := c.Service.GetAllAttempts(filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// @Summary 查询既有作答次数
// @Description 返回某学生在某章节已提交的次数
// @Tags 作答
// @Produce json
// @Param chapterId query int true "章节ID"
// @Param student query string true "学生名"
// @Success 200 {object} util.Response
// @Router /api/attempts/count [get]
func (c *AttemptController) GetAttemptCount(ctx *gin.Context) {
	chapterID := util.MustParseUint(ctx.Query("chapterId"))
	student := ctx.Query("student")
	if chapterID == 0 || student == "" {
		util.BadRequest(ctx, "chapterId and student are required")
		return
	}

	count, err := c.Service.GetAttemptCount(chapterID, student)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"count": count, "nextAttemptNumber": count + 1})
}

// @Summary 查看章节成绩单
// @Description 按提交时间倒序返回某章节的作答记录，可按学生过滤
// @Tags 作答
// @Produce json
// @Param chapterName path string true "章节名"
// @Param student query string false "学生名"
// @Success 200 {object} util.Response
// @Router /api/results/{chapterName} [get]
func (c *AttemptController) GetResults(ctx *gin.Context) {
	chapterName := ctx.Param("chapterName")
	student := ctx.Query("student")

	attempts, err := c.Service.GetStudentAttempts(chapterName, student)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

func parseAttemptFilter(ctx *gin.Context) repository.AttemptFilter {
	days, _ := strconv.Atoi(ctx.Query("days"))
	return repository.AttemptFilter{
		Student:   ctx.Query("student"),
		SubjectID: util.MustParseUint(ctx.Query("subjectId")),
		ChapterID: util.MustParseUint(ctx.Query("chapterId")),
		Days:      days,
	}
}
